package commands

import (
	"context"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/teranos/movets/config"
	"github.com/teranos/movets/errors"
	"github.com/teranos/movets/idl"
	"github.com/teranos/movets/logger"
	"github.com/teranos/movets/typegen"
	"github.com/teranos/movets/typegen/typescript"
	"github.com/teranos/movets/typegen/verify"
	"github.com/teranos/movets/version"
)

// project is a package root with its resolved settings.
type project struct {
	root     string
	cfg      *config.Config
	manifest *idl.Manifest
	log      *zap.SugaredLogger
}

// loadProject resolves the root argument, loads movets.toml and Move.toml
// and applies flags that were set explicitly.
func loadProject(cmd *cobra.Command, args []string) (*project, error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("out-dir") {
		cfg.OutDir = outDir
	}
	if flags.Changed("idl") {
		cfg.IDLPath = idlPath
	}
	if flags.Changed("with-dependencies") {
		cfg.WithDependencies = withDeps
	}
	if flags.Changed("verify") {
		cfg.Verify = verifyOutput
	}
	if flags.Changed("no-idl-json") {
		cfg.EmitIDLJSON = !noIDLJSON
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	manifest, err := idl.LoadManifest(root)
	if err != nil {
		return nil, err
	}

	runID := strconv.FormatInt(time.Now().UnixNano(), 36)
	ctx := logger.WithComponent(logger.WithRunID(context.Background(), runID), cmd.Name())

	return &project{
		root:     root,
		cfg:      cfg,
		manifest: manifest,
		log:      logger.LoggerFromContext(ctx),
	}, nil
}

func (p *project) idlFile() string   { return p.cfg.IDLFile(p.root) }
func (p *project) outputDir() string { return p.cfg.OutputDir(p.root) }

// generate loads the IDL and renders it in memory, verifying the output
// when configured.
func (p *project) generate(ctx context.Context) (*typegen.Result, error) {
	pkg, err := idl.Load(p.idlFile())
	if err != nil {
		return nil, err
	}
	if pkg.Name == "" && p.manifest != nil {
		pkg.Name = p.manifest.Package.Name
	}

	pkgVersion, err := p.manifest.Version()
	if err != nil {
		return nil, err
	}

	p.log.Infow("Generating",
		logger.FieldPackage, pkg.Name,
		logger.FieldPath, p.idlFile(),
		logger.FieldOutDir, p.outputDir(),
		"with_dependencies", p.cfg.WithDependencies)

	gen := typescript.NewGenerator(p.cfg.Format(), logger.ComponentLogger("typescript"))
	result, err := gen.Generate(pkg, typegen.Options{
		WithDependencies: p.cfg.WithDependencies,
		EmitIDLJSON:      p.cfg.EmitIDLJSON,
		GeneratorVersion: version.Get().Generator(),
		PackageVersion:   pkgVersion,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "generate %s", p.idlFile())
	}

	if p.cfg.Verify {
		problems, err := verify.New(0, logger.ComponentLogger("verify")).Verify(ctx, result)
		if err != nil {
			return nil, err
		}
		if err := verify.Err(problems); err != nil {
			return nil, err
		}
	}
	return result, nil
}
