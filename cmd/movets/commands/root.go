// Package commands implements the movets command line.
package commands

import (
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/movets/logger"
	"github.com/teranos/movets/typegen"
)

var (
	verbosity int
	jsonLogs  bool

	outDir       string
	idlPath      string
	withDeps     bool
	verifyOutput bool
	noIDLJSON    bool
)

// RootCmd generates TypeScript for the Move package at [root]
var RootCmd = &cobra.Command{
	Use:   "movets [root]",
	Short: "Generate TypeScript clients for Move packages",
	Long: `Generate TypeScript type definitions and transaction payload builders
from the IDL of a compiled Move package.

Settings come from <root>/movets.toml, MOVETS_* environment variables and
flags, in increasing order of precedence. The package name and version
fall back to <root>/Move.toml.

Output layout (under --out-dir):
  <Module>/index.ts   ids, name tables, struct types, module definition
  <Module>/idl.ts     the module IDL
  <Module>/entry.ts   payload types and entrypoint builders
  <Module>/errors.ts  error constants
  index.ts            re-exports of every module
  errmap.ts           every error of the package
  idl.json            the package IDL

Examples:
  movets                                # ./build/idl.json -> ./build/ts
  movets ./my-package --out-dir ts/src  # explicit root and output
  movets --with-dependencies --verify   # emit dependencies, syntax-check output
  movets check                          # fail when ./build/ts is stale
  movets watch -v                       # regenerate on IDL changes`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Initialize(jsonLogs, verbosity)
	},
	RunE: runGenerate,
}

func init() {
	RootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	RootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Write logs as JSON")

	RootCmd.PersistentFlags().StringVar(&outDir, "out-dir", "", "Output directory, relative to root (default: build/ts)")
	RootCmd.PersistentFlags().StringVar(&idlPath, "idl", "", "Package IDL file (.json or .yaml), relative to root (default: build/idl.json)")
	RootCmd.PersistentFlags().BoolVar(&withDeps, "with-dependencies", false, "Also generate dependency modules")
	RootCmd.PersistentFlags().BoolVar(&verifyOutput, "verify", false, "Syntax-check every generated unit")
	RootCmd.PersistentFlags().BoolVar(&noIDLJSON, "no-idl-json", false, "Do not write idl.json")

	RootCmd.AddCommand(CheckCmd)
	RootCmd.AddCommand(WatchCmd)
	RootCmd.AddCommand(InitCmd)
	RootCmd.AddCommand(VersionCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	start := time.Now()

	p, err := loadProject(cmd, args)
	if err != nil {
		return err
	}
	result, err := p.generate(cmd.Context())
	if err != nil {
		return err
	}

	written, err := typegen.WriteResult(result, p.outputDir())
	if err != nil {
		return err
	}
	for _, path := range written {
		p.log.Debugw("Wrote file", logger.FieldPath, path)
	}

	pterm.Success.Printfln("Generated %d files for %s in %s (%s)",
		len(written), result.PackageName, p.outputDir(), time.Since(start).Round(time.Millisecond))
	return nil
}
