// Package typescript generates TypeScript client code for Move packages.
//
// Every module becomes a directory holding:
//   - index.ts: id constants, name tables, struct types, module definition
//   - idl.ts: the module IDL as a literal
//   - entry.ts: payload types and entrypoint builders (modules with functions)
//   - errors.ts: one constant per error (modules with errors)
//
// The package root holds index.ts re-exporting each module under a
// package-derived prefix, and errmap.ts merging all errors.
//
// Generated code imports wrapper types and serializers from the prelude
// (@movingco/prelude by default, see Format).
package typescript

import (
	"time"

	"go.uber.org/zap"

	"github.com/teranos/movets/idl"
	"github.com/teranos/movets/logger"
	"github.com/teranos/movets/typegen"
)

// Generator implements typegen.Generator for TypeScript.
type Generator struct {
	format Format
	logger *zap.SugaredLogger
}

// NewGenerator creates a TypeScript generator. A nil logger disables logging.
func NewGenerator(format Format, log *zap.SugaredLogger) *Generator {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Generator{format: format, logger: log}
}

// Language returns "typescript"
func (g *Generator) Language() string {
	return "typescript"
}

// FileExtension returns the configured extension, "ts" by default
func (g *Generator) FileExtension() string {
	return g.format.FileExtension
}

// Generate renders pkg. Struct references resolve across the package and
// its dependencies whether or not dependency files are emitted.
func (g *Generator) Generate(pkg *idl.Package, opts typegen.Options) (*typegen.Result, error) {
	start := time.Now()

	emitter := NewEmitter(pkg.StructTable(), g.format, g.logger)
	emitter.version = opts.GeneratorVersion

	result, err := emitter.GeneratePackage(pkg, opts)
	if err != nil {
		return nil, err
	}

	g.logger.Infow("Generated package",
		logger.FieldPackage, pkg.Name,
		logger.FieldCount, result.Len(),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return result, nil
}

var _ typegen.Generator = (*Generator)(nil)
