// Package typegen generates client source code from a Move package IDL.
//
// # Architecture
//
// The package uses a two-layer design:
//  1. Language-agnostic plumbing (this package) holds the Generator contract,
//     the in-memory Result, writing to disk and staleness checks
//  2. Language-specific generators (typescript/) turn an idl.Package into files
//
// Generation is a pure transform: a Generator never touches the filesystem.
// WriteResult and CompareResult are the only I/O.
//
// # Design Decisions
//
//   - Deterministic output (declaration order everywhere) enables CI
//     validation via `movets check`
//   - Fail-fast: the first error aborts the whole package, since a partial
//     package would be inconsistent
//   - Metadata lines (generator version) are ignored by checks so upgrading
//     the tool does not mark every file stale
package typegen

import (
	"github.com/Masterminds/semver/v3"

	"github.com/teranos/movets/idl"
)

// Generator defines the interface for language-specific code generators.
type Generator interface {
	// Generate renders every output file for pkg
	Generate(pkg *idl.Package, opts Options) (*Result, error)

	// FileExtension returns the file extension for this language (e.g., "ts")
	FileExtension() string

	// Language returns the language name (e.g., "typescript")
	Language() string
}

// Options control a single generation run.
type Options struct {
	// WithDependencies also emits files for dependency modules
	WithDependencies bool

	// EmitIDLJSON writes the pretty-printed package IDL as idl.json
	EmitIDLJSON bool

	// GeneratorVersion is stamped into a metadata header line when set
	GeneratorVersion string

	// PackageVersion comes from the Move.toml manifest, if any
	PackageVersion *semver.Version
}

// MetadataPrefix starts header lines that carry run metadata rather than code.
const MetadataPrefix = "// Generator:"
