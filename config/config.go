// Package config loads movets settings from movets.toml, MOVETS_*
// environment variables and built-in defaults, in increasing precedence
// order: defaults, file, environment. Command-line flags override all three.
package config

import (
	"path/filepath"
	"time"

	"github.com/teranos/movets/typegen/typescript"
)

// FileName is the project configuration file looked up in the package root.
const FileName = "movets.toml"

// Config represents the movets configuration
type Config struct {
	IDLPath          string `mapstructure:"idl_path" toml:"idl_path"`
	OutDir           string `mapstructure:"out_dir" toml:"out_dir"`
	WithDependencies bool   `mapstructure:"with_dependencies" toml:"with_dependencies"`
	EmitIDLJSON      bool   `mapstructure:"emit_idl_json" toml:"emit_idl_json"`
	Verify           bool   `mapstructure:"verify" toml:"verify"`

	Prelude PreludeConfig `mapstructure:"prelude" toml:"prelude"`
	Output  OutputConfig  `mapstructure:"output" toml:"output"`
	Check   CheckConfig   `mapstructure:"check" toml:"check"`
	Watch   WatchConfig   `mapstructure:"watch" toml:"watch"`
}

// PreludeConfig names the runtime support module generated code imports
type PreludeConfig struct {
	Module string `mapstructure:"module" toml:"module"` // e.g. "@movingco/prelude"
	Alias  string `mapstructure:"alias" toml:"alias"`   // namespace import name, e.g. "p"
}

// OutputConfig configures generated file names
type OutputConfig struct {
	FileExtension   string `mapstructure:"file_extension" toml:"file_extension"`     // "ts"
	ImportExtension string `mapstructure:"import_extension" toml:"import_extension"` // extension in import specifiers, "js"
}

// CheckConfig configures `movets check`
type CheckConfig struct {
	Ignore []string `mapstructure:"ignore" toml:"ignore"` // gitignore-style, relative to out_dir
}

// WatchConfig configures `movets watch`
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms" toml:"debounce_ms"`
}

// IDLFile resolves IDLPath against root unless it is absolute.
func (c *Config) IDLFile(root string) string {
	return resolve(root, c.IDLPath)
}

// OutputDir resolves OutDir against root unless it is absolute.
func (c *Config) OutputDir(root string) string {
	return resolve(root, c.OutDir)
}

// Debounce returns the watch debounce period.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}

// Format builds the TypeScript output format from the prelude and output settings.
func (c *Config) Format() typescript.Format {
	f := typescript.NewFormat(c.Prelude.Alias, c.Prelude.Module)
	f.FileExtension = c.Output.FileExtension
	f.ImportExtension = c.Output.ImportExtension
	return f
}

func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
