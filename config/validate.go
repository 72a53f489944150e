package config

import (
	"strings"

	"github.com/teranos/movets/errors"
	"github.com/teranos/movets/typegen/util"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.IDLPath == "" {
		return invalid("idl_path cannot be empty")
	}
	if c.OutDir == "" {
		return invalid("out_dir cannot be empty")
	}

	if c.Prelude.Module == "" {
		return invalid("prelude.module cannot be empty")
	}
	if !util.IsIdentifier(c.Prelude.Alias) {
		return invalid("prelude.alias must be a TypeScript identifier, got %q", c.Prelude.Alias)
	}

	for key, ext := range map[string]string{
		"output.file_extension":   c.Output.FileExtension,
		"output.import_extension": c.Output.ImportExtension,
	} {
		if ext == "" || strings.ContainsAny(ext, "./\\") {
			return invalid("%s must be a bare extension such as \"ts\", got %q", key, ext)
		}
	}

	// Watch debounce: 0 = default period, negative = invalid
	if c.Watch.DebounceMS < 0 {
		return invalid("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}
	return nil
}

func invalid(format string, args ...interface{}) error {
	return errors.Wrapf(errors.ErrInvalidConfig, format, args...)
}
