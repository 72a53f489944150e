package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/movets/errors"
)

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)

	assert.Equal(t, "build/idl.json", cfg.IDLPath)
	assert.Equal(t, "build/ts", cfg.OutDir)
	assert.False(t, cfg.WithDependencies)
	assert.True(t, cfg.EmitIDLJSON)
	assert.False(t, cfg.Verify)
	assert.Equal(t, "@movingco/prelude", cfg.Prelude.Module)
	assert.Equal(t, "p", cfg.Prelude.Alias)
	assert.Equal(t, "ts", cfg.Output.FileExtension)
	assert.Equal(t, "js", cfg.Output.ImportExtension)
	assert.Empty(t, cfg.Check.Ignore)
	assert.Equal(t, 300*time.Millisecond, cfg.Debounce())
}

func TestDefaultsValidate(t *testing.T) {
	assert.NotPanics(t, func() { Default() })
}

func TestLoad_ProjectFile(t *testing.T) {
	root := t.TempDir()
	content := `
out_dir = "generated"
with_dependencies = true

[prelude]
alias = "prelude"

[check]
ignore = ["package.json", "*.d.ts"]
`
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte(content), 0644))

	cfg, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, "generated", cfg.OutDir)
	assert.True(t, cfg.WithDependencies)
	assert.Equal(t, "prelude", cfg.Prelude.Alias)
	assert.Equal(t, "@movingco/prelude", cfg.Prelude.Module, "unset keys keep defaults")
	assert.Equal(t, []string{"package.json", "*.d.ts"}, cfg.Check.Ignore)

	assert.Equal(t, filepath.Join(root, "generated"), cfg.OutputDir(root))
	assert.Equal(t, filepath.Join(root, "build", "idl.json"), cfg.IDLFile(root))
}

func TestLoad_EnvOverride(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte(`out_dir = "from-file"`), 0644))
	t.Setenv("MOVETS_OUT_DIR", "/abs/from-env")
	t.Setenv("MOVETS_PRELUDE_MODULE", "@acme/prelude")

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, "/abs/from-env", cfg.OutDir)
	assert.Equal(t, "/abs/from-env", cfg.OutputDir(root), "absolute paths are not resolved against root")
	assert.Equal(t, "@acme/prelude", cfg.Prelude.Module)
}

func TestLoad_MalformedFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("out_dir = ["), 0644))

	_, err := Load(root)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
	assert.Contains(t, errors.FlattenHints(err), "movets init")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"empty out_dir", func(c *Config) { c.OutDir = "" }, "out_dir"},
		{"empty idl_path", func(c *Config) { c.IDLPath = "" }, "idl_path"},
		{"empty prelude module", func(c *Config) { c.Prelude.Module = "" }, "prelude.module"},
		{"alias with dash", func(c *Config) { c.Prelude.Alias = "my-prelude" }, "prelude.alias"},
		{"reserved alias", func(c *Config) { c.Prelude.Alias = "default" }, "prelude.alias"},
		{"dotted extension", func(c *Config) { c.Output.FileExtension = ".ts" }, "output.file_extension"},
		{"empty import extension", func(c *Config) { c.Output.ImportExtension = "" }, "output.import_extension"},
		{"zero debounce is valid", func(c *Config) { c.Watch.DebounceMS = 0 }, ""},
		{"negative debounce", func(c *Config) { c.Watch.DebounceMS = -1 }, "watch.debounce_ms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	root := t.TempDir()
	cfg := Default()
	cfg.OutDir = "client/src/generated"
	cfg.Check.Ignore = []string{"README.md"}

	require.NoError(t, Save(filepath.Join(root, FileName), cfg))

	loaded, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveRejectsInvalid(t *testing.T) {
	cfg := Default()
	cfg.Prelude.Alias = ""

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.Error(t, err)
	assert.NoFileExists(t, path)
}

func TestFormat(t *testing.T) {
	cfg := Default()
	cfg.Prelude.Alias = "prelude"
	cfg.Prelude.Module = "@acme/prelude"
	cfg.Output.ImportExtension = "mjs"

	f := cfg.Format()
	assert.Equal(t, `import * as prelude from "@acme/prelude";`, f.ImportLine())
	assert.Equal(t, "prelude.U64", f.U64)
	assert.Equal(t, "index.ts", f.FileName("index"))
	assert.Equal(t, "./entry.mjs", f.ImportPath("entry"))
}
