package config

import "github.com/spf13/viper"

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("idl_path", "build/idl.json")
	v.SetDefault("out_dir", "build/ts")
	v.SetDefault("with_dependencies", false)
	v.SetDefault("emit_idl_json", true)
	v.SetDefault("verify", false)

	v.SetDefault("prelude.module", "@movingco/prelude")
	v.SetDefault("prelude.alias", "p")

	v.SetDefault("output.file_extension", "ts")
	v.SetDefault("output.import_extension", "js") // ESM resolution of compiled output

	v.SetDefault("check.ignore", []string{})

	v.SetDefault("watch.debounce_ms", 300)
}

// Default returns the configuration with every default applied.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	if err != nil {
		// Defaults always validate
		panic(err)
	}
	return cfg
}
