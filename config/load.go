package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/movets/errors"
)

// EnvPrefix prefixes environment overrides: MOVETS_OUT_DIR, MOVETS_PRELUDE_ALIAS.
const EnvPrefix = "MOVETS"

// Load reads <root>/movets.toml when present, applies environment
// overrides and validates the result.
func Load(root string) (*Config, error) {
	v, err := NewViper(root)
	if err != nil {
		return nil, err
	}
	return LoadWithViper(v)
}

// NewViper returns a viper instance with defaults, environment binding and
// the project file of root merged in.
func NewViper(root string) (*viper.Viper, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	path := filepath.Join(root, FileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return v, nil
	}

	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(errors.ErrInvalidConfig, "failed to read %s: %v", path, err),
			"run `movets init --force` to rewrite it with defaults",
		)
	}
	return v, nil
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "failed to unmarshal config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
