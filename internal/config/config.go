// Package config loads session-level configuration (prompt string,
// default format size, verbosity) via viper, using a mapstructure-tagged
// config struct. This governs only CLI ergonomics — never the
// compile-time on-disk geometry constants in pkg/types, which stay
// identical across format and mount regardless of configuration.
package config

import (
	"github.com/spf13/viper"

	"pseudofs/pkg/types"
)

// Config holds session-level settings read from pseudofs.yaml / the
// PSEUDOFS_* environment and/or defaults.
type Config struct {
	DefaultDiskSize int64  `mapstructure:"default_disk_size"`
	Prompt          string `mapstructure:"prompt"`
	HistoryFile     string `mapstructure:"history_file"`
	Verbose         bool   `mapstructure:"verbose"`
}

// Load reads configuration from pseudofs.yaml in the working directory (if
// present), then PSEUDOFS_* environment variables, falling back to
// defaults when neither is set.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("pseudofs")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("PSEUDOFS")
	v.AutomaticEnv()

	v.SetDefault("default_disk_size", int64(types.DefaultDiskSize))
	v.SetDefault("prompt", "pseudofs> ")
	v.SetDefault("history_file", "")
	v.SetDefault("verbose", false)

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
