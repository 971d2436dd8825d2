package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Load reads the configuration and returns a Config struct. When path is
// empty the file is searched as acrmon.toml in $HOME/.config/ and the
// working directory; otherwise path names the file directly.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("acrmon")
		v.SetConfigType("toml")
		v.AddConfigPath("$HOME/.config/")
		v.AddConfigPath(".")
	}

	// Set defaults from DefaultConfig
	defaults := DefaultConfig()
	v.SetDefault("client.http_timeout", defaults.Client.HTTPTimeout)
	v.SetDefault("watch.interval", defaults.Watch.Interval)
	v.SetDefault("watch.history", defaults.Watch.History)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
