package cli

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// envPrefix is the prefix of the environment variables that override the configuration,
// e.g. MOLGRAPH_SEARCH_RING_SIZE for search.ring_size.
const envPrefix = "MOLGRAPH"

// Config holds the settings of the command line tool.
type Config struct {
	LogLevel string         `mapstructure:"log_level"`
	Search   SearchConfig   `mapstructure:"search"`
	Geometry GeometryConfig `mapstructure:"geometry"`
}

// SearchConfig holds the defaults for the search command.
type SearchConfig struct {
	RingSize int  `mapstructure:"ring_size"`
	Strong   bool `mapstructure:"strong"`
}

// GeometryConfig holds the defaults for bond perception.
type GeometryConfig struct {
	DoOrders bool `mapstructure:"do_orders"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetDefault("log_level", "info")
	v.SetDefault("search.ring_size", 6)
	v.SetDefault("search.strong", false)
	v.SetDefault("geometry.do_orders", true)
	return v
}

// loadConfig reads the configuration from the YAML file at path, if path is not empty,
// and from the MOLGRAPH_* environment variables.
func loadConfig(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %q", path)
		}
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal configuration")
	}
	if cfg.Search.RingSize < 3 {
		return nil, errors.Errorf("search.ring_size must be at least 3, got %d", cfg.Search.RingSize)
	}
	return cfg, nil
}
