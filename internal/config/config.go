package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// minPoolSize is the smallest workable pool: two loops for one open
// connection, one timer wait, and headroom for the next dial.
const minPoolSize = 4

type Config struct {
	Mode         string        `mapstructure:"mode"`
	LogLevel     string        `mapstructure:"log_level"`
	Backend      string        `mapstructure:"backend"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	RelayAddr    string        `mapstructure:"relay_addr"`
	Completion   string        `mapstructure:"completion"`
	CodeWords    int           `mapstructure:"code_words"`
}

// Load reads config/portal.yaml if present, then environment (PORTAL_*),
// falling back to defaults. Backend selects the execution model for the
// whole reactor: "spawn" (goroutine per task) or "pool" (bounded workers).
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("portal")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("portal")
	v.AutomaticEnv()

	v.SetDefault("mode", "release")
	v.SetDefault("log_level", "info")
	v.SetDefault("backend", "spawn")
	v.SetDefault("pool_size", 64)
	v.SetDefault("dial_timeout", "10s")
	v.SetDefault("write_timeout", "5s")
	v.SetDefault("relay_addr", ":8090")
	v.SetDefault("completion", "prefix")
	v.SetDefault("code_words", 2)

	if err := v.ReadInConfig(); err != nil {
		if path != "" {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Backend != "spawn" && cfg.Backend != "pool" {
		return nil, fmt.Errorf("unknown backend %q (want spawn or pool)", cfg.Backend)
	}
	// a connection pins two pool workers for its lifetime and a pending
	// timer one more; below this floor a single connection can deadlock
	// before its read loop starts
	if cfg.Backend == "pool" && cfg.PoolSize != 0 && cfg.PoolSize < minPoolSize {
		return nil, fmt.Errorf("pool_size %d is below the minimum %d (use 0 for unlimited)",
			cfg.PoolSize, minPoolSize)
	}
	return &cfg, nil
}
