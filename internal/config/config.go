package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the garsd service configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Grids     GridsConfig     `mapstructure:"grids"`
	Valkey    ValkeyConfig    `mapstructure:"valkey"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port           int `mapstructure:"port"`
	ReadTimeout    int `mapstructure:"read_timeout"`
	WriteTimeout   int `mapstructure:"write_timeout"`
	RequestTimeout int `mapstructure:"request_timeout"`
}

// GridsConfig points at an optional grid properties file. An empty path uses
// the embedded zoom table.
type GridsConfig struct {
	Properties string `mapstructure:"properties"`
	MaxLabels  int    `mapstructure:"max_labels"`
	TileSize   int    `mapstructure:"tile_size"`
}

// ValkeyConfig configures the tile cache. An empty address disables it.
type ValkeyConfig struct {
	Addr     string `mapstructure:"addr"`
	TTL      int    `mapstructure:"ttl"`
	WarmZoom int    `mapstructure:"warm_zoom"`
}

// CacheConfig sizes the in-process tile cache used when Valkey is disabled.
// Zero disables it.
type CacheConfig struct {
	MemoryBytes int64 `mapstructure:"memory_bytes"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	Endpoint    string `mapstructure:"endpoint"`
	Enabled     bool   `mapstructure:"enabled"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// maxWarmZoom bounds cache warming to a few thousand tiles.
const maxWarmZoom = 6

// Load reads configuration from file and environment variables.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.request_timeout", 5)
	v.SetDefault("grids.properties", "")
	v.SetDefault("grids.max_labels", 10000)
	v.SetDefault("grids.tile_size", 256)
	v.SetDefault("valkey.addr", "")
	v.SetDefault("valkey.ttl", 3600)
	v.SetDefault("valkey.warm_zoom", -1)
	v.SetDefault("cache.memory_bytes", 64<<20)
	v.SetDefault("telemetry.service_name", "garsd")
	v.SetDefault("telemetry.endpoint", "localhost:4317")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	// Environment variables: GARS_VALKEY_ADDR → valkey.addr
	v.SetEnvPrefix("GARS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that the configuration values are sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, "server.request_timeout must be positive")
	}
	if c.Grids.MaxLabels <= 0 {
		errs = append(errs, "grids.max_labels must be positive")
	}
	if c.Grids.TileSize <= 0 {
		errs = append(errs, "grids.tile_size must be positive")
	}
	if c.Valkey.TTL < 0 {
		errs = append(errs, "valkey.ttl must not be negative")
	}
	if c.Valkey.WarmZoom > maxWarmZoom {
		errs = append(errs, fmt.Sprintf("valkey.warm_zoom must be at most %d, got %d", maxWarmZoom, c.Valkey.WarmZoom))
	}
	if c.Cache.MemoryBytes < 0 {
		errs = append(errs, "cache.memory_bytes must not be negative")
	}
	if c.Telemetry.Enabled && c.Telemetry.Endpoint == "" {
		errs = append(errs, "telemetry.endpoint is required when telemetry is enabled")
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Sprintf("log.format must be json or text, got %q", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
