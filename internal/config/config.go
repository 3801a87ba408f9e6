// Package config loads brochure settings from defaults, an optional brochure.yaml
// and BROCHURE_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configFileName = "brochure"
	configFileType = "yaml"
	envPrefix      = "BROCHURE"

	KeyIdentifier    = "identifier"
	KeyBackend       = "backend"
	KeyRedisAddress  = "redis.address"
	KeyRedisPassword = "redis.password"
	KeyRedisDB       = "redis.db"
	KeyRedisPrefix   = "redis.prefix"
	KeyInitTimeout   = "timeouts.init"
	KeyFetchTimeout  = "timeouts.fetch"
	KeyHTTPAddress   = "http.address"
	KeyLogLevel      = "log.level"
)

// Backend names.
const (
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config is the typed view of every setting.
type Config struct {
	Identifier string   `mapstructure:"identifier"`
	Backend    string   `mapstructure:"backend"`
	Redis      Redis    `mapstructure:"redis"`
	Timeouts   Timeouts `mapstructure:"timeouts"`
	HTTP       HTTP     `mapstructure:"http"`
	Log        Log      `mapstructure:"log"`
}

type Redis struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type Timeouts struct {
	Init  time.Duration `mapstructure:"init"`
	Fetch time.Duration `mapstructure:"fetch"`
}

type HTTP struct {
	Address string `mapstructure:"address"`
}

type Log struct {
	Level string `mapstructure:"level"`
}

// New returns a viper instance with defaults and env binding applied.
// Callers may bind flags on it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyIdentifier, "car_01")
	v.SetDefault(KeyBackend, BackendRedis)
	v.SetDefault(KeyRedisAddress, "localhost:6379")
	v.SetDefault(KeyRedisPassword, "")
	v.SetDefault(KeyRedisDB, 0)
	v.SetDefault(KeyRedisPrefix, "brochure:")
	v.SetDefault(KeyInitTimeout, 5*time.Second)
	v.SetDefault(KeyFetchTimeout, 10*time.Second)
	v.SetDefault(KeyHTTPAddress, ":8080")
	v.SetDefault(KeyLogLevel, "info")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file and decodes everything into a Config.
// With an empty path, brochure.yaml is searched in the working directory;
// a missing file is not an error then. An explicit path must exist.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values viper cannot.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Identifier) == "" {
		return errors.New("config: identifier must not be empty")
	}
	switch c.Backend {
	case BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("config: unknown backend %q (want %s or %s)", c.Backend, BackendRedis, BackendMemory)
	}
	if c.Timeouts.Init < 0 || c.Timeouts.Fetch < 0 {
		return errors.New("config: timeouts must not be negative")
	}
	return nil
}
