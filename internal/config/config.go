// Package config loads the server configuration from a YAML file and the environment.
package config

import (
	"strings"
	"time"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/pkg/errors"
)

// EnvPrefix is the prefix of the environment variables overriding the configuration file.
// Nested keys are separated by a double underscore (e.g. BUCKETLIST_DATABASE__DRIVER).
const EnvPrefix = "BUCKETLIST_"

// Database drivers.
const (
	DriverStorm    = "storm"
	DriverPostgres = "postgres"
)

type (
	// A Config holds the whole server configuration.
	// It is built once at startup and never mutated afterwards.
	Config struct {
		Address        string     `koanf:"address"`
		SecretKey      string     `koanf:"secret_key"`
		NoRegistration bool       `koanf:"no_registration"`
		Database       Database   `koanf:"database"`
		Token          Token      `koanf:"token"`
		Pagination     Pagination `koanf:"pagination"`
		Log            Log        `koanf:"log"`
	}

	// Database holds the storage parameters.
	Database struct {
		Driver string `koanf:"driver"`
		Path   string `koanf:"path"`
		DSN    string `koanf:"dsn"`
	}

	// Token holds the bearer token parameters.
	Token struct {
		TTL time.Duration `koanf:"ttl"`
	}

	// Pagination holds the bucketlists pagination parameters.
	Pagination struct {
		DefaultLimit int `koanf:"default_limit"`
		MaxLimit     int `koanf:"max_limit"`
	}

	// Log holds the logger parameters.
	Log struct {
		Level  string `koanf:"level"`
		Format string `koanf:"format"`
		File   string `koanf:"file"`
	}
)

var defaults = map[string]any{
	"address":                  "localhost:5000",
	"no_registration":          false,
	"database.driver":          DriverStorm,
	"database.path":            "",
	"token.ttl":                "1h",
	"pagination.default_limit": 20,
	"pagination.max_limit":     100,
	"log.level":                "info",
	"log.format":               "text",
}

// Load reads the configuration from the given YAML file (optional) and the environment.
func Load(filename string) (*Config, error) {
	konf := koanf.New(".")
	if err := konf.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, errors.Wrap(err, "could not load defaults")
	}

	if filename != "" {
		if err := konf.Load(file.Provider(filename), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "could not load %s", filename)
		}
	}

	err := konf.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not load environment")
	}

	var cfg Config
	if err := konf.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, "could not parse configuration")
	}

	return &cfg, nil
}

// Validate checks the parameters required to run the server.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return errors.New("secret_key not found")
	}

	switch c.Database.Driver {
	case DriverStorm:
	case DriverPostgres:
		if c.Database.DSN == "" {
			return errors.New("database.dsn not found")
		}
	default:
		return errors.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if c.Pagination.DefaultLimit <= 0 || c.Pagination.MaxLimit < c.Pagination.DefaultLimit {
		return errors.New("invalid pagination limits")
	}

	return nil
}
