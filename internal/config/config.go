// Package config loads the reference store server configuration from the environment.
package config

import (
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Store backends
const (
	StoreArangoDB = "arangodb"
	StoreMemory   = "memory"
)

// Configuration holds every setting of the reference store server
type Configuration struct {
	Port        string   `env:"ORGCONSOLE_PORT" envDefault:"8000"`
	Store       string   `env:"ORGCONSOLE_STORE" envDefault:"arangodb"`
	CORSOrigins []string `env:"ORGCONSOLE_CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:8080,http://127.0.0.1:3000"`

	ArangoHost     string `env:"ARANGO_HOST" envDefault:"localhost"`
	ArangoPort     string `env:"ARANGO_PORT" envDefault:"8529"`
	ArangoURL      string `env:"ARANGO_URL"`
	ArangoUser     string `env:"ARANGO_USER" envDefault:"root"`
	ArangoPass     string `env:"ARANGO_PASS" envDefault:"mypassword"`
	ArangoDatabase string `env:"ARANGO_DB" envDefault:"orgconsole"`
}

// DatabaseURL returns ARANGO_URL or builds one from host and port
func (c *Configuration) DatabaseURL() string {
	if c.ArangoURL != "" {
		return c.ArangoURL
	}
	return "http://" + c.ArangoHost + ":" + c.ArangoPort
}

// Load reads optional .env files and parses the environment.
// A missing env file is not an error.
func Load(envFiles ...string) (*Configuration, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "load env file %s", f)
		}
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.Wrap(err, "parse environment")
	}

	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	switch cfg.Store {
	case StoreArangoDB, StoreMemory:
	default:
		return nil, errors.Errorf("unknown store %q (want %s or %s)", cfg.Store, StoreArangoDB, StoreMemory)
	}
	return &cfg, nil
}
