package console

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v2"
)

// Config is the console client configuration file
type Config struct {
	BaseURL     string        `yaml:"base_url"`
	Timeout     time.Duration `yaml:"timeout"`
	ReadRetries uint64        `yaml:"read_retries"`
	LogLevel    string        `yaml:"log_level"`
}

// DefaultConfig points at a local store
func DefaultConfig() Config {
	return Config{
		BaseURL:  "http://localhost:8000",
		Timeout:  10 * time.Second,
		LogLevel: "info",
	}
}

// LoadConfig reads a YAML config on top of DefaultConfig. A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) // #nosec G304
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}

	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		return cfg, errors.Errorf("config %s: base_url is empty", path)
	}
	if cfg.Timeout < 0 {
		return cfg, errors.Errorf("config %s: timeout must not be negative", path)
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return cfg, errors.Wrapf(err, "config %s: log_level", path)
	}
	return cfg, nil
}

// Logger builds a console-encoded logger at the configured level
func (c Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	cfg.DisableStacktrace = true
	return cfg.Build()
}
