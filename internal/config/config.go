// Package config loads graphix settings from GRAPHIX_* environment
// variables and an optional .env file.
package config

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/koustreak/graphix/internal/errs"
	"github.com/koustreak/graphix/internal/filestore"
	"github.com/koustreak/graphix/internal/logger"
)

// EnvPrefix is prepended to every variable name.
const EnvPrefix = "GRAPHIX_"

// Config is the full graphix configuration.
type Config struct {
	Log    LogConfig    `envPrefix:"LOG_"`
	Output OutputConfig `envPrefix:"OUT_"`
	Store  StoreConfig  `envPrefix:"STORE_"`
	Server ServerConfig `envPrefix:"SERVER_"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `env:"LEVEL"  envDefault:"info"` // debug, info, warn, error
	Format string `env:"FORMAT" envDefault:"json"` // json, console
}

// OutputConfig controls where generated artifacts land on disk.
type OutputConfig struct {
	Dir string `env:"DIR" envDefault:"schema"`
	DDL bool   `env:"DDL" envDefault:"false"`
}

// StoreConfig configures artifact publishing. An empty endpoint disables it.
type StoreConfig struct {
	Endpoint  string `env:"ENDPOINT"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	UseSSL    bool   `env:"USE_SSL"    envDefault:"false"`
	Region    string `env:"REGION"`
	Bucket    string `env:"BUCKET"     envDefault:"graphix"`
	Prefix    string `env:"PREFIX"     envDefault:"schemas"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr         string        `env:"ADDR"          envDefault:":8080"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT"  envDefault:"10s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
}

// Load reads envFile (if it exists) and the process environment. Process
// variables win over the file.
func Load(envFile string) (*Config, error) {
	environ := env.ToMap(os.Environ())
	if envFile != "" {
		vars, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			for k, v := range vars {
				if _, set := environ[k]; !set {
					environ[k] = v
				}
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, errs.Wrap(errs.ErrKindInvalidInput, "failed to read "+envFile, err)
		}
	}
	return Parse(environ)
}

// Parse builds a validated Config from environ. A nil map reads the process
// environment.
func Parse(environ map[string]string) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{
		Prefix:      EnvPrefix,
		Environment: environ,
	}); err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "failed to parse environment variables", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings no component can run with.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errs.Newf(errs.ErrKindInvalidInput, "invalid log level %q (must be debug, info, warn or error)", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return errs.Newf(errs.ErrKindInvalidInput, "invalid log format %q (must be json or console)", c.Log.Format)
	}
	if c.Output.Dir == "" {
		return errs.New(errs.ErrKindInvalidInput, "output directory must not be empty")
	}
	if c.Store.Endpoint != "" && c.Store.Bucket == "" {
		return errs.New(errs.ErrKindInvalidInput, "store bucket is required when an endpoint is set")
	}
	if c.Server.Addr == "" {
		return errs.New(errs.ErrKindInvalidInput, "server address must not be empty")
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return errs.New(errs.ErrKindInvalidInput, "server timeouts must be positive")
	}
	return nil
}

// Logger returns the logger configuration writing to out.
func (c LogConfig) Logger(out io.Writer) *logger.Config {
	return &logger.Config{
		Level:      c.Level,
		Format:     c.Format,
		TimeFormat: "rfc3339",
		Output:     out,
	}
}

// Filestore returns the object storage configuration.
func (c StoreConfig) Filestore() *filestore.Config {
	return &filestore.Config{
		Provider:  filestore.ProviderMinIO,
		Endpoint:  c.Endpoint,
		AccessKey: c.AccessKey,
		SecretKey: c.SecretKey,
		UseSSL:    c.UseSSL,
		Region:    c.Region,
		Bucket:    c.Bucket,
		Prefix:    c.Prefix,
	}
}
