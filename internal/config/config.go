package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Provider kinds accepted in provider.kind.
const (
	ProviderStatic   = "static"
	ProviderHTTP     = "http"
	ProviderPostgres = "postgres"
	ProviderSQLite   = "sqlite"
)

type Config struct {
	Server struct {
		Port        string   `yaml:"port"`
		CORSOrigins []string `yaml:"corsOrigins"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	SQLite struct {
		Path string `yaml:"path"`
	} `yaml:"sqlite"`
	Provider struct {
		Kind  string `yaml:"kind"`
		URL   string `yaml:"url"`
		Shape string `yaml:"shape"`
	} `yaml:"provider"`
	Catalog struct {
		TTL string `yaml:"ttl"`
	} `yaml:"catalog"`
	Quiz struct {
		PassThreshold float64 `yaml:"passThreshold"`
	} `yaml:"quiz"`
}

// Default is the configuration used when no file exists: built-in catalog,
// in-memory stores.
func Default() Config {
	cfg := Config{}
	cfg.Provider.Kind = ProviderStatic
	cfg.Quiz.PassThreshold = 0.5
	return cfg
}

// Load reads YAML config from path on top of Default. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Provider.Kind == "" {
		cfg.Provider.Kind = ProviderStatic
	}
	return cfg, nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
