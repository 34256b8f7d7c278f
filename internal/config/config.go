// Package config loads praxis settings from a YAML file and PRAXIS_*
// environment variables. Environment values override the file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/praxis/internal/llm"
)

// Config is the full application configuration.
type Config struct {
	DBPath     string       `yaml:"dbPath"`
	CatalogDir string       `yaml:"catalogDir"`
	LogLevel   string       `yaml:"logLevel"`
	Server     ServerConfig `yaml:"server"`
	Auth       AuthConfig   `yaml:"auth"`
	Redis      RedisConfig  `yaml:"redis"`
	LLM        llm.Config   `yaml:"llm"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr              string        `yaml:"addr"`
	AllowedOrigins    []string      `yaml:"allowedOrigins"`
	ReadHeaderTimeout time.Duration `yaml:"readHeaderTimeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdownTimeout"`
}

// AuthConfig configures bearer token verification for gated routes.
type AuthConfig struct {
	Secret   string        `yaml:"secret"`
	Issuer   string        `yaml:"issuer"`
	TokenTTL time.Duration `yaml:"tokenTTL"`
}

// RedisConfig enables the dashboard cache when URL is set.
type RedisConfig struct {
	URL    string        `yaml:"url"`
	Prefix string        `yaml:"prefix"`
	TTL    time.Duration `yaml:"ttl"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		Server: ServerConfig{
			Addr:              "127.0.0.1:8080",
			ReadHeaderTimeout: 10 * time.Second,
			ShutdownTimeout:   15 * time.Second,
		},
		Auth: AuthConfig{
			Issuer:   "praxis",
			TokenTTL: 24 * time.Hour,
		},
		Redis: RedisConfig{
			Prefix: "praxis:",
			TTL:    5 * time.Minute,
		},
		LLM: llm.DefaultConfig(),
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/praxis/config.yaml, falling back to ~/.config.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "praxis", "config.yaml"), nil
}

// Load reads a YAML file over the defaults. Keys absent from the file keep their default.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve builds the effective configuration: defaults, then the file at path
// (or the default path, which may be absent), then the environment.
func Resolve(path string, getenv func(string) string) (Config, error) {
	explicit := path != ""
	if !explicit {
		if p := getenv("PRAXIS_CONFIG"); p != "" {
			path, explicit = p, true
		} else if p, err := DefaultPath(); err == nil {
			path = p
		}
	}

	cfg := Default()
	if path != "" {
		loaded, err := Load(path)
		switch {
		case err == nil:
			cfg = loaded
		case !explicit && errors.Is(err, fs.ErrNotExist):
			// no file; defaults stand
		default:
			return cfg, err
		}
	}

	if err := ApplyEnv(&cfg, getenv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides cfg from PRAXIS_* variables. When no LLM key is
// configured, the vendors' standard API key variables are probed.
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	strVars := []struct {
		name string
		dst  *string
	}{
		{"PRAXIS_DB", &cfg.DBPath},
		{"PRAXIS_CATALOG_DIR", &cfg.CatalogDir},
		{"PRAXIS_LOG_LEVEL", &cfg.LogLevel},
		{"PRAXIS_ADDR", &cfg.Server.Addr},
		{"PRAXIS_JWT_SECRET", &cfg.Auth.Secret},
		{"PRAXIS_JWT_ISSUER", &cfg.Auth.Issuer},
		{"PRAXIS_REDIS_URL", &cfg.Redis.URL},
	}
	for _, v := range strVars {
		if s := getenv(v.name); s != "" {
			*v.dst = s
		}
	}

	durVars := []struct {
		name string
		dst  *time.Duration
	}{
		{"PRAXIS_TOKEN_TTL", &cfg.Auth.TokenTTL},
		{"PRAXIS_CACHE_TTL", &cfg.Redis.TTL},
		{"PRAXIS_LLM_TIMEOUT", &cfg.LLM.Timeout},
	}
	for _, v := range durVars {
		s := getenv(v.name)
		if s == "" {
			continue
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", v.name, s, err)
		}
		*v.dst = d
	}

	if s := getenv("PRAXIS_CORS_ORIGINS"); s != "" {
		cfg.Server.AllowedOrigins = nil
		for o := range strings.SplitSeq(s, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.Server.AllowedOrigins = append(cfg.Server.AllowedOrigins, o)
			}
		}
	}

	llm.ApplyEnv(&cfg.LLM, getenv)
	if cfg.LLM.Validate() != nil && getenv("PRAXIS_LLM_PROVIDER") == "" {
		if found, ok := llm.DiscoverConfig(getenv); ok {
			found.Retry, found.Timeout = cfg.LLM.Retry, cfg.LLM.Timeout
			cfg.LLM = found
		}
	}
	return nil
}

// Validate checks values that would otherwise fail late.
// A missing LLM key is not an error: action plans fall back to static prompts.
func (c Config) Validate() error {
	var errs []error
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr must be set"))
	}
	if c.Auth.Secret != "" && len(c.Auth.Secret) < 32 {
		errs = append(errs, errors.New("auth.secret must be at least 32 bytes"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("auth.tokenTTL must be positive"))
	}
	if c.LLM.Retry.MaxAttempts < 1 {
		errs = append(errs, errors.New("llm.retry.maxAttempts must be at least 1"))
	}
	return errors.Join(errs...)
}

// ParseLevel maps debug, info, warn or error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return l, fmt.Errorf("invalid log level %q", s)
	}
	return l, nil
}

// NewLogger returns a text logger at the configured level.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
