package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/praxis/internal/llm"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad_KeepsDefaultsForAbsentKeys(t *testing.T) {
	p := writeConfig(t, `
dbPath: /var/lib/praxis/praxis.db
server:
  addr: ":9090"
  allowedOrigins: [https://app.example.com]
redis:
  ttl: 90s
llm:
  provider: gemini
  gemini:
    model: gemini-pro
`)
	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/praxis/praxis.db", cfg.DBPath)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout, "default kept")
	assert.Equal(t, 90*time.Second, cfg.Redis.TTL)
	assert.Equal(t, "praxis:", cfg.Redis.Prefix, "default kept")
	assert.Equal(t, llm.ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, "gemini-pro", cfg.LLM.Gemini.Model)
	assert.Equal(t, 3, cfg.LLM.Retry.MaxAttempts, "default kept")
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "server: [not, a, map]"))
	assert.ErrorContains(t, err, "parse config file")
}

func TestResolve_Precedence(t *testing.T) {
	p := writeConfig(t, "logLevel: debug\nserver:\n  addr: \":9090\"\n")
	cfg, err := Resolve(p, envMap(map[string]string{
		"PRAXIS_ADDR":         ":7070",
		"PRAXIS_CORS_ORIGINS": "https://a.example, https://b.example,",
		"PRAXIS_TOKEN_TTL":    "2h",
		"PRAXIS_JWT_SECRET":   "0123456789abcdef0123456789abcdef",
	}))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel, "file over default")
	assert.Equal(t, ":7070", cfg.Server.Addr, "env over file")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
}

func TestResolve_MissingFiles(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Resolve("", envMap(nil))
	require.NoError(t, err, "absent default file is fine")
	assert.Equal(t, Default().Server.Addr, cfg.Server.Addr)

	_, err = Resolve(filepath.Join(t.TempDir(), "nope.yaml"), envMap(nil))
	assert.Error(t, err, "explicit path must exist")

	_, err = Resolve("", envMap(map[string]string{"PRAXIS_CONFIG": "/definitely/not/here.yaml"}))
	assert.Error(t, err, "PRAXIS_CONFIG counts as explicit")
}

func TestApplyEnv_BadDuration(t *testing.T) {
	cfg := Default()
	err := ApplyEnv(&cfg, envMap(map[string]string{"PRAXIS_CACHE_TTL": "soon"}))
	assert.ErrorContains(t, err, "PRAXIS_CACHE_TTL")
}

func TestApplyEnv_LLM(t *testing.T) {
	t.Run("explicit provider", func(t *testing.T) {
		cfg := Default()
		require.NoError(t, ApplyEnv(&cfg, envMap(map[string]string{
			"PRAXIS_LLM_PROVIDER":   "openai",
			"PRAXIS_OPENAI_API_KEY": "sk-test",
			"ANTHROPIC_API_KEY":     "ignored",
		})))
		assert.Equal(t, llm.ProviderOpenAI, cfg.LLM.Provider)
		assert.Equal(t, "sk-test", cfg.LLM.OpenAI.APIKey)
		assert.Empty(t, cfg.LLM.Anthropic.APIKey)
	})

	t.Run("discovered", func(t *testing.T) {
		cfg := Default()
		cfg.LLM.Timeout = 5 * time.Second
		require.NoError(t, ApplyEnv(&cfg, envMap(map[string]string{"GEMINI_API_KEY": "g-key"})))
		assert.Equal(t, llm.ProviderGemini, cfg.LLM.Provider)
		assert.Equal(t, "g-key", cfg.LLM.Gemini.APIKey)
		assert.Equal(t, 5*time.Second, cfg.LLM.Timeout, "timeout survives discovery")
	})

	t.Run("none", func(t *testing.T) {
		cfg := Default()
		require.NoError(t, ApplyEnv(&cfg, envMap(nil)))
		assert.Error(t, cfg.LLM.Validate())
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"defaults", func(*Config) {}, ""},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "invalid log level"},
		{"no addr", func(c *Config) { c.Server.Addr = "" }, "server.addr"},
		{"short secret", func(c *Config) { c.Auth.Secret = "hunter2" }, "auth.secret"},
		{"zero ttl", func(c *Config) { c.Auth.TokenTTL = 0 }, "auth.tokenTTL"},
		{"zero attempts", func(c *Config) { c.LLM.Retry.MaxAttempts = 0 }, "maxAttempts"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{"debug": slog.LevelDebug, "INFO": slog.LevelInfo, "warn": slog.LevelWarn, "error": slog.LevelError} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}
