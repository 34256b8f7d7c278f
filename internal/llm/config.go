package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	Provider   string         `yaml:"provider"`
	Anthropic  ProviderConfig `yaml:"anthropic"`
	OpenAI     ProviderConfig `yaml:"openai"`
	Gemini     ProviderConfig `yaml:"gemini"`
	OpenRouter ProviderConfig `yaml:"openrouter"`
	Retry      RetryConfig    `yaml:"retry"`
	Timeout    time.Duration  `yaml:"timeout"`
}

// ProviderConfig is the per-provider connection setting.
type ProviderConfig struct {
	APIKey  string `yaml:"apiKey"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"baseURL,omitempty"`
}

// RetryConfig configures backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int           `yaml:"maxAttempts"`
	InitialWait time.Duration `yaml:"initialWait"`
	MaxWait     time.Duration `yaml:"maxWait"`
	Multiplier  float64       `yaml:"multiplier"`
}

// DefaultConfig returns a Config with sensible defaults and no provider keys.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  ProviderConfig{Model: "claude-sonnet"},
		OpenAI:     ProviderConfig{Model: "gpt-4.1-mini"},
		Gemini:     ProviderConfig{Model: "gemini-flash"},
		OpenRouter: ProviderConfig{Model: "anthropic/claude-sonnet-4.5", BaseURL: defaultOpenRouterBaseURL},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 60 * time.Second,
	}
}

// section returns the provider-specific settings for name.
func (c *Config) section(name string) *ProviderConfig {
	switch name {
	case ProviderAnthropic:
		return &c.Anthropic
	case ProviderOpenAI:
		return &c.OpenAI
	case ProviderGemini:
		return &c.Gemini
	case ProviderOpenRouter:
		return &c.OpenRouter
	}
	return nil
}

// ApplyEnv overrides cfg from PRAXIS_* variables: PRAXIS_LLM_PROVIDER and,
// per provider, PRAXIS_<NAME>_API_KEY, _MODEL and _BASE_URL.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	if p := getenv("PRAXIS_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}
	for _, name := range []string{ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter} {
		sec := cfg.section(name)
		prefix := "PRAXIS_" + envName(name)
		if v := getenv(prefix + "_API_KEY"); v != "" {
			sec.APIKey = v
		}
		if v := getenv(prefix + "_MODEL"); v != "" {
			sec.Model = v
		}
		if v := getenv(prefix + "_BASE_URL"); v != "" {
			sec.BaseURL = v
		}
	}
}

func envName(provider string) string {
	out := make([]byte, len(provider))
	for i := range provider {
		c := provider[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}

// ConfigFromEnv builds a Config from defaults plus PRAXIS_* overrides.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	ApplyEnv(&cfg, os.Getenv)
	return cfg
}

// discoveryOrder is the order in which vendor API key variables are probed.
var discoveryOrder = []struct{ env, provider string }{
	{"ANTHROPIC_API_KEY", ProviderAnthropic},
	{"OPENAI_API_KEY", ProviderOpenAI},
	{"GEMINI_API_KEY", ProviderGemini},
	{"OPENROUTER_API_KEY", ProviderOpenRouter},
}

// DiscoverConfig probes the vendors' standard API key variables and returns
// a Config for the first one set. Returns false if none is.
func DiscoverConfig(getenv func(string) string) (Config, bool) {
	cfg := DefaultConfig()
	for _, d := range discoveryOrder {
		if k := getenv(d.env); k != "" {
			cfg.Provider = d.provider
			cfg.section(d.provider).APIKey = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected provider has its API key set.
func (c Config) Validate() error {
	if c.Provider == ProviderMock {
		return nil
	}
	sec := c.section(c.Provider)
	if sec == nil {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if sec.APIKey == "" {
		return fmt.Errorf("PRAXIS_%s_API_KEY is required for the %s provider", envName(c.Provider), c.Provider)
	}
	return nil
}
