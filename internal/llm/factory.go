package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// NewProvider builds the configured provider. Calls pass through retry first,
// then request logging, so every individual attempt is recorded.
func NewProvider(ctx context.Context, cfg Config, events EventRecorder, log *slog.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if cfg.Timeout > 0 {
		base = withTimeout(base, cfg.Timeout)
	}
	if events != nil {
		base = WithLogging(base, cfg.Provider, events, log)
	}
	return WithRetry(base, cfg.Retry), nil
}

type timeoutProvider struct {
	Provider
	d time.Duration
}

// withTimeout bounds each attempt, leaving the caller's context to bound the whole call.
func withTimeout(p Provider, d time.Duration) Provider {
	return &timeoutProvider{Provider: p, d: d}
}

func (t *timeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.Provider.Generate(ctx, req)
}
