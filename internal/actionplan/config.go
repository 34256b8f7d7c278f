package actionplan

// Config holds SOP drafting settings.
type Config struct {
	MaxTokens   int
	Temperature float64
	// Workers bounds concurrent LLM calls for one plan.
	Workers int
}

// DefaultConfig returns sensible defaults for SOP drafting.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.4,
		Workers:     3,
	}
}
