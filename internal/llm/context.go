package llm

import "context"

type purposeKey struct{}

// Request purposes recorded with each LLM call.
const (
	PurposeSOP     = "sop"
	PurposeSummary = "summary"
	PurposeUnknown = "unknown"
)

// WithPurpose labels every LLM call made with ctx.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or PurposeUnknown.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return PurposeUnknown
}
