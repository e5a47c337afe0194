package llm

import "context"

// Purpose labels for LLM calls, recorded on each request event and
// surfaced by hintz llm list/stats. Every call site tags its context
// with one of these before hitting the provider.
const (
	PurposeErrorAnalysis  = "error_analysis"
	PurposeHintGeneration = "hint_generation"
	PurposeHintJudge      = "hint_judge"
	PurposeBaselineHint   = "baseline_hint"
)

type contextKey string

const purposeKey contextKey = "llm_purpose"

// WithPurpose tags the context so the logging middleware can attribute
// the call to a pipeline stage.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom extracts the purpose label from the context. Calls that
// never tagged one report as "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}
