package judge

import (
	"context"
	"fmt"

	"github.com/abhisek/hintz/internal/hintgen"
	"github.com/abhisek/hintz/internal/llm"
)

// Config controls judge behavior.
type Config struct {
	// MaxTokens is the token budget for the verdict.
	MaxTokens int

	// Temperature is 0 so repeated judgments stay stable.
	Temperature float64

	// FormatRetries is how many extra same-call attempts to make when the
	// judge's output cannot be parsed into a score.
	FormatRetries int
}

// DefaultConfig returns recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:     256,
		Temperature:   0,
		FormatRetries: 2,
	}
}

// Verdict is one scored hint evaluation.
type Verdict struct {
	Score  int // 1-5
	Reason string
}

// FormatError reports judge output that could not be parsed into a score
// even after retries.
type FormatError struct {
	Output string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unparsable judge output: %q", truncateOutput(e.Output))
}

func truncateOutput(s string) string {
	const max = 120
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// Judge scores hints with an independent, stronger model. It is stateless
// per call.
type Judge struct {
	provider llm.Provider
	cfg      Config
}

// New creates a Judge with the given provider and config.
func New(provider llm.Provider, cfg Config) *Judge {
	return &Judge{provider: provider, cfg: cfg}
}

// Score evaluates a hint, returning an integer 1-5 verdict. Unparsable
// output is retried up to cfg.FormatRetries times before the call fails
// with *FormatError. Transport faults from the provider are returned
// as-is.
func (j *Judge) Score(ctx context.Context, req hintgen.Request, hint string) (Verdict, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeHintJudge)

	llmReq := llm.Request{
		System: judgeSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildJudgeMessage(req, hint)},
		},
		MaxTokens:   j.cfg.MaxTokens,
		Temperature: j.cfg.Temperature,
	}

	var lastOutput string
	for attempt := 0; attempt <= j.cfg.FormatRetries; attempt++ {
		resp, err := j.provider.Generate(ctx, llmReq)
		if err != nil {
			return Verdict{}, fmt.Errorf("judge call failed: %w", err)
		}

		out := string(resp.Content)
		if v, ok := parseVerdict(out); ok {
			return v, nil
		}
		lastOutput = out
	}

	return Verdict{}, &FormatError{Output: lastOutput}
}
