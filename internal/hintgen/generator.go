package hintgen

import (
	"context"

	"github.com/abhisek/hintz/internal/llm"
	"github.com/abhisek/hintz/internal/strategy"
)

// Config controls the behavior of the Generator.
type Config struct {
	// MaxTokens caps the model's reply. Hints are short, so the
	// default is small.
	MaxTokens int

	// Temperature for hint generation. Low but nonzero, so retries
	// on the same strategy can produce a different hint.
	Temperature float64
}

// DefaultConfig returns recommended defaults for short hints.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   128,
		Temperature: 0.2,
	}
}

// Generator produces tutoring hints using an LLM provider. It is stateless
// per call; the backing model (base or fine-tuned) is whatever provider it
// was constructed with.
type Generator struct {
	provider llm.Provider
	cfg      Config
}

// New creates a Generator with the given provider and config.
func New(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, cfg: cfg}
}

// ModelID returns the backing model identifier.
func (g *Generator) ModelID() string {
	return g.provider.ModelID()
}

// Generate produces a hint conditioned on the given strategy. The output
// never contains code: fenced blocks are stripped and the text is clamped
// to two sentences. Failures are reported as *GenerationError.
func (g *Generator) Generate(ctx context.Context, req Request, strat strategy.Strategy) (string, error) {
	return g.generate(ctx, req, strat, llm.PurposeHintGeneration)
}

// Baseline produces a single-shot hint without the judged retry loop,
// using the direct strategy. Used for benchmark comparison rows.
func (g *Generator) Baseline(ctx context.Context, req Request) (string, error) {
	return g.generate(ctx, req, strategy.Direct, llm.PurposeBaselineHint)
}

func (g *Generator) generate(ctx context.Context, req Request, strat strategy.Strategy, purpose string) (string, error) {
	ctx = llm.WithPurpose(ctx, purpose)

	llmReq := llm.Request{
		System: tutorSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildHintMessage(req, strat)},
		},
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	}

	// An unusable reply (sanitizes to nothing, or a fence survives) gets
	// one fresh generation before the strategy slot is given up.
	var lastErr error
	for tries := 0; tries < 2; tries++ {
		resp, err := g.provider.Generate(ctx, llmReq)
		if err != nil {
			return "", &GenerationError{Strategy: strat, Err: err}
		}

		hint := Sanitize(string(resp.Content))
		if err := validateHint(hint); err != nil {
			lastErr = err
			continue
		}
		return hint, nil
	}
	return "", &GenerationError{Strategy: strat, Err: lastErr}
}
