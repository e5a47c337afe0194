package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/hintz/internal/store"
)

// NewProvider creates the hint-generation Provider from configuration,
// already wrapped in the retry and logging middleware.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	base, err := newBaseProvider(ctx, cfg.Provider, cfg)
	if err != nil {
		return nil, err
	}
	return wrap(base, cfg, eventRepo), nil
}

// NewProviderFromEnv builds the hint-generation Provider from environment
// configuration. Pass a nil eventRepo to skip event logging.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo) (Provider, error) {
	cfg, err := ResolveConfig()
	if err != nil {
		return nil, err
	}
	return NewProvider(ctx, cfg, eventRepo)
}

// NewJudgeProvider creates the Provider that scores hints. It uses the
// judge model, falling back to the top-level provider selection when no
// dedicated judge provider is configured.
func NewJudgeProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	judged := cfg
	name := cfg.JudgeProvider()
	if cfg.Judge.Model != "" {
		switch name {
		case "anthropic":
			judged.Anthropic.Model = cfg.Judge.Model
		case "openai":
			judged.OpenAI.Model = cfg.Judge.Model
		case "gemini":
			judged.Gemini.Model = cfg.Judge.Model
		case "openrouter":
			judged.OpenRouter.Model = cfg.Judge.Model
		}
	}

	base, err := newBaseProvider(ctx, name, judged)
	if err != nil {
		return nil, fmt.Errorf("initializing judge provider: %w", err)
	}
	return wrap(base, cfg, eventRepo), nil
}

// NewFineTunedProvider creates a Provider for the fine-tuned model served
// from an OpenAI-compatible endpoint (HINTZ_FINETUNED_BASE_URL).
func NewFineTunedProvider(cfg Config, eventRepo store.EventRepo) (Provider, error) {
	if !cfg.HasFineTuned() {
		return nil, fmt.Errorf("fine-tuned model requires HINTZ_FINETUNED_MODEL and HINTZ_FINETUNED_BASE_URL")
	}

	base, err := newOpenAIProviderRaw(OpenAIConfig{
		APIKey:  cfg.FineTuned.APIKey,
		Model:   cfg.FineTuned.Model,
		BaseURL: cfg.FineTuned.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing fine-tuned provider: %w", err)
	}
	return wrap(base, cfg, eventRepo), nil
}

func newBaseProvider(ctx context.Context, name string, cfg Config) (Provider, error) {
	var base Provider
	var err error

	switch name {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", name)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", name, err)
	}
	return base, nil
}

// wrap applies the middleware chain: caller → retry → logging → base.
// A nil eventRepo skips the logging layer.
func wrap(base Provider, cfg Config, eventRepo store.EventRepo) Provider {
	inner := base
	if eventRepo != nil {
		inner = WithLogging(base, eventRepo)
	}
	return WithRetry(inner, cfg.Retry)
}
