package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config collects every provider, judge, and retry setting the llm
// package reads.
type Config struct {
	// Provider selects which backend serves hint generation. One of
	// "anthropic", "openai", "gemini", "openrouter", "mock".
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Judge      JudgeConfig
	FineTuned  FineTunedConfig
	Retry      RetryConfig

	// Timeout bounds a single LLM request including retries.
	Timeout time.Duration
}

// AnthropicConfig carries the Anthropic credentials and model choice.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenAIConfig carries the OpenAI credentials and model choice.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for OpenAI-compatible APIs.
}

// GeminiConfig carries the Gemini credentials and model choice.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// OpenRouterConfig carries the OpenRouter credentials and model choice.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.0-flash-exp"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// JudgeConfig selects the model that scores hints. The judge should be a
// stronger model than the one generating hints, and runs at temperature 0.
// An empty Provider inherits the top-level Provider selection.
type JudgeConfig struct {
	Provider string
	Model    string // Default: "gpt-4o-mini" when the judge runs on openai.
}

// FineTunedConfig points at an OpenAI-compatible endpoint (e.g. a local
// vLLM server) serving the fine-tuned hint model. Both Model and BaseURL
// must be set for the fine-tuned handle to be usable.
type FineTunedConfig struct {
	Model   string
	BaseURL string
	APIKey  string // Optional. Local servers usually ignore it.
}

// RetryConfig shapes the backoff applied to transient provider failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the baseline Config that env overrides build on.
func DefaultConfig() Config {
	return Config{
		Provider: "anthropic",
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.0-flash-exp",
		},
		Judge: JudgeConfig{
			Model: "gpt-4o-mini",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv builds a Config from HINTZ_* environment variables,
// keeping defaults for anything unset.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	overrides := []struct {
		env string
		dst *string
	}{
		{"HINTZ_LLM_PROVIDER", &cfg.Provider},
		{"HINTZ_ANTHROPIC_API_KEY", &cfg.Anthropic.APIKey},
		{"HINTZ_ANTHROPIC_MODEL", &cfg.Anthropic.Model},
		{"HINTZ_OPENAI_API_KEY", &cfg.OpenAI.APIKey},
		{"HINTZ_OPENAI_MODEL", &cfg.OpenAI.Model},
		{"HINTZ_OPENAI_BASE_URL", &cfg.OpenAI.BaseURL},
		{"HINTZ_GEMINI_API_KEY", &cfg.Gemini.APIKey},
		{"HINTZ_GEMINI_MODEL", &cfg.Gemini.Model},
		{"HINTZ_OPENROUTER_API_KEY", &cfg.OpenRouter.APIKey},
		{"HINTZ_OPENROUTER_MODEL", &cfg.OpenRouter.Model},
		{"HINTZ_JUDGE_PROVIDER", &cfg.Judge.Provider},
		{"HINTZ_JUDGE_MODEL", &cfg.Judge.Model},
		{"HINTZ_FINETUNED_MODEL", &cfg.FineTuned.Model},
		{"HINTZ_FINETUNED_BASE_URL", &cfg.FineTuned.BaseURL},
		{"HINTZ_FINETUNED_API_KEY", &cfg.FineTuned.APIKey},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.dst = v
		}
	}

	return cfg
}

// DiscoverConfig probes the standard API key variables and returns a
// Config for the first provider whose key is present. Gemini first:
// its free tier makes it the likeliest key on a fresh machine.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	probes := []struct {
		env      string
		provider string
		key      *string
	}{
		{"GEMINI_API_KEY", "gemini", &cfg.Gemini.APIKey},
		{"OPENAI_API_KEY", "openai", &cfg.OpenAI.APIKey},
		{"ANTHROPIC_API_KEY", "anthropic", &cfg.Anthropic.APIKey},
		{"OPENROUTER_API_KEY", "openrouter", &cfg.OpenRouter.APIKey},
	}
	for _, p := range probes {
		if k := os.Getenv(p.env); k != "" {
			cfg.Provider = p.provider
			*p.key = k
			return cfg, true
		}
	}

	return Config{}, false
}

// ResolveConfig returns the effective Config from the environment.
// HINTZ_* variables take precedence. When no provider was explicitly
// selected and the default has no key, standard API key variables are
// probed via DiscoverConfig.
func ResolveConfig() (Config, error) {
	cfg := ConfigFromEnv()
	explicit := os.Getenv("HINTZ_LLM_PROVIDER") != ""

	err := cfg.Validate()
	if err == nil {
		return cfg, nil
	}
	if explicit {
		// An explicit provider choice is never silently overridden.
		return Config{}, err
	}

	if discovered, ok := DiscoverConfig(); ok {
		return discovered, nil
	}
	return Config{}, fmt.Errorf("no LLM provider configured: set HINTZ_LLM_PROVIDER and its API key, or export one of GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY")
}

// JudgeProvider returns the provider name the judge runs on, inheriting
// the top-level provider when unset.
func (c Config) JudgeProvider() string {
	if c.Judge.Provider != "" {
		return c.Judge.Provider
	}
	return c.Provider
}

// HasFineTuned reports whether a usable fine-tuned handle is configured.
func (c Config) HasFineTuned() bool {
	return c.FineTuned.Model != "" && c.FineTuned.BaseURL != ""
}

// Validate reports whether the selected provider can actually be used,
// meaning its API key is present.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}

	keyByProvider := map[string]string{
		"anthropic":  c.Anthropic.APIKey,
		"openai":     c.OpenAI.APIKey,
		"gemini":     c.Gemini.APIKey,
		"openrouter": c.OpenRouter.APIKey,
	}
	key, ok := keyByProvider[c.Provider]
	if !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("HINTZ_%s_API_KEY is required for the %s provider",
			strings.ToUpper(c.Provider), c.Provider)
	}
	return nil
}
