package llm

import (
	"context"
	"encoding/json"
)

// Provider abstracts an LLM backend. Error analysis, hint generation,
// and judging all speak through it, so swapping the model behind any
// stage is a config change, not a code change.
type Provider interface {
	// Generate sends one prompt and returns the model's reply. When the
	// request carries a Schema the reply Content is JSON validated
	// against it; otherwise Content holds the raw reply text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID names the backing model, for event attribution and
	// cost lookup.
	ModelID() string
}

// Request describes one call to the model.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation so far. Hint and judge calls are
	// single-turn, so this is usually one user message.
	Messages []Message

	// Schema, when set, makes the provider use its native structured
	// output mechanism and validates the reply against it. Nil means
	// free text.
	Schema *Schema

	// MaxTokens caps the reply length.
	MaxTokens int

	// Temperature controls randomness, 0.0 to 1.0. Zero-valued means
	// deterministic.
	Temperature float64
}

// Message is one turn of conversation.
type Message struct {
	Role    Role
	Content string
}

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names a JSON structure the model must produce. The name
// doubles as the tool or format name on providers that want one, and
// keys the compiled-schema cache, so it must be stable per definition.
// Kebab-case, e.g. "error-assessment".
type Schema struct {
	Name        string
	Description string

	// Definition is the JSON Schema itself, as a map.
	Definition map[string]any
}

// Response holds the model's output.
type Response struct {
	// Content is validated JSON when the request had a Schema, or the
	// raw reply text otherwise.
	Content json.RawMessage

	// Usage is the provider-reported token consumption.
	Usage Usage

	// Model is the actual model that served the request, which can be
	// more specific than the configured ID (dated snapshots).
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage counts tokens for one request, as billed by the provider.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
