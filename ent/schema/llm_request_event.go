package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// LLMRequestEvent records one LLM API call. The stats and llm commands
// aggregate these rows for cost accounting; the stored bodies support
// prompt debugging after the fact.
type LLMRequestEvent struct {
	ent.Schema
}

func (LLMRequestEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (LLMRequestEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("provider").
			Comment("Provider name: anthropic, openai, gemini, openrouter"),
		field.String("model").
			Comment("Resolved model ID the request went to"),
		field.String("purpose").
			Comment("Pipeline stage label: error_analysis, hint_generation, hint_judge, baseline_hint"),
		field.Int("input_tokens").
			Default(0).
			Comment("Prompt tokens reported by the provider"),
		field.Int("output_tokens").
			Default(0).
			Comment("Completion tokens reported by the provider"),
		field.Int64("latency_ms").
			Default(0).
			Comment("Wall-clock request duration"),
		field.Bool("success").
			Comment("Whether the request succeeded"),
		field.String("error_message").
			Default("").
			Comment("Error text for failed requests"),
		field.Text("request_body").
			Default("").
			Comment("Rendered prompt, clipped to a size cap"),
		field.Text("response_body").
			Default("").
			Comment("Raw response content, clipped to a size cap"),
	}
}

func (LLMRequestEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("provider"),
		index.Fields("purpose"),
		index.Fields("success"),
	}
}
