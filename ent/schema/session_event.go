package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionEvent records tutoring session lifecycle events (start/end/cancel).
type SessionEvent struct {
	ent.Schema
}

func (SessionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (SessionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("UUID grouping events in a session"),
		field.String("action").
			NotEmpty().
			Comment("start, end, or cancel"),
		field.String("problem_id").
			Default("").
			Comment("Dataset problem identifier, empty for ad-hoc sessions"),
		field.String("complexity").
			Default("").
			Comment("Assessed complexity (on start only)"),
		field.Bool("accepted").
			Default(false).
			Comment("Whether a hint met the acceptance threshold (on end only)"),
		field.Int("final_score").
			Default(0).
			Comment("Score of the returned hint (on end only)"),
		field.Int("attempt_count").
			Default(0).
			Comment("Scored attempts made (on end only)"),
		field.Int64("duration_ms").
			Default(0).
			Comment("Session wall-clock time (on end only)"),
		field.JSON("plan", []string{}).
			Optional().
			Comment("Ordered strategy plan (on start only)"),
	}
}

func (SessionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("action"),
		index.Fields("accepted"),
	}
}
