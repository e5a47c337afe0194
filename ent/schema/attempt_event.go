package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AttemptEvent records one scored hint attempt within a tutoring session.
type AttemptEvent struct {
	ent.Schema
}

func (AttemptEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AttemptEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").NotEmpty(),
		field.Int("attempt_index").
			Comment("Zero-based position in the session's attempt log"),
		field.String("strategy").
			NotEmpty().
			Comment("direct, questions, or step_by_step"),
		field.Int("score").
			Comment("Judge score 1-5"),
		field.String("hint_text").NotEmpty(),
		field.String("judge_reason").
			Default("").
			Comment("Judge's one-line justification, empty when unparsable"),
	}
}

func (AttemptEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("strategy"),
		index.Fields("score"),
	}
}
