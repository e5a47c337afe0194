package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Snapshot stores a derived aggregate, currently the most recent benchmark
// report, so stats screens read one row instead of replaying the log.
type Snapshot struct {
	ent.Schema
}

func (Snapshot) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence").
			Comment("Last event sequence folded into this snapshot"),
		field.Time("timestamp").
			Default(time.Now).
			Comment("When the snapshot was written"),
		field.JSON("data", map[string]any{}).
			Comment("Aggregate payload, shape owned by the store package"),
	}
}

func (Snapshot) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("timestamp"),
		index.Fields("sequence"),
	}
}
