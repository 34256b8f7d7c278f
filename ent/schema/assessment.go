package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Assessment is one completed practice assessment and its scored report.
type Assessment struct {
	ent.Schema
}

func (Assessment) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			Immutable().
			Comment("UUID assigned when the form completes"),
		field.Int64("sequence").
			Immutable().
			Comment("Global sequence number at save time"),
		field.String("practice_name"),
		field.String("discipline"),
		field.String("practice_size"),
		field.String("catalog_version").
			Comment("Semantic version of the catalog the answers were given against"),
		field.Float("overall").
			Comment("Overall score, 0-100"),
		field.String("bucket"),
		field.JSON("report", map[string]any{}).
			Comment("Full scoring report"),
		field.Time("started_at"),
		field.Time("completed_at"),
	}
}

func (Assessment) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("completed_at"),
	}
}
