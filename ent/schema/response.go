package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Response is the raw answer to one question of an assessment.
type Response struct {
	ent.Schema
}

func (Response) Fields() []ent.Field {
	return []ent.Field{
		field.String("assessment_id"),
		field.String("question_id"),
		field.String("value").
			Comment("Answer as entered; option value or number"),
	}
}

func (Response) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("assessment_id", "question_id").Unique(),
	}
}
