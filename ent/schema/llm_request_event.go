package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// LLMRequestEvent is one provider call: who served it, what it cost in
// tokens and time, and the bodies needed to replay it.
type LLMRequestEvent struct {
	ent.Schema
}

// Annotations maps the schema onto the llm_requests table.
func (LLMRequestEvent) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "llm_requests"},
	}
}

func (LLMRequestEvent) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence").Immutable(),
		field.Time("timestamp").Default(time.Now).Immutable(),

		field.Enum("provider").Values("anthropic", "openai", "gemini", "openrouter", "mock"),
		field.String("model"),
		field.String("purpose").Comment("sop, or another caller label"),

		field.Int("input_tokens").NonNegative().Default(0),
		field.Int("output_tokens").NonNegative().Default(0),
		field.Int64("latency_ms").NonNegative().Default(0),

		field.Bool("success"),
		field.String("error_message").Default(""),
		field.Text("request_body").Default(""),
		field.Text("response_body").Default(""),
	}
}

func (LLMRequestEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("sequence"),
		index.Fields("purpose", "timestamp"),
		index.Fields("model"),
	}
}
