package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(stepsSchema().Definition)

	if s.Type != genai.TypeObject {
		t.Fatalf("type = %v, want object", s.Type)
	}
	steps, ok := s.Properties["steps"]
	if !ok {
		t.Fatal("missing steps property")
	}
	if steps.Type != genai.TypeArray || steps.Items == nil || steps.Items.Type != genai.TypeString {
		t.Fatalf("steps = %+v, want array of string", steps)
	}
	if steps.MinItems == nil || *steps.MinItems != 1 {
		t.Fatalf("minItems = %v, want 1", steps.MinItems)
	}
	if len(s.Required) != 1 || s.Required[0] != "steps" {
		t.Fatalf("required = %v", s.Required)
	}
}

func TestGeminiSchema_Enum(t *testing.T) {
	s := geminiSchema(map[string]any{"type": "string", "enum": []string{"low", "high"}})
	if len(s.Enum) != 2 || s.Enum[1] != "high" {
		t.Fatalf("enum = %v", s.Enum)
	}
	if s := geminiSchema(map[string]any{"type": "tuple"}); s.Type != genai.TypeString {
		t.Fatalf("unknown type mapped to %v, want string", s.Type)
	}
}
