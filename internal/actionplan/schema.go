package actionplan

import "github.com/abhisek/praxis/internal/llm"

// SOPSchema is the JSON shape of a drafted procedure.
var SOPSchema = &llm.Schema{
	Name:        "sop-draft",
	Description: "A short standard operating procedure addressing one assessment finding",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Procedure title (3-8 words)",
			},
			"steps": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    3,
				"maxItems":    8,
				"description": "Ordered, concrete steps, each one sentence naming who does what",
			},
		},
		"required":             []any{"title", "steps"},
		"additionalProperties": false,
	},
}

type sopOutput struct {
	Title string   `json:"title"`
	Steps []string `json:"steps"`
}
