package questions

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const questionSchemaURL = "schema://question.json"

// interpretationKeyPattern matches score-bucket keys: "3", "2.5" or an inclusive range "1-2".
const interpretationKeyPattern = `^[0-9]+(\.[0-9]+)?(-[0-9]+(\.[0-9]+)?)?$`

func optionSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"value": map[string]any{"type": "string", "minLength": 1},
			"score": map[string]any{"type": "number"},
			"text":  map[string]any{"type": "string"},
		},
		"required":             []any{"value", "score", "text"},
		"additionalProperties": false,
	}
}

// QuestionSchema returns the JSON Schema every catalog entry must satisfy.
func QuestionSchema() map[string]any {
	return map[string]any{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type":    "object",
		"properties": map[string]any{
			"id":       map[string]any{"type": "string", "minLength": 1},
			"text":     map[string]any{"type": "string", "minLength": 1},
			"type":     map[string]any{"enum": enumValues(AllTypes())},
			"category": map[string]any{"enum": enumValues(AllCategories())},
			"moduleId": map[string]any{"type": "string", "minLength": 1},
			"applicableDisciplines": map[string]any{
				"type":  []any{"array", "null"},
				"items": map[string]any{"enum": enumValues(AllDisciplines())},
			},
			"universalQuestion": map[string]any{"type": "boolean"},
			"options": map[string]any{
				"type":  "array",
				"items": optionSchema(),
			},
			"weight":   map[string]any{"type": "number", "minimum": 0},
			"helpText": map[string]any{"type": "string"},
			"impactAreas": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"applicablePracticeSizes": map[string]any{
				"type":  "array",
				"items": map[string]any{"enum": enumValues(AllPracticeSizes())},
			},
			"trackingPeriod":     map[string]any{"enum": []any{"weekly", "monthly", "quarterly", "annually"}},
			"benchmarkReference": map[string]any{"type": "string"},
			"scoreInterpretation": map[string]any{
				"type":          "object",
				"propertyNames": map[string]any{"pattern": interpretationKeyPattern},
				"additionalProperties": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"interpretation": map[string]any{"type": "string", "minLength": 1},
						"actionPrompts": map[string]any{
							"type":  []any{"array", "null"},
							"items": map[string]any{"type": "string"},
						},
						"priority":  map[string]any{"enum": []any{"low", "medium", "high", "critical"}},
						"timeframe": map[string]any{"type": "string"},
					},
					"required":             []any{"interpretation"},
					"additionalProperties": false,
				},
			},
			"sopRelevance": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"relevant": map[string]any{"type": "boolean"},
					"sopTypes": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
					"ragParameters": map[string]any{"type": "object"},
				},
				"required":             []any{"relevant"},
				"additionalProperties": false,
			},
			"disciplineSpecific": map[string]any{
				"type":          "object",
				"propertyNames": map[string]any{"enum": enumValues(AllDisciplines())},
				"additionalProperties": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"helpText": map[string]any{"type": "string"},
						"options": map[string]any{
							"type":  "array",
							"items": optionSchema(),
						},
						"weight": map[string]any{"type": "number", "minimum": 0},
					},
					"additionalProperties": false,
				},
			},
		},
		"required": []any{
			"id", "text", "type", "category", "moduleId",
			"applicableDisciplines", "universalQuestion", "weight",
		},
		"additionalProperties": false,
		// Choice questions must carry at least one option.
		"allOf": []any{
			map[string]any{
				"if": map[string]any{
					"properties": map[string]any{
						"type": map[string]any{"enum": []any{
							string(TypeMultipleChoice), string(TypeScale), string(TypeYesNo),
						}},
					},
					"required": []any{"type"},
				},
				"then": map[string]any{
					"properties": map[string]any{
						"options": map[string]any{"minItems": 1},
					},
					"required": []any{"options"},
				},
			},
		},
	}
}

// compiledSchema compiles QuestionSchema once per process.
var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	// The compiler wants a parsed JSON value, not Go maps with typed slices.
	defBytes, err := json.Marshal(QuestionSchema())
	if err != nil {
		return nil, fmt.Errorf("marshal question schema: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse question schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(questionSchemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(questionSchemaURL)
})

// validateRaw checks one decoded question document against the schema.
// v may be any JSON-marshalable value; it is normalised to JSON first.
func validateRaw(v any) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile question schema: %w", err)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode question: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("decode question: %w", err)
	}
	return schema.Validate(doc)
}

func enumValues[T ~string](vals []T) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}
