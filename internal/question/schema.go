package question

import "github.com/abhisek/wellnest/internal/llm"

// SetSchema returns the JSON schema for a generated question set of
// exactly count questions with optionCount options each.
func SetSchema(name string, count, optionCount int) *llm.Schema {
	return &llm.Schema{
		Name:        name,
		Description: "A list of multiple-choice follow-up questions",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"questions": map[string]any{
					"type":     "array",
					"minItems": count,
					"maxItems": count,
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"question": map[string]any{
								"type":        "string",
								"description": "The question text shown to the user",
							},
							"options": map[string]any{
								"type":        "array",
								"minItems":    optionCount,
								"maxItems":    optionCount,
								"items":       map[string]any{"type": "string"},
								"description": "The answer choices, in display order",
							},
						},
						"required":             []any{"question", "options"},
						"additionalProperties": false,
					},
				},
			},
			"required":             []any{"questions"},
			"additionalProperties": false,
		},
	}
}
