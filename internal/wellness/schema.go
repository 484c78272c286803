package wellness

import "github.com/abhisek/wellnest/internal/llm"

// DiagnosisSchema is the expected shape of a symptom diagnosis.
var DiagnosisSchema = &llm.Schema{
	Name:        "symptom-diagnosis",
	Description: "A likely condition for the reported symptoms with a short explanation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"diagnosis": map[string]any{
				"type":        "string",
				"description": "The most likely condition name",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "A brief reason based on symptoms and answers",
			},
		},
		"required":             []any{"diagnosis", "explanation"},
		"additionalProperties": false,
	},
}

// ScreeningSchema is the expected shape of a mental-health screening.
// treatment_required is a plain string so that off-list values can be
// normalized instead of rejected.
var ScreeningSchema = &llm.Schema{
	Name:        "mental-health-screening",
	Description: "A possible insight from questionnaire responses",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"diagnosis": map[string]any{
				"type":        "string",
				"description": "A possible diagnosis or insight",
			},
			"recommendation": map[string]any{
				"type":        "string",
				"description": "What the user should do next",
			},
			"treatment_required": map[string]any{
				"type":        "string",
				"description": "Exactly \"yes\" or \"no\"",
			},
		},
		"required":             []any{"diagnosis", "recommendation", "treatment_required"},
		"additionalProperties": false,
	},
}

// PlanSchema is the expected shape of a health plan.
var PlanSchema = &llm.Schema{
	Name:        "health-plan",
	Description: "A personalized plan with diet, sleep and exercise options",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"diet":     planSection("Diet plan options"),
			"sleep":    planSection("Sleep schedule options"),
			"exercise": planSection("Workout options"),
		},
		"required":             []any{"diet", "sleep", "exercise"},
		"additionalProperties": false,
	},
}

func planSection(desc string) map[string]any {
	return map[string]any{
		"type":        "array",
		"minItems":    3,
		"items":       map[string]any{"type": "string", "minLength": 1},
		"description": desc,
	}
}
