package llm

import (
	"context"
	"slices"
)

// Purpose labels why a request was made. It is recorded with every
// logged request and used to group usage statistics.
type Purpose string

const (
	PurposeSymptomQuestions Purpose = "symptom-questions"
	PurposeDiagnosis        Purpose = "diagnosis"
	PurposeScreening        Purpose = "screening"
	PurposePlannerQuestions Purpose = "planner-questions"
	PurposeHealthPlan       Purpose = "health-plan"
	PurposeEnvironment      Purpose = "environment"
	PurposeFoodAnalysis     Purpose = "food-analysis"
	PurposeAssistant        Purpose = "assistant"

	PurposeUnknown Purpose = "unknown"
)

// Purposes lists the labels the application records, in flow order.
var Purposes = []Purpose{
	PurposeSymptomQuestions,
	PurposeDiagnosis,
	PurposeScreening,
	PurposePlannerQuestions,
	PurposeHealthPlan,
	PurposeEnvironment,
	PurposeFoodAnalysis,
	PurposeAssistant,
}

// Known reports whether p is one of Purposes.
func (p Purpose) Known() bool {
	return slices.Contains(Purposes, p)
}

type contextKey string

const purposeKey contextKey = "llm_purpose"

// WithPurpose attaches a purpose label to the context for event logging.
func WithPurpose(ctx context.Context, purpose Purpose) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) Purpose {
	if v, ok := ctx.Value(purposeKey).(Purpose); ok {
		return v
	}
	return PurposeUnknown
}
