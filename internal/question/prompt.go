package question

import (
	"fmt"
	"strings"
)

const symptomSystemPrompt = `You are a helpful medical assistant. Based on the symptoms the user reports, generate concise follow-up questions that gather more information for a potential diagnosis.

Rules:
- Each question must include exactly the requested number of multiple-choice options.
- Options must be medically relevant and mutually exclusive.
- Return only a JSON object of the form {"questions": [{"question": "...", "options": ["...", "..."]}]}.
- Do not include any explanation, markdown, or text outside the JSON object.`

const plannerSystemPrompt = `You are a helpful health planning assistant. Generate follow-up questions that help you understand the user's current habits, constraints, preferences, and needs for their stated objective.

Rules:
- Each question must include exactly the requested number of multiple-choice options that are realistic and relevant.
- Return only a JSON object of the form {"questions": [{"question": "...", "options": ["...", "..."]}]}.
- Do not include any explanations or formatting outside the JSON.`

func symptomUserMessage(symptoms []string, count, optionCount int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Symptoms: %s\n", strings.Join(symptoms, ", "))
	fmt.Fprintf(&b, "Number of questions: %d\n", count)
	fmt.Fprintf(&b, "Options per question: %d\n", optionCount)
	return b.String()
}

func plannerUserMessage(objective string, count, optionCount int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Objective: %q\n", objective)
	fmt.Fprintf(&b, "Number of questions: %d\n", count)
	fmt.Fprintf(&b, "Options per question: %d\n", optionCount)
	return b.String()
}
