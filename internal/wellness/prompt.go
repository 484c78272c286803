package wellness

import (
	"fmt"
	"strings"

	"github.com/abhisek/wellnest/internal/question"
)

// qa pairs a question with the label of the chosen option.
type qa struct {
	Question string
	Answer   string
}

func pairs(qs []question.Question, answers []question.Answer) []qa {
	out := make([]qa, len(qs))
	for i, q := range qs {
		label := "Not answered"
		if i < len(answers) && answers[i].Option.Label != "" {
			label = answers[i].Option.Label
		}
		out[i] = qa{Question: q.Text, Answer: label}
	}
	return out
}

const diagnosisSystemPrompt = `You are a medical diagnosis assistant. Using the reported symptoms and the user's answers to follow-up questions, name the most likely condition and give a short explanation grounded in those symptoms and answers.

Rules:
- Return only a JSON object with "diagnosis" and "explanation".
- Keep the explanation to one or two sentences.
- Do not include markdown, code block markers, or extra text.`

func diagnosisUserMessage(symptoms []string, qs []question.Question, answers []question.Answer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Symptoms: %s\n\n", strings.Join(symptoms, ", "))
	b.WriteString("Follow-up answers:\n")
	for _, p := range pairs(qs, answers) {
		fmt.Fprintf(&b, "Q: %s\nA: %s\n", p.Question, p.Answer)
	}
	return b.String()
}

const screeningSystemPrompt = `You are a helpful mental health assistant. Analyze the questionnaire responses and provide a possible diagnosis or insight.

Rules:
- Return only a JSON object with "diagnosis", "recommendation" and "treatment_required".
- "treatment_required" must be exactly "yes" or "no".
- Keep the whole response under 100 words and without markdown.`

func screeningUserMessage(qs []question.Question, answers []question.Answer) string {
	var b strings.Builder
	b.WriteString("Responses:\n")
	for _, p := range pairs(qs, answers) {
		fmt.Fprintf(&b, "\nQuestion: %s\nAnswer: %s\n", p.Question, p.Answer)
	}
	return b.String()
}

const planSystemPrompt = `You are a professional health and wellness planner. Using the user's objective and their answers, write a personalized plan.

Rules:
- Return only a JSON object with three arrays: "diet", "sleep" and "exercise".
- Each array holds at least three short, concrete options.
- No explanation or markdown formatting.`

func planUserMessage(objective string, qs []question.Question, answers []question.Answer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Objective: %q\n\n", objective)
	b.WriteString("Answers:\n")
	for i, p := range pairs(qs, answers) {
		fmt.Fprintf(&b, "Q%d: %s\nA%d: %s\n", i+1, p.Question, i+1, p.Answer)
	}
	return b.String()
}
