package wellness

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/wellnest/internal/question"
)

func promptFixture() ([]question.Question, []question.Answer) {
	qs := []question.Question{
		{Text: "How long have you had it?", Options: []question.Option{{Label: "A day"}, {Label: "A week"}}},
		{Text: "Any fever?", Options: []question.Option{{Label: "Yes"}, {Label: "No"}}},
	}
	first, _ := qs[0].Pick(1)
	return qs, []question.Answer{first}
}

func TestDiagnosisUserMessage(t *testing.T) {
	qs, answers := promptFixture()
	got := diagnosisUserMessage([]string{"headache", "nausea"}, qs, answers)

	want := "Symptoms: headache, nausea\n\n" +
		"Follow-up answers:\n" +
		"Q: How long have you had it?\nA: A week\n" +
		"Q: Any fever?\nA: Not answered\n"
	assert.Equal(t, want, got)
}

func TestPlanUserMessage_NumbersPairs(t *testing.T) {
	qs, answers := promptFixture()
	got := planUserMessage("sleep better", qs, answers)

	assert.Contains(t, got, `Objective: "sleep better"`)
	assert.Contains(t, got, "Q1: How long have you had it?\nA1: A week\n")
	assert.Contains(t, got, "Q2: Any fever?\nA2: Not answered\n")
}

func TestScreeningUserMessage(t *testing.T) {
	qs, answers := promptFixture()
	got := screeningUserMessage(qs, answers)

	assert.Equal(t, "Responses:\n"+
		"\nQuestion: How long have you had it?\nAnswer: A week\n"+
		"\nQuestion: Any fever?\nAnswer: Not answered\n", got)
}
