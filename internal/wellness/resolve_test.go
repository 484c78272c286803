package wellness

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/abhisek/wellnest/internal/llm"
	"github.com/abhisek/wellnest/internal/question"
)

func TestNormalizeTreatment(t *testing.T) {
	tests := map[string]string{
		"yes":   "yes",
		"no":    "no",
		"Yes":   "no",
		"maybe": "no",
		"":      "no",
		" yes":  "no",
	}
	for in, want := range tests {
		if got := NormalizeTreatment(in); got != want {
			t.Errorf("NormalizeTreatment(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBandFor(t *testing.T) {
	tests := []struct {
		total int
		want  RiskBand
	}{
		{0, RiskLow}, {14, RiskLow},
		{15, RiskModerate}, {29, RiskModerate},
		{30, RiskHigh}, {44, RiskHigh},
		{45, RiskSevere}, {60, RiskSevere},
	}
	for _, tt := range tests {
		if got := BandFor(tt.total); got != tt.want {
			t.Errorf("BandFor(%d) = %s, want %s", tt.total, got, tt.want)
		}
	}
}

func zeroAnswers(qs []question.Question) []question.Answer {
	out := make([]question.Answer, len(qs))
	for i, q := range qs {
		out[i], _ = q.Pick(0)
	}
	return out
}

func TestScreener_NormalizesTreatment(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"diagnosis":"Mild stress","recommendation":"Keep a routine.","treatment_required":"possibly"}`),
	})
	s := NewScreener(mock, DefaultScreeningConfig(), nil)

	qs := question.MentalHealthBank
	res := s.Resolve(context.Background(), struct{}{}, qs, zeroAnswers(qs))

	if res.Failed() {
		t.Fatalf("unexpected failure: %s", res.FailureMessage())
	}
	if !res.Analyzed || res.Diagnosis != "Mild stress" {
		t.Errorf("analysis not applied: %+v", res)
	}
	if res.TreatmentRequired != "no" {
		t.Errorf("treatment_required = %q, want no", res.TreatmentRequired)
	}
	if !strings.Contains(mock.Requests()[0].Messages[0].Content, "Answer: Not at all") {
		t.Errorf("prompt missing formatted answers")
	}
}

func TestScreener_RejectsEmptyAnalysis(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"diagnosis":" ","recommendation":"Rest.","treatment_required":"no"}`),
	})
	s := NewScreener(mock, DefaultScreeningConfig(), nil)

	qs := question.MentalHealthBank
	res := s.Resolve(context.Background(), struct{}{}, qs, zeroAnswers(qs))

	if !res.Failed() {
		t.Fatalf("expected failure for a blank diagnosis, got %+v", res)
	}
	if res.Analyzed {
		t.Error("blank analysis must not be applied")
	}
	if res.Band != RiskLow || res.Total != 0 {
		t.Errorf("tally lost on failure: band %s total %d", res.Band, res.Total)
	}
}

func TestScreener_SelfHarmEscalates(t *testing.T) {
	s := NewScreener(nil, DefaultScreeningConfig(), nil)
	qs := question.MentalHealthBank
	answers := zeroAnswers(qs)
	answers[question.SelfHarmIndex], _ = qs[question.SelfHarmIndex].Pick(1)

	res := s.Resolve(context.Background(), struct{}{}, qs, answers)
	if res.Total != 1 {
		t.Errorf("total = %d, want 1", res.Total)
	}
	if !res.Urgent || res.Band != RiskHigh {
		t.Errorf("band = %s urgent = %v, want High and urgent", res.Band, res.Urgent)
	}
}

func TestDiagnoser_Fallbacks(t *testing.T) {
	qs := []question.Question{{Text: "How long?", Options: []question.Option{{Label: "A day"}, {Label: "A week"}}}}
	answers := zeroAnswers(qs)

	tests := []struct {
		name    string
		resp    llm.MockResponse
		want    string
		invalid bool
	}{
		{"missing field", llm.MockResponse{Content: json.RawMessage(`{"diagnosis":"Flu"}`)}, DiagnosisUnknown, true},
		{"not json", llm.MockResponse{Content: json.RawMessage(`Flu, probably`)}, DiagnosisUnknown, true},
		{"double fence", llm.MockResponse{Content: json.RawMessage("```\n```json\n{\"diagnosis\":\"Flu\",\"explanation\":\"Fever.\"}\n```\n```")}, DiagnosisUnknown, true},
		{"schema rejected", llm.MockResponse{Err: &llm.ErrInvalidResponse{}}, DiagnosisUnknown, true},
		{"provider down", llm.MockResponse{Err: &llm.ErrProviderUnavailable{}}, DiagnosisError, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDiagnoser(llm.NewMockProvider(tt.resp), DefaultDiagnosisConfig(), nil)
			res := d.Resolve(context.Background(), []string{"fever"}, qs, answers)
			if !res.Failed() {
				t.Fatal("expected failed result")
			}
			if res.Diagnosis != tt.want || res.Invalid != tt.invalid {
				t.Errorf("got %+v, want diagnosis %q invalid %v", res, tt.want, tt.invalid)
			}
		})
	}
}

func TestPlanner_RejectsShortSections(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"diet":["a","b","c"],"sleep":["a","b"],"exercise":["a","b","c"]}`),
	})
	p := NewPlanner(mock, DefaultPlanConfig(), nil)

	res := p.Resolve(context.Background(), "sleep better", nil, nil)
	if !res.Failed() {
		t.Fatal("expected failure for a two-item section")
	}
	if !strings.Contains(res.FailureMessage(), "sleep has 2 items") {
		t.Errorf("message = %q", res.FailureMessage())
	}
}

func TestPlan_ValidateEmptyItem(t *testing.T) {
	p := Plan{
		Diet:     []string{"a", "b", "c"},
		Sleep:    []string{"a", " ", "c"},
		Exercise: []string{"a", "b", "c"},
	}
	if err := p.Validate(); err == nil || !strings.Contains(err.Error(), "sleep item 2") {
		t.Errorf("Validate() = %v", err)
	}
}
