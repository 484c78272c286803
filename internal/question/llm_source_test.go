package question

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/abhisek/wellnest/internal/llm"
)

// questionSetJSON builds a response with n questions of k options each.
func questionSetJSON(n, k int) json.RawMessage {
	type q struct {
		Question string   `json:"question"`
		Options  []string `json:"options"`
	}
	set := struct {
		Questions []q `json:"questions"`
	}{}
	for i := 0; i < n; i++ {
		opts := make([]string, k)
		for j := range opts {
			opts[j] = fmt.Sprintf("Option %d", j+1)
		}
		set.Questions = append(set.Questions, q{Question: fmt.Sprintf("Question %d?", i+1), Options: opts})
	}
	b, _ := json.Marshal(set)
	return b
}

func TestSymptomSource_HappyPath(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: questionSetJSON(5, 4)})
	src := NewSymptomSource(mock, SymptomConfig())

	qs, err := src.Resolve(context.Background(), []string{"fever", "cough"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 5 {
		t.Fatalf("got %d questions, want 5", len(qs))
	}
	for i, q := range qs {
		if len(q.Options) != 4 {
			t.Errorf("question %d has %d options", i, len(q.Options))
		}
		if q.Options[0].Scored {
			t.Errorf("generated options should be unscored")
		}
	}

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	req := mock.Requests()[0]
	if !strings.Contains(req.Messages[0].Content, "fever, cough") {
		t.Errorf("prompt missing symptoms: %q", req.Messages[0].Content)
	}
	if req.Schema == nil || req.Schema.Name != "symptom-questions" {
		t.Errorf("unexpected schema: %+v", req.Schema)
	}
}

func TestPlannerSource_FifteenQuestions(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: questionSetJSON(15, 4)})
	src := NewPlannerSource(mock, PlannerConfig())

	qs, err := src.Resolve(context.Background(), "sleep better")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 15 {
		t.Fatalf("got %d questions, want 15", len(qs))
	}
	if !strings.Contains(mock.Requests()[0].Messages[0].Content, `"sleep better"`) {
		t.Errorf("prompt missing objective: %q", mock.Requests()[0].Messages[0].Content)
	}
}

func TestLLMSource_StripsOneFence(t *testing.T) {
	fenced := "```json\n" + string(questionSetJSON(5, 4)) + "\n```"
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(fenced)})
	src := NewSymptomSource(mock, SymptomConfig())

	qs, err := src.Resolve(context.Background(), []string{"headache"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 5 {
		t.Fatalf("got %d questions, want 5", len(qs))
	}
}

func TestLLMSource_Failures(t *testing.T) {
	tests := []struct {
		name      string
		resp      llm.MockResponse
		wantStage Stage
	}{
		{
			name:      "provider error",
			resp:      llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}},
			wantStage: StageRequest,
		},
		{
			name:      "schema rejection",
			resp:      llm.MockResponse{Err: &llm.ErrInvalidResponse{Err: errors.New("bad shape")}},
			wantStage: StageValidate,
		},
		{
			name:      "malformed json",
			resp:      llm.MockResponse{Content: json.RawMessage(`{"questions": [`)},
			wantStage: StageParse,
		},
		{
			name:      "double fence",
			resp:      llm.MockResponse{Content: json.RawMessage("```\n```json\n" + string(questionSetJSON(5, 4)) + "\n```\n```")},
			wantStage: StageParse,
		},
		{
			name:      "three options",
			resp:      llm.MockResponse{Content: questionSetJSON(5, 3)},
			wantStage: StageValidate,
		},
		{
			name:      "too few questions",
			resp:      llm.MockResponse{Content: questionSetJSON(4, 4)},
			wantStage: StageValidate,
		},
		{
			name:      "empty list",
			resp:      llm.MockResponse{Content: json.RawMessage(`{"questions": []}`)},
			wantStage: StageValidate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewSymptomSource(llm.NewMockProvider(tt.resp), SymptomConfig())
			qs, err := src.Resolve(context.Background(), []string{"fever"})
			if qs != nil {
				t.Fatalf("expected no questions on failure, got %d", len(qs))
			}
			var gf *GenerationFailure
			if !errors.As(err, &gf) {
				t.Fatalf("expected *GenerationFailure, got %T: %v", err, err)
			}
			if gf.Stage != tt.wantStage {
				t.Errorf("stage = %q, want %q (err: %v)", gf.Stage, tt.wantStage, err)
			}
		})
	}
}

func TestLLMSource_ValidationErrorIsExposed(t *testing.T) {
	src := NewSymptomSource(llm.NewMockProvider(llm.MockResponse{Content: questionSetJSON(5, 2)}), SymptomConfig())
	_, err := src.Resolve(context.Background(), []string{"fever"})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError in chain, got %v", err)
	}
	if verr.Validator != "option-count" {
		t.Errorf("validator = %q, want option-count", verr.Validator)
	}
}
