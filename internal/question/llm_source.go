package question

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/wellnest/internal/llm"
)

// Config holds the generation parameters for an LLMSource.
type Config struct {
	Count       int // questions per set
	OptionCount int // options per question
	MaxTokens   int
	Temperature float64
	Validators  []Validator // nil means DefaultValidators(Count, OptionCount)
}

// SymptomConfig returns the defaults for symptom follow-up questions.
func SymptomConfig() Config {
	return Config{Count: 5, OptionCount: 4, MaxTokens: 2048, Temperature: 0.5}
}

// PlannerConfig returns the defaults for health planner questions.
func PlannerConfig() Config {
	return Config{Count: 15, OptionCount: 4, MaxTokens: 4096, Temperature: 0.5}
}

// LLMSource generates a question set for seed S with an LLM provider.
type LLMSource[S any] struct {
	provider llm.Provider
	config   Config
	purpose  llm.Purpose
	system   string
	message  func(seed S, count, optionCount int) string
	schema   *llm.Schema
}

// NewSymptomSource returns a Source that asks follow-up questions about a
// list of reported symptoms.
func NewSymptomSource(provider llm.Provider, cfg Config) *LLMSource[[]string] {
	return &LLMSource[[]string]{
		provider: provider,
		config:   cfg,
		purpose:  llm.PurposeSymptomQuestions,
		system:   symptomSystemPrompt,
		message:  symptomUserMessage,
		schema:   SetSchema("symptom-questions", cfg.Count, cfg.OptionCount),
	}
}

// NewPlannerSource returns a Source that asks about habits relevant to a
// free-text health objective.
func NewPlannerSource(provider llm.Provider, cfg Config) *LLMSource[string] {
	return &LLMSource[string]{
		provider: provider,
		config:   cfg,
		purpose:  llm.PurposePlannerQuestions,
		system:   plannerSystemPrompt,
		message:  plannerUserMessage,
		schema:   SetSchema("planner-questions", cfg.Count, cfg.OptionCount),
	}
}

// setOutput is the raw LLM response before validation.
type setOutput struct {
	Questions []struct {
		Question string   `json:"question"`
		Options  []string `json:"options"`
	} `json:"questions"`
}

// Resolve generates the question set. Every failure is a
// *GenerationFailure; no partial list is ever returned.
func (s *LLMSource[S]) Resolve(ctx context.Context, seed S) ([]Question, error) {
	ctx = llm.WithPurpose(ctx, s.purpose)

	req := llm.Request{
		System: s.system,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: s.message(seed, s.config.Count, s.config.OptionCount)},
		},
		Schema:      s.schema,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		var invErr *llm.ErrInvalidResponse
		if errors.As(err, &invErr) {
			return nil, &GenerationFailure{Stage: StageValidate, Err: err}
		}
		return nil, &GenerationFailure{Stage: StageRequest, Err: fmt.Errorf("LLM generation failed: %w", err)}
	}

	var raw setOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, &GenerationFailure{Stage: StageParse, Err: fmt.Errorf("failed to parse LLM response: %w", err)}
	}

	qs := make([]Question, len(raw.Questions))
	for i, rq := range raw.Questions {
		opts := make([]Option, len(rq.Options))
		for j, label := range rq.Options {
			opts[j] = Option{Label: label}
		}
		qs[i] = Question{Text: rq.Question, Options: opts}
	}

	validators := s.config.Validators
	if validators == nil {
		validators = DefaultValidators(s.config.Count, s.config.OptionCount)
	}
	if verr := Validate(qs, validators...); verr != nil {
		return nil, &GenerationFailure{Stage: StageValidate, Err: verr}
	}
	return qs, nil
}
