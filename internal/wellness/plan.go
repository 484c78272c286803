package wellness

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/wellnest/internal/llm"
	"github.com/abhisek/wellnest/internal/question"
)

// MinPlanItems is the fewest options each plan section may hold.
const MinPlanItems = 3

// Plan is the result of the health planner flow.
type Plan struct {
	Diet     []string `json:"diet"`
	Sleep    []string `json:"sleep"`
	Exercise []string `json:"exercise"`

	Error   bool   `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func (p Plan) Failed() bool           { return p.Error }
func (p Plan) FailureMessage() string { return p.Message }

// Validate checks that every section has enough non-empty items.
func (p Plan) Validate() error {
	for _, sec := range []struct {
		name  string
		items []string
	}{{"diet", p.Diet}, {"sleep", p.Sleep}, {"exercise", p.Exercise}} {
		if len(sec.items) < MinPlanItems {
			return fmt.Errorf("%s has %d items, want at least %d", sec.name, len(sec.items), MinPlanItems)
		}
		for i, item := range sec.items {
			if strings.TrimSpace(item) == "" {
				return fmt.Errorf("%s item %d is empty", sec.name, i+1)
			}
		}
	}
	return nil
}

// PlanConfig holds generation parameters for the plan call.
type PlanConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultPlanConfig returns sensible defaults.
func DefaultPlanConfig() PlanConfig {
	return PlanConfig{MaxTokens: 1024, Temperature: 0.6}
}

// Planner resolves a completed planner questionnaire.
type Planner struct {
	provider llm.Provider
	cfg      PlanConfig
	logger   *zap.Logger
}

// NewPlanner creates a Planner. A nil logger disables logging.
func NewPlanner(provider llm.Provider, cfg PlanConfig, logger *zap.Logger) *Planner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Planner{provider: provider, cfg: cfg, logger: logger}
}

func (p *Planner) Resolve(ctx context.Context, objective string, qs []question.Question, answers []question.Answer) Plan {
	ctx = llm.WithPurpose(ctx, llm.PurposeHealthPlan)

	msg := planUserMessage(objective, qs, answers)

	resp, err := p.provider.Generate(ctx, llm.Request{
		System:      planSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: msg}},
		Schema:      PlanSchema,
		MaxTokens:   p.cfg.MaxTokens,
		Temperature: p.cfg.Temperature,
	})
	if err != nil {
		p.logger.Warn("plan request failed", zap.Error(err))
		return planFailure(err)
	}

	var plan Plan
	if err := json.Unmarshal(resp.Content, &plan); err != nil {
		return planFailure(fmt.Errorf("parse plan: %w", err))
	}
	if err := plan.Validate(); err != nil {
		p.logger.Warn("plan response invalid", zap.Error(err))
		return planFailure(err)
	}
	plan.Error, plan.Message = false, ""
	return plan
}

func planFailure(err error) Plan {
	return Plan{Error: true, Message: "Could not generate your plan: " + err.Error()}
}
