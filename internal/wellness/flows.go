// Package wellness binds the generic flow controller to the three
// questionnaires: symptom follow-up, mental-health quiz and planner.
package wellness

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/wellnest/internal/flow"
	"github.com/abhisek/wellnest/internal/llm"
	"github.com/abhisek/wellnest/internal/profile"
	"github.com/abhisek/wellnest/internal/question"
)

// Flow names, used in logs and as screen titles.
const (
	SymptomFlowName = "symptom-check"
	QuizFlowName    = "mental-health-quiz"
	PlannerFlowName = "health-planner"
)

// Deps carries what the flows need. Provider may be nil only for the
// quiz, which then reports the tally without an interpretation.
type Deps struct {
	Provider llm.Provider
	Sink     Sink
	Logger   *zap.Logger
}

func (d Deps) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// ParseSymptoms splits comma-separated input into trimmed, non-empty
// symptoms.
func ParseSymptoms(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func validateSymptoms(symptoms []string) error {
	for _, s := range symptoms {
		if strings.TrimSpace(s) != "" {
			return nil
		}
	}
	return fmt.Errorf("no symptoms: %w", flow.ErrInvalidSeed)
}

func validateObjective(objective string) error {
	if strings.TrimSpace(objective) == "" {
		return fmt.Errorf("empty objective: %w", flow.ErrInvalidSeed)
	}
	return nil
}

// SymptomFlow generates follow-up questions for the reported symptoms and
// resolves them to a diagnosis recorded under healthProfile.
func SymptomFlow(d Deps) flow.Flow[[]string, Diagnosis] {
	f := flow.Flow[[]string, Diagnosis]{
		Name:         SymptomFlowName,
		Source:       question.NewSymptomSource(d.Provider, question.SymptomConfig()),
		Resolver:     NewDiagnoser(d.Provider, DefaultDiagnosisConfig(), d.logger()),
		ValidateSeed: validateSymptoms,
	}
	if d.Sink != nil {
		f.Recorder = flow.RecorderFunc[[]string, Diagnosis](func(symptoms []string, qs []question.Question, answers []question.Answer, res Diagnosis) {
			d.Sink.Record(profile.Health, HealthSection(symptoms, qs, answers, res))
		})
	}
	return f
}

// QuizFlow walks the fixed mental-health bank and records the screening
// under mentalHealthProfile.
func QuizFlow(d Deps) flow.Flow[struct{}, Screening] {
	f := flow.Flow[struct{}, Screening]{
		Name:     QuizFlowName,
		Source:   question.NewQuizSource(),
		Resolver: NewScreener(d.Provider, DefaultScreeningConfig(), d.logger()),
	}
	if d.Sink != nil {
		f.Recorder = flow.RecorderFunc[struct{}, Screening](func(_ struct{}, _ []question.Question, _ []question.Answer, res Screening) {
			d.Sink.Record(profile.MentalHealth, MentalHealthSection(res))
		})
	}
	return f
}

// PlannerFlow generates questions about a free-text objective and
// resolves them to a plan. Plans are displayed only; the profile has no
// planner domain.
func PlannerFlow(d Deps) flow.Flow[string, Plan] {
	return flow.Flow[string, Plan]{
		Name:         PlannerFlowName,
		Source:       question.NewPlannerSource(d.Provider, question.PlannerConfig()),
		Resolver:     NewPlanner(d.Provider, DefaultPlanConfig(), d.logger()),
		ValidateSeed: validateObjective,
	}
}

// Run drives a controller to a terminal phase by answering every question
// with choose. It is used by the command-line flows; choose returns the
// option index for question i. An out-of-range index asks again.
func Run[S any, R flow.Outcome](ctx context.Context, c *flow.Controller[S, R], choose func(i int, q question.Question) int) flow.State[R] {
	updates := make(chan flow.State[R], 1)
	c.Observe(func(s flow.State[R]) {
		select {
		case <-updates:
		default:
		}
		updates <- s
	})
	c.Start(ctx)

	s := c.State()
	for !s.Phase.Terminal() {
		if ctx.Err() != nil {
			c.Cancel()
			return c.State()
		}
		if q, ok := s.Current(); ok && !s.AdvancePending() && s.Selected() < 0 {
			c.Select(s.Cursor, choose(s.Cursor, q))
			s = c.State()
			continue
		}
		select {
		case <-ctx.Done():
			c.Cancel()
			return c.State()
		case s = <-updates:
		}
	}
	return s
}
