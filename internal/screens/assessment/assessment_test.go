package assessment

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wellnest/internal/flow"
	"github.com/abhisek/wellnest/internal/question"
	"github.com/abhisek/wellnest/internal/router"
)

type outcome struct {
	text string
	err  string
}

func (o outcome) Failed() bool           { return o.err != "" }
func (o outcome) FailureMessage() string { return o.err }

func renderOutcome(o outcome, _ int) string {
	if o.Failed() {
		return "failed: " + o.err
	}
	return "result: " + o.text
}

func twoQuestions() []question.Question {
	opts := []question.Option{{Label: "yes"}, {Label: "no"}}
	return []question.Question{
		{Text: "First?", Options: opts},
		{Text: "Second?", Options: opts},
	}
}

func newScreen(t *testing.T, sourceErr error, results ...outcome) (*Screen[string, outcome], *flow.ManualExecutor) {
	t.Helper()
	exec := &flow.ManualExecutor{}
	calls := 0
	f := flow.Flow[string, outcome]{
		Name: "test",
		Source: question.SourceFunc[string](func(context.Context, string) ([]question.Question, error) {
			if sourceErr != nil {
				return nil, sourceErr
			}
			return twoQuestions(), nil
		}),
		Resolver: flow.ResolverFunc[string, outcome](func(_ context.Context, _ string, _ []question.Question, answers []question.Answer) outcome {
			r := results[min(calls, len(results)-1)]
			calls++
			return r
		}),
	}
	ctl := flow.New(f, "seed", flow.WithExecutor(exec), flow.WithFeedbackDelay(0))
	s := New(context.Background(), "Test", ctl, renderOutcome)
	t.Cleanup(s.Close)
	return s, exec
}

// pump feeds the newest controller snapshot into the screen.
func pump(t *testing.T, s *Screen[string, outcome]) {
	t.Helper()
	msg := s.wait()()
	if msg == nil {
		t.Fatal("expected a state message")
	}
	s.Update(msg)
}

func enter() tea.KeyPressMsg { return tea.KeyPressMsg{Code: tea.KeyEnter} }
func down() tea.KeyPressMsg  { return tea.KeyPressMsg{Code: tea.KeyDown} }

func TestScreen_AnswersAndCompletes(t *testing.T) {
	s, exec := newScreen(t, nil, outcome{text: "all good"})
	s.Init()
	if s.State().Phase != flow.PhaseLoading {
		t.Fatalf("expected loading after Init, got %v", s.State().Phase)
	}

	exec.RunAll()
	pump(t, s)
	if s.State().Phase != flow.PhaseActive {
		t.Fatalf("expected active, got %v", s.State().Phase)
	}
	if !strings.Contains(s.View(100, 30), "First?") {
		t.Error("expected first question in view")
	}

	s.Update(down())
	s.Update(enter())
	if got, _ := s.State().Ledger.At(0); got.Choice != 1 {
		t.Errorf("expected choice 1 recorded, got %d", got.Choice)
	}
	if s.State().Cursor != 1 {
		t.Fatalf("expected cursor 1, got %d", s.State().Cursor)
	}

	s.Update(enter())
	if s.State().Phase != flow.PhaseResolving {
		t.Fatalf("expected resolving, got %v", s.State().Phase)
	}

	exec.RunAll()
	pump(t, s)
	if s.State().Phase != flow.PhaseComplete {
		t.Fatalf("expected complete, got %v", s.State().Phase)
	}
	if !strings.Contains(s.View(100, 30), "result: all good") {
		t.Error("expected rendered result in view")
	}
}

func TestScreen_RetryAfterResolveFailure(t *testing.T) {
	s, exec := newScreen(t, nil, outcome{err: "model down"}, outcome{text: "recovered"})
	s.Init()
	exec.RunAll()
	pump(t, s)
	s.Update(enter())
	s.Update(enter())
	exec.RunAll()
	pump(t, s)

	if s.State().Phase != flow.PhaseFailed {
		t.Fatalf("expected failed, got %v", s.State().Phase)
	}
	if !strings.Contains(s.View(100, 30), "failed: model down") {
		t.Error("expected failure result in view")
	}

	// First action is retry.
	s.Update(enter())
	exec.RunAll()
	pump(t, s)
	if s.State().Phase != flow.PhaseComplete {
		t.Fatalf("expected complete after retry, got %v", s.State().Phase)
	}
	if s.State().Result.text != "recovered" {
		t.Errorf("expected recovered result, got %+v", s.State().Result)
	}
}

func TestScreen_SourceFailureOffersGoBack(t *testing.T) {
	s, exec := newScreen(t, errors.New("offline"))
	s.Init()
	exec.RunAll()
	pump(t, s)

	if s.State().Phase != flow.PhaseFailed {
		t.Fatalf("expected failed, got %v", s.State().Phase)
	}

	// Actions are start over, go back.
	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	_, cmd := s.Update(enter())
	if cmd == nil {
		t.Fatal("expected a command from go back")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Fatal("expected PopScreenMsg")
	}
}

func TestScreen_CloseCancelsAndDropsCompletions(t *testing.T) {
	s, exec := newScreen(t, nil, outcome{text: "late"})
	s.Init()
	s.Close()

	if s.wait()() != nil {
		t.Error("expected nil message after close")
	}
	exec.RunAll()
	if s.ctl.State().Phase != flow.PhaseCancelled {
		t.Errorf("expected cancelled, got %v", s.ctl.State().Phase)
	}
	s.Close()
}
