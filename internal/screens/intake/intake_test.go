package intake

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wellnest/internal/router"
	"github.com/abhisek/wellnest/internal/screen"
)

type stubScreen struct{ seed string }

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return s.seed }
func (s *stubScreen) Title() string                          { return "next" }

func typeText(s *IntakeScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestSubmitReplacesScreen(t *testing.T) {
	s := New("Symptom Check", "What are you feeling?", "fever, cough", func(v string) (screen.Screen, error) {
		return &stubScreen{seed: v}, nil
	})
	s.Init()
	typeText(s, "fever")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on enter")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if got := msg.Screen.(*stubScreen).seed; got != "fever" {
		t.Errorf("expected seed %q, got %q", "fever", got)
	}
}

func TestSubmitErrorStays(t *testing.T) {
	s := New("Symptom Check", "What are you feeling?", "", func(string) (screen.Screen, error) {
		return nil, errors.New("enter at least one symptom")
	})
	s.Init()

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no command when submit fails")
	}
	if !strings.Contains(s.View(100, 30), "enter at least one symptom") {
		t.Error("expected error in view")
	}

	typeText(s, "x")
	if strings.Contains(s.View(100, 30), "enter at least one symptom") {
		t.Error("expected error cleared after typing")
	}
}
