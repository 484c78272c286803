// Package intake asks for the free-text seed of a flow, such as the
// symptom list or a planner objective.
package intake

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wellnest/internal/router"
	"github.com/abhisek/wellnest/internal/screen"
	"github.com/abhisek/wellnest/internal/ui/components"
	"github.com/abhisek/wellnest/internal/ui/layout"
	"github.com/abhisek/wellnest/internal/ui/theme"
)

// SubmitFunc builds the next screen from the entered text, or explains
// why the text is not usable.
type SubmitFunc func(value string) (screen.Screen, error)

// IntakeScreen is a single-field prompt that replaces itself with the
// screen returned by submit.
type IntakeScreen struct {
	title  string
	prompt string
	input  components.TextInput
	submit SubmitFunc
	errMsg string
}

var _ screen.Screen = (*IntakeScreen)(nil)
var _ screen.KeyHintProvider = (*IntakeScreen)(nil)

// New creates an IntakeScreen.
func New(title, prompt, placeholder string, submit SubmitFunc) *IntakeScreen {
	return &IntakeScreen{
		title:  title,
		prompt: prompt,
		input:  components.NewTextInput(placeholder, false, 200),
		submit: submit,
	}
}

func (s *IntakeScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *IntakeScreen) Title() string {
	return s.title
}

func (s *IntakeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *IntakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		next, err := s.submit(strings.TrimSpace(s.input.Value()))
		if err != nil {
			s.errMsg = err.Error()
			s.input.Submit(false)
			return s, nil
		}
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}

	s.errMsg = ""
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *IntakeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	body := lipgloss.NewStyle().Width(cw-6).Foreground(theme.Text).Bold(true).Render(s.prompt) +
		"\n\n" + s.input.View()
	if s.errMsg != "" {
		body += "\n\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, components.Card(body, cw))
}
