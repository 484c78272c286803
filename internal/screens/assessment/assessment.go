// Package assessment is the interactive screen for any questionnaire
// flow. It renders controller state and forwards key presses as flow
// events; all transitions happen in the controller.
package assessment

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wellnest/internal/flow"
	"github.com/abhisek/wellnest/internal/router"
	"github.com/abhisek/wellnest/internal/screen"
	"github.com/abhisek/wellnest/internal/ui/components"
	"github.com/abhisek/wellnest/internal/ui/layout"
	"github.com/abhisek/wellnest/internal/ui/theme"
)

// Renderer formats a result for a panel of the given width.
type Renderer[R flow.Outcome] func(result R, width int) string

// stateMsg carries a controller snapshot into the Bubble Tea loop.
type stateMsg[R flow.Outcome] struct {
	id    string
	state flow.State[R]
}

// Screen drives one controller.
type Screen[S any, R flow.Outcome] struct {
	ctx     context.Context
	title   string
	ctl     *flow.Controller[S, R]
	render  Renderer[R]
	updates chan flow.State[R]

	state       flow.State[R]
	choice      components.MultiChoice
	choiceAt    int
	choiceToken uint64
	action      int
	spinner     spinner.Model
	closed      bool
}

var (
	_ screen.Screen          = (*Screen[struct{}, flow.Outcome])(nil)
	_ screen.KeyHintProvider = (*Screen[struct{}, flow.Outcome])(nil)
	_ screen.Closer          = (*Screen[struct{}, flow.Outcome])(nil)
)

// New creates a screen for ctl. The controller is started by Init and
// closed when the screen leaves the router stack.
func New[S any, R flow.Outcome](ctx context.Context, title string, ctl *flow.Controller[S, R], render Renderer[R]) *Screen[S, R] {
	return &Screen[S, R]{
		ctx:      ctx,
		title:    title,
		ctl:      ctl,
		render:   render,
		updates:  make(chan flow.State[R], 1),
		choiceAt: -1,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary))),
	}
}

func (s *Screen[S, R]) Init() tea.Cmd {
	updates := s.updates
	s.ctl.Observe(func(st flow.State[R]) {
		// Keep only the newest snapshot; the observer must not block.
		select {
		case <-updates:
		default:
		}
		updates <- st
	})
	s.ctl.Start(s.ctx)
	s.sync(s.ctl.State())
	return tea.Batch(s.wait(), s.spinner.Tick)
}

// wait blocks for the next snapshot. It yields nil once the screen is
// closed.
func (s *Screen[S, R]) wait() tea.Cmd {
	ch, id := s.updates, s.ctl.ID()
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return nil
		}
		return stateMsg[R]{id: id, state: st}
	}
}

// Close cancels the flow. Completions still in flight are discarded by
// the controller.
func (s *Screen[S, R]) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.ctl.Observe(nil)
	s.ctl.Close()
	select {
	case <-s.updates:
	default:
	}
	close(s.updates)
}

// State returns the last snapshot the screen rendered.
func (s *Screen[S, R]) State() flow.State[R] {
	return s.state
}

func (s *Screen[S, R]) sync(st flow.State[R]) {
	s.state = st
	if q, ok := st.Current(); ok {
		if s.choiceAt != st.Cursor || s.choiceToken != st.Token {
			s.choice = components.NewMultiChoice(q.Text, q.Labels())
			s.choiceAt, s.choiceToken = st.Cursor, st.Token
		}
		s.choice.Chosen = st.Selected()
		if s.choice.Chosen >= 0 {
			s.choice.Selected = s.choice.Chosen
		}
	}
	if n := len(st.Actions()); s.action >= n {
		s.action = n - 1
	}
}

func (s *Screen[S, R]) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg[R]:
		if msg.id != s.ctl.ID() || s.closed {
			return s, nil
		}
		s.sync(msg.state)
		return s, s.wait()

	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		if s.state.Phase.Terminal() {
			return s, s.handleAction(msg.String())
		}
		if s.state.Phase == flow.PhaseActive {
			return s, s.handleAnswer(msg)
		}
	}
	return s, nil
}

func (s *Screen[S, R]) handleAnswer(msg tea.KeyMsg) tea.Cmd {
	if s.state.AdvancePending() || s.state.Selected() >= 0 {
		return nil
	}
	if msg.String() == "enter" {
		s.ctl.Select(s.state.Cursor, s.choice.Selected)
		s.sync(s.ctl.State())
		return nil
	}
	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)
	return cmd
}

func (s *Screen[S, R]) handleAction(key string) tea.Cmd {
	actions := s.state.Actions()
	switch key {
	case "left", "h", "up", "k", "shift+tab":
		if s.action > 0 {
			s.action--
		}
	case "right", "l", "down", "j", "tab":
		if s.action < len(actions)-1 {
			s.action++
		}
	case "enter":
		if s.action < 0 || s.action >= len(actions) {
			return nil
		}
		switch actions[s.action] {
		case flow.ActionRetry:
			s.ctl.RetryResolve()
		case flow.ActionStartOver:
			s.ctl.Restart()
			s.action = 0
		case flow.ActionGoBack:
			return func() tea.Msg { return router.PopScreenMsg{} }
		}
		s.sync(s.ctl.State())
	}
	return nil
}

func (s *Screen[S, R]) Title() string {
	return s.title
}

func (s *Screen[S, R]) KeyHints() []layout.KeyHint {
	switch {
	case s.state.Phase == flow.PhaseActive:
		return []layout.KeyHint{
			{Key: "↑↓/1-9", Description: "Choose"},
			{Key: "Enter", Description: "Answer"},
			{Key: "Esc", Description: "Cancel"},
		}
	case s.state.Phase.Terminal():
		return []layout.KeyHint{
			{Key: "←→", Description: "Action"},
			{Key: "Enter", Description: "Select"},
			{Key: "Esc", Description: "Back"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Esc", Description: "Cancel"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
}

func (s *Screen[S, R]) View(width, height int) string {
	cw := components.ContentWidth(width)
	var body string

	switch st := s.state; st.Phase {
	case flow.PhaseLoading:
		body = s.spinner.View() + " Preparing your questions..."
	case flow.PhaseActive:
		body = s.viewQuestion(cw)
	case flow.PhaseResolving:
		body = s.spinner.View() + " Analyzing your answers..."
	case flow.PhaseComplete:
		body = s.render(st.Result, cw-6) + "\n\n" + s.viewActions()
	case flow.PhaseFailed:
		if st.FailedStep == flow.StepResolve && st.HasResult {
			body = s.render(st.Result, cw-6)
		} else {
			body = theme.Failure.Render("Something went wrong") + "\n\n" +
				lipgloss.NewStyle().Width(cw-6).Foreground(theme.Text).Render(st.FailureMessage())
		}
		body += "\n\n" + s.viewActions()
	case flow.PhaseCancelled:
		body = lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
			Render("This assessment was cancelled.") + "\n\n" + s.viewActions()
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, components.Card(body, cw))
}

func (s *Screen[S, R]) viewQuestion(cw int) string {
	n := len(s.state.Questions)
	label := fmt.Sprintf("Question %d of %d", s.state.Cursor+1, n)
	bar := components.StepBar(label, s.state.Ledger.Filled(), n, cw-6)

	choice := s.choice
	choice.Question = lipgloss.NewStyle().Width(cw - 6).Render(choice.Question)
	return bar + "\n\n" + choice.View()
}

func (s *Screen[S, R]) viewActions() string {
	actions := s.state.Actions()
	labels := make([]string, len(actions))
	for i, a := range actions {
		labels[i] = titleCase(string(a))
	}
	return components.ButtonRow(labels, s.action)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
