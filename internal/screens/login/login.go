// Package login is the sign-in and sign-up screen. The questionnaire
// flows are only reachable with a session.
package login

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wellnest/internal/auth"
	"github.com/abhisek/wellnest/internal/router"
	"github.com/abhisek/wellnest/internal/screen"
	"github.com/abhisek/wellnest/internal/ui/components"
	"github.com/abhisek/wellnest/internal/ui/layout"
	"github.com/abhisek/wellnest/internal/ui/theme"
)

// Authenticator is the part of auth.Manager the screen uses.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (auth.Session, error)
	SignUp(ctx context.Context, email, password string) (auth.Session, error)
}

// SessionMsg reports a signed-in session to the app shell.
type SessionMsg struct {
	Session auth.Session
}

type authResultMsg struct {
	session auth.Session
	err     error
}

// LoginScreen collects an email and password.
type LoginScreen struct {
	ctx     context.Context
	auth    Authenticator
	next    func(auth.Session) screen.Screen
	email   components.TextInput
	pass    components.TextInput
	focus   int
	signUp  bool
	pending bool
	errMsg  string
	notice  string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates a LoginScreen. next builds the screen shown once signed in.
func New(ctx context.Context, a Authenticator, next func(auth.Session) screen.Screen) *LoginScreen {
	s := &LoginScreen{
		ctx:   ctx,
		auth:  a,
		next:  next,
		email: components.NewTextInput("you@example.com", false, 254),
		pass:  components.NewTextInput("password", true, 128),
	}
	s.pass.Blur()
	return s
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.email.Init()
}

func (s *LoginScreen) Title() string {
	if s.signUp {
		return "Create Account"
	}
	return "Sign In"
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	mode := "Create account"
	if s.signUp {
		mode = "Have an account"
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+R", Description: mode},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		s.pending = false
		switch {
		case errors.Is(msg.err, auth.ErrConfirmationPending):
			s.signUp = false
			s.notice = msg.err.Error()
			return s, nil
		case msg.err != nil:
			s.errMsg = msg.err.Error()
			return s, nil
		}
		next := s.next(msg.session)
		return s, tea.Batch(
			func() tea.Msg { return SessionMsg{Session: msg.session} },
			func() tea.Msg { return router.ResetScreenMsg{Screen: next} },
		)

	case tea.KeyMsg:
		if s.pending {
			return s, nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			return s, s.toggleFocus()
		case "ctrl+r":
			s.signUp = !s.signUp
			s.errMsg, s.notice = "", ""
			return s, nil
		case "enter":
			if s.focus == 0 {
				return s, s.toggleFocus()
			}
			return s, s.submit()
		}
		s.errMsg = ""
	}

	var cmd tea.Cmd
	if s.focus == 0 {
		s.email, cmd = s.email.Update(msg)
	} else {
		s.pass, cmd = s.pass.Update(msg)
	}
	return s, cmd
}

func (s *LoginScreen) toggleFocus() tea.Cmd {
	if s.focus == 0 {
		s.focus = 1
		s.email.Blur()
		return s.pass.Focus()
	}
	s.focus = 0
	s.pass.Blur()
	return s.email.Focus()
}

func (s *LoginScreen) submit() tea.Cmd {
	s.pending = true
	s.errMsg, s.notice = "", ""
	ctx, a, signUp := s.ctx, s.auth, s.signUp
	email, password := s.email.Value(), s.pass.Value()
	return func() tea.Msg {
		var sess auth.Session
		var err error
		if signUp {
			sess, err = a.SignUp(ctx, email, password)
		} else {
			sess, err = a.SignIn(ctx, email, password)
		}
		return authResultMsg{session: sess, err: err}
	}
}

func (s *LoginScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if cw > 56 {
		cw = 56
	}
	label := lipgloss.NewStyle().Foreground(theme.TextDim)

	body := theme.Title.Render(s.Title()) + "\n\n" +
		label.Render("Email") + "\n" + s.email.View() + "\n\n" +
		label.Render("Password") + "\n" + s.pass.View()

	switch {
	case s.pending:
		body += "\n\n" + theme.Hint.Render("Contacting the server...")
	case s.errMsg != "":
		body += "\n\n" + lipgloss.NewStyle().Width(cw-6).Foreground(theme.Error).Render(s.errMsg)
	case s.notice != "":
		body += "\n\n" + lipgloss.NewStyle().Width(cw-6).Foreground(theme.Accent).Render(s.notice)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, components.Card(body, cw))
}
