package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/wellnest/internal/auth"
	"github.com/abhisek/wellnest/internal/llm"
	"github.com/abhisek/wellnest/internal/profile"
	"github.com/abhisek/wellnest/internal/router"
	"github.com/abhisek/wellnest/internal/screen"
	"github.com/abhisek/wellnest/internal/screens/home"
	"github.com/abhisek/wellnest/internal/screens/login"
	"github.com/abhisek/wellnest/internal/screens/welcome"
	"github.com/abhisek/wellnest/internal/ui/layout"
)

// Options configures the interactive application.
type Options struct {
	// Provider backs the model-driven flows. Nil disables them.
	Provider      llm.Provider
	Profiles      *profile.Store
	Auth          *auth.Manager
	FeedbackDelay time.Duration
	Logger        *zap.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	status string
	width  int
	height int
}

// newAppModel creates an AppModel that opens on the welcome screen and
// continues to home when a session exists, or to sign-in otherwise.
func newAppModel(ctx context.Context, opts Options) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	deps := home.Deps{
		Ctx:           ctx,
		Provider:      opts.Provider,
		FeedbackDelay: opts.FeedbackDelay,
		Logger:        logger,
	}
	if opts.Profiles != nil {
		deps.Profiles = opts.Profiles
	}
	if opts.Auth != nil {
		deps.Auth = opts.Auth
	}

	var status string
	var sess *auth.Session
	if opts.Auth != nil {
		s, err := opts.Auth.Current(ctx)
		if err != nil {
			logger.Warn("session lookup failed", zap.Error(err))
		}
		sess = s
	}
	if sess != nil {
		status = sess.Email
	}

	next := func() screen.Screen {
		if sess != nil || opts.Auth == nil {
			return home.New(deps)
		}
		return login.New(ctx, opts.Auth, func(auth.Session) screen.Screen { return home.New(deps) })
	}

	return AppModel{
		router: router.New(welcome.New(next)),
		status: status,
	}
}

func (m AppModel) Init() tea.Cmd {
	if a := m.router.Active(); a != nil {
		return a.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case login.SessionMsg:
		m.status = msg.Session.Email
		return m, nil

	case home.SignedOutMsg:
		m.status = ""

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) footerHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Any key", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status, m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program and blocks until it exits. Flows
// still running when the program quits are cancelled.
func Run(ctx context.Context, opts Options) error {
	m := newAppModel(ctx, opts)
	defer m.router.Close()

	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
