// Package home is the main menu. It starts the questionnaire flows and
// shows a short summary of the stored profile.
package home

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/wellnest/internal/auth"
	"github.com/abhisek/wellnest/internal/flow"
	"github.com/abhisek/wellnest/internal/llm"
	"github.com/abhisek/wellnest/internal/profile"
	"github.com/abhisek/wellnest/internal/router"
	"github.com/abhisek/wellnest/internal/screen"
	"github.com/abhisek/wellnest/internal/screens/assessment"
	"github.com/abhisek/wellnest/internal/screens/intake"
	"github.com/abhisek/wellnest/internal/screens/login"
	profilescreen "github.com/abhisek/wellnest/internal/screens/profile"
	"github.com/abhisek/wellnest/internal/ui/components"
	"github.com/abhisek/wellnest/internal/ui/layout"
	"github.com/abhisek/wellnest/internal/wellness"
)

// ProfileStore is the profile access the home screen and its flows need.
type ProfileStore interface {
	wellness.Sink
	Snapshot(ctx context.Context) (profile.Profile, error)
}

// Accounts is the session management used for signing out and back in.
type Accounts interface {
	login.Authenticator
	Logout(ctx context.Context) error
}

// Deps carries everything the menu hands to the screens it opens.
// Provider may be nil, which disables the symptom check and the planner.
type Deps struct {
	Ctx           context.Context
	Provider      llm.Provider
	Profiles      ProfileStore
	Auth          Accounts
	FeedbackDelay time.Duration
	Logger        *zap.Logger
}

func (d Deps) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

func (d Deps) flows() wellness.Deps {
	wd := wellness.Deps{Provider: d.Provider, Logger: d.logger().Named("wellness")}
	if d.Profiles != nil {
		wd.Sink = d.Profiles
	}
	return wd
}

// SignedOutMsg is emitted after the session has been cleared.
type SignedOutMsg struct{}

type snapshotMsg struct {
	profile profile.Profile
	err     error
}

// summary is the profile digest shown under the mascot.
type summary struct {
	recorded int
	total    int
	risk     string
	urgent   bool
	recent   bool
}

func summarize(p profile.Profile, now time.Time) summary {
	sum := summary{total: len(profile.Domains)}
	for _, d := range profile.Domains {
		sec, ok := p[d]
		if !ok {
			continue
		}
		sum.recorded++
		if ts, ok := sec.LastUpdated(); ok && now.Sub(ts) < 24*time.Hour {
			sum.recent = true
		}
	}
	if mh, ok := p[profile.MentalHealth]; ok {
		sum.risk = mh.String("risk_level")
		sum.urgent, _ = mh["urgent"].(bool)
	}
	return sum
}

func (s summary) mascot() MascotVariant {
	switch {
	case s.urgent:
		return MascotAlert
	case s.recent:
		return MascotCelebrating
	}
	return MascotIdle
}

const (
	itemSymptom = iota
	itemQuiz
	itemPlanner
	itemProfile
	itemSignOut
	itemExit
)

var menuLabels = []string{"SYMPTOM CHECK", "WELLBEING QUIZ", "HEALTH PLANNER", "MY PROFILE", "SIGN OUT", "EXIT"}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	deps     Deps
	menu     components.Menu
	disabled map[int]bool
	summary  summary
	now      func() time.Time
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	if deps.Ctx == nil {
		deps.Ctx = context.Background()
	}
	h := &HomeScreen{
		deps:     deps,
		disabled: map[int]bool{},
		summary:  summary{total: len(profile.Domains)},
		now:      time.Now,
	}
	if deps.Provider == nil {
		h.disabled[itemSymptom] = true
		h.disabled[itemPlanner] = true
	}

	actions := map[int]func() tea.Cmd{
		itemSymptom: h.openSymptomCheck,
		itemQuiz:    h.openQuiz,
		itemPlanner: h.openPlanner,
		itemProfile: h.openProfile,
		itemSignOut: h.signOut,
		itemExit:    func() tea.Cmd { return tea.Quit },
	}
	items := make([]components.MenuItem, len(menuLabels))
	for i, label := range menuLabels {
		items[i] = components.MenuItem{Label: label, Action: actions[i], Disabled: h.disabled[i]}
	}
	h.menu = components.NewMenu(items)
	return h
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func newAssessment[S any, R flow.Outcome](d Deps, title string, f flow.Flow[S, R], seed S, render assessment.Renderer[R]) screen.Screen {
	ctl := flow.New(f, seed,
		flow.WithFeedbackDelay(d.FeedbackDelay),
		flow.WithLogger(d.logger().Named("flow")),
	)
	return assessment.New(d.Ctx, title, ctl, render)
}

func (h *HomeScreen) openSymptomCheck() tea.Cmd {
	d := h.deps
	return push(intake.New("Symptom Check",
		"What symptoms are you experiencing? Separate them with commas.",
		"headache, fever, sore throat",
		func(v string) (screen.Screen, error) {
			symptoms := wellness.ParseSymptoms(v)
			if len(symptoms) == 0 {
				return nil, errors.New("enter at least one symptom")
			}
			return newAssessment(d, "Symptom Check", wellness.SymptomFlow(d.flows()), symptoms, assessment.RenderDiagnosis), nil
		}))
}

func (h *HomeScreen) openQuiz() tea.Cmd {
	d := h.deps
	return push(newAssessment(d, "Wellbeing Quiz", wellness.QuizFlow(d.flows()), struct{}{}, assessment.RenderScreening))
}

func (h *HomeScreen) openPlanner() tea.Cmd {
	d := h.deps
	return push(intake.New("Health Planner",
		"What health goal would you like a plan for?",
		"sleep better and lower stress",
		func(v string) (screen.Screen, error) {
			if strings.TrimSpace(v) == "" {
				return nil, errors.New("describe a goal to plan for")
			}
			return newAssessment(d, "Health Planner", wellness.PlannerFlow(d.flows()), v, assessment.RenderPlan), nil
		}))
}

func (h *HomeScreen) openProfile() tea.Cmd {
	if h.deps.Profiles == nil {
		return nil
	}
	return push(profilescreen.New(h.deps.Ctx, h.deps.Profiles))
}

func (h *HomeScreen) signOut() tea.Cmd {
	ctx, a, logger := h.deps.Ctx, h.deps.Auth, h.deps.logger()
	return func() tea.Msg {
		if a != nil {
			if err := a.Logout(ctx); err != nil {
				logger.Warn("sign out failed", zap.Error(err))
			}
		}
		return SignedOutMsg{}
	}
}

// loginScreen returns the sign-in screen that leads back here.
func (h *HomeScreen) loginScreen() screen.Screen {
	d := h.deps
	return login.New(d.Ctx, d.Auth, func(auth.Session) screen.Screen { return New(d) })
}

func (h *HomeScreen) loadSnapshot() tea.Cmd {
	if h.deps.Profiles == nil {
		return nil
	}
	ctx, p := h.deps.Ctx, h.deps.Profiles
	return func() tea.Msg {
		snap, err := p.Snapshot(ctx)
		return snapshotMsg{profile: snap, err: err}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadSnapshot()
}

// Resume refreshes the summary after a flow screen is popped.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadSnapshot()
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		if msg.err != nil {
			h.deps.logger().Warn("profile snapshot failed", zap.Error(msg.err))
			return h, nil
		}
		h.summary = summarize(msg.profile, h.now())
		return h, nil

	case SignedOutMsg:
		if h.deps.Auth == nil {
			return h, tea.Quit
		}
		next := h.loginScreen()
		return h, func() tea.Msg { return router.ResetScreenMsg{Screen: next} }
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompact(width, height)

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, centered(components.RenderLogo(cw), cw))
	if !compact {
		sections = append(sections, centered(RenderMascot(h.summary.mascot()), cw))
	}
	sections = append(sections, renderStatusBar(h.summary, cw, compact))
	if h.deps.Provider == nil {
		sections = append(sections, renderLLMBanner(cw))
	}
	if compact {
		sections = append(sections, renderMenuCompact(menuLabels, h.menu.Selected, cw, h.disabled))
	} else {
		sections = append(sections, renderMenu(menuLabels, h.menu.Selected, cw, h.disabled))
	}

	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return components.Frame(strings.Join(sections, sep), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
