// Package profile shows the stored wellness profile, one section per
// domain.
package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	domain "github.com/abhisek/wellnest/internal/profile"
	"github.com/abhisek/wellnest/internal/screen"
	"github.com/abhisek/wellnest/internal/ui/layout"
	"github.com/abhisek/wellnest/internal/ui/theme"
)

// Snapshotter reads the current profile.
type Snapshotter interface {
	Snapshot(ctx context.Context) (domain.Profile, error)
}

type profileLoadedMsg struct {
	Profile domain.Profile
	Err     error
}

var sectionTitles = map[domain.Domain]string{
	domain.Health:       "Symptom check",
	domain.MentalHealth: "Mental health",
	domain.Environment:  "Environment",
	domain.Nutrition:    "Nutrition",
}

// ProfileScreen lists the profile sections; Enter expands one.
type ProfileScreen struct {
	ctx      context.Context
	source   Snapshotter
	profile  domain.Profile
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
	now      func() time.Time
}

var _ screen.Screen = (*ProfileScreen)(nil)
var _ screen.KeyHintProvider = (*ProfileScreen)(nil)

// New creates a new ProfileScreen.
func New(ctx context.Context, source Snapshotter) *ProfileScreen {
	return &ProfileScreen{
		ctx:      ctx,
		source:   source,
		expanded: make(map[int]bool),
		now:      time.Now,
	}
}

func (s *ProfileScreen) Init() tea.Cmd {
	ctx, src := s.ctx, s.source
	return func() tea.Msg {
		p, err := src.Snapshot(ctx)
		return profileLoadedMsg{Profile: p, Err: err}
	}
}

func (s *ProfileScreen) Title() string {
	return "My Profile"
}

func (s *ProfileScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.profile = msg.Profile
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(domain.Domains)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *ProfileScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading profile...")
	}

	var b strings.Builder
	b.WriteString("\n")
	cw := min(width-4, 72)

	for i, d := range domain.Domains {
		sec, ok := s.profile[d]

		status := "not recorded yet"
		if ok {
			status = "recorded"
			if ts, ok := sec.LastUpdated(); ok {
				status = "updated " + ago(s.now().Sub(ts))
			}
			if hasError(sec) {
				status += " (with errors)"
			}
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%-16s %s", prefix, sectionTitles[d], status)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if !ok {
			style = style.Foreground(theme.TextDim)
		}
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Width(cw).Render(line)))
		b.WriteString("\n")

		if s.expanded[i] && ok {
			detail := lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw - 4).
				Render(formatSection(sec))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Width(cw).PaddingLeft(4).Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// formatSection renders fields as "key: value" lines in key order.
func formatSection(sec domain.Section) string {
	keys := make([]string, 0, len(sec))
	for k := range sec {
		if k != domain.LastUpdatedKey {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %s", k, formatValue(sec[k])))
	}
	return strings.Join(lines, "\n")
}

func formatValue(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, "; ")
	case []any:
		parts := make([]string, len(v))
		for i, p := range v {
			parts[i] = formatValue(p)
		}
		return strings.Join(parts, "; ")
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

// hasError reports whether a section was recorded from a failed run.
// Sections mark this either as a flag or as the failure message.
func hasError(sec domain.Section) bool {
	switch v := sec["error"].(type) {
	case bool:
		return v
	case string:
		return v != ""
	}
	return false
}

func ago(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%d min ago", int(d.Minutes()))
	case d < 48*time.Hour:
		return fmt.Sprintf("%d h ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%d days ago", int(d.Hours()/24))
	}
}
