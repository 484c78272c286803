package profile

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	domain "github.com/abhisek/wellnest/internal/profile"
)

type fakeSource struct {
	p   domain.Profile
	err error
}

func (f fakeSource) Snapshot(context.Context) (domain.Profile, error) {
	return f.p, f.err
}

func load(t *testing.T, src Snapshotter) *ProfileScreen {
	t.Helper()
	s := New(context.Background(), src)
	s.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	s.Update(s.Init()())
	return s
}

func TestProfileScreen_ShowsSections(t *testing.T) {
	s := load(t, fakeSource{p: domain.Profile{
		domain.Health: {
			"diagnosis":          "Common cold",
			domain.LastUpdatedKey: "2026-03-01T11:30:00.000Z",
		},
	}})

	view := s.View(100, 30)
	if !strings.Contains(view, "updated 30 min ago") {
		t.Errorf("expected health section timestamp, got:\n%s", view)
	}
	if !strings.Contains(view, "not recorded yet") {
		t.Error("expected empty domains to be marked")
	}
	if strings.Contains(view, "Common cold") {
		t.Error("details should be collapsed initially")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(s.View(100, 30), "diagnosis: Common cold") {
		t.Error("expected details after expanding")
	}
}

func TestProfileScreen_Navigation(t *testing.T) {
	s := load(t, fakeSource{p: domain.Profile{}})
	for range 10 {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if s.selected != len(domain.Domains)-1 {
		t.Errorf("expected selection clamped to %d, got %d", len(domain.Domains)-1, s.selected)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.selected != len(domain.Domains)-2 {
		t.Errorf("expected selection %d, got %d", len(domain.Domains)-2, s.selected)
	}
}

func TestProfileScreen_LoadError(t *testing.T) {
	s := load(t, fakeSource{err: errors.New("disk gone")})
	if !strings.Contains(s.View(100, 30), "disk gone") {
		t.Error("expected load error in view")
	}
}

func TestAgo(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{5 * time.Minute, "5 min ago"},
		{3 * time.Hour, "3 h ago"},
		{72 * time.Hour, "3 days ago"},
	}
	for _, tt := range tests {
		if got := ago(tt.d); got != tt.want {
			t.Errorf("ago(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
