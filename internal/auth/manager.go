// Package auth manages the signed-in session. Supabase is used when it is
// configured; otherwise sessions are local and offline.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/wellnest/internal/store"
)

var (
	// ErrUnauthenticated is returned by Require when nobody is signed in.
	ErrUnauthenticated = errors.New("not signed in")
	// ErrConfirmationPending means sign-up succeeded but the address must
	// be confirmed before signing in.
	ErrConfirmationPending = errors.New("check your email to confirm the account")
)

// MinPasswordLen matches the Supabase default.
const MinPasswordLen = 6

// sessionKey is the KV entry holding the current session.
const sessionKey = "auth.session"

// Session is a signed-in user.
type Session struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	AccessToken  string    `json:"access_token,omitempty"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at,omitempty"`
	Offline      bool      `json:"offline"`
}

func (s Session) expired(now time.Time) bool {
	return !s.Offline && !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Manager signs users in and out and persists the session.
type Manager struct {
	client *Client
	kv     store.KVRepo
	logger *zap.Logger
	now    func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithClient enables Supabase. Without it sessions are offline.
func WithClient(c *Client) Option {
	return func(m *Manager) { m.client = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(kv store.KVRepo, opts ...Option) *Manager {
	m := &Manager{kv: kv, logger: zap.NewNop(), now: time.Now}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Offline reports whether sessions are local only.
func (m *Manager) Offline() bool { return m.client == nil }

// SignIn authenticates and stores the session.
func (m *Manager) SignIn(ctx context.Context, email, password string) (Session, error) {
	if err := checkCredentials(email, password); err != nil {
		return Session{}, err
	}
	if m.client == nil {
		return m.save(ctx, m.offlineSession(ctx, email))
	}

	tok, err := m.client.SignInWithPassword(ctx, email, password)
	if err != nil {
		return Session{}, fmt.Errorf("sign in: %w", err)
	}
	return m.save(ctx, m.fromToken(tok, email))
}

// SignUp registers and, when the project does not require confirmation,
// signs in.
func (m *Manager) SignUp(ctx context.Context, email, password string) (Session, error) {
	if err := checkCredentials(email, password); err != nil {
		return Session{}, err
	}
	if m.client == nil {
		return m.save(ctx, m.offlineSession(ctx, email))
	}

	tok, err := m.client.SignUp(ctx, email, password)
	if err != nil {
		return Session{}, fmt.Errorf("sign up: %w", err)
	}
	if tok.AccessToken == "" {
		return Session{}, ErrConfirmationPending
	}
	return m.save(ctx, m.fromToken(tok, email))
}

// Current returns the stored session, refreshing an expired Supabase
// session when possible. It returns nil when nobody is signed in.
func (m *Manager) Current(ctx context.Context) (*Session, error) {
	raw, ok, err := m.kv.Get(ctx, sessionKey)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		m.logger.Warn("discarding unreadable session", zap.Error(err))
		return nil, m.kv.Delete(ctx, sessionKey)
	}
	if !s.expired(m.now()) {
		return &s, nil
	}

	if m.client == nil || s.RefreshToken == "" {
		return nil, m.kv.Delete(ctx, sessionKey)
	}
	tok, err := m.client.Refresh(ctx, s.RefreshToken)
	if err != nil {
		m.logger.Warn("session refresh failed", zap.Error(err))
		return nil, m.kv.Delete(ctx, sessionKey)
	}
	fresh, err := m.save(ctx, m.fromToken(tok, s.Email))
	if err != nil {
		return nil, err
	}
	return &fresh, nil
}

// Require returns the current session or ErrUnauthenticated.
func (m *Manager) Require(ctx context.Context) (Session, error) {
	s, err := m.Current(ctx)
	if err != nil {
		return Session{}, err
	}
	if s == nil {
		return Session{}, ErrUnauthenticated
	}
	return *s, nil
}

// Logout forgets the session. A failed remote revoke is logged only.
func (m *Manager) Logout(ctx context.Context) error {
	s, err := m.Current(ctx)
	if err != nil {
		return err
	}
	if s != nil && !s.Offline && m.client != nil {
		if err := m.client.Logout(ctx, s.AccessToken); err != nil {
			m.logger.Warn("remote logout failed", zap.Error(err))
		}
	}
	return m.kv.Delete(ctx, sessionKey)
}

// offlineSession keeps the user id stable across sign-ins with the same
// address.
func (m *Manager) offlineSession(ctx context.Context, email string) Session {
	id := uuid.NewString()
	if prev, _ := m.Current(ctx); prev != nil && prev.Email == email {
		id = prev.UserID
	}
	return Session{UserID: id, Email: email, Offline: true}
}

func (m *Manager) fromToken(tok *Token, email string) Session {
	s := Session{
		UserID:       tok.UserID,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		Email:        email,
	}
	if tok.Email != "" {
		s.Email = tok.Email
	}
	if tok.ExpiresIn > 0 {
		s.ExpiresAt = m.now().Add(time.Duration(tok.ExpiresIn) * time.Second).UTC()
	}
	return s
}

func (m *Manager) save(ctx context.Context, s Session) (Session, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return Session{}, err
	}
	if err := m.kv.Put(ctx, sessionKey, string(b)); err != nil {
		return Session{}, fmt.Errorf("save session: %w", err)
	}
	return s, nil
}

func checkCredentials(email, password string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("invalid email %q", email)
	}
	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLen)
	}
	return nil
}
