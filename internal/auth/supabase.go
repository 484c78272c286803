package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	gotrue "github.com/supabase-community/auth-go"
	"github.com/supabase-community/auth-go/types"
)

// Client talks to a Supabase GoTrue endpoint.
type Client struct {
	api gotrue.Client
}

// NewClient creates a Client for the project at url. The url is the
// project root; the /auth/v1 suffix is added here.
func NewClient(url, anonKey string) *Client {
	api := gotrue.New("", anonKey).
		WithCustomAuthURL(strings.TrimRight(url, "/") + "/auth/v1").
		WithClient(http.Client{Timeout: 20 * time.Second})
	return &Client{api: api}
}

// APIError is an error response from GoTrue.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("supabase auth: %s (%s, HTTP %d)", e.Message, e.Code, e.Status)
	}
	return fmt.Sprintf("supabase auth: %s (HTTP %d)", e.Message, e.Status)
}

// Token is a session issued by GoTrue. It is empty apart from the user
// when sign-up waits for email confirmation.
type Token struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
	UserID       string
	Email        string
}

func tokenFrom(s types.Session) *Token {
	t := &Token{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresIn:    s.ExpiresIn,
		Email:        s.User.Email,
	}
	if s.AccessToken != "" {
		t.UserID = s.User.ID.String()
	}
	return t
}

// SignInWithPassword exchanges credentials for a session.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resp, err := c.api.Token(types.TokenRequest{GrantType: "password", Email: email, Password: password})
	if err != nil {
		return nil, decodeError(err)
	}
	return tokenFrom(resp.Session), nil
}

// SignUp registers a user. The returned session is empty when the
// project requires email confirmation.
func (c *Client) SignUp(ctx context.Context, email, password string) (*Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resp, err := c.api.Signup(types.SignupRequest{Email: email, Password: password})
	if err != nil {
		return nil, decodeError(err)
	}
	if resp.Session.AccessToken != "" {
		return tokenFrom(resp.Session), nil
	}
	return &Token{UserID: resp.User.ID.String(), Email: resp.User.Email}, nil
}

// Refresh trades a refresh token for a new session.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resp, err := c.api.Token(types.TokenRequest{GrantType: "refresh_token", RefreshToken: refreshToken})
	if err != nil {
		return nil, decodeError(err)
	}
	return tokenFrom(resp.Session), nil
}

// Logout revokes the session's refresh tokens.
func (c *Client) Logout(ctx context.Context, accessToken string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.api.WithToken(accessToken).Logout(); err != nil {
		return decodeError(err)
	}
	return nil
}

// statusError matches the text auth-go uses for non-success responses.
var statusError = regexp.MustCompile(`^response status code (\d+)(?::\s*(.*))?$`)

// decodeError turns an auth-go HTTP failure into an *APIError. Transport
// errors pass through unchanged.
func decodeError(err error) error {
	m := statusError.FindStringSubmatch(err.Error())
	if m == nil {
		return err
	}
	status, _ := strconv.Atoi(m[1])

	var body struct {
		Error       string `json:"error"`
		Description string `json:"error_description"`
		ErrorCode   string `json:"error_code"`
		Msg         string `json:"msg"`
	}
	_ = json.Unmarshal([]byte(m[2]), &body)

	e := &APIError{Status: status, Code: body.ErrorCode}
	if e.Code == "" {
		e.Code = body.Error
	}
	switch {
	case body.Description != "":
		e.Message = body.Description
	case body.Msg != "":
		e.Message = body.Msg
	default:
		e.Message = http.StatusText(status)
	}
	return e
}
