// Package llm is the model access layer. Each vendor SDK sits behind
// Provider, and middleware adds timeouts, retries and request logging.
package llm

import (
	"context"
	"encoding/json"
)

// Provider sends one prompt and returns the reply. When Request.Schema
// is set the reply has been validated against it.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}

type Request struct {
	System   string
	Messages []Message

	// Schema asks for a JSON reply using the vendor's structured output
	// feature. Without it Content is the reply text as is.
	Schema *Schema

	MaxTokens int
	// Temperature in [0, 1]. Zero leaves the vendor default.
	Temperature float64
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// Schema is a JSON Schema document with a kebab-case Name, which doubles
// as the tool or format name on the vendor side.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string // as reported by the vendor
	StopReason string // one of the Stop constants
}

// Stop reasons shared by all providers. A StopBlocked reply is returned
// as *ErrContentBlocked, never as a Response.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
	StopBlocked   = "blocked"
)

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
