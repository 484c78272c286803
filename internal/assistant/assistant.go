// Package assistant is the short-form wellness chat companion.
package assistant

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/wellnest/internal/llm"
	"github.com/abhisek/wellnest/internal/store"
)

// Conversation is the chat history key the assistant uses.
const Conversation = "wellness"

// Senders stored with each message.
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// Fixed replies used when the model is not consulted or fails.
const (
	ReplyEmptyInput = "I'm here whenever you'd like to share how you're feeling. 🌱"
	ReplyEmptyModel = "I'm here for you. Take a deep breath and let's refocus on your well-being. 🌿"
	ReplyFailure    = "I'm having a bit of trouble responding right now, but remember, your wellness matters."
)

// historyTurns is how many prior messages are sent as context.
const historyTurns = 10

const systemPrompt = `You are a compassionate wellness companion in a holistic health app. Your tone is warm, concise and human.

Each reply:
- is one or two sentences
- offers emotional support or practical wellness advice
- avoids medical diagnosis
- encourages mindfulness and small positive actions
- uses no markdown or lists, and at most one subtle emoji such as 🌿, 🌸 or 🌞`

// Assistant replies to user messages and keeps the conversation.
type Assistant struct {
	provider llm.Provider
	chat     store.ChatRepo
	logger   *zap.Logger
}

// New creates an Assistant. chat may be nil to disable history.
func New(provider llm.Provider, chat store.ChatRepo, logger *zap.Logger) *Assistant {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assistant{provider: provider, chat: chat, logger: logger}
}

// Reply answers message. It never fails; fallbacks cover empty input and
// model errors. Only real exchanges are stored.
func (a *Assistant) Reply(ctx context.Context, message string) string {
	message = strings.TrimSpace(message)
	if message == "" {
		return ReplyEmptyInput
	}

	history, err := a.History(ctx, historyTurns)
	if err != nil {
		a.logger.Warn("load chat history", zap.Error(err))
	}
	msgs := make([]llm.Message, 0, len(history)+1)
	for _, m := range history {
		role := llm.RoleUser
		if m.Sender == SenderAssistant {
			role = llm.RoleAssistant
		}
		msgs = append(msgs, llm.Message{Role: role, Content: m.Body})
	}
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: message})

	resp, err := a.provider.Generate(llm.WithPurpose(ctx, llm.PurposeAssistant), llm.Request{
		System:      systemPrompt,
		Messages:    msgs,
		MaxTokens:   256,
		Temperature: 0.7,
	})
	if err != nil {
		a.logger.Warn("assistant reply failed", zap.Error(err))
		return ReplyFailure
	}

	reply := strings.TrimSpace(text(resp.Content))
	if reply == "" {
		return ReplyEmptyModel
	}

	a.save(ctx, SenderUser, message)
	a.save(ctx, SenderAssistant, reply)
	return reply
}

// History returns up to limit stored messages, oldest first.
func (a *Assistant) History(ctx context.Context, limit int) ([]store.ChatMessage, error) {
	if a.chat == nil {
		return nil, nil
	}
	return a.chat.Recent(ctx, Conversation, limit)
}

func (a *Assistant) save(ctx context.Context, sender, body string) {
	if a.chat == nil {
		return
	}
	if _, err := a.chat.Append(ctx, store.ChatMessage{Conversation: Conversation, Sender: sender, Body: body}); err != nil {
		a.logger.Warn("save chat message", zap.String("sender", sender), zap.Error(err))
	}
}

// text unwraps an unstructured response. Providers return free text as a
// JSON string; anything else is used verbatim.
func text(content json.RawMessage) string {
	var s string
	if err := json.Unmarshal(content, &s); err == nil {
		return s
	}
	return string(content)
}
