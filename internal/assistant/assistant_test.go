package assistant

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wellnest/internal/llm"
	"github.com/abhisek/wellnest/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := store.Open("file:assistant_" + name + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestReply_EmptyInput(t *testing.T) {
	mock := llm.NewMockProvider()
	a := New(mock, nil, nil)

	assert.Equal(t, ReplyEmptyInput, a.Reply(context.Background(), "  \n"))
	assert.Equal(t, 0, mock.CallCount())
}

func TestReply_Fallbacks(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
		want string
	}{
		{"provider error", llm.MockResponse{Err: &llm.ErrProviderUnavailable{}}, ReplyFailure},
		{"blank reply", llm.MockResponse{Content: json.RawMessage(`"   "`)}, ReplyEmptyModel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := openStore(t)
			a := New(llm.NewMockProvider(tt.resp), s.ChatRepo(), nil)

			assert.Equal(t, tt.want, a.Reply(context.Background(), "I feel tired"))
			history, err := a.History(context.Background(), 10)
			require.NoError(t, err)
			assert.Empty(t, history, "fallback exchanges are not stored")
		})
	}
}

func TestReply_StoresConversationAndSendsHistory(t *testing.T) {
	s := openStore(t)
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`Try a short walk outside. 🌞`)},
		llm.MockResponse{Content: json.RawMessage(`"A glass of water helps too."`)},
	)
	a := New(mock, s.ChatRepo(), nil)
	ctx := context.Background()

	assert.Equal(t, "Try a short walk outside. 🌞", a.Reply(ctx, "I feel sluggish"))
	assert.Equal(t, "A glass of water helps too.", a.Reply(ctx, "Anything else?"))

	history, err := a.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 4)
	assert.Equal(t, SenderUser, history[0].Sender)
	assert.Equal(t, "I feel sluggish", history[0].Body)
	assert.Equal(t, SenderAssistant, history[3].Sender)

	second := mock.Requests()[1].Messages
	require.Len(t, second, 3)
	assert.Equal(t, llm.RoleAssistant, second[1].Role)
	assert.Equal(t, "Anything else?", second[2].Content)
}
