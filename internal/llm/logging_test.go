package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/wellnest/internal/store"
)

type recordingEventRepo struct {
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingEventRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	repo := &recordingEventRepo{}
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"diagnosis":"Common Cold"}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 4},
	})
	p := WithLogging(mock, repo, nil)

	ctx := WithPurpose(context.Background(), PurposeDiagnosis)
	_, err := p.Generate(ctx, Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "fever, cough"}},
		Schema:   &Schema{Name: "diagnosis", Definition: map[string]any{"type": "object"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	ev := repo.events[0]
	if ev.Purpose != "diagnosis" || !ev.Success {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if ev.InputTokens != 12 || ev.OutputTokens != 4 {
		t.Fatalf("unexpected token counts: %+v", ev)
	}
	if !strings.Contains(ev.RequestBody, "[schema: diagnosis]") {
		t.Fatalf("request body missing schema: %q", ev.RequestBody)
	}
	if ev.ResponseBody != `{"diagnosis":"Common Cold"}` {
		t.Fatalf("unexpected response body: %q", ev.ResponseBody)
	}
}

func TestLoggingProvider_RepoFailureDoesNotFailRequest(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	repo := &recordingEventRepo{err: errors.New("disk full")}
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}})
	p := WithLogging(mock, repo, zap.New(core))

	_, err := p.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected provider error to pass through, got: %v", err)
	}
	if repo.events[0].ErrorMessage == "" {
		t.Fatal("expected error message on event")
	}
	if logs.FilterMessage("failed to record llm request event").Len() != 1 {
		t.Fatalf("expected repo failure to be logged, got %v", logs.All())
	}
	if logs.FilterMessage("llm request failed").Len() != 1 {
		t.Fatalf("expected request failure to be logged, got %v", logs.All())
	}
}

func TestLoggingProvider_NilRepo(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, nil, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
