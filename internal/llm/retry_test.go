package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry() RetryConfig {
	return RetryConfig{MaxAttempts: 3, InitialWait: time.Millisecond, MaxWait: 10 * time.Millisecond, Multiplier: 2}
}

var okReply = MockResponse{Content: json.RawMessage(`{"ok":true}`)}

func down() MockResponse { return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}} }

func TestRetry_Attempts(t *testing.T) {
	cases := []struct {
		name    string
		script  []MockResponse
		calls   int
		wantErr any
	}{
		{"first try", []MockResponse{okReply}, 1, nil},
		{"transient then ok", []MockResponse{down(), okReply}, 2, nil},
		{"gives up after max attempts", []MockResponse{down(), down(), down(), okReply}, 3, new(*ErrProviderUnavailable)},
		{"plain network error is transient", []MockResponse{{Err: errors.New("connection reset")}, okReply}, 2, nil},
		{"rate limit waits and retries", []MockResponse{{Err: &ErrRateLimit{RetryAfter: time.Millisecond}}, okReply}, 2, nil},
		{"truncation is final", []MockResponse{{Err: &ErrMaxTokensExceeded{}}, okReply}, 1, new(*ErrMaxTokensExceeded)},
		{"rejected request is final", []MockResponse{{Err: &ErrRequestRejected{Status: 401, Err: errors.New("bad key")}}, okReply}, 1, new(*ErrRequestRejected)},
		{"refusal is final", []MockResponse{{Err: &ErrContentBlocked{Reason: "SAFETY"}}, okReply}, 1, new(*ErrContentBlocked)},
		{"malformed reply gets one more try", []MockResponse{
			{Err: &ErrInvalidResponse{Err: errors.New("bad")}},
			{Err: &ErrInvalidResponse{Err: errors.New("bad")}},
			okReply,
		}, 2, new(*ErrInvalidResponse)},
		{"malformed reply then ok", []MockResponse{{Err: &ErrInvalidResponse{Err: errors.New("bad")}}, okReply}, 2, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := NewMockProvider(tc.script...)
			resp, err := WithRetry(mock, fastRetry()).Generate(context.Background(), Request{})

			assert.Equal(t, tc.calls, mock.CallCount())
			if tc.wantErr == nil {
				require.NoError(t, err)
				assert.JSONEq(t, `{"ok":true}`, string(resp.Content))
				return
			}
			assert.ErrorAs(t, err, tc.wantErr)
		})
	}
}

func TestRetry_CancelledContextStopsBackoff(t *testing.T) {
	mock := NewMockProvider(down(), okReply)
	cfg := fastRetry()
	cfg.InitialWait = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WithRetry(mock, cfg).Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_ZeroAttemptsStillCallsOnce(t *testing.T) {
	mock := NewMockProvider(down(), okReply)
	_, err := WithRetry(mock, RetryConfig{}).Generate(context.Background(), Request{})
	assert.Error(t, err)
	assert.Equal(t, 1, mock.CallCount())
	assert.Equal(t, "mock", WithRetry(mock, RetryConfig{}).ModelID())
}

func TestRetry_Delay(t *testing.T) {
	r := &retryProvider{
		cfg:    RetryConfig{InitialWait: 100 * time.Millisecond, MaxWait: 300 * time.Millisecond, Multiplier: 2},
		jitter: func() float64 { return 0 },
	}
	transient := errors.New("x")

	for attempt, want := range map[int]time.Duration{
		1: 100 * time.Millisecond,
		2: 200 * time.Millisecond,
		3: 300 * time.Millisecond,
		6: 300 * time.Millisecond,
	} {
		t.Run(fmt.Sprint(attempt), func(t *testing.T) {
			assert.Equal(t, want, r.delay(attempt, transient))
		})
	}

	assert.Equal(t, 7*time.Second, r.delay(1, &ErrRateLimit{RetryAfter: 7 * time.Second}))

	r.jitter = func() float64 { return 1 }
	assert.Equal(t, 120*time.Millisecond, r.delay(1, transient))
}

// blockingProvider waits for its context to end.
type blockingProvider struct{}

func (blockingProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingProvider) ModelID() string { return "blocking" }

func TestTimeout_CancelsSlowProvider(t *testing.T) {
	p := WithTimeout(blockingProvider{}, 5*time.Millisecond)

	_, err := p.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "blocking", p.ModelID())
}

func TestTimeout_ZeroIsPassThrough(t *testing.T) {
	mock := NewMockProvider()
	assert.Same(t, mock, WithTimeout(mock, 0))
}
