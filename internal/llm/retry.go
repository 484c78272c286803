package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// retryClass says how often a failure may be retried within one call.
type retryClass int

const (
	retryNever retryClass = iota
	retryOnce
	retryAlways
)

// classify maps a provider error to its retry class. Cancellation,
// truncation, refusals and rejected requests would fail the same way
// again. A malformed
// reply is worth one more sample. Anything else is assumed transient.
func classify(err error) retryClass {
	var (
		maxTok   *ErrMaxTokensExceeded
		blocked  *ErrContentBlocked
		rejected *ErrRequestRejected
		invalid  *ErrInvalidResponse
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return retryNever
	case errors.As(err, &maxTok), errors.As(err, &blocked), errors.As(err, &rejected):
		return retryNever
	case errors.As(err, &invalid):
		return retryOnce
	}
	return retryAlways
}

type retryProvider struct {
	inner Provider
	cfg   RetryConfig
	// jitter returns a value in [-1, 1).
	jitter func() float64
}

// WithRetry wraps p so transient failures are retried up to
// cfg.MaxAttempts times in total, with exponential backoff.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &retryProvider{
		inner:  p,
		cfg:    cfg,
		jitter: func() float64 { return 2*rand.Float64() - 1 },
	}
}

func (r *retryProvider) ModelID() string { return r.inner.ModelID() }

func (r *retryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.cfg.MaxAttempts, 1)
	onceUsed := false

	for attempt := 1; ; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		switch classify(err) {
		case retryNever:
			return nil, err
		case retryOnce:
			if onceUsed {
				return nil, err
			}
			onceUsed = true
		}
		if attempt >= attempts {
			return nil, err
		}

		t := time.NewTimer(r.delay(attempt, err))
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}
}

// delay is the wait after the given failed attempt (1-based). A rate
// limit that names its own wait wins over the backoff curve.
func (r *retryProvider) delay(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	d := float64(r.cfg.InitialWait)
	for range attempt - 1 {
		d *= r.cfg.Multiplier
	}
	if limit := float64(r.cfg.MaxWait); limit > 0 && d > limit {
		d = limit
	}
	d += d * 0.2 * r.jitter()
	return time.Duration(max(d, 0))
}
