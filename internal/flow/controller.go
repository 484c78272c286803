package flow

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultFeedbackDelay is how long a selected answer stays highlighted
// before the next question is shown.
const DefaultFeedbackDelay = 400 * time.Millisecond

type options struct {
	exec   Executor
	delay  time.Duration
	logger *zap.Logger
}

// Option configures a Controller.
type Option func(*options)

// WithExecutor sets the executor for async work. Tests pass a
// *ManualExecutor.
func WithExecutor(e Executor) Option {
	return func(o *options) { o.exec = e }
}

// WithFeedbackDelay sets the pause between answering and advancing.
// Zero advances immediately.
func WithFeedbackDelay(d time.Duration) Option {
	return func(o *options) { o.delay = d }
}

// WithLogger sets the logger for phase transitions and discarded
// completions.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Controller drives one flow instance. All state changes go through
// Reduce under a mutex; effects run after the lock is released.
type Controller[S any, R Outcome] struct {
	id     string
	flow   Flow[S, R]
	seed   S
	exec   Executor
	delay  time.Duration
	logger *zap.Logger

	mu       sync.Mutex
	state    State[R]
	observer func(State[R])
	base     context.Context
	epoch    context.Context
	cancel   context.CancelFunc
	stops    []func() bool
}

// New creates a controller for one run of f with seed. Nothing happens
// until Start.
func New[S any, R Outcome](f Flow[S, R], seed S, opts ...Option) *Controller[S, R] {
	o := options{delay: DefaultFeedbackDelay}
	for _, opt := range opts {
		opt(&o)
	}
	if o.exec == nil {
		o.exec = &GoExecutor{}
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	id := uuid.NewString()
	return &Controller[S, R]{
		id:     id,
		flow:   f,
		seed:   seed,
		exec:   o.exec,
		delay:  o.delay,
		logger: o.logger.With(zap.String("flow", f.Name), zap.String("instance", id)),
		state:  State[R]{deferAdvance: o.delay > 0},
	}
}

// ID returns the instance identifier.
func (c *Controller[S, R]) ID() string { return c.id }

// Name returns the flow name.
func (c *Controller[S, R]) Name() string { return c.flow.Name }

// Seed returns the seed the instance was created with.
func (c *Controller[S, R]) Seed() S { return c.seed }

// Observe registers fn to receive every new state. fn runs with the
// controller locked, so it must not call back into the controller.
func (c *Controller[S, R]) Observe(fn func(State[R])) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observer = fn
}

// State returns the current snapshot.
func (c *Controller[S, R]) State() State[R] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start validates the seed and begins loading questions. Async work runs
// under a child of ctx.
func (c *Controller[S, R]) Start(ctx context.Context) {
	c.mu.Lock()
	if c.base == nil {
		c.base = ctx
	}
	c.mu.Unlock()

	valid := true
	if c.flow.ValidateSeed != nil {
		if err := c.flow.ValidateSeed(c.seed); err != nil {
			c.logger.Debug("seed rejected", zap.Error(err))
			valid = false
		}
	}
	c.dispatch(Started{Valid: valid})
}

// Select answers question index with option choice. Selections for any
// index other than the current one are ignored.
func (c *Controller[S, R]) Select(index, choice int) {
	c.dispatch(AnswerSelected{Index: index, Choice: choice})
}

// Cancel abandons the instance. Pending completions are discarded.
func (c *Controller[S, R]) Cancel() {
	c.dispatch(Cancel{})
}

// RetryResolve re-runs the terminal step after it failed.
func (c *Controller[S, R]) RetryResolve() {
	c.dispatch(RetryResolve{})
}

// Restart reloads the questions and clears all answers.
func (c *Controller[S, R]) Restart() {
	c.dispatch(Restart{})
}

// Close cancels the instance and releases its context and timers.
func (c *Controller[S, R]) Close() {
	c.Cancel()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}
	c.stopTimersLocked()
}

func (c *Controller[S, R]) dispatch(e Event) {
	c.mu.Lock()
	prev := c.state
	next, effects := Reduce(prev, e)
	if next.rev == prev.rev {
		c.mu.Unlock()
		c.logIgnored(e, prev)
		return
	}
	c.state = next

	if next.Token != prev.Token {
		c.newEpochLocked()
	}
	ctx := c.epoch

	if next.Phase != prev.Phase {
		c.logger.Debug("flow phase",
			zap.Stringer("from", prev.Phase),
			zap.Stringer("to", next.Phase),
			zap.Uint64("token", next.Token),
		)
	}
	if c.observer != nil {
		c.observer(next)
	}
	c.mu.Unlock()

	for _, eff := range effects {
		c.run(ctx, eff)
	}
}

// newEpochLocked cancels in-flight work of the previous epoch and starts
// a fresh context for the new one.
func (c *Controller[S, R]) newEpochLocked() {
	if c.cancel != nil {
		c.cancel()
	}
	c.stopTimersLocked()
	base := c.base
	if base == nil {
		base = context.Background()
	}
	c.epoch, c.cancel = context.WithCancel(base)
}

func (c *Controller[S, R]) stopTimersLocked() {
	for _, stop := range c.stops {
		stop()
	}
	c.stops = nil
}

func (c *Controller[S, R]) run(ctx context.Context, eff Effect) {
	switch ef := eff.(type) {
	case LoadQuestions:
		c.exec.Go(func() {
			qs, err := c.flow.Source.Resolve(ctx, c.seed)
			if err != nil {
				c.dispatch(QuestionsFailed{Token: ef.Token, Err: err})
				return
			}
			c.dispatch(QuestionsResolved{Token: ef.Token, Questions: qs})
		})

	case ScheduleAdvance:
		stop := c.exec.AfterFunc(c.delay, func() {
			c.dispatch(AdvanceDue{Token: ef.Token, Cursor: ef.Cursor})
		})
		c.mu.Lock()
		c.stops = append(c.stops, stop)
		c.mu.Unlock()

	case InvokeResolver:
		c.exec.Go(func() {
			result := c.flow.Resolver.Resolve(ctx, c.seed, ef.Questions, ef.Answers)
			c.dispatch(Resolved[R]{Token: ef.Token, Result: result})
		})

	case RecordResult[R]:
		if c.flow.Recorder != nil {
			c.flow.Recorder.Record(c.seed, ef.Questions, ef.Answers, ef.Result)
		}
	}
}

func (c *Controller[S, R]) logIgnored(e Event, s State[R]) {
	var token uint64
	switch ev := e.(type) {
	case QuestionsResolved:
		token = ev.Token
	case QuestionsFailed:
		token = ev.Token
	case Resolved[R]:
		token = ev.Token
	case AdvanceDue:
		token = ev.Token
	default:
		return
	}
	if token != s.Token {
		c.logger.Debug("discarded stale completion",
			zap.Uint64("token", token),
			zap.Uint64("current", s.Token),
		)
	}
}
