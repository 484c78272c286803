package flow

import (
	"context"
	"errors"

	"github.com/abhisek/wellnest/internal/question"
)

// ErrInvalidSeed is returned by seed validators for empty or unusable seeds.
var ErrInvalidSeed = errors.New("invalid seed")

var errNoQuestions = &question.GenerationFailure{
	Stage: question.StageValidate,
	Err:   errors.New("no questions"),
}

// Resolver turns a completed questionnaire into a result. Failures are
// returned as a failed R rather than an error.
type Resolver[S any, R Outcome] interface {
	Resolve(ctx context.Context, seed S, qs []question.Question, answers []question.Answer) R
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc[S any, R Outcome] func(ctx context.Context, seed S, qs []question.Question, answers []question.Answer) R

func (f ResolverFunc[S, R]) Resolve(ctx context.Context, seed S, qs []question.Question, answers []question.Answer) R {
	return f(ctx, seed, qs, answers)
}

// Recorder persists a result. It must not block on I/O; the profile
// store satisfies this by queueing the write.
type Recorder[S any, R Outcome] interface {
	Record(seed S, qs []question.Question, answers []question.Answer, result R)
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc[S any, R Outcome] func(seed S, qs []question.Question, answers []question.Answer, result R)

func (f RecorderFunc[S, R]) Record(seed S, qs []question.Question, answers []question.Answer, result R) {
	f(seed, qs, answers, result)
}

// Flow binds a seed type to its question source, terminal resolver and
// optional recorder. One Flow value is shared by all instances of it.
type Flow[S any, R Outcome] struct {
	Name     string
	Source   question.Source[S]
	Resolver Resolver[S, R]
	Recorder Recorder[S, R]

	// ValidateSeed rejects seeds at entry. A rejected seed moves the
	// instance straight to Cancelled. Nil accepts every seed.
	ValidateSeed func(S) error
}
