package question

import "context"

// Question is a single prompt with a fixed set of options. Questions are
// never mutated after a Source returns them.
type Question struct {
	Text    string
	Options []Option
}

// Option is one selectable answer. Scored options carry a numeric
// weight that is tallied (the mental-health quiz); unscored options are
// opaque labels echoed back to the resolver (symptom and planner flows).
type Option struct {
	Label  string
	Score  int
	Scored bool
}

// Answer records which option was picked for a question.
type Answer struct {
	Choice int // index into Question.Options
	Option Option
}

// Source produces the ordered question list for a seed. Implementations
// return either a non-empty list or an error, never partial data.
type Source[S any] interface {
	Resolve(ctx context.Context, seed S) ([]Question, error)
}

// SourceFunc adapts a plain function to Source.
type SourceFunc[S any] func(ctx context.Context, seed S) ([]Question, error)

func (f SourceFunc[S]) Resolve(ctx context.Context, seed S) ([]Question, error) {
	return f(ctx, seed)
}

// Labels returns the option labels in order.
func (q Question) Labels() []string {
	labels := make([]string, len(q.Options))
	for i, o := range q.Options {
		labels[i] = o.Label
	}
	return labels
}

// Pick builds the Answer for choice, reporting false when choice is out
// of range.
func (q Question) Pick(choice int) (Answer, bool) {
	if choice < 0 || choice >= len(q.Options) {
		return Answer{}, false
	}
	return Answer{Choice: choice, Option: q.Options[choice]}, true
}
