package question

import (
	"fmt"
	"strings"
)

// Validator checks a generated question list.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for error messages and logging.
	Name() string

	// Validate returns nil if qs passes.
	Validate(qs []Question) *ValidationError
}

// Validate runs validators in order and returns the first failure.
func Validate(qs []Question, validators ...Validator) *ValidationError {
	for _, v := range validators {
		if verr := v.Validate(qs); verr != nil {
			return verr
		}
	}
	return nil
}

// StructuralValidator checks that the list is non-empty, every question
// has text, and every option has a label.
type StructuralValidator struct {
	MaxTextLen int // 0 means 500
}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(qs []Question) *ValidationError {
	maxLen := v.MaxTextLen
	if maxLen == 0 {
		maxLen = 500
	}
	if len(qs) == 0 {
		return &ValidationError{Validator: v.Name(), Message: "no questions"}
	}
	for i, q := range qs {
		if strings.TrimSpace(q.Text) == "" {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("question %d has empty text", i+1)}
		}
		if len(q.Text) > maxLen {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("question %d exceeds %d characters", i+1, maxLen)}
		}
		for j, o := range q.Options {
			if strings.TrimSpace(o.Label) == "" {
				return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("question %d option %d is empty", i+1, j+1)}
			}
		}
	}
	return nil
}

// OptionCountValidator requires every question to have between Min and
// Max options inclusive.
type OptionCountValidator struct {
	Min, Max int
}

// ExactOptions returns a validator requiring exactly n options.
func ExactOptions(n int) *OptionCountValidator {
	return &OptionCountValidator{Min: n, Max: n}
}

func (v *OptionCountValidator) Name() string { return "option-count" }

func (v *OptionCountValidator) Validate(qs []Question) *ValidationError {
	for i, q := range qs {
		if n := len(q.Options); n < v.Min || n > v.Max {
			want := fmt.Sprintf("%d", v.Min)
			if v.Min != v.Max {
				want = fmt.Sprintf("%d-%d", v.Min, v.Max)
			}
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d has %d options, want %s", i+1, n, want),
			}
		}
	}
	return nil
}

// DuplicateValidator rejects lists that ask the same question twice.
type DuplicateValidator struct{}

func (v *DuplicateValidator) Name() string { return "duplicate" }

func (v *DuplicateValidator) Validate(qs []Question) *ValidationError {
	seen := make(map[string]int, len(qs))
	for i, q := range qs {
		key := strings.ToLower(strings.Join(strings.Fields(q.Text), " "))
		if prev, ok := seen[key]; ok {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d repeats question %d", i+1, prev+1),
			}
		}
		seen[key] = i
	}
	return nil
}

// CountValidator requires exactly Want questions.
type CountValidator struct {
	Want int
}

func (v *CountValidator) Name() string { return "count" }

func (v *CountValidator) Validate(qs []Question) *ValidationError {
	if len(qs) != v.Want {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("got %d questions, want %d", len(qs), v.Want),
		}
	}
	return nil
}

// DefaultValidators returns the chain applied to generated lists of count
// questions with optionCount options each.
func DefaultValidators(count, optionCount int) []Validator {
	return []Validator{
		&StructuralValidator{},
		&CountValidator{Want: count},
		ExactOptions(optionCount),
		&DuplicateValidator{},
	}
}
