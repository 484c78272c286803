package question

import "fmt"

// Stage names the step of question generation that failed.
type Stage string

const (
	StageRequest  Stage = "request"
	StageParse    Stage = "parse"
	StageValidate Stage = "validate"
)

// GenerationFailure is returned by a Source when no usable question
// list could be produced. It is terminal for the flow instance that
// requested it.
type GenerationFailure struct {
	Stage Stage
	Err   error
}

func (e *GenerationFailure) Error() string {
	return fmt.Sprintf("generate questions (%s): %v", e.Stage, e.Err)
}

func (e *GenerationFailure) Unwrap() error { return e.Err }

// ValidationError describes why a generated question list was rejected.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
