package flow

import "github.com/abhisek/wellnest/internal/question"

// Outcome is the result shape a flow resolves to. A failed outcome is
// still a result: it is displayed, recorded and can be retried.
type Outcome interface {
	Failed() bool
	FailureMessage() string
}

// State is the single authoritative snapshot of a flow instance. It is
// only ever replaced through Reduce.
type State[R Outcome] struct {
	Phase     Phase
	Questions []question.Question
	Ledger    Ledger
	Cursor    int

	// Result is set once the terminal step has returned, successful or not.
	Result    R
	HasResult bool

	// FailedStep and Err describe a PhaseFailed state. Err is set for
	// question failures; resolve failures carry their message in Result.
	FailedStep Step
	Err        error

	// Token identifies the current async epoch. Completions carrying an
	// older token are discarded.
	Token uint64

	started        bool
	seedValid      bool
	triggered      bool // one-shot guard for Active -> Resolving
	advancePending bool
	deferAdvance   bool
	rev            uint64
}

// Current returns the question at the cursor, or false when the flow is
// not Active.
func (s State[R]) Current() (question.Question, bool) {
	if s.Phase != PhaseActive || s.Cursor >= len(s.Questions) {
		return question.Question{}, false
	}
	return s.Questions[s.Cursor], true
}

// Selected returns the option index chosen for the current question, or
// -1 when it has not been answered yet.
func (s State[R]) Selected() int {
	if a, ok := s.Ledger.At(s.Cursor); ok {
		return a.Choice
	}
	return -1
}

// AdvancePending reports whether the current question has been answered
// and the cursor is waiting out the feedback delay.
func (s State[R]) AdvancePending() bool { return s.advancePending }

// FailureMessage describes why the flow failed, or "" if it has not.
func (s State[R]) FailureMessage() string {
	if s.Phase != PhaseFailed {
		return ""
	}
	if s.FailedStep == StepResolve && s.HasResult {
		return s.Result.FailureMessage()
	}
	if s.Err != nil {
		return s.Err.Error()
	}
	return "unknown failure"
}

// Actions lists the recovery and navigation actions available in the
// current phase.
func (s State[R]) Actions() []Action {
	switch s.Phase {
	case PhaseFailed:
		if s.FailedStep == StepResolve {
			return []Action{ActionRetry, ActionStartOver, ActionGoBack}
		}
		return []Action{ActionStartOver, ActionGoBack}
	case PhaseComplete:
		return []Action{ActionStartOver, ActionGoBack}
	case PhaseCancelled:
		if s.seedValid {
			return []Action{ActionStartOver, ActionGoBack}
		}
		return []Action{ActionGoBack}
	default:
		return []Action{ActionGoBack}
	}
}
