package flow

// Phase is the lifecycle position of a flow instance.
type Phase int

const (
	PhaseLoading   Phase = iota // waiting for the question list
	PhaseActive                 // questions shown, collecting answers
	PhaseResolving              // all answered, terminal step running
	PhaseComplete
	PhaseFailed
	PhaseCancelled
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseActive:
		return "active"
	case PhaseResolving:
		return "resolving"
	case PhaseComplete:
		return "complete"
	case PhaseFailed:
		return "failed"
	case PhaseCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions happen without an
// explicit Restart or RetryResolve.
func (p Phase) Terminal() bool {
	return p == PhaseComplete || p == PhaseFailed || p == PhaseCancelled
}

// Step identifies which asynchronous step a failure came from.
type Step string

const (
	StepNone      Step = ""
	StepQuestions Step = "questions"
	StepResolve   Step = "resolve"
)

// Action is a named recovery or navigation action offered to the user.
type Action string

const (
	ActionRetry     Action = "retry"
	ActionStartOver Action = "start over"
	ActionGoBack    Action = "go back"
)
