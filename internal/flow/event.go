package flow

import "github.com/abhisek/wellnest/internal/question"

// Event is an input to Reduce.
type Event interface{ isEvent() }

// Started begins the flow. Valid is false when the seed was rejected.
type Started struct{ Valid bool }

// QuestionsResolved delivers the question list for epoch Token.
type QuestionsResolved struct {
	Token     uint64
	Questions []question.Question
}

// QuestionsFailed reports that the question list could not be produced.
type QuestionsFailed struct {
	Token uint64
	Err   error
}

// AnswerSelected picks option Choice for question Index.
type AnswerSelected struct {
	Index  int
	Choice int
}

// AdvanceDue fires when the feedback delay for Cursor has elapsed.
type AdvanceDue struct {
	Token  uint64
	Cursor int
}

// Resolved delivers the terminal step's result for epoch Token.
type Resolved[R Outcome] struct {
	Token  uint64
	Result R
}

// Cancel abandons the flow.
type Cancel struct{}

// RetryResolve re-runs only the terminal step after a resolve failure.
type RetryResolve struct{}

// Restart discards all progress and loads the questions again.
type Restart struct{}

func (Started) isEvent()           {}
func (QuestionsResolved) isEvent() {}
func (QuestionsFailed) isEvent()   {}
func (AnswerSelected) isEvent()    {}
func (AdvanceDue) isEvent()        {}
func (Resolved[R]) isEvent()       {}
func (Cancel) isEvent()            {}
func (RetryResolve) isEvent()      {}
func (Restart) isEvent()           {}

// Effect is work Reduce asks the controller to perform.
type Effect interface{ isEffect() }

// LoadQuestions asks for the question list under epoch Token.
type LoadQuestions struct{ Token uint64 }

// ScheduleAdvance asks for AdvanceDue after the feedback delay.
type ScheduleAdvance struct {
	Token  uint64
	Cursor int
}

// InvokeResolver asks for the terminal step to run under epoch Token.
type InvokeResolver struct {
	Token     uint64
	Questions []question.Question
	Answers   []question.Answer
}

// RecordResult asks for a result to be persisted.
type RecordResult[R Outcome] struct {
	Questions []question.Question
	Answers   []question.Answer
	Result    R
}

func (LoadQuestions) isEffect()   {}
func (ScheduleAdvance) isEffect() {}
func (InvokeResolver) isEffect()  {}
func (RecordResult[R]) isEffect() {}
