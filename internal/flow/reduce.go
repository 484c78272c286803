package flow

// Reduce computes the next state for event e and the effects the caller
// must run. It never mutates s. Events that do not apply in the current
// phase, or that carry a stale token, return s unchanged with no effects.
func Reduce[R Outcome](s State[R], e Event) (State[R], []Effect) {
	switch ev := e.(type) {
	case Started:
		if s.started {
			return s, nil
		}
		s.started = true
		s.seedValid = ev.Valid
		if !ev.Valid {
			s.Token++
			s.Phase = PhaseCancelled
			return bump(s), nil
		}
		return load(s)

	case QuestionsResolved:
		if s.Phase != PhaseLoading || ev.Token != s.Token {
			return s, nil
		}
		if len(ev.Questions) == 0 {
			s.Phase = PhaseFailed
			s.FailedStep = StepQuestions
			s.Err = errNoQuestions
			return bump(s), nil
		}
		s.Phase = PhaseActive
		s.Questions = ev.Questions
		s.Ledger = NewLedger(len(ev.Questions))
		s.Cursor = 0
		return bump(s), nil

	case QuestionsFailed:
		if s.Phase != PhaseLoading || ev.Token != s.Token {
			return s, nil
		}
		s.Phase = PhaseFailed
		s.FailedStep = StepQuestions
		s.Err = ev.Err
		return bump(s), nil

	case AnswerSelected:
		return selectAnswer(s, ev)

	case AdvanceDue:
		if s.Phase != PhaseActive || ev.Token != s.Token || !s.advancePending || ev.Cursor != s.Cursor {
			return s, nil
		}
		s.advancePending = false
		s.Cursor++
		return bump(s), nil

	case Resolved[R]:
		if s.Phase != PhaseResolving || ev.Token != s.Token {
			return s, nil
		}
		s.Result = ev.Result
		s.HasResult = true
		if ev.Result.Failed() {
			s.Phase = PhaseFailed
			s.FailedStep = StepResolve
		} else {
			s.Phase = PhaseComplete
			s.FailedStep = StepNone
		}
		return bump(s), []Effect{RecordResult[R]{
			Questions: s.Questions,
			Answers:   s.Ledger.Answers(),
			Result:    ev.Result,
		}}

	case Cancel:
		switch s.Phase {
		case PhaseLoading, PhaseActive, PhaseResolving, PhaseFailed:
		default:
			return s, nil
		}
		if !s.started {
			return s, nil
		}
		s.Token++
		s.Phase = PhaseCancelled
		s.advancePending = false
		return bump(s), nil

	case RetryResolve:
		if s.Phase != PhaseFailed || s.FailedStep != StepResolve {
			return s, nil
		}
		s.Token++
		s.Phase = PhaseResolving
		s.FailedStep = StepNone
		var zero R
		s.Result = zero
		s.HasResult = false
		return bump(s), []Effect{InvokeResolver{
			Token:     s.Token,
			Questions: s.Questions,
			Answers:   s.Ledger.Answers(),
		}}

	case Restart:
		if !s.started || !s.seedValid {
			return s, nil
		}
		fresh := State[R]{
			Token:        s.Token,
			started:      true,
			seedValid:    true,
			deferAdvance: s.deferAdvance,
			rev:          s.rev,
		}
		return load(fresh)
	}
	return s, nil
}

func selectAnswer[R Outcome](s State[R], ev AnswerSelected) (State[R], []Effect) {
	if s.Phase != PhaseActive || ev.Index != s.Cursor {
		return s, nil
	}
	a, ok := s.Questions[ev.Index].Pick(ev.Choice)
	if !ok {
		return s, nil
	}

	last := ev.Index == len(s.Questions)-1
	if last && s.triggered {
		return s, nil
	}

	s.Ledger = s.Ledger.With(ev.Index, a)

	if last {
		s.triggered = true
		s.Cursor = len(s.Questions)
		s.Phase = PhaseResolving
		return bump(s), []Effect{InvokeResolver{
			Token:     s.Token,
			Questions: s.Questions,
			Answers:   s.Ledger.Answers(),
		}}
	}

	if !s.deferAdvance {
		s.Cursor++
		return bump(s), nil
	}
	if s.advancePending {
		// Re-answer during the delay: the advance already scheduled
		// still applies.
		return bump(s), nil
	}
	s.advancePending = true
	return bump(s), []Effect{ScheduleAdvance{Token: s.Token, Cursor: s.Cursor}}
}

// load moves to Loading under a fresh token.
func load[R Outcome](s State[R]) (State[R], []Effect) {
	s.Token++
	s.Phase = PhaseLoading
	return bump(s), []Effect{LoadQuestions{Token: s.Token}}
}

func bump[R Outcome](s State[R]) State[R] {
	s.rev++
	return s
}
