package flow

import "github.com/abhisek/wellnest/internal/question"

type slot struct {
	answer question.Answer
	set    bool
}

// Ledger holds one answer slot per question, index-aligned with the
// question list. A Ledger value is never modified in place; With returns
// a copy, so snapshots handed to observers stay stable.
type Ledger struct {
	slots []slot
}

// NewLedger returns a ledger of n unset slots.
func NewLedger(n int) Ledger {
	return Ledger{slots: make([]slot, n)}
}

// Len returns the number of slots.
func (l Ledger) Len() int { return len(l.slots) }

// At returns the answer at i and whether the slot is set.
func (l Ledger) At(i int) (question.Answer, bool) {
	if i < 0 || i >= len(l.slots) {
		return question.Answer{}, false
	}
	s := l.slots[i]
	return s.answer, s.set
}

// Filled counts set slots.
func (l Ledger) Filled() int {
	n := 0
	for _, s := range l.slots {
		if s.set {
			n++
		}
	}
	return n
}

// Complete reports whether every slot is set. An empty ledger is never
// complete.
func (l Ledger) Complete() bool {
	return len(l.slots) > 0 && l.Filled() == len(l.slots)
}

// Answers returns the answers in order. Unset slots yield the zero Answer.
func (l Ledger) Answers() []question.Answer {
	out := make([]question.Answer, len(l.slots))
	for i, s := range l.slots {
		out[i] = s.answer
	}
	return out
}

// With returns a copy of l with slot i set to a.
func (l Ledger) With(i int, a question.Answer) Ledger {
	slots := make([]slot, len(l.slots))
	copy(slots, l.slots)
	slots[i] = slot{answer: a, set: true}
	return Ledger{slots: slots}
}
