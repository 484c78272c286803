package wellness

import (
	"github.com/abhisek/wellnest/internal/profile"
	"github.com/abhisek/wellnest/internal/question"
)

// Sink accepts profile sections. profile.Store is the production sink;
// Record must not block on I/O.
type Sink interface {
	Record(domain profile.Domain, section profile.Section)
}

func questionTexts(qs []question.Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.Text
	}
	return out
}

func answerLabels(answers []question.Answer) []string {
	out := make([]string, len(answers))
	for i, a := range answers {
		out[i] = a.Option.Label
	}
	return out
}

// HealthSection builds the healthProfile entry for a diagnosis. Fallback
// results keep only what is meaningful for them.
func HealthSection(symptoms []string, qs []question.Question, answers []question.Answer, d Diagnosis) profile.Section {
	switch {
	case d.Invalid:
		return profile.Section{
			"symptoms":    symptoms,
			"diagnosis":   d.Diagnosis,
			"explanation": d.Explanation,
		}
	case d.Error:
		return profile.Section{
			"diagnosis":   d.Diagnosis,
			"explanation": d.Explanation,
		}
	}
	return profile.Section{
		"symptoms":    symptoms,
		"questions":   questionTexts(qs),
		"answers":     answerLabels(answers),
		"diagnosis":   d.Diagnosis,
		"explanation": d.Explanation,
	}
}

// MentalHealthSection builds the mentalHealthProfile entry for a screening.
func MentalHealthSection(s Screening) profile.Section {
	sec := profile.Section{
		"total":              s.Total,
		"max":                s.Max,
		"risk_level":         string(s.Band),
		"urgent":             s.Urgent,
		"treatment_required": s.TreatmentRequired,
	}
	if s.Analyzed {
		sec["diagnosis"] = s.Diagnosis
		sec["recommendation"] = s.Recommendation
	}
	if s.Error {
		sec["error"] = s.Message
	}
	return sec
}
