package wellness

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/wellnest/internal/llm"
	"github.com/abhisek/wellnest/internal/question"
)

// RiskBand classifies a questionnaire total.
type RiskBand string

const (
	RiskLow      RiskBand = "Low"
	RiskModerate RiskBand = "Moderate"
	RiskHigh     RiskBand = "High"
	RiskSevere   RiskBand = "Severe"
)

// BandFor maps a total on the 0-60 scale to a band.
func BandFor(total int) RiskBand {
	switch {
	case total >= 45:
		return RiskSevere
	case total >= 30:
		return RiskHigh
	case total >= 15:
		return RiskModerate
	default:
		return RiskLow
	}
}

// NormalizeTreatment maps anything other than exactly "yes" or "no" to "no".
func NormalizeTreatment(v string) string {
	if v == "yes" {
		return "yes"
	}
	return "no"
}

// Screening is the result of the mental-health quiz: a score tally plus
// an optional model interpretation.
type Screening struct {
	Total  int      `json:"total"`
	Max    int      `json:"max"`
	Band   RiskBand `json:"risk_level"`
	Urgent bool     `json:"urgent"`

	// Analyzed is true when the model interpretation below is present.
	Analyzed          bool   `json:"-"`
	Diagnosis         string `json:"diagnosis,omitempty"`
	Recommendation    string `json:"recommendation,omitempty"`
	TreatmentRequired string `json:"treatment_required"`

	Error   bool   `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func (s Screening) Failed() bool           { return s.Error }
func (s Screening) FailureMessage() string { return s.Message }

// Tally sums the scores of the chosen options. Unscored options count as
// zero. Max is the sum of each question's highest option score.
func Tally(qs []question.Question, answers []question.Answer) (total, max int) {
	for i, q := range qs {
		best := 0
		for _, o := range q.Options {
			if o.Scored && o.Score > best {
				best = o.Score
			}
		}
		max += best
		if i < len(answers) && answers[i].Option.Scored {
			total += answers[i].Option.Score
		}
	}
	return total, max
}

// ScreeningConfig holds generation parameters for the screening call.
type ScreeningConfig struct {
	MaxTokens   int
	Temperature float64
	// SelfHarmIndex is the question whose non-zero answer marks the
	// result urgent. Negative disables the check.
	SelfHarmIndex int
}

// DefaultScreeningConfig returns sensible defaults for the fixed bank.
func DefaultScreeningConfig() ScreeningConfig {
	return ScreeningConfig{MaxTokens: 512, Temperature: 0.3, SelfHarmIndex: question.SelfHarmIndex}
}

// Screener resolves a completed quiz. The tally is always computed; the
// model interpretation runs only when a provider is configured.
type Screener struct {
	provider llm.Provider
	cfg      ScreeningConfig
	logger   *zap.Logger
}

// NewScreener creates a Screener. provider may be nil for tally-only use.
func NewScreener(provider llm.Provider, cfg ScreeningConfig, logger *zap.Logger) *Screener {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Screener{provider: provider, cfg: cfg, logger: logger}
}

func (s *Screener) Resolve(ctx context.Context, _ struct{}, qs []question.Question, answers []question.Answer) Screening {
	total, max := Tally(qs, answers)
	res := Screening{
		Total:             total,
		Max:               max,
		Band:              BandFor(scaled(total, max)),
		TreatmentRequired: "no",
	}

	if i := s.cfg.SelfHarmIndex; i >= 0 && i < len(answers) && answers[i].Option.Score > 0 {
		res.Urgent = true
		if res.Band == RiskLow || res.Band == RiskModerate {
			res.Band = RiskHigh
		}
	}

	if s.provider == nil {
		return res
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeScreening)
	msg := screeningUserMessage(qs, answers)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      screeningSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: msg}},
		Schema:      ScreeningSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		s.logger.Warn("screening request failed", zap.Error(err))
		return screeningFailure(res, err)
	}

	var out struct {
		Diagnosis         string `json:"diagnosis"`
		Recommendation    string `json:"recommendation"`
		TreatmentRequired string `json:"treatment_required"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		s.logger.Warn("screening response malformed", zap.Error(err))
		return screeningFailure(res, err)
	}
	if strings.TrimSpace(out.Diagnosis) == "" || strings.TrimSpace(out.Recommendation) == "" {
		s.logger.Warn("screening response incomplete", zap.ByteString("content", resp.Content))
		return screeningFailure(res, errors.New("the reply left the diagnosis or recommendation empty"))
	}

	res.Analyzed = true
	res.Diagnosis = out.Diagnosis
	res.Recommendation = out.Recommendation
	res.TreatmentRequired = NormalizeTreatment(out.TreatmentRequired)
	return res
}

// scaled maps total onto the 0-60 range the bands are defined on.
func scaled(total, max int) int {
	if max <= 0 || max == 60 {
		return total
	}
	return total * 60 / max
}

func screeningFailure(res Screening, err error) Screening {
	res.Error = true
	res.Message = "Could not analyze your responses: " + err.Error()
	return res
}
