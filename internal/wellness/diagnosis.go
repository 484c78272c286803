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

// Fallback diagnosis texts.
const (
	DiagnosisUnknown    = "Unknown"
	ExplanationInvalid  = "Invalid format received from the model."
	DiagnosisError      = "Error"
	ExplanationProvider = "An error occurred while generating the diagnosis."
)

// Diagnosis is the result of the symptom flow.
type Diagnosis struct {
	Diagnosis   string `json:"diagnosis"`
	Explanation string `json:"explanation"`

	Error   bool   `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	// Invalid is set when the model answered but not in the expected shape.
	Invalid bool `json:"-"`
}

func (d Diagnosis) Failed() bool           { return d.Error }
func (d Diagnosis) FailureMessage() string { return d.Message }

// DiagnosisConfig holds generation parameters for the diagnosis call.
type DiagnosisConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultDiagnosisConfig returns sensible defaults.
func DefaultDiagnosisConfig() DiagnosisConfig {
	return DiagnosisConfig{MaxTokens: 512, Temperature: 0.5}
}

// Diagnoser resolves a completed symptom questionnaire.
type Diagnoser struct {
	provider llm.Provider
	cfg      DiagnosisConfig
	logger   *zap.Logger
}

// NewDiagnoser creates a Diagnoser. A nil logger disables logging.
func NewDiagnoser(provider llm.Provider, cfg DiagnosisConfig, logger *zap.Logger) *Diagnoser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Diagnoser{provider: provider, cfg: cfg, logger: logger}
}

func (d *Diagnoser) Resolve(ctx context.Context, symptoms []string, qs []question.Question, answers []question.Answer) Diagnosis {
	ctx = llm.WithPurpose(ctx, llm.PurposeDiagnosis)

	msg := diagnosisUserMessage(symptoms, qs, answers)

	resp, err := d.provider.Generate(ctx, llm.Request{
		System:      diagnosisSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: msg}},
		Schema:      DiagnosisSchema,
		MaxTokens:   d.cfg.MaxTokens,
		Temperature: d.cfg.Temperature,
	})
	if err != nil {
		var invErr *llm.ErrInvalidResponse
		if errors.As(err, &invErr) {
			d.logger.Warn("diagnosis response rejected", zap.Error(err))
			return invalidDiagnosis()
		}
		d.logger.Warn("diagnosis request failed", zap.Error(err))
		return providerFailure()
	}

	var out struct {
		Diagnosis   *string `json:"diagnosis"`
		Explanation *string `json:"explanation"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil || out.Diagnosis == nil || out.Explanation == nil {
		d.logger.Warn("diagnosis response malformed", zap.ByteString("content", resp.Content))
		return invalidDiagnosis()
	}
	if strings.TrimSpace(*out.Diagnosis) == "" {
		return invalidDiagnosis()
	}
	return Diagnosis{Diagnosis: *out.Diagnosis, Explanation: *out.Explanation}
}

func invalidDiagnosis() Diagnosis {
	return Diagnosis{
		Diagnosis:   DiagnosisUnknown,
		Explanation: ExplanationInvalid,
		Error:       true,
		Message:     ExplanationInvalid,
		Invalid:     true,
	}
}

func providerFailure() Diagnosis {
	return Diagnosis{
		Diagnosis:   DiagnosisError,
		Explanation: ExplanationProvider,
		Error:       true,
		Message:     ExplanationProvider,
	}
}
