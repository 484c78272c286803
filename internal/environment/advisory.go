package environment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/wellnest/internal/llm"
	"github.com/abhisek/wellnest/internal/profile"
)

// Sink accepts profile sections.
type Sink interface {
	Record(domain profile.Domain, section profile.Section)
}

// Advisory is the guideline set for the current conditions.
type Advisory struct {
	Location   string     `json:"location"`
	Summary    string     `json:"environment_summary"`
	Guidelines []string   `json:"guidelines"`
	RiskLevel  string     `json:"risk_level"`
	Conditions Conditions `json:"-"`

	Error   bool   `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

const (
	msgInvalid = "Invalid AI response structure."
	msgFailed  = "An error occurred while generating environment guidelines."
)

var riskLevels = map[string]bool{"Low": true, "Moderate": true, "High": true, "Severe": true}

// AdvisorySchema is the expected shape of the guideline response.
var AdvisorySchema = &llm.Schema{
	Name:        "environment-guidelines",
	Description: "Health and lifestyle guidelines for current environmental conditions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"location":            map[string]any{"type": "string"},
			"environment_summary": map[string]any{"type": "string"},
			"guidelines": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items":    map[string]any{"type": "string"},
			},
			"risk_level": map[string]any{
				"type": "string",
				"enum": []any{"Low", "Moderate", "High", "Severe"},
			},
		},
		"required":             []any{"location", "environment_summary", "guidelines", "risk_level"},
		"additionalProperties": false,
	},
}

const systemPrompt = `You are an environmental advisor in a digital health platform. Analyze real-time environmental parameters and give concise, actionable health and lifestyle guidelines. Be professional yet approachable.

Return only a JSON object with "location", "environment_summary", "guidelines" (an array of practical tips) and "risk_level" (one of Low, Moderate, High, Severe). No markdown.`

// Service assesses the environment at a location.
type Service struct {
	client   *Client
	provider llm.Provider
	sink     Sink
	logger   *zap.Logger
}

// NewService creates a Service. sink and logger may be nil.
func NewService(client *Client, provider llm.Provider, sink Sink, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, provider: provider, sink: sink, logger: logger}
}

// Assess fetches conditions at loc and asks the model for guidelines.
// Failures are returned as an error-shaped Advisory and recorded.
func (s *Service) Assess(ctx context.Context, loc Location) Advisory {
	cond, err := s.client.Current(ctx, loc)
	if err != nil {
		s.logger.Warn("environment fetch failed", zap.Error(err))
		return s.fail(Advisory{Location: loc.Label}, msgFailed)
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeEnvironment)
	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: userMessage(loc, cond)}},
		Schema:      AdvisorySchema,
		MaxTokens:   1024,
		Temperature: 0.6,
	})
	if err != nil {
		s.logger.Warn("environment guidelines failed", zap.Error(err))
		return s.fail(Advisory{Location: loc.Label, Conditions: cond}, msgFailed)
	}

	var adv Advisory
	if err := json.Unmarshal(resp.Content, &adv); err != nil || !adv.valid() {
		s.logger.Warn("environment guidelines malformed", zap.ByteString("content", resp.Content))
		return s.fail(Advisory{Location: loc.Label, Conditions: cond}, msgInvalid)
	}
	adv.Conditions = cond

	if s.sink != nil {
		s.sink.Record(profile.Environment, profile.Section{
			"location":           adv.Location,
			"environmentSummary": adv.Summary,
			"riskLevel":          adv.RiskLevel,
			"guidelines":         adv.Guidelines,
			"parameters":         cond,
		})
	}
	return adv
}

func (a Advisory) valid() bool {
	if a.Summary == "" || len(a.Guidelines) == 0 || !riskLevels[a.RiskLevel] {
		return false
	}
	for _, g := range a.Guidelines {
		if strings.TrimSpace(g) == "" {
			return false
		}
	}
	return true
}

func (s *Service) fail(a Advisory, msg string) Advisory {
	a.Error = true
	a.Message = msg
	if s.sink != nil {
		s.sink.Record(profile.Environment, profile.Section{"error": true, "message": msg})
	}
	return a
}

func userMessage(loc Location, c Conditions) string {
	return fmt.Sprintf(`Location: %s

Environmental data:
- AQI: %d (%s)
- Temperature: %.1f °C (feels like %.1f °C)
- Humidity: %.0f %%
- Wind speed: %.1f km/h`, loc.Label, c.AQI, AQILevel(c.AQI), c.Temperature, c.ApparentTemperature, c.Humidity, c.WindSpeed)
}
