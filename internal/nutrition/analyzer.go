// Package nutrition analyzes single food items.
package nutrition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/wellnest/internal/llm"
	"github.com/abhisek/wellnest/internal/profile"
)

// ErrEmptyFood is returned for a blank food name. No model call is made.
var ErrEmptyFood = errors.New("food name cannot be empty")

// Facts holds the nutrition values as the model phrases them.
type Facts struct {
	Calories string `json:"calories"`
	Protein  string `json:"protein"`
	Carbs    string `json:"carbs"`
	Fiber    string `json:"fiber"`
	Fat      string `json:"fat"`
	Vitamins string `json:"vitamins"`
}

// Analysis is the result for one food.
type Analysis struct {
	FoodName       string `json:"food_name"`
	Summary        string `json:"summary"`
	Nutrition      Facts  `json:"nutrition"`
	Recommendation string `json:"recommendation"`

	Error   bool   `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Sink accepts profile sections.
type Sink interface {
	Record(domain profile.Domain, section profile.Section)
}

var analysisSchema = &llm.Schema{
	Name:        "food-analysis",
	Description: "Nutrition facts and a recommendation for one food item",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"food_name": map[string]any{"type": "string"},
			"summary":   map[string]any{"type": "string"},
			"nutrition": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"calories": map[string]any{"type": "string", "description": "kcal per 100g or per serving"},
					"protein":  map[string]any{"type": "string", "description": "grams"},
					"carbs":    map[string]any{"type": "string", "description": "grams"},
					"fiber":    map[string]any{"type": "string", "description": "grams, if applicable"},
					"fat":      map[string]any{"type": "string", "description": "grams, if applicable"},
					"vitamins": map[string]any{"type": "string", "description": "major vitamins if known"},
				},
				"required": []any{"calories", "protein", "carbs", "fiber", "fat", "vitamins"},
			},
			"recommendation": map[string]any{"type": "string"},
		},
		"required":             []any{"food_name", "summary", "nutrition", "recommendation"},
		"additionalProperties": false,
	},
}

const systemPrompt = `You are a professional nutritionist in a digital wellness platform. Analyze the given food item and respond with accurate, easy-to-understand nutritional information in a friendly, concise tone.

Return only a JSON object with "food_name", "summary", "nutrition" (calories, protein, carbs, fiber, fat, vitamins as short strings) and "recommendation" (one paragraph: whether it is healthy, when to eat it and who should avoid it).`

// Analyzer produces food analyses.
type Analyzer struct {
	provider llm.Provider
	sink     Sink
	logger   *zap.Logger
}

// NewAnalyzer creates an Analyzer. sink and logger may be nil.
func NewAnalyzer(provider llm.Provider, sink Sink, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{provider: provider, sink: sink, logger: logger}
}

// Analyze returns the analysis for food. A blank name returns
// ErrEmptyFood; model failures come back as an error-shaped Analysis and
// are recorded like successes.
func (a *Analyzer) Analyze(ctx context.Context, food string) (Analysis, error) {
	food = strings.TrimSpace(food)
	if food == "" {
		return Analysis{}, ErrEmptyFood
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeFoodAnalysis)
	resp, err := a.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: fmt.Sprintf("Food item: %s", food)}},
		Schema:      analysisSchema,
		MaxTokens:   1024,
		Temperature: 0.7,
	})
	if err != nil {
		a.logger.Warn("food analysis failed", zap.String("food", food), zap.Error(err))
		return a.fail("An error occurred while analyzing the food item."), nil
	}

	var out Analysis
	if err := json.Unmarshal(resp.Content, &out); err != nil || out.FoodName == "" || out.Summary == "" || out.Recommendation == "" {
		a.logger.Warn("food analysis malformed", zap.ByteString("content", resp.Content))
		return a.fail("Invalid AI response format."), nil
	}
	out.Error, out.Message = false, ""

	if a.sink != nil {
		a.sink.Record(profile.Nutrition, profile.Section{
			"foodName":       out.FoodName,
			"summary":        out.Summary,
			"nutrition":      out.Nutrition,
			"recommendation": out.Recommendation,
		})
	}
	return out, nil
}

func (a *Analyzer) fail(msg string) Analysis {
	if a.sink != nil {
		a.sink.Record(profile.Nutrition, profile.Section{"error": true, "message": msg})
	}
	return Analysis{Error: true, Message: msg}
}
