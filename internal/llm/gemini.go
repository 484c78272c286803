package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// geminiModels maps friendly names to Gemini model IDs.
var geminiModels = map[string]string{
	"gemini-flash":      "gemini-2.5-flash",
	"gemini-flash-lite": "gemini-2.5-flash-lite",
	"gemini-pro":        "gemini-2.5-pro",
}

// geminiSafety relaxes the dangerous-content filter to high-probability
// matches only. Symptom and self-harm screening prompts otherwise get
// blocked at the default threshold.
var geminiSafety = []*genai.SafetySetting{
	{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockOnlyHigh},
	{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
	{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
	{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
}

// GeminiProvider implements Provider using the Google Gemini SDK.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a new Gemini provider.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	model := resolveModel(cfg.Model, geminiModels)

	return &GeminiProvider{
		client: client,
		model:  model,
	}, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(req.MaxTokens),
		SafetySettings:  geminiSafety,
	}

	if req.Temperature > 0 {
		temp := float32(req.Temperature)
		config.Temperature = &temp
	}

	if req.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}

	// Configure structured output.
	if req.Schema != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = buildGeminiSchema(req.Schema.Definition)
	}

	contents := buildGeminiContents(req.Messages)

	result, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return nil, mapGeminiError(err)
	}

	var usage Usage
	if result.UsageMetadata != nil {
		usage = Usage{
			InputTokens:  int(result.UsageMetadata.PromptTokenCount),
			OutputTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int(result.UsageMetadata.TotalTokenCount),
		}
	}

	stop, reason := mapGeminiStopReason(result)
	return finish(req, result.Text(), p.model, stop, reason, usage)
}

func (p *GeminiProvider) ModelID() string {
	return p.model
}

func buildGeminiContents(msgs []Message) []*genai.Content {
	out := make([]*genai.Content, len(msgs))
	for i, m := range msgs {
		role := "user"
		if m.Role == RoleAssistant {
			role = "model"
		}
		out[i] = &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		}
	}
	return out
}

// buildGeminiSchema converts the JSON Schema subset used by the prompts
// into a genai.Schema. Keywords Gemini does not support, such as
// additionalProperties, are dropped.
func buildGeminiSchema(def map[string]any) *genai.Schema {
	out := &genai.Schema{}
	out.Description, _ = def["description"].(string)

	switch t := def["type"].(type) {
	case string:
		out.Type = mapGeminiType(t)
	case []any:
		// ["string", "null"]
		for _, v := range t {
			if name, _ := v.(string); name == "null" {
				out.Nullable = genai.Ptr(true)
			} else if name != "" {
				out.Type = mapGeminiType(name)
			}
		}
	}

	if props, ok := def["properties"].(map[string]any); ok {
		out.Properties = make(map[string]*genai.Schema, len(props))
		for name, v := range props {
			if sub, ok := v.(map[string]any); ok {
				out.Properties[name] = buildGeminiSchema(sub)
			}
		}
	}
	if items, ok := def["items"].(map[string]any); ok {
		out.Items = buildGeminiSchema(items)
	}
	out.Required = stringList(def["required"])
	out.Enum = stringList(def["enum"])

	if n, ok := numberOf(def["minItems"]); ok {
		out.MinItems = genai.Ptr(int64(n))
	}
	if n, ok := numberOf(def["maxItems"]); ok {
		out.MaxItems = genai.Ptr(int64(n))
	}
	if n, ok := numberOf(def["minLength"]); ok {
		out.MinLength = genai.Ptr(int64(n))
	}
	if n, ok := numberOf(def["minimum"]); ok {
		out.Minimum = genai.Ptr(n)
	}
	if n, ok := numberOf(def["maximum"]); ok {
		out.Maximum = genai.Ptr(n)
	}
	return out
}

// stringList collects the string elements of a []any or []string keyword.
func stringList(v any) []string {
	switch vs := v.(type) {
	case []string:
		return vs
	case []any:
		var out []string
		for _, e := range vs {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func numberOf(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func mapGeminiType(t string) genai.Type {
	switch t {
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	}
	return genai.TypeString
}

// mapGeminiStopReason normalizes the finish reason. A prompt rejected
// before generation has no candidates and carries the reason in the
// prompt feedback instead.
func mapGeminiStopReason(result *genai.GenerateContentResponse) (stop, reason string) {
	if fb := result.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return StopBlocked, string(fb.BlockReason)
	}
	if len(result.Candidates) == 0 {
		return StopEnd, ""
	}
	reason = string(result.Candidates[0].FinishReason)
	switch reason {
	case "MAX_TOKENS":
		return StopMaxTokens, reason
	case "SAFETY", "PROHIBITED_CONTENT", "BLOCKLIST", "SPII":
		return StopBlocked, reason
	}
	return StopEnd, reason
}

// mapGeminiError classifies genai errors. The SDK returns APIError by
// value, the pointer form is checked as well.
func mapGeminiError(err error) error {
	var val genai.APIError
	if errors.As(err, &val) {
		return fromStatus(val.Code, nil, err)
	}
	var ptr *genai.APIError
	if errors.As(err, &ptr) {
		return fromStatus(ptr.Code, nil, err)
	}
	return &ErrProviderUnavailable{Err: err}
}
