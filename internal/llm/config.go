package llm

import (
	"fmt"
	"os"
	"time"
)

// Config selects and configures the model vendor. Provider is one of
// "gemini", "anthropic", "openai", "openrouter" or "mock".
type Config struct {
	Provider string

	Gemini     GeminiConfig
	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call, retries included.
	Timeout time.Duration
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string // empty means openrouter.ai
}

// RetryConfig shapes the backoff of WithRetry. MaxAttempts counts the
// first call.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

func DefaultConfig() Config {
	return Config{
		Provider:   "gemini",
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 2,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     4 * time.Second,
			Multiplier:  2,
		},
		Timeout: 45 * time.Second,
	}
}

// vendor describes where one provider's settings live in Config and in
// the environment. vendorKeys are the vendor's own variables, probed by
// DiscoverConfig.
type vendor struct {
	name       string
	env        string // WELLNEST_<env>_API_KEY, _MODEL, _BASE_URL
	vendorKeys []string
	key        func(*Config) *string
	model      func(*Config) *string
	baseURL    func(*Config) *string
}

// vendors is in DiscoverConfig priority order.
var vendors = []vendor{
	{
		name: "gemini", env: "GEMINI", vendorKeys: []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"},
		key:   func(c *Config) *string { return &c.Gemini.APIKey },
		model: func(c *Config) *string { return &c.Gemini.Model },
	},
	{
		name: "openai", env: "OPENAI", vendorKeys: []string{"OPENAI_API_KEY"},
		key:     func(c *Config) *string { return &c.OpenAI.APIKey },
		model:   func(c *Config) *string { return &c.OpenAI.Model },
		baseURL: func(c *Config) *string { return &c.OpenAI.BaseURL },
	},
	{
		name: "anthropic", env: "ANTHROPIC", vendorKeys: []string{"ANTHROPIC_API_KEY"},
		key:   func(c *Config) *string { return &c.Anthropic.APIKey },
		model: func(c *Config) *string { return &c.Anthropic.Model },
	},
	{
		name: "openrouter", env: "OPENROUTER", vendorKeys: []string{"OPENROUTER_API_KEY"},
		key:     func(c *Config) *string { return &c.OpenRouter.APIKey },
		model:   func(c *Config) *string { return &c.OpenRouter.Model },
		baseURL: func(c *Config) *string { return &c.OpenRouter.BaseURL },
	},
}

func lookupVendor(name string) (vendor, bool) {
	for _, v := range vendors {
		if v.name == name {
			return v, true
		}
	}
	return vendor{}, false
}

func setFromEnv(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

// ConfigFromEnv overlays the WELLNEST_* variables on DefaultConfig.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	setFromEnv(&cfg.Provider, "WELLNEST_LLM_PROVIDER")
	for _, v := range vendors {
		prefix := "WELLNEST_" + v.env
		setFromEnv(v.key(&cfg), prefix+"_API_KEY")
		setFromEnv(v.model(&cfg), prefix+"_MODEL")
		if v.baseURL != nil {
			setFromEnv(v.baseURL(&cfg), prefix+"_BASE_URL")
		}
	}
	return cfg
}

// DiscoverConfig selects the first vendor whose own API key variable is
// set, Gemini first. It reports false when none is.
func DiscoverConfig() (Config, bool) {
	for _, v := range vendors {
		for _, name := range v.vendorKeys {
			if k := os.Getenv(name); k != "" {
				cfg := DefaultConfig()
				cfg.Provider = v.name
				*v.key(&cfg) = k
				return cfg, true
			}
		}
	}
	return Config{}, false
}

// HasKey reports whether the selected provider can be used as is.
func (c Config) HasKey() bool {
	return c.Validate() == nil
}

func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	v, ok := lookupVendor(c.Provider)
	if !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if *v.key(&c) == "" {
		return fmt.Errorf("WELLNEST_%s_API_KEY is required for the %s provider", v.env, v.name)
	}
	return nil
}
