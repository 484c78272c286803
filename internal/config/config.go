// Package config loads wellnest settings from YAML, a .env file and
// WELLNEST_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/wellnest/internal/environment"
	"github.com/abhisek/wellnest/internal/flow"
	"github.com/abhisek/wellnest/internal/llm"
)

// Config is the full application configuration.
type Config struct {
	Database    DatabaseConfig       `yaml:"database"`
	Log         LogConfig            `yaml:"log"`
	Flow        FlowConfig           `yaml:"flow"`
	LLM         LLMConfig            `yaml:"llm"`
	Supabase    SupabaseConfig       `yaml:"supabase"`
	Environment environment.Location `yaml:"environment"`
}

type DatabaseConfig struct {
	// DSN is a SQLite path or a postgres:// URL. Empty uses the default
	// data directory.
	DSN string `yaml:"dsn"`
}

type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

type FlowConfig struct {
	FeedbackDelay time.Duration `yaml:"feedback_delay"`
}

// LLMConfig overlays the provider settings read by llm.ConfigFromEnv.
type LLMConfig struct {
	Provider string        `yaml:"provider,omitempty"`
	Model    string        `yaml:"model,omitempty"`
	APIKey   string        `yaml:"api_key,omitempty"`
	BaseURL  string        `yaml:"base_url,omitempty"`
	Timeout  time.Duration `yaml:"timeout,omitempty"`
}

type SupabaseConfig struct {
	URL     string `yaml:"url,omitempty"`
	AnonKey string `yaml:"anon_key,omitempty"`
}

// Enabled reports whether remote auth is configured.
func (s SupabaseConfig) Enabled() bool { return s.URL != "" && s.AnonKey != "" }

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			File:  DefaultLogPath(),
			Level: "info",
		},
		Flow: FlowConfig{
			FeedbackDelay: flow.DefaultFeedbackDelay,
		},
		Environment: environment.DefaultLocation,
	}
}

// DefaultPath returns the config file location: WELLNEST_CONFIG, else
// $XDG_CONFIG_HOME/wellnest/config.yaml, else ~/.config/wellnest/config.yaml.
func DefaultPath() string {
	if p := os.Getenv("WELLNEST_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), "wellnest", "config.yaml")
}

// DefaultLogPath returns $XDG_STATE_HOME/wellnest/wellnest.log, falling
// back to ~/.local/state.
func DefaultLogPath() string {
	return filepath.Join(xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state")), "wellnest", "wellnest.log")
}

func xdgDir(env, fallback string) string {
	if d := os.Getenv(env); d != "" {
		return d
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return fallback
	}
	return filepath.Join(home, fallback)
}

// Load reads path, then a .env file next to it and in the working
// directory, then environment overrides. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	for _, f := range []string{filepath.Join(filepath.Dir(path), ".env"), ".env"} {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating the directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	str := map[string]*string{
		"WELLNEST_DB":                &c.Database.DSN,
		"WELLNEST_LOG_FILE":          &c.Log.File,
		"WELLNEST_LOG_LEVEL":         &c.Log.Level,
		"WELLNEST_SUPABASE_URL":      &c.Supabase.URL,
		"WELLNEST_SUPABASE_ANON_KEY": &c.Supabase.AnonKey,
		"WELLNEST_LOCATION":          &c.Environment.Label,
	}
	for key, dst := range str {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	if v := os.Getenv("WELLNEST_FEEDBACK_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("WELLNEST_FEEDBACK_DELAY: %w", err)
		}
		c.Flow.FeedbackDelay = d
	}

	for key, dst := range map[string]*float64{
		"WELLNEST_LATITUDE":  &c.Environment.Latitude,
		"WELLNEST_LONGITUDE": &c.Environment.Longitude,
	} {
		if v := os.Getenv(key); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = f
		}
	}
	return nil
}

// ProviderConfig builds the LLM configuration. Environment variables win
// over the file; when neither names a usable provider the vendors' own
// key variables are probed.
func (c *Config) ProviderConfig() llm.Config {
	cfg := llm.DefaultConfig()
	c.LLM.apply(&cfg)

	env := llm.ConfigFromEnv()
	if os.Getenv("WELLNEST_LLM_PROVIDER") != "" {
		cfg.Provider = env.Provider
	}
	mergeKeys(&cfg, env)

	explicit := c.LLM.Provider != "" || os.Getenv("WELLNEST_LLM_PROVIDER") != ""
	if !cfg.HasKey() && !explicit {
		if found, ok := llm.DiscoverConfig(); ok {
			found.Timeout = cfg.Timeout
			return found
		}
	}
	return cfg
}

func (l LLMConfig) apply(cfg *llm.Config) {
	if l.Provider != "" {
		cfg.Provider = l.Provider
	}
	if l.Timeout > 0 {
		cfg.Timeout = l.Timeout
	}
	switch cfg.Provider {
	case "gemini":
		setIf(&cfg.Gemini.Model, l.Model)
		setIf(&cfg.Gemini.APIKey, l.APIKey)
	case "anthropic":
		setIf(&cfg.Anthropic.Model, l.Model)
		setIf(&cfg.Anthropic.APIKey, l.APIKey)
	case "openai":
		setIf(&cfg.OpenAI.Model, l.Model)
		setIf(&cfg.OpenAI.APIKey, l.APIKey)
		setIf(&cfg.OpenAI.BaseURL, l.BaseURL)
	case "openrouter":
		setIf(&cfg.OpenRouter.Model, l.Model)
		setIf(&cfg.OpenRouter.APIKey, l.APIKey)
		setIf(&cfg.OpenRouter.BaseURL, l.BaseURL)
	}
}

// mergeKeys copies every non-default value env carries.
func mergeKeys(dst *llm.Config, env llm.Config) {
	def := llm.DefaultConfig()
	setIf(&dst.Gemini.APIKey, env.Gemini.APIKey)
	setIf(&dst.Anthropic.APIKey, env.Anthropic.APIKey)
	setIf(&dst.OpenAI.APIKey, env.OpenAI.APIKey)
	setIf(&dst.OpenAI.BaseURL, env.OpenAI.BaseURL)
	setIf(&dst.OpenRouter.APIKey, env.OpenRouter.APIKey)
	setIf(&dst.OpenRouter.BaseURL, env.OpenRouter.BaseURL)
	if env.Gemini.Model != def.Gemini.Model {
		dst.Gemini.Model = env.Gemini.Model
	}
	if env.Anthropic.Model != def.Anthropic.Model {
		dst.Anthropic.Model = env.Anthropic.Model
	}
	if env.OpenAI.Model != def.OpenAI.Model {
		dst.OpenAI.Model = env.OpenAI.Model
	}
	if env.OpenRouter.Model != def.OpenRouter.Model {
		dst.OpenRouter.Model = env.OpenRouter.Model
	}
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
