package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wellnest/internal/environment"
	"github.com/abhisek/wellnest/internal/flow"
)

var managedEnv = []string{
	"WELLNEST_DB", "WELLNEST_LOG_FILE", "WELLNEST_LOG_LEVEL",
	"WELLNEST_SUPABASE_URL", "WELLNEST_SUPABASE_ANON_KEY", "WELLNEST_LOCATION",
	"WELLNEST_FEEDBACK_DELAY", "WELLNEST_LATITUDE", "WELLNEST_LONGITUDE",
	"WELLNEST_LLM_PROVIDER", "WELLNEST_GEMINI_API_KEY", "GEMINI_API_KEY",
	"GOOGLE_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
}

// clearEnv unsets every variable the loader reads and restores them after
// the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range managedEnv {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, flow.DefaultFeedbackDelay, cfg.Flow.FeedbackDelay)
	assert.Equal(t, environment.DefaultLocation, cfg.Environment)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Supabase.Enabled())
}

func TestSaveThenLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Database.DSN = "/tmp/wellnest-test.db"
	cfg.Flow.FeedbackDelay = 250 * time.Millisecond
	cfg.Supabase = SupabaseConfig{URL: "https://x.supabase.co", AnonKey: "anon"}
	cfg.Environment = environment.Location{Label: "Pune", Latitude: 18.52, Longitude: 73.85}
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoad_ParsesYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
flow:
  feedback_delay: 1s
llm:
  provider: anthropic
  api_key: sk-file
log:
  level: debug
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.Flow.FeedbackDelay)
	assert.Equal(t, "debug", cfg.Log.Level)

	llmCfg := cfg.ProviderConfig()
	assert.Equal(t, "anthropic", llmCfg.Provider)
	assert.Equal(t, "sk-file", llmCfg.Anthropic.APIKey)
}

func TestLoad_DotEnvAndOverrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  dsn: from-file.db\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("WELLNEST_DB=from-dotenv.db\nWELLNEST_LATITUDE=12.97\n"), 0o600))
	t.Setenv("WELLNEST_FEEDBACK_DELAY", "50ms")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv.db", cfg.Database.DSN)
	assert.Equal(t, 12.97, cfg.Environment.Latitude)
	assert.Equal(t, 50*time.Millisecond, cfg.Flow.FeedbackDelay)
}

func TestLoad_BadOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("WELLNEST_FEEDBACK_DELAY", "soon")

	_, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	assert.ErrorContains(t, err, "WELLNEST_FEEDBACK_DELAY")
}

func TestProviderConfig_EnvWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("WELLNEST_LLM_PROVIDER", "mock")

	cfg := DefaultConfig()
	cfg.LLM.Provider = "openai"
	assert.Equal(t, "mock", cfg.ProviderConfig().Provider)
}

func TestProviderConfig_Discovers(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-env")

	got := DefaultConfig().ProviderConfig()
	assert.Equal(t, "openai", got.Provider)
	assert.Equal(t, "sk-env", got.OpenAI.APIKey)
}
