package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json5"))
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Classifier.SingleLineCodeScore)
	assert.Equal(t, 3, cfg.Classifier.MultiLineCodeScore)
	assert.Equal(t, 300, cfg.Classifier.LongTextChars)
	assert.Equal(t, 1500, cfg.Classifier.PromptPrefixChars)
	assert.Equal(t, 0.5, cfg.Search.MinTermRatio)
	assert.Equal(t, 300, cfg.Search.DebounceMs)
	assert.Equal(t, 500, cfg.Capture.DebounceMs)
	assert.Equal(t, 750, cfg.Capture.PollMs)
}

func TestLoad_JSON5AndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snip.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{
		// comments and trailing commas are fine
		classifier: {long_text_chars: 500,},
		search: {smart_dates: false, min_term_ratio: 0.75},
		log_level: "debug",
	}`), 0644))

	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("SNIP_SMART_DATES", "true")
	t.Setenv("SNIP_DB", "/tmp/other.db")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.Classifier.LongTextChars)
	assert.Equal(t, 4, cfg.Classifier.SingleLineCodeScore, "unset keys keep defaults")
	assert.Equal(t, 0.75, cfg.Search.MinTermRatio)
	assert.True(t, cfg.Search.SmartDates)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "sk-test", cfg.Anthropic.APIKey)
	assert.Equal(t, "/tmp/other.db", cfg.Data.DBPath)
	assert.Equal(t, 500, cfg.Thresholds().LongText)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{log_level: `), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snip.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{log_level: "info"}`), 0644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	w.debounce = 20 * time.Millisecond

	got := make(chan string, 4)
	w.OnChange(func(cfg *Config) { got <- cfg.LogLevel })
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte(`{log_level: "warn"}`), 0644))

	select {
	case lvl := <-got:
		assert.Equal(t, "warn", lvl)
	case <-time.After(3 * time.Second):
		t.Fatal("config change not observed")
	}
}
