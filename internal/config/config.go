package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/titanous/json5"

	"github.com/pbaille/snipstack/internal/patterns"
)

// Config is the persistent application configuration
type Config struct {
	Data       DataConfig       `json:"data"`
	Anthropic  AnthropicConfig  `json:"anthropic"`
	Classifier ClassifierConfig `json:"classifier"`
	Search     SearchConfig     `json:"search"`
	Capture    CaptureConfig    `json:"capture"`
	LogLevel   string           `json:"log_level"`
}

// DataConfig locates the snippet store.
type DataConfig struct {
	DBPath   string `json:"db_path"`
	MaxBytes int    `json:"max_bytes"` // 0 = unlimited
	LogDir   string `json:"log_dir"`
}

// AnthropicConfig configures the remote classifier.
type AnthropicConfig struct {
	APIKey            string `json:"api_key,omitempty"`
	Model             string `json:"model"`
	BaseURL           string `json:"base_url"`
	RequestsPerMinute int    `json:"requests_per_minute"`
	CacheSize         int    `json:"cache_size"`
	TimeoutMs         int    `json:"timeout_ms"`
}

// ClassifierConfig holds the content heuristics' cutoffs.
type ClassifierConfig struct {
	SingleLineCodeScore  int  `json:"single_line_code_score"`
	MultiLineCodeScore   int  `json:"multi_line_code_score"`
	LongTextChars        int  `json:"long_text_chars"`
	MultiLineCount       int  `json:"multi_line_count"`
	MessageLengthCeiling int  `json:"message_length_ceiling"`
	PromptPrefixChars    int  `json:"prompt_prefix_chars"`
	FetchLinkTitles      bool `json:"fetch_link_titles"`
}

// SearchConfig tunes query compilation and matching.
type SearchConfig struct {
	DebounceMs   int     `json:"debounce_ms"`
	MinTermRatio float64 `json:"min_term_ratio"`
	SmartDates   bool    `json:"smart_dates"`
}

// CaptureConfig tunes the clipboard capture path.
type CaptureConfig struct {
	DebounceMs int `json:"debounce_ms"`
	PollMs     int `json:"poll_ms"`
}

// Default returns sensible defaults
func Default() *Config {
	home, _ := os.UserHomeDir()
	base := filepath.Join(home, ".snip")
	th := patterns.DefaultThresholds()

	return &Config{
		Data: DataConfig{
			DBPath: filepath.Join(base, "snip.db"),
			LogDir: filepath.Join(base, "logs"),
		},
		Anthropic: AnthropicConfig{
			Model:             "claude-sonnet-4-20250514",
			BaseURL:           "https://api.anthropic.com",
			RequestsPerMinute: 30,
			CacheSize:         512,
			TimeoutMs:         15000,
		},
		Classifier: ClassifierConfig{
			SingleLineCodeScore:  th.SingleLineCode,
			MultiLineCodeScore:   th.MultiLineCode,
			LongTextChars:        th.LongText,
			MultiLineCount:       th.MultiLineCount,
			MessageLengthCeiling: th.MessageLengthCeiling,
			PromptPrefixChars:    1500,
		},
		Search: SearchConfig{
			DebounceMs:   300,
			MinTermRatio: 0.5,
		},
		Capture: CaptureConfig{
			DebounceMs: 500,
			PollMs:     750,
		},
		LogLevel: "info",
	}
}

// Load reads a JSON5 config file over the defaults and applies environment
// overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := json5.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		c.Anthropic.APIKey = v
	}
	if v := os.Getenv("SNIP_DB"); v != "" {
		c.Data.DBPath = v
	}
	if v := os.Getenv("SNIP_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("SNIP_SMART_DATES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Search.SmartDates = b
		}
	}
}

// Thresholds converts the classifier section into pattern cutoffs.
func (c *Config) Thresholds() patterns.Thresholds {
	return patterns.Thresholds{
		SingleLineCode:       c.Classifier.SingleLineCodeScore,
		MultiLineCode:        c.Classifier.MultiLineCodeScore,
		LongText:             c.Classifier.LongTextChars,
		MultiLineCount:       c.Classifier.MultiLineCount,
		MessageLengthCeiling: c.Classifier.MessageLengthCeiling,
	}
}

// Ms converts a millisecond setting to a duration.
func Ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
