package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pbaille/snipstack/internal/capture"
	"github.com/pbaille/snipstack/internal/classifier"
	"github.com/pbaille/snipstack/internal/config"
	"github.com/pbaille/snipstack/internal/content"
	"github.com/pbaille/snipstack/internal/dates"
	"github.com/pbaille/snipstack/internal/fetcher"
	"github.com/pbaille/snipstack/internal/filter"
	"github.com/pbaille/snipstack/internal/library"
	"github.com/pbaille/snipstack/internal/logging"
	"github.com/pbaille/snipstack/internal/query"
	"github.com/pbaille/snipstack/internal/store"
)

// app is everything a command needs, wired from the config.
type app struct {
	cfg      *config.Config
	store    *store.Store
	lib      *library.Library
	dates    *dates.Resolver
	compiler *query.Compiler
	engine   *filter.Engine
	capture  *capture.Handler
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.Data.DBPath = dbPath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

func openApp(ctx context.Context, cfg *config.Config) (*app, error) {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.Data.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	st, err := store.New(cfg.Data.DBPath, store.Options{MaxBytes: cfg.Data.MaxBytes})
	if err != nil {
		return nil, err
	}
	lib, err := library.Open(ctx, st)
	if err != nil {
		st.Close()
		return nil, err
	}

	a := &app{cfg: cfg, store: st, lib: lib}

	var (
		remote     content.Remote
		dateRemote dates.Remote
		types      query.TypeInferrer
	)
	client, err := classifier.New(classifier.Options{
		APIKey:            cfg.Anthropic.APIKey,
		Model:             cfg.Anthropic.Model,
		BaseURL:           cfg.Anthropic.BaseURL,
		RequestsPerMinute: cfg.Anthropic.RequestsPerMinute,
		CacheSize:         cfg.Anthropic.CacheSize,
		Timeout:           config.Ms(cfg.Anthropic.TimeoutMs),
	})
	switch {
	case errors.Is(err, classifier.ErrNoAPIKey):
		logging.Debug("remote classifier disabled", "reason", err)
	case err != nil:
		logging.Warn("remote classifier unavailable", "err", err)
	default:
		remote, dateRemote, types = client, client, client
	}

	var titles content.TitleFetcher
	if cfg.Classifier.FetchLinkTitles {
		titles = fetcher.New(0)
	}

	cls := content.New(content.Options{
		Thresholds:   cfg.Thresholds(),
		PromptPrefix: cfg.Classifier.PromptPrefixChars,
		Remote:       remote,
		Titles:       titles,
	})

	a.dates = dates.New(dates.Options{Remote: dateRemote, Smart: cfg.Search.SmartDates})
	a.compiler = query.New(a.dates, types)
	a.engine = filter.New(filter.Options{MinTermRatio: cfg.Search.MinTermRatio})
	a.capture = capture.NewHandler(cls, lib, capture.Options{Debounce: config.Ms(cfg.Capture.DebounceMs)})
	return a, nil
}

func (a *app) Close() {
	a.store.Close()
}

// withApp loads config, starts stderr logging and opens the collection.
func withApp(ctx context.Context, fn func(*app) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := logging.Init(os.Stderr, cfg.LogLevel); err != nil {
		return err
	}

	a, err := openApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

// warnPersistence downgrades a persistence failure to a stderr warning:
// the change is applied in memory either way.
func warnPersistence(err error) error {
	if errors.Is(err, library.ErrPersistence) {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		return nil
	}
	return err
}

func truncate(s string, max int) string {
	// Collapse whitespace for display
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
