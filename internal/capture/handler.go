// Package capture turns clipboard events into stored snippets. It owns the
// capture-side state: the last captured text for debouncing and the text of
// the user's own copy action, which must not be captured again.
package capture

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/atotto/clipboard"

	"github.com/pbaille/snipstack/internal/content"
	"github.com/pbaille/snipstack/internal/domain"
	"github.com/pbaille/snipstack/internal/library"
	"github.com/pbaille/snipstack/internal/logging"
)

// DefaultDebounce rejects a repeat of the previous capture within this window.
const DefaultDebounce = 500 * time.Millisecond

// Event is one clipboard capture.
type Event struct {
	Text string
	App  *domain.SourceApp
}

// Why a capture produced no snippet.
const (
	SkipEmpty     = "empty"
	SkipDebounced = "debounced"
	SkipSelfCopy  = "self-copy"
	SkipDuplicate = "duplicate"
)

// Result reports the outcome of one capture.
type Result struct {
	Snippet  domain.Snippet
	Captured bool
	Skipped  string
}

// Classifier classifies captured text.
type Classifier interface {
	Classify(ctx context.Context, text string, app *domain.SourceApp) (content.Classification, bool)
}

// Collection receives new snippets.
type Collection interface {
	ContainsContent(content string) bool
	Add(ctx context.Context, s domain.Snippet) (bool, error)
}

// Options configures a Handler.
type Options struct {
	Debounce time.Duration
	Now      func() time.Time
	// WriteClipboard replaces the system clipboard writer.
	WriteClipboard func(string) error
}

// state is the last-capture state threaded through every capture.
type state struct {
	lastText string
	lastAt   time.Time
	selfCopy string
	pending  bool
}

// Handler processes captures one at a time.
type Handler struct {
	mu         sync.Mutex
	st         state
	classifier Classifier
	lib        Collection
	debounce   time.Duration
	now        func() time.Time
	write      func(string) error
}

// NewHandler creates a Handler.
func NewHandler(c Classifier, lib Collection, opts Options) *Handler {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.WriteClipboard == nil {
		opts.WriteClipboard = clipboard.WriteAll
	}
	return &Handler{
		classifier: c,
		lib:        lib,
		debounce:   opts.Debounce,
		now:        opts.Now,
		write:      opts.WriteClipboard,
	}
}

// Capture classifies ev and appends the resulting snippet. Captures are
// serialized. A returned error only ever reports a persistence failure; the
// snippet is kept in memory regardless.
func (h *Handler) Capture(ctx context.Context, ev Event) (Result, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if strings.TrimSpace(ev.Text) == "" {
		return Result{Skipped: SkipEmpty}, nil
	}
	if skip := h.admit(ev.Text); skip != "" {
		logging.Debug("capture skipped", "reason", skip)
		return Result{Skipped: skip}, nil
	}
	if h.lib.ContainsContent(ev.Text) {
		return Result{Skipped: SkipDuplicate}, nil
	}

	cls, ok := h.classifier.Classify(ctx, ev.Text, ev.App)
	if !ok {
		return Result{Skipped: SkipEmpty}, nil
	}

	s := domain.Snippet{
		ID:        library.NewID(),
		Kind:      cls.Kind,
		Content:   ev.Text,
		Source:    domain.SourceName(ev.App),
		SourceApp: ev.App,
		Timestamp: h.now(),
		Tags:      cls.Tags,
	}
	added, err := h.lib.Add(ctx, s)
	if !added {
		return Result{Skipped: SkipDuplicate}, err
	}
	logging.Info("captured snippet", "id", s.ID, "type", s.Type(), "source", s.Source)
	return Result{Snippet: s, Captured: true}, err
}

// admit updates the capture state and returns why text must be skipped, if
// it must.
func (h *Handler) admit(text string) string {
	now := h.now()
	prev := h.st
	h.st.lastText, h.st.lastAt = text, now

	if prev.pending && text == prev.selfCopy {
		h.st.pending, h.st.selfCopy = false, ""
		return SkipSelfCopy
	}
	if text == prev.lastText && now.Sub(prev.lastAt) < h.debounce {
		return SkipDebounced
	}
	return ""
}

// Copy puts a snippet's content on the clipboard and marks it so the
// resulting clipboard event is not captured again.
func (h *Handler) Copy(s domain.Snippet) error {
	h.mu.Lock()
	h.st.selfCopy, h.st.pending = s.Content, true
	h.mu.Unlock()

	if err := h.write(s.Content); err != nil {
		h.mu.Lock()
		h.st.selfCopy, h.st.pending = "", false
		h.mu.Unlock()
		return err
	}
	return nil
}

// Run captures events until ctx is done or events is closed. onResult may
// be nil.
func (h *Handler) Run(ctx context.Context, events <-chan Event, onResult func(Result, error)) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			res, err := h.Capture(ctx, ev)
			if err != nil {
				logging.Warn("capture not persisted", "err", err)
			}
			if onResult != nil {
				onResult(res, err)
			}
		}
	}
}
