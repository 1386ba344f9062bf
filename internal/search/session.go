// Package search drives interactive search: input changes are debounced,
// compiled against the previous filter, and applied to the collection.
// Only the latest input's result is delivered; pending ones are superseded.
package search

import (
	"context"
	"sync"
	"time"

	"github.com/pbaille/snipstack/internal/domain"
	"github.com/pbaille/snipstack/internal/filter"
)

// DefaultDebounce is the quiet period after the last keystroke.
const DefaultDebounce = 300 * time.Millisecond

// Compiler compiles raw input against the previous spec.
type Compiler interface {
	Compile(ctx context.Context, raw string, prev domain.FilterSpec) domain.FilterSpec
}

// Results is one delivered search outcome.
type Results struct {
	Input    string
	Spec     domain.FilterSpec
	Snippets []domain.Snippet
}

// Options configures a Session.
type Options struct {
	Debounce time.Duration
	View     domain.View
	Sort     domain.SortOrder
	// OnResults receives every delivered result from the debounce timer.
	OnResults func(Results)
}

// Session holds the active filter for one search bar.
type Session struct {
	compiler Compiler
	engine   *filter.Engine
	source   func() []domain.Snippet
	delay    time.Duration
	notify   func(Results)

	mu     sync.Mutex
	gen    uint64
	timer  *time.Timer
	cancel context.CancelFunc
	input  string
	spec   domain.FilterSpec
	view   domain.View
	sort   domain.SortOrder
}

// NewSession creates a Session reading snippets from source.
func NewSession(c Compiler, e *filter.Engine, source func() []domain.Snippet, opts Options) *Session {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.View == "" {
		opts.View = domain.ViewAll
	}
	if opts.Sort == "" {
		opts.Sort = domain.SortNewest
	}
	if opts.OnResults == nil {
		opts.OnResults = func(Results) {}
	}
	return &Session{
		compiler: c,
		engine:   e,
		source:   source,
		delay:    opts.Debounce,
		notify:   opts.OnResults,
		view:     opts.View,
		sort:     opts.Sort,
	}
}

// Input records a new search-bar value. Compilation runs after the debounce
// period unless another Input arrives first.
func (s *Session) Input(raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gen := s.supersede()
	s.timer = time.AfterFunc(s.delay, func() { s.fire(gen, raw) })
}

// Submit compiles raw immediately, superseding anything pending.
func (s *Session) Submit(ctx context.Context, raw string) Results {
	s.mu.Lock()
	gen := s.supersede()
	prev := s.spec
	s.mu.Unlock()

	spec := s.compiler.Compile(ctx, raw, prev)
	res, _ := s.commit(gen, raw, spec)
	return res
}

// Refresh re-applies the current spec, as after the collection changed.
func (s *Session) Refresh() Results {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyLocked()
}

// SetView switches between all snippets and favorites.
func (s *Session) SetView(v domain.View) Results {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = v
	return s.applyLocked()
}

// SetSort changes the default sort order.
func (s *Session) SetSort(o domain.SortOrder) Results {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sort = o
	return s.applyLocked()
}

// Spec returns the active filter.
func (s *Session) Spec() domain.FilterSpec {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spec
}

// Close stops any pending compilation.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.supersede()
}

// supersede invalidates pending work and returns the new generation.
// Callers hold the lock.
func (s *Session) supersede() uint64 {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	return s.gen
}

func (s *Session) fire(gen uint64, raw string) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	prev := s.spec
	s.mu.Unlock()

	spec := s.compiler.Compile(ctx, raw, prev)
	cancel()
	if res, ok := s.commit(gen, raw, spec); ok {
		s.notify(res)
	}
}

// commit installs spec if gen is still current.
func (s *Session) commit(gen uint64, raw string, spec domain.FilterSpec) (Results, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return Results{}, false
	}
	s.cancel = nil
	s.input, s.spec = raw, spec
	return s.applyLocked(), true
}

func (s *Session) applyLocked() Results {
	return Results{
		Input:    s.input,
		Spec:     s.spec,
		Snippets: s.engine.Apply(s.source(), s.spec, s.view, s.sort),
	}
}
