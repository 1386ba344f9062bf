// Package filter evaluates a compiled FilterSpec against the snippet
// collection and orders the result.
package filter

import (
	"math"
	"slices"
	"time"

	"github.com/pbaille/snipstack/internal/domain"
)

// DefaultMinTermRatio is the share of significant terms a snippet must
// contain when the full phrase is not found.
const DefaultMinTermRatio = 0.5

// Options tunes an Engine. Zero values take the defaults.
type Options struct {
	MinTermRatio float64
	Now          func() time.Time
}

// Engine applies filter specs. It is stateless apart from its options.
type Engine struct {
	ratio float64
	now   func() time.Time
}

// New creates an Engine.
func New(opts Options) *Engine {
	if opts.MinTermRatio <= 0 || opts.MinTermRatio > 1 {
		opts.MinTermRatio = DefaultMinTermRatio
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{ratio: opts.MinTermRatio, now: opts.Now}
}

// Apply runs Engine.Apply with default options.
func Apply(items []domain.Snippet, spec domain.FilterSpec, view domain.View, order domain.SortOrder) []domain.Snippet {
	return New(Options{}).Apply(items, spec, view, order)
}

// Apply returns the snippets passing every dimension of spec, sorted by
// timestamp. A sort order carried by spec overrides order. Equal timestamps
// keep their input order.
func (e *Engine) Apply(items []domain.Snippet, spec domain.FilterSpec, view domain.View, order domain.SortOrder) []domain.Snippet {
	favorites := view == domain.ViewFavorites || spec.FavoritesOnly
	now := e.now()

	out := make([]domain.Snippet, 0, len(items))
	for _, s := range items {
		if favorites && !s.IsFavorite {
			continue
		}
		if !matchApp(s, spec.SourceApp) ||
			!matchType(s, spec.ContentType) ||
			!matchLanguage(s, spec.Language) ||
			!matchDate(s, spec.DateRange) ||
			!matchDatePhrase(s, spec.DatePhrase, now) ||
			!e.matchText(s, spec.FreeText, spec.Terms) {
			continue
		}
		out = append(out, s)
	}

	if spec.Sort != "" {
		order = spec.Sort
	}
	Sort(out, order)
	return out
}

// Sort orders items by timestamp in place, newest first unless order is
// SortOldest. The sort is stable.
func Sort(items []domain.Snippet, order domain.SortOrder) {
	slices.SortStableFunc(items, func(a, b domain.Snippet) int {
		c := a.Timestamp.Compare(b.Timestamp)
		if order == domain.SortOldest {
			return c
		}
		return -c
	})
}

// requiredTerms is how many of n terms must be found: ratio of n, rounded up.
func requiredTerms(n int, ratio float64) int {
	need := int(math.Ceil(float64(n)*ratio - 1e-9))
	if need < 1 {
		need = 1
	}
	return need
}
