package search

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbaille/snipstack/internal/domain"
	"github.com/pbaille/snipstack/internal/filter"
	"github.com/pbaille/snipstack/internal/query"
)

type countingCompiler struct {
	mu     sync.Mutex
	inputs []string
	inner  *query.Compiler
}

func (c *countingCompiler) Compile(ctx context.Context, raw string, prev domain.FilterSpec) domain.FilterSpec {
	c.mu.Lock()
	c.inputs = append(c.inputs, raw)
	c.mu.Unlock()
	return c.inner.Compile(ctx, raw, prev)
}

func (c *countingCompiler) seen() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.inputs...)
}

var base = time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)

func corpus() []domain.Snippet {
	return []domain.Snippet{
		{ID: "1", Kind: domain.Text{}, Content: "react hooks cheatsheet", Timestamp: base, Tags: []string{"text", "clipboard"}},
		{ID: "2", Kind: domain.Text{}, Content: "grocery list", Timestamp: base.Add(time.Minute), Tags: []string{"list", "notes"}, IsFavorite: true},
		{ID: "3", Kind: domain.Code{Path: "snippet.js"}, Content: "const x = useState(0);", Timestamp: base.Add(2 * time.Minute), Tags: []string{"code", "javascript"}},
	}
}

func ids(items []domain.Snippet) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = s.ID
	}
	return out
}

func TestSession_DebounceSupersedes(t *testing.T) {
	cc := &countingCompiler{inner: query.New(nil, nil)}
	results := make(chan Results, 4)
	s := NewSession(cc, filter.New(filter.Options{}), corpus, Options{
		Debounce:  30 * time.Millisecond,
		OnResults: func(r Results) { results <- r },
	})
	defer s.Close()

	s.Input("r")
	s.Input("re")
	s.Input("react")

	select {
	case r := <-results:
		assert.Equal(t, "react", r.Input)
		assert.Equal(t, []string{"1"}, ids(r.Snippets))
	case <-time.After(2 * time.Second):
		t.Fatal("no result delivered")
	}

	select {
	case r := <-results:
		t.Fatalf("superseded input delivered: %q", r.Input)
	case <-time.After(100 * time.Millisecond):
	}
	assert.Equal(t, []string{"react"}, cc.seen())
}

func TestSession_SubmitAndView(t *testing.T) {
	cc := &countingCompiler{inner: query.New(nil, nil)}
	s := NewSession(cc, filter.New(filter.Options{}), corpus, Options{Debounce: time.Hour})
	defer s.Close()

	s.Input("pending")
	r := s.Submit(context.Background(), "/type code")
	assert.Equal(t, []string{"3"}, ids(r.Snippets))
	assert.Equal(t, domain.TypeCode, s.Spec().ContentType)

	r = s.Submit(context.Background(), "")
	assert.Equal(t, []string{"3", "2", "1"}, ids(r.Snippets))

	r = s.SetView(domain.ViewFavorites)
	assert.Equal(t, []string{"2"}, ids(r.Snippets))

	s.SetView(domain.ViewAll)
	r = s.SetSort(domain.SortOldest)
	require.Len(t, r.Snippets, 3)
	assert.Equal(t, "1", r.Snippets[0].ID)

	assert.NotContains(t, cc.seen(), "pending")
}
