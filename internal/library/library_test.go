package library

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbaille/snipstack/internal/domain"
)

type memStore struct {
	saved   []domain.Snippet
	saves   int
	failErr error
}

func (m *memStore) Load(context.Context) ([]domain.Snippet, error) { return m.saved, nil }

func (m *memStore) Save(_ context.Context, items []domain.Snippet) error {
	m.saves++
	if m.failErr != nil {
		return m.failErr
	}
	m.saved = make([]domain.Snippet, len(items))
	for i, s := range items {
		m.saved[i] = s.Clone()
	}
	return nil
}

func text(id, content string) domain.Snippet {
	return domain.Snippet{ID: id, Kind: domain.Text{}, Content: content, Source: domain.DefaultSource,
		Timestamp: time.Now(), Tags: []string{"text", "clipboard"}}
}

func open(t *testing.T, st *memStore) *Library {
	t.Helper()
	l, err := Open(context.Background(), st)
	require.NoError(t, err)
	return l
}

func TestAdd_DuplicateContent(t *testing.T) {
	st := &memStore{}
	l := open(t, st)
	ctx := context.Background()

	added, err := l.Add(ctx, text("", "hello"))
	require.NoError(t, err)
	assert.True(t, added)

	added, err = l.Add(ctx, text("", "hello"))
	require.NoError(t, err)
	assert.False(t, added)

	assert.Equal(t, 1, l.Len())
	assert.Equal(t, 1, st.saves)
	assert.NotEmpty(t, l.All()[0].ID)
	assert.True(t, l.ContainsContent("hello"))
}

func TestNotes(t *testing.T) {
	st := &memStore{}
	l := open(t, st)
	ctx := context.Background()
	_, err := l.Add(ctx, text("abc123", "hello"))
	require.NoError(t, err)

	for _, n := range []string{"one", "two", "three"} {
		_, err := l.AddNote(ctx, "abc", n)
		require.NoError(t, err)
	}
	s, err := l.RemoveNote(ctx, "abc123", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "three"}, s.Notes)
	assert.Equal(t, []string{"one", "three"}, st.saved[0].Notes)

	_, err = l.RemoveNote(ctx, "abc123", 5)
	assert.ErrorIs(t, err, ErrNoteIndex)

	_, err = l.AddNote(ctx, "zzz", "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleFavoriteAndDelete(t *testing.T) {
	st := &memStore{}
	l := open(t, st)
	ctx := context.Background()
	for _, s := range []domain.Snippet{text("a1", "one"), text("a2", "two"), text("b1", "three")} {
		_, err := l.Add(ctx, s)
		require.NoError(t, err)
	}

	s, err := l.ToggleFavorite(ctx, "b1")
	require.NoError(t, err)
	assert.True(t, s.IsFavorite)
	s, err = l.ToggleFavorite(ctx, "b1")
	require.NoError(t, err)
	assert.False(t, s.IsFavorite)

	_, err = l.Get("a")
	assert.ErrorIs(t, err, ErrNotFound, "ambiguous prefix")

	require.NoError(t, l.Delete(ctx, "a2"))
	assert.Equal(t, 2, l.Len())
	assert.Len(t, st.saved, 2)

	require.NoError(t, l.DeleteAll(ctx))
	assert.Zero(t, l.Len())
	assert.Empty(t, st.saved)
}

func TestPersistenceFailureKeepsState(t *testing.T) {
	st := &memStore{failErr: errors.New("disk full")}
	l := open(t, st)
	ctx := context.Background()

	added, err := l.Add(ctx, text("x", "kept"))
	assert.True(t, added)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorContains(t, err, "disk full")
	assert.Equal(t, 1, l.Len())

	s, err := l.AddNote(ctx, "x", "note")
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Equal(t, []string{"note"}, s.Notes)
}

func TestAllReturnsCopies(t *testing.T) {
	l := open(t, &memStore{})
	_, err := l.Add(context.Background(), text("x", "hello"))
	require.NoError(t, err)

	all := l.All()
	all[0].Tags[0] = "mutated"
	got, err := l.Get("x")
	require.NoError(t, err)
	assert.Equal(t, "text", got.Tags[0])
}

func TestDemoSnippets(t *testing.T) {
	now := time.Date(2025, 5, 2, 14, 34, 0, 0, time.UTC)
	demo := DemoSnippets(now)
	require.Len(t, demo, 6)

	var types []domain.Type
	for _, s := range demo {
		types = append(types, s.Type())
		assert.NotEmpty(t, s.Tags)
		assert.LessOrEqual(t, len(s.Tags), 2)
	}
	assert.Equal(t, []domain.Type{
		domain.TypeCode, domain.TypeTweet, domain.TypeQuote, domain.TypeText, domain.TypeLink, domain.TypeMessage,
	}, types)
	assert.Equal(t, "May 2, 2025 · 1:15 PM", demo[1].DisplayTime())

	l := open(t, &memStore{})
	require.NoError(t, l.Replace(context.Background(), demo))
	assert.Equal(t, 6, l.Len())
}
