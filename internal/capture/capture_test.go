package capture

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbaille/snipstack/internal/content"
	"github.com/pbaille/snipstack/internal/domain"
	"github.com/pbaille/snipstack/internal/library"
)

type memStore struct{ saves int }

func (m *memStore) Load(context.Context) ([]domain.Snippet, error) { return nil, nil }
func (m *memStore) Save(context.Context, []domain.Snippet) error  { m.saves++; return nil }

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

type fixture struct {
	h       *Handler
	lib     *library.Library
	clock   *fakeClock
	written []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	lib, err := library.Open(context.Background(), &memStore{})
	require.NoError(t, err)

	f := &fixture{lib: lib, clock: &fakeClock{t: time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)}}
	f.h = NewHandler(content.New(content.Options{}), lib, Options{
		Now: f.clock.now,
		WriteClipboard: func(s string) error {
			f.written = append(f.written, s)
			return nil
		},
	})
	return f
}

func TestCapture_Classifies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.h.Capture(ctx, Event{Text: "#FFF", App: &domain.SourceApp{Name: "Figma"}})
	require.NoError(t, err)
	require.True(t, res.Captured)
	assert.Equal(t, domain.Color{Value: "#fff"}, res.Snippet.Kind)
	assert.Equal(t, "#FFF", res.Snippet.Content)
	assert.Equal(t, "Figma", res.Snippet.Source)
	assert.Equal(t, f.clock.t, res.Snippet.Timestamp)
	assert.Len(t, res.Snippet.Tags, 2)

	f.clock.advance(time.Second)
	res, err = f.h.Capture(ctx, Event{Text: "def foo():"})
	require.NoError(t, err)
	assert.Equal(t, domain.TypeCode, res.Snippet.Type())
	assert.Equal(t, domain.DefaultSource, res.Snippet.Source)
	assert.Equal(t, 2, f.lib.Len())
}

func TestCapture_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.h.Capture(ctx, Event{Text: "hello world"})
	require.NoError(t, err)
	assert.True(t, res.Captured)

	f.clock.advance(10 * time.Second)
	res, err = f.h.Capture(ctx, Event{Text: "hello world"})
	require.NoError(t, err)
	assert.False(t, res.Captured)
	assert.Equal(t, SkipDuplicate, res.Skipped)
	assert.Equal(t, 1, f.lib.Len())
}

func TestCapture_Debounce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.h.Capture(ctx, Event{Text: "one"})
	require.NoError(t, err)
	require.NoError(t, f.lib.DeleteAll(ctx))

	f.clock.advance(100 * time.Millisecond)
	res, err := f.h.Capture(ctx, Event{Text: "one"})
	require.NoError(t, err)
	assert.Equal(t, SkipDebounced, res.Skipped)

	f.clock.advance(time.Second)
	res, err = f.h.Capture(ctx, Event{Text: "one"})
	require.NoError(t, err)
	assert.True(t, res.Captured)
}

func TestCapture_EmptyInput(t *testing.T) {
	f := newFixture(t)
	res, err := f.h.Capture(context.Background(), Event{Text: "  \n"})
	require.NoError(t, err)
	assert.Equal(t, SkipEmpty, res.Skipped)
	assert.Zero(t, f.lib.Len())
}

func TestCopy_SuppressesSelfCapture(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := domain.Snippet{Content: "copied text"}

	require.NoError(t, f.h.Copy(s))
	assert.Equal(t, []string{"copied text"}, f.written)

	res, err := f.h.Capture(ctx, Event{Text: "copied text"})
	require.NoError(t, err)
	assert.Equal(t, SkipSelfCopy, res.Skipped)

	// Only the one event is suppressed.
	f.clock.advance(time.Second)
	res, err = f.h.Capture(ctx, Event{Text: "copied text"})
	require.NoError(t, err)
	assert.True(t, res.Captured)
}

func TestCopy_WriteFailureClearsMark(t *testing.T) {
	f := newFixture(t)
	f.h.write = func(string) error { return errors.New("no clipboard") }

	assert.Error(t, f.h.Copy(domain.Snippet{Content: "x y z"}))
	res, err := f.h.Capture(context.Background(), Event{Text: "x y z"})
	require.NoError(t, err)
	assert.True(t, res.Captured)
}

func TestRun(t *testing.T) {
	f := newFixture(t)
	events := make(chan Event, 3)
	events <- Event{Text: "alpha"}
	events <- Event{Text: ""}
	events <- Event{Text: "beta"}
	close(events)

	var results []Result
	f.h.Run(context.Background(), events, func(r Result, err error) {
		assert.NoError(t, err)
		results = append(results, r)
	})
	require.Len(t, results, 3)
	assert.True(t, results[0].Captured)
	assert.Equal(t, SkipEmpty, results[1].Skipped)
	assert.True(t, results[2].Captured)
}

func TestWatcher_EmitsChanges(t *testing.T) {
	var mu sync.Mutex
	reads := []string{"", "a", "a", "b", "!err", "b", "c"}
	read := func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		if len(reads) == 0 {
			return "c", nil
		}
		r := reads[0]
		reads = reads[1:]
		if r == "!err" {
			return "", errors.New("clipboard unavailable")
		}
		return r, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	out := make(chan Event)
	go NewWatcher(time.Millisecond, read).Run(ctx, out)

	var got []string
	for ev := range out {
		got = append(got, ev.Text)
		if len(got) == 3 {
			cancel()
		}
	}
	assert.Equal(t, []string{"a", "b", "c"}, got)
}
