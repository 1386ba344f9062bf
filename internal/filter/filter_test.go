package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbaille/snipstack/internal/domain"
)

var now = time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)

func snip(id string, kind domain.Kind, content string, ts time.Time) domain.Snippet {
	return domain.Snippet{ID: id, Kind: kind, Content: content, Source: "Clipboard", Timestamp: ts, Tags: []string{"text", "clipboard"}}
}

func ids(items []domain.Snippet) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = s.ID
	}
	return out
}

func clockPtr(h, m int) *domain.Clock { return &domain.Clock{Hour: h, Minute: m} }

func newEngine() *Engine {
	return New(Options{Now: func() time.Time { return now }})
}

func TestApply_Identity(t *testing.T) {
	items := []domain.Snippet{
		snip("a", domain.Text{}, "one", now.Add(-2*time.Hour)),
		snip("b", domain.Text{}, "two", now.Add(-1*time.Hour)),
	}
	got := newEngine().Apply(items, domain.FilterSpec{}, domain.ViewAll, domain.SortNewest)
	assert.Equal(t, []string{"b", "a"}, ids(got))
}

func TestApply_OvernightWindow(t *testing.T) {
	lastNight := domain.DateRange{
		From: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), FromTime: clockPtr(22, 0),
		To: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), ToTime: clockPtr(4, 0),
	}.Normalize()

	items := []domain.Snippet{
		snip("late", domain.Text{}, "x", time.Date(2024, 5, 2, 1, 30, 0, 0, time.UTC)),
		snip("early-evening", domain.Text{}, "x", time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)),
		snip("start", domain.Text{}, "x", time.Date(2024, 5, 1, 22, 5, 0, 0, time.UTC)),
		snip("morning", domain.Text{}, "x", time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)),
	}
	got := newEngine().Apply(items, domain.FilterSpec{DateRange: &lastNight}, domain.ViewAll, domain.SortOldest)
	assert.Equal(t, []string{"start", "late"}, ids(got))
}

func TestApply_DateWindowAndWholeDays(t *testing.T) {
	evening := domain.DateRange{
		From: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), FromTime: clockPtr(18, 0),
		To: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), ToTime: clockPtr(24, 0),
	}
	items := []domain.Snippet{
		snip("in", domain.Text{}, "x", time.Date(2024, 5, 1, 23, 59, 0, 0, time.UTC)),
		snip("before", domain.Text{}, "x", time.Date(2024, 5, 1, 17, 59, 0, 0, time.UTC)),
		snip("next-day", domain.Text{}, "x", time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)),
	}
	got := newEngine().Apply(items, domain.FilterSpec{DateRange: &evening}, domain.ViewAll, domain.SortNewest)
	assert.Equal(t, []string{"in"}, ids(got))

	days := domain.DateRange{From: time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC), To: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}
	got = newEngine().Apply(items, domain.FilterSpec{DateRange: &days}, domain.ViewAll, domain.SortNewest)
	assert.Equal(t, []string{"in", "before"}, ids(got))
}

func TestApply_SameDayWindowIncludesEndHour(t *testing.T) {
	noon := domain.DateRange{
		From: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), FromTime: clockPtr(12, 0),
		To: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), ToTime: clockPtr(13, 0),
	}
	items := []domain.Snippet{
		snip("lunch", domain.Text{}, "x", time.Date(2024, 5, 2, 13, 30, 0, 0, time.UTC)),
		snip("on-the-hour", domain.Text{}, "x", time.Date(2024, 5, 2, 13, 0, 0, 0, time.UTC)),
		snip("noon", domain.Text{}, "x", time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)),
		snip("late-morning", domain.Text{}, "x", time.Date(2024, 5, 2, 11, 59, 0, 0, time.UTC)),
		snip("afternoon", domain.Text{}, "x", time.Date(2024, 5, 2, 14, 0, 0, 0, time.UTC)),
	}
	got := newEngine().Apply(items, domain.FilterSpec{DateRange: &noon}, domain.ViewAll, domain.SortOldest)
	assert.Equal(t, []string{"noon", "on-the-hour", "lunch"}, ids(got))
}

func TestApply_DatePhraseLiteral(t *testing.T) {
	items := []domain.Snippet{
		snip("today", domain.Text{}, "x", now.Add(-3*time.Hour)),
		snip("older", domain.Text{}, "x", time.Date(2024, 3, 9, 14, 0, 0, 0, time.UTC)),
	}
	got := newEngine().Apply(items, domain.FilterSpec{DatePhrase: "March 9"}, domain.ViewAll, domain.SortNewest)
	assert.Equal(t, []string{"older"}, ids(got))

	got = newEngine().Apply(items, domain.FilterSpec{DatePhrase: "hours ago"}, domain.ViewAll, domain.SortNewest)
	assert.Equal(t, []string{"today"}, ids(got))
}

func TestApply_TypeDualMode(t *testing.T) {
	items := []domain.Snippet{
		snip("typed-code", domain.Code{Path: "snippet.py"}, "print('hi')", now),
		snip("untyped-code", domain.Text{}, "function f() { return 1; }", now),
		snip("link", domain.Link{Title: "example.com"}, "https://example.com", now),
		snip("mentions-url", domain.Text{}, "see https://example.com/docs for details", now),
		snip("color", domain.Color{Value: "#fff"}, "#fff", now),
		snip("untyped-color", domain.Text{}, "teal", now),
		snip("plain", domain.Text{}, "buy milk", now),
	}
	apply := func(typ domain.Type) []string {
		return ids(newEngine().Apply(items, domain.FilterSpec{ContentType: typ}, domain.ViewAll, domain.SortNewest))
	}

	assert.Equal(t, []string{"typed-code", "untyped-code"}, apply(domain.TypeCode))
	assert.Equal(t, []string{"link", "mentions-url"}, apply(domain.TypeLink))
	assert.Equal(t, []string{"color", "untyped-color"}, apply(domain.TypeColor))
	assert.Equal(t, []string{"untyped-code", "mentions-url", "color", "untyped-color", "plain"}, apply(domain.TypeText))
}

func TestApply_Language(t *testing.T) {
	items := []domain.Snippet{
		snip("py", domain.Code{Path: "snippet.py"}, "def greet(name):\n    return name", now),
		snip("js", domain.Text{}, "const add = (a, b) => a + b;", now),
		snip("prose", domain.Text{}, "a python crossed the road", now),
	}
	got := newEngine().Apply(items, domain.FilterSpec{ContentType: domain.TypeCode, Language: "py"}, domain.ViewAll, domain.SortNewest)
	assert.Equal(t, []string{"py"}, ids(got))

	got = newEngine().Apply(items, domain.FilterSpec{ContentType: domain.TypeCode, Language: "js"}, domain.ViewAll, domain.SortNewest)
	assert.Equal(t, []string{"js"}, ids(got))
}

func TestApply_FreeText(t *testing.T) {
	items := []domain.Snippet{
		snip("partial", domain.Text{}, "learning notes about ML", now),
		snip("none", domain.Text{}, "grocery list", now),
		snip("in-note", domain.Text{}, "unrelated", now),
	}
	items[2].Notes = []string{"Machine learning notes from the talk"}

	spec := domain.FilterSpec{FreeText: "machine learning notes", Terms: []string{"machine", "learning", "notes"}}
	got := newEngine().Apply(items, spec, domain.ViewAll, domain.SortNewest)
	assert.Equal(t, []string{"partial", "in-note"}, ids(got))

	strict := New(Options{MinTermRatio: 1, Now: func() time.Time { return now }})
	got = strict.Apply(items, spec, domain.ViewAll, domain.SortNewest)
	assert.Equal(t, []string{"in-note"}, ids(got))
}

func TestApply_ViewAppAndSort(t *testing.T) {
	items := []domain.Snippet{
		snip("a", domain.Text{}, "x", now.Add(-time.Hour)),
		snip("b", domain.Text{}, "x", now.Add(-time.Hour)),
		snip("c", domain.Text{}, "x", now),
	}
	items[0].IsFavorite = true
	items[2].IsFavorite = true
	items[1].SourceApp = &domain.SourceApp{Name: "Slack"}
	items[1].Source = "Slack"

	got := newEngine().Apply(items, domain.FilterSpec{}, domain.ViewFavorites, domain.SortNewest)
	assert.Equal(t, []string{"c", "a"}, ids(got))

	got = newEngine().Apply(items, domain.FilterSpec{FavoritesOnly: true, Sort: domain.SortOldest}, domain.ViewAll, domain.SortNewest)
	assert.Equal(t, []string{"a", "c"}, ids(got))

	got = newEngine().Apply(items, domain.FilterSpec{SourceApp: "sla"}, domain.ViewAll, domain.SortNewest)
	assert.Equal(t, []string{"b"}, ids(got))

	// Ties keep insertion order in both directions.
	got = newEngine().Apply(items, domain.FilterSpec{}, domain.ViewAll, domain.SortOldest)
	assert.Equal(t, []string{"a", "b", "c"}, ids(got))
	got = newEngine().Apply(items, domain.FilterSpec{}, domain.ViewAll, domain.SortNewest)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"c", "a", "b"}, ids(got))
}

func TestRequiredTerms(t *testing.T) {
	assert.Equal(t, 2, requiredTerms(3, 0.5))
	assert.Equal(t, 1, requiredTerms(1, 0.5))
	assert.Equal(t, 2, requiredTerms(4, 0.5))
	assert.Equal(t, 1, requiredTerms(0, 0.5))
}
