package filter

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/pbaille/snipstack/internal/content"
	"github.com/pbaille/snipstack/internal/domain"
	"github.com/pbaille/snipstack/internal/patterns"
)

func matchApp(s domain.Snippet, app string) bool {
	if app == "" {
		return true
	}
	name := s.SourceAppName()
	if name == "" {
		name = s.Source
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(strings.TrimSpace(app)))
}

// matchType accepts the stored type or, for code, link and color, content
// that the heuristics recognize today even if it was typed otherwise at
// capture time.
func matchType(s domain.Snippet, want domain.Type) bool {
	if want == "" {
		return true
	}
	typ := s.Type()
	switch want {
	case domain.TypeCode:
		return typ == domain.TypeCode ||
			(typ != domain.TypeLink && typ != domain.TypeColor && patterns.LooksLikeCode(s.Content))
	case domain.TypeLink:
		return typ == domain.TypeLink || patterns.ContainsURL(s.Content)
	case domain.TypeText:
		return typ != domain.TypeCode && typ != domain.TypeLink
	case domain.TypeColor:
		if typ == domain.TypeColor {
			return true
		}
		_, ok := patterns.IsColorLiteral(s.Content)
		return ok
	}
	return typ == want
}

// matchLanguage re-detects the language from content rather than trusting
// the stored tag, and matches it by containment either way round.
func matchLanguage(s domain.Snippet, want string) bool {
	if want == "" {
		return true
	}
	if s.Type() != domain.TypeCode && !patterns.LooksLikeCode(s.Content) {
		return false
	}
	got, ok := content.DetectLanguage(s.Content)
	if !ok {
		return false
	}
	if l, ok := patterns.NormalizeLanguage(want); ok {
		want = string(l)
	}
	want = strings.ToLower(want)
	return string(got) == want || strings.Contains(string(got), want) || strings.Contains(want, string(got))
}

func matchDate(s domain.Snippet, dr *domain.DateRange) bool {
	if dr == nil {
		return true
	}
	ts := s.Timestamp.In(dr.From.Location())

	if !dr.HasTimes() {
		return !ts.Before(dr.Start()) && !ts.After(dr.End())
	}

	// Both branches compare whole hours with an inclusive end hour.
	toHour := min(dr.ToTime.Hour, 23)
	if dr.Overnight() {
		return (sameDay(ts, dr.From) && ts.Hour() >= dr.FromTime.Hour) ||
			(sameDay(ts, dr.To) && ts.Hour() <= toHour)
	}

	day := domain.Day(ts)
	if day.Before(domain.Day(dr.From)) || day.After(domain.Day(dr.To)) {
		return false
	}
	return ts.Hour() >= dr.FromTime.Hour && ts.Hour() <= toHour
}

// matchDatePhrase is the literal fallback for a /date phrase that could not
// be resolved: it looks for the phrase in the rendered timestamp.
func matchDatePhrase(s domain.Snippet, phrase string, now time.Time) bool {
	phrase = strings.ToLower(strings.TrimSpace(phrase))
	if phrase == "" {
		return true
	}
	display := strings.ToLower(s.DisplayTime())
	relative := strings.ToLower(humanize.RelTime(s.Timestamp, now, "ago", "from now"))
	return strings.Contains(display, phrase) || strings.Contains(relative, phrase)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// matchText looks for the whole phrase first, then for enough of the
// significant terms.
func (e *Engine) matchText(s domain.Snippet, phrase string, terms []string) bool {
	phrase = strings.ToLower(strings.TrimSpace(phrase))
	if phrase == "" && len(terms) == 0 {
		return true
	}

	hay := haystack(s)
	if phrase != "" && strings.Contains(hay, phrase) {
		return true
	}
	if len(terms) == 0 {
		return false
	}

	found := 0
	for _, t := range terms {
		if strings.Contains(hay, strings.ToLower(t)) {
			found++
		}
	}
	return found >= requiredTerms(len(terms), e.ratio)
}

// haystack joins the searchable fields, lowercased.
func haystack(s domain.Snippet) string {
	parts := make([]string, 0, 2+len(s.Notes)+len(s.Tags))
	parts = append(parts, s.Content, s.Source)
	parts = append(parts, s.Notes...)
	parts = append(parts, s.Tags...)
	return strings.ToLower(strings.Join(parts, "\n"))
}
