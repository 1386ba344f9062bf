package dates

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"github.com/pbaille/snipstack/internal/chain"
	"github.com/pbaille/snipstack/internal/domain"
	"github.com/pbaille/snipstack/internal/patterns"
)

var (
	// Separators between the date mentions of a range phrase.
	rangeSepRe = regexp.MustCompile(`\s+(?:and|to|through|thru|until|till)\s+|\s+-\s+|,\s*`)
	// Explicit clock times; without one the parser's hour is a guess.
	explicitTimeRe = regexp.MustCompile(`\b\d{1,2}(:\d{2})?\s*(am|pm)\b|\b\d{1,2}:\d{2}\b`)
	// A four-digit year, with the comma that often precedes it.
	yearRe  = regexp.MustCompile(`,?\s*\b((?:19|20)\d{2})\b`)
	monthRe = regexp.MustCompile(`\b(jan(uary)?|feb(ruary)?|mar(ch)?|apr(il)?|may|june?|july?|aug(ust)?|sept?(ember)?|oct(ober)?|nov(ember)?|dec(ember)?)\b`)
)

// naturalParser wraps the general-purpose natural-language date parser.
type naturalParser struct {
	w *when.Parser
}

func newNaturalParser() *naturalParser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &naturalParser{w: w}
}

type mention struct {
	at       time.Time
	hasClock bool
}

// run extracts every date mention. Several mentions span earliest to latest.
// A single mention with an explicit time covers that hour; otherwise a named
// time of day anywhere in the phrase picks the window, else the whole day.
func (p *naturalParser) run(_ context.Context, req request) (domain.DateRange, error) {
	// The parser ignores years, so they are cut out first and applied to
	// the mentions afterwards. A year written once covers every mention.
	phraseYear := 0
	for _, m := range yearRe.FindAllStringSubmatch(req.phrase, -1) {
		phraseYear, _ = strconv.Atoi(m[1])
	}

	var found []mention
	for _, part := range rangeSepRe.Split(yearRe.ReplaceAllString(req.phrase, " $1"), -1) {
		year := 0
		if m := yearRe.FindStringSubmatch(part); m != nil {
			year, _ = strconv.Atoi(m[1])
			part = yearRe.ReplaceAllString(part, "")
		}
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		r, err := p.w.Parse(part, req.now)
		if err != nil || r == nil {
			continue
		}

		at := r.Time
		switch {
		case year == 0 && phraseYear != 0:
			year = phraseYear
		case year == 0 && monthRe.MatchString(part) && domain.Day(at).After(domain.Day(req.now)):
			// A month and day without a year means the last one that has passed.
			year = at.Year() - 1
		}
		if year != 0 {
			at = withYear(at, year)
		}
		found = append(found, mention{at: at, hasClock: explicitTimeRe.MatchString(r.Text)})
	}
	if len(found) == 0 {
		return domain.DateRange{}, chain.ErrNoMatch
	}

	first, last := found[0], found[0]
	for _, m := range found[1:] {
		if m.at.Before(first.at) {
			first = m
		}
		if m.at.After(last.at) {
			last = m
		}
	}

	dr := domain.DateRange{From: domain.Day(first.at), To: domain.Day(last.at)}
	if len(found) > 1 {
		return dr, nil
	}
	if first.hasClock {
		from := domain.Clock{Hour: first.at.Hour()}
		to := domain.Clock{Hour: first.at.Hour() + 1}
		dr.FromTime, dr.ToTime = &from, &to
	} else if w, ok := patterns.FindTimeOfDay(req.phrase); ok {
		applyWindow(&dr, w)
	}
	return dr, nil
}

func withYear(t time.Time, year int) time.Time {
	return time.Date(year, t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, t.Location())
}
