package dates

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/pbaille/snipstack/internal/chain"
	"github.com/pbaille/snipstack/internal/domain"
	"github.com/pbaille/snipstack/internal/patterns"
)

var (
	dayPhraseRe = regexp.MustCompile(`^(?:(today|yesterday|this|last)\b\s*)?` +
		`(?:(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b\s*)?` +
		`(morning|afternoon|evening|night|tonight|midnight|noon|midday)?$`)
	periodPhraseRe = regexp.MustCompile(`^(this|last) (week|month)$`)
)

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
	"wednesday": time.Wednesday, "thursday": time.Thursday, "friday": time.Friday,
	"saturday": time.Saturday,
}

// phraseStage recognizes relative days, weekdays and named times of day,
// alone or combined ("yesterday evening", "last night", "friday morning"),
// plus this/last week and month.
func phraseStage(_ context.Context, req request) (domain.DateRange, error) {
	today := domain.Day(req.now)
	label := capitalize(req.phrase)

	if m := periodPhraseRe.FindStringSubmatch(req.phrase); m != nil {
		dr := period(today, m[1] == "last", m[2])
		dr.Label = label
		return dr, nil
	}

	m := dayPhraseRe.FindStringSubmatch(req.phrase)
	if m == nil {
		return domain.DateRange{}, chain.ErrNoMatch
	}
	rel, wd, win := m[1], m[2], m[3]
	if wd == "" && win == "" && (rel == "this" || rel == "last") {
		return domain.DateRange{}, chain.ErrNoMatch
	}

	day := today
	switch {
	case wd != "" && rel == "yesterday":
		return domain.DateRange{}, chain.ErrNoMatch
	case wd != "":
		day = mostRecent(today, weekdays[wd], rel == "last")
	case rel == "yesterday", rel == "last":
		day = today.AddDate(0, 0, -1)
	}

	dr := domain.DateRange{From: day, To: day, Label: label}
	if win != "" {
		w, _ := patterns.TimeOfDayWindow(win)
		applyWindow(&dr, w)
	}
	return dr, nil
}

// applyWindow sets the clocks of a named window. An overnight window ends
// on the following day.
func applyWindow(dr *domain.DateRange, w patterns.Window) {
	from := clock(w.Start)
	to := clock(w.End)
	dr.FromTime, dr.ToTime = &from, &to
	if w.Overnight() {
		dr.To = dr.From.AddDate(0, 0, 1)
	}
}

func clock(minutes int) domain.Clock {
	return domain.Clock{Hour: minutes / 60, Minute: minutes % 60}
}

func period(today time.Time, last bool, unit string) domain.DateRange {
	switch unit {
	case "week":
		monday := today.AddDate(0, 0, -((int(today.Weekday()) + 6) % 7))
		if last {
			return domain.DateRange{From: monday.AddDate(0, 0, -7), To: monday.AddDate(0, 0, -1)}
		}
		return domain.DateRange{From: monday, To: today}
	default:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		if last {
			return domain.DateRange{From: first.AddDate(0, -1, 0), To: first.AddDate(0, 0, -1)}
		}
		return domain.DateRange{From: first, To: today}
	}
}

// mostRecent returns the latest day on or before today falling on wd, or
// strictly before today when strict is set.
func mostRecent(today time.Time, wd time.Weekday, strict bool) time.Time {
	diff := (int(today.Weekday()) - int(wd) + 7) % 7
	if diff == 0 && strict {
		diff = 7
	}
	return today.AddDate(0, 0, -diff)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
