package patterns

import (
	"regexp"
	"strings"
)

// Window is a named time-of-day span in minutes since midnight. End may be
// 1440 (24:00). A window whose End is before its Start runs into the next day.
type Window struct {
	Name  string
	Start int
	End   int
}

// Overnight reports whether the window crosses midnight.
func (w Window) Overnight() bool { return w.Start > w.End }

var windows = map[string]Window{
	"morning":   {Name: "morning", Start: 5 * 60, End: 12 * 60},
	"afternoon": {Name: "afternoon", Start: 12 * 60, End: 18 * 60},
	"evening":   {Name: "evening", Start: 18 * 60, End: 24 * 60},
	"night":     {Name: "night", Start: 22 * 60, End: 4 * 60},
	"midnight":  {Name: "midnight", Start: 0, End: 1 * 60},
	"noon":      {Name: "noon", Start: 12 * 60, End: 13 * 60},
}

var windowWordRe = regexp.MustCompile(`(?i)\b(morning|afternoon|evening|night|tonight|midnight|noon|midday)\b`)

// TimeOfDayWindow returns the named window for a keyword like "evening".
func TimeOfDayWindow(name string) (Window, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "tonight":
		name = "night"
	case "midday":
		name = "noon"
	}
	w, ok := windows[name]
	return w, ok
}

// FindTimeOfDay returns the first time-of-day keyword window in text.
func FindTimeOfDay(text string) (Window, bool) {
	m := windowWordRe.FindString(text)
	if m == "" {
		return Window{}, false
	}
	return TimeOfDayWindow(m)
}

// TimeOfDayPrompt describes the window table for the remote date resolver.
func TimeOfDayPrompt() string {
	return "morning 05:00-12:00, afternoon 12:00-18:00, evening 18:00-24:00, " +
		"night 22:00-04:00 (ends the next day), midnight 00:00-01:00, noon 12:00-13:00"
}
