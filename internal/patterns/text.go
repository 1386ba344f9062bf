package patterns

import (
	"regexp"
	"strings"
)

var (
	// Anchored on both ends: text that merely mentions a URL is not a link.
	urlRe         = regexp.MustCompile(`(?i)^(?:(?:https?|ftp)://|www\.)[^\s/$.?#][^\s]*$`)
	containsURLRe = regexp.MustCompile(`(?i)\b(?:(?:https?|ftp)://|www\.)[^\s]+`)
	emailRe       = regexp.MustCompile(`[\w.+-]+@[\w-]+\.[\w.-]+`)
	errorLogRe    = regexp.MustCompile(`(?im)(^\s*at\s+[\w.$<>]+\(.*\)\s*$|^\s*File ".*", line \d+|\b(error|exception|fatal|panic|warn(ing)?)\b\s*[:\]]|\b\w+(Error|Exception):\s|^\[?(ERROR|WARN|FATAL|DEBUG|INFO)\]?\s|^goroutine \d+ \[)`)
	bulletRe      = regexp.MustCompile(`(?m)^\s*([-*•+]|\d+[.)])\s+\S`)
	namePrefixRe  = regexp.MustCompile(`^([A-Z][\w.'-]*(?: [A-Z][\w.'-]*){0,3}):\s+\S`)
	reportingRe   = regexp.MustCompile(`(?i)\b(said|says|told|asked|replied|wrote|mentioned|texted|messaged|responded)\b`)
	todoRe        = regexp.MustCompile(`(?i)(^\s*(todo|to-do|fixme)\b|\bremind(er)?\b|\bdon'?t forget\b|\bremember to\b|^\s*\[[ x]\]\s|\bpick up\b|\bbuy\b)`)
	meetingRe     = regexp.MustCompile(`(?i)\b(meeting|call|standup|stand-up|sync|appointment|schedule[d]?|calendar|zoom|agenda)\b.*\b(at|on|tomorrow|today|monday|tuesday|wednesday|thursday|friday|saturday|sunday|\d{1,2}(:\d{2})?\s*(am|pm))\b`)
	greetingRe    = regexp.MustCompile(`(?i)^\s*(hi|hey|hello|good (morning|afternoon|evening)|dear|yo|howdy)\b`)
	sentenceRe    = regexp.MustCompile(`^[A-Z][^.!?\n]*[.!?]$`)
)

// IsURL reports whether the whole of text is a single URL.
func IsURL(text string) bool {
	return urlRe.MatchString(strings.TrimSpace(text))
}

// ContainsURL reports whether a bare URL appears anywhere in text.
func ContainsURL(text string) bool {
	return containsURLRe.MatchString(text)
}

// ContainsEmail reports whether text contains an email address.
func ContainsEmail(text string) bool {
	return emailRe.MatchString(text)
}

// IsErrorLog reports whether text looks like an error message, log line or
// stack trace.
func IsErrorLog(text string) bool {
	return errorPhraseRe.MatchString(text) || errorLogRe.MatchString(text)
}

// IsBulletedList reports whether at least two lines are list items.
func IsBulletedList(text string) bool {
	return len(bulletRe.FindAllString(text, -1)) >= 2
}

// NamePrefix returns the sender name of a "Name: message" shaped text.
func NamePrefix(text string) (string, bool) {
	m := namePrefixRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil || isLabel(m[1]) {
		return "", false
	}
	return m[1], true
}

// Prefixes that label a note rather than name a sender.
var labelPrefixes = map[string]bool{
	"todo": true, "to-do": true, "note": true, "notes": true, "nb": true, "fixme": true,
	"fyi": true, "ps": true, "re": true, "fwd": true, "q": true, "a": true,
	"question": true, "answer": true, "update": true, "edit": true, "reminder": true,
	"important": true, "tip": true, "summary": true, "warning": true,
}

// isLabel reports known labels and all-caps single words such as "WIP".
func isLabel(name string) bool {
	if labelPrefixes[strings.ToLower(name)] {
		return true
	}
	return !strings.Contains(name, " ") && len(name) > 1 && strings.ToUpper(name) == name
}

// HasReportingVerb reports narrative speech verbs such as "said" or "asked".
func HasReportingVerb(text string) bool {
	return reportingRe.MatchString(text)
}

// HasCodeKeyword reports whether text mentions a programming keyword.
func HasCodeKeyword(text string) bool {
	return codeKeywordRe.MatchString(text)
}

// IsTodo reports todo and reminder shaped text.
func IsTodo(text string) bool {
	return todoRe.MatchString(text)
}

// IsMeeting reports meeting and schedule shaped text.
func IsMeeting(text string) bool {
	return meetingRe.MatchString(text)
}

// IsGreeting reports text that opens with a greeting.
func IsGreeting(text string) bool {
	return greetingRe.MatchString(text)
}

// IsSingleSentence reports one capitalized sentence with terminal punctuation.
func IsSingleSentence(text string) bool {
	return sentenceRe.MatchString(strings.TrimSpace(text))
}

// LineCount counts lines, ignoring a trailing newline.
func LineCount(text string) int {
	return lineCount(text)
}

var messagingApps = []string{
	"messages", "imessage", "whatsapp", "telegram", "signal", "slack", "discord",
	"messenger", "teams", "skype", "wechat", "line", "viber", "mattermost", "element",
}

// IsMessagingApp reports whether name is a known chat application.
func IsMessagingApp(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return false
	}
	for _, app := range messagingApps {
		if name == app || (len(app) > 4 && strings.Contains(name, app)) {
			return true
		}
	}
	return false
}
