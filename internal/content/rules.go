package content

import (
	"context"
	"regexp"
	"slices"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/pbaille/snipstack/internal/domain"
	"github.com/pbaille/snipstack/internal/patterns"
)

// rule is one deterministic fallback test.
type rule struct {
	name  string
	match func(th patterns.Thresholds, in input) bool
	typ   domain.Type
	tags  []string
}

var syntaxCharRe = regexp.MustCompile(`[(){};=]`)

// fallbackRules run in order when no earlier stage answered; the first
// match wins.
var fallbackRules = []rule{
	{"url", func(_ patterns.Thresholds, in input) bool { return patterns.ContainsURL(in.text) },
		domain.TypeText, []string{"url", "reference"}},
	{"email", func(_ patterns.Thresholds, in input) bool { return patterns.ContainsEmail(in.text) },
		domain.TypeText, []string{"email", "contact"}},
	{"error", func(_ patterns.Thresholds, in input) bool { return patterns.IsErrorLog(in.text) },
		domain.TypeText, []string{"error-message", "debug"}},
	{"list", func(_ patterns.Thresholds, in input) bool { return patterns.IsBulletedList(in.text) },
		domain.TypeText, []string{"list", "notes"}},
	{"message", func(_ patterns.Thresholds, in input) bool {
		_, named := patterns.NamePrefix(in.text)
		return named || (in.app != nil && patterns.IsMessagingApp(in.app.Name))
	}, domain.TypeMessage, []string{"message", "conversation"}},
	{"code-keyword", func(_ patterns.Thresholds, in input) bool {
		return patterns.HasCodeKeyword(in.text) && syntaxCharRe.MatchString(in.text)
	}, domain.TypeText, []string{"programming", "snippet"}},
	{"todo", func(_ patterns.Thresholds, in input) bool { return patterns.IsTodo(in.text) },
		domain.TypeText, []string{"todo-item", "reminder"}},
	{"meeting", func(_ patterns.Thresholds, in input) bool { return patterns.IsMeeting(in.text) },
		domain.TypeText, []string{"meeting", "schedule"}},
	{"long-text", func(th patterns.Thresholds, in input) bool { return len(in.text) > th.LongText },
		domain.TypeText, []string{"article", "long-read"}},
	{"multi-line", func(th patterns.Thresholds, in input) bool {
		return patterns.LineCount(strings.TrimSpace(in.text)) > th.MultiLineCount
	}, domain.TypeText, []string{"notes", "multiline"}},
	{"greeting", func(_ patterns.Thresholds, in input) bool { return patterns.IsGreeting(in.text) },
		domain.TypeText, []string{"greeting", "note"}},
	{"sentence", func(_ patterns.Thresholds, in input) bool { return patterns.IsSingleSentence(in.text) },
		domain.TypeText, []string{"sentence", "note"}},
}

// rulesStage is the terminal stage and always answers.
func (c *Classifier) rulesStage(_ context.Context, in input) (draft, error) {
	if c.th.LooksLikeCode(in.text) {
		if lang, ok := DetectLanguage(in.text); ok {
			return draft{typ: domain.TypeCode, tags: []string{"code", string(lang)}, lang: lang, conf: 0.6}, nil
		}
		return draft{typ: domain.TypeCode, tags: []string{"code"}, conf: 0.5}, nil
	}

	for _, r := range fallbackRules {
		if r.match(c.th, in) {
			return draft{typ: r.typ, tags: append([]string(nil), r.tags...), conf: 0.5}, nil
		}
	}
	return draft{typ: domain.TypeText, tags: []string{"text", "clipboard"}, conf: 0.3}, nil
}

// enryNames maps linguist language names onto our tags.
var enryNames = map[string]patterns.Language{
	"Python":     patterns.Python,
	"JavaScript": patterns.JavaScript,
	"TypeScript": patterns.TypeScript,
	"HTML":       patterns.HTML,
	"CSS":        patterns.CSS,
	"Java":       patterns.Java,
	"C++":        patterns.CPP,
	"C#":         patterns.CSharp,
	"Rust":       patterns.Rust,
	"Go":         patterns.Go,
	"SQL":        patterns.SQL,
	"PHP":        patterns.PHP,
	"Ruby":       patterns.Ruby,
	"Shell":      patterns.Bash,
}

var enryCandidates = func() []string {
	out := make([]string, 0, len(enryNames))
	for name := range enryNames {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}()

// DetectLanguage tries the ordered signature table, then the statistical
// classifier. Callers should only use it on text that looks like code: the
// statistical stage always ranks some candidate.
func DetectLanguage(text string) (patterns.Language, bool) {
	if lang, ok := patterns.DetectLanguageMarkers(text); ok {
		return lang, true
	}
	return detectStatistical(text)
}

func detectStatistical(text string) (patterns.Language, bool) {
	ranked := enry.GetLanguagesByClassifier("", []byte(text), enryCandidates)
	if len(ranked) == 0 {
		return "", false
	}
	lang, ok := enryNames[ranked[0]]
	return lang, ok
}
