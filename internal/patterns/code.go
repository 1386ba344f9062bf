// Package patterns holds the pure pattern rules used to classify clipboard
// text: code-likeness scoring, per-language signatures, color and URL
// syntax, and the textual shapes the fallback classifier looks for.
package patterns

import (
	"regexp"
	"strings"
)

// Thresholds are the empirically chosen cutoffs of the heuristics. They are
// kept as named values so callers can override them; the defaults preserve
// established behavior.
type Thresholds struct {
	SingleLineCode       int // minimum code score for one-line input
	MultiLineCode        int // minimum code score for multi-line input
	LongText             int // characters above which text is "long"
	MultiLineCount       int // lines above which text is "multi-line"
	MessageLengthCeiling int // max length for reporting-verb message shape
}

// DefaultThresholds returns the stock cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SingleLineCode:       4,
		MultiLineCode:        3,
		LongText:             300,
		MultiLineCount:       3,
		MessageLengthCeiling: 280,
	}
}

// Score weights.
const (
	weightBrackets    = 1
	weightKeyword     = 2
	weightKeywordMix  = 1
	weightOperator    = 1
	weightCallShape   = 2
	weightIndentation = 2
	weightComment     = 1
	weightTerminator  = 1
	weightHTMLPair    = 2

	penaltyPronounVerb    = 2
	penaltyConversational = 2
	penaltyTerminalPunct  = 1
)

var (
	codeKeywordRe = regexp.MustCompile(`\b(def|function|const|let|var|class|import|return|elif|func|fn|public|private|static|void|struct|impl|namespace|package|lambda|async|await|SELECT|FROM|WHERE|INSERT|UPDATE)\b`)
	operatorRe    = regexp.MustCompile(`=>|===|!==|==|!=|<=|>=|&&|\|\||::|->|\+=|-=|:=|\+\+`)
	callShapeRe   = regexp.MustCompile(`\w+\s*\([^()]*\)\s*[{:]`)
	indentRe      = regexp.MustCompile(`(?m)^(  +|\t+)\S`)
	commentRe     = regexp.MustCompile(`(?m)^\s*(//|/\*|\*/|#!|<!--|--\s)`)
	terminatorRe  = regexp.MustCompile(`(?m)[;{}]\s*$`)
	htmlOpenRe    = regexp.MustCompile(`<([a-zA-Z][a-zA-Z0-9-]*)(\s[^<>]*)?>`)

	pronounVerbRe    = regexp.MustCompile(`(?i)\b(i|you|we|they|he|she)\s+(am|are|is|was|were|have|had|will|would|can|could|should|think|want|need|like|love|hate|know|just|really)\b`)
	conversationalRe = regexp.MustCompile(`(?i)\b(please|thanks|thank you|hey|hello|hi there|let me know|by the way|lol|btw|cheers)\b`)
	terminalPunctRe  = regexp.MustCompile(`[.!?]["')]?\s*$`)

	// Messages that look syntactic but are diagnostics, not code.
	errorPhraseRe = regexp.MustCompile(`(?i)(traceback \(most recent call last\)|uncaught \w*error|command not found|no such file or directory|permission denied|segmentation fault|npm err!|unhandled exception|stack overflow|is not defined|cannot read propert(y|ies) of|undefined is not a function)`)
)

// LooksLikeCode reports whether text scores as code under the default
// thresholds.
func LooksLikeCode(text string) bool {
	return DefaultThresholds().LooksLikeCode(text)
}

// LooksLikeCode reports whether text scores as code. Single-line fragments
// need a higher score than multi-line input, and known error phrases never
// count as code.
func (th Thresholds) LooksLikeCode(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" || errorPhraseRe.MatchString(text) {
		return false
	}

	score := CodeScore(text)
	if lineCount(text) > 1 {
		return score >= th.MultiLineCode
	}
	return score >= th.SingleLineCode
}

// CodeScore applies the code-likeness rubric to text.
func CodeScore(text string) int {
	score := 0

	if hasBrackets(text) && bracketsBalanced(text) {
		score += weightBrackets
	}
	if kws := distinct(codeKeywordRe.FindAllString(text, -1)); kws > 0 {
		score += weightKeyword
		if kws >= 3 {
			score += weightKeywordMix
		}
	}
	if operatorRe.MatchString(text) {
		score += weightOperator
	}
	if callShapeRe.MatchString(text) {
		score += weightCallShape
	}
	if lineCount(text) > 1 && len(indentRe.FindAllString(text, -1)) >= 2 {
		score += weightIndentation
	}
	if commentRe.MatchString(text) {
		score += weightComment
	}
	if terminatorRe.MatchString(text) {
		score += weightTerminator
	}
	if hasHTMLPair(text) {
		score += weightHTMLPair
	}

	if pronounVerbRe.MatchString(text) {
		score -= penaltyPronounVerb
	}
	if conversationalRe.MatchString(text) {
		score -= penaltyConversational
	}
	if terminalPunctRe.MatchString(text) && len(strings.Fields(text)) >= 4 {
		score -= penaltyTerminalPunct
	}
	return score
}

// IsErrorPhrase reports whether text contains a known diagnostic phrase.
func IsErrorPhrase(text string) bool {
	return errorPhraseRe.MatchString(text)
}

func hasBrackets(text string) bool {
	return strings.ContainsAny(text, "(){}[]")
}

func bracketsBalanced(text string) bool {
	var stack []rune
	pairs := map[rune]rune{')': '(', ']': '[', '}': '{'}
	for _, r := range text {
		switch r {
		case '(', '[', '{':
			stack = append(stack, r)
		case ')', ']', '}':
			if len(stack) == 0 || stack[len(stack)-1] != pairs[r] {
				return false
			}
			stack = stack[:len(stack)-1]
		}
	}
	return len(stack) == 0
}

func hasHTMLPair(text string) bool {
	for _, m := range htmlOpenRe.FindAllStringSubmatch(text, -1) {
		if strings.Contains(text, "</"+m[1]+">") {
			return true
		}
	}
	return false
}

func distinct(words []string) int {
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		seen[w] = true
	}
	return len(seen)
}

func lineCount(text string) int {
	return len(strings.Split(strings.TrimRight(text, "\n"), "\n"))
}
