package query

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinTermLength is the shortest significant term, exclusive.
const MinTermLength = 2

var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "that": true, "this": true,
	"from": true, "you": true, "your": true, "are": true, "was": true, "were": true,
	"has": true, "have": true, "had": true, "not": true, "but": true, "all": true,
	"any": true, "can": true, "our": true, "out": true, "about": true, "into": true,
	"over": true, "what": true, "when": true, "where": true, "which": true, "who": true,
	"why": true, "how": true, "its": true, "they": true, "them": true, "their": true,
	"there": true, "then": true, "than": true, "been": true, "being": true, "will": true,
	"would": true, "could": true, "should": true, "just": true, "some": true, "more": true,
	"most": true, "very": true, "also": true, "only": true, "such": true, "here": true,
}

// Tokenize extracts the significant terms of free text: lowercased,
// punctuation stripped, stopwords removed and longer than MinTermLength.
// Order is preserved and duplicates dropped.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var terms []string
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) <= MinTermLength || stopwords[f] || seen[f] {
			continue
		}
		seen[f] = true
		terms = append(terms, f)
	}
	return terms
}
