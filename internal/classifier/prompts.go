package classifier

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pbaille/snipstack/internal/patterns"
)

// ClassifyResult holds the classification output
type ClassifyResult struct {
	Tags       []string `json:"tags"`
	Confidence float64  `json:"confidence"`
}

// DateRangeResult is the remote resolver's answer. Dates are YYYY-MM-DD,
// times HH:MM.
type DateRangeResult struct {
	From     string `json:"from"`
	To       string `json:"to"`
	FromTime string `json:"fromTime,omitempty"`
	ToTime   string `json:"toTime,omitempty"`
	Display  string `json:"display"`
}

// TypeGuess is the remote reading of a free-form "/type" phrase.
type TypeGuess struct {
	ContentType string `json:"contentType"`
	Language    string `json:"language,omitempty"`
}

// Classify asks for tags for a clipboard capture. Only the first prefixLen
// characters are sent.
func (c *Client) Classify(ctx context.Context, content string, prefixLen int) (*ClassifyResult, error) {
	resp, err := c.complete(ctx, buildClassifyPrompt(truncate(content, prefixLen)))
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}

	var result ClassifyResult
	if err := decodeJSON(resp, &result); err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}
	if len(result.Tags) == 0 {
		return nil, fmt.Errorf("classify: no tags returned")
	}
	return &result, nil
}

// ResolveDateRange asks for an explicit range for a natural-language phrase.
func (c *Client) ResolveDateRange(ctx context.Context, phrase string, now time.Time) (*DateRangeResult, error) {
	resp, err := c.complete(ctx, buildDatePrompt(phrase, now))
	if err != nil {
		return nil, fmt.Errorf("resolve date: %w", err)
	}

	var result DateRangeResult
	if err := decodeJSON(resp, &result); err != nil {
		return nil, fmt.Errorf("resolve date: %w", err)
	}
	if result.From == "" || result.To == "" {
		return nil, fmt.Errorf("resolve date: incomplete range")
	}
	return &result, nil
}

// InferType asks which content type and language a search phrase means.
func (c *Client) InferType(ctx context.Context, phrase string) (*TypeGuess, error) {
	resp, err := c.complete(ctx, buildTypePrompt(phrase))
	if err != nil {
		return nil, fmt.Errorf("infer type: %w", err)
	}

	var guess TypeGuess
	if err := decodeJSON(resp, &guess); err != nil {
		return nil, fmt.Errorf("infer type: %w", err)
	}
	guess.ContentType = strings.ToLower(strings.TrimSpace(guess.ContentType))
	guess.Language = strings.ToLower(strings.TrimSpace(guess.Language))
	if guess.ContentType == "" || guess.ContentType == "none" {
		return nil, fmt.Errorf("infer type: no content type")
	}
	return &guess, nil
}

func buildClassifyPrompt(content string) string {
	var sb strings.Builder

	sb.WriteString("Classify this clipboard content and suggest tags. Return JSON only.\n\n")
	sb.WriteString("Content:\n")
	sb.WriteString(content)
	sb.WriteString("\n\n")

	sb.WriteString(`Return a JSON object with this structure:
{"tags": ["tag-one", "tag-two"], "confidence": 0.9}

Rules:
- Use short lowercase tags, hyphenated when needed
- Return 1 to 4 tags, most important first
- Source code must include "code" plus the language (`)
	langs := patterns.Languages()
	for i, l := range langs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(string(l))
	}
	sb.WriteString(`)
- Use "link" or "url" for web addresses, "email" for email addresses
- Use "error-message" for errors, logs and stack traces
- Other useful tags: table, json, list, todo-item, markdown, message, quote, meeting, note
- Confidence is 0.0-1.0

Return ONLY the JSON, no other text.`)

	return sb.String()
}

func buildDatePrompt(phrase string, now time.Time) string {
	var sb strings.Builder

	sb.WriteString("Convert this search phrase into a date range. Return JSON only.\n\n")
	fmt.Fprintf(&sb, "Phrase: %s\n", phrase)
	fmt.Fprintf(&sb, "Current date: %s (%s)\n\n", now.Format("2006-01-02"), now.Weekday())

	sb.WriteString(`Return a JSON object with this structure:
{"from": "YYYY-MM-DD", "to": "YYYY-MM-DD", "fromTime": "HH:MM", "toTime": "HH:MM", "display": "human label"}

Rules:
- Omit fromTime and toTime when the phrase names whole days
- Named times of day use these hour ranges: `)
	sb.WriteString(patterns.TimeOfDayPrompt())
	sb.WriteString(`
- When a window ends after midnight, "to" is the following calendar day
- "from" must not be after "to"

Return ONLY the JSON, no other text.`)

	return sb.String()
}

func buildTypePrompt(phrase string) string {
	var sb strings.Builder

	sb.WriteString("A user filters clipboard snippets by type. Interpret their phrase. Return JSON only.\n\n")
	fmt.Fprintf(&sb, "Phrase: %s\n\n", phrase)
	sb.WriteString(`Return a JSON object with this structure:
{"contentType": "code|link|text|color|message|quote|tweet|none", "language": "optional programming language"}

Return ONLY the JSON, no other text.`)

	return sb.String()
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
