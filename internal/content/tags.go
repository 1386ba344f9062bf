package content

import (
	"slices"
	"strings"

	"github.com/pbaille/snipstack/internal/domain"
	"github.com/pbaille/snipstack/internal/patterns"
)

// priorityTags follow a code/language pair, in this order.
var priorityTags = []string{"link", "url", "email", "error-message", "table", "json", "list", "todo-item", "markdown"}

// genericTags are fillers, used only when nothing better is left.
var genericTags = []string{"text", "clipboard", "snippet", "content"}

type ranked struct {
	tags []string
	typ  domain.Type
	lang patterns.Language
}

// rankTags dedupes remote tags case-insensitively and orders them: a
// code/language pair first, then priority tags, then the rest, then generic
// fillers while fewer than MaxTags remain. detect is consulted when "code"
// arrives without a language.
func rankTags(raw []string, detect func() (patterns.Language, bool)) ranked {
	var tags []string
	for _, t := range raw {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || slices.Contains(tags, t) {
			continue
		}
		tags = append(tags, t)
	}

	var r ranked
	var out []string
	hasCode := slices.Contains(tags, "code")

	var lang patterns.Language
	for _, t := range tags {
		if l, ok := patterns.NormalizeLanguage(t); ok {
			lang = l
			break
		}
	}

	if hasCode {
		out = append(out, "code")
		if lang == "" {
			if l, ok := detect(); ok {
				lang = l
			}
		}
		if lang != "" {
			out = append(out, string(lang))
			r.lang = lang
		}
	}

	add := func(t string) {
		if !slices.Contains(out, t) {
			out = append(out, t)
		}
	}

	for _, p := range priorityTags {
		if slices.Contains(tags, p) {
			add(p)
		}
	}
	for _, t := range tags {
		if slices.Contains(genericTags, t) {
			continue
		}
		if l, ok := patterns.NormalizeLanguage(t); ok && hasCode && l == lang {
			continue
		}
		add(t)
	}
	for _, t := range tags {
		if len(out) >= MaxTags {
			break
		}
		if slices.Contains(genericTags, t) {
			add(t)
		}
	}

	if len(out) > MaxTags {
		out = out[:MaxTags]
	}
	r.tags = out

	switch {
	case hasCode:
		r.typ = domain.TypeCode
	case slices.Contains(tags, "link") || slices.Contains(tags, "url"):
		r.typ = domain.TypeLink
	default:
		r.typ = domain.TypeText
	}
	return r
}
