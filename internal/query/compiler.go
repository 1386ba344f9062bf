// Package query compiles search-bar input into a domain.FilterSpec.
//
// Input starting with "/" is a command: /date, /type, /app, /fav, /smart,
// /newest or /oldest. Anything else is free text.
package query

import (
	"context"
	"errors"
	"strings"

	"github.com/pbaille/snipstack/internal/classifier"
	"github.com/pbaille/snipstack/internal/dates"
	"github.com/pbaille/snipstack/internal/domain"
	"github.com/pbaille/snipstack/internal/logging"
	"github.com/pbaille/snipstack/internal/patterns"
)

// DateResolver resolves /date phrases.
type DateResolver interface {
	Resolve(ctx context.Context, phrase string) (domain.DateRange, error)
}

// TypeInferrer interprets /type phrases the keyword table does not know.
type TypeInferrer interface {
	InferType(ctx context.Context, phrase string) (*classifier.TypeGuess, error)
}

// Compiler turns raw input into a FilterSpec. Both collaborators may be nil.
type Compiler struct {
	dates DateResolver
	types TypeInferrer
}

// New creates a Compiler.
func New(dates DateResolver, types TypeInferrer) *Compiler {
	return &Compiler{dates: dates, types: types}
}

var commands = map[string]domain.Command{
	"date":   domain.CommandDate,
	"type":   domain.CommandType,
	"app":    domain.CommandApp,
	"fav":    domain.CommandFav,
	"smart":  domain.CommandSmart,
	"newest": domain.CommandNewest,
	"oldest": domain.CommandOldest,
}

// Compile parses raw against the previous spec. Retyping the same command
// refines prev; switching commands starts over. The sort order always
// carries across. Compile never fails: unknown commands and unresolvable
// arguments degrade to free text.
func (c *Compiler) Compile(ctx context.Context, raw string, prev domain.FilterSpec) domain.FilterSpec {
	input := strings.TrimSpace(raw)
	fresh := domain.FilterSpec{Sort: prev.Sort}
	if input == "" {
		return fresh
	}
	if !strings.HasPrefix(input, "/") {
		return freeText(fresh, input)
	}

	name, arg, _ := strings.Cut(input[1:], " ")
	arg = strings.TrimSpace(arg)
	cmd, ok := commands[strings.ToLower(name)]
	if !ok {
		return freeText(fresh, input)
	}

	switch cmd {
	case domain.CommandNewest, domain.CommandOldest:
		prev.Sort = domain.SortOrder(cmd)
		return prev
	}

	spec := fresh
	if prev.Command == cmd {
		spec = prev
	}
	spec.Command = cmd

	switch cmd {
	case domain.CommandDate:
		return c.compileDate(ctx, spec, arg)
	case domain.CommandType:
		return c.compileType(ctx, spec, arg)
	case domain.CommandApp:
		spec.SourceApp = arg
	case domain.CommandFav:
		spec.FavoritesOnly = true
		spec.ContentType, spec.Language = "", ""
		spec.DateRange, spec.DatePhrase = nil, ""
		spec = freeText(spec, arg)
	case domain.CommandSmart:
		spec = freeText(domain.FilterSpec{Command: cmd, Sort: prev.Sort}, arg)
	}
	return spec
}

func freeText(spec domain.FilterSpec, text string) domain.FilterSpec {
	spec.FreeText = text
	spec.Terms = Tokenize(text)
	return spec
}

func (c *Compiler) compileDate(ctx context.Context, spec domain.FilterSpec, phrase string) domain.FilterSpec {
	spec.DateRange, spec.DatePhrase = nil, ""
	if phrase == "" || c.dates == nil {
		spec.DatePhrase = phrase
		return spec
	}

	dr, err := c.dates.Resolve(ctx, phrase)
	if err != nil {
		if !errors.Is(err, dates.ErrUnresolved) {
			logging.Warn("resolve date failed", "phrase", phrase, "err", err)
		}
		spec.DatePhrase = phrase
		return spec
	}
	spec.DateRange = &dr
	return spec
}

// typeKeywords answers /type without a network round-trip.
var typeKeywords = map[string]domain.Type{
	"link": domain.TypeLink, "links": domain.TypeLink, "url": domain.TypeLink,
	"urls": domain.TypeLink, "website": domain.TypeLink, "websites": domain.TypeLink,
	"code": domain.TypeCode, "script": domain.TypeCode, "scripts": domain.TypeCode,
	"programming": domain.TypeCode,
	"text": domain.TypeText, "note": domain.TypeText, "notes": domain.TypeText,
	"message": domain.TypeText, "messages": domain.TypeText,
	"color": domain.TypeColor, "colors": domain.TypeColor, "colour": domain.TypeColor,
	"hex": domain.TypeColor, "rgb": domain.TypeColor, "rgba": domain.TypeColor,
	"hsl": domain.TypeColor,
	"quote": domain.TypeQuote, "quotes": domain.TypeQuote,
	"tweet": domain.TypeTweet, "tweets": domain.TypeTweet,
}

// lookupType reads a type and an optional language from the keyword table.
// A bare language name means code in that language.
func lookupType(phrase string) (domain.Type, patterns.Language, bool) {
	var typ domain.Type
	var lang patterns.Language
	for _, w := range strings.Fields(strings.ToLower(phrase)) {
		if t, ok := typeKeywords[w]; ok && typ == "" {
			typ = t
			continue
		}
		if l, ok := patterns.NormalizeLanguage(w); ok && lang == "" {
			lang = l
		}
	}
	if typ == "" && lang != "" {
		typ = domain.TypeCode
	}
	if typ != domain.TypeCode {
		lang = ""
	}
	return typ, lang, typ != ""
}

func (c *Compiler) compileType(ctx context.Context, spec domain.FilterSpec, phrase string) domain.FilterSpec {
	spec.ContentType, spec.Language = "", ""
	spec.FreeText, spec.Terms = "", nil
	if phrase == "" {
		return spec
	}

	if typ, lang, ok := lookupType(phrase); ok {
		spec.ContentType, spec.Language = typ, string(lang)
		return spec
	}

	if c.types != nil {
		guess, err := c.types.InferType(ctx, phrase)
		if err == nil {
			if typ, ok := domain.ParseType(guess.ContentType); ok {
				spec.ContentType = typ
				if l, ok := patterns.NormalizeLanguage(guess.Language); ok && typ == domain.TypeCode {
					spec.Language = string(l)
				}
				return spec
			}
		} else {
			logging.Warn("infer type failed", "phrase", phrase, "err", err)
		}
	}
	return freeText(spec, phrase)
}
