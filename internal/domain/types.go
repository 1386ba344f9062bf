package domain

import (
	"slices"
	"time"
)

// Type is the closed set of primary content types a snippet can carry.
type Type string

const (
	TypeCode    Type = "code"
	TypeTweet   Type = "tweet"
	TypeQuote   Type = "quote"
	TypeLink    Type = "link"
	TypeText    Type = "text"
	TypeMessage Type = "message"
	TypeColor   Type = "color"
)

// Types lists every primary type in display order.
var Types = []Type{TypeCode, TypeTweet, TypeQuote, TypeLink, TypeText, TypeMessage, TypeColor}

// ParseType returns the Type named by s, if it is one.
func ParseType(s string) (Type, bool) {
	for _, t := range Types {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// Kind is the type-specific part of a snippet. Each variant carries exactly
// the fields its type requires.
type Kind interface {
	Type() Type
	isKind()
}

// Code is a source code fragment.
type Code struct {
	Path string
}

// Tweet is a social post.
type Tweet struct {
	Handle string
}

// Quote is an attributed quotation.
type Quote struct {
	Author string
}

// Link is a bare URL.
type Link struct {
	Title string
}

// Text is plain text with no extra fields.
type Text struct{}

// Message is a conversational message.
type Message struct {
	Contact string
}

// Color is a color literal.
type Color struct {
	Value string
}

func (Code) Type() Type    { return TypeCode }
func (Tweet) Type() Type   { return TypeTweet }
func (Quote) Type() Type   { return TypeQuote }
func (Link) Type() Type    { return TypeLink }
func (Text) Type() Type    { return TypeText }
func (Message) Type() Type { return TypeMessage }
func (Color) Type() Type   { return TypeColor }

func (Code) isKind()    {}
func (Tweet) isKind()   {}
func (Quote) isKind()   {}
func (Link) isKind()    {}
func (Text) isKind()    {}
func (Message) isKind() {}
func (Color) isKind()   {}

// SourceApp describes the application a capture came from.
type SourceApp struct {
	Name string `json:"name"`
	Icon []byte `json:"icon,omitempty"`
}

// DefaultSource is the display source for captures without an application.
const DefaultSource = "Clipboard"

// DisplayLayout renders snippet timestamps, e.g. "May 2, 2025 · 2:34 PM".
const DisplayLayout = "January 2, 2006 · 3:04 PM"

// Snippet is one classified unit of captured clipboard content. Content,
// Kind, Tags and Timestamp are fixed at creation; Notes and IsFavorite are
// the mutable annotation overlay.
type Snippet struct {
	ID         string
	Kind       Kind
	Content    string
	Source     string
	SourceApp  *SourceApp
	Timestamp  time.Time
	Tags       []string
	Notes      []string
	IsFavorite bool
}

// Type returns the snippet's primary type.
func (s Snippet) Type() Type {
	if s.Kind == nil {
		return TypeText
	}
	return s.Kind.Type()
}

// DisplayTime renders the creation instant for display.
func (s Snippet) DisplayTime() string {
	return s.Timestamp.Format(DisplayLayout)
}

// SourceAppName returns the source application name, or "" when unknown.
func (s Snippet) SourceAppName() string {
	if s.SourceApp == nil {
		return ""
	}
	return s.SourceApp.Name
}

// Clone returns a copy that shares no slices with s.
func (s Snippet) Clone() Snippet {
	out := s
	out.Tags = slices.Clone(s.Tags)
	out.Notes = slices.Clone(s.Notes)
	if s.SourceApp != nil {
		app := *s.SourceApp
		app.Icon = slices.Clone(s.SourceApp.Icon)
		out.SourceApp = &app
	}
	return out
}

// SourceName picks the display source for a capture.
func SourceName(app *SourceApp) string {
	if app == nil || app.Name == "" {
		return DefaultSource
	}
	return app.Name
}
