package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// snippetJSON is the flat wire form. Only the field belonging to the
// snippet's variant is ever set.
type snippetJSON struct {
	ID         string     `json:"id"`
	Type       Type       `json:"type"`
	Content    string     `json:"content"`
	Source     string     `json:"source"`
	SourceApp  *SourceApp `json:"source_app,omitempty"`
	Timestamp  time.Time  `json:"timestamp"`
	Display    string     `json:"display_time,omitempty"`
	Tags       []string   `json:"tags"`
	Notes      []string   `json:"notes"`
	IsFavorite bool       `json:"is_favorite"`

	Path       *string `json:"path,omitempty"`
	Handle     *string `json:"handle,omitempty"`
	Author     *string `json:"author,omitempty"`
	Title      *string `json:"title,omitempty"`
	Contact    *string `json:"contact,omitempty"`
	ColorValue *string `json:"color_value,omitempty"`
}

// MarshalJSON flattens the variant fields next to the common ones.
func (s Snippet) MarshalJSON() ([]byte, error) {
	w := snippetJSON{
		ID:         s.ID,
		Type:       s.Type(),
		Content:    s.Content,
		Source:     s.Source,
		SourceApp:  s.SourceApp,
		Timestamp:  s.Timestamp,
		Display:    s.DisplayTime(),
		Tags:       s.Tags,
		Notes:      s.Notes,
		IsFavorite: s.IsFavorite,
	}
	if w.Tags == nil {
		w.Tags = []string{}
	}
	if w.Notes == nil {
		w.Notes = []string{}
	}

	switch k := s.Kind.(type) {
	case Code:
		w.Path = &k.Path
	case Tweet:
		w.Handle = &k.Handle
	case Quote:
		w.Author = &k.Author
	case Link:
		w.Title = &k.Title
	case Message:
		w.Contact = &k.Contact
	case Color:
		w.ColorValue = &k.Value
	}
	return json.Marshal(w)
}

// UnmarshalJSON rebuilds the variant and rejects records missing the
// field their type requires.
func (s *Snippet) UnmarshalJSON(data []byte) error {
	var w snippetJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	kind, err := kindFromWire(w)
	if err != nil {
		return fmt.Errorf("snippet %s: %w", w.ID, err)
	}

	*s = Snippet{
		ID:         w.ID,
		Kind:       kind,
		Content:    w.Content,
		Source:     w.Source,
		SourceApp:  w.SourceApp,
		Timestamp:  w.Timestamp,
		Tags:       w.Tags,
		Notes:      w.Notes,
		IsFavorite: w.IsFavorite,
	}
	return nil
}

func kindFromWire(w snippetJSON) (Kind, error) {
	need := func(field string, v *string) (string, error) {
		if v == nil {
			return "", fmt.Errorf("type %s requires %s", w.Type, field)
		}
		return *v, nil
	}

	switch w.Type {
	case TypeCode:
		v, err := need("path", w.Path)
		return Code{Path: v}, err
	case TypeTweet:
		v, err := need("handle", w.Handle)
		return Tweet{Handle: v}, err
	case TypeQuote:
		v, err := need("author", w.Author)
		return Quote{Author: v}, err
	case TypeLink:
		v, err := need("title", w.Title)
		return Link{Title: v}, err
	case TypeMessage:
		v, err := need("contact", w.Contact)
		return Message{Contact: v}, err
	case TypeColor:
		v, err := need("color_value", w.ColorValue)
		return Color{Value: v}, err
	case TypeText, "":
		return Text{}, nil
	default:
		return nil, fmt.Errorf("unknown type %q", w.Type)
	}
}
