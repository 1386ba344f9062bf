package domain

// View restricts which records are visible before any query runs.
type View string

const (
	ViewAll       View = "all"
	ViewFavorites View = "favorites"
)

// SortOrder orders results by timestamp.
type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
)

// Command names the search command a FilterSpec was compiled from.
type Command string

const (
	CommandNone   Command = ""
	CommandDate   Command = "date"
	CommandType   Command = "type"
	CommandApp    Command = "app"
	CommandFav    Command = "fav"
	CommandSmart  Command = "smart"
	CommandNewest Command = "newest"
	CommandOldest Command = "oldest"
)

// FilterSpec is the compiled form of one search input. The zero value is
// the identity filter and matches every snippet.
type FilterSpec struct {
	Command     Command    `json:"command,omitempty"`
	ContentType Type       `json:"content_type,omitempty"`
	Language    string     `json:"language,omitempty"`
	SourceApp   string     `json:"source_app,omitempty"`
	DateRange   *DateRange `json:"date_range,omitempty"`
	// DatePhrase holds a /date phrase no strategy could resolve; it is
	// matched literally against rendered timestamps.
	DatePhrase    string    `json:"date_phrase,omitempty"`
	FavoritesOnly bool      `json:"favorites_only,omitempty"`
	FreeText      string    `json:"free_text,omitempty"`
	Terms         []string  `json:"terms,omitempty"`
	Sort          SortOrder `json:"sort,omitempty"`
}

// IsIdentity reports whether the spec constrains nothing.
func (f FilterSpec) IsIdentity() bool {
	return f.ContentType == "" && f.Language == "" && f.SourceApp == "" &&
		f.DateRange == nil && f.DatePhrase == "" && !f.FavoritesOnly &&
		f.FreeText == "" && len(f.Terms) == 0
}
