package library

import (
	"time"

	"github.com/pbaille/snipstack/internal/domain"
)

// DemoSnippets returns the sample collection shown in demo mode, newest
// first, stamped relative to now.
func DemoSnippets(now time.Time) []domain.Snippet {
	ago := func(d time.Duration) time.Time { return now.Add(-d) }
	app := func(name string) *domain.SourceApp { return &domain.SourceApp{Name: name} }

	return []domain.Snippet{
		{
			ID:   NewID(),
			Kind: domain.Code{Path: "src/utils/api.ts"},
			Content: "const fetchUserData = async (userId) => {\n" +
				"  try {\n" +
				"    const response = await api.get(`/users/${userId}`);\n" +
				"    return response.data;\n" +
				"  } catch (error) {\n" +
				"    console.error('Error fetching user data:', error);\n" +
				"    return null;\n" +
				"  }\n" +
				"};",
			Source:    "VS Code",
			SourceApp: app("VS Code"),
			Timestamp: now,
			Tags:      []string{"typescript", "api"},
		},
		{
			ID:   NewID(),
			Kind: domain.Tweet{Handle: "@designer"},
			Content: "Just launched our new design system! Check out how we're using Figma and React " +
				"to create a seamless workflow between design and development. #designsystem #frontend",
			Source:    "Twitter",
			SourceApp: app("Twitter"),
			Timestamp: ago(79 * time.Minute),
			Tags:      []string{"design", "announcement"},
		},
		{
			ID:   NewID(),
			Kind: domain.Quote{Author: "Alan Kay"},
			Content: "The best way to predict the future is to invent it. The future is not laid out on a track. " +
				"It is something that we can decide, and to the extent that we do not violate any known laws " +
				"of the universe, we can probably make it work the way that we want to.",
			Source:    "Medium",
			SourceApp: app("Medium"),
			Timestamp: ago(27*time.Hour + 12*time.Minute),
			Tags:      []string{"inspiration", "quote"},
		},
		{
			ID:        NewID(),
			Kind:      domain.Text{},
			Content:   "Pick up groceries: eggs, milk, bread, avocados, chicken, pasta",
			Source:    "Notes",
			SourceApp: app("Notes"),
			Timestamp: ago(28*time.Hour + 52*time.Minute),
			Tags:      []string{"todo-item", "reminder"},
		},
		{
			ID:        NewID(),
			Kind:      domain.Link{Title: "React Documentation"},
			Content:   "https://react.dev/reference/react",
			Source:    "Browser",
			SourceApp: app("Browser"),
			Timestamp: ago(46*time.Hour + 16*time.Minute),
			Tags:      []string{"reference", "react"},
		},
		{
			ID:   NewID(),
			Kind: domain.Message{Contact: "Alex Chen"},
			Content: "Hey, can you send me the latest design mockups for the dashboard? " +
				"I need to implement those changes by Friday.",
			Source:    "iMessage",
			SourceApp: app("iMessage"),
			Timestamp: ago(48*time.Hour + 59*time.Minute),
			Tags:      []string{"work", "design"},
		},
	}
}
