package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnippetJSON_VariantFields(t *testing.T) {
	ts := time.Date(2025, 5, 2, 14, 34, 0, 0, time.UTC)
	s := Snippet{
		ID:        "a1",
		Kind:      Code{Path: "src/utils/api.ts"},
		Content:   "const x = 1;",
		Source:    "VS Code",
		SourceApp: &SourceApp{Name: "VS Code", Icon: []byte{0x89, 0x50}},
		Timestamp: ts,
		Tags:      []string{"code", "javascript"},
	}

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "code", raw["type"])
	assert.Equal(t, "src/utils/api.ts", raw["path"])
	assert.Equal(t, "May 2, 2025 · 2:34 PM", raw["display_time"])
	assert.NotContains(t, raw, "title")
	assert.NotContains(t, raw, "contact")

	var back Snippet
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, Code{Path: "src/utils/api.ts"}, back.Kind)
	assert.Equal(t, []byte{0x89, 0x50}, back.SourceApp.Icon)
	assert.True(t, back.Timestamp.Equal(ts))
}

func TestSnippetJSON_MissingVariantField(t *testing.T) {
	var s Snippet
	err := json.Unmarshal([]byte(`{"id":"x","type":"link","content":"https://a.b"}`), &s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires title")

	err = json.Unmarshal([]byte(`{"id":"x","type":"gif","content":"?"}`), &s)
	require.Error(t, err)
}

func TestSnippetClone(t *testing.T) {
	s := Snippet{Tags: []string{"a", "b"}, Notes: []string{"n"}, SourceApp: &SourceApp{Name: "Slack"}}
	c := s.Clone()
	c.Tags[0] = "z"
	c.Notes = append(c.Notes, "m")
	c.SourceApp.Name = "Mail"

	assert.Equal(t, "a", s.Tags[0])
	assert.Len(t, s.Notes, 1)
	assert.Equal(t, "Slack", s.SourceApp.Name)
}

func TestDateRangeNormalize_Overnight(t *testing.T) {
	day := time.Date(2024, 5, 1, 15, 0, 0, 0, time.Local)
	r := DateRange{
		From:     day,
		To:       day,
		FromTime: &Clock{Hour: 22},
		ToTime:   &Clock{Hour: 4},
	}.Normalize()

	assert.True(t, r.Overnight())
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local), r.From)
	assert.Equal(t, time.Date(2024, 5, 2, 0, 0, 0, 0, time.Local), r.To)
	assert.Equal(t, time.Date(2024, 5, 1, 22, 0, 0, 0, time.Local), r.Start())
	assert.Equal(t, time.Date(2024, 5, 2, 4, 0, 0, 0, time.Local), r.End())
}

func TestDateRangeNormalize_SwapsAndDropsHalfTimes(t *testing.T) {
	r := DateRange{
		From:     time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC),
		To:       time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		FromTime: &Clock{Hour: 9},
	}.Normalize()

	assert.Equal(t, 1, r.From.Day())
	assert.Equal(t, 3, r.To.Day())
	assert.Nil(t, r.FromTime)
	assert.Equal(t, time.Date(2024, 5, 3, 23, 59, 59, 999000000, time.UTC), r.End())
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock("24:00")
	require.NoError(t, err)
	assert.Equal(t, 1440, c.Minutes())

	_, err = ParseClock("24:30")
	assert.Error(t, err)
	_, err = ParseClock("noon")
	assert.Error(t, err)
}

func TestFilterSpecIdentity(t *testing.T) {
	assert.True(t, FilterSpec{}.IsIdentity())
	assert.True(t, FilterSpec{Sort: SortOldest, Command: CommandNewest}.IsIdentity())
	assert.False(t, FilterSpec{FavoritesOnly: true}.IsIdentity())
}
