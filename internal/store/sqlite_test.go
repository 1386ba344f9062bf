package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbaille/snipstack/internal/domain"
)

func newTestStore(t *testing.T, opts Options) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "snip.db"), opts)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoad_Empty(t *testing.T) {
	got, err := newTestStore(t, Options{}).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSaveLoad(t *testing.T) {
	s := newTestStore(t, Options{})
	ctx := context.Background()
	ts := time.Date(2025, 5, 2, 14, 34, 0, 0, time.UTC)

	in := []domain.Snippet{
		{
			ID: "a", Kind: domain.Code{Path: "snippet.go"}, Content: "func main() {}",
			Source: "VS Code", SourceApp: &domain.SourceApp{Name: "VS Code", Icon: []byte{0x89, 0x50}},
			Timestamp: ts, Tags: []string{"code", "go"}, Notes: []string{"entry point"},
		},
		{ID: "b", Kind: domain.Color{Value: "teal"}, Content: "teal", Source: "Clipboard", Timestamp: ts, Tags: []string{"color", "design"}, IsFavorite: true},
	}
	require.NoError(t, s.Save(ctx, in))

	out, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, domain.Code{Path: "snippet.go"}, out[0].Kind)
	assert.Equal(t, []byte{0x89, 0x50}, out[0].SourceApp.Icon)
	assert.True(t, out[0].Timestamp.Equal(ts))
	assert.Equal(t, []string{"entry point"}, out[0].Notes)
	assert.True(t, out[1].IsFavorite)

	// Save overwrites the single record.
	require.NoError(t, s.Save(ctx, in[1:]))
	out, err = s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "b", out[0].ID)
}

func TestSave_Quota(t *testing.T) {
	s := newTestStore(t, Options{MaxBytes: 64})
	big := []domain.Snippet{{ID: "x", Kind: domain.Text{}, Content: string(make([]byte, 200)), Tags: []string{"text", "clipboard"}}}

	err := s.Save(context.Background(), big)
	assert.ErrorIs(t, err, ErrStorageFull)

	// The previous (empty) state is untouched.
	out, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out)
}
