// Package library owns the in-memory snippet collection. Every mutation is
// followed by a full save through the persistence collaborator; a failed
// save leaves the in-memory state authoritative and is reported as an
// error wrapping ErrPersistence.
package library

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/pbaille/snipstack/internal/domain"
	"github.com/pbaille/snipstack/internal/logging"
)

var (
	ErrNotFound    = errors.New("snippet not found")
	ErrNoteIndex   = errors.New("note index out of range")
	ErrPersistence = errors.New("persist snippets")
)

// Store is the persistence collaborator.
type Store interface {
	Load(ctx context.Context) ([]domain.Snippet, error)
	Save(ctx context.Context, snippets []domain.Snippet) error
}

// Library is the snippet collection in insertion order.
type Library struct {
	mu    sync.RWMutex
	items []domain.Snippet
	store Store
}

// Open loads the collection from store.
func Open(ctx context.Context, store Store) (*Library, error) {
	items, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snippets: %w", err)
	}
	return &Library{items: items, store: store}, nil
}

// NewID returns a fresh snippet id.
func NewID() string {
	return uuid.NewString()
}

// Len returns the number of snippets.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// All returns a copy of every snippet in insertion order.
func (l *Library) All() []domain.Snippet {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.Snippet, len(l.items))
	for i, s := range l.items {
		out[i] = s.Clone()
	}
	return out
}

// Get returns the snippet with id. A unique id prefix is accepted.
func (l *Library) Get(id string) (domain.Snippet, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	i, err := l.find(id)
	if err != nil {
		return domain.Snippet{}, err
	}
	return l.items[i].Clone(), nil
}

// ContainsContent reports whether a snippet with exactly this content exists.
func (l *Library) ContainsContent(content string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.indexOfContent(content) >= 0
}

// Add appends s unless a snippet with the same content exists. It reports
// whether s was added. The error, if any, wraps ErrPersistence.
func (l *Library) Add(ctx context.Context, s domain.Snippet) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.indexOfContent(s.Content) >= 0 {
		return false, nil
	}
	if s.ID == "" {
		s.ID = NewID()
	}
	l.items = append(l.items, s.Clone())
	return true, l.persist(ctx)
}

// AddNote appends a note to a snippet.
func (l *Library) AddNote(ctx context.Context, id, note string) (domain.Snippet, error) {
	return l.update(ctx, id, func(s *domain.Snippet) error {
		s.Notes = append(s.Notes, note)
		return nil
	})
}

// RemoveNote removes the note at index, keeping the order of the rest.
func (l *Library) RemoveNote(ctx context.Context, id string, index int) (domain.Snippet, error) {
	return l.update(ctx, id, func(s *domain.Snippet) error {
		if index < 0 || index >= len(s.Notes) {
			return fmt.Errorf("remove note %d of %d: %w", index, len(s.Notes), ErrNoteIndex)
		}
		s.Notes = slices.Delete(s.Notes, index, index+1)
		return nil
	})
}

// ToggleFavorite flips the favorite flag.
func (l *Library) ToggleFavorite(ctx context.Context, id string) (domain.Snippet, error) {
	return l.update(ctx, id, func(s *domain.Snippet) error {
		s.IsFavorite = !s.IsFavorite
		return nil
	})
}

// Delete removes one snippet.
func (l *Library) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i, err := l.find(id)
	if err != nil {
		return err
	}
	l.items = slices.Delete(l.items, i, i+1)
	return l.persist(ctx)
}

// DeleteAll clears the collection.
func (l *Library) DeleteAll(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = nil
	return l.persist(ctx)
}

// Replace swaps the whole collection, as when loading the demo set.
func (l *Library) Replace(ctx context.Context, items []domain.Snippet) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = make([]domain.Snippet, len(items))
	for i, s := range items {
		l.items[i] = s.Clone()
	}
	return l.persist(ctx)
}

// update applies fn to the snippet with id. A persistence failure still
// returns the updated snippet.
func (l *Library) update(ctx context.Context, id string, fn func(*domain.Snippet) error) (domain.Snippet, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i, err := l.find(id)
	if err != nil {
		return domain.Snippet{}, err
	}
	s := l.items[i].Clone()
	if err := fn(&s); err != nil {
		return domain.Snippet{}, err
	}
	l.items[i] = s
	return s.Clone(), l.persist(ctx)
}

// find resolves an exact id or a unique id prefix. Callers hold the lock.
func (l *Library) find(id string) (int, error) {
	if i := slices.IndexFunc(l.items, func(s domain.Snippet) bool { return s.ID == id }); i >= 0 {
		return i, nil
	}

	match := -1
	for i, s := range l.items {
		if id == "" || !strings.HasPrefix(s.ID, id) {
			continue
		}
		if match >= 0 {
			return -1, fmt.Errorf("snippet %s: ambiguous prefix: %w", id, ErrNotFound)
		}
		match = i
	}
	if match < 0 {
		return -1, fmt.Errorf("snippet %s: %w", id, ErrNotFound)
	}
	return match, nil
}

func (l *Library) indexOfContent(content string) int {
	return slices.IndexFunc(l.items, func(s domain.Snippet) bool { return s.Content == content })
}

// persist saves the full collection. Callers hold the write lock.
func (l *Library) persist(ctx context.Context) error {
	if err := l.store.Save(ctx, l.items); err != nil {
		logging.Warn("save snippets failed", "count", len(l.items), "err", err)
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}
