package i18n

import (
	"context"
	"sync"
)

// PreferenceStore persists the language a visitor picked explicitly.
type PreferenceStore interface {
	// Get returns ErrPreferenceNotFound when nothing is stored.
	Get(ctx context.Context, visitorID string) (string, error)
	Set(ctx context.Context, visitorID, lang string) error
	Delete(ctx context.Context, visitorID string) error
}

// MemoryStore is an in-process PreferenceStore for development and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	langs map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{langs: make(map[string]string)}
}

// Get returns the stored language, or ErrPreferenceNotFound.
func (s *MemoryStore) Get(ctx context.Context, visitorID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if visitorID == "" {
		return "", ErrEmptyVisitorID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	lang, ok := s.langs[visitorID]
	if !ok {
		return "", ErrPreferenceNotFound
	}
	return lang, nil
}

// Set stores lang for the visitor, replacing any previous value.
func (s *MemoryStore) Set(ctx context.Context, visitorID, lang string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if visitorID == "" {
		return ErrEmptyVisitorID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.langs[visitorID] = lang
	return nil
}

// Delete removes the visitor's preference.
func (s *MemoryStore) Delete(ctx context.Context, visitorID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if visitorID == "" {
		return ErrEmptyVisitorID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.langs, visitorID)
	return nil
}
