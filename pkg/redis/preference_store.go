package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/localegate/pkg/i18n"
)

// PreferenceStore keeps visitor language choices in Redis as plain string
// values under prefix+visitorID. It implements i18n.PreferenceStore.
type PreferenceStore struct {
	db     redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewPreferenceStore returns a store writing keys with the given prefix. A
// zero ttl keeps preferences forever; otherwise every Set refreshes it.
func NewPreferenceStore(client redis.UniversalClient, prefix string, ttl time.Duration) *PreferenceStore {
	return &PreferenceStore{db: client, prefix: prefix, ttl: ttl}
}

func (s *PreferenceStore) key(visitorID string) string {
	return s.prefix + visitorID
}

func (s *PreferenceStore) Get(ctx context.Context, visitorID string) (string, error) {
	if visitorID == "" {
		return "", i18n.ErrEmptyVisitorID
	}
	lang, err := s.db.Get(ctx, s.key(visitorID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", i18n.ErrPreferenceNotFound
	}
	if err != nil {
		return "", err
	}
	return lang, nil
}

func (s *PreferenceStore) Set(ctx context.Context, visitorID, lang string) error {
	if visitorID == "" {
		return i18n.ErrEmptyVisitorID
	}
	return s.db.Set(ctx, s.key(visitorID), lang, s.ttl).Err()
}

func (s *PreferenceStore) Delete(ctx context.Context, visitorID string) error {
	if visitorID == "" {
		return i18n.ErrEmptyVisitorID
	}
	return s.db.Del(ctx, s.key(visitorID)).Err()
}

var _ i18n.PreferenceStore = (*PreferenceStore)(nil)
