package repository

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/case-service/internal/domain"
)

// ErrLocalDraftNotFound is returned when no local draft exists under a key.
var ErrLocalDraftNotFound = errors.New("local draft not found")

// LocalDraftStore keeps ephemeral drafts that expire on their own. Keys are
// chosen by the caller.
type LocalDraftStore interface {
	Save(ctx context.Context, key string, draft *domain.Draft) error
	Load(ctx context.Context, key string) (*domain.Draft, error)
	Discard(ctx context.Context, key string) error
}

type redisLocalDraftStore struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

// NewLocalDraftStore returns a Redis-backed local draft store.
func NewLocalDraftStore(client redis.Cmdable, prefix string, ttl time.Duration) LocalDraftStore {
	return &redisLocalDraftStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *redisLocalDraftStore) redisKey(k string) string {
	return s.prefix + k
}

func (s *redisLocalDraftStore) Save(ctx context.Context, key string, draft *domain.Draft) error {
	now := time.Now().UTC()
	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = now
	}
	draft.UpdatedAt = now

	payload, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.redisKey(key), payload, s.ttl).Err()
}

func (s *redisLocalDraftStore) Load(ctx context.Context, key string) (*domain.Draft, error) {
	payload, err := s.client.Get(ctx, s.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrLocalDraftNotFound
	}
	if err != nil {
		return nil, err
	}
	var draft domain.Draft
	if err := json.Unmarshal(payload, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (s *redisLocalDraftStore) Discard(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.redisKey(key)).Err()
}
