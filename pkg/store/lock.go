package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const lockKeyPrefix = "docsync:inflight:"

// LockStore marks a document as having a mutation in flight. The sync core
// assumes at most one in-flight mutation per document; this gives the API
// layer an enforcement point. Redis unavailability degrades open: a lock
// store outage must never block syncing.
type LockStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewLockStore(rdb *redis.Client, ttl time.Duration) *LockStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &LockStore{
		rdb: rdb,
		ttl: ttl,
	}
}

// Acquire attempts to mark the document in-flight. Returns false only when
// another operation demonstrably holds the marker.
func (s *LockStore) Acquire(ctx context.Context, documentId uuid.UUID) bool {
	ok, err := s.rdb.SetNX(ctx, lockKeyPrefix+documentId.String(), "1", s.ttl).Result()
	if err != nil {
		return true
	}
	return ok
}

func (s *LockStore) Release(ctx context.Context, documentId uuid.UUID) {
	_ = s.rdb.Del(ctx, lockKeyPrefix+documentId.String()).Err()
}
