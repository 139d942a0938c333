package memory

import (
	"time"

	"rag-docsync-be/pkg/ragflow"

	"github.com/patrickmn/go-cache"
)

// StatusCache keeps recently fetched remote parse statuses so bulk refresh
// loops do not hit the remote service once per document per tick.
type StatusCache struct {
	cache *cache.Cache
}

func NewStatusCache(ttl time.Duration) *StatusCache {
	if ttl <= 0 {
		ttl = 15 * time.Second
	}
	c := cache.New(ttl, 2*ttl)
	return &StatusCache{
		cache: c,
	}
}

func (r *StatusCache) Save(documentRemoteId string, status *ragflow.ParseStatus) {
	r.cache.Set(documentRemoteId, status, cache.DefaultExpiration)
}

func (r *StatusCache) Get(documentRemoteId string) (*ragflow.ParseStatus, bool) {
	if x, found := r.cache.Get(documentRemoteId); found {
		return x.(*ragflow.ParseStatus), true
	}
	return nil, false
}

func (r *StatusCache) Invalidate(documentRemoteId string) {
	r.cache.Delete(documentRemoteId)
}
