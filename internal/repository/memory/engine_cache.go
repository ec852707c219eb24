package memory

import (
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"ai-coursechat-be/pkg/rag/engine"
)

// EngineCache keeps live conversation engines keyed by thread ID. Eviction is
// safe: an evicted engine is rebuilt from its checkpoints on next use.
type EngineCache struct {
	cache *cache.Cache
}

func NewEngineCache() *EngineCache {
	// Default expiration of 1 hour, purging expired items every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &EngineCache{
		cache: c,
	}
}

func (r *EngineCache) Save(e *engine.Engine) {
	r.cache.Set(e.ThreadID(), e, cache.DefaultExpiration)
}

func (r *EngineCache) Get(threadID string) (*engine.Engine, bool) {
	if x, found := r.cache.Get(threadID); found {
		return x.(*engine.Engine), true
	}
	return nil, false
}

func (r *EngineCache) Delete(threadID string) {
	r.cache.Delete(threadID)
}

// DeleteByPrefix drops every cached engine of a scope, used on course deletion.
func (r *EngineCache) DeleteByPrefix(prefix string) {
	for key := range r.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			r.cache.Delete(key)
		}
	}
}
