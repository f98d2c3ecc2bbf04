package memory

import (
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/tevez07b9/notebooklm/internal/entity"
)

const listKey = "document_list"

// DocumentCache keeps the document listing warm between uploads. Ingestion
// and deletion events invalidate it.
type DocumentCache struct {
	cache *cache.Cache
}

func NewDocumentCache() *DocumentCache {
	// Default expiration of 5 minutes, purge sweep every 10 minutes
	c := cache.New(5*time.Minute, 10*time.Minute)
	return &DocumentCache{
		cache: c,
	}
}

func (r *DocumentCache) SaveList(docs []*entity.Document) {
	r.cache.Set(listKey, docs, cache.DefaultExpiration)
}

func (r *DocumentCache) GetList() ([]*entity.Document, bool) {
	if x, found := r.cache.Get(listKey); found {
		return x.([]*entity.Document), true
	}
	return nil, false
}

func (r *DocumentCache) Invalidate() {
	r.cache.Delete(listKey)
}
