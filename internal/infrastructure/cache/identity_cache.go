package cache

import (
	"slices"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/yakumwamba/lpg-delivery-access/internal/domain/entity"
)

// IdentityCache identidades ya resueltas por el backend, indexadas por bearer token.
// El TTL acota cuánto tarda en verse un cambio de permisos hecho en el backend.
type IdentityCache struct {
	lru *expirable.LRU[string, entity.Identity]
}

// NewIdentityCache size<=0 usa 1024; ttl<=0 usa 30 s.
func NewIdentityCache(size int, ttl time.Duration) *IdentityCache {
	if size <= 0 {
		size = 1024
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &IdentityCache{lru: expirable.NewLRU[string, entity.Identity](size, nil, ttl)}
}

// Get copia de la identidad cacheada para token.
func (c *IdentityCache) Get(token string) (entity.Identity, bool) {
	id, ok := c.lru.Get(token)
	if !ok {
		return entity.Identity{}, false
	}
	id.Permissions = slices.Clone(id.Permissions)
	return id, true
}

// Put guarda identity para token.
func (c *IdentityCache) Put(token string, identity entity.Identity) {
	identity.Permissions = slices.Clone(identity.Permissions)
	c.lru.Add(token, identity)
}

// Evict olvida token (cierre de sesión).
func (c *IdentityCache) Evict(token string) {
	c.lru.Remove(token)
}

// Len entradas vivas.
func (c *IdentityCache) Len() int { return c.lru.Len() }
