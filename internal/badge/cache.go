package badge

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/shareboost/rewards-engine/internal/domain"
)

const activeBadgesKey = "active"

// definitionCache is a small expiring cache in front of the badge repository.
// Definitions change rarely (admin channel only), so a short TTL keeps batch
// evaluations from re-reading the full set on every trigger event.
type definitionCache struct {
	lru *expirable.LRU[string, []domain.BadgeDefinition]
}

func newDefinitionCache(ttl time.Duration) *definitionCache {
	return &definitionCache{
		lru: expirable.NewLRU[string, []domain.BadgeDefinition](4, nil, ttl),
	}
}

func (c *definitionCache) GetActive() ([]domain.BadgeDefinition, bool) {
	return c.lru.Get(activeBadgesKey)
}

func (c *definitionCache) SetActive(defs []domain.BadgeDefinition) {
	c.lru.Add(activeBadgesKey, defs)
}

// Invalidate drops the cached definition set, forcing the next evaluation to
// re-read from the repository.
func (c *definitionCache) Invalidate() {
	c.lru.Remove(activeBadgesKey)
}
