package cache

import (
	"sync"

	"github.com/svend4/flowershop-orders/internal/domain"
)

// SeenCache tracks order ids whose notification already fired, making the
// worker idempotent under at-least-once redelivery.
type SeenCache struct {
	mu   sync.RWMutex
	seen map[int64]struct{}
}

func NewSeenCache() *SeenCache {
	return &SeenCache{seen: make(map[int64]struct{})}
}

func (c *SeenCache) Contains(orderID int64) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.seen[orderID]
	return ok
}

func (c *SeenCache) Add(orderID int64) {
	c.mu.Lock()
	c.seen[orderID] = struct{}{}
	c.mu.Unlock()
}

var _ domain.SeenSet = (*SeenCache)(nil)
