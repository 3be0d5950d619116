// internal/app/system/progresscache/progresscache.go

// Package progresscache is the fallback store consulted when a check-in's
// progress update cannot reach the backend. It is constructed once in
// bootstrap and injected into the goal-assignment service, keeping the
// last-resort state out of package-level globals so tests can supply their
// own instance.
package progresscache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/instephq/instep/internal/domain/models"
)

// Cache stores the most recent in-memory copy of a user's goal progress,
// keyed by the userGoals composite key. Implementations must be safe for
// concurrent use.
type Cache interface {
	Get(key string) (*models.UserGoalProgress, bool)
	Set(key string, rec *models.UserGoalProgress)
}

// LRU is the default Cache, bounded so a long-lived process cannot grow it
// without limit.
type LRU struct {
	c *lru.Cache[string, *models.UserGoalProgress]
}

// DefaultSize bounds the cache when no size is configured.
const DefaultSize = 512

// NewLRU creates an LRU cache holding up to size records. If size <= 0,
// DefaultSize is used.
func NewLRU(size int) *LRU {
	if size <= 0 {
		size = DefaultSize
	}
	// lru.New only errors on a non-positive size, which is guarded above.
	c, err := lru.New[string, *models.UserGoalProgress](size)
	if err != nil {
		panic("progresscache: " + err.Error())
	}
	return &LRU{c: c}
}

func (l *LRU) Get(key string) (*models.UserGoalProgress, bool) {
	return l.c.Get(key)
}

func (l *LRU) Set(key string, rec *models.UserGoalProgress) {
	l.c.Add(key, rec)
}
