package viewcache

import (
	"context"
	"slices"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is an in-process Cache with a TTL and a max entry count. The
// oldest insert is evicted first; re-setting a key counts as a new insert.
type Memory struct {
	mu    sync.Mutex
	c     *gocache.Cache
	order []string
	max   int
}

// NewMemory creates a Memory cache. Non-positive arguments use the defaults.
func NewMemory(ttl time.Duration, maxEntries int) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Memory{
		c:   gocache.New(ttl, 2*ttl),
		max: maxEntries,
	}
}

// Get returns the live entry for key, or nil.
func (m *Memory) Get(_ context.Context, key string) (*Entry, error) {
	if x, found := m.c.Get(key); found {
		return x.(*Entry), nil
	}
	return nil, nil
}

// Set stores e under key and evicts the oldest entries past the bound.
func (m *Memory) Set(_ context.Context, key string, e *Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Drop keys that expired or were evicted since the last Set.
	m.order = slices.DeleteFunc(m.order, func(k string) bool {
		if k == key {
			return true
		}
		_, ok := m.c.Get(k)
		return !ok
	})

	m.c.Set(key, e, gocache.DefaultExpiration)
	m.order = append(m.order, key)

	for len(m.order) > m.max {
		m.c.Delete(m.order[0])
		m.order = m.order[1:]
	}
	return nil
}

// Len returns the number of unexpired entries. Expired entries still waiting
// for the janitor are not counted.
func (m *Memory) Len() int {
	return len(m.c.Items())
}
