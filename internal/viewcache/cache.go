// Package viewcache caches fetched comparison snapshots keyed by
// (section, plan, competitor set).
package viewcache

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/sells-group/comparison-cli/internal/model"
)

// Defaults for the view cache.
const (
	DefaultTTL        = 5 * time.Minute
	DefaultMaxEntries = 10
)

// Entry is one cached snapshot.
type Entry struct {
	ViewModel *model.ViewModel `json:"view_model"`
	FetchedAt time.Time        `json:"fetched_at"`
}

// Cache stores snapshots. Get returns nil, nil on a miss.
type Cache interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, key string, e *Entry) error
}

// Key builds the cache key. Competitor order does not matter; the input
// slice is not reordered.
func Key(sectionID, planID string, competitorIDs []string) string {
	ids := slices.Clone(competitorIDs)
	slices.Sort(ids)
	return sectionID + "|" + planID + "|" + strings.Join(ids, ",")
}
