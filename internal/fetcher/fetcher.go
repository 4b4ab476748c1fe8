// Package fetcher loads comparison snapshots from the data API or from disk.
package fetcher

import (
	"context"

	"github.com/sells-group/comparison-cli/internal/model"
)

// Source supplies the snapshot for one comparison section.
type Source interface {
	Fetch(ctx context.Context, req SectionRequest) (*model.ViewModel, error)
}

// SectionRequest identifies a snapshot: which section, for which organization,
// narrowed to an optional plan and competitor set.
type SectionRequest struct {
	SectionID      string
	OrganizationID string
	PlanID         string
	CompetitorIDs  []string
}
