// Package store persists scoring runs.
package store

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/sells-group/comparison-cli/internal/model"
)

// defaultListLimit bounds ListRuns when the filter sets no limit.
const defaultListLimit = 100

// ErrNotFound is returned by GetRun when no run has the given id.
var ErrNotFound = eris.New("run not found")

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	SectionID string `json:"section_id,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	Offset    int    `json:"offset,omitempty"`
}

// Store defines the persistence interface for scoring runs.
type Store interface {
	// SaveRun inserts r, assigning an ID and CreatedAt when unset.
	SaveRun(ctx context.Context, r *model.Run) error
	GetRun(ctx context.Context, id string) (*model.Run, error)
	// ListRuns returns runs newest first.
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Open picks a backend by driver name: "sqlite" (the default) or "postgres".
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch strings.ToLower(driver) {
	case "", "sqlite":
		return NewSQLite(dsn)
	case "postgres", "postgresql", "pgx":
		return NewPostgres(ctx, dsn, nil)
	default:
		return nil, eris.Errorf("store: unknown driver %q", driver)
	}
}

// prepareRun fills generated fields and encodes the JSON columns.
func prepareRun(r *model.Run) (competitorIDs, scorecards []byte, err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	if r.CompetitorIDs == nil {
		r.CompetitorIDs = []string{}
	}
	if r.Scorecards == nil {
		r.Scorecards = []model.Scorecard{}
	}

	competitorIDs, err = json.Marshal(r.CompetitorIDs)
	if err != nil {
		return nil, nil, eris.Wrap(err, "marshal competitor ids")
	}
	scorecards, err = json.Marshal(r.Scorecards)
	if err != nil {
		return nil, nil, eris.Wrap(err, "marshal scorecards")
	}
	return competitorIDs, scorecards, nil
}

func decodeRun(r *model.Run, competitorIDs, scorecards []byte) error {
	if err := json.Unmarshal(competitorIDs, &r.CompetitorIDs); err != nil {
		return eris.Wrap(err, "unmarshal competitor ids")
	}
	if err := json.Unmarshal(scorecards, &r.Scorecards); err != nil {
		return eris.Wrap(err, "unmarshal scorecards")
	}
	return nil
}

func listLimit(f RunFilter) int {
	if f.Limit <= 0 {
		return defaultListLimit
	}
	return f.Limit
}
