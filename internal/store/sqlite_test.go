package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/comparison-cli/internal/model"
)

var (
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*PostgresStore)(nil)
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func sampleRun(section string, at time.Time) *model.Run {
	return &model.Run{
		SectionID:     section,
		PlanID:        "pro",
		CompetitorIDs: []string{"globex", "initech"},
		Scorecards: []model.Scorecard{
			{
				CompetitorID:   "globex",
				CompetitorName: "Globex",
				Input:          model.ScoreInput{IncludedFeatures: 9, PartialFeatures: 1, TotalFeatures: 10, CompetitorPrice: 100, OurPrice: 100, PricingTransparency: 100},
				Result:         model.ScoreResult{Overall: 97, Breakdown: model.ScoreBreakdown{FeatureCoverage: 95, PriceCompetitiveness: 100, ValueRatio: 95, Transparency: 100}},
			},
			{CompetitorID: "initech", CompetitorName: "Initech", Result: model.ScoreResult{Overall: 40}},
		},
		CreatedAt: at,
	}
}

func TestSQLite_SaveAndGet(t *testing.T) {
	t.Parallel()

	s := newTestSQLite(t)
	ctx := context.Background()

	r := sampleRun("sec-1", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, s.SaveRun(ctx, r))
	require.NotEmpty(t, r.ID)

	got, err := s.GetRun(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)
	assert.Equal(t, "sec-1", got.SectionID)
	assert.Equal(t, "pro", got.PlanID)
	assert.Equal(t, []string{"globex", "initech"}, got.CompetitorIDs)
	assert.Equal(t, r.Scorecards, got.Scorecards)
	assert.True(t, r.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, "globex", got.BestScorecard().CompetitorID)
}

func TestSQLite_SaveAssignsDefaults(t *testing.T) {
	t.Parallel()

	s := newTestSQLite(t)
	ctx := context.Background()

	r := &model.Run{SectionID: "sec-1"}
	require.NoError(t, s.SaveRun(ctx, r))
	assert.NotEmpty(t, r.ID)
	assert.False(t, r.CreatedAt.IsZero())

	got, err := s.GetRun(ctx, r.ID)
	require.NoError(t, err)
	assert.Empty(t, got.CompetitorIDs)
	assert.Empty(t, got.Scorecards)
}

func TestSQLite_DuplicateID(t *testing.T) {
	t.Parallel()

	s := newTestSQLite(t)
	ctx := context.Background()

	r := sampleRun("sec-1", time.Now().UTC())
	require.NoError(t, s.SaveRun(ctx, r))
	dup := *r
	require.Error(t, s.SaveRun(ctx, &dup))
}

func TestSQLite_GetRun_NotFound(t *testing.T) {
	t.Parallel()

	s := newTestSQLite(t)
	_, err := s.GetRun(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLite_ListRuns(t *testing.T) {
	t.Parallel()

	s := newTestSQLite(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, section := range []string{"a", "b", "a", "a"} {
		require.NoError(t, s.SaveRun(ctx, sampleRun(section, base.Add(time.Duration(i)*time.Hour))))
	}

	all, err := s.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i := 1; i < len(all); i++ {
		assert.True(t, all[i-1].CreatedAt.After(all[i].CreatedAt), "newest first")
	}

	onlyA, err := s.ListRuns(ctx, RunFilter{SectionID: "a"})
	require.NoError(t, err)
	assert.Len(t, onlyA, 3)

	page, err := s.ListRuns(ctx, RunFilter{SectionID: "a", Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, onlyA[1].ID, page[0].ID)

	none, err := s.ListRuns(ctx, RunFilter{SectionID: "zzz"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestSQLite_MigrateIdempotent(t *testing.T) {
	t.Parallel()

	s := newTestSQLite(t)
	require.NoError(t, s.Migrate(context.Background()))
}

func TestNewSQLite_EmptyDSN(t *testing.T) {
	t.Parallel()

	_, err := NewSQLite("")
	require.Error(t, err)
}

func TestOpen(t *testing.T) {
	t.Parallel()

	s, err := Open(context.Background(), "sqlite", filepath.Join(t.TempDir(), "x.db"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = Open(context.Background(), "mongo", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown driver")
}
