package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return &PostgresStore{pool: mock}, mock
}

var runColumns = []string{"id", "section_id", "plan_id", "competitor_ids", "scorecards", "created_at"}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS comparison_runs`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveRun(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	r := sampleRun("sec-1", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	mock.ExpectExec(`INSERT INTO comparison_runs`).
		WithArgs(pgxmock.AnyArg(), "sec-1", "pro", pgxmock.AnyArg(), pgxmock.AnyArg(), r.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, s.SaveRun(context.Background(), r))
	assert.NotEmpty(t, r.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveRun_Error(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO comparison_runs`).
		WillReturnError(errors.New("connection refused"))

	err := s.SaveRun(context.Background(), sampleRun("sec-1", time.Now()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres: insert run")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetRun(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	want := sampleRun("sec-1", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	ids, _ := json.Marshal(want.CompetitorIDs)
	cards, _ := json.Marshal(want.Scorecards)

	mock.ExpectQuery(`SELECT id, section_id, plan_id, competitor_ids, scorecards, created_at FROM comparison_runs WHERE id = \$1`).
		WithArgs("run-1").
		WillReturnRows(pgxmock.NewRows(runColumns).AddRow("run-1", "sec-1", "pro", ids, cards, want.CreatedAt))

	got, err := s.GetRun(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, "run-1", got.ID)
	assert.Equal(t, want.CompetitorIDs, got.CompetitorIDs)
	assert.Equal(t, want.Scorecards, got.Scorecards)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetRun_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`FROM comparison_runs WHERE id = \$1`).
		WithArgs("nonexistent-run").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetRun(context.Background(), "nonexistent-run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListRuns(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	at := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`WHERE true AND section_id = \$1 ORDER BY created_at DESC, id LIMIT \$2 OFFSET \$3`).
		WithArgs("sec-1", 5, 10).
		WillReturnRows(pgxmock.NewRows(runColumns).
			AddRow("run-2", "sec-1", "pro", []byte(`["a"]`), []byte(`[]`), at.Add(time.Hour)).
			AddRow("run-1", "sec-1", "pro", []byte(`[]`), []byte(`[]`), at))

	runs, err := s.ListRuns(context.Background(), RunFilter{SectionID: "sec-1", Limit: 5, Offset: 10})
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-2", runs[0].ID)
	assert.Equal(t, []string{"a"}, runs[0].CompetitorIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListRuns_DefaultLimit(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`WHERE true ORDER BY created_at DESC, id LIMIT \$1$`).
		WithArgs(defaultListLimit).
		WillReturnRows(pgxmock.NewRows(runColumns))

	runs, err := s.ListRuns(context.Background(), RunFilter{})
	require.NoError(t, err)
	assert.Empty(t, runs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListRuns_BadJSON(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`FROM comparison_runs`).
		WithArgs(defaultListLimit).
		WillReturnRows(pgxmock.NewRows(runColumns).AddRow("run-1", "s", "", []byte(`{`), []byte(`[]`), time.Now()))

	_, err := s.ListRuns(context.Background(), RunFilter{})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
