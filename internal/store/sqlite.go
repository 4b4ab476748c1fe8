package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/comparison-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	if dsn == "" {
		return nil, eris.New("sqlite: empty dsn")
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS comparison_runs (
	id             TEXT PRIMARY KEY,
	section_id     TEXT NOT NULL,
	plan_id        TEXT NOT NULL DEFAULT '',
	competitor_ids TEXT NOT NULL DEFAULT '[]',
	scorecards     TEXT NOT NULL DEFAULT '[]',
	created_at     DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_comparison_runs_section ON comparison_runs(section_id, created_at DESC);
`

// Migrate creates the schema if it does not exist.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveRun(ctx context.Context, r *model.Run) error {
	competitorIDs, scorecards, err := prepareRun(r)
	if err != nil {
		return eris.Wrap(err, "sqlite: save run")
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO comparison_runs (id, section_id, plan_id, competitor_ids, scorecards, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.SectionID, r.PlanID, string(competitorIDs), string(scorecards), r.CreatedAt,
	)
	return eris.Wrapf(err, "sqlite: insert run %s", r.ID)
}

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*model.Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, section_id, plan_id, competitor_ids, scorecards, created_at FROM comparison_runs WHERE id = ?`,
		id,
	)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "sqlite: run %s", id)
	}
	return r, err
}

func (s *SQLiteStore) ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error) {
	query := `SELECT id, section_id, plan_id, competitor_ids, scorecards, created_at FROM comparison_runs WHERE 1=1`
	var args []any

	if filter.SectionID != "" {
		query += ` AND section_id = ?`
		args = append(args, filter.SectionID)
	}
	query += ` ORDER BY created_at DESC, id LIMIT ?`
	args = append(args, listLimit(filter))

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close() //nolint:errcheck

	runs := []model.Run{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *r)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: list runs iterate")
}

type scannable interface {
	Scan(dest ...any) error
}

func scanRun(row scannable) (*model.Run, error) {
	var r model.Run
	var competitorIDs, scorecards string

	err := row.Scan(&r.ID, &r.SectionID, &r.PlanID, &competitorIDs, &scorecards, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan run")
	}
	if err := decodeRun(&r, []byte(competitorIDs), []byte(scorecards)); err != nil {
		return nil, eris.Wrap(err, "sqlite: decode run")
	}
	r.CreatedAt = r.CreatedAt.UTC()
	return &r, nil
}
