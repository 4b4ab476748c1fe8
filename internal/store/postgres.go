package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/comparison-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses, so tests can swap in pgxmock.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	pgxCfg.MaxConns = 4
	pgxCfg.MinConns = 0
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			pgxCfg.MaxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			pgxCfg.MinConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS comparison_runs (
	id             TEXT PRIMARY KEY,
	section_id     TEXT NOT NULL,
	plan_id        TEXT NOT NULL DEFAULT '',
	competitor_ids JSONB NOT NULL DEFAULT '[]',
	scorecards     JSONB NOT NULL DEFAULT '[]',
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_comparison_runs_section ON comparison_runs(section_id, created_at DESC);
`

// Migrate creates the schema if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

// Close releases the pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveRun(ctx context.Context, r *model.Run) error {
	competitorIDs, scorecards, err := prepareRun(r)
	if err != nil {
		return eris.Wrap(err, "postgres: save run")
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO comparison_runs (id, section_id, plan_id, competitor_ids, scorecards, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		r.ID, r.SectionID, r.PlanID, competitorIDs, scorecards, r.CreatedAt,
	)
	return eris.Wrapf(err, "postgres: insert run %s", r.ID)
}

func (s *PostgresStore) GetRun(ctx context.Context, id string) (*model.Run, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, section_id, plan_id, competitor_ids, scorecards, created_at FROM comparison_runs WHERE id = $1`,
		id,
	)
	r, err := scanPgRun(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "postgres: run %s", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get run %s", id)
	}
	return r, nil
}

func (s *PostgresStore) ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error) {
	query := `SELECT id, section_id, plan_id, competitor_ids, scorecards, created_at FROM comparison_runs WHERE true`
	args := []any{}
	argIdx := 1

	if filter.SectionID != "" {
		query += fmt.Sprintf(` AND section_id = $%d`, argIdx)
		args = append(args, filter.SectionID)
		argIdx++
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, id LIMIT $%d`, argIdx)
	args = append(args, listLimit(filter))
	argIdx++

	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argIdx)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list runs")
	}
	defer rows.Close()

	runs := []model.Run{}
	for rows.Next() {
		r, err := scanPgRun(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: list runs")
		}
		runs = append(runs, *r)
	}
	return runs, eris.Wrap(rows.Err(), "postgres: list runs iterate")
}

func scanPgRun(row pgx.Row) (*model.Run, error) {
	var r model.Run
	var competitorIDs, scorecards []byte
	if err := row.Scan(&r.ID, &r.SectionID, &r.PlanID, &competitorIDs, &scorecards, &r.CreatedAt); err != nil {
		return nil, err
	}
	if err := decodeRun(&r, competitorIDs, scorecards); err != nil {
		return nil, err
	}
	return &r, nil
}
