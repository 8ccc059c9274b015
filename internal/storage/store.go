// Package storage persists paddle records and scrape jobs in Postgres.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pickledex/paddle-scraper/internal/models"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// SaveOutcome tells the caller whether a save inserted a new record or hit an
// existing one.
type SaveOutcome string

const (
	OutcomeCreated   SaveOutcome = "created"
	OutcomeDuplicate SaveOutcome = "duplicate"
)

type Config struct {
	Host        string
	Port        int
	User        string
	Password    string
	Database    string
	MaxConns    int32
	MinConns    int32
	MaxConnLife time.Duration
	MaxConnIdle time.Duration
}

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, cfg Config) (*Store, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnLifetime = cfg.MaxConnLife
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdle

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// EnsureSchema creates the tables if they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS paddles (
	id          TEXT PRIMARY KEY,
	brand       TEXT NOT NULL,
	model       TEXT NOT NULL,
	source      TEXT NOT NULL DEFAULT '',
	specs       JSONB NOT NULL,
	performance JSONB,
	image_path  TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS scrape_jobs (
	id         TEXT PRIMARY KEY,
	site       TEXT NOT NULL DEFAULT '',
	status     TEXT NOT NULL DEFAULT 'pending',
	total      INT NOT NULL DEFAULT 0,
	succeeded  INT NOT NULL DEFAULT 0,
	rejected   INT NOT NULL DEFAULT 0,
	failed     INT NOT NULL DEFAULT 0,
	error      TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// SavePaddle inserts the record, reporting a duplicate when a paddle with the
// same identity already exists. Existing rows are never overwritten.
func (s *Store) SavePaddle(ctx context.Context, p *models.Paddle, imagePath string) (SaveOutcome, error) {
	specs, err := json.Marshal(p.Specs)
	if err != nil {
		return "", fmt.Errorf("marshal specs: %w", err)
	}

	var perf []byte
	if p.Performance != nil {
		perf, err = json.Marshal(p.Performance)
		if err != nil {
			return "", fmt.Errorf("marshal performance: %w", err)
		}
	}

	tag, err := s.pool.Exec(ctx, `
		INSERT INTO paddles (id, brand, model, source, specs, performance, image_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING`,
		p.ID, p.Metadata.Brand, p.Metadata.Model, p.Metadata.Source, specs, perf, imagePath)
	if err != nil {
		return "", fmt.Errorf("insert paddle: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return OutcomeDuplicate, nil
	}
	return OutcomeCreated, nil
}

func (s *Store) GetPaddle(ctx context.Context, id string) (*models.Paddle, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, brand, model, source, specs, performance
		FROM paddles WHERE id = $1`, id)
	return scanPaddle(row)
}

// ListPaddles returns records ordered by brand and model.
func (s *Store) ListPaddles(ctx context.Context, limit, offset int) ([]*models.Paddle, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, brand, model, source, specs, performance
		FROM paddles ORDER BY brand, model LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list paddles: %w", err)
	}
	defer rows.Close()

	var paddles []*models.Paddle
	for rows.Next() {
		p, err := scanPaddle(rows)
		if err != nil {
			return nil, err
		}
		paddles = append(paddles, p)
	}
	return paddles, rows.Err()
}

func scanPaddle(row pgx.Row) (*models.Paddle, error) {
	var (
		p     models.Paddle
		specs []byte
		perf  []byte
	)
	err := row.Scan(&p.ID, &p.Metadata.Brand, &p.Metadata.Model, &p.Metadata.Source, &specs, &perf)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan paddle: %w", err)
	}

	if err := json.Unmarshal(specs, &p.Specs); err != nil {
		return nil, fmt.Errorf("unmarshal specs: %w", err)
	}
	if len(perf) > 0 {
		p.Performance = &models.Performance{}
		if err := json.Unmarshal(perf, p.Performance); err != nil {
			return nil, fmt.Errorf("unmarshal performance: %w", err)
		}
	}
	return &p, nil
}

func (s *Store) CreateJob(ctx context.Context, job *models.Job) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO scrape_jobs (id, site, status, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)`,
		job.ID, job.Site, job.Status, job.Total, job.CreatedAt)
	if err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

func (s *Store) GetJob(ctx context.Context, id string) (*models.Job, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, site, status, total, succeeded, rejected, failed, error, created_at, updated_at
		FROM scrape_jobs WHERE id = $1`, id)
	return scanJob(row)
}

func (s *Store) ListJobs(ctx context.Context, limit int) ([]*models.Job, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, site, status, total, succeeded, rejected, failed, error, created_at, updated_at
		FROM scrape_jobs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*models.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (s *Store) UpdateJobStatus(ctx context.Context, id string, status models.JobStatus, errMsg string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE scrape_jobs SET status = $2, error = $3, updated_at = now()
		WHERE id = $1`, id, status, errMsg)
	if err != nil {
		return fmt.Errorf("update job status: %w", err)
	}
	return nil
}

// IncrementJobProgress bumps one of the per-job counters and returns the
// refreshed job so the caller can detect completion.
func (s *Store) IncrementJobProgress(ctx context.Context, id, counter string) (*models.Job, error) {
	var column string
	switch counter {
	case "succeeded":
		column = "succeeded"
	case "rejected":
		column = "rejected"
	case "failed":
		column = "failed"
	default:
		return nil, fmt.Errorf("unknown job counter %q", counter)
	}

	row := s.pool.QueryRow(ctx, fmt.Sprintf(`
		UPDATE scrape_jobs SET %s = %s + 1, updated_at = now()
		WHERE id = $1
		RETURNING id, site, status, total, succeeded, rejected, failed, error, created_at, updated_at`,
		column, column), id)
	return scanJob(row)
}

func scanJob(row pgx.Row) (*models.Job, error) {
	var j models.Job
	err := row.Scan(&j.ID, &j.Site, &j.Status, &j.Total, &j.Succeeded, &j.Rejected,
		&j.Failed, &j.Error, &j.CreatedAt, &j.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan job: %w", err)
	}
	return &j, nil
}
