// Package jobs runs asynchronous scrape jobs: each API request becomes a job
// whose URLs are queued as tasks and drained by a worker pool.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pickledex/paddle-scraper/internal/models"
	"github.com/pickledex/paddle-scraper/internal/queue"
	"github.com/pickledex/paddle-scraper/internal/scrape"
	"github.com/pickledex/paddle-scraper/internal/storage"
)

type Manager struct {
	store   *storage.Store
	queue   queue.Queue
	service *scrape.Service
	logger  *slog.Logger
}

func NewManager(store *storage.Store, q queue.Queue, svc *scrape.Service, logger *slog.Logger) *Manager {
	return &Manager{
		store:   store,
		queue:   q,
		service: svc,
		logger:  logger.With("component", "jobs"),
	}
}

// CreateJob persists a new pending job and queues one task per URL.
func (m *Manager) CreateJob(ctx context.Context, urls []string, site string) (*models.Job, error) {
	if len(urls) == 0 {
		return nil, fmt.Errorf("job needs at least one url")
	}

	job := &models.Job{
		ID:        uuid.New().String(),
		Site:      site,
		Status:    models.JobPending,
		Total:     len(urls),
		CreatedAt: time.Now().UTC(),
	}
	job.UpdatedAt = job.CreatedAt

	if err := m.store.CreateJob(ctx, job); err != nil {
		return nil, err
	}

	for _, url := range urls {
		task := &queue.Task{
			ID:        uuid.New().String(),
			JobID:     job.ID,
			URL:       url,
			Site:      site,
			CreatedAt: time.Now().UTC(),
		}
		if err := m.queue.Push(ctx, task); err != nil {
			m.markFailed(ctx, job.ID, fmt.Sprintf("enqueue: %v", err))
			return nil, fmt.Errorf("enqueue task: %w", err)
		}
	}

	m.logger.Info("job created", "job_id", job.ID, "urls", len(urls), "site", site)
	return job, nil
}

func (m *Manager) GetJob(ctx context.Context, id string) (*models.Job, error) {
	return m.store.GetJob(ctx, id)
}

func (m *Manager) ListJobs(ctx context.Context, limit int) ([]*models.Job, error) {
	return m.store.ListJobs(ctx, limit)
}

func (m *Manager) markFailed(ctx context.Context, jobID, msg string) {
	if err := m.store.UpdateJobStatus(ctx, jobID, models.JobFailed, msg); err != nil {
		m.logger.Error("mark job failed", "job_id", jobID, "error", err)
	}
}
