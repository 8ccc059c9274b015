package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/pickledex/paddle-scraper/internal/models"
	"github.com/pickledex/paddle-scraper/internal/queue"
	"github.com/pickledex/paddle-scraper/internal/scrape"
)

// StartWorkers launches n workers that drain the task queue until the
// context is cancelled or the queue closes. It returns a WaitGroup the caller
// waits on during shutdown.
func (m *Manager) StartWorkers(ctx context.Context, n int) *sync.WaitGroup {
	if n <= 0 {
		n = 1
	}

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			m.runWorker(ctx, worker)
		}(i)
	}
	return &wg
}

func (m *Manager) runWorker(ctx context.Context, worker int) {
	logger := m.logger.With("worker", worker)
	logger.Info("worker started")

	for {
		task, err := m.queue.Pop(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) ||
				errors.Is(err, queue.ErrQueueClosed) {
				logger.Info("worker stopping")
				return
			}
			logger.Error("pop task", "error", err)
			continue
		}

		m.processTask(ctx, logger, task)
	}
}

func (m *Manager) processTask(ctx context.Context, logger *slog.Logger, task *queue.Task) {
	// first task of a pending job flips it to running; harmless if another
	// worker already did
	if job, err := m.store.GetJob(ctx, task.JobID); err == nil && job.Status == models.JobPending {
		if err := m.store.UpdateJobStatus(ctx, task.JobID, models.JobRunning, ""); err != nil {
			logger.Error("mark job running", "job_id", task.JobID, "error", err)
		}
	}

	counter := "succeeded"
	if _, err := m.service.ScrapeURL(ctx, task.URL, task.Site); err != nil {
		if scrape.IsRejection(err) {
			counter = "rejected"
			logger.Info("page rejected", "job_id", task.JobID, "url", task.URL, "reason", err)
		} else {
			counter = "failed"
			logger.Error("task failed", "job_id", task.JobID, "url", task.URL, "error", err)
		}
	}

	job, err := m.store.IncrementJobProgress(ctx, task.JobID, counter)
	if err != nil {
		logger.Error("record progress", "job_id", task.JobID, "error", err)
		return
	}

	if job.Done() && job.Status != models.JobCompleted {
		if err := m.store.UpdateJobStatus(ctx, job.ID, models.JobCompleted, ""); err != nil {
			logger.Error("mark job completed", "job_id", job.ID, "error", err)
			return
		}
		logger.Info("job completed",
			"job_id", job.ID,
			"succeeded", job.Succeeded,
			"rejected", job.Rejected,
			"failed", job.Failed,
		)
	}
}
