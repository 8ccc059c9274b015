package scrape

import (
	"context"
	"sync"
)

// BatchSummary tallies one batch run.
type BatchSummary struct {
	Results  []*Result
	Rejected int
	Failed   int
}

// ScrapeBatch runs the pipeline over many URLs with a bounded worker pool.
// Rejections and per-URL failures are counted, not propagated; only context
// cancellation aborts the batch early.
func (s *Service) ScrapeBatch(ctx context.Context, urls []string, siteName string, concurrency int) *BatchSummary {
	if concurrency <= 0 {
		concurrency = 1
	}

	type outcome struct {
		result   *Result
		rejected bool
		failed   bool
	}

	tasks := make(chan string)
	outcomes := make(chan outcome)

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for url := range tasks {
				res, err := s.ScrapeURL(ctx, url, siteName)
				switch {
				case err == nil:
					outcomes <- outcome{result: res}
				case IsRejection(err):
					s.logger.Info("page rejected", "url", url, "reason", err)
					outcomes <- outcome{rejected: true}
				default:
					s.logger.Error("scrape failed", "url", url, "error", err)
					outcomes <- outcome{failed: true}
				}
			}
		}()
	}

	go func() {
		defer close(tasks)
		for _, url := range urls {
			select {
			case <-ctx.Done():
				return
			case tasks <- url:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	summary := &BatchSummary{}
	for o := range outcomes {
		switch {
		case o.result != nil:
			summary.Results = append(summary.Results, o.result)
		case o.rejected:
			summary.Rejected++
		case o.failed:
			summary.Failed++
		}
	}
	return summary
}
