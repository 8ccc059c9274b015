package scrape

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pickledex/paddle-scraper/internal/document"
	"github.com/pickledex/paddle-scraper/internal/extract"
	"github.com/pickledex/paddle-scraper/internal/models"
	"github.com/pickledex/paddle-scraper/internal/sites"
	"github.com/pickledex/paddle-scraper/internal/storage"
)

type fakeFetcher struct {
	pages map[string]string
}

func (f *fakeFetcher) Fetch(_ context.Context, pageURL string) (*document.Document, error) {
	html, ok := f.pages[pageURL]
	if !ok {
		return nil, fmt.Errorf("status 404")
	}
	return document.Parse(pageURL, html)
}

type fakeStore struct {
	mu    sync.Mutex
	saved map[string]*models.Paddle
}

func newFakeStore() *fakeStore {
	return &fakeStore{saved: make(map[string]*models.Paddle)}
}

func (s *fakeStore) SavePaddle(_ context.Context, p *models.Paddle, _ string) (storage.SaveOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.saved[p.ID]; ok {
		return storage.OutcomeDuplicate, nil
	}
	s.saved[p.ID] = p
	return storage.OutcomeCreated, nil
}

const productHTML = `<html><body>
<h1 class="product-title">Selkirk SLK Era Power Elongated Pickleball Paddle</h1>
<div class="o-layout__item">Paddle Length: 16.5 inches</div>
<div class="o-layout__item">Weight: 7.9-8.3 ounces</div>
</body></html>`

func newTestService(f Fetcher, store Store) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(f, sites.NewRegistry(), extract.NewAssembler(logger), nil, store, logger)
}

func TestScrapeURLFullPipeline(t *testing.T) {
	url := "https://www.pickleballgalaxy.com/selkirk-slk-era-power.html"
	store := newFakeStore()
	svc := newTestService(&fakeFetcher{pages: map[string]string{url: productHTML}}, store)

	res, err := svc.ScrapeURL(context.Background(), url, "")
	require.NoError(t, err)

	assert.Equal(t, "selkirk-slk-era-power", res.Paddle.ID)
	assert.Equal(t, "Pickleball Galaxy", res.Paddle.Metadata.Source)
	assert.Equal(t, models.ShapeElongated, res.Paddle.Specs.Shape)
	assert.Equal(t, storage.OutcomeCreated, res.Outcome)
	require.Contains(t, store.saved, res.Paddle.ID)

	// scraping the same paddle again reports a duplicate
	res, err = svc.ScrapeURL(context.Background(), url, "")
	require.NoError(t, err)
	assert.Equal(t, storage.OutcomeDuplicate, res.Outcome)
}

func TestScrapeURLRejection(t *testing.T) {
	url := "https://www.pickleballgalaxy.com/products"
	html := `<html><body><h1 class="page-title">Products</h1></body></html>`
	svc := newTestService(&fakeFetcher{pages: map[string]string{url: html}}, nil)

	_, err := svc.ScrapeURL(context.Background(), url, "")
	require.Error(t, err)
	assert.True(t, IsRejection(err))
}

func TestScrapeURLFetchError(t *testing.T) {
	svc := newTestService(&fakeFetcher{pages: map[string]string{}}, nil)

	_, err := svc.ScrapeURL(context.Background(), "https://shop.test/missing", "")
	require.Error(t, err)
	assert.False(t, IsRejection(err))
}

func TestScrapeBatchCountsOutcomes(t *testing.T) {
	good := "https://www.pickleballgalaxy.com/selkirk-slk-era-power.html"
	nav := "https://www.pickleballgalaxy.com/paddles"
	missing := "https://www.pickleballgalaxy.com/gone"

	svc := newTestService(&fakeFetcher{pages: map[string]string{
		good: productHTML,
		nav:  `<html><body><h1 class="page-title">Paddles</h1></body></html>`,
	}}, newFakeStore())

	summary := svc.ScrapeBatch(context.Background(), []string{good, nav, missing}, "", 2)

	assert.Len(t, summary.Results, 1)
	assert.Equal(t, 1, summary.Rejected)
	assert.Equal(t, 1, summary.Failed)
}
