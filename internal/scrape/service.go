// Package scrape ties the pipeline together: fetch a page, pick its site
// profile, assemble a record, grab the product image, and persist the result.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pickledex/paddle-scraper/internal/document"
	"github.com/pickledex/paddle-scraper/internal/extract"
	"github.com/pickledex/paddle-scraper/internal/images"
	"github.com/pickledex/paddle-scraper/internal/models"
	"github.com/pickledex/paddle-scraper/internal/sites"
	"github.com/pickledex/paddle-scraper/internal/storage"
)

// ErrRejected is re-exported so callers can classify skipped pages without
// importing the extraction package.
var ErrRejected = extract.ErrRejected

// Fetcher is the page retrieval dependency; satisfied by fetcher.Fetcher.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (*document.Document, error)
}

// Store is the persistence dependency; nil disables persistence.
type Store interface {
	SavePaddle(ctx context.Context, p *models.Paddle, imagePath string) (storage.SaveOutcome, error)
}

// Result carries everything one scrape produced.
type Result struct {
	URL         string               `json:"url"`
	Paddle      *models.Paddle       `json:"paddle"`
	Diagnostics *extract.Diagnostics `json:"diagnostics"`
	ImagePath   string               `json:"image_path,omitempty"`
	Outcome     storage.SaveOutcome  `json:"outcome,omitempty"`
}

type Service struct {
	fetcher   Fetcher
	registry  *sites.Registry
	assembler *extract.Assembler
	images    *images.Downloader
	store     Store
	logger    *slog.Logger
}

// New builds a Service. The image downloader and store may be nil; the
// corresponding steps are skipped.
func New(f Fetcher, reg *sites.Registry, asm *extract.Assembler, dl *images.Downloader, store Store, logger *slog.Logger) *Service {
	return &Service{
		fetcher:   f,
		registry:  reg,
		assembler: asm,
		images:    dl,
		store:     store,
		logger:    logger.With("component", "scrape"),
	}
}

// ScrapeURL runs the full pipeline for one product page. siteName forces a
// profile; empty selects by URL host. A rejection error wraps ErrRejected.
func (s *Service) ScrapeURL(ctx context.Context, pageURL, siteName string) (*Result, error) {
	profile, forced := s.registry.ForName(siteName)
	if !forced {
		profile = s.registry.ForURL(pageURL)
	}

	doc, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	paddle, diags, err := s.assembler.Assemble(doc, profile)
	if err != nil {
		return nil, err
	}

	result := &Result{URL: pageURL, Paddle: paddle, Diagnostics: diags}

	if s.images != nil {
		if imgURL := images.ExtractURL(doc, profile); imgURL != "" {
			path, err := s.images.Download(ctx, imgURL, paddle.Metadata.Brand, paddle.Metadata.Model)
			if err != nil {
				s.logger.Warn("image download failed", "url", imgURL, "error", err)
			} else {
				result.ImagePath = path
			}
		}
	}

	if s.store != nil {
		outcome, err := s.store.SavePaddle(ctx, paddle, result.ImagePath)
		if err != nil {
			return nil, fmt.Errorf("save paddle: %w", err)
		}
		result.Outcome = outcome
	}

	return result, nil
}

// IsRejection reports whether the error marks a skipped page rather than a
// pipeline failure.
func IsRejection(err error) bool {
	return errors.Is(err, extract.ErrRejected)
}
