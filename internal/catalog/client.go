// Package catalog uploads assembled records to the downstream paddle catalog
// API.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/pickledex/paddle-scraper/internal/models"
)

// Outcome is the catalog's verdict on one upload.
type Outcome string

const (
	OutcomeCreated   Outcome = "created"
	OutcomeDuplicate Outcome = "duplicate"
)

type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  logger.With("component", "catalog"),
	}
}

// Upload posts one record. A 409 from the catalog means the paddle already
// exists and is reported as a duplicate, not an error.
func (c *Client) Upload(ctx context.Context, p *models.Paddle) (Outcome, error) {
	body, err := json.Marshal(p.ImportPayload())
	if err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/paddles", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", p.ID, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
		return OutcomeCreated, nil
	case http.StatusConflict:
		io.Copy(io.Discard, resp.Body)
		return OutcomeDuplicate, nil
	default:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("upload %s: status %d: %s", p.ID, resp.StatusCode, msg)
	}
}

// UploadAll pushes each record independently: one failure is logged and
// counted without stopping the rest. Returns created and duplicate counts.
func (c *Client) UploadAll(ctx context.Context, paddles []*models.Paddle) (created, duplicates int, err error) {
	var failures int

	for _, p := range paddles {
		outcome, uploadErr := c.Upload(ctx, p)
		if uploadErr != nil {
			failures++
			c.logger.Error("upload failed", "id", p.ID, "error", uploadErr)
			continue
		}

		switch outcome {
		case OutcomeCreated:
			created++
			c.logger.Info("record uploaded", "id", p.ID)
		case OutcomeDuplicate:
			duplicates++
			c.logger.Info("record already in catalog", "id", p.ID)
		}

		select {
		case <-ctx.Done():
			return created, duplicates, ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}

	if failures > 0 {
		return created, duplicates, fmt.Errorf("%d of %d uploads failed", failures, len(paddles))
	}
	return created, duplicates, nil
}
