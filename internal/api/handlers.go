// Package api exposes the scrape service over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pickledex/paddle-scraper/internal/jobs"
	"github.com/pickledex/paddle-scraper/internal/sites"
	"github.com/pickledex/paddle-scraper/internal/storage"
)

type Handlers struct {
	jobs     *jobs.Manager
	store    *storage.Store
	registry *sites.Registry
	logger   *slog.Logger
}

func NewHandlers(jobs *jobs.Manager, store *storage.Store, registry *sites.Registry, logger *slog.Logger) *Handlers {
	return &Handlers{
		jobs:     jobs,
		store:    store,
		registry: registry,
		logger:   logger,
	}
}

// Routes mounts all API endpoints onto a router.
func (h *Handlers) Routes(r chi.Router) {
	r.Post("/scrape", h.CreateScrapeJob)
	r.Get("/jobs", h.ListJobs)
	r.Get("/jobs/{jobID}", h.GetJob)
	r.Get("/paddles", h.ListPaddles)
	r.Get("/paddles/{paddleID}", h.GetPaddle)
	r.Get("/sites", h.ListSites)
}

// CreateScrapeJobRequest asks for one or more product URLs to be scraped.
// Site forces a profile by name; empty selects by URL host.
type CreateScrapeJobRequest struct {
	URLs []string `json:"urls"`
	Site string   `json:"site,omitempty"`
}

type CreateScrapeJobResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
	Total  int    `json:"total"`
}

// CreateScrapeJob accepts URLs, queues them, and returns the job id
// immediately; progress is polled via GET /jobs/{jobID}.
func (h *Handlers) CreateScrapeJob(w http.ResponseWriter, r *http.Request) {
	var req CreateScrapeJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if len(req.URLs) == 0 {
		h.respondError(w, http.StatusBadRequest, "urls is required")
		return
	}
	if req.Site != "" {
		if _, ok := h.registry.ForName(req.Site); !ok {
			h.respondError(w, http.StatusBadRequest, "unknown site: "+req.Site)
			return
		}
	}

	job, err := h.jobs.CreateJob(r.Context(), req.URLs, req.Site)
	if err != nil {
		h.logger.Error("failed to create job", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to create job")
		return
	}

	h.respondJSON(w, http.StatusCreated, CreateScrapeJobResponse{
		JobID:  job.ID,
		Status: string(job.Status),
		Total:  job.Total,
	})
}

func (h *Handlers) GetJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	if jobID == "" {
		h.respondError(w, http.StatusBadRequest, "job ID is required")
		return
	}

	job, err := h.jobs.GetJob(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, "job not found")
			return
		}
		h.logger.Error("failed to get job", "job_id", jobID, "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to get job")
		return
	}

	h.respondJSON(w, http.StatusOK, job)
}

func (h *Handlers) ListJobs(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)

	jobs, err := h.jobs.ListJobs(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list jobs", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to list jobs")
		return
	}

	h.respondJSON(w, http.StatusOK, jobs)
}

func (h *Handlers) GetPaddle(w http.ResponseWriter, r *http.Request) {
	paddleID := chi.URLParam(r, "paddleID")
	if paddleID == "" {
		h.respondError(w, http.StatusBadRequest, "paddle ID is required")
		return
	}

	paddle, err := h.store.GetPaddle(r.Context(), paddleID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, "paddle not found")
			return
		}
		h.logger.Error("failed to get paddle", "id", paddleID, "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to get paddle")
		return
	}

	h.respondJSON(w, http.StatusOK, paddle)
}

func (h *Handlers) ListPaddles(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 100)
	offset := queryInt(r, "offset", 0)

	paddles, err := h.store.ListPaddles(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("failed to list paddles", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to list paddles")
		return
	}

	h.respondJSON(w, http.StatusOK, paddles)
}

func (h *Handlers) ListSites(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string][]string{"sites": h.registry.Names()})
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func (h *Handlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handlers) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
