package models

import "time"

// JobStatus tracks a scrape job through its lifecycle.
type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// Job is one asynchronous scrape request covering one or more URLs.
type Job struct {
	ID        string    `json:"id"`
	Site      string    `json:"site,omitempty"`
	Status    JobStatus `json:"status"`
	Total     int       `json:"total"`
	Succeeded int       `json:"succeeded"`
	Rejected  int       `json:"rejected"`
	Failed    int       `json:"failed"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Done reports whether every URL in the job has been processed.
func (j *Job) Done() bool {
	return j.Succeeded+j.Rejected+j.Failed >= j.Total
}
