package models

import (
	"time"
)

// RunStatus is the outcome of one scheduled pipeline cycle
type RunStatus string

const (
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
	RunStatusSkipped   RunStatus = "skipped"
)

// RunSummary holds the per-cycle ingestion counters exposed at the service
// boundary.
type RunSummary struct {
	Fetched    int   `json:"fetched"`
	Parsed     int   `json:"parsed"`
	Upserted   int   `json:"upserted"`
	Updated    int   `json:"updated"`
	Skipped    int   `json:"skipped"`
	Errors     int   `json:"errors"`
	DurationMs int64 `json:"duration_ms"`
}

// IngestRun is the persisted record of one pipeline cycle
type IngestRun struct {
	ID          string     `json:"id" db:"id"`
	Status      RunStatus  `json:"status" db:"status"`
	Summary     RunSummary `json:"summary"`
	Error       string     `json:"error,omitempty" db:"error"`
	StartedAt   time.Time  `json:"started_at" db:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
}
