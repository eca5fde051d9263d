package dto

import (
	"time"

	"ai-datavault-be/internal/entity"
)

const (
	JobQueued    = "queued"
	JobRunning   = "running"
	JobCompleted = "completed"
	JobFailed    = "failed"
)

// BatchResult reports one archive ingestion. Counts are per entity type;
// Error is set when the batch aborted mid-way and the counts are partial.
type BatchResult struct {
	ImportId    string                                    `json:"import_id"`
	AccountName string                                    `json:"account_name"`
	Timestamp   time.Time                                 `json:"timestamp"`
	Counts      map[entity.EntityType]entity.EntityCounts `json:"counts"`
	Error       string                                    `json:"error,omitempty"`
}

// ImportJob is the pollable state of an async import.
type ImportJob struct {
	Id          string       `json:"id"`
	Status      string       `json:"status"`
	AccountName string       `json:"account_name"`
	SubmittedAt time.Time    `json:"submitted_at"`
	FinishedAt  *time.Time   `json:"finished_at,omitempty"`
	Result      *BatchResult `json:"result,omitempty"`
	Error       string       `json:"error,omitempty"`
}

// ImportQueuedMessage is the watermill payload for one staged archive.
type ImportQueuedMessage struct {
	JobId       string `json:"job_id"`
	AccountName string `json:"account_name"`
	ArchivePath string `json:"archive_path"`
}

type ImportAcceptedResponse struct {
	JobId string `json:"job_id"`
}

type ImportHistoryResponse struct {
	Total   int64                  `json:"total"`
	Records []*entity.ImportRecord `json:"records"`
}
