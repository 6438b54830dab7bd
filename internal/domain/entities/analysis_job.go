package entities

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisJobStatus represents the status of a queued analysis
type AnalysisJobStatus string

const (
	AnalysisJobStatusPending   AnalysisJobStatus = "pending"   // Waiting for a worker
	AnalysisJobStatusRunning   AnalysisJobStatus = "running"   // Claimed by a worker
	AnalysisJobStatusCompleted AnalysisJobStatus = "completed" // Analysis stored (or nothing changed)
	AnalysisJobStatusSkipped   AnalysisJobStatus = "skipped"   // No corpus to analyse yet
	AnalysisJobStatusFailed    AnalysisJobStatus = "failed"    // Backend failure after retries
	AnalysisJobStatusRetrying  AnalysisJobStatus = "retrying"  // Re-queued after failure
)

// AnalysisJob is a background request to analyse one video
type AnalysisJob struct {
	ID            uuid.UUID         `json:"id"`
	VideoID       string            `json:"video_id"`
	Status        AnalysisJobStatus `json:"status"`
	AnalysisID    *string           `json:"analysis_id,omitempty"`
	ChangedFields []string          `json:"changed_fields,omitempty"`
	RetryCount    int               `json:"retry_count"`
	MaxRetries    int               `json:"max_retries"`
	LastError     *string           `json:"last_error,omitempty"`
	StartedAt     *time.Time        `json:"started_at,omitempty"`
	CompletedAt   *time.Time        `json:"completed_at,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// NewAnalysisJob creates a pending job for a video
func NewAnalysisJob(videoID string, maxRetries int) *AnalysisJob {
	now := time.Now()
	return &AnalysisJob{
		ID:         uuid.New(),
		VideoID:    videoID,
		Status:     AnalysisJobStatusPending,
		MaxRetries: maxRetries,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// IsTerminal reports whether the job will not run again
func (j *AnalysisJob) IsTerminal() bool {
	switch j.Status {
	case AnalysisJobStatusCompleted, AnalysisJobStatusSkipped, AnalysisJobStatusFailed:
		return true
	}
	return false
}

// IsRetryable checks if job can be retried
func (j *AnalysisJob) IsRetryable() bool {
	return j.RetryCount < j.MaxRetries
}

// IsStuck reports whether a running job has not been touched for longer than after
func (j *AnalysisJob) IsStuck(now time.Time, after time.Duration) bool {
	return j.Status == AnalysisJobStatusRunning && j.UpdatedAt.Before(now.Add(-after))
}

// MarkAsRunning marks job as claimed by a worker
func (j *AnalysisJob) MarkAsRunning() {
	now := time.Now()
	j.Status = AnalysisJobStatusRunning
	j.StartedAt = &now
	j.UpdatedAt = now
}

// MarkAsCompleted records the stored analysis and the fields that changed
func (j *AnalysisJob) MarkAsCompleted(analysisID string, changed []string) {
	now := time.Now()
	j.Status = AnalysisJobStatusCompleted
	j.AnalysisID = &analysisID
	j.ChangedFields = changed
	j.LastError = nil
	j.CompletedAt = &now
	j.UpdatedAt = now
}

// MarkAsSkipped marks a job that found no comments to analyse
func (j *AnalysisJob) MarkAsSkipped() {
	now := time.Now()
	j.Status = AnalysisJobStatusSkipped
	j.CompletedAt = &now
	j.UpdatedAt = now
}

// MarkAsFailed marks job as failed with error message
func (j *AnalysisJob) MarkAsFailed(errMsg string) {
	now := time.Now()
	j.Status = AnalysisJobStatusFailed
	j.LastError = &errMsg
	j.CompletedAt = &now
	j.UpdatedAt = now
}

// IncrementRetry increments retry count and marks for retry
func (j *AnalysisJob) IncrementRetry(errMsg string) {
	j.RetryCount++
	j.Status = AnalysisJobStatusRetrying
	j.LastError = &errMsg
	j.UpdatedAt = time.Now()
}
