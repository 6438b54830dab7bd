package analysis

import (
	"time"

	"github.com/johnquangdev/comment-analytics/internal/domain/entities"
)

// JobResponse represents an analysis job in API responses
type JobResponse struct {
	ID            string     `json:"id"`
	VideoID       string     `json:"video_id"`
	Status        string     `json:"status"`
	AnalysisID    *string    `json:"analysis_id,omitempty"`
	ChangedFields []string   `json:"changed_fields,omitempty"`
	RetryCount    int        `json:"retry_count"`
	MaxRetries    int        `json:"max_retries"`
	LastError     *string    `json:"last_error,omitempty"`
	StartedAt     *time.Time `json:"started_at,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// AnalyzeResponse is returned by a synchronous analyze call
type AnalyzeResponse struct {
	VideoID       string   `json:"video_id"`
	RecordID      string   `json:"record_id"`
	Created       bool     `json:"created"`
	ChangedFields []string `json:"changed_fields"`
}

// AnalysisResponse represents a stored analysis
type AnalysisResponse struct {
	ID            string                   `json:"id"`
	VideoID       string                   `json:"video_id"`
	Sentiments    entities.Sentiments      `json:"sentiments"`
	Headline      string                   `json:"headline"`
	Discussions   entities.Discussions     `json:"discussions"`
	People        []entities.PersonInsight `json:"people"`
	OtherInsights []string                 `json:"other_insights"`
	VideoRequests []string                 `json:"video_requests"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

// SnapshotResponse lists archived results of a video
type SnapshotResponse struct {
	VideoID   string         `json:"video_id"`
	Snapshots []SnapshotItem `json:"snapshots"`
}

// SnapshotItem is one archived result object
type SnapshotItem struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}
