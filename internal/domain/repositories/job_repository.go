package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/comment-analytics/internal/domain/entities"
)

// JobQueue defines the background queue for analysis jobs
type JobQueue interface {
	// Enqueue adds a job for the video unless an unfinished one exists,
	// in which case the existing job is returned
	Enqueue(ctx context.Context, job *entities.AnalysisJob) (*entities.AnalysisJob, error)

	// Claim pops the next job id, waiting up to timeout; nil when none is ready
	Claim(ctx context.Context, timeout time.Duration) (*entities.AnalysisJob, error)

	// Requeue puts an existing job back on the queue
	Requeue(ctx context.Context, job *entities.AnalysisJob) error

	// Save persists the job state
	Save(ctx context.Context, job *entities.AnalysisJob) error

	// Get retrieves a job by id, nil when unknown
	Get(ctx context.Context, jobID uuid.UUID) (*entities.AnalysisJob, error)

	// ListRunning returns jobs currently marked running
	ListRunning(ctx context.Context) ([]*entities.AnalysisJob, error)
}

// Locker provides a per-key mutual exclusion with expiry
type Locker interface {
	// TryLock acquires key for ttl; false when someone else holds it
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Unlock releases key
	Unlock(ctx context.Context, key string) error
}
