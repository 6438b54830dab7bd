package jobcontext

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"
)

type keyContext string

const keyJob keyContext = "analysis_job"

// JobMetadata describes the job a worker is currently running
type JobMetadata struct {
	JobID        uuid.UUID
	JobType      string
	WorkerID     int
	RetryAttempt int
	MaxRetries   int
	RetryDelay   time.Duration
	StartTime    time.Time
}

const (
	defaultJobTimeout = 5 * time.Minute
	defaultMaxRetries = 3
	defaultRetryDelay = 5 * time.Second
	maxRetryDelay     = time.Minute
)

// Classifier is implemented by errors that know whether a retry can help
type Classifier interface {
	Retryable() bool
}

// JobBegin bounds the job with timeout and attaches its metadata.
// A zero timeout falls back to 5 minutes, a zero maxRetries to 3.
func JobBegin(parentCtx context.Context, jobID uuid.UUID, jobType string, workerID int, timeout time.Duration, maxRetries int) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = defaultJobTimeout
	}
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	ctx, cancel := context.WithTimeout(parentCtx, timeout)
	meta := JobMetadata{
		JobID:      jobID,
		JobType:    jobType,
		WorkerID:   workerID,
		MaxRetries: maxRetries,
		RetryDelay: defaultRetryDelay,
		StartTime:  time.Now(),
	}
	return context.WithValue(ctx, keyJob, meta), cancel
}

// Metadata returns the job metadata carried by ctx.
// Outside a job it returns defaults with WorkerID -1.
func Metadata(ctx context.Context) JobMetadata {
	if meta, ok := ctx.Value(keyJob).(JobMetadata); ok {
		return meta
	}
	return JobMetadata{
		WorkerID:   -1,
		MaxRetries: defaultMaxRetries,
		RetryDelay: defaultRetryDelay,
	}
}

// WithRetryDelay overrides the base delay between attempts
func WithRetryDelay(ctx context.Context, delay time.Duration) context.Context {
	meta := Metadata(ctx)
	if delay > 0 {
		meta.RetryDelay = delay
	}
	return context.WithValue(ctx, keyJob, meta)
}

func withAttempt(ctx context.Context, attempt int) context.Context {
	meta := Metadata(ctx)
	meta.RetryAttempt = attempt
	return context.WithValue(ctx, keyJob, meta)
}

// JobEnd runs jobFunc, recovering panics and retrying retryable errors
// with exponential backoff until MaxRetries attempts are used.
func JobEnd(ctx context.Context, jobFunc func(context.Context) error) error {
	meta := Metadata(ctx)

	var err error
	for attempt := 0; attempt < meta.MaxRetries; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(Backoff(attempt, meta.RetryDelay))
			select {
			case <-ctx.Done():
				timer.Stop()
				return fmt.Errorf("context cancelled during retry: %w", err)
			case <-timer.C:
			}
		}

		err = runOnce(withAttempt(ctx, attempt), jobFunc)
		if err == nil {
			return nil
		}
		if !IsRetryableError(err) {
			return fmt.Errorf("non-retryable error: %w", err)
		}
	}

	return fmt.Errorf("max retries (%d) exceeded: %w", meta.MaxRetries, err)
}

func runOnce(ctx context.Context, jobFunc func(context.Context) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic recovered: %v", p)
		}
	}()

	if ctx.Err() != nil {
		return fmt.Errorf("context cancelled before job execution: %w", ctx.Err())
	}
	return jobFunc(ctx)
}

// Messages of provider SDK errors that do not expose a typed status
var (
	transientMarkers = []string{
		"connection refused", "connection reset", "no such host", "i/o timeout",
		"rate limit", "too many requests", "status 429",
		"status 5", "internal server error", "service unavailable", "bad gateway",
		"overloaded", "try again",
	}
	permanentMarkers = []string{
		"not found", "invalid", "unauthorized", "forbidden", "bad request",
	}
)

// IsRetryableError reports whether err is worth another attempt.
// Typed errors decide first, then the message is matched.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var classified Classifier
	if errors.As(err, &classified) {
		return classified.Retryable()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range permanentMarkers {
		if strings.Contains(msg, marker) {
			return false
		}
	}
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// Backoff returns baseDelay * 2^attempt, capped at one minute
func Backoff(attempt int, baseDelay time.Duration) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	if attempt > 16 {
		return maxRetryDelay
	}

	delay := time.Duration(1<<uint(attempt)) * baseDelay
	if delay > maxRetryDelay {
		delay = maxRetryDelay
	}
	return delay
}
