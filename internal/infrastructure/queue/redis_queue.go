// Package queue stores analysis jobs in Redis and hands them to workers.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/johnquangdev/comment-analytics/internal/domain/entities"
	repo "github.com/johnquangdev/comment-analytics/internal/domain/repositories"
	"github.com/johnquangdev/comment-analytics/internal/infrastructure/cache"
)

const (
	keyJobPrefix   = "analysis:job:"
	keyVideoPrefix = "analysis:job:video:" // video_id -> id of its unfinished job
	keyPending     = "analysis:jobs:pending"
	keyRunning     = "analysis:jobs:running"
	jobTTL         = 7 * 24 * time.Hour
)

// RedisQueue is a JobQueue backed by a Redis list plus one JSON value per job
type RedisQueue struct {
	rc *cache.Client
}

var _ repo.JobQueue = (*RedisQueue)(nil)

// NewRedisQueue creates a queue on the given client
func NewRedisQueue(rc *cache.Client) *RedisQueue {
	return &RedisQueue{rc: rc}
}

func jobKey(id uuid.UUID) string { return keyJobPrefix + id.String() }

func videoKey(videoID string) string { return keyVideoPrefix + videoID }

// Enqueue stores and queues job unless the video already has an unfinished one
func (q *RedisQueue) Enqueue(ctx context.Context, job *entities.AnalysisJob) (*entities.AnalysisJob, error) {
	rdb := q.rc.Raw()

	claimed, err := rdb.SetNX(ctx, videoKey(job.VideoID), job.ID.String(), jobTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("reserve job for video %s: %w", job.VideoID, err)
	}
	if !claimed {
		existing, err := q.existingFor(ctx, job.VideoID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
		// stale marker: the job it pointed at is gone or finished
		if err := rdb.Set(ctx, videoKey(job.VideoID), job.ID.String(), jobTTL).Err(); err != nil {
			return nil, fmt.Errorf("reserve job for video %s: %w", job.VideoID, err)
		}
	}

	data, err := json.Marshal(job)
	if err != nil {
		return nil, err
	}

	pipe := rdb.TxPipeline()
	pipe.Set(ctx, jobKey(job.ID), data, jobTTL)
	pipe.LPush(ctx, keyPending, job.ID.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("enqueue job %s: %w", job.ID, err)
	}
	return job, nil
}

func (q *RedisQueue) existingFor(ctx context.Context, videoID string) (*entities.AnalysisJob, error) {
	raw, err := q.rc.Raw().Get(ctx, videoKey(videoID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, nil
	}
	job, err := q.Get(ctx, id)
	if err != nil || job == nil || job.IsTerminal() {
		return nil, err
	}
	return job, nil
}

// Claim pops the oldest queued job, blocking up to timeout
func (q *RedisQueue) Claim(ctx context.Context, timeout time.Duration) (*entities.AnalysisJob, error) {
	rdb := q.rc.Raw()

	var raw string
	if timeout <= 0 {
		id, err := rdb.RPop(ctx, keyPending).Result()
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		raw = id
	} else {
		res, err := rdb.BRPop(ctx, timeout, keyPending).Result()
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		// BRPOP replies with [list, value]
		raw = res[1]
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("malformed job id %q in queue", raw)
	}
	// a job whose record expired is dropped
	return q.Get(ctx, id)
}

// Requeue saves job and pushes it back onto the queue
func (q *RedisQueue) Requeue(ctx context.Context, job *entities.AnalysisJob) error {
	if err := q.Save(ctx, job); err != nil {
		return err
	}
	return q.rc.Raw().LPush(ctx, keyPending, job.ID.String()).Err()
}

// Save persists job state and maintains the running set and video marker
func (q *RedisQueue) Save(ctx context.Context, job *entities.AnalysisJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}

	pipe := q.rc.Raw().TxPipeline()
	pipe.Set(ctx, jobKey(job.ID), data, jobTTL)
	if job.Status == entities.AnalysisJobStatusRunning {
		pipe.SAdd(ctx, keyRunning, job.ID.String())
	} else {
		pipe.SRem(ctx, keyRunning, job.ID.String())
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save job %s: %w", job.ID, err)
	}

	if job.IsTerminal() {
		return q.releaseVideo(ctx, job)
	}
	return nil
}

// releaseVideo clears the dedupe marker if it still points at job
func (q *RedisQueue) releaseVideo(ctx context.Context, job *entities.AnalysisJob) error {
	rdb := q.rc.Raw()
	current, err := rdb.Get(ctx, videoKey(job.VideoID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return err
	}
	if current != job.ID.String() {
		return nil
	}
	return rdb.Del(ctx, videoKey(job.VideoID)).Err()
}

// Get retrieves a job by id
func (q *RedisQueue) Get(ctx context.Context, jobID uuid.UUID) (*entities.AnalysisJob, error) {
	data, err := q.rc.Raw().Get(ctx, jobKey(jobID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var job entities.AnalysisJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("decode job %s: %w", jobID, err)
	}
	return &job, nil
}

// ListRunning returns every job currently marked running
func (q *RedisQueue) ListRunning(ctx context.Context) ([]*entities.AnalysisJob, error) {
	ids, err := q.rc.Raw().SMembers(ctx, keyRunning).Result()
	if err != nil {
		return nil, err
	}

	jobs := make([]*entities.AnalysisJob, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		job, err := q.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if job == nil || job.Status != entities.AnalysisJobStatusRunning {
			q.rc.Raw().SRem(ctx, keyRunning, raw)
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}
