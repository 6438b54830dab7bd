package analysis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/comment-analytics/internal/domain/entities"
	"github.com/johnquangdev/comment-analytics/internal/domain/repositories"
	"github.com/johnquangdev/comment-analytics/pkg/config"
	"github.com/johnquangdev/comment-analytics/pkg/jobcontext"
)

// JobTypeCommentAnalysis tags analysis jobs in the job context
const JobTypeCommentAnalysis = "comment_analysis"

// Archiver keeps a copy of every written result
type Archiver interface {
	ArchiveResult(ctx context.Context, videoID string, result entities.AnalysisResult) (string, error)
}

// Service defines the analysis use cases
type Service interface {
	AnalyzeAndStore(ctx context.Context, videoID string) (*ReconcileOutcome, error)
	EnqueueAnalysis(ctx context.Context, videoID string) (*entities.AnalysisJob, error)
	GetJob(ctx context.Context, jobID uuid.UUID) (*entities.AnalysisJob, error)
	GetAnalysis(ctx context.Context, videoID string) (*entities.Analysis, error)
	StartWorkerPool(ctx context.Context, workerCount int) error
	StopWorkerPool() error
}

type analysisService struct {
	orchestrator        *Orchestrator
	reconciler          *Reconciler
	videos              repositories.VideoRepository
	corpora             repositories.CorpusRepository
	analyses            repositories.AnalysisRepository
	queue               repositories.JobQueue
	locker              repositories.Locker
	archiver            Archiver
	cfg                 config.WorkerConfig
	logger              *zap.Logger
	workerStopChan      chan struct{}
	workerWg            sync.WaitGroup
	isWorkerPoolRunning bool
	workerMutex         sync.Mutex
}

// Dependencies groups the collaborators of the analysis service.
// Locker and Archiver are optional.
type Dependencies struct {
	Orchestrator *Orchestrator
	Videos       repositories.VideoRepository
	Corpora      repositories.CorpusRepository
	Analyses     repositories.AnalysisRepository
	Queue        repositories.JobQueue
	Locker       repositories.Locker
	Archiver     Archiver
}

// NewAnalysisService constructs the analysis service
func NewAnalysisService(deps Dependencies, cfg config.WorkerConfig, logger *zap.Logger) Service {
	return &analysisService{
		orchestrator:   deps.Orchestrator,
		reconciler:     NewReconciler(deps.Analyses, logger),
		videos:         deps.Videos,
		corpora:        deps.Corpora,
		analyses:       deps.Analyses,
		queue:          deps.Queue,
		locker:         deps.Locker,
		archiver:       deps.Archiver,
		cfg:            cfg,
		logger:         logger,
		workerStopChan: make(chan struct{}),
	}
}

func videoLockKey(videoID string) string {
	return "analysis:lock:" + videoID
}

// AnalyzeAndStore runs the pipeline for one video and reconciles the result.
// Runs for the same video are serialized through the locker.
func (s *analysisService) AnalyzeAndStore(ctx context.Context, videoID string) (*ReconcileOutcome, error) {
	if s.locker != nil {
		key := videoLockKey(videoID)
		acquired, err := s.locker.TryLock(ctx, key, s.cfg.LockTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to lock video: %w", err)
		}
		if !acquired {
			return nil, entities.ErrLockHeld
		}
		defer func() {
			if err := s.locker.Unlock(context.WithoutCancel(ctx), key); err != nil && s.logger != nil {
				s.logger.Warn("⚠️ Failed to release video lock",
					zap.String("video_id", videoID),
					zap.Error(err),
				)
			}
		}()
	}

	result, err := s.orchestrator.RunAnalysis(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, entities.ErrNoCorpus
	}

	outcome, err := s.reconciler.Reconcile(ctx, videoID, *result)
	if err != nil {
		return nil, err
	}

	if outcome.Written() && s.archiver != nil {
		key, err := s.archiver.ArchiveResult(ctx, videoID, *result)
		if s.logger != nil {
			if err != nil {
				s.logger.Warn("⚠️ Failed to archive analysis snapshot",
					zap.String("video_id", videoID),
					zap.Error(err),
				)
			} else {
				s.logger.Info("📦 Analysis snapshot archived",
					zap.String("video_id", videoID),
					zap.String("object_key", key),
				)
			}
		}
	}

	return outcome, nil
}

// EnqueueAnalysis queues a background run; an unfinished job for the same
// video is returned instead of creating a new one
func (s *analysisService) EnqueueAnalysis(ctx context.Context, videoID string) (*entities.AnalysisJob, error) {
	video, err := s.videos.GetVideo(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to get video: %w", err)
	}
	if video == nil {
		return nil, entities.ErrVideoNotFound
	}

	corpus, err := s.corpora.GetCorpus(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	if corpus == nil {
		return nil, entities.ErrNoCorpus
	}

	job, err := s.queue.Enqueue(ctx, entities.NewAnalysisJob(videoID, s.cfg.MaxRetries))
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue analysis: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("📥 Analysis job queued",
			zap.String("job_id", job.ID.String()),
			zap.String("video_id", videoID),
			zap.String("status", string(job.Status)),
		)
	}
	return job, nil
}

func (s *analysisService) GetJob(ctx context.Context, jobID uuid.UUID) (*entities.AnalysisJob, error) {
	job, err := s.queue.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, entities.ErrJobNotFound
	}
	return job, nil
}

func (s *analysisService) GetAnalysis(ctx context.Context, videoID string) (*entities.Analysis, error) {
	analysis, err := s.analyses.GetAnalysis(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if analysis == nil {
		return nil, entities.ErrAnalysisMissing
	}
	return analysis, nil
}

// StartWorkerPool starts background workers that drain the job queue
func (s *analysisService) StartWorkerPool(ctx context.Context, workerCount int) error {
	s.workerMutex.Lock()
	defer s.workerMutex.Unlock()

	if s.isWorkerPoolRunning {
		return fmt.Errorf("worker pool already running")
	}
	if workerCount < 1 {
		workerCount = 1
	}

	s.isWorkerPoolRunning = true
	s.workerStopChan = make(chan struct{})

	if s.logger != nil {
		s.logger.Info("🚀 Starting analysis worker pool",
			zap.Int("worker_count", workerCount),
		)
	}

	for i := 0; i < workerCount; i++ {
		s.workerWg.Add(1)
		go s.analysisWorker(ctx, i)
	}

	s.workerWg.Add(1)
	go s.recoverStuckJobs(ctx)

	return nil
}

// StopWorkerPool gracefully stops all worker goroutines
func (s *analysisService) StopWorkerPool() error {
	s.workerMutex.Lock()
	defer s.workerMutex.Unlock()

	if !s.isWorkerPoolRunning {
		return fmt.Errorf("worker pool not running")
	}

	if s.logger != nil {
		s.logger.Info("🛑 Stopping analysis worker pool...")
	}

	close(s.workerStopChan)
	s.workerWg.Wait()
	s.isWorkerPoolRunning = false

	if s.logger != nil {
		s.logger.Info("✅ Analysis worker pool stopped")
	}
	return nil
}

// wait pauses for d; false when the pool is stopping
func (s *analysisService) wait(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-s.workerStopChan:
		return false
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// analysisWorker claims queued jobs and runs them one at a time
func (s *analysisService) analysisWorker(parentCtx context.Context, workerID int) {
	defer s.workerWg.Done()

	if s.logger != nil {
		s.logger.Info("👷 Worker started", zap.Int("worker_id", workerID))
	}

	for {
		select {
		case <-s.workerStopChan:
			if s.logger != nil {
				s.logger.Info("👷 Worker stopping", zap.Int("worker_id", workerID))
			}
			return
		case <-parentCtx.Done():
			return
		default:
		}

		job, err := s.queue.Claim(parentCtx, s.cfg.PollInterval)
		if err != nil {
			if s.logger != nil && parentCtx.Err() == nil {
				s.logger.Error("❌ Failed to claim job",
					zap.Int("worker_id", workerID),
					zap.Error(err),
				)
			}
			s.wait(parentCtx, s.cfg.PollInterval)
			continue
		}
		if job == nil {
			continue
		}

		s.processJob(parentCtx, workerID, job)
	}
}

func (s *analysisService) processJob(parentCtx context.Context, workerID int, job *entities.AnalysisJob) {
	saveCtx := context.WithoutCancel(parentCtx)

	job.MarkAsRunning()
	if err := s.queue.Save(saveCtx, job); err != nil && s.logger != nil {
		s.logger.Error("❌ Failed to mark job running",
			zap.String("job_id", job.ID.String()),
			zap.Error(err),
		)
	}

	if s.logger != nil {
		s.logger.Info("👷 Worker claimed job",
			zap.Int("worker_id", workerID),
			zap.String("job_id", job.ID.String()),
			zap.String("video_id", job.VideoID),
			zap.Int("retry_count", job.RetryCount),
		)
	}

	jobCtx, cancel := jobcontext.JobBegin(parentCtx, job.ID, JobTypeCommentAnalysis, workerID, s.cfg.JobTimeout, job.MaxRetries)
	var outcome *ReconcileOutcome
	err := jobcontext.JobEnd(jobCtx, func(ctx context.Context) error {
		o, err := s.AnalyzeAndStore(ctx, job.VideoID)
		if err != nil {
			return err
		}
		outcome = o
		return nil
	})
	cancel()

	switch {
	case err == nil:
		job.MarkAsCompleted(outcome.RecordID, outcome.ChangedFieldNames())
		if s.logger != nil {
			s.logger.Info("✅ Job completed successfully",
				zap.String("job_id", job.ID.String()),
				zap.Strings("changed_fields", job.ChangedFields),
			)
		}

	case errors.Is(err, entities.ErrNoCorpus):
		job.MarkAsSkipped()
		if s.logger != nil {
			s.logger.Info("⏭️ No comments to analyse, job skipped",
				zap.String("job_id", job.ID.String()),
			)
		}

	case errors.Is(err, entities.ErrLockHeld):
		if s.logger != nil {
			s.logger.Info("🔒 Video locked by another run, requeueing",
				zap.String("job_id", job.ID.String()),
				zap.String("video_id", job.VideoID),
			)
		}
		job.Status = entities.AnalysisJobStatusPending
		s.wait(parentCtx, s.cfg.PollInterval)
		if err := s.queue.Requeue(saveCtx, job); err != nil && s.logger != nil {
			s.logger.Error("❌ Failed to requeue job",
				zap.String("job_id", job.ID.String()),
				zap.Error(err),
			)
		}
		return

	default:
		job.MarkAsFailed(err.Error())
		if s.logger != nil {
			s.logger.Error("❌ Job failed after retries",
				zap.String("job_id", job.ID.String()),
				zap.String("video_id", job.VideoID),
				zap.Error(err),
			)
		}
	}

	if err := s.queue.Save(saveCtx, job); err != nil && s.logger != nil {
		s.logger.Error("❌ Failed to save job",
			zap.String("job_id", job.ID.String()),
			zap.Error(err),
		)
	}
}

// recoverStuckJobs requeues jobs left running by a crashed worker
func (s *analysisService) recoverStuckJobs(parentCtx context.Context) {
	defer s.workerWg.Done()

	interval := s.cfg.StuckAfter / 3
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.workerStopChan:
			return
		case <-parentCtx.Done():
			return
		case <-ticker.C:
			s.requeueStuckJobs(parentCtx, time.Now())
		}
	}
}

func (s *analysisService) requeueStuckJobs(ctx context.Context, now time.Time) {
	jobs, err := s.queue.ListRunning(ctx)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("❌ Failed to list running jobs", zap.Error(err))
		}
		return
	}

	for _, job := range jobs {
		if !job.IsStuck(now, s.cfg.StuckAfter) {
			continue
		}

		if s.logger != nil {
			s.logger.Warn("🧹 Recovering stuck job",
				zap.String("job_id", job.ID.String()),
				zap.String("video_id", job.VideoID),
				zap.Time("updated_at", job.UpdatedAt),
			)
		}

		if job.IsRetryable() {
			job.IncrementRetry("job stuck in running state")
			err = s.queue.Requeue(ctx, job)
		} else {
			job.MarkAsFailed("job stuck in running state, retries exhausted")
			err = s.queue.Save(ctx, job)
		}
		if err != nil && s.logger != nil {
			s.logger.Error("❌ Failed to recover stuck job",
				zap.String("job_id", job.ID.String()),
				zap.Error(err),
			)
		}
	}
}
