package handler

import (
	"context"
	stdErrors "errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/comment-analytics/errors"
	dto "github.com/johnquangdev/comment-analytics/internal/adapter/dto/analysis"
	"github.com/johnquangdev/comment-analytics/internal/adapter/presenter"
	"github.com/johnquangdev/comment-analytics/internal/domain/entities"
	"github.com/johnquangdev/comment-analytics/internal/infrastructure/storage"
	analysisuc "github.com/johnquangdev/comment-analytics/internal/usecase/analysis"
	"github.com/johnquangdev/comment-analytics/pkg/ai"
)

// SnapshotLister lists archived analysis snapshots
type SnapshotLister interface {
	ListSnapshots(ctx context.Context, videoID string) ([]storage.Snapshot, error)
}

// AnalysisController handles the comment analysis endpoints
type AnalysisController struct {
	svc       analysisuc.Service
	snapshots SnapshotLister
	logger    *zap.Logger
}

// NewAnalysisController creates a new analysis controller; snapshots may be nil
func NewAnalysisController(svc analysisuc.Service, snapshots SnapshotLister, logger *zap.Logger) *AnalysisController {
	return &AnalysisController{svc: svc, snapshots: snapshots, logger: logger}
}

// Analyze queues (or with sync=true runs) comment analysis for a video
// @Summary      Analyze video comments
// @Description  Queues an analysis job for the video. With sync=true the analysis runs inline and the stored record id and changed fields are returned.
// @Tags         Analysis
// @Produce      json
// @Param        id    path      string  true   "Video ID"
// @Param        sync  query     bool    false  "Run inline instead of queueing"
// @Success      200   {object}  analysis.AnalyzeResponse  "Analysis stored"
// @Success      202   {object}  analysis.JobResponse      "Analysis queued"
// @Failure      400   {object}  map[string]interface{}    "Invalid video ID"
// @Failure      404   {object}  map[string]interface{}    "Video not found"
// @Failure      409   {object}  map[string]interface{}    "No comments fetched yet or analysis already running"
// @Failure      502   {object}  map[string]interface{}    "Inference backend failed"
// @Router       /videos/{id}/analyze [post]
func (ac *AnalysisController) Analyze(c echo.Context) error {
	var req dto.VideoParam
	if err := c.Bind(&req); err != nil {
		return HandleError(ac.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(ac.logger, c, errors.ErrInvalidVideoID(req.VideoID))
	}

	ctx := c.Request().Context()

	if parseBool(c.QueryParam("sync")) {
		outcome, err := ac.svc.AnalyzeAndStore(ctx, req.VideoID)
		if err != nil {
			if ac.logger != nil {
				ac.logger.Error("❌ Inline analysis failed",
					zap.String("video_id", req.VideoID),
					zap.Error(err),
				)
			}
			return HandleError(ac.logger, c, toAppError(err, req.VideoID))
		}
		return HandleSuccess(ac.logger, c, presenter.ToAnalyzeResponse(req.VideoID, outcome))
	}

	job, err := ac.svc.EnqueueAnalysis(ctx, req.VideoID)
	if err != nil {
		return HandleError(ac.logger, c, toAppError(err, req.VideoID))
	}
	return HandleAccepted(ac.logger, c, presenter.ToJobResponse(job))
}

// GetAnalysis returns the stored analysis of a video
// @Summary      Get video analysis
// @Description  Returns the stored analysis. Records that only carry legacy major_discussions are served with upgraded discussions.
// @Tags         Analysis
// @Produce      json
// @Param        id   path      string  true  "Video ID"
// @Success      200  {object}  analysis.AnalysisResponse
// @Failure      400  {object}  map[string]interface{}  "Invalid video ID"
// @Failure      404  {object}  map[string]interface{}  "No analysis found"
// @Router       /videos/{id}/analysis [get]
func (ac *AnalysisController) GetAnalysis(c echo.Context) error {
	var req dto.VideoParam
	if err := c.Bind(&req); err != nil {
		return HandleError(ac.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(ac.logger, c, errors.ErrInvalidVideoID(req.VideoID))
	}

	record, err := ac.svc.GetAnalysis(c.Request().Context(), req.VideoID)
	if err != nil {
		return HandleError(ac.logger, c, toAppError(err, req.VideoID))
	}
	return HandleSuccess(ac.logger, c, presenter.ToAnalysisResponse(record))
}

// GetJob returns the status of an analysis job
// @Summary      Get analysis job
// @Tags         Analysis
// @Produce      json
// @Param        id   path      string  true  "Job ID (UUID)"
// @Success      200  {object}  analysis.JobResponse
// @Failure      400  {object}  map[string]interface{}  "Invalid job ID"
// @Failure      404  {object}  map[string]interface{}  "Job not found"
// @Router       /jobs/{id} [get]
func (ac *AnalysisController) GetJob(c echo.Context) error {
	var req dto.JobParam
	if err := c.Bind(&req); err != nil {
		return HandleError(ac.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(ac.logger, c, errors.ErrInvalidArgument("Invalid job ID"))
	}
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return HandleError(ac.logger, c, errors.ErrInvalidArgument("Invalid job ID"))
	}

	job, err := ac.svc.GetJob(c.Request().Context(), jobID)
	if err != nil {
		if stdErrors.Is(err, entities.ErrJobNotFound) {
			return HandleError(ac.logger, c, errors.ErrAnalysisJobNotFound(req.JobID))
		}
		return HandleError(ac.logger, c, errors.ErrQueueFailed("get job", err))
	}
	return HandleSuccess(ac.logger, c, presenter.ToJobResponse(job))
}

// ListSnapshots lists archived analysis snapshots of a video
// @Summary      List analysis snapshots
// @Description  Lists every archived result written for the video, oldest first
// @Tags         Analysis
// @Produce      json
// @Param        id   path      string  true  "Video ID"
// @Success      200  {object}  analysis.SnapshotResponse
// @Failure      400  {object}  map[string]interface{}  "Invalid video ID"
// @Failure      500  {object}  map[string]interface{}  "Storage failure"
// @Router       /videos/{id}/snapshots [get]
func (ac *AnalysisController) ListSnapshots(c echo.Context) error {
	var req dto.VideoParam
	if err := c.Bind(&req); err != nil {
		return HandleError(ac.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(ac.logger, c, errors.ErrInvalidVideoID(req.VideoID))
	}
	if ac.snapshots == nil {
		return HandleError(ac.logger, c, errors.ErrNotFound("Snapshot archive"))
	}

	snapshots, err := ac.snapshots.ListSnapshots(c.Request().Context(), req.VideoID)
	if err != nil {
		return HandleError(ac.logger, c, errors.ErrStorageFailed("list snapshots", err))
	}
	return HandleSuccess(ac.logger, c, presenter.ToSnapshotResponse(req.VideoID, snapshots))
}

// toAppError maps use case errors to API errors
func toAppError(err error, videoID string) error {
	var extractorErr *analysisuc.ExtractorError
	var statusErr *ai.StatusError

	switch {
	case stdErrors.Is(err, entities.ErrVideoNotFound):
		return errors.ErrVideoNotFound(videoID)
	case stdErrors.Is(err, entities.ErrNoCorpus):
		return errors.ErrNoCorpus(videoID)
	case stdErrors.Is(err, entities.ErrLockHeld):
		return errors.ErrAnalysisAlreadyRunning(videoID)
	case stdErrors.Is(err, entities.ErrAnalysisMissing):
		return errors.ErrAnalysisNotFound(videoID)
	case stdErrors.As(err, &statusErr) && statusErr.StatusCode == http.StatusTooManyRequests:
		return errors.ErrAIQuotaExceeded()
	case stdErrors.As(err, &extractorErr):
		return errors.ErrAIAnalysisFailed(err).WithDetail("extractor", extractorErr.Extractor)
	default:
		return errors.ErrInternal(err)
	}
}
