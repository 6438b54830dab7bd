package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/comment-analytics/errors"
	"github.com/johnquangdev/comment-analytics/internal/domain/entities"
	"github.com/johnquangdev/comment-analytics/internal/infrastructure/storage"
	analysisuc "github.com/johnquangdev/comment-analytics/internal/usecase/analysis"
	"github.com/johnquangdev/comment-analytics/pkg/ai"
	"github.com/johnquangdev/comment-analytics/pkg/config"
	pkgvalidator "github.com/johnquangdev/comment-analytics/pkg/validator"
)

type stubService struct {
	analyzeErr  error
	outcome     *analysisuc.ReconcileOutcome
	enqueueErr  error
	job         *entities.AnalysisJob
	analysis    *entities.Analysis
	analysisErr error
	analyzed    []string
	enqueued    []string
}

func (s *stubService) AnalyzeAndStore(ctx context.Context, videoID string) (*analysisuc.ReconcileOutcome, error) {
	s.analyzed = append(s.analyzed, videoID)
	return s.outcome, s.analyzeErr
}

func (s *stubService) EnqueueAnalysis(ctx context.Context, videoID string) (*entities.AnalysisJob, error) {
	s.enqueued = append(s.enqueued, videoID)
	if s.enqueueErr != nil {
		return nil, s.enqueueErr
	}
	return s.job, nil
}

func (s *stubService) GetJob(ctx context.Context, jobID uuid.UUID) (*entities.AnalysisJob, error) {
	if s.job == nil || s.job.ID != jobID {
		return nil, entities.ErrJobNotFound
	}
	return s.job, nil
}

func (s *stubService) GetAnalysis(ctx context.Context, videoID string) (*entities.Analysis, error) {
	return s.analysis, s.analysisErr
}

func (s *stubService) StartWorkerPool(ctx context.Context, workerCount int) error { return nil }

func (s *stubService) StopWorkerPool() error { return nil }

type stubBuilder struct {
	owners     map[string][]string
	summary    *entities.DashboardSummary
	gotIDs     []string
	gotPeriod  int
	gotTrend   int
	buildCalls int
}

func (b *stubBuilder) ChannelsForOwner(ctx context.Context, ownerID string) ([]string, error) {
	return b.owners[ownerID], nil
}

func (b *stubBuilder) BuildSummary(ctx context.Context, channelIDs []string, periodDays, trendCount int) (*entities.DashboardSummary, error) {
	b.buildCalls++
	b.gotIDs, b.gotPeriod, b.gotTrend = channelIDs, periodDays, trendCount
	return b.summary, nil
}

type stubSnapshots struct{}

func (stubSnapshots) ListSnapshots(ctx context.Context, videoID string) ([]storage.Snapshot, error) {
	return []storage.Snapshot{{Key: storage.SnapshotKey(videoID, time.Unix(0, 0)), Size: 42}}, nil
}

func newTestServer(svc *stubService, builder *stubBuilder) *echo.Echo {
	e := echo.New()
	e.Validator = pkgvalidator.New()
	cfg := &config.Config{Dashboard: config.DashboardConfig{DefaultPeriodDays: 30, DefaultTrendCount: 10}}
	router := NewRouter(cfg,
		NewAnalysisController(svc, stubSnapshots{}, nil),
		NewDashboardController(builder, cfg.Dashboard, nil),
	)
	router.Setup(e)
	return e
}

type envelope struct {
	Code    interface{}            `json:"code"`
	Message string                 `json:"message"`
	Info    string                 `json:"info"`
	Data    map[string]interface{} `json:"data"`
}

func do(t *testing.T, e *echo.Echo, method, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return rec, body
}

func TestAnalyze_Queued(t *testing.T) {
	job := entities.NewAnalysisJob("vid123", 3)
	svc := &stubService{job: job}
	e := newTestServer(svc, &stubBuilder{})

	rec, body := do(t, e, http.MethodPost, "/v1/videos/vid123/analyze")

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, []string{"vid123"}, svc.enqueued)
	assert.Empty(t, svc.analyzed)
	assert.Equal(t, job.ID.String(), body.Data["id"])
	assert.Equal(t, "pending", body.Data["status"])
}

func TestAnalyze_Sync(t *testing.T) {
	svc := &stubService{outcome: &analysisuc.ReconcileOutcome{
		RecordID:      "rec-1",
		ChangedFields: []entities.AnalysisField{entities.FieldHeadline},
	}}
	e := newTestServer(svc, &stubBuilder{})

	rec, body := do(t, e, http.MethodPost, "/v1/videos/vid123/analyze?sync=true")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"vid123"}, svc.analyzed)
	assert.Equal(t, "rec-1", body.Data["record_id"])
	assert.Equal(t, []interface{}{"headline"}, body.Data["changed_fields"])
}

func TestAnalyze_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
		msg    string
	}{
		{"invalid id", "/v1/videos/bad%20id/analyze", nil, http.StatusBadRequest, ""},
		{"unknown video", "/v1/videos/v1/analyze", entities.ErrVideoNotFound, http.StatusNotFound, ""},
		{"no corpus", "/v1/videos/v1/analyze", entities.ErrNoCorpus, http.StatusConflict, "No comments fetched yet; queue comments first."},
		{"lock held", "/v1/videos/v1/analyze?sync=1", entities.ErrLockHeld, http.StatusConflict, ""},
		{"extractor", "/v1/videos/v1/analyze?sync=true", &analysisuc.ExtractorError{Extractor: "people", Err: fmt.Errorf("boom")}, http.StatusBadGateway, ""},
		{"quota", "/v1/videos/v1/analyze?sync=true", &analysisuc.ExtractorError{Extractor: "people", Err: &ai.StatusError{StatusCode: 429}}, http.StatusTooManyRequests, ""},
		{"unexpected", "/v1/videos/v1/analyze", fmt.Errorf("redis down"), http.StatusInternalServerError, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{enqueueErr: tt.err, analyzeErr: tt.err}
			e := newTestServer(svc, &stubBuilder{})

			rec, body := do(t, e, http.MethodPost, tt.target)

			assert.Equal(t, tt.status, rec.Code)
			if tt.msg != "" {
				assert.Equal(t, tt.msg, body.Message)
			}
		})
	}
}

func TestGetAnalysis(t *testing.T) {
	e := newTestServer(&stubService{analysisErr: entities.ErrAnalysisMissing}, &stubBuilder{})
	rec, body := do(t, e, http.MethodGet, "/v1/videos/v1/analysis")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No analysis found", body.Message)

	stored := entities.NewAnalysis("v1", entities.AnalysisResult{Headline: "Fans loved it"})
	e = newTestServer(&stubService{analysis: stored}, &stubBuilder{})
	rec, body = do(t, e, http.MethodGet, "/v1/videos/v1/analysis")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Fans loved it", body.Data["headline"])
	assert.Contains(t, body.Data, "discussions")
}

func TestGetJob(t *testing.T) {
	job := entities.NewAnalysisJob("v1", 3)
	e := newTestServer(&stubService{job: job}, &stubBuilder{})

	rec, body := do(t, e, http.MethodGet, "/v1/jobs/"+job.ID.String())
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "v1", body.Data["video_id"])

	rec, _ = do(t, e, http.MethodGet, "/v1/jobs/"+uuid.NewString())
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, e, http.MethodGet, "/v1/jobs/not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListSnapshots(t *testing.T) {
	e := newTestServer(&stubService{}, &stubBuilder{})

	rec, body := do(t, e, http.MethodGet, "/v1/videos/v1/snapshots")

	assert.Equal(t, http.StatusOK, rec.Code)
	snapshots, ok := body.Data["snapshots"].([]interface{})
	require.True(t, ok)
	assert.Len(t, snapshots, 1)
}

func TestDashboard_ClampsAndDefaults(t *testing.T) {
	builder := &stubBuilder{summary: entities.NoData(entities.DetailNoVideosInWindow)}
	e := newTestServer(&stubService{}, builder)

	rec, body := do(t, e, http.MethodGet, "/v1/dashboard?channel_ids=a,%20b,,c&period_days=0&trend_count=-4")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"a", "b", "c"}, builder.gotIDs)
	assert.Equal(t, 1, builder.gotPeriod)
	assert.Equal(t, 1, builder.gotTrend)
	assert.Equal(t, entities.DetailNoVideosInWindow, body.Data["detail"])

	_, _ = do(t, e, http.MethodGet, "/v1/dashboard?channel_ids=a")
	assert.Equal(t, 30, builder.gotPeriod)
	assert.Equal(t, 10, builder.gotTrend)
}

func TestDashboard_OwnerAndValidation(t *testing.T) {
	builder := &stubBuilder{
		owners:  map[string][]string{"u1": {"c1", "c2"}},
		summary: &entities.DashboardSummary{Data: &entities.DashboardData{PeriodDays: 7, Samples: 1}},
	}
	e := newTestServer(&stubService{}, builder)

	rec, body := do(t, e, http.MethodGet, "/v1/dashboard?owner_id=u1&period_days=7")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"c1", "c2"}, builder.gotIDs)
	assert.Equal(t, float64(7), body.Data["period_days"])

	calls := builder.buildCalls
	for _, target := range []string{
		"/v1/dashboard",
		"/v1/dashboard?channel_ids=bad%20id",
		"/v1/dashboard?channel_ids=a&period_days=soon",
	} {
		rec, body = do(t, e, http.MethodGet, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.NotEqual(t, float64(errors.ErrorCode_HTTP_OK), body.Code)
	}
	assert.Equal(t, calls, builder.buildCalls)
}
