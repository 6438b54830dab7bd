package presenter

import (
	"github.com/johnquangdev/comment-analytics/internal/adapter/dto/analysis"
	"github.com/johnquangdev/comment-analytics/internal/adapter/dto/dashboard"
	"github.com/johnquangdev/comment-analytics/internal/domain/entities"
	"github.com/johnquangdev/comment-analytics/internal/infrastructure/storage"
	analysisuc "github.com/johnquangdev/comment-analytics/internal/usecase/analysis"
)

// ToJobResponse converts an AnalysisJob entity to JobResponse DTO
func ToJobResponse(j *entities.AnalysisJob) *analysis.JobResponse {
	if j == nil {
		return nil
	}
	return &analysis.JobResponse{
		ID:            j.ID.String(),
		VideoID:       j.VideoID,
		Status:        string(j.Status),
		AnalysisID:    j.AnalysisID,
		ChangedFields: j.ChangedFields,
		RetryCount:    j.RetryCount,
		MaxRetries:    j.MaxRetries,
		LastError:     j.LastError,
		StartedAt:     j.StartedAt,
		CompletedAt:   j.CompletedAt,
		CreatedAt:     j.CreatedAt,
		UpdatedAt:     j.UpdatedAt,
	}
}

// ToAnalyzeResponse converts a reconcile outcome
func ToAnalyzeResponse(videoID string, o *analysisuc.ReconcileOutcome) *analysis.AnalyzeResponse {
	if o == nil {
		return nil
	}
	changed := o.ChangedFieldNames()
	if changed == nil {
		changed = []string{}
	}
	return &analysis.AnalyzeResponse{
		VideoID:       videoID,
		RecordID:      o.RecordID,
		Created:       o.Created,
		ChangedFields: changed,
	}
}

// ToAnalysisResponse converts a stored record, applying the legacy discussions fallback
func ToAnalysisResponse(a *entities.Analysis) *analysis.AnalysisResponse {
	if a == nil {
		return nil
	}
	result := a.Result()
	return &analysis.AnalysisResponse{
		ID:            a.ID,
		VideoID:       a.VideoID,
		Sentiments:    result.Sentiments,
		Headline:      result.Headline,
		Discussions:   result.Discussions,
		People:        result.People,
		OtherInsights: result.OtherInsights,
		VideoRequests: result.VideoRequests,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// ToSnapshotResponse converts archived snapshot listings
func ToSnapshotResponse(videoID string, snapshots []storage.Snapshot) *analysis.SnapshotResponse {
	items := make([]analysis.SnapshotItem, 0, len(snapshots))
	for _, s := range snapshots {
		items = append(items, analysis.SnapshotItem{
			Key:          s.Key,
			Size:         s.Size,
			LastModified: s.LastModified,
		})
	}
	return &analysis.SnapshotResponse{VideoID: videoID, Snapshots: items}
}

// ToSummaryResponse flattens a dashboard summary
func ToSummaryResponse(s *entities.DashboardSummary) *dashboard.SummaryResponse {
	if s == nil {
		return nil
	}
	if !s.HasData() {
		return &dashboard.SummaryResponse{Detail: s.Detail}
	}
	return &dashboard.SummaryResponse{DashboardData: s.Data}
}
