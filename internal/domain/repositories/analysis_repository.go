package repositories

import (
	"context"

	"github.com/johnquangdev/comment-analytics/internal/domain/entities"
)

// AnalysisRepository defines persistence operations for analysis records.
// Lookups of missing records return (nil, nil).
type AnalysisRepository interface {
	// GetAnalysis retrieves the stored analysis of a video
	GetAnalysis(ctx context.Context, videoID string) (*entities.Analysis, error)

	// CreateAnalysis stores a new record and returns its identifier
	CreateAnalysis(ctx context.Context, videoID string, result entities.AnalysisResult) (string, error)

	// PatchAnalysis writes only patch.Fields and returns the modified count
	PatchAnalysis(ctx context.Context, videoID string, patch entities.AnalysisPatch) (int64, error)

	// GetAnalysesByVideoIDs retrieves the records for the given videos, skipping missing ones
	GetAnalysesByVideoIDs(ctx context.Context, videoIDs []string) ([]*entities.Analysis, error)

	// BackfillLegacyDiscussions copies major_discussions into discussions where
	// only the legacy field exists and returns the number of records converted
	BackfillLegacyDiscussions(ctx context.Context) (int64, error)
}
