package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/johnquangdev/comment-analytics/internal/domain/entities"
	repo "github.com/johnquangdev/comment-analytics/internal/domain/repositories"
)

const backfillBatchSize = 200

type analysisRepository struct {
	db *gorm.DB
}

// NewAnalysisRepository creates a new analysis repository backed by GORM
func NewAnalysisRepository(db *gorm.DB) repo.AnalysisRepository {
	return &analysisRepository{db: db}
}

func (r *analysisRepository) GetAnalysis(ctx context.Context, videoID string) (*entities.Analysis, error) {
	var analysis entities.Analysis
	if err := r.db.WithContext(ctx).Where("video_id = ?", videoID).First(&analysis).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &analysis, nil
}

func (r *analysisRepository) CreateAnalysis(ctx context.Context, videoID string, result entities.AnalysisResult) (string, error) {
	analysis := entities.NewAnalysis(videoID, result)
	if err := r.db.WithContext(ctx).Create(analysis).Error; err != nil {
		return "", err
	}
	return analysis.ID, nil
}

func (r *analysisRepository) PatchAnalysis(ctx context.Context, videoID string, patch entities.AnalysisPatch) (int64, error) {
	if patch.IsEmpty() {
		return 0, nil
	}

	result := patch.Result.Normalize()
	updates := make(map[string]interface{}, len(patch.Fields)+1)
	for _, field := range patch.Fields {
		value, err := columnValue(field, result)
		if err != nil {
			return 0, err
		}
		updates[string(field)] = value
	}
	updates["updated_at"] = time.Now()

	res := r.db.WithContext(ctx).
		Model(&entities.Analysis{}).
		Where("video_id = ?", videoID).
		Updates(updates)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *analysisRepository) GetAnalysesByVideoIDs(ctx context.Context, videoIDs []string) ([]*entities.Analysis, error) {
	if len(videoIDs) == 0 {
		return []*entities.Analysis{}, nil
	}
	var analyses []*entities.Analysis
	if err := r.db.WithContext(ctx).
		Where("video_id IN ?", videoIDs).
		Find(&analyses).Error; err != nil {
		return nil, err
	}
	return analyses, nil
}

func (r *analysisRepository) BackfillLegacyDiscussions(ctx context.Context) (int64, error) {
	var converted int64
	var batch []*entities.Analysis

	err := r.db.WithContext(ctx).
		Where("discussions IS NULL AND major_discussions IS NOT NULL").
		FindInBatches(&batch, backfillBatchSize, func(tx *gorm.DB, _ int) error {
			for _, analysis := range batch {
				upgraded := datatypes.NewJSONType(analysis.MajorDiscussions.Data().Upgrade())
				res := tx.Model(&entities.Analysis{}).
					Where("id = ? AND discussions IS NULL", analysis.ID).
					Updates(map[string]interface{}{
						"discussions": upgraded,
						"updated_at":  time.Now(),
					})
				if res.Error != nil {
					return fmt.Errorf("backfill %s: %w", analysis.VideoID, res.Error)
				}
				converted += res.RowsAffected
			}
			return nil
		}).Error

	return converted, err
}

func columnValue(field entities.AnalysisField, result entities.AnalysisResult) (interface{}, error) {
	switch field {
	case entities.FieldSentiments:
		return datatypes.NewJSONType(result.Sentiments), nil
	case entities.FieldHeadline:
		return result.Headline, nil
	case entities.FieldDiscussions:
		return datatypes.NewJSONType(result.Discussions), nil
	case entities.FieldPeople:
		return datatypes.NewJSONType(result.People), nil
	case entities.FieldOtherInsights:
		return datatypes.NewJSONType(result.OtherInsights), nil
	case entities.FieldVideoRequests:
		return datatypes.NewJSONType(result.VideoRequests), nil
	}
	return nil, fmt.Errorf("unknown analysis field %q", field)
}
