package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/johnquangdev/comment-analytics/internal/domain/entities"
	repo "github.com/johnquangdev/comment-analytics/internal/domain/repositories"
)

// VideoRepository handles video and channel data operations
type VideoRepository struct {
	db *gorm.DB
}

// NewVideoRepository creates a new video repository
func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

var _ repo.VideoRepository = (*VideoRepository)(nil)

// GetVideo retrieves a video by ID
func (r *VideoRepository) GetVideo(ctx context.Context, videoID string) (*entities.Video, error) {
	var video entities.Video
	if err := r.db.WithContext(ctx).Where("id = ?", videoID).First(&video).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &video, nil
}

// GetChannel retrieves a channel by ID
func (r *VideoRepository) GetChannel(ctx context.Context, channelID string) (*entities.Channel, error) {
	var channel entities.Channel
	if err := r.db.WithContext(ctx).Where("id = ?", channelID).First(&channel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &channel, nil
}

// GetVideosByChannel lists all videos of a channel, newest first
func (r *VideoRepository) GetVideosByChannel(ctx context.Context, channelID string) ([]*entities.Video, error) {
	var videos []*entities.Video
	if err := r.db.WithContext(ctx).
		Where("channel_id = ?", channelID).
		Order("publish_time DESC").
		Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

// GetVideosByIDs retrieves videos by ID
func (r *VideoRepository) GetVideosByIDs(ctx context.Context, videoIDs []string) ([]*entities.Video, error) {
	if len(videoIDs) == 0 {
		return []*entities.Video{}, nil
	}
	var videos []*entities.Video
	if err := r.db.WithContext(ctx).Where("id IN ?", videoIDs).Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

// GetChannelsByOwner lists the channels of an owner
func (r *VideoRepository) GetChannelsByOwner(ctx context.Context, ownerID string) ([]*entities.Channel, error) {
	var channels []*entities.Channel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&channels).Error; err != nil {
		return nil, err
	}
	return channels, nil
}

// CorpusRepository handles comment corpus reads
type CorpusRepository struct {
	db *gorm.DB
}

// NewCorpusRepository creates a new corpus repository
func NewCorpusRepository(db *gorm.DB) *CorpusRepository {
	return &CorpusRepository{db: db}
}

var _ repo.CorpusRepository = (*CorpusRepository)(nil)

// GetCorpus retrieves the comment corpus of a video
func (r *CorpusRepository) GetCorpus(ctx context.Context, videoID string) (*entities.CommentCorpus, error) {
	var corpus entities.CommentCorpus
	if err := r.db.WithContext(ctx).Where("video_id = ?", videoID).First(&corpus).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &corpus, nil
}
