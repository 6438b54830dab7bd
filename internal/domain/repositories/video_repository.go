package repositories

import (
	"context"

	"github.com/johnquangdev/comment-analytics/internal/domain/entities"
)

// VideoRepository defines read access to crawled videos and channels
type VideoRepository interface {
	// GetVideo retrieves a video by its ID, nil when absent
	GetVideo(ctx context.Context, videoID string) (*entities.Video, error)

	// GetChannel retrieves a channel by its ID, nil when absent
	GetChannel(ctx context.Context, channelID string) (*entities.Channel, error)

	// GetVideosByChannel lists every video of a channel
	GetVideosByChannel(ctx context.Context, channelID string) ([]*entities.Video, error)

	// GetVideosByIDs retrieves the given videos, skipping missing ones
	GetVideosByIDs(ctx context.Context, videoIDs []string) ([]*entities.Video, error)

	// GetChannelsByOwner lists channels owned by a user
	GetChannelsByOwner(ctx context.Context, ownerID string) ([]*entities.Channel, error)
}

// CorpusRepository defines read access to fetched comments
type CorpusRepository interface {
	// GetCorpus retrieves the comment corpus of a video, nil when not yet crawled
	GetCorpus(ctx context.Context, videoID string) (*entities.CommentCorpus, error)
}
