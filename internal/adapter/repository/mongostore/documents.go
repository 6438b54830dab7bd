package mongostore

import (
	"time"

	"gorm.io/datatypes"

	"github.com/johnquangdev/comment-analytics/internal/domain/entities"
)

// Collection names
const (
	CollectionChannels = "channels"
	CollectionVideos   = "videos"
	CollectionComments = "comments"
	CollectionAnalyses = "analyses"
)

type channelDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	OwnerID   string    `bson:"owner_id,omitempty"`
	CreatedAt time.Time `bson:"created_at,omitempty"`
	UpdatedAt time.Time `bson:"updated_at,omitempty"`
}

func (d channelDoc) toEntity() *entities.Channel {
	return &entities.Channel{
		ID:        d.ID,
		Name:      d.Name,
		OwnerID:   d.OwnerID,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type videoDoc struct {
	ID           string    `bson:"_id"`
	ChannelID    string    `bson:"channel_id"`
	Name         string    `bson:"name"`
	Description  string    `bson:"description,omitempty"`
	PublishTime  time.Time `bson:"publish_time"`
	ViewCount    int64     `bson:"view_count"`
	LikeCount    *int64    `bson:"like_count,omitempty"`
	CommentCount *int64    `bson:"comment_count,omitempty"`
	Duration     string    `bson:"duration,omitempty"`
	CreatedAt    time.Time `bson:"created_at,omitempty"`
	UpdatedAt    time.Time `bson:"updated_at,omitempty"`
}

func (d videoDoc) toEntity() *entities.Video {
	return &entities.Video{
		ID:           d.ID,
		ChannelID:    d.ChannelID,
		Title:        d.Name,
		Description:  d.Description,
		PublishTime:  d.PublishTime,
		ViewCount:    d.ViewCount,
		LikeCount:    d.LikeCount,
		CommentCount: d.CommentCount,
		Duration:     d.Duration,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type commentsDoc struct {
	ID        string    `bson:"_id"`
	VideoID   string    `bson:"video_id"`
	Comments  []string  `bson:"comments"`
	CreatedAt time.Time `bson:"created_at,omitempty"`
	UpdatedAt time.Time `bson:"updated_at,omitempty"`
}

func (d commentsDoc) toEntity() *entities.CommentCorpus {
	return &entities.CommentCorpus{
		ID:        d.ID,
		VideoID:   d.VideoID,
		Comments:  datatypes.NewJSONType(d.Comments),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// analysisBody mirrors the nested "analysis" sub-document
type analysisBody struct {
	Sentiments       entities.Sentiments        `bson:"sentiments"`
	Headline         string                     `bson:"headline"`
	Discussions      *entities.Discussions      `bson:"discussions,omitempty"`
	MajorDiscussions entities.LegacyDiscussions `bson:"major_discussions,omitempty"`
	People           []entities.PersonInsight   `bson:"people"`
	OtherInsights    []string                   `bson:"other_insights"`
	VideoRequests    []string                   `bson:"video_requests"`
}

type analysisDoc struct {
	ID        string       `bson:"_id"`
	VideoID   string       `bson:"video_id"`
	Analysis  analysisBody `bson:"analysis"`
	CreatedAt time.Time    `bson:"created_at"`
	UpdatedAt time.Time    `bson:"updated_at"`
}

func newAnalysisDoc(a *entities.Analysis) analysisDoc {
	result := a.Result()
	return analysisDoc{
		ID:      a.ID,
		VideoID: a.VideoID,
		Analysis: analysisBody{
			Sentiments:    result.Sentiments,
			Headline:      result.Headline,
			Discussions:   &result.Discussions,
			People:        result.People,
			OtherInsights: result.OtherInsights,
			VideoRequests: result.VideoRequests,
		},
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func (d analysisDoc) toEntity() *entities.Analysis {
	a := &entities.Analysis{
		ID:            d.ID,
		VideoID:       d.VideoID,
		Sentiments:    datatypes.NewJSONType(d.Analysis.Sentiments),
		Headline:      d.Analysis.Headline,
		People:        datatypes.NewJSONType(d.Analysis.People),
		OtherInsights: datatypes.NewJSONType(d.Analysis.OtherInsights),
		VideoRequests: datatypes.NewJSONType(d.Analysis.VideoRequests),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
	if d.Analysis.Discussions != nil {
		discussions := datatypes.NewJSONType(*d.Analysis.Discussions)
		a.Discussions = &discussions
	}
	if d.Analysis.MajorDiscussions != nil {
		legacy := datatypes.NewJSONType(d.Analysis.MajorDiscussions)
		a.MajorDiscussions = &legacy
	}
	return a
}
