package entities

import (
	"time"

	"gorm.io/datatypes"
)

// Channel represents a content channel owning videos
type Channel struct {
	ID        string    `json:"id" gorm:"type:varchar(64);primary_key"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	OwnerID   string    `json:"owner_id" gorm:"type:varchar(64);index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Channel) TableName() string {
	return "channels"
}

// Video represents a crawled video. Only counts are refreshed after crawling.
type Video struct {
	ID           string    `json:"id" gorm:"type:varchar(64);primary_key"`
	ChannelID    string    `json:"channel_id" gorm:"type:varchar(64);not null;index"`
	Title        string    `json:"title" gorm:"type:text;not null"`
	Description  string    `json:"description" gorm:"type:text"`
	PublishTime  time.Time `json:"publish_time" gorm:"type:timestamptz;not null;index"`
	ViewCount    int64     `json:"view_count" gorm:"type:bigint;default:0"`
	LikeCount    *int64    `json:"like_count,omitempty" gorm:"type:bigint"`
	CommentCount *int64    `json:"comment_count,omitempty" gorm:"type:bigint"`
	Duration     string    `json:"duration,omitempty" gorm:"type:varchar(32)"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Video) TableName() string {
	return "videos"
}

// CommentCorpus holds the fetched comment text of one video in fetch order
type CommentCorpus struct {
	ID        string                       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	VideoID   string                       `json:"video_id" gorm:"type:varchar(64);not null;uniqueIndex"`
	Comments  datatypes.JSONType[[]string] `json:"comments" gorm:"type:jsonb;not null"`
	CreatedAt time.Time                    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time                    `json:"updated_at" gorm:"autoUpdateTime"`
}

// Texts returns the comment strings in fetch order
func (c *CommentCorpus) Texts() []string {
	return c.Comments.Data()
}

// TableName specifies the table name for GORM
func (CommentCorpus) TableName() string {
	return "comment_corpora"
}
