package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Sentiment categories shared by sentiments, discussions and trends
const (
	CategoryVideo   = "video"
	CategoryCreator = "creator"
	CategoryTopic   = "topic"
)

// Extraction limits
const (
	MaxDiscussionsPerCategory = 5
	MaxPeople                 = 6
	MaxRemarksPerPerson       = 3
)

// DefaultHeadline is stored when the headline extractor yields nothing usable
const DefaultHeadline = "None"

// Sentiments holds one breakdown per category
type Sentiments struct {
	Video   SentimentBreakdown `json:"video" bson:"video"`
	Creator SentimentBreakdown `json:"creator" bson:"creator"`
	Topic   SentimentBreakdown `json:"topic" bson:"topic"`
}

// DiscussionItem is one discussion theme with its mention count
type DiscussionItem struct {
	Name      string             `json:"name" bson:"name"`
	Mentions  int                `json:"mentions" bson:"mentions"`
	Sentiment SentimentBreakdown `json:"sentiment" bson:"sentiment"`
}

// Discussions groups discussion themes by category
type Discussions struct {
	Video   []DiscussionItem `json:"video" bson:"video"`
	Creator []DiscussionItem `json:"creator" bson:"creator"`
	Topic   []DiscussionItem `json:"topic" bson:"topic"`
}

// DefaultDiscussions returns the value used when no discussion data exists
func DefaultDiscussions() Discussions {
	return Discussions{
		Video:   []DiscussionItem{},
		Creator: []DiscussionItem{},
		Topic:   []DiscussionItem{},
	}
}

// IsEmpty reports whether no category holds any theme
func (d Discussions) IsEmpty() bool {
	return len(d.Video) == 0 && len(d.Creator) == 0 && len(d.Topic) == 0
}

// Truncate caps every category at MaxDiscussionsPerCategory and replaces nil lists
func (d Discussions) Truncate() Discussions {
	return Discussions{
		Video:   capDiscussions(d.Video),
		Creator: capDiscussions(d.Creator),
		Topic:   capDiscussions(d.Topic),
	}
}

func capDiscussions(items []DiscussionItem) []DiscussionItem {
	if items == nil {
		return []DiscussionItem{}
	}
	if len(items) > MaxDiscussionsPerCategory {
		return items[:MaxDiscussionsPerCategory]
	}
	return items
}

// PersonInsight describes a person named in the comments
type PersonInsight struct {
	Name      string             `json:"name" bson:"name"`
	Sentiment SentimentBreakdown `json:"sentiment" bson:"sentiment"`
	Remarks   []string           `json:"remarks" bson:"remarks"`
}

// AnalysisResult is the structured analytics produced for one video
type AnalysisResult struct {
	Sentiments    Sentiments      `json:"sentiments" bson:"sentiments"`
	Headline      string          `json:"headline" bson:"headline"`
	Discussions   Discussions     `json:"discussions" bson:"discussions"`
	People        []PersonInsight `json:"people" bson:"people"`
	OtherInsights []string        `json:"other_insights" bson:"other_insights"`
	VideoRequests []string        `json:"video_requests" bson:"video_requests"`
}

// Normalize replaces nil collections with empty ones and applies the list caps
func (r AnalysisResult) Normalize() AnalysisResult {
	r.Discussions = r.Discussions.Truncate()
	if r.People == nil {
		r.People = []PersonInsight{}
	}
	if len(r.People) > MaxPeople {
		r.People = r.People[:MaxPeople]
	}
	if r.OtherInsights == nil {
		r.OtherInsights = []string{}
	}
	if r.VideoRequests == nil {
		r.VideoRequests = []string{}
	}
	if r.Headline == "" {
		r.Headline = DefaultHeadline
	}
	return r
}

// Analysis is the stored analysis record for a video
type Analysis struct {
	ID               string                                 `json:"id" gorm:"type:uuid;primary_key"`
	VideoID          string                                 `json:"video_id" gorm:"type:varchar(64);not null;uniqueIndex"`
	Sentiments       datatypes.JSONType[Sentiments]         `json:"sentiments" gorm:"type:jsonb;not null"`
	Headline         string                                 `json:"headline" gorm:"type:text;not null"`
	Discussions      *datatypes.JSONType[Discussions]       `json:"discussions,omitempty" gorm:"type:jsonb"`
	MajorDiscussions *datatypes.JSONType[LegacyDiscussions] `json:"major_discussions,omitempty" gorm:"type:jsonb"`
	People           datatypes.JSONType[[]PersonInsight]    `json:"people" gorm:"type:jsonb;not null"`
	OtherInsights    datatypes.JSONType[[]string]           `json:"other_insights" gorm:"type:jsonb;not null"`
	VideoRequests    datatypes.JSONType[[]string]           `json:"video_requests" gorm:"type:jsonb;not null"`
	CreatedAt        time.Time                              `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time                              `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Analysis) TableName() string {
	return "comment_analyses"
}

// NewAnalysis creates a new analysis record for a video
func NewAnalysis(videoID string, result AnalysisResult) *Analysis {
	result = result.Normalize()
	discussions := datatypes.NewJSONType(result.Discussions)
	now := time.Now()
	return &Analysis{
		ID:            uuid.New().String(),
		VideoID:       videoID,
		Sentiments:    datatypes.NewJSONType(result.Sentiments),
		Headline:      result.Headline,
		Discussions:   &discussions,
		People:        datatypes.NewJSONType(result.People),
		OtherInsights: datatypes.NewJSONType(result.OtherInsights),
		VideoRequests: datatypes.NewJSONType(result.VideoRequests),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Result returns the current-schema view of the record.
// discussions = new field OR legacy field OR default.
func (a *Analysis) Result() AnalysisResult {
	result := AnalysisResult{
		Sentiments:    a.Sentiments.Data(),
		Headline:      a.Headline,
		People:        a.People.Data(),
		OtherInsights: a.OtherInsights.Data(),
		VideoRequests: a.VideoRequests.Data(),
	}

	switch {
	case a.Discussions != nil:
		result.Discussions = a.Discussions.Data()
	case a.MajorDiscussions != nil:
		result.Discussions = a.MajorDiscussions.Data().Upgrade()
	default:
		result.Discussions = DefaultDiscussions()
	}

	return result.Normalize()
}

// HasLegacyOnly reports whether the record still relies on major_discussions
func (a *Analysis) HasLegacyOnly() bool {
	return a.MajorDiscussions != nil && a.Discussions == nil
}
