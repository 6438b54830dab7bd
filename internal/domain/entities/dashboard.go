package entities

import "time"

// Sentinel details returned instead of a zero-filled summary
const (
	DetailNoVideosInWindow = "no analysed videos in selected window"
	DetailNoAnalyses       = "no analyses in DB for selected videos"
)

// BreakdownAverage is a per-key average rounded to one decimal
type BreakdownAverage struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// TrendPoint is one point of a trend series
type TrendPoint struct {
	VideoID   string    `json:"video_id"`
	Timestamp time.Time `json:"timestamp"`
	Positive  int       `json:"positive"`
	Neutral   int       `json:"neutral"`
	Negative  int       `json:"negative"`
}

// Trend holds the bounded video and creator series
type Trend struct {
	Video   []TrendPoint `json:"video"`
	Creator []TrendPoint `json:"creator"`
}

// ScoredVideo is video metadata with its mean positive score
type ScoredVideo struct {
	Video
	OverallPositive float64 `json:"overall_positive"`
}

// DashboardData is the populated dashboard payload
type DashboardData struct {
	PeriodDays                int              `json:"period_days"`
	Samples                   int              `json:"samples"`
	OverallSentimentBreakdown BreakdownAverage `json:"overall_sentiment_breakdown"`
	CreatorSentimentBreakdown BreakdownAverage `json:"creator_sentiment_breakdown"`
	Trend                     Trend            `json:"trend"`
	BestVideo                 *ScoredVideo     `json:"best_video"`
	WorstVideo                *ScoredVideo     `json:"worst_video"`
}

// DashboardSummary is either a sentinel (Detail set, Data nil) or a populated payload
type DashboardSummary struct {
	Detail string         `json:"detail,omitempty"`
	Data   *DashboardData `json:"data,omitempty"`
}

// NoData builds a sentinel summary
func NoData(detail string) *DashboardSummary {
	return &DashboardSummary{Detail: detail}
}

// HasData reports whether the summary carries aggregates
func (s *DashboardSummary) HasData() bool {
	return s != nil && s.Data != nil
}
