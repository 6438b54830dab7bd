// Package dashboard rolls stored video analyses up into a time-windowed summary.
package dashboard

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/johnquangdev/comment-analytics/internal/domain/entities"
	"github.com/johnquangdev/comment-analytics/internal/domain/repositories"
)

// Aggregator builds dashboard summaries from stored analyses
type Aggregator struct {
	videos   repositories.VideoRepository
	analyses repositories.AnalysisRepository
	now      func() time.Time
	logger   *zap.Logger
}

// NewAggregator creates an aggregator using the wall clock
func NewAggregator(videos repositories.VideoRepository, analyses repositories.AnalysisRepository, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		videos:   videos,
		analyses: analyses,
		now:      time.Now,
		logger:   logger,
	}
}

// WithClock replaces the clock used for the window cutoff
func (a *Aggregator) WithClock(now func() time.Time) *Aggregator {
	a.now = now
	return a
}

// ChannelsForOwner lists the channel IDs owned by ownerID
func (a *Aggregator) ChannelsForOwner(ctx context.Context, ownerID string) ([]string, error) {
	channels, err := a.videos.GetChannelsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	ids := make([]string, 0, len(channels))
	for _, c := range channels {
		ids = append(ids, c.ID)
	}
	return ids, nil
}

// analysedVideo is a video joined with its stored sentiments
type analysedVideo struct {
	video      *entities.Video
	sentiments entities.Sentiments
}

// BuildSummary aggregates the analyses of videos published in the last
// periodDays across channelIDs. periodDays and trendCount must be >= 1.
// A sentinel summary is returned when there is nothing to aggregate.
func (a *Aggregator) BuildSummary(ctx context.Context, channelIDs []string, periodDays, trendCount int) (*entities.DashboardSummary, error) {
	// calendar days in UTC; a Duration overflows past ~292 years
	cutoff := a.now().UTC().AddDate(0, 0, -periodDays)

	videoIDs, err := a.collectVideoIDs(ctx, channelIDs, cutoff)
	if err != nil {
		return nil, err
	}
	if len(videoIDs) == 0 {
		return entities.NoData(entities.DetailNoVideosInWindow), nil
	}

	analyses, err := a.analyses.GetAnalysesByVideoIDs(ctx, videoIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get analyses: %w", err)
	}
	if len(analyses) == 0 {
		return entities.NoData(entities.DetailNoAnalyses), nil
	}

	videos, err := a.videos.GetVideosByIDs(ctx, videoIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get videos: %w", err)
	}

	joined := join(videos, analyses)
	if len(joined) == 0 {
		return entities.NoData(entities.DetailNoVideosInWindow), nil
	}

	if a.logger != nil {
		a.logger.Info("📊 Building dashboard summary",
			zap.Int("channels", len(channelIDs)),
			zap.Int("videos_in_window", len(videoIDs)),
			zap.Int("samples", len(joined)),
		)
	}

	return &entities.DashboardSummary{Data: aggregate(joined, periodDays, trendCount)}, nil
}

// collectVideoIDs fetches every channel's videos in parallel and keeps
// those published at or after cutoff
func (a *Aggregator) collectVideoIDs(ctx context.Context, channelIDs []string, cutoff time.Time) ([]string, error) {
	perChannel := make([][]*entities.Video, len(channelIDs))

	g, gctx := errgroup.WithContext(ctx)
	for i, channelID := range channelIDs {
		g.Go(func() error {
			videos, err := a.videos.GetVideosByChannel(gctx, channelID)
			if err != nil {
				return fmt.Errorf("failed to get videos of channel %s: %w", channelID, err)
			}
			perChannel[i] = videos
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, videos := range perChannel {
		for _, v := range videos {
			if v.PublishTime.Before(cutoff) {
				continue
			}
			if _, dup := seen[v.ID]; dup {
				continue
			}
			seen[v.ID] = struct{}{}
			ids = append(ids, v.ID)
		}
	}
	return ids, nil
}

// join keeps videos that have both a video record and an analysis
func join(videos []*entities.Video, analyses []*entities.Analysis) []analysedVideo {
	sentiments := make(map[string]entities.Sentiments, len(analyses))
	for _, a := range analyses {
		sentiments[a.VideoID] = a.Sentiments.Data()
	}

	joined := make([]analysedVideo, 0, len(videos))
	seen := make(map[string]struct{}, len(videos))
	for _, v := range videos {
		s, ok := sentiments[v.ID]
		if !ok {
			continue
		}
		if _, dup := seen[v.ID]; dup {
			continue
		}
		seen[v.ID] = struct{}{}
		joined = append(joined, analysedVideo{video: v, sentiments: s})
	}
	return joined
}

func aggregate(joined []analysedVideo, periodDays, trendCount int) *entities.DashboardData {
	var sumOverall, sumCreator [3]int
	for _, av := range joined {
		for _, b := range []entities.SentimentBreakdown{av.sentiments.Video, av.sentiments.Creator, av.sentiments.Topic} {
			sumOverall[0] += b.Positive
			sumOverall[1] += b.Neutral
			sumOverall[2] += b.Negative
		}
		sumCreator[0] += av.sentiments.Creator.Positive
		sumCreator[1] += av.sentiments.Creator.Neutral
		sumCreator[2] += av.sentiments.Creator.Negative
	}

	n := len(joined)
	data := &entities.DashboardData{
		PeriodDays:                periodDays,
		Samples:                   n,
		OverallSentimentBreakdown: average(sumOverall, n*3),
		CreatorSentimentBreakdown: average(sumCreator, n),
		Trend:                     trend(joined, trendCount),
	}
	data.BestVideo, data.WorstVideo = bestAndWorst(joined)
	return data
}

func average(sum [3]int, divisor int) entities.BreakdownAverage {
	if divisor == 0 {
		return entities.BreakdownAverage{}
	}
	d := float64(divisor)
	return entities.BreakdownAverage{
		Positive: round1(float64(sum[0]) / d),
		Neutral:  round1(float64(sum[1]) / d),
		Negative: round1(float64(sum[2]) / d),
	}
}

// round1 rounds half away from zero to one decimal
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func trend(joined []analysedVideo, trendCount int) entities.Trend {
	ordered := append([]analysedVideo(nil), joined...)
	sort.SliceStable(ordered, func(i, j int) bool {
		ti, tj := ordered[i].video.PublishTime, ordered[j].video.PublishTime
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return ordered[i].video.ID < ordered[j].video.ID
	})
	if trendCount > 0 && len(ordered) > trendCount {
		ordered = ordered[len(ordered)-trendCount:]
	}

	out := entities.Trend{
		Video:   make([]entities.TrendPoint, 0, len(ordered)),
		Creator: make([]entities.TrendPoint, 0, len(ordered)),
	}
	for _, av := range ordered {
		out.Video = append(out.Video, point(av.video, av.sentiments.Video))
		out.Creator = append(out.Creator, point(av.video, av.sentiments.Creator))
	}
	return out
}

func point(v *entities.Video, b entities.SentimentBreakdown) entities.TrendPoint {
	return entities.TrendPoint{
		VideoID:   v.ID,
		Timestamp: v.PublishTime,
		Positive:  b.Positive,
		Neutral:   b.Neutral,
		Negative:  b.Negative,
	}
}

func overallPositive(s entities.Sentiments) float64 {
	return float64(s.Video.Positive+s.Creator.Positive+s.Topic.Positive) / 3.0
}

// bestAndWorst orders by (-overall positive, publish time, video id);
// best is the first element and worst the last
func bestAndWorst(joined []analysedVideo) (best, worst *entities.ScoredVideo) {
	if len(joined) == 0 {
		return nil, nil
	}

	ranked := append([]analysedVideo(nil), joined...)
	sort.SliceStable(ranked, func(i, j int) bool {
		pi, pj := overallPositive(ranked[i].sentiments), overallPositive(ranked[j].sentiments)
		if pi != pj {
			return pi > pj
		}
		ti, tj := ranked[i].video.PublishTime, ranked[j].video.PublishTime
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return ranked[i].video.ID < ranked[j].video.ID
	})

	score := func(av analysedVideo) *entities.ScoredVideo {
		return &entities.ScoredVideo{
			Video:           *av.video,
			OverallPositive: round1(overallPositive(av.sentiments)),
		}
	}
	return score(ranked[0]), score(ranked[len(ranked)-1])
}
