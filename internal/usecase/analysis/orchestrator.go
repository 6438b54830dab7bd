package analysis

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/comment-analytics/internal/domain/entities"
	"github.com/johnquangdev/comment-analytics/internal/domain/repositories"
	"github.com/johnquangdev/comment-analytics/pkg/ai"
)

// Orchestrator turns a video's comment corpus into an AnalysisResult
type Orchestrator struct {
	videos     repositories.VideoRepository
	corpora    repositories.CorpusRepository
	extractors *Extractors
	logger     *zap.Logger
}

// NewOrchestrator wires the extractors to the video and corpus stores
func NewOrchestrator(
	videos repositories.VideoRepository,
	corpora repositories.CorpusRepository,
	completer ai.Completer,
	callTimeout time.Duration,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		videos:     videos,
		corpora:    corpora,
		extractors: NewExtractors(completer, callTimeout),
		logger:     logger,
	}
}

// RunAnalysis runs all six extractors concurrently over the video's comments.
// It returns (nil, nil) when no comments have been fetched for the video.
// Any backend failure aborts the run with an *ExtractorError and no result.
func (o *Orchestrator) RunAnalysis(ctx context.Context, videoID string) (*entities.AnalysisResult, error) {
	corpus, err := o.corpora.GetCorpus(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	if corpus == nil {
		return nil, nil
	}

	video, err := o.videos.GetVideo(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to get video: %w", err)
	}
	if video == nil {
		return nil, fmt.Errorf("%w: %s", entities.ErrVideoNotFound, videoID)
	}

	channel, err := o.videos.GetChannel(ctx, video.ChannelID)
	if err != nil {
		return nil, fmt.Errorf("failed to get channel: %w", err)
	}
	if channel == nil && o.logger != nil {
		o.logger.Warn("⚠️ Channel missing, analysing without channel name",
			zap.String("video_id", videoID),
			zap.String("channel_id", video.ChannelID),
		)
	}

	comments := corpus.Texts()
	blob := BuildContextHeader(channel, video) + strings.Join(comments, "\n")

	startTime := time.Now()
	if o.logger != nil {
		o.logger.Info("🤖 Running comment extractors",
			zap.String("video_id", videoID),
			zap.Int("comment_count", len(comments)),
			zap.Int("blob_length", len(blob)),
		)
	}

	result, err := o.fanOut(ctx, blob)
	if err != nil {
		if o.logger != nil {
			o.logger.Error("❌ Comment analysis failed",
				zap.String("video_id", videoID),
				zap.Error(err),
			)
		}
		return nil, err
	}

	extracted := len(result.People)
	result.People = FilterAttested(result.People, comments)
	normalized := result.Normalize()

	if o.logger != nil {
		o.logger.Info("✅ Comment analysis finished",
			zap.String("video_id", videoID),
			zap.Duration("duration", time.Since(startTime)),
			zap.Int("people_extracted", extracted),
			zap.Int("people_attested", len(normalized.People)),
		)
	}
	return &normalized, nil
}

// fanOut runs the extractors in parallel and joins them. Headline waits for
// sentiment; the first failure cancels the others.
func (o *Orchestrator) fanOut(parent context.Context, blob string) (*entities.AnalysisResult, error) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	var (
		result   entities.AnalysisResult
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	fail := func(extractor string, err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = &ExtractorError{Extractor: extractor, Err: err}
			cancel()
		}
	}

	sentimentDone := make(chan struct{})

	wg.Add(6)

	go func() {
		defer wg.Done()
		defer close(sentimentDone)
		sentiments, err := o.extractors.Sentiments(ctx, blob)
		if err != nil {
			fail(ExtractorSentiment, err)
			return
		}
		result.Sentiments = sentiments
	}()

	go func() {
		defer wg.Done()
		<-sentimentDone
		if ctx.Err() != nil {
			return
		}
		headline, err := o.extractors.Headline(ctx, blob, result.Sentiments)
		if err != nil {
			fail(ExtractorHeadline, err)
			return
		}
		result.Headline = headline
	}()

	go func() {
		defer wg.Done()
		discussions, err := o.extractors.Discussions(ctx, blob)
		if err != nil {
			fail(ExtractorDiscussions, err)
			return
		}
		result.Discussions = discussions
	}()

	go func() {
		defer wg.Done()
		people, err := o.extractors.People(ctx, blob)
		if err != nil {
			fail(ExtractorPeople, err)
			return
		}
		result.People = people
	}()

	go func() {
		defer wg.Done()
		insights, err := o.extractors.OtherInsights(ctx, blob)
		if err != nil {
			fail(ExtractorOtherInsights, err)
			return
		}
		result.OtherInsights = insights
	}()

	go func() {
		defer wg.Done()
		requests, err := o.extractors.VideoRequests(ctx, blob)
		if err != nil {
			fail(ExtractorVideoRequests, err)
			return
		}
		result.VideoRequests = requests
	}()

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	// A parent cancellation can stop headline before it reports anything
	if err := parent.Err(); err != nil {
		return nil, &ExtractorError{Extractor: ExtractorHeadline, Err: err}
	}
	return &result, nil
}
