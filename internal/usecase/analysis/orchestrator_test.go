package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/comment-analytics/internal/domain/entities"
)

func newTestOrchestrator(store *fakeVideoStore, completer *scriptedCompleter) *Orchestrator {
	return NewOrchestrator(store, store, completer, time.Second, nil)
}

func TestRunAnalysis_NoCorpus(t *testing.T) {
	store := newFakeVideoStore()
	completer := newScriptedCompleter()

	result, err := newTestOrchestrator(store, completer).RunAnalysis(context.Background(), "v1")
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Zero(t, completer.calls())
}

func TestRunAnalysis_VideoMissing(t *testing.T) {
	store := newFakeVideoStore()
	seedVideo(store, "v1", "hello")
	delete(store.videos, "v1")

	_, err := newTestOrchestrator(store, newScriptedCompleter()).RunAnalysis(context.Background(), "v1")
	assert.ErrorIs(t, err, entities.ErrVideoNotFound)
}

func TestRunAnalysis_AllExtractors(t *testing.T) {
	store := newFakeVideoStore()
	seedVideo(store, "v1", "Ludwig is so funny", "great editing")
	completer := newScriptedCompleter()

	result, err := newTestOrchestrator(store, completer).RunAnalysis(context.Background(), "v1")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 70, result.Sentiments.Creator.Positive)
	assert.Equal(t, "Fans love the chessboxing", result.Headline)
	require.Len(t, result.Discussions.Video, 1)
	assert.Equal(t, "editing", result.Discussions.Video[0].Name)
	assert.Equal(t, []string{"Audio was quiet"}, result.OtherInsights)
	assert.Equal(t, []string{}, result.VideoRequests)

	// Ghost is not in the comments and is dropped
	require.Len(t, result.People, 1)
	assert.Equal(t, "Ludwig", result.People[0].Name)

	assert.Equal(t, 6, completer.calls())

	sentimentCall := completer.promptFor(sentimentPrompt)
	assert.Contains(t, sentimentCall, "\n\nChannel name : Ludwig\n")
	assert.True(t, strings.HasSuffix(sentimentCall, "Description  : Round one Round two\n\nLudwig is so funny\ngreat editing"))

	headlineCall := completer.promptFor(headlinePrompt)
	assert.Contains(t, headlineCall, `Scores: {"video":{"positive":60,"neutral":30,"negative":10},"creator":{"positive":70,"neutral":20,"negative":10},"topic":{"positive":40,"neutral":40,"negative":20}}`)
}

func TestRunAnalysis_ChannelMissing(t *testing.T) {
	store := newFakeVideoStore()
	seedVideo(store, "v1", "hi")
	delete(store.channels, "ch1")
	completer := newScriptedCompleter()

	result, err := newTestOrchestrator(store, completer).RunAnalysis(context.Background(), "v1")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Contains(t, completer.promptFor(sentimentPrompt), "Channel name : \n")
}

func TestRunAnalysis_BackendFailureAbortsRun(t *testing.T) {
	store := newFakeVideoStore()
	seedVideo(store, "v1", "hi")
	completer := newScriptedCompleter()
	backendErr := errors.New("connection refused")
	completer.errs[discussionsPrompt] = backendErr

	result, err := newTestOrchestrator(store, completer).RunAnalysis(context.Background(), "v1")
	assert.Nil(t, result)
	require.Error(t, err)

	var extractorErr *ExtractorError
	require.True(t, errors.As(err, &extractorErr))
	assert.Equal(t, ExtractorDiscussions, extractorErr.Extractor)
	assert.ErrorIs(t, err, backendErr)
}

func TestRunAnalysis_CallTimeoutFailsRun(t *testing.T) {
	store := newFakeVideoStore()
	seedVideo(store, "v1", "hi")
	completer := newScriptedCompleter()
	completer.blocking[peoplePrompt] = true

	orchestrator := NewOrchestrator(store, store, completer, 100*time.Millisecond, nil)
	start := time.Now()
	result, err := orchestrator.RunAnalysis(context.Background(), "v1")

	assert.Nil(t, result)
	require.Error(t, err)
	var extractorErr *ExtractorError
	require.True(t, errors.As(err, &extractorErr))
	assert.Equal(t, ExtractorPeople, extractorErr.Extractor)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestRunAnalysis_ExtractorsRunConcurrently(t *testing.T) {
	store := newFakeVideoStore()
	seedVideo(store, "v1", "Ludwig was great")
	completer := newScriptedCompleter()
	completer.delay = 50 * time.Millisecond

	result, err := newTestOrchestrator(store, completer).RunAnalysis(context.Background(), "v1")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 6, completer.calls())
	assert.Greater(t, completer.peakInFlight(), 1)
}

func TestRunAnalysis_SentimentFailureSkipsHeadline(t *testing.T) {
	store := newFakeVideoStore()
	seedVideo(store, "v1", "hi")
	completer := newScriptedCompleter()
	completer.errs[sentimentPrompt] = errors.New("status 500")

	_, err := newTestOrchestrator(store, completer).RunAnalysis(context.Background(), "v1")

	var extractorErr *ExtractorError
	require.True(t, errors.As(err, &extractorErr))
	assert.Equal(t, ExtractorSentiment, extractorErr.Extractor)
	assert.Empty(t, completer.promptFor(headlinePrompt))
}

func TestRunAnalysis_MalformedOutputDegrades(t *testing.T) {
	store := newFakeVideoStore()
	seedVideo(store, "v1", "hi")
	completer := newScriptedCompleter()
	for prefix := range completer.responses {
		completer.responses[prefix] = "Sorry, I can't do that."
	}

	result, err := newTestOrchestrator(store, completer).RunAnalysis(context.Background(), "v1")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, entities.Sentiments{}, result.Sentiments)
	assert.Equal(t, entities.DefaultHeadline, result.Headline)
	assert.Equal(t, entities.DefaultDiscussions(), result.Discussions)
	assert.Empty(t, result.People)
	assert.Equal(t, []string{"Sorry, I can't do that."}, result.OtherInsights)
	assert.Equal(t, []string{"Sorry, I can't do that."}, result.VideoRequests)
}
