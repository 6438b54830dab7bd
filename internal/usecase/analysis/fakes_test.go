package analysis

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/johnquangdev/comment-analytics/internal/domain/entities"
)

// scriptedCompleter answers by matching the prompt prefix. Prompts listed
// in blocking wait for ctx to end; every call sleeps delay first.
type scriptedCompleter struct {
	mu        sync.Mutex
	responses map[string]string
	errs      map[string]error
	blocking  map[string]bool
	delay     time.Duration
	prompts   []string
	inFlight  int
	peak      int
}

func newScriptedCompleter() *scriptedCompleter {
	return &scriptedCompleter{
		responses: map[string]string{
			sentimentPrompt: `{"video":{"positive":60,"neutral":30,"negative":10},` +
				`"creator":{"positive":70,"neutral":20,"negative":10},` +
				`"topic":{"positive":40,"neutral":40,"negative":20}}`,
			headlinePrompt:      `{"headline":"Fans love the chessboxing"}`,
			discussionsPrompt:   `{"video":[{"name":"editing","mentions":4,"sentiment":{"positive":80,"neutral":10,"negative":10}}],"creator":[],"topic":[]}`,
			peoplePrompt:        `[{"name":"Ludwig","sentiment":{"positive":90,"neutral":5,"negative":5},"remarks":["funny"]},{"name":"Ghost","remarks":[]}]`,
			otherInsightsPrompt: "Audio was quiet\nNone\n",
			videoRequestsPrompt: "None",
		},
		errs:     map[string]error{},
		blocking: map[string]bool{},
	}
}

func (c *scriptedCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	c.mu.Lock()
	c.prompts = append(c.prompts, prompt)
	c.inFlight++
	if c.inFlight > c.peak {
		c.peak = c.inFlight
	}
	delay := c.delay
	var (
		block    bool
		err      error
		response string
		matched  bool
	)
	for prefix := range c.blocking {
		if strings.HasPrefix(prompt, prefix) {
			block = true
		}
	}
	for prefix, e := range c.errs {
		if strings.HasPrefix(prompt, prefix) {
			err = e
		}
	}
	for prefix, resp := range c.responses {
		if strings.HasPrefix(prompt, prefix) {
			response, matched = resp, true
		}
	}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.inFlight--
		c.mu.Unlock()
	}()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if err != nil {
		return "", err
	}
	if !matched {
		return "", errors.New("unexpected prompt")
	}
	return response, nil
}

func (c *scriptedCompleter) peakInFlight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.peak
}

func (c *scriptedCompleter) promptFor(prefix string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.prompts {
		if strings.HasPrefix(p, prefix) {
			return p
		}
	}
	return ""
}

func (c *scriptedCompleter) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.prompts)
}

type fakeVideoStore struct {
	videos   map[string]*entities.Video
	channels map[string]*entities.Channel
	corpora  map[string]*entities.CommentCorpus
}

func newFakeVideoStore() *fakeVideoStore {
	return &fakeVideoStore{
		videos:   map[string]*entities.Video{},
		channels: map[string]*entities.Channel{},
		corpora:  map[string]*entities.CommentCorpus{},
	}
}

func (f *fakeVideoStore) GetVideo(ctx context.Context, videoID string) (*entities.Video, error) {
	return f.videos[videoID], nil
}

func (f *fakeVideoStore) GetChannel(ctx context.Context, channelID string) (*entities.Channel, error) {
	return f.channels[channelID], nil
}

func (f *fakeVideoStore) GetVideosByChannel(ctx context.Context, channelID string) ([]*entities.Video, error) {
	var out []*entities.Video
	for _, v := range f.videos {
		if v.ChannelID == channelID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVideoStore) GetVideosByIDs(ctx context.Context, videoIDs []string) ([]*entities.Video, error) {
	var out []*entities.Video
	for _, id := range videoIDs {
		if v, ok := f.videos[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVideoStore) GetChannelsByOwner(ctx context.Context, ownerID string) ([]*entities.Channel, error) {
	return nil, nil
}

func (f *fakeVideoStore) GetCorpus(ctx context.Context, videoID string) (*entities.CommentCorpus, error) {
	return f.corpora[videoID], nil
}

type fakeAnalysisStore struct {
	mu      sync.Mutex
	records map[string]*entities.Analysis
	creates int
	patches []entities.AnalysisPatch
}

func newFakeAnalysisStore() *fakeAnalysisStore {
	return &fakeAnalysisStore{records: map[string]*entities.Analysis{}}
}

func (f *fakeAnalysisStore) GetAnalysis(ctx context.Context, videoID string) (*entities.Analysis, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.records[videoID], nil
}

func (f *fakeAnalysisStore) CreateAnalysis(ctx context.Context, videoID string, result entities.AnalysisResult) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	a := entities.NewAnalysis(videoID, result)
	f.records[videoID] = a
	return a.ID, nil
}

func (f *fakeAnalysisStore) PatchAnalysis(ctx context.Context, videoID string, patch entities.AnalysisPatch) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patches = append(f.patches, patch)
	stored, ok := f.records[videoID]
	if !ok {
		return 0, nil
	}
	merged := stored.Result()
	fresh := patch.Result.Normalize()
	for _, field := range patch.Fields {
		switch field {
		case entities.FieldSentiments:
			merged.Sentiments = fresh.Sentiments
		case entities.FieldHeadline:
			merged.Headline = fresh.Headline
		case entities.FieldDiscussions:
			merged.Discussions = fresh.Discussions
		case entities.FieldPeople:
			merged.People = fresh.People
		case entities.FieldOtherInsights:
			merged.OtherInsights = fresh.OtherInsights
		case entities.FieldVideoRequests:
			merged.VideoRequests = fresh.VideoRequests
		}
	}
	updated := entities.NewAnalysis(videoID, merged)
	updated.ID = stored.ID
	f.records[videoID] = updated
	return 1, nil
}

func (f *fakeAnalysisStore) GetAnalysesByVideoIDs(ctx context.Context, videoIDs []string) ([]*entities.Analysis, error) {
	return nil, nil
}

func (f *fakeAnalysisStore) BackfillLegacyDiscussions(ctx context.Context) (int64, error) {
	return 0, nil
}

type fakeLocker struct {
	mu   sync.Mutex
	held map[string]bool
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: map[string]bool{}}
}

func (l *fakeLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] {
		return false, nil
	}
	l.held[key] = true
	return true, nil
}

func (l *fakeLocker) Unlock(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, key)
	return nil
}

type fakeQueue struct {
	mu      sync.Mutex
	pending []uuid.UUID
	jobs    map[uuid.UUID]*entities.AnalysisJob
}

func newFakeQueue() *fakeQueue {
	return &fakeQueue{jobs: map[uuid.UUID]*entities.AnalysisJob{}}
}

func (q *fakeQueue) Enqueue(ctx context.Context, job *entities.AnalysisJob) (*entities.AnalysisJob, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, existing := range q.jobs {
		if existing.VideoID == job.VideoID && !existing.IsTerminal() {
			copied := *existing
			return &copied, nil
		}
	}
	stored := *job
	q.jobs[job.ID] = &stored
	q.pending = append(q.pending, job.ID)
	return job, nil
}

func (q *fakeQueue) Claim(ctx context.Context, timeout time.Duration) (*entities.AnalysisJob, error) {
	q.mu.Lock()
	if len(q.pending) == 0 {
		q.mu.Unlock()
		time.Sleep(5 * time.Millisecond)
		return nil, nil
	}
	id := q.pending[0]
	q.pending = q.pending[1:]
	copied := *q.jobs[id]
	q.mu.Unlock()
	return &copied, nil
}

func (q *fakeQueue) Requeue(ctx context.Context, job *entities.AnalysisJob) error {
	if err := q.Save(ctx, job); err != nil {
		return err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, job.ID)
	return nil
}

func (q *fakeQueue) Save(ctx context.Context, job *entities.AnalysisJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	copied := *job
	q.jobs[job.ID] = &copied
	return nil
}

func (q *fakeQueue) Get(ctx context.Context, jobID uuid.UUID) (*entities.AnalysisJob, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	job, ok := q.jobs[jobID]
	if !ok {
		return nil, nil
	}
	copied := *job
	return &copied, nil
}

func (q *fakeQueue) ListRunning(ctx context.Context) ([]*entities.AnalysisJob, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var out []*entities.AnalysisJob
	for _, job := range q.jobs {
		if job.Status == entities.AnalysisJobStatusRunning {
			copied := *job
			out = append(out, &copied)
		}
	}
	return out, nil
}

type recordingArchiver struct {
	mu    sync.Mutex
	calls []string
}

func (a *recordingArchiver) ArchiveResult(ctx context.Context, videoID string, result entities.AnalysisResult) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, videoID)
	return "analyses/" + videoID + ".json", nil
}

func (a *recordingArchiver) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.calls)
}

// seedVideo stores a channel, video and corpus under videoID
func seedVideo(store *fakeVideoStore, videoID string, comments ...string) *entities.Video {
	likes := int64(98765)
	store.channels["ch1"] = &entities.Channel{ID: "ch1", Name: "Ludwig"}
	video := &entities.Video{
		ID:          videoID,
		ChannelID:   "ch1",
		Title:       "I Tried Chessboxing",
		Description: "Round one\nRound two",
		PublishTime: time.Date(2023, 1, 2, 18, 0, 5, 0, time.UTC),
		ViewCount:   1234567,
		LikeCount:   &likes,
		Duration:    "PT8M11S",
	}
	store.videos[videoID] = video
	store.corpora[videoID] = &entities.CommentCorpus{
		VideoID:  videoID,
		Comments: datatypes.NewJSONType(comments),
	}
	return video
}
