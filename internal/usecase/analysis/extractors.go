package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/johnquangdev/comment-analytics/internal/domain/entities"
	"github.com/johnquangdev/comment-analytics/pkg/ai"
)

// Extractor names, used in errors and logs
const (
	ExtractorSentiment     = "sentiment"
	ExtractorHeadline      = "headline"
	ExtractorDiscussions   = "discussions"
	ExtractorPeople        = "people"
	ExtractorOtherInsights = "other_insights"
	ExtractorVideoRequests = "video_requests"
)

// ExtractorError reports a backend failure of one extractor.
// It aborts the whole analysis run.
type ExtractorError struct {
	Extractor string
	Err       error
}

func (e *ExtractorError) Error() string {
	return fmt.Sprintf("%s extractor: %v", e.Extractor, e.Err)
}

func (e *ExtractorError) Unwrap() error {
	return e.Err
}

// Extractors runs the six prompt-based extractors against a Completer.
// Backend errors are returned as-is; output that cannot be parsed degrades
// to the extractor's default value.
type Extractors struct {
	completer   ai.Completer
	callTimeout time.Duration
}

// NewExtractors creates extractors; callTimeout bounds every backend call (0 disables it)
func NewExtractors(completer ai.Completer, callTimeout time.Duration) *Extractors {
	return &Extractors{completer: completer, callTimeout: callTimeout}
}

func (e *Extractors) complete(ctx context.Context, prompt, payload string) (string, error) {
	if e.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.callTimeout)
		defer cancel()
	}
	raw, err := e.completer.Complete(ctx, prompt+"\n\n"+payload)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

// Sentiments extracts the per-category sentiment breakdowns
func (e *Extractors) Sentiments(ctx context.Context, blob string) (entities.Sentiments, error) {
	raw, err := e.complete(ctx, sentimentPrompt, blob)
	if err != nil {
		return entities.Sentiments{}, err
	}
	return parseSentiments(raw), nil
}

// Headline writes a one-line headline, guided by the sentiment scores
func (e *Extractors) Headline(ctx context.Context, blob string, scores entities.Sentiments) (string, error) {
	encoded, err := json.Marshal(scores)
	if err != nil {
		return entities.DefaultHeadline, err
	}
	raw, err := e.complete(ctx, headlinePrompt, fmt.Sprintf("Scores: %s\n\n%s", encoded, blob))
	if err != nil {
		return entities.DefaultHeadline, err
	}
	return parseHeadline(raw), nil
}

// Discussions extracts up to five themes per category
func (e *Extractors) Discussions(ctx context.Context, blob string) (entities.Discussions, error) {
	raw, err := e.complete(ctx, discussionsPrompt, blob)
	if err != nil {
		return entities.DefaultDiscussions(), err
	}
	return parseDiscussions(raw), nil
}

// People extracts named people with sentiment and remarks.
// The result is not yet checked against the comments, see FilterAttested.
func (e *Extractors) People(ctx context.Context, blob string) ([]entities.PersonInsight, error) {
	raw, err := e.complete(ctx, peoplePrompt, blob)
	if err != nil {
		return []entities.PersonInsight{}, err
	}
	return parsePeople(raw), nil
}

// OtherInsights extracts free-form insight lines
func (e *Extractors) OtherInsights(ctx context.Context, blob string) ([]string, error) {
	raw, err := e.complete(ctx, otherInsightsPrompt, blob)
	if err != nil {
		return []string{}, err
	}
	return parseOtherInsights(raw), nil
}

// VideoRequests extracts explicit requests for future videos
func (e *Extractors) VideoRequests(ctx context.Context, blob string) ([]string, error) {
	raw, err := e.complete(ctx, videoRequestsPrompt, blob)
	if err != nil {
		return []string{}, err
	}
	return parseVideoRequests(raw), nil
}

// parseSentiments decodes each category on its own so one bad triplet
// does not zero the others
func parseSentiments(raw string) entities.Sentiments {
	var out entities.Sentiments
	var categories map[string]json.RawMessage
	if err := decodeJSON(raw, &categories); err != nil {
		return out
	}

	for key, value := range categories {
		var breakdown entities.SentimentBreakdown
		if err := json.Unmarshal(value, &breakdown); err != nil {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case entities.CategoryVideo:
			out.Video = breakdown
		case entities.CategoryCreator:
			out.Creator = breakdown
		case entities.CategoryTopic:
			out.Topic = breakdown
		}
	}
	return out
}

func parseHeadline(raw string) string {
	var payload struct {
		Headline string `json:"headline"`
	}
	if err := decodeJSON(raw, &payload); err != nil {
		return entities.DefaultHeadline
	}
	if headline := strings.TrimSpace(payload.Headline); headline != "" {
		return headline
	}
	return entities.DefaultHeadline
}

func parseDiscussions(raw string) entities.Discussions {
	out := entities.DefaultDiscussions()
	var categories map[string]json.RawMessage
	if err := decodeJSON(raw, &categories); err != nil {
		return out
	}

	for key, value := range categories {
		items := decodeDiscussionItems(value)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case entities.CategoryVideo:
			out.Video = items
		case entities.CategoryCreator:
			out.Creator = items
		case entities.CategoryTopic:
			out.Topic = items
		}
	}
	return out.Truncate()
}

func decodeDiscussionItems(data json.RawMessage) []entities.DiscussionItem {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return []entities.DiscussionItem{}
	}

	items := make([]entities.DiscussionItem, 0, len(elems))
	for _, elem := range elems {
		var item entities.DiscussionItem
		if err := json.Unmarshal(elem, &item); err != nil || item.Name == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}

func parsePeople(raw string) []entities.PersonInsight {
	var elems []json.RawMessage
	if err := decodeJSON(raw, &elems); err != nil {
		return []entities.PersonInsight{}
	}

	people := make([]entities.PersonInsight, 0, len(elems))
	for _, elem := range elems {
		var person struct {
			Name      string                      `json:"name"`
			Sentiment entities.SentimentBreakdown `json:"sentiment"`
			Remarks   []interface{}               `json:"remarks"`
		}
		if err := json.Unmarshal(elem, &person); err != nil {
			continue
		}
		name := strings.TrimSpace(person.Name)
		if name == "" {
			continue
		}

		remarks := make([]string, 0, entities.MaxRemarksPerPerson)
		for _, r := range person.Remarks {
			s, ok := r.(string)
			if !ok || strings.TrimSpace(s) == "" {
				continue
			}
			remarks = append(remarks, strings.TrimSpace(s))
			if len(remarks) == entities.MaxRemarksPerPerson {
				break
			}
		}

		people = append(people, entities.PersonInsight{
			Name:      name,
			Sentiment: person.Sentiment,
			Remarks:   remarks,
		})
	}
	return people
}

func parseOtherInsights(raw string) []string {
	if items, ok := decodeStringList(raw); ok {
		return items
	}

	insights := make([]string, 0)
	for _, line := range nonEmptyLines(raw) {
		if strings.EqualFold(line, "none") {
			continue
		}
		insights = append(insights, line)
	}
	return insights
}

func parseVideoRequests(raw string) []string {
	if items, ok := decodeStringList(raw); ok {
		return items
	}
	if strings.EqualFold(strings.TrimSpace(raw), "none") {
		return []string{}
	}
	return nonEmptyLines(raw)
}
