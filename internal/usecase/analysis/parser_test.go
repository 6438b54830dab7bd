package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/comment-analytics/internal/domain/entities"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n[1,2]\n```", `[1,2]`},
		{"inline fence", "```{\"a\":1}```", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSON(tt.in))
		})
	}
}

func TestJSONSpan(t *testing.T) {
	span, ok := jsonSpan(`Sure! Here it is: {"a":{"b":1}} hope that helps`)
	require.True(t, ok)
	assert.Equal(t, `{"a":{"b":1}}`, span)

	span, ok = jsonSpan(`list: ["x", {"y": 1}] done`)
	require.True(t, ok)
	assert.Equal(t, `["x", {"y": 1}]`, span)

	_, ok = jsonSpan("no json here")
	assert.False(t, ok)

	_, ok = jsonSpan("} backwards {")
	assert.False(t, ok)
}

func TestParseSentiments(t *testing.T) {
	raw := "```json\n{\"video\":{\"positive\":60.6,\"neutral\":\"30%\",\"negative\":-1},\"Creator\":{\"positive\":50},\"topic\":42}\n```"
	got := parseSentiments(raw)

	assert.Equal(t, entities.SentimentBreakdown{Positive: 61, Neutral: 30, Negative: 0}, got.Video)
	assert.Equal(t, entities.SentimentBreakdown{Positive: 50}, got.Creator)
	assert.Equal(t, entities.SentimentBreakdown{}, got.Topic)

	assert.Equal(t, entities.Sentiments{}, parseSentiments("I cannot help with that"))
}

func TestParseHeadline(t *testing.T) {
	assert.Equal(t, "Great video", parseHeadline(`{"headline": "  Great video "}`))
	assert.Equal(t, entities.DefaultHeadline, parseHeadline(`{"headline": ""}`))
	assert.Equal(t, entities.DefaultHeadline, parseHeadline(`{"title": "x"}`))
	assert.Equal(t, entities.DefaultHeadline, parseHeadline("Great video"))
}

func TestParseDiscussions(t *testing.T) {
	raw := `{"video":[
		{"name":"a","mentions":1},{"name":"b","mentions":"2"},{"name":"c"},
		{"name":"d"},{"name":"e"},{"name":"f"}],
		"creator":"not a list",
		"topic":[{"name":""},{"name":"pricing","mentions":3.4,"sentiment":{"positive":10,"neutral":80,"negative":10}}]}`
	got := parseDiscussions(raw)

	require.Len(t, got.Video, entities.MaxDiscussionsPerCategory)
	assert.Equal(t, "a", got.Video[0].Name)
	assert.Equal(t, 2, got.Video[1].Mentions)
	assert.Empty(t, got.Creator)
	require.Len(t, got.Topic, 1)
	assert.Equal(t, entities.DiscussionItem{
		Name:      "pricing",
		Mentions:  3,
		Sentiment: entities.SentimentBreakdown{Positive: 10, Neutral: 80, Negative: 10},
	}, got.Topic[0])

	assert.Equal(t, entities.DefaultDiscussions(), parseDiscussions("garbage"))
}

func TestParsePeople(t *testing.T) {
	raw := `Here: [
		{"name":" Joe ","sentiment":{"positive":68,"neutral":22,"negative":10},"remarks":["a","","b","c","d"]},
		{"name":"","remarks":["x"]},
		{"name":"Ann","sentiment":null},
		"stray"
	]`
	got := parsePeople(raw)

	require.Len(t, got, 2)
	assert.Equal(t, "Joe", got[0].Name)
	assert.Equal(t, []string{"a", "b", "c"}, got[0].Remarks)
	assert.Equal(t, 68, got[0].Sentiment.Positive)
	assert.Equal(t, "Ann", got[1].Name)
	assert.Empty(t, got[1].Remarks)

	assert.Empty(t, parsePeople(`{"name":"Joe"}`))
}

func TestParseOtherInsights(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, parseOtherInsights(`["a", " ", "b", 3]`))
	assert.Equal(t, []string{"Audio too quiet", "Great pacing"},
		parseOtherInsights("Audio too quiet\n\nNONE\n  Great pacing  "))
	assert.Empty(t, parseOtherInsights("None"))
}

func TestParseVideoRequests(t *testing.T) {
	assert.Equal(t, []string{"part 2"}, parseVideoRequests(`["part 2"]`))
	assert.Empty(t, parseVideoRequests(" none "))
	assert.Equal(t, []string{"Do a Q&A", "Cook pasta"}, parseVideoRequests("Do a Q&A\nCook pasta\n"))
}
