package analysis

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/johnquangdev/comment-analytics/internal/domain/entities"
)

func TestBuildContextHeader(t *testing.T) {
	likes := int64(98765)
	video := &entities.Video{
		Title:       "I Tried Chessboxing",
		Description: "  Round one\nRound two  ",
		PublishTime: time.Date(2023, 1, 2, 18, 0, 5, 0, time.UTC),
		ViewCount:   1234567,
		LikeCount:   &likes,
		Duration:    "PT8M11S",
	}

	want := "Channel name : Ludwig\n" +
		"Video title  : I Tried Chessboxing\n" +
		"Published    : 2023-01-02T18:00:05Z\n" +
		"Views        : 1234567\n" +
		"Likes        : 98765\n" +
		"Duration     : PT8M11S\n" +
		"Description  : Round one Round two\n\n"

	assert.Equal(t, want, BuildContextHeader(&entities.Channel{Name: "Ludwig"}, video))
}

func TestBuildContextHeader_MissingValues(t *testing.T) {
	video := &entities.Video{Title: "t", PublishTime: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}
	header := BuildContextHeader(nil, video)

	assert.True(t, strings.HasPrefix(header, "Channel name : \n"))
	assert.Contains(t, header, "Likes        : NA\n")
	assert.Contains(t, header, "Duration     : NA\n")
	assert.True(t, strings.HasSuffix(header, "Description  : \n\n"))
}

func TestTruncateDescription(t *testing.T) {
	exact := strings.Repeat("a", descriptionLimit)
	assert.Equal(t, exact, truncateDescription(exact))

	long := strings.Repeat("é", descriptionLimit+5)
	got := truncateDescription(long)
	assert.Equal(t, strings.Repeat("é", descriptionLimit)+"…", got)
}
