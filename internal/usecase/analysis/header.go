package analysis

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/johnquangdev/comment-analytics/internal/domain/entities"
)

const (
	descriptionLimit  = 300
	truncationMarker  = "…"
	missingValueLabel = "NA"
)

// BuildContextHeader renders the channel and video metadata block that
// precedes the comments in every extractor prompt. A nil channel renders
// an empty channel name.
func BuildContextHeader(channel *entities.Channel, video *entities.Video) string {
	channelName := ""
	if channel != nil {
		channelName = channel.Name
	}

	likes := missingValueLabel
	if video.LikeCount != nil {
		likes = strconv.FormatInt(*video.LikeCount, 10)
	}
	duration := missingValueLabel
	if video.Duration != "" {
		duration = video.Duration
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Channel name : %s\n", channelName)
	fmt.Fprintf(&b, "Video title  : %s\n", video.Title)
	fmt.Fprintf(&b, "Published    : %s\n", video.PublishTime.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "Views        : %d\n", video.ViewCount)
	fmt.Fprintf(&b, "Likes        : %s\n", likes)
	fmt.Fprintf(&b, "Duration     : %s\n", duration)
	fmt.Fprintf(&b, "Description  : %s\n\n", truncateDescription(video.Description))
	return b.String()
}

// truncateDescription flattens newlines and caps the text at descriptionLimit runes
func truncateDescription(desc string) string {
	desc = strings.TrimSpace(desc)
	desc = strings.ReplaceAll(desc, "\r\n", " ")
	desc = strings.ReplaceAll(desc, "\n", " ")

	runes := []rune(desc)
	if len(runes) <= descriptionLimit {
		return desc
	}
	return string(runes[:descriptionLimit]) + truncationMarker
}
