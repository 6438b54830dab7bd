package entities

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SentimentBreakdown is a positive/neutral/negative percentage triplet.
// The values should sum to 100 but this is not enforced.
type SentimentBreakdown struct {
	Positive int `json:"positive" bson:"positive"`
	Neutral  int `json:"neutral" bson:"neutral"`
	Negative int `json:"negative" bson:"negative"`
}

// UnmarshalJSON accepts integers, floats and numeric strings ("42", "42%").
// Fractions are rounded, negatives clamp to zero, missing keys and null read as zero.
func (s *SentimentBreakdown) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("sentiment breakdown: %w", err)
	}
	if raw == nil {
		*s = SentimentBreakdown{}
		return nil
	}

	var out SentimentBreakdown
	for key, value := range raw {
		n, err := percent(value)
		if err != nil {
			return fmt.Errorf("sentiment breakdown %q: %w", key, err)
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "positive":
			out.Positive = n
		case "neutral":
			out.Neutral = n
		case "negative":
			out.Negative = n
		}
	}

	*s = out
	return nil
}

// Sum returns positive + neutral + negative
func (s SentimentBreakdown) Sum() int {
	return s.Positive + s.Neutral + s.Negative
}

func percent(v interface{}) (int, error) {
	var f float64
	switch val := v.(type) {
	case nil:
		return 0, nil
	case float64:
		f = val
	case string:
		trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(val), "%"))
		if trimmed == "" {
			return 0, nil
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, err
		}
		f = parsed
	default:
		return 0, fmt.Errorf("unsupported value %v", v)
	}

	if math.IsNaN(f) || f < 0 {
		return 0, nil
	}
	return int(math.Round(f)), nil
}

// UnmarshalJSON tolerates float or string mention counts
func (d *DiscussionItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name      string             `json:"name"`
		Mentions  interface{}        `json:"mentions"`
		Sentiment SentimentBreakdown `json:"sentiment"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	mentions, err := percent(raw.Mentions)
	if err != nil {
		return fmt.Errorf("discussion mentions: %w", err)
	}
	*d = DiscussionItem{
		Name:      strings.TrimSpace(raw.Name),
		Mentions:  mentions,
		Sentiment: raw.Sentiment,
	}
	return nil
}

// LegacyDiscussions is the earlier major_discussions shape: bare theme names per category
type LegacyDiscussions map[string][]string

// Upgrade converts legacy themes to discussion items with zero counts
func (l LegacyDiscussions) Upgrade() Discussions {
	convert := func(names []string) []DiscussionItem {
		items := make([]DiscussionItem, 0, len(names))
		for _, name := range names {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			items = append(items, DiscussionItem{Name: name})
		}
		return items
	}
	return Discussions{
		Video:   convert(l[CategoryVideo]),
		Creator: convert(l[CategoryCreator]),
		Topic:   convert(l[CategoryTopic]),
	}.Truncate()
}
