package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsResourceID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"dQw4w9WgXcQ", true},
		{"64b7f0c2a1e4d3b2c1a09f8e", true},
		{"a-b_c", true},
		{"", false},
		{"has space", false},
		{"../etc/passwd", false},
		{strings.Repeat("a", 64), true},
		{strings.Repeat("a", 65), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsResourceID(tt.id), "id %q", tt.id)
	}
}

func TestCustomValidator_ResourceIDTag(t *testing.T) {
	type query struct {
		ChannelIDs []string `validate:"dive,resource_id"`
		Period     int      `validate:"min=1"`
	}
	v := New()

	assert.NoError(t, v.Validate(&query{ChannelIDs: []string{"UC123", "abc"}, Period: 30}))
	assert.Error(t, v.Validate(&query{ChannelIDs: []string{"bad id"}, Period: 30}))
	assert.Error(t, v.Validate(&query{ChannelIDs: []string{"ok"}, Period: 0}))
}
