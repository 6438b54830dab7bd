package analysis

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/comment-analytics/internal/domain/entities"
)

func people(names ...string) []entities.PersonInsight {
	out := make([]entities.PersonInsight, 0, len(names))
	for _, n := range names {
		out = append(out, entities.PersonInsight{Name: n})
	}
	return out
}

func names(people []entities.PersonInsight) []string {
	out := make([]string, 0, len(people))
	for _, p := range people {
		out = append(out, p.Name)
	}
	return out
}

func TestFilterAttested(t *testing.T) {
	comments := []string{
		"JOE was hilarious",
		"the editing by Ann-Marie was great",
		"José carried the episode",
		"c++ tips please",
	}

	tests := []struct {
		name     string
		person   string
		attested bool
	}{
		{"case-insensitive whole word", "Joe", true},
		{"substring only", "Jo", false},
		{"hyphenated", "Ann-Marie", true},
		{"non-ascii", "josé", true},
		{"regex metacharacters", "C++", true},
		{"absent", "Ghost", false},
		{"blank", "   ", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterAttested(people(tt.person), comments)
			assert.Equal(t, tt.attested, len(got) == 1)
		})
	}
}

func TestFilterAttested_JoeyDoesNotAttestJoe(t *testing.T) {
	got := FilterAttested(people("Joe"), []string{"Joey is great"})
	assert.Empty(t, got)
}

func TestFilterAttested_CapsAfterFiltering(t *testing.T) {
	var all []string
	var comments []string
	for i := 0; i < 8; i++ {
		name := fmt.Sprintf("Person%d", i)
		all = append(all, name)
		if i != 0 {
			comments = append(comments, name+" said hi")
		}
	}

	got := FilterAttested(people(all...), comments)
	assert.Equal(t, []string{"Person1", "Person2", "Person3", "Person4", "Person5", "Person6"}, names(got))
}

func TestFilterAttested_EmptyInput(t *testing.T) {
	assert.Empty(t, FilterAttested(nil, []string{"x"}))
	assert.Empty(t, FilterAttested(people("Joe"), nil))
}

func TestAttestationPattern_CompilesMetacharacters(t *testing.T) {
	for _, name := range []string{"C++", "(Mr) X", "a|b", "[bracket", `back\slash`, "$money*", "Đức?"} {
		pattern, err := attestationPattern(name)
		require.NoError(t, err, name)
		assert.True(t, pattern.MatchString("we talked about "+name+" today"), name)
		assert.False(t, pattern.MatchString("nothing relevant"), name)
	}
}
