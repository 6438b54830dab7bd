package analysis

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/johnquangdev/comment-analytics/internal/domain/entities"
)

// Word boundaries for non-ASCII names; Go's \b only knows ASCII word characters.
const (
	leadingBoundary  = `(?:^|[^\p{L}\p{N}_])`
	trailingBoundary = `(?:$|[^\p{L}\p{N}_])`
)

// FilterAttested keeps only people whose name appears as a whole word
// (case-insensitive) in the raw comments, then caps the list at MaxPeople.
// Comments must not include the context header, which would attest the
// channel owner on every video.
func FilterAttested(people []entities.PersonInsight, comments []string) []entities.PersonInsight {
	corpus := strings.Join(comments, "\n")
	kept := make([]entities.PersonInsight, 0, len(people))

	for _, person := range people {
		name := strings.TrimSpace(person.Name)
		if name == "" {
			continue
		}
		pattern, err := attestationPattern(name)
		if err != nil || !pattern.MatchString(corpus) {
			continue
		}
		kept = append(kept, person)
		if len(kept) == entities.MaxPeople {
			break
		}
	}
	return kept
}

func attestationPattern(name string) (*regexp.Regexp, error) {
	expr := regexp.QuoteMeta(name)

	first, _ := utf8.DecodeRuneInString(name)
	if isWordRune(first) {
		expr = leadingBoundary + expr
	}
	last, _ := utf8.DecodeLastRuneInString(name)
	if isWordRune(last) {
		expr += trailingBoundary
	}
	return regexp.Compile("(?i)" + expr)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
