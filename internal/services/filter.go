package services

import (
	"regexp"
	"strings"
)

// DefaultForbiddenWords is the stock word list for the content filter. Matches
// are case-insensitive substring matches, not word-boundary aware.
var DefaultForbiddenWords = []string{
	"judi", "poker", "casino", "togel", "bandar",
	"xxx", "sex", "porn", "viagra", "anjing", "goblok", "asu", "pantek",
	"tolol", "bego", "bangsat",
}

// DefaultMaxLinks is how many links a comment may carry before it is treated
// as likely spam.
const DefaultMaxLinks = 2

var linkPattern = regexp.MustCompile(`(https?://[^\s]+)|(www\.[^\s]+)`)

// ContentFilter classifies comment text. It is stateless and safe for
// concurrent use; both the word list and the link threshold are injected at
// construction so tests can tighten or loosen the policy.
type ContentFilter struct {
	forbiddenWords []string
	maxLinks       int
}

func NewContentFilter(forbiddenWords []string, maxLinks int) *ContentFilter {
	return &ContentFilter{
		forbiddenWords: forbiddenWords,
		maxLinks:       maxLinks,
	}
}

func (f *ContentFilter) ContainsForbiddenWords(content string) bool {
	lower := strings.ToLower(content)
	for _, word := range f.forbiddenWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

// CountLinks counts non-overlapping http://, https:// and www.-prefixed
// tokens.
func (f *ContentFilter) CountLinks(content string) int {
	return len(linkPattern.FindAllString(content, -1))
}

// IsLikelySpam flags content carrying forbidden words or more links than the
// threshold allows.
func (f *ContentFilter) IsLikelySpam(content string) bool {
	return f.ContainsForbiddenWords(content) || f.CountLinks(content) > f.maxLinks
}
