package textproc

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	reNewlines = regexp.MustCompile(`\n+`)
	reNonWord  = regexp.MustCompile(`[^\w\s]`)
	reSpaces   = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes raw text for matching: lowercase, newlines become
// spaces, punctuation is stripped (word characters and whitespace remain) and
// whitespace runs collapse to a single space. Normalizing an already
// normalized string is a no-op.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = strings.ToLower(s)
	s = reNewlines.ReplaceAllString(s, " ")
	s = reNonWord.ReplaceAllString(s, " ")
	s = reSpaces.ReplaceAllString(s, " ")

	return strings.TrimSpace(s)
}

// DedupFold removes case-insensitive duplicates, keeping the first-seen
// casing and dropping entries shorter than two characters.
func DedupFold(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))

	for _, item := range items {
		key := strings.ToLower(strings.TrimSpace(item))
		if utf8.RuneCountInString(key) <= 1 {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}

	return out
}

// ContainsFold reports whether needle is present in items under
// case-insensitive comparison.
func ContainsFold(items []string, needle string) bool {
	for _, item := range items {
		if strings.EqualFold(item, needle) {
			return true
		}
	}
	return false
}
