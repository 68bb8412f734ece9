// Package tags normalizes the free-form labels attached to reviews.
package tags

import (
	"regexp"
	"strings"
)

// MaxTags is the largest number of tags a review may carry
const MaxTags = 10

var whitespace = regexp.MustCompile(`\s+`)

// NormalizeOne lowercases and trims tag and replaces whitespace runs with a hyphen
func NormalizeOne(tag string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(tag)), "-")
}

// Normalize normalizes every tag, dropping empties and duplicates while keeping first-seen order
func Normalize(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, t := range raw {
		n := NormalizeOne(t)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// Split parses a comma separated tag list, as sent in query strings
func Split(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	return Normalize(strings.Split(csv, ","))
}
