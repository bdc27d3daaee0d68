// Package seo contains the pure content-grading engine: language detection,
// rule-based scoring, and per-language template optimization. Nothing in this
// package performs I/O; identical input always yields identical output.
package seo

import (
	"regexp"
	"strings"
	"unicode"
)

var htmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// StripHTML removes markup tags from a content body so word counts are
// computed on visible text only. Tags are replaced with whitespace so words
// separated only by adjacent tags stay separate, then runs are collapsed.
func StripHTML(s string) string {
	return strings.Join(strings.Fields(htmlTagPattern.ReplaceAllString(s, " ")), " ")
}

// WordCount counts whitespace-separated words in the visible text of s.
// Both the scorer and the article word-count field go through this single
// implementation so counts stay consistent across the system.
func WordCount(s string) int {
	return len(strings.Fields(StripHTML(s)))
}

// SplitTags parses a comma-separated remote tag string into a clean slice.
func SplitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// JoinTags renders a tag slice back into the remote platform's canonical
// comma-space format, the form the platform itself returns on reads.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// TitleCase upper-cases the first letter of every word.
func TitleCase(s string) string {
	prev := ' '
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(prev) || prev == '|' {
			prev = r
			return unicode.ToUpper(r)
		}
		prev = r
		return r
	}, s)
}
