package seo

import (
	"strings"
	"unicode/utf8"
)

// ScoreGenerated grades a provider-generated title or description: base 50,
// length bonuses, plus a capped bonus per target keyword present. Length
// bands count runes so multi-byte scripts are graded like ASCII.
func ScoreGenerated(content string, keywords []string) int {
	score := 50
	length := utf8.RuneCountInString(content)
	if length > 30 {
		score += 10
	}
	if length < 60 {
		score += 10
	}
	lower := strings.ToLower(content)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			score += 5
		}
	}
	return minInt(score, 95)
}

// ScoreGeneratedBlog grades a provider-generated blog article: base 60 with
// bonuses for length, keyword coverage, and subheading structure.
func ScoreGeneratedBlog(content string, keywords []string) int {
	score := 60
	if WordCount(content) > 300 {
		score += 10
	}
	lower := strings.ToLower(content)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			score += 15
			break
		}
	}
	if strings.Contains(content, "##") {
		score += 10
	}
	return minInt(score, 95)
}

// ScoreContent grades a full content audit: base 40 with bonuses for a
// well-formed title, description, body length, and title/description pairing.
func ScoreContent(title, description, content string) int {
	score := 40
	if utf8.RuneCountInString(title) >= 30 {
		score += 15
	}
	if utf8.RuneCountInString(description) >= 120 {
		score += 15
	}
	if utf8.RuneCountInString(content) >= 300 {
		score += 15
	}
	if title != "" && description != "" {
		score += 10
	}
	return minInt(score, 95)
}
