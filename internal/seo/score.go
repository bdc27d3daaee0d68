package seo

import (
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TitleAnalysis is the rule-based grade of a single title.
type TitleAnalysis struct {
	Score       int      `json:"score"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
	Length      int      `json:"length"`
}

// DescriptionAnalysis is the rule-based grade of a single description.
type DescriptionAnalysis struct {
	Score       int      `json:"score"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
	Length      int      `json:"length"`
	WordCount   int      `json:"word_count"`
}

// MarketAnalysis grades text against one target market's vocabulary.
type MarketAnalysis struct {
	Language        string   `json:"language"`
	Score           int      `json:"seo_score"`
	QualityHits     int      `json:"quality_keywords"`
	ActionHits      int      `json:"action_keywords"`
	DescriptiveHits int      `json:"descriptive_keywords"`
	Recommendations []string `json:"recommendations"`
}

// ProductSignals carries the inputs of the composite product score.
type ProductSignals struct {
	Title       string
	Description string
	HasImages   bool
	HasTags     bool
	HasVariants bool
}

// AnalyzeTitle grades a title: base 50, additive adjustments for length band,
// quality-word presence, separator usage, and digit variety, clamped to
// [0,100]. Identical input always yields an identical grade.
func AnalyzeTitle(title string) TitleAnalysis {
	score := 0
	var issues, suggestions []string

	length := utf8.RuneCountInString(title)
	switch {
	case length < 30:
		issues = append(issues, "Title is too short; aim for at least 30 characters")
		score -= 20
	case length > 60:
		issues = append(issues, "Title is too long; keep it under 60 characters")
		score -= 15
	default:
		score += 25
	}

	lower := strings.ToLower(title)
	if containsAny(lower, defaultVocabulary().quality) {
		score += 20
	} else {
		suggestions = append(suggestions, "Include a quality keyword in the title")
		score -= 10
	}

	if strings.ContainsAny(title, "|-") {
		score += 10
	} else {
		suggestions = append(suggestions, "Use a separator (| or -) to structure the title")
	}

	if strings.ContainsAny(title, "0123456789") {
		score += 5
	}

	return TitleAnalysis{
		Score:       clampInt(score+50, 0, 100),
		Issues:      issues,
		Suggestions: suggestions,
		Length:      length,
	}
}

// AnalyzeDescription grades a description: base 35, additive adjustments for
// the 120-160 character band, a 15-word floor, and call-to-action presence.
func AnalyzeDescription(description string) DescriptionAnalysis {
	score := 0
	var issues, suggestions []string

	length := utf8.RuneCountInString(description)
	switch {
	case length < 120:
		issues = append(issues, "Description is too short; aim for at least 120 characters")
		score -= 20
	case length > 160:
		issues = append(issues, "Description is too long; keep it under 160 characters")
		score -= 15
	default:
		score += 30
	}

	words := WordCount(description)
	if words < 15 {
		issues = append(issues, "Description has too few words; add more descriptive detail")
		score -= 15
	} else {
		score += 20
	}

	if containsAny(strings.ToLower(description), defaultVocabulary().action) {
		score += 15
	} else {
		suggestions = append(suggestions, "Add a call-to-action phrase")
	}

	return DescriptionAnalysis{
		Score:       clampInt(score+35, 0, 100),
		Issues:      issues,
		Suggestions: suggestions,
		Length:      length,
		WordCount:   words,
	}
}

// CompositeScore computes the weighted product score: title 0.4, description
// 0.3, other signals 0.3. Other signals start from a 50-point base with fixed
// bonuses for images, tags, and variants. The result is rounded to one
// decimal place.
func CompositeScore(p ProductSignals) float64 {
	titleScore := float64(AnalyzeTitle(p.Title).Score)
	descScore := float64(AnalyzeDescription(p.Description).Score)

	otherScore := 50.0
	if p.HasImages {
		otherScore += 20
	}
	if p.HasTags {
		otherScore += 15
	}
	if p.HasVariants {
		otherScore += 15
	}

	overall := titleScore*0.4 + descScore*0.3 + otherScore*0.3
	return math.Round(overall*10) / 10
}

// AnalyzeMarket grades text against the target market's vocabulary: base 50,
// capped bonuses per vocabulary class, a length-band bonus, clamped to 100.
// Unsupported languages are graded with the default vocabulary.
func AnalyzeMarket(text, language string) MarketAnalysis {
	vocab := vocabularyFor(language)
	lower := strings.ToLower(text)

	quality := countHits(lower, vocab.quality)
	action := countHits(lower, vocab.action)
	descriptive := countHits(lower, vocab.descriptive)

	score := 50
	score += minInt(quality*10, 30)
	score += minInt(action*5, 15)
	score += minInt(descriptive*3, 10)

	if words := WordCount(text); words >= 10 && words <= 60 {
		score += 5
	}
	if score > 100 {
		score = 100
	}

	return MarketAnalysis{
		Language:        language,
		Score:           score,
		QualityHits:     quality,
		ActionHits:      action,
		DescriptiveHits: descriptive,
		Recommendations: marketRecommendations(score, language),
	}
}

func marketRecommendations(score int, language string) []string {
	var recs []string
	if score < 60 {
		recs = append(recs,
			fmt.Sprintf("Add more quality keywords for the %s market", language),
			"Include call-to-action phrases")
	}
	if score < 70 {
		recs = append(recs,
			"Enhance with descriptive adjectives",
			"Optimize content length")
	}
	if score < 80 {
		recs = append(recs,
			"Add market-specific terminology",
			"Include brand positioning words")
	}
	if len(recs) == 0 {
		recs = append(recs, "Content is well-optimized for SEO")
	}
	return recs
}

func containsAny(lower string, words []string) bool {
	for _, w := range words {
		if containsWord(lower, w) {
			return true
		}
	}
	return false
}

func countHits(lower string, words []string) int {
	hits := 0
	for _, w := range words {
		if containsWord(lower, w) {
			hits++
		}
	}
	return hits
}

// containsWord reports whether word occurs in s bounded by non-letter,
// non-digit runes, so "get" never matches inside "widget". Multi-word
// vocabulary entries match as whole phrases.
func containsWord(s, word string) bool {
	if word == "" {
		return false
	}
	for start := 0; ; {
		i := strings.Index(s[start:], word)
		if i < 0 {
			return false
		}
		i += start
		boundedLeft := i == 0
		if !boundedLeft {
			r, _ := utf8.DecodeLastRuneInString(s[:i])
			boundedLeft = !unicode.IsLetter(r) && !unicode.IsDigit(r)
		}
		end := i + len(word)
		boundedRight := end == len(s)
		if !boundedRight {
			r, _ := utf8.DecodeRuneInString(s[end:])
			boundedRight = !unicode.IsLetter(r) && !unicode.IsDigit(r)
		}
		if boundedLeft && boundedRight {
			return true
		}
		start = i + 1
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
