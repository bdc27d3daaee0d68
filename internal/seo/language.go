package seo

import (
	"regexp"
	"strings"
)

// Language describes one supported target market.
type Language struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Market string `json:"market"`
}

// SupportedLanguages lists every market the engine can optimize for, in
// registration order. The first entry is the fallback for unsupported targets.
var SupportedLanguages = []Language{
	{Code: "en", Name: "English", Market: "US"},
	{Code: "es", Name: "Spanish", Market: "ES"},
	{Code: "fr", Name: "French", Market: "FR"},
	{Code: "de", Name: "German", Market: "DE"},
	{Code: "it", Name: "Italian", Market: "IT"},
	{Code: "pt", Name: "Portuguese", Market: "PT"},
	{Code: "zh", Name: "Chinese", Market: "CN"},
	{Code: "ja", Name: "Japanese", Market: "JP"},
}

// IsSupported reports whether code is a registered language.
func IsSupported(code string) bool {
	for _, l := range SupportedLanguages {
		if l.Code == code {
			return true
		}
	}
	return false
}

// detection patterns: common function words first, domain vocabulary second.
var languagePatterns = map[string][]*regexp.Regexp{
	"en": {
		regexp.MustCompile(`\b(the|and|or|but|in|on|at|to|for|of|with|by)\b`),
		regexp.MustCompile(`\b(product|quality|premium|professional|service)\b`),
	},
	"es": {
		regexp.MustCompile(`\b(el|la|los|las|y|o|pero|en|de|con|por|para)\b`),
		regexp.MustCompile(`\b(producto|calidad|premium|profesional|servicio)\b`),
	},
	"fr": {
		regexp.MustCompile(`\b(le|la|les|et|ou|mais|dans|de|avec|par|pour)\b`),
		regexp.MustCompile(`\b(produit|qualité|premium|professionnel|service)\b`),
	},
	"de": {
		regexp.MustCompile(`\b(der|die|das|und|oder|aber|in|von|mit|für)\b`),
		regexp.MustCompile(`\b(produkt|qualität|premium|professionell|service)\b`),
	},
	"zh": {
		regexp.MustCompile(`[的和或但在与为由从]`),
		regexp.MustCompile(`(产品|质量|优质|专业|服务)`),
	},
	"ja": {
		regexp.MustCompile(`[のとやがをにでからまで]`),
		regexp.MustCompile(`(製品|品質|プレミアム|プロ|サービス)`),
	},
}

// lowConfidence is the floor below which detection falls back to the
// configured default language.
const lowConfidence = 0.1

// Detector infers the language of a text sample from lexical patterns. It is
// deterministic and makes no external calls.
type Detector struct {
	fallback string
}

// NewDetector returns a detector that defaults to the given language when no
// pattern scores confidently. An unsupported fallback defaults to English.
func NewDetector(fallback string) *Detector {
	if !IsSupported(fallback) {
		fallback = SupportedLanguages[0].Code
	}
	return &Detector{fallback: fallback}
}

// Fallback returns the detector's default language.
func (d *Detector) Fallback() string {
	return d.fallback
}

// Detect returns the best-scoring language code with a confidence in [0,1].
// Samples shorter than 3 characters, or with no confident pattern hits,
// fall back to the detector's default language with confidence 0.5.
func (d *Detector) Detect(text string) (string, float64) {
	if len(strings.TrimSpace(text)) < 3 {
		return d.fallback, 0.5
	}

	lower := strings.ToLower(text)
	tokens := len(strings.Fields(text))
	if tokens == 0 {
		tokens = 1
	}

	bestLang := ""
	bestScore := 0.0
	for lang, patterns := range languagePatterns {
		var score float64
		for _, p := range patterns {
			matches := len(p.FindAllString(lower, -1))
			if matches > 0 {
				density := float64(matches) / float64(tokens) * 10
				if density > 1.0 {
					density = 1.0
				}
				score += density
			}
		}
		score /= float64(len(patterns))
		if score > bestScore || (score == bestScore && lang < bestLang) {
			bestLang = lang
			bestScore = score
		}
	}

	if bestScore < lowConfidence {
		return d.fallback, 0.5
	}
	if bestScore > 1.0 {
		bestScore = 1.0
	}
	return bestLang, bestScore
}
