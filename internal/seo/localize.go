package seo

import (
	"fmt"
	"strings"
)

// vocabulary holds one market's optimization word lists and templates.
type vocabulary struct {
	quality     []string
	action      []string
	descriptive []string

	// qualityPrefix places the quality marker before the title (English,
	// German) instead of after it (Spanish, French).
	qualityPrefix bool
	descOpening   string
	qualityClause string // %s is the first descriptive word
	actionClause  string // %s is the title-cased first action word
}

var vocabularies = map[string]vocabulary{
	"en": {
		quality:       []string{"premium", "high-quality", "professional", "top-rated", "best"},
		action:        []string{"buy", "shop", "get", "order", "purchase"},
		descriptive:   []string{"durable", "reliable", "innovative", "advanced", "superior"},
		qualityPrefix: true,
		descOpening:   "Professionally optimized product description.",
		qualityClause: "Premium quality and %s design.",
		actionClause:  "%s now for the best experience.",
	},
	"es": {
		quality:     []string{"premium", "alta calidad", "profesional", "mejor valorado", "mejor"},
		action:      []string{"comprar", "tienda", "obtener", "pedir", "adquirir"},
		descriptive: []string{"duradero", "confiable", "innovador", "avanzado", "superior"},
		descOpening:   "Descripción de producto optimizada profesionalmente.",
		qualityClause: "Calidad premium y diseño %s.",
		actionClause:  "%s ahora para la mejor experiencia.",
	},
	"fr": {
		quality:     []string{"premium", "haute qualité", "professionnel", "mieux noté", "meilleur"},
		action:      []string{"acheter", "boutique", "obtenir", "commander", "acquérir"},
		descriptive: []string{"durable", "fiable", "innovant", "avancé", "supérieur"},
		descOpening:   "Description de produit optimisée professionnellement.",
		qualityClause: "Qualité premium et design %s.",
		actionClause:  "%s maintenant pour la meilleure expérience.",
	},
	"de": {
		quality:       []string{"premium", "hochwertig", "professionell", "bestbewertet", "beste"},
		action:        []string{"kaufen", "shop", "erhalten", "bestellen", "erwerben"},
		descriptive:   []string{"langlebig", "zuverlässig", "innovativ", "fortschrittlich", "überlegen"},
		qualityPrefix: true,
		descOpening:   "Professionell optimierte Produktbeschreibung.",
		qualityClause: "Premium-Qualität und %s Design.",
		actionClause:  "%s Sie jetzt für die beste Erfahrung.",
	},
}

func defaultVocabulary() vocabulary {
	return vocabularies[SupportedLanguages[0].Code]
}

func vocabularyFor(language string) vocabulary {
	if v, ok := vocabularies[language]; ok {
		return v
	}
	return defaultVocabulary()
}

// minTitleWords is the word count under which a descriptive suffix is added.
const minTitleWords = 5

// TitleResult is the outcome of a localized title rewrite.
type TitleResult struct {
	Original     string   `json:"original_title"`
	Optimized    string   `json:"optimized_title"`
	Language     string   `json:"language"`
	Improvements []string `json:"improvements"`
}

// DescriptionResult is the outcome of a localized description rewrite.
type DescriptionResult struct {
	Original     string   `json:"original_description"`
	Optimized    string   `json:"optimized_description"`
	Language     string   `json:"language"`
	Improvements []string `json:"improvements"`
}

// OptimizeTitle rewrites a title with the target market's templates: a
// quality marker when none is present, and a separator plus descriptive
// suffix when the title is under the minimum word count. Unsupported target
// languages use the default language's templates.
func OptimizeTitle(title, language string) TitleResult {
	vocab := vocabularyFor(language)
	optimized := title

	if !containsAny(strings.ToLower(optimized), vocab.quality) {
		if vocab.qualityPrefix {
			optimized = "Premium " + optimized
		} else {
			optimized = optimized + " Premium"
		}
	}

	if len(strings.Fields(optimized)) < minTitleWords {
		optimized = optimized + " | " + TitleCase(vocab.descriptive[0])
	}

	optimized = TitleCase(optimized)

	return TitleResult{
		Original:     title,
		Optimized:    optimized,
		Language:     language,
		Improvements: titleImprovements(title, optimized, vocab),
	}
}

// OptimizeDescription rewrites a description with the target market's
// templates: an opening sentence, a quality clause when no quality word is
// present, and a call-to-action clause when no action word is present.
func OptimizeDescription(description, language string) DescriptionResult {
	vocab := vocabularyFor(language)
	lower := strings.ToLower(description)

	var b strings.Builder
	b.WriteString(vocab.descOpening)
	if description != "" {
		b.WriteString(" ")
		b.WriteString(description)
	}

	if !containsAny(lower, vocab.quality) {
		b.WriteString(" ")
		b.WriteString(fmt.Sprintf(vocab.qualityClause, vocab.descriptive[0]))
	}
	if !containsAny(lower, vocab.action) {
		b.WriteString(" ")
		b.WriteString(fmt.Sprintf(vocab.actionClause, TitleCase(vocab.action[0])))
	}

	optimized := b.String()

	return DescriptionResult{
		Original:     description,
		Optimized:    optimized,
		Language:     language,
		Improvements: descriptionImprovements(description, optimized, vocab),
	}
}

// titleImprovements diffs vocabulary-class presence between the original and
// optimized title. A generic message is returned only when no concrete
// improvement was detected.
func titleImprovements(original, optimized string, vocab vocabulary) []string {
	var improvements []string

	if len(strings.Fields(optimized)) > len(strings.Fields(original)) {
		improvements = append(improvements, "Added descriptive keywords")
	}
	if strings.Contains(optimized, "|") && !strings.Contains(original, "|") {
		improvements = append(improvements, "Added structured formatting")
	}
	if containsAny(strings.ToLower(optimized), vocab.quality) && !containsAny(strings.ToLower(original), vocab.quality) {
		improvements = append(improvements, "Enhanced with quality indicators")
	}

	if len(improvements) == 0 {
		improvements = append(improvements, "Optimized for better search visibility")
	}
	return improvements
}

func descriptionImprovements(original, optimized string, vocab vocabulary) []string {
	var improvements []string

	if float64(len(optimized)) > float64(len(original))*1.2 {
		improvements = append(improvements, "Extended content for better SEO")
	}
	if containsAny(strings.ToLower(optimized), vocab.action) && !containsAny(strings.ToLower(original), vocab.action) {
		improvements = append(improvements, "Added call-to-action")
	}
	if containsAny(strings.ToLower(optimized), vocab.quality) && !containsAny(strings.ToLower(original), vocab.quality) {
		improvements = append(improvements, "Enhanced with quality keywords")
	}

	if len(improvements) == 0 {
		improvements = append(improvements, "Optimized for better search ranking")
	}
	return improvements
}
