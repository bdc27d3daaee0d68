package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"storeseo-core/internal/domain"
	"storeseo-core/internal/ports"
	"storeseo-core/internal/seo"

	"github.com/rs/zerolog"
)

// Per-language system prompts for the text generation provider.
var titleSystemPrompts = map[string]string{
	"en": "You are an SEO expert. Create compelling, search-optimized product titles that rank well on Google.",
	"es": "Eres un experto en SEO. Crea títulos de productos convincentes y optimizados para búsquedas que se posicionen bien en Google.",
	"fr": "Vous êtes un expert SEO. Créez des titres de produits convaincants et optimisés pour les recherches qui se classent bien sur Google.",
	"de": "Sie sind ein SEO-Experte. Erstellen Sie überzeugende, suchoptimierte Produkttitel, die bei Google gut ranken.",
	"zh": "你是SEO专家。创建引人注目、搜索优化的产品标题，在Google上排名良好。",
}

var descriptionSystemPrompts = map[string]string{
	"en": "You are an SEO copywriter. Create compelling product descriptions that convert visitors and rank well in search engines.",
	"es": "Eres un redactor SEO. Crea descripciones de productos convincentes que conviertan visitantes y se posicionen bien en motores de búsqueda.",
	"fr": "Vous êtes un rédacteur SEO. Créez des descriptions de produits convaincantes qui convertissent les visiteurs et se classent bien dans les moteurs de recherche.",
	"de": "Sie sind ein SEO-Texter. Erstellen Sie überzeugende Produktbeschreibungen, die Besucher konvertieren und in Suchmaschinen gut ranken.",
	"zh": "你是SEO文案写手。创建引人注目的产品描述，既能转化访客又能在搜索引擎中获得良好排名。",
}

var keywordSystemPrompts = map[string]string{
	"en": "You are an SEO keyword research expert. Generate relevant, high-value keywords.",
	"es": "Eres un experto en investigación de palabras clave SEO. Genera palabras clave relevantes y de alto valor.",
	"fr": "Vous êtes un expert en recherche de mots-clés SEO. Générez des mots-clés pertinents et de haute valeur.",
	"de": "Sie sind ein SEO-Keyword-Recherche-Experte. Generieren Sie relevante, hochwertige Keywords.",
	"zh": "你是SEO关键词研究专家。生成相关的、高价值的关键词。",
}

var auditSystemPrompts = map[string]string{
	"en": "You are an SEO analyst. Analyze content and provide actionable recommendations.",
	"es": "Eres un analista SEO. Analiza el contenido y proporciona recomendaciones accionables.",
	"fr": "Vous êtes un analyste SEO. Analysez le contenu et fournissez des recommandations exploitables.",
	"de": "Sie sind ein SEO-Analyst. Analysieren Sie Inhalte und geben Sie umsetzbare Empfehlungen.",
	"zh": "你是SEO分析师。分析内容并提供可操作的建议。",
}

func systemPromptFor(prompts map[string]string, language string) string {
	if p, ok := prompts[language]; ok {
		return p
	}
	return prompts["en"]
}

// blogLengthSpecs maps requested article length to prompt word targets and
// token budgets.
var blogLengthSpecs = map[string]struct {
	Words     string
	MaxTokens int
}{
	"short":  {Words: "300-500", MaxTokens: 600},
	"medium": {Words: "500-800", MaxTokens: 900},
	"long":   {Words: "800-1200", MaxTokens: 1400},
}

// ContentService produces localized, SEO-scored content through the text
// generation provider, degrading to the deterministic template optimizer when
// the provider fails. Every operation writes exactly one ledger row.
type ContentService struct {
	provider ports.TextProvider
	ledger   ports.TaskLedger
	detector *seo.Detector
	logger   zerolog.Logger
}

// NewContentService creates a new content generation service.
func NewContentService(
	provider ports.TextProvider,
	ledger ports.TaskLedger,
	detector *seo.Detector,
	logger zerolog.Logger,
) *ContentService {
	return &ContentService{
		provider: provider,
		ledger:   ledger,
		detector: detector,
		logger:   logger,
	}
}

// GenerateTitleInput is the request for a title rewrite.
type GenerateTitleInput struct {
	StoreID     *int64   `json:"store_id,omitempty"`
	Title       string   `json:"product_title"`
	Description string   `json:"product_description"`
	Language    string   `json:"language"`
	Keywords    []string `json:"keywords"`
}

// TitleGeneration is the result of a title rewrite.
type TitleGeneration struct {
	TaskID         int64    `json:"task_id"`
	OriginalTitle  string   `json:"original_title"`
	OptimizedTitle string   `json:"optimized_title"`
	Language       string   `json:"language"`
	Improvements   []string `json:"improvements"`
	SEOScore       int      `json:"seo_score"`
}

// GenerateTitle rewrites a product title for the target language. Provider
// failures degrade to the deterministic template optimizer; the operation
// still completes and the ledger records the fallback content.
func (s *ContentService) GenerateTitle(ctx context.Context, input GenerateTitleInput) (*TitleGeneration, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, &domain.ValidationError{Field: "product_title", Reason: "is required"}
	}
	language := input.Language
	if language == "" {
		language, _ = s.detector.Detect(input.Title + " " + input.Description)
	}

	system := systemPromptFor(titleSystemPrompts, language) +
		" Guidelines: 1) Keep under 60 characters 2) Include main keywords naturally 3) Make it compelling for clicks 4) Avoid keyword stuffing"
	user := fmt.Sprintf("Original title: %s\nDescription: %s\n%s\nLanguage: %s\n\nCreate an SEO-optimized title:",
		input.Title, input.Description, keywordsLine(input.Keywords), language)

	var optimized string
	improvements := []string{
		"Enhanced with additional descriptive keywords",
		"Expanded with relevant search terms",
	}
	if text, err := s.provider.Complete(ctx, system, user, 100, 0.7); err == nil {
		optimized = strings.TrimSpace(text)
	} else {
		s.logger.Warn().Err(err).Str("language", language).Msg("Text provider failed, using template fallback for title")
		result := seo.OptimizeTitle(input.Title, language)
		optimized = result.Optimized
		improvements = result.Improvements
	}

	out := &TitleGeneration{
		OriginalTitle:  input.Title,
		OptimizedTitle: optimized,
		Language:       language,
		Improvements:   improvements,
		SEOScore:       seo.ScoreGenerated(optimized, input.Keywords),
	}
	out.TaskID = s.recordTask(ctx, input.StoreID, domain.TaskTitleGeneration, language, input, out)
	return out, nil
}

// GenerateDescriptionInput is the request for a description rewrite.
type GenerateDescriptionInput struct {
	StoreID     *int64   `json:"store_id,omitempty"`
	Title       string   `json:"product_title"`
	Description string   `json:"product_description"`
	Language    string   `json:"language"`
	Keywords    []string `json:"keywords"`
}

// DescriptionGeneration is the result of a description rewrite.
type DescriptionGeneration struct {
	TaskID               int64    `json:"task_id"`
	OriginalDescription  string   `json:"original_description"`
	OptimizedDescription string   `json:"optimized_description"`
	Language             string   `json:"language"`
	Improvements         []string `json:"improvements"`
	SEOScore             int      `json:"seo_score"`
}

// GenerateDescription rewrites a product description for the target language.
func (s *ContentService) GenerateDescription(ctx context.Context, input GenerateDescriptionInput) (*DescriptionGeneration, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, &domain.ValidationError{Field: "product_title", Reason: "is required"}
	}
	language := input.Language
	if language == "" {
		language, _ = s.detector.Detect(input.Title + " " + input.Description)
	}

	system := systemPromptFor(descriptionSystemPrompts, language) +
		" Guidelines: 1) Write 150-300 words 2) Include keywords naturally 3) Focus on benefits 4) Include call-to-action 5) Use bullet points for features"
	user := fmt.Sprintf("Product: %s\nCurrent description: %s\n%s\nLanguage: %s\n\nCreate an SEO-optimized description:",
		input.Title, input.Description, keywordsLine(input.Keywords), language)

	var optimized string
	improvements := []string{
		"Expanded content for better SEO coverage",
		"Added call-to-action elements",
	}
	if text, err := s.provider.Complete(ctx, system, user, 400, 0.7); err == nil {
		optimized = strings.TrimSpace(text)
	} else {
		s.logger.Warn().Err(err).Str("language", language).Msg("Text provider failed, using template fallback for description")
		result := seo.OptimizeDescription(input.Description, language)
		optimized = result.Optimized
		improvements = result.Improvements
	}

	out := &DescriptionGeneration{
		OriginalDescription:  input.Description,
		OptimizedDescription: optimized,
		Language:             language,
		Improvements:         improvements,
		SEOScore:             seo.ScoreGenerated(optimized, input.Keywords),
	}
	out.TaskID = s.recordTask(ctx, input.StoreID, domain.TaskDescriptionGeneration, language, input, out)
	return out, nil
}

// GenerateBlogInput is the request for a blog article draft.
type GenerateBlogInput struct {
	StoreID  *int64   `json:"store_id,omitempty"`
	Topic    string   `json:"topic"`
	Keywords []string `json:"keywords"`
	Language string   `json:"language"`
	Length   string   `json:"length"`
}

// BlogGeneration is a generated blog article draft.
type BlogGeneration struct {
	TaskID          int64    `json:"task_id"`
	Topic           string   `json:"topic"`
	Content         string   `json:"content"`
	MetaDescription string   `json:"meta_description"`
	Language        string   `json:"language"`
	Length          string   `json:"length"`
	TargetKeywords  []string `json:"target_keywords"`
	WordCount       int      `json:"word_count"`
	SEOScore        int      `json:"seo_score"`
}

// GenerateBlogArticle drafts a full blog article on the given topic.
func (s *ContentService) GenerateBlogArticle(ctx context.Context, input GenerateBlogInput) (*BlogGeneration, error) {
	if strings.TrimSpace(input.Topic) == "" {
		return nil, &domain.ValidationError{Field: "topic", Reason: "is required"}
	}
	language := input.Language
	if language == "" {
		language = s.detector.Fallback()
	}
	spec, ok := blogLengthSpecs[input.Length]
	if !ok {
		input.Length = "short"
		spec = blogLengthSpecs["short"]
	}

	system := "You are an SEO content writer. Write concise, engaging blog articles with clear structure."
	kwLine := ""
	if len(input.Keywords) > 0 {
		limit := minIntValue(len(input.Keywords), 3)
		kwLine = "Keywords: " + strings.Join(input.Keywords[:limit], ", ")
	}
	user := fmt.Sprintf("Write a %s word blog article about: %s\n%s\nInclude: title, introduction, 2-3 main points, conclusion.",
		spec.Words, input.Topic, kwLine)

	content, err := s.provider.Complete(ctx, system, user, spec.MaxTokens, 0.7)
	score := 0
	if err != nil {
		s.logger.Warn().Err(err).Str("topic", input.Topic).Msg("Text provider failed, using fallback blog article")
		content = fallbackBlogArticle(input.Topic)
		score = 70
	} else {
		content = strings.TrimSpace(content)
		score = seo.ScoreGeneratedBlog(content, input.Keywords)
	}

	out := &BlogGeneration{
		Topic:           input.Topic,
		Content:         content,
		MetaDescription: fmt.Sprintf("Learn about %s with expert insights and practical tips.", input.Topic),
		Language:        language,
		Length:          input.Length,
		TargetKeywords:  input.Keywords,
		WordCount:       seo.WordCount(content),
		SEOScore:        score,
	}
	out.TaskID = s.recordTask(ctx, input.StoreID, domain.TaskBlogGeneration, language, input, out)
	return out, nil
}

// GenerateKeywordsInput is the request for keyword suggestions.
type GenerateKeywordsInput struct {
	StoreID  *int64 `json:"store_id,omitempty"`
	Topic    string `json:"topic"`
	Language string `json:"language"`
	Count    int    `json:"count"`
}

// KeywordGeneration is a list of suggested keywords for a topic.
type KeywordGeneration struct {
	TaskID   int64    `json:"task_id"`
	Topic    string   `json:"topic"`
	Language string   `json:"language"`
	Keywords []string `json:"keywords"`
	Count    int      `json:"count"`
}

// GenerateKeywords suggests search keywords for a topic. Provider failures
// degrade to a deterministic seed list derived from the topic.
func (s *ContentService) GenerateKeywords(ctx context.Context, input GenerateKeywordsInput) (*KeywordGeneration, error) {
	if strings.TrimSpace(input.Topic) == "" {
		return nil, &domain.ValidationError{Field: "topic", Reason: "is required"}
	}
	language := input.Language
	if language == "" {
		language = s.detector.Fallback()
	}
	count := input.Count
	if count <= 0 {
		count = 10
	}

	system := systemPromptFor(keywordSystemPrompts, language) +
		fmt.Sprintf(" Provide %d keywords as a simple comma-separated list.", count)
	user := fmt.Sprintf("Generate %d SEO keywords for: %s\nLanguage: %s\nFormat: keyword1, keyword2, keyword3...",
		count, input.Topic, language)

	var keywords []string
	if text, err := s.provider.Complete(ctx, system, user, 200, 0.5); err == nil {
		for _, kw := range strings.Split(text, ",") {
			if trimmed := strings.TrimSpace(kw); trimmed != "" {
				keywords = append(keywords, trimmed)
			}
		}
	} else {
		s.logger.Warn().Err(err).Str("topic", input.Topic).Msg("Text provider failed, using fallback keywords")
		keywords = fallbackKeywords(input.Topic)
	}
	if len(keywords) > count {
		keywords = keywords[:count]
	}

	out := &KeywordGeneration{
		Topic:    input.Topic,
		Language: language,
		Keywords: keywords,
		Count:    len(keywords),
	}
	out.TaskID = s.recordTask(ctx, input.StoreID, domain.TaskKeywordGeneration, language, input, out)
	return out, nil
}

// AuditInput is the request for an SEO audit of existing content.
type AuditInput struct {
	StoreID     *int64 `json:"store_id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Language    string `json:"language"`
}

// AuditResult is the outcome of an SEO audit.
type AuditResult struct {
	TaskID          int64    `json:"task_id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Language        string   `json:"language"`
	SEOScore        int      `json:"seo_score"`
	Analysis        string   `json:"analysis"`
	Recommendations []string `json:"recommendations"`
}

// AuditContent grades existing title/description/content and asks the
// provider for prose analysis, degrading to rule-based recommendations.
func (s *ContentService) AuditContent(ctx context.Context, input AuditInput) (*AuditResult, error) {
	if strings.TrimSpace(input.Title) == "" && strings.TrimSpace(input.Description) == "" {
		return nil, &domain.ValidationError{Field: "title", Reason: "title or description is required"}
	}
	language := input.Language
	if language == "" {
		language, _ = s.detector.Detect(input.Title + " " + input.Description + " " + input.Content)
	}

	system := systemPromptFor(auditSystemPrompts, language) + " Provide a brief analysis with 3-5 specific recommendations."
	body := input.Content
	if len(body) > 500 {
		body = body[:500]
	}
	user := fmt.Sprintf("Analyze this content for SEO:\nTitle: %s\nDescription: %s\nContent: %s...\nLanguage: %s",
		input.Title, input.Description, body, language)

	analysis := "Content analysis completed with basic SEO evaluation."
	var recommendations []string
	if text, err := s.provider.Complete(ctx, system, user, 300, 0.3); err == nil {
		analysis = strings.TrimSpace(text)
		recommendations = parseRecommendations(analysis)
	} else {
		s.logger.Warn().Err(err).Msg("Text provider failed, using rule-based audit recommendations")
	}
	if len(recommendations) == 0 {
		recommendations = []string{
			"Optimize title length (50-60 characters)",
			"Include target keywords naturally",
			"Improve meta description",
			"Add relevant internal links",
		}
	}
	if len(recommendations) > 5 {
		recommendations = recommendations[:5]
	}

	out := &AuditResult{
		Title:           input.Title,
		Description:     input.Description,
		Language:        language,
		SEOScore:        seo.ScoreContent(input.Title, input.Description, input.Content),
		Analysis:        analysis,
		Recommendations: recommendations,
	}
	out.TaskID = s.recordTask(ctx, input.StoreID, domain.TaskSEOAudit, language, input, out)
	return out, nil
}

// MarketAnalysisInput is the request for a per-market content grade.
type MarketAnalysisInput struct {
	StoreID  *int64 `json:"store_id,omitempty"`
	Content  string `json:"content"`
	Language string `json:"language"`
}

// MarketAnalysisResult is the per-market grade plus its ledger reference.
type MarketAnalysisResult struct {
	TaskID int64 `json:"task_id"`
	seo.MarketAnalysis
}

// AnalyzeMarket grades content against the target market's vocabulary using
// the deterministic rule engine. No provider call is involved; the language
// is detected from the content when not supplied.
func (s *ContentService) AnalyzeMarket(ctx context.Context, input MarketAnalysisInput) (*MarketAnalysisResult, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, &domain.ValidationError{Field: "content", Reason: "is required"}
	}
	language := input.Language
	if language == "" {
		language, _ = s.detector.Detect(input.Content)
	}

	out := &MarketAnalysisResult{MarketAnalysis: seo.AnalyzeMarket(input.Content, language)}
	out.TaskID = s.recordTask(ctx, input.StoreID, domain.TaskSEOAudit, language, input, out)
	return out, nil
}

// DetectionResult reports the inferred language of a text sample.
type DetectionResult struct {
	Language   string  `json:"detected_language"`
	Confidence float64 `json:"confidence"`
}

// DetectLanguage infers the language of a text sample.
func (s *ContentService) DetectLanguage(text string) (*DetectionResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &domain.ValidationError{Field: "text", Reason: "is required"}
	}
	lang, confidence := s.detector.Detect(text)
	return &DetectionResult{Language: lang, Confidence: confidence}, nil
}

// recordTask writes the single ledger row for an operation. Ledger failures
// are logged and swallowed so they never block the primary result.
func (s *ContentService) recordTask(ctx context.Context, storeID *int64, taskType domain.TaskType, language string, input, output any) int64 {
	inputJSON, _ := json.Marshal(input)
	outputJSON, _ := json.Marshal(output)
	now := time.Now().UTC()
	task := &domain.Task{
		StoreID:     storeID,
		TaskType:    taskType,
		Status:      domain.TaskCompleted,
		Language:    language,
		InputData:   string(inputJSON),
		OutputData:  string(outputJSON),
		CompletedAt: &now,
	}
	if err := s.ledger.Record(ctx, task); err != nil {
		s.logger.Warn().Err(err).Str("task_type", string(taskType)).Msg("Failed to record ledger entry")
		return 0
	}
	return task.ID
}

func keywordsLine(keywords []string) string {
	if len(keywords) == 0 {
		return ""
	}
	return "Target keywords: " + strings.Join(keywords, ", ")
}

func parseRecommendations(analysis string) []string {
	var recs []string
	markers := []string{"1.", "2.", "3.", "4.", "5.", "•", "-"}
	for _, line := range strings.Split(analysis, "\n") {
		trimmed := strings.TrimSpace(line)
		for _, marker := range markers {
			if strings.HasPrefix(trimmed, marker) {
				recs = append(recs, trimmed)
				break
			}
		}
	}
	return recs
}

func fallbackBlogArticle(topic string) string {
	return fmt.Sprintf(`# %[1]s

## Introduction
This guide covers the essential aspects of %[1]s.

## Key Benefits
- Professional insights and analysis
- Practical tips for implementation
- Expert recommendations

## Best Practices
Understanding %[1]s requires careful consideration of various factors.

## Conclusion
%[1]s is an important consideration for success in today's market.
`, topic)
}

func fallbackKeywords(topic string) []string {
	return []string{
		topic,
		"best " + topic,
		topic + " guide",
		"professional " + topic,
		topic + " tips",
	}
}

func minIntValue(a, b int) int {
	if a < b {
		return a
	}
	return b
}
