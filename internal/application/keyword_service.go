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

// Default metrics for researched keywords. Real search volume and difficulty
// require a third-party SEO data source; until one is wired in, new records
// carry these placeholders.
const (
	defaultSearchVolume    = 500
	defaultDifficultyScore = 50
)

// KeywordService runs keyword research for a store and persists the results
// as store-scoped keyword records.
type KeywordService struct {
	keywords ports.KeywordRepository
	provider ports.TextProvider
	ledger   ports.TaskLedger
	logger   zerolog.Logger
}

// NewKeywordService creates a new keyword research service.
func NewKeywordService(
	keywords ports.KeywordRepository,
	provider ports.TextProvider,
	ledger ports.TaskLedger,
	logger zerolog.Logger,
) *KeywordService {
	return &KeywordService{
		keywords: keywords,
		provider: provider,
		ledger:   ledger,
		logger:   logger,
	}
}

// ResearchInput is the request for a keyword research pass.
type ResearchInput struct {
	StoreID  int64  `json:"store_id"`
	Topic    string `json:"topic"`
	Language string `json:"language"`
	Count    int    `json:"count"`
}

// ResearchKeywords generates keyword suggestions for a topic and stores each
// as a keyword record. Provider failures degrade to deterministic topic
// variations so the operation still completes.
func (s *KeywordService) ResearchKeywords(ctx context.Context, input ResearchInput) ([]*domain.Keyword, error) {
	if strings.TrimSpace(input.Topic) == "" {
		return nil, &domain.ValidationError{Field: "topic", Reason: "topic is required"}
	}
	language := input.Language
	if language == "" {
		language = "en"
	} else if !seo.IsSupported(language) {
		return nil, &domain.ValidationError{Field: "language", Reason: fmt.Sprintf("unsupported language %q", language)}
	}
	count := input.Count
	if count < 1 || count > 20 {
		count = 10
	}

	suggestions := s.suggest(ctx, input.Topic, language, count)

	records := make([]*domain.Keyword, 0, len(suggestions))
	for _, kw := range suggestions {
		record := &domain.Keyword{
			StoreID:         input.StoreID,
			Keyword:         kw,
			SearchVolume:    defaultSearchVolume,
			DifficultyScore: defaultDifficultyScore,
		}
		if err := s.keywords.Create(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to persist keyword %q: %w", kw, err)
		}
		records = append(records, record)
	}

	s.logger.Info().
		Int64("store_id", input.StoreID).
		Str("topic", input.Topic).
		Int("count", len(records)).
		Msg("Keyword research completed")

	s.recordResearch(ctx, input, records)
	return records, nil
}

// ListKeywords returns a store's keyword research records.
func (s *KeywordService) ListKeywords(ctx context.Context, storeID int64) ([]*domain.Keyword, error) {
	return s.keywords.ListByStore(ctx, storeID)
}

// suggest asks the provider for keyword ideas and falls back to
// deterministic topic variations on failure.
func (s *KeywordService) suggest(ctx context.Context, topic, language string, count int) []string {
	prompt := fmt.Sprintf(
		"Generate %d SEO keywords for the topic: %s. Return only the keywords, comma-separated, no numbering.",
		count, topic,
	)
	raw, err := s.provider.Complete(ctx, systemPromptFor(keywordSystemPrompts, language), prompt, 200, 0.7)
	if err != nil {
		s.logger.Warn().Err(err).Str("topic", topic).Msg("Keyword provider failed, using topic variations")
		return truncateKeywords(fallbackKeywords(topic), count)
	}

	var suggestions []string
	for _, part := range strings.Split(raw, ",") {
		kw := strings.TrimSpace(strings.Trim(strings.TrimSpace(part), `"`))
		if kw != "" {
			suggestions = append(suggestions, kw)
		}
	}
	if len(suggestions) == 0 {
		return truncateKeywords(fallbackKeywords(topic), count)
	}
	return truncateKeywords(suggestions, count)
}

func truncateKeywords(keywords []string, count int) []string {
	if len(keywords) > count {
		return keywords[:count]
	}
	return keywords
}

// recordResearch writes one ledger row for the research pass. Failures are
// logged and swallowed.
func (s *KeywordService) recordResearch(ctx context.Context, input ResearchInput, records []*domain.Keyword) {
	inputJSON, _ := json.Marshal(map[string]any{"topic": input.Topic, "count": input.Count})
	keywords := make([]string, 0, len(records))
	for _, r := range records {
		keywords = append(keywords, r.Keyword)
	}
	outputJSON, _ := json.Marshal(map[string]any{"keywords": keywords})

	now := time.Now().UTC()
	task := &domain.Task{
		StoreID:     &input.StoreID,
		TaskType:    domain.TaskKeywordGeneration,
		Status:      domain.TaskCompleted,
		Language:    input.Language,
		InputData:   string(inputJSON),
		OutputData:  string(outputJSON),
		CompletedAt: &now,
	}
	if err := s.ledger.Record(ctx, task); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to record ledger entry")
	}
}
