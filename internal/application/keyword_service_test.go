package application

import (
	"context"
	"errors"
	"testing"

	"storeseo-core/internal/domain"

	"github.com/rs/zerolog"
)

func newKeywordFixture(provider *stubProvider) (*KeywordService, *memKeywords, *memLedger) {
	keywords := newMemKeywords()
	ledger := newMemLedger()
	svc := NewKeywordService(keywords, provider, ledger, zerolog.Nop())
	return svc, keywords, ledger
}

func TestResearchKeywordsPersistsSuggestions(t *testing.T) {
	provider := &stubProvider{text: `"garden tools", best garden tools, garden tools guide`}
	svc, keywords, ledger := newKeywordFixture(provider)

	records, err := svc.ResearchKeywords(context.Background(), ResearchInput{
		StoreID: 1, Topic: "garden tools", Language: "en", Count: 5,
	})
	if err != nil {
		t.Fatalf("ResearchKeywords: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want 3", len(records))
	}
	if records[0].Keyword != "garden tools" {
		t.Errorf("Keyword = %q, want quotes stripped", records[0].Keyword)
	}
	for _, r := range records {
		if r.ID == 0 {
			t.Errorf("keyword %q not persisted", r.Keyword)
		}
		if r.SearchVolume != 500 || r.DifficultyScore != 50 {
			t.Errorf("record %q = volume %d difficulty %d, want defaults 500/50", r.Keyword, r.SearchVolume, r.DifficultyScore)
		}
	}

	stored, _ := keywords.ListByStore(context.Background(), 1)
	if len(stored) != 3 {
		t.Errorf("stored = %d, want 3", len(stored))
	}
	if row := ledger.last(); row == nil || row.TaskType != domain.TaskKeywordGeneration || row.Status != domain.TaskCompleted {
		t.Errorf("ledger row = %+v, want completed keyword_generation", row)
	}
}

func TestResearchKeywordsProviderFailureFallsBack(t *testing.T) {
	provider := &stubProvider{err: errors.New("provider down")}
	svc, _, _ := newKeywordFixture(provider)

	records, err := svc.ResearchKeywords(context.Background(), ResearchInput{StoreID: 1, Topic: "widget"})
	if err != nil {
		t.Fatalf("fallback must complete the research pass, got %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("records = %d, want 5 topic variations", len(records))
	}
	if records[1].Keyword != "best widget" || records[4].Keyword != "widget tips" {
		t.Errorf("fallback keywords = %v, want deterministic variations", records)
	}
}

func TestResearchKeywordsClampsCount(t *testing.T) {
	provider := &stubProvider{text: "a, b, c, d, e, f, g, h, i, j, k, l"}
	svc, _, _ := newKeywordFixture(provider)

	records, err := svc.ResearchKeywords(context.Background(), ResearchInput{
		StoreID: 1, Topic: "widget", Count: 99,
	})
	if err != nil {
		t.Fatalf("ResearchKeywords: %v", err)
	}
	if len(records) != 10 {
		t.Errorf("records = %d, out-of-range counts default to 10", len(records))
	}
}

func TestResearchKeywordsValidation(t *testing.T) {
	svc, _, _ := newKeywordFixture(&stubProvider{text: "x"})

	if _, err := svc.ResearchKeywords(context.Background(), ResearchInput{Topic: "  "}); !domain.IsValidation(err) {
		t.Fatalf("empty topic: err = %v, want validation error", err)
	}
	if _, err := svc.ResearchKeywords(context.Background(), ResearchInput{Topic: "widget", Language: "xx"}); !domain.IsValidation(err) {
		t.Fatalf("unsupported language: err = %v, want validation error", err)
	}
}
