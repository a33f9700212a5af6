package classifier

import (
	"context"
	"testing"

	"github.com/casemark/taxonomy-mapper/internal/confidence"
	"github.com/casemark/taxonomy-mapper/internal/domain"
	"github.com/casemark/taxonomy-mapper/internal/logging"
	"github.com/casemark/taxonomy-mapper/internal/mapper"
	"github.com/casemark/taxonomy-mapper/internal/taxonomy"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	store := taxonomy.NewStore()
	business := domain.NewCategory(3, "Business Law", nil,
		"Corporate formation, incorporation and commercial contracts between businesses.")
	if err := store.Add(business); err != nil {
		t.Fatalf("add category: %v", err)
	}
	taxonomy.NewEnricher(logging.NewNop()).Enrich(store)

	m := mapper.New(store, logging.NewNop())
	scorer := confidence.NewScorer(logging.NewNop())
	return New(m, scorer, nil, logging.NewNop(), Config{Version: "test"})
}

func TestClassify(t *testing.T) {
	c := newTestClassifier(t)

	item := &domain.ContentItem{
		ID:      "item-1",
		Content: "Our firm handles corporate formation, incorporation and commercial contracts for businesses of every size.",
		Classification: &domain.ExternalClassification{
			PracticeArea: domain.PracticeAreas{"Business Law"},
			ContentType:  "service_page",
		},
	}

	result, err := c.Classify(context.Background(), item)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}

	if result.ContentItemID != "item-1" {
		t.Errorf("content item id = %q", result.ContentItemID)
	}
	if result.ClassifierVersion != "test" {
		t.Errorf("version = %q, want test", result.ClassifierVersion)
	}
	if result.ClassificationMethod != domain.MethodKeywordTaxonomy {
		t.Errorf("method = %q", result.ClassificationMethod)
	}
	if result.TopCategoryName() != "Business Law" {
		t.Errorf("top category = %q, want Business Law", result.TopCategoryName())
	}
	if result.Confidence == nil || result.Confidence.ConfidenceScore <= 0 {
		t.Error("confidence should be scored")
	}
	// Practice area agrees with the mapped category.
	if result.Confidence.Evidence.SemanticSimilarityScore != 1.0 {
		t.Errorf("semantic similarity = %v, want 1.0", result.Confidence.Evidence.SemanticSimilarityScore)
	}
	if result.ClassifiedAt.IsZero() {
		t.Error("classified_at not set")
	}
}

func TestClassifyEmptyContent(t *testing.T) {
	c := newTestClassifier(t)

	result, err := c.Classify(context.Background(), &domain.ContentItem{ID: "empty"})
	if err != nil {
		t.Fatalf("empty content must not fail: %v", err)
	}
	if len(result.TaxonomyMapping.ParentCategories) != 0 {
		t.Errorf("empty content matched categories: %+v", result.TaxonomyMapping.ParentCategories)
	}
	if result.Confidence.ConfidenceLevel != domain.ConfidenceLevelLow {
		t.Errorf("level = %q, want low", result.Confidence.ConfidenceLevel)
	}
	if result.Confidence.IsReliable {
		t.Error("empty content must not be reliable")
	}
}

func TestClassifyCancelledContext(t *testing.T) {
	c := newTestClassifier(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Classify(ctx, &domain.ContentItem{ID: "x", Content: "anything"})
	if err == nil {
		t.Fatal("cancelled context should abort classification")
	}
}
