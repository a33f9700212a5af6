package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casemark/taxonomy-mapper/internal/domain"
)

func newTestRepo(t *testing.T) *HistoryRepository {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewHistoryRepository(db)
	require.NoError(t, repo.Migrate(context.Background()))
	return repo
}

func testResult(contentID string, score float64) *domain.ClassificationResult {
	level := domain.ConfidenceLevelLow
	if score >= 0.7 {
		level = domain.ConfidenceLevelHigh
	} else if score >= 0.15 {
		level = domain.ConfidenceLevelMedium
	}
	return &domain.ClassificationResult{
		ContentItemID: contentID,
		TaxonomyMapping: &domain.MappingResult{
			ParentCategories: []domain.ParentMatch{
				{ID: 1, Name: "Family Law", Score: 0.8},
			},
			RawContentLength: 120,
		},
		Confidence: &domain.ConfidenceResult{
			ConfidenceScore: score,
			ConfidenceLevel: level,
			IsReliable:      score >= 0.15,
		},
		ClassifierVersion:    "1.0.0",
		ClassificationMethod: domain.MethodKeywordTaxonomy,
		ProcessingTimeMs:     3,
		ClassifiedAt:         time.Now().UTC(),
	}
}

func TestCreateAndGetByContentID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testResult("item-1", 0.8)))

	got, err := repo.GetByContentID(ctx, "item-1")
	require.NoError(t, err)
	assert.Equal(t, "item-1", got.ContentItemID)
	assert.Equal(t, "Family Law", got.TopCategoryName())
	assert.Equal(t, 0.8, got.Confidence.ConfidenceScore)
	assert.Equal(t, domain.ConfidenceLevelHigh, got.Confidence.ConfidenceLevel)
	assert.True(t, got.Confidence.IsReliable)
}

func TestGetByContentIDNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetByContentID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetByContentIDReturnsLatest(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := testResult("item-1", 0.3)
	first.ClassifiedAt = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, testResult("item-1", 0.9)))

	got, err := repo.GetByContentID(ctx, "item-1")
	require.NoError(t, err)
	assert.Equal(t, 0.9, got.Confidence.ConfidenceScore)
}

func TestListRecent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i, id := range []string{"a", "b", "c"} {
		r := testResult(id, 0.5)
		r.ClassifiedAt = time.Now().UTC().Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, r))
	}

	entries, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "c", entries[0].ContentItemID)
	assert.Equal(t, "b", entries[1].ContentItemID)
	assert.Equal(t, "Family Law", entries[0].TopCategory)
}

func TestGetStats(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testResult("a", 0.8)))
	require.NoError(t, repo.Create(ctx, testResult("b", 0.4)))
	require.NoError(t, repo.Create(ctx, testResult("c", 0.05)))

	stats, err := repo.GetStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalClassified)
	assert.InDelta(t, (0.8+0.4+0.05)/3, stats.AvgConfidence, 1e-9)
	assert.Equal(t, 2, stats.ReliableCount)
	assert.Equal(t, 1, stats.ConfidenceLevels[domain.ConfidenceLevelHigh])
	assert.Equal(t, 1, stats.ConfidenceLevels[domain.ConfidenceLevelMedium])
	assert.Equal(t, 1, stats.ConfidenceLevels[domain.ConfidenceLevelLow])
}

func TestGetStatsEmpty(t *testing.T) {
	repo := newTestRepo(t)

	stats, err := repo.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalClassified)
	assert.Equal(t, 0.0, stats.AvgConfidence)
	assert.Empty(t, stats.ConfidenceLevels)
}
