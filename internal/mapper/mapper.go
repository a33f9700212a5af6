// Package mapper scores content against the enriched legal taxonomy
// and produces ranked, thresholded category matches.
package mapper

import (
	"sort"
	"unicode/utf8"

	"github.com/casemark/taxonomy-mapper/internal/domain"
	"github.com/casemark/taxonomy-mapper/internal/logging"
	"github.com/casemark/taxonomy-mapper/internal/taxonomy"
)

// Mapper maps arbitrary content strings onto the taxonomy. It holds a
// read-only store and a prebuilt keyword automaton; a Mapper is safe
// for concurrent use once constructed.
type Mapper struct {
	store  *taxonomy.Store
	index  *keywordIndex
	logger logging.Logger
}

// New creates a mapper over an enriched store. Mapping against a store
// that was never enriched degenerates to zero matches everywhere.
func New(store *taxonomy.Store, logger logging.Logger) *Mapper {
	return &Mapper{
		store:  store,
		index:  buildIndex(store),
		logger: logger,
	}
}

// ExtractKeywords extracts the matching vocabulary from content text,
// mirroring the enricher's tokenization exactly.
func (m *Mapper) ExtractKeywords(content string) map[string]struct{} {
	return taxonomy.ExtractKeywords(content)
}

// Score computes how much of a category's vocabulary the content
// covers: |content ∩ category| / |category|. The denominator is the
// category's keyword-set size, so this is deliberately asymmetric, and
// a category with no keywords scores 0.
func Score(contentKeywords map[string]struct{}, category *domain.Category) float64 {
	if len(category.Keywords) == 0 {
		return 0
	}

	matches := 0
	// Iterate the smaller set.
	if len(contentKeywords) <= len(category.Keywords) {
		for kw := range contentKeywords {
			if _, ok := category.Keywords[kw]; ok {
				matches++
			}
		}
	} else {
		for kw := range category.Keywords {
			if _, ok := contentKeywords[kw]; ok {
				matches++
			}
		}
	}
	return float64(matches) / float64(len(category.Keywords))
}

// MapToTaxonomy scores every parent category against the content and
// returns the top parents (score > 0.1, at most 3), each with its top
// subcategories (score > 0.1, at most 5). Ties preserve taxonomy
// insertion order via stable sorting.
func (m *Mapper) MapToTaxonomy(content string) *domain.MappingResult {
	contentKeywords := m.ExtractKeywords(content)
	candidates := m.index.candidates(content)

	type scored struct {
		category *domain.Category
		score    float64
	}

	parents := m.store.ParentCategories()
	parentScores := make([]scored, 0, len(parents))
	for _, parent := range parents {
		score := 0.0
		if _, ok := candidates[parent.ID]; ok {
			score = Score(contentKeywords, parent)
		}
		parentScores = append(parentScores, scored{parent, score})
	}

	sort.SliceStable(parentScores, func(i, j int) bool {
		return parentScores[i].score > parentScores[j].score
	})

	result := &domain.MappingResult{
		ParentCategories: make([]domain.ParentMatch, 0, domain.MaxParentMatches),
		RawContentLength: utf8.RuneCountInString(content),
	}

	for _, ps := range parentScores {
		if len(result.ParentCategories) == domain.MaxParentMatches {
			break
		}
		if ps.score <= domain.MinMatchScore {
			continue
		}

		match := domain.ParentMatch{
			ID:            ps.category.ID,
			Name:          ps.category.Name,
			Score:         ps.score,
			Subcategories: m.rankSubcategories(ps.category.ID, contentKeywords, candidates),
		}
		result.ParentCategories = append(result.ParentCategories, match)
	}

	m.logger.Debug("taxonomy mapping complete",
		"content_length", result.RawContentLength,
		"content_keywords", len(contentKeywords),
		"parents_matched", len(result.ParentCategories),
	)
	return result
}

// rankSubcategories scores a parent's subcategories and keeps the top
// matches above the threshold.
func (m *Mapper) rankSubcategories(parentID int, contentKeywords map[string]struct{}, candidates map[int]struct{}) []domain.SubcategoryMatch {
	matches := make([]domain.SubcategoryMatch, 0)
	for _, sub := range m.store.Subcategories(parentID) {
		if _, ok := candidates[sub.ID]; !ok {
			continue
		}
		score := Score(contentKeywords, sub)
		if score > domain.MinMatchScore {
			matches = append(matches, domain.SubcategoryMatch{
				ID:    sub.ID,
				Name:  sub.Name,
				Score: score,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > domain.MaxSubcategoryMatches {
		matches = matches[:domain.MaxSubcategoryMatches]
	}
	return matches
}

// CandidateCount reports how many categories the keyword automaton
// flags for a piece of content. Exposed for telemetry.
func (m *Mapper) CandidateCount(content string) int {
	return len(m.index.candidates(content))
}
