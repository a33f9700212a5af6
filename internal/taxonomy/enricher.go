package taxonomy

import (
	"github.com/casemark/taxonomy-mapper/internal/logging"
)

// Enricher populates every category's keyword set from its description
// and name. Enrichment is deterministic and idempotent: the same store
// contents always produce the same keyword sets.
type Enricher struct {
	logger logging.Logger
}

// NewEnricher creates an enricher.
func NewEnricher(logger logging.Logger) *Enricher {
	return &Enricher{logger: logger}
}

// Enrich mutates the store's categories in place and returns the store
// for chaining. It must run before the store is shared with readers;
// Build guarantees that ordering.
func (e *Enricher) Enrich(store *Store) *Store {
	keywordTotal := 0
	for _, category := range store.AllCategories() {
		if category.Keywords == nil {
			category.Keywords = make(map[string]struct{})
		}

		if category.Description != "" {
			for kw := range ExtractKeywords(category.Description) {
				category.Keywords[kw] = struct{}{}
			}
		}

		// The category's own name is always part of its vocabulary,
		// so a category with an empty description is still matchable.
		if name := NormalizeName(category.Name); name != "" {
			category.Keywords[name] = struct{}{}
		}
		for _, word := range Tokenize(category.Name) {
			if !isStopWord(word) {
				category.Keywords[word] = struct{}{}
			}
		}

		keywordTotal += len(category.Keywords)
	}

	e.logger.Info("taxonomy enriched",
		"categories", store.Len(),
		"keywords", keywordTotal,
	)
	return store
}

// Build loads the taxonomy from resourceDir and enriches it in one
// step. The returned store is fully populated and should be treated as
// read-only by all consumers.
func Build(resourceDir string, logger logging.Logger) (*Store, error) {
	store, err := NewLoader(logger).Load(resourceDir)
	if err != nil {
		return nil, err
	}
	return NewEnricher(logger).Enrich(store), nil
}
