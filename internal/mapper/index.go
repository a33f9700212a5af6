package mapper

import (
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/casemark/taxonomy-mapper/internal/taxonomy"
)

// keywordIndex is an Aho-Corasick automaton over every category
// keyword. It prefilters the categories that can possibly score above
// zero in a single pass through the content, instead of intersecting
// the content against every category's vocabulary.
//
// A substring hit is a superset signal: every true keyword match (the
// keyword present in the content's extracted keyword set) is also a
// substring of the normalized content, so no scoring category is ever
// missed. Exact set intersection still decides the score.
type keywordIndex struct {
	matcher  *ahocorasick.Matcher
	keywords []string
	kwToCats map[string][]int
}

// buildIndex constructs the automaton from an enriched store.
func buildIndex(store *taxonomy.Store) *keywordIndex {
	idx := &keywordIndex{
		kwToCats: make(map[string][]int),
	}

	for _, category := range store.AllCategories() {
		for kw := range category.Keywords {
			if _, seen := idx.kwToCats[kw]; !seen {
				idx.keywords = append(idx.keywords, kw)
			}
			idx.kwToCats[kw] = append(idx.kwToCats[kw], category.ID)
		}
	}

	if len(idx.keywords) > 0 {
		idx.matcher = ahocorasick.NewStringMatcher(idx.keywords)
	}
	return idx
}

// candidates returns the ids of every category with at least one
// keyword hit in the content.
func (idx *keywordIndex) candidates(content string) map[int]struct{} {
	if idx.matcher == nil {
		return nil
	}

	text := " " + strings.Join(taxonomy.Tokenize(content), " ") + " "
	hits := idx.matcher.Match([]byte(text))

	cats := make(map[int]struct{})
	for _, hit := range hits {
		if hit >= len(idx.keywords) {
			continue
		}
		for _, id := range idx.kwToCats[idx.keywords[hit]] {
			cats[id] = struct{}{}
		}
	}
	return cats
}
