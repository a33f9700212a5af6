// Package taxonomy owns the legal category hierarchy: the in-memory
// store, the flat-file loader and the keyword enricher. A store is
// built once at startup via Build and treated as read-only afterwards.
package taxonomy

import (
	"fmt"
	"strings"

	"github.com/casemark/taxonomy-mapper/internal/domain"
)

// ErrOrphanSubcategory is returned when a subcategory references a
// parent that has not been added yet. Parents must be inserted first.
var ErrOrphanSubcategory = fmt.Errorf("subcategory parent not present in store")

// Store holds every category, with secondary indexes for parent
// iteration, subcategory lookup and case-insensitive name lookup.
// Insertion order of parents is preserved so ranking ties stay stable.
type Store struct {
	categories  map[int]*domain.Category
	parentOrder []int
	subcatOrder map[int][]int
	nameToID    map[string]int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		categories:  make(map[int]*domain.Category),
		subcatOrder: make(map[int][]int),
		nameToID:    make(map[string]int),
	}
}

// Add inserts a category. A subcategory whose parent is absent is
// rejected with ErrOrphanSubcategory and not stored. Name collisions
// are not rejected: the last insert wins the name index slot.
func (s *Store) Add(category *domain.Category) error {
	if category.ParentID != nil {
		parent, ok := s.categories[*category.ParentID]
		if !ok {
			return fmt.Errorf("category %d (%s): %w", category.ID, category.Name, ErrOrphanSubcategory)
		}
		s.subcatOrder[*category.ParentID] = append(s.subcatOrder[*category.ParentID], category.ID)
		parent.Subcategories = append(parent.Subcategories, category.ID)
	} else {
		s.parentOrder = append(s.parentOrder, category.ID)
	}

	s.categories[category.ID] = category
	s.nameToID[strings.ToLower(category.Name)] = category.ID
	return nil
}

// Get returns the category with the given id.
func (s *Store) Get(id int) (*domain.Category, bool) {
	c, ok := s.categories[id]
	return c, ok
}

// GetByName looks up a category by name, case-insensitively.
func (s *Store) GetByName(name string) (*domain.Category, bool) {
	id, ok := s.nameToID[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return s.Get(id)
}

// ParentCategories returns all top-level categories in insertion order.
func (s *Store) ParentCategories() []*domain.Category {
	parents := make([]*domain.Category, 0, len(s.parentOrder))
	for _, id := range s.parentOrder {
		parents = append(parents, s.categories[id])
	}
	return parents
}

// Subcategories returns the children of a parent in insertion order.
func (s *Store) Subcategories(parentID int) []*domain.Category {
	ids := s.subcatOrder[parentID]
	subs := make([]*domain.Category, 0, len(ids))
	for _, id := range ids {
		subs = append(subs, s.categories[id])
	}
	return subs
}

// Len returns the total number of categories.
func (s *Store) Len() int {
	return len(s.categories)
}

// ParentCount returns the number of top-level categories.
func (s *Store) ParentCount() int {
	return len(s.parentOrder)
}

// AllCategories returns every category, parents first in insertion
// order, each followed by its subcategories.
func (s *Store) AllCategories() []*domain.Category {
	all := make([]*domain.Category, 0, len(s.categories))
	for _, id := range s.parentOrder {
		all = append(all, s.categories[id])
		for _, subID := range s.subcatOrder[id] {
			all = append(all, s.categories[subID])
		}
	}
	return all
}
