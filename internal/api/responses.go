package api

import (
	"github.com/casemark/taxonomy-mapper/internal/domain"
	"github.com/casemark/taxonomy-mapper/internal/storage"
)

// CategoryResponse represents one taxonomy category.
type CategoryResponse struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	ParentID      *int     `json:"parent_id,omitempty"`
	Subcategories []int    `json:"subcategories,omitempty"`
	Examples      []string `json:"examples,omitempty"`
}

// CategoriesListResponse represents a list of categories with metadata.
type CategoriesListResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Total      int                `json:"total"`
}

// HistoryListResponse represents recent classification history entries.
type HistoryListResponse struct {
	Entries []storage.HistoryEntry `json:"entries"`
	Total   int                    `json:"total"`
}

// StatsResponse combines classification history stats with the loaded
// taxonomy shape.
type StatsResponse struct {
	History          *storage.Stats `json:"history"`
	TaxonomySize     int            `json:"taxonomy_size"`
	ParentCategories int            `json:"parent_categories"`
}

func toCategoryResponse(category *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:            category.ID,
		Name:          category.Name,
		Description:   category.Description,
		ParentID:      category.ParentID,
		Subcategories: category.Subcategories,
		Examples:      category.Examples,
	}
}
