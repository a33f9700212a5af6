package domain

// Mapping output bounds: at most three ranked parents, five ranked
// subcategories per parent, and a minimum score to be included at all.
const (
	MaxParentMatches      = 3
	MaxSubcategoryMatches = 5
	MinMatchScore         = 0.1
)

// SubcategoryMatch is one ranked subcategory inside a parent match.
type SubcategoryMatch struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// ParentMatch is one ranked parent category with its best subcategories.
type ParentMatch struct {
	ID            int                `json:"id"`
	Name          string             `json:"name"`
	Score         float64            `json:"score"`
	Subcategories []SubcategoryMatch `json:"subcategories"`
}

// MappingResult is the output of mapping one content string onto the
// taxonomy: up to three parents, each with up to five subcategories,
// all with score > MinMatchScore, ranked descending.
type MappingResult struct {
	ParentCategories []ParentMatch `json:"parent_categories"`
	RawContentLength int           `json:"raw_content_length"`
}

// TopParentScore returns the best parent score, or 0 when nothing matched.
func (m *MappingResult) TopParentScore() float64 {
	if len(m.ParentCategories) == 0 {
		return 0
	}
	return m.ParentCategories[0].Score
}

// ParentNames returns the names of all matched parents in rank order.
func (m *MappingResult) ParentNames() []string {
	names := make([]string, 0, len(m.ParentCategories))
	for _, p := range m.ParentCategories {
		names = append(names, p.Name)
	}
	return names
}
