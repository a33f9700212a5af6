package domain

import "fmt"

// Subcategory ids are encoded as parent_id*100 + local_id, which is
// only collision-free while local ids stay below 100. The bound is a
// hard precondition validated at load time.
const (
	SubIDBase     = 100
	maxLocalSubID = SubIDBase - 1
)

// ErrSubIDOutOfRange is returned when a subcategory's local id cannot
// be encoded without colliding with another parent's id space.
var ErrSubIDOutOfRange = fmt.Errorf("subcategory local id out of range [0,%d]", maxLocalSubID)

// Category is a node in the legal taxonomy tree. Parent categories
// have a nil ParentID; subcategories carry their parent's id.
type Category struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	ParentID    *int     `json:"parent_id,omitempty"`
	Description string   `json:"description"`
	Examples    []string `json:"examples,omitempty"`
	// Subcategories holds child category ids, populated on parents only.
	Subcategories []int `json:"subcategories,omitempty"`
	// Keywords is the matching vocabulary (lower-cased words and 2-3
	// word phrases). Empty until enrichment runs.
	Keywords map[string]struct{} `json:"-"`
}

// NewCategory creates a category with an empty keyword set.
func NewCategory(id int, name string, parentID *int, description string) *Category {
	return &Category{
		ID:          id,
		Name:        name,
		ParentID:    parentID,
		Description: description,
		Keywords:    make(map[string]struct{}),
	}
}

// IsParent reports whether the category is a top-level category.
func (c *Category) IsParent() bool {
	return c.ParentID == nil
}

// SubcategoryID computes the globally unique id for a subcategory.
// It returns ErrSubIDOutOfRange when localID is not in [0,99]: for
// example parent 3 with local id 107 would encode to 407, colliding
// with parent 4's local id 7.
func SubcategoryID(parentID, localID int) (int, error) {
	if localID < 0 || localID > maxLocalSubID {
		return 0, fmt.Errorf("parent %d local %d: %w", parentID, localID, ErrSubIDOutOfRange)
	}
	return parentID*SubIDBase + localID, nil
}
