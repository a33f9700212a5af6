package domain

import (
	"errors"
	"testing"
)

func TestSubcategoryID(t *testing.T) {
	tests := []struct {
		name     string
		parentID int
		localID  int
		want     int
		wantErr  bool
	}{
		{name: "typical", parentID: 3, localID: 7, want: 307},
		{name: "local zero", parentID: 3, localID: 0, want: 300},
		{name: "local max", parentID: 3, localID: 99, want: 399},
		{name: "local at base", parentID: 3, localID: 100, wantErr: true},
		// 3*100+107 = 407 would collide with parent 4, local 7.
		{name: "local collides with next parent", parentID: 3, localID: 107, wantErr: true},
		{name: "negative local", parentID: 3, localID: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SubcategoryID(tt.parentID, tt.localID)
			if tt.wantErr {
				if !errors.Is(err, ErrSubIDOutOfRange) {
					t.Fatalf("SubcategoryID(%d, %d) error = %v, want ErrSubIDOutOfRange", tt.parentID, tt.localID, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SubcategoryID(%d, %d) unexpected error: %v", tt.parentID, tt.localID, err)
			}
			if got != tt.want {
				t.Errorf("SubcategoryID(%d, %d) = %d, want %d", tt.parentID, tt.localID, got, tt.want)
			}
		})
	}
}

func TestCategoryIsParent(t *testing.T) {
	parent := NewCategory(1, "Family Law", nil, "")
	if !parent.IsParent() {
		t.Error("category without parent id should be a parent")
	}

	pid := 1
	sub := NewCategory(101, "Divorce", &pid, "")
	if sub.IsParent() {
		t.Error("category with parent id should not be a parent")
	}
}

func TestNewCategoryKeywordsInitialized(t *testing.T) {
	c := NewCategory(1, "Family Law", nil, "description")
	if c.Keywords == nil {
		t.Fatal("keywords map should be initialized")
	}
	if len(c.Keywords) != 0 {
		t.Errorf("keywords should start empty, got %d entries", len(c.Keywords))
	}
}
