package taxonomy

import (
	"errors"
	"testing"

	"github.com/casemark/taxonomy-mapper/internal/domain"
)

func TestStoreAddAndLookup(t *testing.T) {
	store := NewStore()

	if err := store.Add(domain.NewCategory(1, "Family Law", nil, "")); err != nil {
		t.Fatalf("add parent: %v", err)
	}
	pid := 1
	if err := store.Add(domain.NewCategory(101, "Divorce", &pid, "")); err != nil {
		t.Fatalf("add subcategory: %v", err)
	}

	if store.Len() != 2 {
		t.Errorf("len = %d, want 2", store.Len())
	}
	if store.ParentCount() != 1 {
		t.Errorf("parent count = %d, want 1", store.ParentCount())
	}

	parent, ok := store.Get(1)
	if !ok {
		t.Fatal("parent not found by id")
	}
	if len(parent.Subcategories) != 1 || parent.Subcategories[0] != 101 {
		t.Errorf("parent subcategories = %v, want [101]", parent.Subcategories)
	}

	subs := store.Subcategories(1)
	if len(subs) != 1 || subs[0].ID != 101 {
		t.Errorf("Subcategories(1) = %v, want one entry with id 101", subs)
	}
}

func TestStoreGetByNameCaseInsensitive(t *testing.T) {
	store := NewStore()
	if err := store.Add(domain.NewCategory(3, "Business Law", nil, "")); err != nil {
		t.Fatalf("add: %v", err)
	}

	for _, name := range []string{"Business Law", "business law", "BUSINESS LAW"} {
		c, ok := store.GetByName(name)
		if !ok || c.ID != 3 {
			t.Errorf("GetByName(%q) = %v, %v; want category 3", name, c, ok)
		}
	}

	if _, ok := store.GetByName("Tax Law"); ok {
		t.Error("GetByName for unknown name should miss")
	}
}

func TestStoreRejectsOrphanSubcategory(t *testing.T) {
	store := NewStore()
	pid := 9
	err := store.Add(domain.NewCategory(901, "Orphan", &pid, ""))
	if !errors.Is(err, ErrOrphanSubcategory) {
		t.Fatalf("error = %v, want ErrOrphanSubcategory", err)
	}
	if store.Len() != 0 {
		t.Errorf("orphan was stored, len = %d", store.Len())
	}
}

func TestStoreNameCollisionLastInsertWins(t *testing.T) {
	store := NewStore()
	if err := store.Add(domain.NewCategory(1, "Family Law", nil, "first")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.Add(domain.NewCategory(2, "Family Law", nil, "second")); err != nil {
		t.Fatalf("add: %v", err)
	}

	c, ok := store.GetByName("family law")
	if !ok || c.ID != 2 {
		t.Errorf("name lookup = %v, want category 2 (last insert)", c)
	}
	// Both categories remain reachable by id.
	if store.Len() != 2 {
		t.Errorf("len = %d, want 2", store.Len())
	}
}

func TestStorePreservesInsertionOrder(t *testing.T) {
	store := NewStore()
	for _, c := range []struct {
		id   int
		name string
	}{{2, "Criminal Law"}, {1, "Family Law"}, {3, "Business Law"}} {
		if err := store.Add(domain.NewCategory(c.id, c.name, nil, "")); err != nil {
			t.Fatalf("add %d: %v", c.id, err)
		}
	}

	parents := store.ParentCategories()
	want := []int{2, 1, 3}
	for i, p := range parents {
		if p.ID != want[i] {
			t.Errorf("parent order[%d] = %d, want %d", i, p.ID, want[i])
		}
	}
}
