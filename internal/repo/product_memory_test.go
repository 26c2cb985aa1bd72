package repo

import (
	"errors"
	"testing"

	"github.com/rlourenco/catalog-admin/internal/models"
)

func seedCatalog(r *InMemoryProductRepository) {
	r.Create(models.Product{ID: "p1", Title: "Enamel Mug", Category: "Kitchen", Tags: []string{"camping", "enamel"}, CreatedAt: "2026-01-01T10:00:00Z"})
	r.Create(models.Product{ID: "p2", Title: "Camping Chair", Category: "Outdoor", CreatedAt: "2026-01-03T10:00:00Z"})
	r.Create(models.Product{ID: "p3", Title: "Desk Lamp", Category: "Office", CreatedAt: "2026-01-02T10:00:00Z"})
}

func TestGetAllOrdersNewestFirst(t *testing.T) {
	r := NewInMemoryProductRepository()
	seedCatalog(r)

	products, err := r.GetAll()
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"p2", "p3", "p1"}
	for i, id := range want {
		if products[i].ID != id {
			t.Errorf("position %d: expected %q, got %q", i, id, products[i].ID)
		}
	}
}

func TestUpdateKeepsCreationTime(t *testing.T) {
	r := NewInMemoryProductRepository()
	seedCatalog(r)

	updated, err := r.Update(models.Product{ID: "p1", Title: "Enamel Mug v2", CreatedAt: "2030-01-01T00:00:00Z"})
	if err != nil {
		t.Fatal(err)
	}

	if updated.CreatedAt != "2026-01-01T10:00:00Z" {
		t.Errorf("expected the original creation time, got %q", updated.CreatedAt)
	}
	if updated.Title != "Enamel Mug v2" {
		t.Errorf("expected the new title, got %q", updated.Title)
	}
}

func TestUpdateUnknownID(t *testing.T) {
	r := NewInMemoryProductRepository()

	_, err := r.Update(models.Product{ID: "ghost"})
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestDeleteUnknownID(t *testing.T) {
	r := NewInMemoryProductRepository()

	if err := r.Delete("ghost"); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestDeleteByIDsIgnoresUnknown(t *testing.T) {
	r := NewInMemoryProductRepository()
	seedCatalog(r)

	if err := r.DeleteByIDs([]string{"p1", "ghost"}); err != nil {
		t.Fatal(err)
	}

	products, _ := r.GetAll()
	if len(products) != 2 {
		t.Fatalf("expected 2 products to remain, got %d", len(products))
	}
	for _, p := range products {
		if p.ID == "p1" {
			t.Error("expected p1 to be deleted")
		}
	}
}

func TestFilter(t *testing.T) {
	r := NewInMemoryProductRepository()
	seedCatalog(r)

	cases := []struct {
		name   string
		filter ProductFilter
		want   []string
	}{
		{"title substring", ProductFilter{Query: "mug"}, []string{"p1"}},
		{"tag substring", ProductFilter{Query: "camping"}, []string{"p2", "p1"}},
		{"category substring", ProductFilter{Query: "office"}, []string{"p3"}},
		{"exact category", ProductFilter{Category: "Outdoor"}, []string{"p2"}},
		{"query and category combined", ProductFilter{Query: "camping", Category: "Kitchen"}, []string{"p1"}},
		{"empty filter returns all", ProductFilter{}, []string{"p2", "p3", "p1"}},
		{"no match", ProductFilter{Query: "teapot"}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			products, err := r.Filter(tc.filter)
			if err != nil {
				t.Fatal(err)
			}
			if len(products) != len(tc.want) {
				t.Fatalf("expected %d products, got %d", len(tc.want), len(products))
			}
			for i, id := range tc.want {
				if products[i].ID != id {
					t.Errorf("position %d: expected %q, got %q", i, id, products[i].ID)
				}
			}
		})
	}
}
