package repo

import (
	"sort"
	"strings"

	"github.com/rlourenco/catalog-admin/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
type InMemoryProductRepository struct {
	products []models.Product
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: []models.Product{},
	}
}

// Create adds a new product to the repository.
func (r *InMemoryProductRepository) Create(product models.Product) (models.Product, error) {
	r.products = append(r.products, product)
	return product, nil
}

// GetAll retrieves all products ordered by creation time descending.
func (r *InMemoryProductRepository) GetAll() ([]models.Product, error) {
	return sortedByCreatedAtDesc(r.products), nil
}

// GetByID retrieves a product by its ID.
func (r *InMemoryProductRepository) GetByID(id string) (models.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Update modifies an existing product, keeping its original creation time.
func (r *InMemoryProductRepository) Update(product models.Product) (models.Product, error) {
	for i, p := range r.products {
		if p.ID == product.ID {
			product.CreatedAt = p.CreatedAt
			r.products[i] = product
			return product, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Delete removes a product from the repository by its ID.
func (r *InMemoryProductRepository) Delete(id string) error {
	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}

// DeleteByIDs removes every product whose ID appears in ids. Unknown IDs
// are ignored.
func (r *InMemoryProductRepository) DeleteByIDs(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	kept := r.products[:0]
	for _, p := range r.products {
		if !drop[p.ID] {
			kept = append(kept, p)
		}
	}
	r.products = kept
	return nil
}

func matchesFilter(p models.Product, f ProductFilter) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		inTitle := strings.Contains(strings.ToLower(p.Title), q)
		inCategory := strings.Contains(strings.ToLower(p.Category), q)
		inTags := strings.Contains(strings.ToLower(strings.Join(p.Tags, " ")), q)
		if !inTitle && !inCategory && !inTags {
			return false
		}
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	return true
}

// Filter returns the products matching f, ordered by creation time descending.
func (r *InMemoryProductRepository) Filter(f ProductFilter) ([]models.Product, error) {
	var filtered []models.Product
	for _, p := range r.products {
		if matchesFilter(p, f) {
			filtered = append(filtered, p)
		}
	}
	return sortedByCreatedAtDesc(filtered), nil
}

func (r *InMemoryProductRepository) Clear() {
	r.products = []models.Product{}
}

// RFC3339 timestamps order lexicographically.
func sortedByCreatedAtDesc(products []models.Product) []models.Product {
	sorted := make([]models.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt > sorted[j].CreatedAt
	})
	return sorted
}
