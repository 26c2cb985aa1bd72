package repo

import (
	"errors"

	"github.com/rlourenco/catalog-admin/internal/models"
)

// ProductRepository defines the interface for product data operations.
// GetAll and Filter return rows ordered by creation time descending, which
// is the default listing order of the admin surface.
type ProductRepository interface {
	Create(product models.Product) (models.Product, error)
	GetAll() ([]models.Product, error)
	GetByID(id string) (models.Product, error)
	Update(product models.Product) (models.Product, error)
	Delete(id string) error
	DeleteByIDs(ids []string) error
	Filter(f ProductFilter) ([]models.Product, error)
}

// ErrProductNotFound is returned when a product is not found in the repository.
var ErrProductNotFound = errors.New("product not found")
