package repo

import (
	"strings"

	"github.com/google/uuid"

	"github.com/rogerio-castellano/inventory-insights/internal/models"
)

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	Create(product models.Product) (models.Product, error)
	GetAll() ([]models.Product, error)
	GetByID(id string) (models.Product, error)
	GetByName(name string) (models.Product, error)
	Update(product models.Product) (models.Product, error)
	Filter(pf ProductFilter) ([]models.Product, int, error)
}

// NewProductID returns a short uppercase identifier for products created without one.
func NewProductID() string {
	return strings.ToUpper(uuid.NewString()[:8])
}
