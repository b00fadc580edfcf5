package repo

import "github.com/rogerio-castellano/inventory-insights/internal/models"

// SupplierRepository exposes the supplier directory.
type SupplierRepository interface {
	GetAll() ([]models.Supplier, error)
	GetByID(id string) (models.Supplier, error)
}
