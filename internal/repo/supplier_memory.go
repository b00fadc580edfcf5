package repo

import (
	"sync"

	"github.com/rogerio-castellano/inventory-insights/internal/models"
)

type InMemorySupplierRepository struct {
	mu        sync.RWMutex
	suppliers []models.Supplier
}

func NewInMemorySupplierRepository(seed ...models.Supplier) *InMemorySupplierRepository {
	return &InMemorySupplierRepository{suppliers: append([]models.Supplier{}, seed...)}
}

func (r *InMemorySupplierRepository) GetAll() ([]models.Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Supplier{}, r.suppliers...), nil
}

func (r *InMemorySupplierRepository) GetByID(id string) (models.Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.suppliers {
		if s.ID == id {
			return s, nil
		}
	}
	return models.Supplier{}, ErrSupplierNotFound
}
