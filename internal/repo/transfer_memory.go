package repo

import (
	"sync"

	"github.com/rogerio-castellano/inventory-insights/internal/models"
)

type InMemoryTransferRepository struct {
	mu        sync.RWMutex
	transfers []models.TransferRecord
}

func NewInMemoryTransferRepository() *InMemoryTransferRepository {
	return &InMemoryTransferRepository{
		transfers: []models.TransferRecord{},
	}
}

// Log records a relocation.
func (r *InMemoryTransferRepository) Log(record models.TransferRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transfers = append(r.transfers, record)
	return nil
}

// GetByProductID returns the relocations of a product, newest first, optionally filtered by date range and paginated
func (r *InMemoryTransferRepository) GetByProductID(productID string, tf TransferFilter) ([]models.TransferRecord, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filtered := []models.TransferRecord{}
	for i := len(r.transfers) - 1; i >= 0; i-- {
		t := r.transfers[i]
		if t.ProductID != productID {
			continue
		}
		if (tf.Since != nil && t.CreatedAt.Before(*tf.Since)) ||
			(tf.Until != nil && t.CreatedAt.After(*tf.Until)) {
			continue
		}
		filtered = append(filtered, t)
	}

	return paginate(filtered, tf.Offset, tf.Limit), len(filtered), nil
}
