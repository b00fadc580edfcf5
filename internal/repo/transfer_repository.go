package repo

import "github.com/rogerio-castellano/inventory-insights/internal/models"

// TransferRepository keeps the hub relocation log, newest first.
type TransferRepository interface {
	Log(record models.TransferRecord) error
	GetByProductID(productID string, tf TransferFilter) ([]models.TransferRecord, int, error)
}
