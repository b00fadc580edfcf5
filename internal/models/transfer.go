package models

import "time"

// TransferRecord logs one hub relocation of a product.
type TransferRecord struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	From      Location  `json:"from"`
	To        Location  `json:"to"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}
