package stock

import (
	"fmt"

	"github.com/rogerio-castellano/inventory-insights/internal/models"
)

// ValidationError reports bad user input. The operation it aborts has no effect.
type ValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Description)
}

// Relocate checks the transfer preconditions on a single product and returns it with its
// location overwritten. The stock level is not split between hubs.
func Relocate(p models.Product, destination models.Location, quantity int) (models.Product, error) {
	if quantity <= 0 {
		return p, &ValidationError{Field: "quantity", Description: "Quantity must be greater than zero"}
	}
	if !destination.Valid() {
		return p, &ValidationError{Field: "destination", Description: fmt.Sprintf("Unknown hub %q", destination)}
	}
	p.Location = destination
	return p, nil
}

// Transfer relocates the product identified by productID and returns a new collection.
// The input slice is never modified, so a failed transfer leaves it unchanged.
// Applying the same transfer twice yields the same collection.
func Transfer(products []models.Product, productID string, destination models.Location, quantity int) ([]models.Product, error) {
	if productID == "" {
		return products, &ValidationError{Field: "product_id", Description: "A product must be selected"}
	}

	idx := -1
	for i, p := range products {
		if p.ID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return products, &ValidationError{Field: "product_id", Description: fmt.Sprintf("Product %q not found", productID)}
	}

	moved, err := Relocate(products[idx], destination, quantity)
	if err != nil {
		return products, err
	}

	out := make([]models.Product, len(products))
	copy(out, products)
	out[idx] = moved
	return out, nil
}
