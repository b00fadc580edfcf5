package handlers

import (
	"errors"
	"strings"

	"github.com/rogerio-castellano/inventory-insights/internal/models"
	"github.com/rogerio-castellano/inventory-insights/internal/stock"
)

type ProductValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateProduct(p ProductRequest) []ProductValidationError {
	errs := []ProductValidationError{}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ProductValidationError{Field: "name", Description: "Name is required"})
	}
	if strings.TrimSpace(p.Category) == "" {
		errs = append(errs, ProductValidationError{Field: "category", Description: "Category is required"})
	}
	if p.Price <= 0 {
		errs = append(errs, ProductValidationError{Field: "price", Description: "Price must be greater than zero"})
	}
	if p.CurrentStock < 0 {
		errs = append(errs, ProductValidationError{Field: "current_stock", Description: "Current stock cannot be negative"})
	}
	if p.MinStock < 0 {
		errs = append(errs, ProductValidationError{Field: "min_stock", Description: "Minimum stock cannot be negative"})
	}
	if p.MaxStock <= 0 {
		errs = append(errs, ProductValidationError{Field: "max_stock", Description: "Maximum stock must be greater than zero"})
	}
	if p.LeadTime < 0 {
		errs = append(errs, ProductValidationError{Field: "lead_time", Description: "Lead time cannot be negative"})
	}
	if _, ok := models.ParseLocation(p.Location); !ok {
		errs = append(errs, ProductValidationError{Field: "location", Description: "Location must be one of North, South, East, West"})
	}
	return errs
}

// asValidationErrors converts a rule violation from the stock package into the response shape.
func asValidationErrors(err error) ([]ProductValidationError, bool) {
	var verr *stock.ValidationError
	if !errors.As(err, &verr) {
		return nil, false
	}
	return []ProductValidationError{{Field: verr.Field, Description: verr.Description}}, true
}

func (p ProductRequest) toModel() models.Product {
	location, _ := models.ParseLocation(p.Location)
	return models.Product{
		ID:           strings.TrimSpace(p.ID),
		Name:         strings.TrimSpace(p.Name),
		Category:     strings.TrimSpace(p.Category),
		CurrentStock: p.CurrentStock,
		MinStock:     p.MinStock,
		MaxStock:     p.MaxStock,
		Price:        p.Price,
		LeadTime:     p.LeadTime,
		Location:     location,
		Supplier:     p.Supplier,
		ImageURL:     p.ImageURL,
	}
}
