package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/inventory-insights/internal/models"
)

var requiredColumns = []string{"name", "category", "current_stock", "min_stock", "max_stock", "price", "location"}

func parseCSV(r io.Reader) ([]ProductRequest, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV header")
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	field := func(record []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []ProductRequest
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %v", err)
		}

		rows = append(rows, ProductRequest{
			ID:           field(record, "id"),
			Name:         field(record, "name"),
			Category:     field(record, "category"),
			CurrentStock: parseInt(field(record, "current_stock")),
			MinStock:     parseInt(field(record, "min_stock")),
			MaxStock:     parseInt(field(record, "max_stock")),
			Price:        parseFloat(field(record, "price")),
			LeadTime:     parseInt(field(record, "lead_time")),
			Location:     field(record, "location"),
		})
	}
	return rows, nil
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

// parseInt maps unparsable input to -1 so that validation rejects it.
func parseInt(s string) int {
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return v
}

// ImportProductsHandler godoc
// @Summary Import products via CSV
// @Description Columns: id (optional), name, category, current_stock, min_stock, max_stock, price, lead_time (optional), location.
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV file"
// @Param mode query string false "Import mode (skip|update)"
// @Success 200 {object} ImportProductsResult
// @Failure 400 {string} string "Invalid file"
// @Failure 500 {string} string "Internal error"
// @Router /products/import [post]
func ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	mode := strings.ToLower(r.URL.Query().Get("mode"))
	if mode != "update" {
		mode = "skip" // default
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	records, err := parseCSV(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	imported := 0
	errorsList := []ProductValidationError{}

	for i, rec := range records {
		rowNum := i + 2 // header is row 1

		if verrs := validateProduct(rec); len(verrs) > 0 {
			for _, v := range verrs {
				errorsList = append(errorsList, ProductValidationError{Field: v.Field, Description: fmt.Sprintf("row %d: %s", rowNum, v.Description)})
			}
			continue
		}

		existing, err := inventory.ProductByName(rec.Name)
		if err == nil {
			if mode == "skip" {
				errorsList = append(errorsList, ProductValidationError{Description: fmt.Sprintf("row %d: product '%s' already exists", rowNum, rec.Name)})
				continue
			}
			if err := updateFromRow(existing, rec); err != nil {
				errorsList = append(errorsList, ProductValidationError{Description: fmt.Sprintf("row %d: failed to update '%s'", rowNum, rec.Name)})
				continue
			}
			imported++
			continue
		}

		if _, err := inventory.CreateProduct(rec.toModel()); err != nil {
			errorsList = append(errorsList, ProductValidationError{Description: fmt.Sprintf("row %d: %v", rowNum, err)})
			continue
		}
		imported++
	}

	respond(w, http.StatusOK, ImportProductsResult{
		ImportedProductsCount: imported,
		Errors:                errorsList,
	})
}

// updateFromRow overwrites stock figures and price. Location only changes through a transfer.
func updateFromRow(existing models.Product, rec ProductRequest) error {
	existing.Category = rec.Category
	existing.CurrentStock = rec.CurrentStock
	existing.MinStock = rec.MinStock
	existing.MaxStock = rec.MaxStock
	existing.Price = rec.Price
	if rec.LeadTime > 0 {
		existing.LeadTime = rec.LeadTime
	}
	if _, err := inventory.UpdateProduct(existing); err != nil {
		return errors.Join(errors.New("update failed"), err)
	}
	return nil
}
