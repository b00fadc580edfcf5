package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rogerio-castellano/inventory-insights/internal/models"
	repo "github.com/rogerio-castellano/inventory-insights/internal/repo"
	"github.com/rogerio-castellano/inventory-insights/pkg/logger"
)

// CreateProductHandler godoc
// @Summary Create a new product
// @Description Adds a product to the inventory. An id is generated when none is given.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} ProductResponse
// @Failure 400 {array} ProductValidationError
// @Failure 409 {string} string "Duplicated product"
// @Router /products [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if validationErrors := validateProduct(req); len(validationErrors) > 0 {
		respond(w, http.StatusBadRequest, validationErrors)
		return
	}

	created, err := inventory.CreateProduct(req.toModel())
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			http.Error(w, "could not create product: id or name duplicated", http.StatusConflict)
			return
		}
		logger.Log.Error().Err(err).Msg("could not create product")
		http.Error(w, "could not create product", http.StatusInternalServerError)
		return
	}

	respond(w, http.StatusCreated, toProductResponse(created))
}

// UpdateProductHandler godoc
// @Summary Update a product
// @Description Replaces the editable fields of a product. Sales history is kept.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param product body ProductRequest true "Updated product"
// @Success 200 {object} ProductResponse
// @Failure 400 {array} ProductValidationError
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Duplicated product name"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [put]
func UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if validationErrors := validateProduct(req); len(validationErrors) > 0 {
		respond(w, http.StatusBadRequest, validationErrors)
		return
	}

	existing, err := inventory.Product(id)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	product := req.toModel()
	product.ID = existing.ID
	product.HistoricalSales = existing.HistoricalSales
	if product.Supplier == nil {
		product.Supplier = existing.Supplier
	}
	if product.ImageURL == "" {
		product.ImageURL = existing.ImageURL
	}

	updated, err := inventory.UpdateProduct(product)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			http.Error(w, "could not update product: name duplicated", http.StatusConflict)
			return
		}
		writeLookupError(w, err)
		return
	}

	respond(w, http.StatusOK, toProductResponse(updated))
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [get]
func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	product, err := inventory.Product(chi.URLParam(r, "id"))
	if err != nil {
		writeLookupError(w, err)
		return
	}
	respond(w, http.StatusOK, toProductResponse(product))
}

// FilterProductsHandler godoc
// @Summary List, filter and paginate products
// @Description "All" or an empty value disables the category and location filters.
// @Tags products
// @Produce json
// @Param name query string false "Case-insensitive name search"
// @Param category query string false "Category"
// @Param location query string false "Hub (North, South, East, West)"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} ProductsSearchResult
// @Failure 400 {string} string "Invalid query"
// @Failure 500 {string} string "Internal error"
// @Router /products [get]
func FilterProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	offset, err := parseIntPtr(q.Get("offset"))
	if err != nil || (offset != nil && *offset < 0) {
		http.Error(w, "offset must be zero or positive", http.StatusBadRequest)
		return
	}
	limit, err := parseIntPtr(q.Get("limit"))
	if err != nil || (limit != nil && *limit <= 0) {
		http.Error(w, "limit must be greater than zero", http.StatusBadRequest)
		return
	}

	filter := repo.ProductFilter{
		Name:     q.Get("name"),
		Category: q.Get("category"),
		Offset:   offset,
		Limit:    limit,
	}
	if loc := q.Get("location"); loc != "" && loc != "All" {
		location, ok := models.ParseLocation(loc)
		if !ok {
			http.Error(w, "unknown location", http.StatusBadRequest)
			return
		}
		filter.Location = location
	}

	products, total, err := inventory.Products(filter)
	if err != nil {
		logger.Log.Error().Err(err).Msg("could not filter products")
		http.Error(w, "could not filter products", http.StatusInternalServerError)
		return
	}

	respond(w, http.StatusOK, ProductsSearchResult{
		Data: toProductResponses(products),
		Meta: Meta{TotalCount: total},
	})
}

func writeLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, repo.ErrProductNotFound) {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	logger.Log.Error().Err(err).Msg("product lookup failed")
	http.Error(w, "could not fetch product", http.StatusInternalServerError)
}
