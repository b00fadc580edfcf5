package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	repo "github.com/rogerio-castellano/inventory-insights/internal/repo"
	"github.com/rogerio-castellano/inventory-insights/internal/store"
	"github.com/rogerio-castellano/inventory-insights/pkg/logger"
)

// ListSuppliersHandler godoc
// @Summary List suppliers
// @Description Supplier directory with contact details and rating.
// @Tags suppliers
// @Produce json
// @Success 200 {array} models.Supplier
// @Failure 500 {string} string "Internal error"
// @Router /suppliers [get]
func ListSuppliersHandler(w http.ResponseWriter, r *http.Request) {
	suppliers, err := supplierRepo.GetAll()
	if err != nil {
		logger.Log.Error().Err(err).Msg("could not list suppliers")
		http.Error(w, "could not list suppliers", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, suppliers)
}

// DispatchSupplierOrderHandler godoc
// @Summary Dispatch a stock request to a supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Supplier ID"
// @Param order body PurchaseOrderRequest true "Channel (whatsapp or email)"
// @Success 201 {object} models.Notification
// @Failure 400 {array} ProductValidationError
// @Failure 404 {string} string "Not found"
// @Router /suppliers/{id}/purchase-orders [post]
func DispatchSupplierOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req PurchaseOrderRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	channel := store.POChannel(strings.ToLower(strings.TrimSpace(req.Channel)))
	if !channel.Valid() {
		respond(w, http.StatusBadRequest, []ProductValidationError{{Field: "channel", Description: "Channel must be whatsapp or email"}})
		return
	}

	id := chi.URLParam(r, "id")
	sup, err := supplierRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrSupplierNotFound) {
			http.Error(w, "supplier not found", http.StatusNotFound)
			return
		}
		logger.Log.Error().Err(err).Msg("supplier lookup failed")
		http.Error(w, "could not fetch supplier", http.StatusInternalServerError)
		return
	}

	n, err := inventory.DispatchSupplierOrder(sup, channel)
	if err != nil {
		logger.Log.Error().Err(err).Msg("could not dispatch supplier order")
		http.Error(w, "could not dispatch order", http.StatusInternalServerError)
		return
	}

	logger.Log.Info().Str("supplier_id", id).Str("channel", string(channel)).Msg("supplier order dispatched")
	respond(w, http.StatusCreated, n)
}
