package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rogerio-castellano/inventory-insights/internal/store"
	"github.com/rogerio-castellano/inventory-insights/pkg/logger"
)

// GenerateImageHandler godoc
// @Summary Generate a studio photo for a product
// @Description generated is false when no image could be produced; the product then keeps its placeholder.
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} ImageResult
// @Failure 404 {string} string "Not found"
// @Router /products/{id}/image [post]
func GenerateImageHandler(w http.ResponseWriter, r *http.Request) {
	product, generated, err := enricher.Enrich(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeLookupError(w, err)
		return
	}
	respond(w, http.StatusOK, ImageResult{Product: toProductResponse(product), Generated: generated})
}

// DispatchPurchaseOrderHandler godoc
// @Summary Dispatch a purchase order to the product supplier
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param order body PurchaseOrderRequest true "Channel (whatsapp or email)"
// @Success 201 {object} models.Notification
// @Failure 400 {array} ProductValidationError
// @Failure 404 {string} string "Not found"
// @Router /products/{id}/purchase-orders [post]
func DispatchPurchaseOrderHandler(w http.ResponseWriter, r *http.Request) {
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
	n, err := inventory.DispatchPurchaseOrder(id, channel)
	if err != nil {
		if errors.Is(err, store.ErrNoSupplier) {
			respond(w, http.StatusBadRequest, []ProductValidationError{{Field: "supplier", Description: "Product has no supplier"}})
			return
		}
		writeLookupError(w, err)
		return
	}

	logger.Log.Info().Str("product_id", id).Str("channel", string(channel)).Msg("purchase order dispatched")
	respond(w, http.StatusCreated, n)
}
