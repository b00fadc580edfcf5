package handlers

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rogerio-castellano/inventory-insights/internal/models"
	repo "github.com/rogerio-castellano/inventory-insights/internal/repo"
	"github.com/rogerio-castellano/inventory-insights/pkg/logger"
)

// TransferProductHandler godoc
// @Summary Move a product to another hub
// @Description Overwrites the product location and appends a "Relocation Success" notification.
// @Tags transfers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param transfer body TransferRequest true "Destination hub and quantity"
// @Success 200 {object} TransferResult
// @Failure 400 {array} ProductValidationError
// @Failure 500 {string} string "Internal error"
// @Router /products/{id}/transfer [post]
func TransferProductHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req TransferRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	destination, _ := models.ParseLocation(req.Destination)
	moved, notification, err := inventory.ApplyTransfer(id, destination, req.Quantity)
	if err != nil {
		if verrs, ok := asValidationErrors(err); ok {
			respond(w, http.StatusBadRequest, verrs)
			return
		}
		logger.Log.Error().Err(err).Str("product_id", id).Msg("transfer failed")
		http.Error(w, "could not transfer product", http.StatusInternalServerError)
		return
	}

	logger.Log.Info().Str("product_id", id).Str("to", string(destination)).Int("quantity", req.Quantity).Msg("product relocated")
	respond(w, http.StatusOK, TransferResult{
		Product:      toProductResponse(moved),
		Notification: notification,
	})
}

func transferFilterFromQuery(r *http.Request) (repo.TransferFilter, error) {
	q := r.URL.Query()
	var tf repo.TransferFilter
	var err error

	if tf.Since, err = parseTimestamp(q.Get("since")); err != nil {
		return tf, fmt.Errorf("invalid since date format")
	}
	if tf.Until, err = parseTimestamp(q.Get("until")); err != nil {
		return tf, fmt.Errorf("invalid until date format")
	}
	if tf.Limit, err = parseIntPtr(q.Get("limit")); err != nil || (tf.Limit != nil && *tf.Limit <= 0) {
		return tf, fmt.Errorf("limit must be greater than zero")
	}
	if tf.Offset, err = parseIntPtr(q.Get("offset")); err != nil || (tf.Offset != nil && *tf.Offset < 0) {
		return tf, fmt.Errorf("offset must be zero or positive")
	}
	return tf, nil
}

// GetTransfersHandler godoc
// @Summary Get the relocation log of a product
// @Tags transfers
// @Produce json
// @Param id path string true "Product ID"
// @Param since query string false "Filter transfers from this timestamp (RFC3339)"
// @Param until query string false "Filter transfers until this timestamp (RFC3339)"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} TransfersSearchResult
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Product not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id}/transfers [get]
func GetTransfersHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	tf, err := transferFilterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	transfers, total, err := inventory.Transfers(id, tf)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	respond(w, http.StatusOK, TransfersSearchResult{
		Data: transfers,
		Meta: Meta{TotalCount: total},
	})
}

// ExportTransfersHandler godoc
// @Summary Export the relocation log of a product
// @Tags transfers
// @Produce text/csv, application/json
// @Param id path string true "Product ID"
// @Param format query string true "Export format (csv or json)"
// @Param since query string false "Filter from timestamp (RFC3339)"
// @Param until query string false "Filter until timestamp (RFC3339)"
// @Success 200 {file} file
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Product not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id}/transfers/export [get]
func ExportTransfersHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	format := r.URL.Query().Get("format")
	if format != "csv" && format != "json" {
		http.Error(w, "format must be 'csv' or 'json'", http.StatusBadRequest)
		return
	}

	tf, err := transferFilterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	tf.Offset, tf.Limit = nil, nil

	transfers, _, err := inventory.Transfers(id, tf)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	filename := fmt.Sprintf("transfers_%s.%s", id, format)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if format == "json" {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(transfers); err != nil {
			logger.Log.Error().Err(err).Msg("failed to export transfers")
		}
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	cw := csv.NewWriter(w)
	cw.Write([]string{"id", "product_id", "from", "to", "quantity", "created_at"})
	for _, t := range transfers {
		cw.Write([]string{t.ID, t.ProductID, string(t.From), string(t.To), strconv.Itoa(t.Quantity), t.CreatedAt.Format(time.RFC3339)})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		logger.Log.Error().Err(err).Msg("failed to export transfers")
	}
}
