package handlers_test_suite

import (
	"encoding/csv"
	"net/http"
	"strings"
	"testing"

	handler "github.com/rogerio-castellano/inventory-insights/internal/http/handlers"
	"github.com/rogerio-castellano/inventory-insights/internal/http/router"
	"github.com/rogerio-castellano/inventory-insights/internal/models"
)

func TestTransferProductHandler(t *testing.T) {
	r := router.NewRouter()

	t.Run("Transfer relocates the product and notifies", func(t *testing.T) {
		t.Cleanup(resetInventory)

		w := transferProduct(r, "P1", handler.TransferRequest{Destination: "South", Quantity: 10})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
		}

		resp, err := decode[handler.TransferResult](w)
		if err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Product.Location != models.LocationSouth {
			t.Errorf("expected South, got %s", resp.Product.Location)
		}
		if resp.Product.CurrentStock != 30 {
			t.Errorf("expected stock to stay at 30, got %d", resp.Product.CurrentStock)
		}
		if resp.Notification.Title != "Relocation Success" || resp.Notification.Type != models.NotificationSuccess {
			t.Errorf("unexpected notification %+v", resp.Notification)
		}
		if resp.Notification.Message != "Units moved to South Hub successfully." {
			t.Errorf("unexpected message %q", resp.Notification.Message)
		}

		feed, _ := decode[handler.NotificationsResult](doJSON(r, http.MethodGet, "/notifications", nil))
		if len(feed.Data) != 1 || feed.Unread != 1 {
			t.Fatalf("expected one unread notification, got %d (unread %d)", len(feed.Data), feed.Unread)
		}

		log, _ := decode[handler.TransfersSearchResult](doJSON(r, http.MethodGet, "/products/P1/transfers", nil))
		if log.Meta.TotalCount != 1 {
			t.Fatalf("expected one transfer record, got %d", log.Meta.TotalCount)
		}
		if rec := log.Data[0]; rec.From != models.LocationNorth || rec.To != models.LocationSouth || rec.Quantity != 10 {
			t.Errorf("unexpected transfer record %+v", rec)
		}
	})

	t.Run("Repeating a transfer gives the same product", func(t *testing.T) {
		t.Cleanup(resetInventory)

		first, _ := decode[handler.TransferResult](transferProduct(r, "P3", handler.TransferRequest{Destination: "East", Quantity: 5}))
		second, _ := decode[handler.TransferResult](transferProduct(r, "P3", handler.TransferRequest{Destination: "East", Quantity: 5}))

		if first.Product.Location != second.Product.Location || first.Product.CurrentStock != second.Product.CurrentStock {
			t.Errorf("expected identical products, got %+v and %+v", first.Product, second.Product)
		}
	})

	rejections := []struct {
		name      string
		productID string
		req       handler.TransferRequest
		wantField string
	}{
		{"Zero quantity", "P1", handler.TransferRequest{Destination: "South", Quantity: 0}, "quantity"},
		{"Negative quantity", "P1", handler.TransferRequest{Destination: "South", Quantity: -3}, "quantity"},
		{"Unknown hub", "P1", handler.TransferRequest{Destination: "Central", Quantity: 5}, "destination"},
		{"Unknown product", "NOPE", handler.TransferRequest{Destination: "South", Quantity: 5}, "product_id"},
	}

	for _, tt := range rejections {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(resetInventory)

			w := transferProduct(r, tt.productID, tt.req)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 Bad Request, got %d", w.Code)
			}
			errs, _ := decode[[]handler.ProductValidationError](w)
			if len(errs) != 1 || errs[0].Field != tt.wantField {
				t.Errorf("expected a %q error, got %v", tt.wantField, errs)
			}

			p, _ := decode[handler.ProductResponse](doJSON(r, http.MethodGet, "/products/P1", nil))
			if p.Location != models.LocationNorth {
				t.Errorf("expected P1 to stay in North, got %s", p.Location)
			}
			feed, _ := decode[handler.NotificationsResult](doJSON(r, http.MethodGet, "/notifications", nil))
			if len(feed.Data) != 0 {
				t.Errorf("expected no notification, got %d", len(feed.Data))
			}
		})
	}
}

func TestGetTransfersHandler(t *testing.T) {
	r := router.NewRouter()
	t.Cleanup(resetInventory)

	for _, hub := range []string{"South", "East", "West"} {
		transferProduct(r, "P1", handler.TransferRequest{Destination: hub, Quantity: 1})
	}

	t.Run("Newest first with pagination", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/products/P1/transfers?limit=2", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}
		resp, _ := decode[handler.TransfersSearchResult](w)
		if len(resp.Data) != 2 || resp.Meta.TotalCount != 3 {
			t.Fatalf("expected 2 of 3 records, got %d of %d", len(resp.Data), resp.Meta.TotalCount)
		}
		if resp.Data[0].To != models.LocationWest {
			t.Errorf("expected newest record first, got %s", resp.Data[0].To)
		}
	})

	t.Run("Invalid query values", func(t *testing.T) {
		for _, q := range []string{"?limit=0", "?offset=-1", "?since=yesterday"} {
			if w := doJSON(r, http.MethodGet, "/products/P1/transfers"+q, nil); w.Code != http.StatusBadRequest {
				t.Errorf("%s: expected 400, got %d", q, w.Code)
			}
		}
	})

	t.Run("Unknown product", func(t *testing.T) {
		if w := doJSON(r, http.MethodGet, "/products/NOPE/transfers", nil); w.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", w.Code)
		}
	})

	t.Run("CSV export", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/products/P1/transfers/export?format=csv", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}
		if !strings.Contains(w.Header().Get("Content-Disposition"), "transfers_P1.csv") {
			t.Errorf("unexpected Content-Disposition %q", w.Header().Get("Content-Disposition"))
		}

		rows, err := csv.NewReader(w.Body).ReadAll()
		if err != nil {
			t.Fatalf("failed to read CSV: %v", err)
		}
		if len(rows) != 4 || rows[0][0] != "id" {
			t.Errorf("expected header plus 3 rows, got %v", rows)
		}
	})

	t.Run("Unsupported export format", func(t *testing.T) {
		if w := doJSON(r, http.MethodGet, "/products/P1/transfers/export?format=xml", nil); w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})
}
