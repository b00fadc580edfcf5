package handlers_test_suite

import (
	"net/http"
	"testing"

	handler "github.com/rogerio-castellano/inventory-insights/internal/http/handlers"
	"github.com/rogerio-castellano/inventory-insights/internal/http/router"
	"github.com/rogerio-castellano/inventory-insights/internal/models"
)

func TestListSuppliersHandler(t *testing.T) {
	r := router.NewRouter()

	saved := token
	token = ""
	defer func() { token = saved }()

	w := doJSON(r, http.MethodGet, "/suppliers", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK without a token, got %d", w.Code)
	}

	suppliers, err := decode[[]models.Supplier](w)
	if err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(suppliers) != 2 {
		t.Fatalf("expected 2 suppliers, got %d", len(suppliers))
	}
	if suppliers[0].ID != "sup1" || suppliers[0].Rating != 4.8 {
		t.Errorf("unexpected first supplier: %+v", suppliers[0])
	}
	if suppliers[1].Name != "Gadget Wholesale Hub" || suppliers[1].Rating != 4.9 {
		t.Errorf("unexpected second supplier: %+v", suppliers[1])
	}
}

func TestDispatchSupplierOrderHandler(t *testing.T) {
	r := router.NewRouter()

	tests := []struct {
		name        string
		supplierID  string
		channel     string
		wantCode    int
		wantMessage string
		wantType    models.NotificationType
	}{
		{name: "WhatsApp stock request", supplierID: "sup3", channel: "whatsapp", wantCode: http.StatusCreated,
			wantMessage: "PO for Stock Request dispatched to Gadget Wholesale Hub.", wantType: models.NotificationWhatsApp},
		{name: "Email stock request", supplierID: "sup1", channel: " Email ", wantCode: http.StatusCreated,
			wantMessage: "Email order for Stock Request sent to Global Tech Distribution.", wantType: models.NotificationSuccess},
		{name: "Unknown supplier", supplierID: "sup9", channel: "email", wantCode: http.StatusNotFound},
		{name: "Unknown channel", supplierID: "sup1", channel: "fax", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(resetInventory)

			w := doJSON(r, http.MethodPost, "/suppliers/"+tt.supplierID+"/purchase-orders", handler.PurchaseOrderRequest{Channel: tt.channel})
			if w.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, w.Code)
			}
			if tt.wantCode != http.StatusCreated {
				return
			}

			n, _ := decode[models.Notification](w)
			if n.Message != tt.wantMessage || n.Type != tt.wantType {
				t.Errorf("unexpected notification: %+v", n)
			}
			feed, _ := decode[handler.NotificationsResult](doJSON(r, http.MethodGet, "/notifications", nil))
			if len(feed.Data) != 1 {
				t.Errorf("expected the order in the notification feed, got %d entries", len(feed.Data))
			}
		})
	}

	t.Run("Supplier orders require a token", func(t *testing.T) {
		saved := token
		token = "not-a-token"
		defer func() { token = saved }()

		w := doJSON(r, http.MethodPost, "/suppliers/sup1/purchase-orders", handler.PurchaseOrderRequest{Channel: "email"})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})
}
