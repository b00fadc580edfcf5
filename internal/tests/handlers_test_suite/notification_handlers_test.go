package handlers_test_suite

import (
	"net/http"
	"testing"

	handler "github.com/rogerio-castellano/inventory-insights/internal/http/handlers"
	"github.com/rogerio-castellano/inventory-insights/internal/http/router"
)

func TestNotificationHandlers(t *testing.T) {
	r := router.NewRouter()
	t.Cleanup(resetInventory)

	transferProduct(r, "P1", handler.TransferRequest{Destination: "South", Quantity: 1})
	transferProduct(r, "P2", handler.TransferRequest{Destination: "East", Quantity: 1})

	feed, _ := decode[handler.NotificationsResult](doJSON(r, http.MethodGet, "/notifications", nil))
	if len(feed.Data) != 2 || feed.Unread != 2 {
		t.Fatalf("expected two unread notifications, got %d (unread %d)", len(feed.Data), feed.Unread)
	}
	if feed.Data[0].Message != "Units moved to East Hub successfully." {
		t.Errorf("expected newest notification first, got %q", feed.Data[0].Message)
	}
	if feed.Data[0].Time != "Just now" {
		t.Errorf("expected relative time label, got %q", feed.Data[0].Time)
	}

	if w := doJSON(r, http.MethodPost, "/notifications/read", nil); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	feed, _ = decode[handler.NotificationsResult](doJSON(r, http.MethodGet, "/notifications", nil))
	if feed.Unread != 0 || len(feed.Data) != 2 {
		t.Errorf("expected two read notifications, got %d (unread %d)", len(feed.Data), feed.Unread)
	}

	if w := doJSON(r, http.MethodDelete, "/notifications", nil); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	feed, _ = decode[handler.NotificationsResult](doJSON(r, http.MethodGet, "/notifications", nil))
	if len(feed.Data) != 0 {
		t.Errorf("expected an empty feed, got %d", len(feed.Data))
	}
}

func TestNotificationHandlers_RequireToken(t *testing.T) {
	r := router.NewRouter()

	saved := token
	token = "not-a-token"
	defer func() { token = saved }()

	if w := doJSON(r, http.MethodGet, "/notifications", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for the notification feed, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodPost, "/notifications/read", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for mark read, got %d", w.Code)
	}
}
