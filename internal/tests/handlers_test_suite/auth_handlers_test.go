package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	handler "github.com/rogerio-castellano/inventory-insights/internal/http/handlers"
	rl "github.com/rogerio-castellano/inventory-insights/internal/http/rate_limiter"
	"github.com/rogerio-castellano/inventory-insights/internal/http/router"
)

func runWithVisitorCleanup(t *testing.T, name string, testFunc func(t *testing.T)) {
	t.Run(name, func(t *testing.T) {
		rl.CleanupAllVisitors()
		testFunc(t)
	})
}

func login(r http.Handler, username, password string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(handler.UserLogin{Username: username, Password: password})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthFlow(t *testing.T) {
	r := router.NewRouter()
	t.Cleanup(resetInventory)

	runWithVisitorCleanup(t, "Login with valid credentials", func(t *testing.T) {
		w := login(r, "admin", "secret")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}
		resp, err := decode[handler.LoginResult](w)
		if err != nil {
			t.Fatalf("failed to decode token response: %v", err)
		}
		if resp.Token == "" {
			t.Error("expected a token in response")
		}
	})

	runWithVisitorCleanup(t, "Login with wrong password", func(t *testing.T) {
		if w := login(r, "admin", "wrong"); w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	runWithVisitorCleanup(t, "Login with unknown user", func(t *testing.T) {
		if w := login(r, "ghost", "secret"); w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	runWithVisitorCleanup(t, "Malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString("{"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})
}

func TestRateLimit(t *testing.T) {
	r := router.NewRouter()
	rl.Configure(1, 2)
	t.Cleanup(func() {
		rl.Configure(10000, 10000)
		rl.CleanupAllVisitors()
	})
	rl.CleanupAllVisitors()

	codes := make([]int, 0, 3)
	for range 3 {
		codes = append(codes, doJSON(r, http.MethodGet, "/products", nil).Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("expected 200, 200, 429, got %v", codes)
	}

	health := httptest.NewRecorder()
	r.ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/health", nil))
	if health.Code != http.StatusOK {
		t.Errorf("expected /health outside the limiter, got %d", health.Code)
	}
}
