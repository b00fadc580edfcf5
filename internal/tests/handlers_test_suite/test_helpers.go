package handlers_test_suite

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"

	"golang.org/x/crypto/bcrypt"

	"github.com/rogerio-castellano/inventory-insights/internal/auth"
	handler "github.com/rogerio-castellano/inventory-insights/internal/http/handlers"
	rl "github.com/rogerio-castellano/inventory-insights/internal/http/rate_limiter"
	"github.com/rogerio-castellano/inventory-insights/internal/http/router"
	"github.com/rogerio-castellano/inventory-insights/internal/imagery"
	"github.com/rogerio-castellano/inventory-insights/internal/insight"
	"github.com/rogerio-castellano/inventory-insights/internal/models"
	"github.com/rogerio-castellano/inventory-insights/internal/repo"
	"github.com/rogerio-castellano/inventory-insights/internal/store"
)

var (
	token       string
	productRepo *repo.InMemoryProductRepository
	inventory   *store.Store
	images      = &stubImages{}
)

type stubImages struct {
	fail bool
}

func (s *stubImages) GenerateImage(ctx context.Context, name, category string) (string, error) {
	if s.fail {
		return "", errors.New("image model unavailable")
	}
	return "data:image/png;base64,c3R1Yg==", nil
}

func init() {
	auth.SetSecret("suite-secret")
	rl.Configure(10000, 10000)

	userRepo := repo.NewInMemoryUserRepository()
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	userRepo.CreateUser(models.User{Username: "admin", PasswordHash: string(hash), Role: "admin"})
	handler.SetUserRepo(userRepo)

	// Logged in before a refresher is installed, so no background refresh starts.
	var err error
	token, err = generateToken(router.NewRouter(), "admin", "secret")
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}

	resetInventory()
}

func sampleSuppliers() []models.Supplier {
	return []models.Supplier{
		{ID: "sup1", Name: "Global Tech Distribution", Email: "sales@globaltech.com", Category: "Electronics", Rating: 4.8},
		{ID: "sup3", Name: "Gadget Wholesale Hub", Email: "orders@gadgethub.com", Category: "Accessories", Rating: 4.9},
	}
}

func sampleProducts() []models.Product {
	supplier := models.Supplier{ID: "sup1", Name: "Global Tech Distribution", Email: "sales@globaltech.com"}
	return []models.Product{
		{ID: "P1", Name: "Apple iPhone 15", Category: "Electronics", CurrentStock: 30, MinStock: 40, MaxStock: 300, Price: 100, LeadTime: 3, Location: models.LocationNorth, Supplier: &supplier,
			HistoricalSales: []models.SalesPoint{{Date: "2024-02-01", Quantity: 20}, {Date: "2024-02-02", Quantity: 30}}},
		{ID: "P2", Name: "Samsung Galaxy S23", Category: "Electronics", CurrentStock: 350, MinStock: 40, MaxStock: 300, Price: 50, LeadTime: 5, Location: models.LocationSouth},
		{ID: "P3", Name: "Sony WH-1000XM5 Headphones", Category: "Accessories", CurrentStock: 150, MinStock: 50, MaxStock: 400, Price: 10, LeadTime: 10, Location: models.LocationWest},
	}
}

// resetInventory installs a fresh store with the sample catalogue. Tests that mutate
// state register it with t.Cleanup.
func resetInventory() {
	productRepo = repo.NewInMemoryProductRepository(sampleProducts()...)
	inventory = store.New(productRepo, repo.NewInMemoryTransferRepository())
	modes := insight.NewModeSwitch(nil, insight.HeuristicProvider{}, true)

	handler.SetStore(inventory)
	handler.SetSupplierRepo(repo.NewInMemorySupplierRepository(sampleSuppliers()...))
	handler.SetModeSwitch(modes)
	handler.SetRefresher(insight.NewRefresher(inventory, modes, 0))
	handler.SetEnricher(imagery.NewEnricher(inventory, images, 0))
	images.fail = false
	rl.CleanupAllVisitors()
}

func generateToken(r http.Handler, username, password string) (string, error) {
	body, _ := json.Marshal(handler.UserLogin{Username: username, Password: password})

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		return "", fmt.Errorf("login failed with status %d", w.Code)
	}
	var resp handler.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func doJSON(r http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createProduct(r http.Handler, p handler.ProductRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/products", p)
}

func transferProduct(r http.Handler, productID string, t handler.TransferRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, fmt.Sprintf("/products/%s/transfer", productID), t)
}

func multipartCSV(csvContent string, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	part.Write([]byte(csvContent))

	writer.Close()
	return &buf, writer.FormDataContentType()
}

func decode[T any](w *httptest.ResponseRecorder) (T, error) {
	var v T
	err := json.NewDecoder(w.Body).Decode(&v)
	return v, err
}
