package handlers

import (
	"github.com/rogerio-castellano/inventory-insights/internal/models"
	"github.com/rogerio-castellano/inventory-insights/internal/stock"
)

type ProductRequest struct {
	ID           string           `json:"id,omitempty"`
	Name         string           `json:"name"`
	Category     string           `json:"category"`
	CurrentStock int              `json:"current_stock"`
	MinStock     int              `json:"min_stock"`
	MaxStock     int              `json:"max_stock"`
	Price        float64          `json:"price"`
	LeadTime     int              `json:"lead_time"`
	Location     string           `json:"location"`
	Supplier     *models.Supplier `json:"supplier,omitempty"`
	ImageURL     string           `json:"image_url,omitempty"`
}

// ProductResponse is a product together with its stock classification.
type ProductResponse struct {
	models.Product
	Status       stock.Status `json:"status"`
	StatusLabel  string       `json:"status_label"`
	StockRatio   float64      `json:"stock_ratio"`
	DisplayRatio float64      `json:"display_ratio"`
	AverageSales float64      `json:"average_sales"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type ProductsSearchResult struct {
	Data []ProductResponse `json:"data"`
	Meta Meta              `json:"meta,omitempty"`
}

type TransferRequest struct {
	Destination string `json:"destination"`
	Quantity    int    `json:"quantity"`
}

type TransferResult struct {
	Product      ProductResponse     `json:"product"`
	Notification models.Notification `json:"notification"`
}

type TransfersSearchResult struct {
	Data []models.TransferRecord `json:"data"`
	Meta Meta                    `json:"meta,omitempty"`
}

type DashboardSummary struct {
	stock.Summary
	Watchlist []ProductResponse `json:"watchlist"`
}

type InsightsResult struct {
	Insights   []models.Insight `json:"insights"`
	Loading    bool             `json:"loading"`
	Generation uint64           `json:"generation"`
	Offline    bool             `json:"offline"`
}

type RefreshResult struct {
	Applied bool `json:"applied"`
	InsightsResult
}

type NotificationsResult struct {
	Data   []models.Notification `json:"data"`
	Unread int                   `json:"unread"`
}

type ModeRequest struct {
	Offline *bool `json:"offline"`
}

type ModeResult struct {
	Offline bool `json:"offline"`
}

type PurchaseOrderRequest struct {
	Channel string `json:"channel"`
}

type ImageResult struct {
	Product   ProductResponse `json:"product"`
	Generated bool            `json:"generated"`
}

type UserLogin struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string `json:"token"`
}

type ImportProductsResult struct {
	ImportedProductsCount int                      `json:"imported"`
	Errors                []ProductValidationError `json:"errors"`
}

func toProductResponse(p models.Product) ProductResponse {
	c := stock.Classify(p.CurrentStock, p.MinStock, p.MaxStock)
	return ProductResponse{
		Product:      p,
		Status:       c.Status,
		StatusLabel:  c.Label,
		StockRatio:   c.Ratio,
		DisplayRatio: c.DisplayRatio,
		AverageSales: p.AverageSales(),
	}
}

func toProductResponses(products []models.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	return out
}
