package insight

import (
	"context"
	"math"

	"github.com/rogerio-castellano/inventory-insights/internal/models"
)

// ProductSummary is the per-product payload sent to an analysis collaborator.
type ProductSummary struct {
	Name           string          `json:"name"`
	Stock          int             `json:"stock"`
	Min            int             `json:"min"`
	Max            int             `json:"max"`
	Location       models.Location `json:"location"`
	RecentSalesAvg float64         `json:"recentSalesAvg"`
}

// AnalysisProvider produces raw insight records for a set of product summaries.
type AnalysisProvider interface {
	Analyze(ctx context.Context, summaries []ProductSummary) ([]RawInsight, error)
}

// ProviderFunc adapts a plain function to AnalysisProvider.
type ProviderFunc func(ctx context.Context, summaries []ProductSummary) ([]RawInsight, error)

func (f ProviderFunc) Analyze(ctx context.Context, summaries []ProductSummary) ([]RawInsight, error) {
	return f(ctx, summaries)
}

// Summarize builds the collaborator request from the product collection.
func Summarize(products []models.Product) []ProductSummary {
	out := make([]ProductSummary, len(products))
	for i, p := range products {
		out[i] = ProductSummary{
			Name:           p.Name,
			Stock:          p.CurrentStock,
			Min:            p.MinStock,
			Max:            p.MaxStock,
			Location:       p.Location,
			RecentSalesAvg: math.Round(p.AverageSales()*100) / 100,
		}
	}
	return out
}
