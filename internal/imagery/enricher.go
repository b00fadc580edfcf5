// Package imagery attaches generated studio photos to products. Generation is best
// effort: a product without an image shows a placeholder, so failures are never
// reported to the caller as errors.
package imagery

import (
	"context"
	"time"

	"github.com/rogerio-castellano/inventory-insights/internal/models"
	"github.com/rogerio-castellano/inventory-insights/internal/telemetry"
	"github.com/rogerio-castellano/inventory-insights/pkg/logger"
)

// Generator produces an image for a product, returned as a URL or data URI.
type Generator interface {
	GenerateImage(ctx context.Context, name, category string) (string, error)
}

// ProductStore is where enrichment results are kept.
type ProductStore interface {
	Product(id string) (models.Product, error)
	SetProductImage(id, imageURL string) (models.Product, error)
}

type Enricher struct {
	store     ProductStore
	generator Generator
	timeout   time.Duration
}

// NewEnricher accepts a nil generator, in which case every product keeps its placeholder.
func NewEnricher(store ProductStore, generator Generator, timeout time.Duration) *Enricher {
	return &Enricher{store: store, generator: generator, timeout: timeout}
}

func (e *Enricher) Available() bool { return e.generator != nil }

// Enrich generates and stores an image for a product. It reports whether an image was
// attached; only a lookup failure of the product itself is returned as an error.
func (e *Enricher) Enrich(ctx context.Context, productID string) (models.Product, bool, error) {
	p, err := e.store.Product(productID)
	if err != nil {
		return models.Product{}, false, err
	}
	if e.generator == nil {
		telemetry.ImageGenerations.WithLabelValues("unavailable").Inc()
		return p, false, nil
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	start := time.Now()
	url, err := e.generator.GenerateImage(ctx, p.Name, p.Category)
	telemetry.CollaboratorLatency.WithLabelValues("image").Observe(time.Since(start).Seconds())
	if err != nil || url == "" {
		telemetry.ImageGenerations.WithLabelValues("failed").Inc()
		logger.Log.Warn().Err(err).Str("product_id", p.ID).Msg("image generation failed, keeping placeholder")
		return p, false, nil
	}

	updated, err := e.store.SetProductImage(p.ID, url)
	if err != nil {
		return p, false, err
	}
	telemetry.ImageGenerations.WithLabelValues("generated").Inc()
	return updated, true, nil
}
