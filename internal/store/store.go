// Package store is the single state container of the service. It owns the product
// collection, the insight sequence and the notification log, and serialises every
// mutation behind one lock.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/rogerio-castellano/inventory-insights/internal/models"
	"github.com/rogerio-castellano/inventory-insights/internal/repo"
	"github.com/rogerio-castellano/inventory-insights/internal/stock"
	"github.com/rogerio-castellano/inventory-insights/internal/telemetry"
	"github.com/rogerio-castellano/inventory-insights/pkg/logger"
)

// NotificationSink mirrors the notification log somewhere outside the process.
type NotificationSink interface {
	Push(ctx context.Context, n models.Notification) error
	Clear(ctx context.Context) error
}

// Sequencer provides monotonically increasing generation tokens.
type Sequencer struct{ n atomic.Uint64 }

func (s *Sequencer) Next() uint64    { return s.n.Add(1) }
func (s *Sequencer) Current() uint64 { return s.n.Load() }

type Store struct {
	mu sync.RWMutex

	products  repo.ProductRepository
	transfers repo.TransferRepository

	seq        Sequencer
	insights   []models.Insight
	appliedGen uint64

	notifications []models.Notification
	sink          NotificationSink

	scoring stock.Scoring
	summary *stock.Summary

	onChange func()
	now      func() time.Time
}

type Option func(*Store)

func WithNotificationSink(sink NotificationSink) Option {
	return func(s *Store) { s.sink = sink }
}

func WithScoring(scoring stock.Scoring) Option {
	return func(s *Store) { s.scoring = scoring }
}

// OnProductsChanged registers fn to run after every committed product mutation,
// outside the lock.
func OnProductsChanged(fn func()) Option {
	return func(s *Store) { s.onChange = fn }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(products repo.ProductRepository, transfers repo.TransferRepository, opts ...Option) *Store {
	s := &Store{
		products:      products,
		transfers:     transfers,
		insights:      []models.Insight{},
		notifications: []models.Notification{},
		scoring:       stock.DefaultScoring,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

// Snapshot returns a copy of the whole product collection. A read failure yields an
// empty collection and is logged.
func (s *Store) Snapshot() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products, err := s.products.GetAll()
	if err != nil {
		logger.Log.Error().Err(err).Msg("failed to read product collection")
		return []models.Product{}
	}
	return products
}

func (s *Store) Products(pf repo.ProductFilter) ([]models.Product, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products.Filter(pf)
}

func (s *Store) Product(id string) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products.GetByID(id)
}

func (s *Store) ProductByName(name string) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products.GetByName(name)
}

func (s *Store) CreateProduct(p models.Product) (models.Product, error) {
	s.mu.Lock()
	created, err := s.products.Create(p)
	if err == nil {
		s.summary = nil
	}
	s.mu.Unlock()

	if err != nil {
		return models.Product{}, err
	}
	s.changed()
	return created, nil
}

func (s *Store) UpdateProduct(p models.Product) (models.Product, error) {
	s.mu.Lock()
	updated, err := s.products.Update(p)
	if err == nil {
		s.summary = nil
	}
	s.mu.Unlock()

	if err != nil {
		return models.Product{}, err
	}
	s.changed()
	return updated, nil
}

// SetProductImage stores an enrichment result. It does not change any stock figure,
// so insights are not refreshed.
func (s *Store) SetProductImage(id, imageURL string) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.products.GetByID(id)
	if err != nil {
		return models.Product{}, err
	}
	p.ImageURL = imageURL
	return s.products.Update(p)
}

// Summary returns the portfolio metrics, recomputed only after the collection changed.
func (s *Store) Summary() (stock.Summary, error) {
	s.mu.RLock()
	if s.summary != nil {
		defer s.mu.RUnlock()
		return *s.summary, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.summary != nil {
		return *s.summary, nil
	}
	products, err := s.products.GetAll()
	if err != nil {
		return stock.Summary{}, fmt.Errorf("failed to aggregate portfolio: %w", err)
	}
	summary := stock.Aggregate(products, s.scoring)
	s.summary = &summary
	return summary, nil
}

func (s *Store) Watchlist(limit int) []models.Product {
	return stock.DepletionWatchlist(s.Snapshot(), limit)
}

// ApplyTransfer relocates a product to another hub, records the move and appends a
// success notification. Any validation failure leaves the store untouched.
func (s *Store) ApplyTransfer(productID string, destination models.Location, quantity int) (models.Product, models.Notification, error) {
	s.mu.Lock()

	moved, err := s.relocateLocked(productID, destination, quantity)
	if err != nil {
		s.mu.Unlock()
		telemetry.Transfers.WithLabelValues("rejected").Inc()
		return models.Product{}, models.Notification{}, err
	}

	n := s.appendNotificationLocked("Relocation Success", fmt.Sprintf("Units moved to %s Hub successfully.", destination), models.NotificationSuccess)
	s.mu.Unlock()

	telemetry.Transfers.WithLabelValues("applied").Inc()
	s.mirror(n)
	s.changed()
	return moved, n, nil
}

func (s *Store) relocateLocked(productID string, destination models.Location, quantity int) (models.Product, error) {
	if productID == "" {
		return models.Product{}, &stock.ValidationError{Field: "product_id", Description: "A product must be selected"}
	}

	current, err := s.products.GetByID(productID)
	if errors.Is(err, repo.ErrProductNotFound) {
		return models.Product{}, &stock.ValidationError{Field: "product_id", Description: fmt.Sprintf("Product %q not found", productID)}
	}
	if err != nil {
		return models.Product{}, err
	}

	moved, err := stock.Relocate(current, destination, quantity)
	if err != nil {
		return models.Product{}, err
	}
	if _, err := s.products.Update(moved); err != nil {
		return models.Product{}, fmt.Errorf("failed to save transfer: %w", err)
	}
	s.summary = nil

	record := models.TransferRecord{
		ID:        uuid.NewString(),
		ProductID: moved.ID,
		From:      current.Location,
		To:        destination,
		Quantity:  quantity,
		CreatedAt: s.now(),
	}
	if err := s.transfers.Log(record); err != nil {
		logger.Log.Error().Err(err).Str("product_id", moved.ID).Msg("failed to log transfer")
	}
	return moved, nil
}

func (s *Store) Transfers(productID string, tf repo.TransferFilter) ([]models.TransferRecord, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := s.products.GetByID(productID); err != nil {
		return nil, 0, err
	}
	return s.transfers.GetByProductID(productID, tf)
}

// NextGeneration issues the token for a new insight refresh. Issuing it makes every
// older token stale.
func (s *Store) NextGeneration() uint64 { return s.seq.Next() }

// ReplaceInsights swaps the whole insight sequence if generation is still the latest
// issued token, and reports whether it did.
func (s *Store) ReplaceInsights(generation uint64, insights []models.Insight) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.seq.Current() {
		return false
	}
	if insights == nil {
		insights = []models.Insight{}
	}
	s.insights = append([]models.Insight(nil), insights...)
	s.appliedGen = generation
	return true
}

// Insights returns the current sequence and the generation that produced it.
func (s *Store) Insights() ([]models.Insight, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Insight{}, s.insights...), s.appliedGen
}
