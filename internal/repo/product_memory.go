package repo

import (
	"strings"
	"sync"

	"github.com/rogerio-castellano/inventory-insights/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
// It keeps insertion order, which is the order the dashboard lists products in.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
}

// NewInMemoryProductRepository creates a repository holding copies of seed.
func NewInMemoryProductRepository(seed ...models.Product) *InMemoryProductRepository {
	r := &InMemoryProductRepository{products: make([]models.Product, 0, len(seed))}
	for _, p := range seed {
		r.products = append(r.products, p.Clone())
	}
	return r
}

func (r *InMemoryProductRepository) Filter(pf ProductFilter) ([]models.Product, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filtered := []models.Product{}
	for _, p := range r.products {
		if matchesFilter(p, pf) {
			filtered = append(filtered, p.Clone())
		}
	}
	return paginate(filtered, pf.Offset, pf.Limit), len(filtered), nil
}

// Create adds a new product, assigning an id when none is given.
func (r *InMemoryProductRepository) Create(product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = NewProductID()
	}
	for _, p := range r.products {
		if p.ID == product.ID || strings.EqualFold(p.Name, product.Name) {
			return models.Product{}, ErrDuplicatedValueUnique
		}
	}
	r.products = append(r.products, product.Clone())
	return product, nil
}

// GetAll retrieves all products from the repository.
func (r *InMemoryProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Product, len(r.products))
	for i, p := range r.products {
		out[i] = p.Clone()
	}
	return out, nil
}

// GetByID retrieves a product by its ID.
func (r *InMemoryProductRepository) GetByID(id string) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			return p.Clone(), nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) GetByName(name string) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if strings.EqualFold(p.Name, name) {
			return p.Clone(), nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Update replaces an existing product in place. Names stay unique, compared case-insensitively.
func (r *InMemoryProductRepository) Update(product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if p.ID != product.ID && strings.EqualFold(p.Name, product.Name) {
			return models.Product{}, ErrDuplicatedValueUnique
		}
	}
	for i, p := range r.products {
		if p.ID == product.ID {
			r.products[i] = product.Clone()
			return product, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = []models.Product{}
}
