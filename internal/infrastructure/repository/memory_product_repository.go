package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/productlens/backend/internal/domain"
)

// MemoryProductRepository is an in-process catalog. Products are copied on
// the way in and out so callers never share state with the store.
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
	order    []string
}

// NewMemoryProductRepository creates an empty catalog
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[string]*domain.Product),
	}
}

// Create stores a new product. The id must be set and unused.
func (r *MemoryProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if product == nil || product.ID == "" {
		return fmt.Errorf("product id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[product.ID]; exists {
		return fmt.Errorf("product %s already exists", product.ID)
	}
	r.products[product.ID] = product.Clone()
	r.order = append(r.order, product.ID)
	return nil
}

// GetByID returns a copy of the product
func (r *MemoryProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return p.Clone(), nil
}

// List returns every product in insertion order
func (r *MemoryProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Product, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.products[id].Clone())
	}
	return out, nil
}

// Update replaces a stored product
func (r *MemoryProductRepository) Update(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	r.products[product.ID] = product.Clone()
	return nil
}

// Delete removes a product and returns what was stored
func (r *MemoryProductRepository) Delete(ctx context.Context, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	delete(r.products, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return p, nil
}

// Search returns products matching the query in insertion order
func (r *MemoryProductRepository) Search(ctx context.Context, query string) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*domain.Product{}
	for _, id := range r.order {
		if p := r.products[id]; p.Matches(query) {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}
