package products

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/seedstock/internal/common"
	"github.com/dmitrijs2005/seedstock/internal/server/models"
)

// MemoryRepository keeps products in process memory and lists them in
// insertion order. It backs the server when no database DSN is configured.
type MemoryRepository struct {
	mu    sync.RWMutex
	byID  map[string]models.Product
	order []string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]models.Product)}
}

func (r *MemoryRepository) List(ctx context.Context) ([]*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Product, 0, len(r.order))
	for _, id := range r.order {
		p := r.byID[id]
		result = append(result, &p)
	}
	return result, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &p, nil
}

func (r *MemoryRepository) Insert(ctx context.Context, product *models.Product) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[product.ID]; ok {
		return nil, fmt.Errorf("product id %q: %w", product.ID, common.ErrorAlreadyExists)
	}
	r.put(product)
	return product, nil
}

// InsertMany validates the whole batch before writing, so a duplicate id
// anywhere leaves the store untouched.
func (r *MemoryRepository) InsertMany(ctx context.Context, products []*models.Product) ([]*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{}, len(products))
	for _, p := range products {
		if _, ok := r.byID[p.ID]; ok {
			return nil, fmt.Errorf("product id %q: %w", p.ID, common.ErrorAlreadyExists)
		}
		if _, ok := seen[p.ID]; ok {
			return nil, fmt.Errorf("product id %q: %w", p.ID, common.ErrorAlreadyExists)
		}
		seen[p.ID] = struct{}{}
	}

	for _, p := range products {
		r.put(p)
	}
	return products, nil
}

func (r *MemoryRepository) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	_, updated, err := r.Replace(ctx, product)
	return updated, err
}

// Replace updates like Update and also returns the record as it was before.
func (r *MemoryRepository) Replace(ctx context.Context, product *models.Product) (*models.Product, *models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous, ok := r.byID[product.ID]
	if !ok {
		return nil, nil, common.ErrorNotFound
	}
	r.byID[product.ID] = *product
	updated := *product
	return &previous, &updated, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) (*models.Product, error) {
	p, _, err := r.DeleteWithPosition(ctx, id)
	return p, err
}

// DeleteWithPosition deletes like Delete and also reports the record's
// position in listing order, so InsertAt can put it back.
func (r *MemoryRepository) DeleteWithPosition(ctx context.Context, id string) (*models.Product, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, -1, common.ErrorNotFound
	}
	delete(r.byID, id)
	pos := slices.Index(r.order, id)
	if pos >= 0 {
		r.order = slices.Delete(r.order, pos, pos+1)
	}
	return &p, pos, nil
}

// InsertAt inserts product at position pos of the listing order, clamped
// to the current length.
func (r *MemoryRepository) InsertAt(ctx context.Context, product *models.Product, pos int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[product.ID]; ok {
		return fmt.Errorf("product id %q: %w", product.ID, common.ErrorAlreadyExists)
	}
	pos = max(0, min(pos, len(r.order)))
	r.byID[product.ID] = *product
	r.order = slices.Insert(r.order, pos, product.ID)
	return nil
}

// caller holds r.mu
func (r *MemoryRepository) put(p *models.Product) {
	r.byID[p.ID] = *p
	r.order = append(r.order, p.ID)
}
