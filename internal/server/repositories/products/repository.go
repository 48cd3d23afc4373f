// Package products persists seed inventory records (the resource store).
package products

import (
	"context"

	"github.com/dmitrijs2005/seedstock/internal/server/models"
)

// Repository is the product store. Records must arrive with an ID already
// assigned; the store never invents one. Get, Update and Delete return
// common.ErrorNotFound for unknown ids, inserts return
// common.ErrorAlreadyExists for a duplicate id.
type Repository interface {
	List(ctx context.Context) ([]*models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Insert(ctx context.Context, product *models.Product) (*models.Product, error)
	// InsertMany stores all records or none when run inside a transaction.
	InsertMany(ctx context.Context, products []*models.Product) ([]*models.Product, error)
	// Update replaces the eight content fields of an existing record.
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id string) (*models.Product, error)
}
