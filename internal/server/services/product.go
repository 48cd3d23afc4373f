package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/dmitrijs2005/seedstock/internal/server/archive"
	"github.com/dmitrijs2005/seedstock/internal/server/csvimport"
	"github.com/dmitrijs2005/seedstock/internal/server/models"
	"github.com/dmitrijs2005/seedstock/internal/server/repositories/repomanager"
)

// ProductService manages seed inventory records. Repository errors are
// returned wrapped, so common.ErrorNotFound and common.ErrorAlreadyExists
// stay matchable with errors.Is.
type ProductService struct {
	repomanager repomanager.RepositoryManager
	archive     archive.Archive
	newID       IDGenerator
}

func NewProductService(m repomanager.RepositoryManager, a archive.Archive, newID IDGenerator) *ProductService {
	if a == nil {
		a = archive.Discard{}
	}
	if newID == nil {
		newID = NewUUID
	}
	return &ProductService{
		repomanager: m,
		archive:     a,
		newID:       newID,
	}
}

func (s *ProductService) List(ctx context.Context) ([]*models.Product, error) {
	list, err := s.repomanager.Products().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing products: %w", err)
	}
	return list, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	p, err := s.repomanager.Products().Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting product %s: %w", id, err)
	}
	return p, nil
}

// Create stores one record, generating an id unless the caller supplied one.
func (s *ProductService) Create(ctx context.Context, id string, fields models.ProductFields) (*models.Product, error) {
	if id == "" {
		id = s.newID()
	}

	p, err := s.repomanager.Products().Insert(ctx, &models.Product{ID: id, ProductFields: fields})
	if err != nil {
		return nil, fmt.Errorf("error creating product: %w", err)
	}
	return p, nil
}

// Import stores the batch in a single transaction: either every record is
// created or none is.
func (s *ProductService) Import(ctx context.Context, batch []*models.Product) ([]*models.Product, error) {
	for _, p := range batch {
		if p.ID == "" {
			p.ID = s.newID()
		}
	}

	var created []*models.Product
	err := s.repomanager.WithinTx(ctx, func(ctx context.Context, tx repomanager.RepositoryManager) error {
		var err error
		created, err = tx.Products().InsertMany(ctx, batch)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error importing products: %w", err)
	}

	return created, nil
}

// ImportCSV archives the raw upload, decodes it and imports the rows.
// Decoding problems wrap common.ErrorValidation.
func (s *ProductService) ImportCSV(ctx context.Context, fileName string, data []byte) ([]*models.Product, string, error) {
	key, err := s.archive.Put(ctx, fileName, data)
	if err != nil {
		return nil, "", fmt.Errorf("error archiving upload: %w", err)
	}

	batch, err := csvimport.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, key, err
	}

	created, err := s.Import(ctx, batch)
	if err != nil {
		return nil, key, err
	}

	return created, key, nil
}

// Update replaces the content fields of an existing record; the id never changes.
func (s *ProductService) Update(ctx context.Context, id string, fields models.ProductFields) (*models.Product, error) {
	p, err := s.repomanager.Products().Update(ctx, &models.Product{ID: id, ProductFields: fields})
	if err != nil {
		return nil, fmt.Errorf("error updating product %s: %w", id, err)
	}
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) (*models.Product, error) {
	p, err := s.repomanager.Products().Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error deleting product %s: %w", id, err)
	}
	return p, nil
}
