package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/seedstock/internal/common"
	"github.com/dmitrijs2005/seedstock/internal/server/models"
	"github.com/dmitrijs2005/seedstock/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sunny = models.ProductFields{
	RepDate: "2024-01-05", Year: "2024", YearWeek: "2024-01", Variety: "Sunny",
	RDCSD: "100", StockToSale: "0.5", Season: "Spring", CropYear: "2023",
}

type recordingArchive struct {
	names []string
	err   error
}

func (a *recordingArchive) Put(ctx context.Context, name string, data []byte) (string, error) {
	a.names = append(a.names, name)
	if a.err != nil {
		return "", a.err
	}
	return "uploads/" + name, nil
}

func newProductService() (*ProductService, *repomanager.InMemoryRepositoryManager) {
	m := repomanager.NewInMemoryRepositoryManager()
	return NewProductService(m, nil, sequentialIDs("p")), m
}

func TestProductService_CRUD(t *testing.T) {
	ctx := context.Background()
	s, _ := newProductService()

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	created, err := s.Create(ctx, "", sunny)
	require.NoError(t, err)
	assert.Equal(t, "p-1", created.ID)

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, sunny, got.ProductFields)

	changed := sunny
	changed.Season = "Autumn"
	updated, err := s.Update(ctx, created.ID, changed)
	require.NoError(t, err)
	assert.Equal(t, "Autumn", updated.Season)
	assert.Equal(t, created.ID, updated.ID)

	deleted, err := s.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Autumn", deleted.Season)

	_, err = s.Get(ctx, created.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestProductService_Create_KeepsSuppliedID(t *testing.T) {
	ctx := context.Background()
	s, _ := newProductService()

	p, err := s.Create(ctx, "custom", sunny)
	require.NoError(t, err)
	assert.Equal(t, "custom", p.ID)

	_, err = s.Create(ctx, "custom", sunny)
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestProductService_UpdateMissing_DoesNotCreate(t *testing.T) {
	ctx := context.Background()
	s, _ := newProductService()

	_, err := s.Update(ctx, "ghost", sunny)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = s.Delete(ctx, "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProductService_Import_AllOrNothing(t *testing.T) {
	ctx := context.Background()
	s, _ := newProductService()

	_, err := s.Create(ctx, "taken", sunny)
	require.NoError(t, err)

	_, err = s.Import(ctx, []*models.Product{{ProductFields: sunny}, {ID: "taken"}})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	created, err := s.Import(ctx, []*models.Product{{ProductFields: sunny}, {ID: "mine"}})
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.NotEmpty(t, created[0].ID)
	assert.Equal(t, "mine", created[1].ID)
}

func TestProductService_ImportCSV(t *testing.T) {
	ctx := context.Background()
	m := repomanager.NewInMemoryRepositoryManager()
	arch := &recordingArchive{}
	s := NewProductService(m, arch, sequentialIDs("p"))

	data := []byte("Seed_Varity,Seed_Year\nSunny,2024\nRainy,2023\n")
	created, key, err := s.ImportCSV(ctx, "stock.csv", data)
	require.NoError(t, err)
	assert.Equal(t, "uploads/stock.csv", key)
	require.Len(t, created, 2)
	assert.Equal(t, "p-1", created[0].ID)
	assert.Equal(t, "Rainy", created[1].Variety)
	assert.Equal(t, []string{"stock.csv"}, arch.names)
}

func TestProductService_ImportCSV_Invalid(t *testing.T) {
	s, m := newProductService()

	_, _, err := s.ImportCSV(context.Background(), "stock.csv", []byte(""))
	assert.ErrorIs(t, err, common.ErrorValidation)

	list, err := m.Products().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProductService_ImportCSV_ArchiveFailure(t *testing.T) {
	s := NewProductService(repomanager.NewInMemoryRepositoryManager(), &recordingArchive{err: errors.New("disk full")}, nil)

	_, _, err := s.ImportCSV(context.Background(), "stock.csv", []byte("Seed_Year\n2024\n"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorValidation)
}

func TestProductService_StoreFailures(t *testing.T) {
	ctx := context.Background()
	s := NewProductService(brokenManager{}, nil, nil)

	_, err := s.List(ctx)
	assert.ErrorIs(t, err, errStore)
	_, err = s.Get(ctx, "x")
	assert.ErrorIs(t, err, errStore)
	_, err = s.Create(ctx, "", sunny)
	assert.ErrorIs(t, err, errStore)
	_, err = s.Import(ctx, []*models.Product{{}})
	assert.ErrorIs(t, err, errStore)
	_, err = s.Update(ctx, "x", sunny)
	assert.ErrorIs(t, err, errStore)
	_, err = s.Delete(ctx, "x")
	assert.ErrorIs(t, err, errStore)
}

// pausingManager holds every transaction open until release is closed.
type pausingManager struct {
	*repomanager.InMemoryRepositoryManager
	entered chan struct{}
	release chan struct{}
}

func (m *pausingManager) WithinTx(ctx context.Context, fn repomanager.TxFunc) error {
	return m.InMemoryRepositoryManager.WithinTx(ctx, func(ctx context.Context, tx repomanager.RepositoryManager) error {
		close(m.entered)
		<-m.release
		return fn(ctx, tx)
	})
}

func TestProductService_FailedImportKeepsConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	m := &pausingManager{
		InMemoryRepositoryManager: repomanager.NewInMemoryRepositoryManager(),
		entered:                   make(chan struct{}),
		release:                   make(chan struct{}),
	}
	s := NewProductService(m, nil, nil)

	_, err := s.Create(ctx, "dup", sunny)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := s.Import(ctx, []*models.Product{{ID: "dup"}})
		done <- err
	}()

	<-m.entered
	concurrent := sunny
	concurrent.Variety = "concurrent"
	created, err := s.Create(ctx, "", concurrent)
	require.NoError(t, err)
	close(m.release)

	assert.ErrorIs(t, <-done, common.ErrorAlreadyExists)

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "concurrent", got.Variety)
}
