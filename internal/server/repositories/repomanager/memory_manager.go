package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/seedstock/internal/server/models"
	"github.com/dmitrijs2005/seedstock/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/seedstock/internal/server/repositories/products"
)

// InMemoryRepositoryManager keeps everything in process memory.
type InMemoryRepositoryManager struct {
	accounts *accounts.MemoryRepository
	products *products.MemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		accounts: accounts.NewMemoryRepository(),
		products: products.NewMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m *InMemoryRepositoryManager) Accounts() accounts.Repository {
	return m.accounts
}

func (m *InMemoryRepositoryManager) Products() products.Repository {
	return m.products
}

// WithinTx records an undo step for every write made through the manager
// passed to fn and replays them in reverse when fn fails or panics. Only
// this transaction's own writes are reverted; concurrent writes made outside
// it are kept. Isolation is not provided: other readers see the writes
// before commit.
func (m *InMemoryRepositoryManager) WithinTx(ctx context.Context, fn TxFunc) (err error) {
	tx := &memoryTx{parent: m}

	defer func() {
		if p := recover(); p != nil {
			tx.rollback()
			panic(p)
		}
		if err != nil {
			tx.rollback()
		}
	}()

	return fn(ctx, tx)
}

func (m *InMemoryRepositoryManager) Close() error {
	return nil
}

// memoryTx is the manager handed to a WithinTx callback.
type memoryTx struct {
	parent *InMemoryRepositoryManager

	mu   sync.Mutex
	undo []func()
}

func (t *memoryTx) record(step func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.undo = append(t.undo, step)
}

func (t *memoryTx) rollback() {
	t.mu.Lock()
	steps := t.undo
	t.undo = nil
	t.mu.Unlock()

	for i := len(steps) - 1; i >= 0; i-- {
		steps[i]()
	}
}

func (t *memoryTx) RunMigrations(ctx context.Context) error {
	return nil
}

func (t *memoryTx) Accounts() accounts.Repository {
	return &txAccounts{repo: t.parent.accounts, tx: t}
}

func (t *memoryTx) Products() products.Repository {
	return &txProducts{repo: t.parent.products, tx: t}
}

// WithinTx joins the running transaction.
func (t *memoryTx) WithinTx(ctx context.Context, fn TxFunc) error {
	return fn(ctx, t)
}

func (t *memoryTx) Close() error {
	return nil
}

type txAccounts struct {
	repo *accounts.MemoryRepository
	tx   *memoryTx
}

func (r *txAccounts) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	created, err := r.repo.Create(ctx, account)
	if err != nil {
		return nil, err
	}
	userName, id := created.UserName, created.ID
	r.tx.record(func() { r.repo.Remove(userName, id) })
	return created, nil
}

func (r *txAccounts) GetByUserName(ctx context.Context, userName string) (*models.Account, error) {
	return r.repo.GetByUserName(ctx, userName)
}

type txProducts struct {
	repo *products.MemoryRepository
	tx   *memoryTx
}

func (r *txProducts) List(ctx context.Context) ([]*models.Product, error) {
	return r.repo.List(ctx)
}

func (r *txProducts) Get(ctx context.Context, id string) (*models.Product, error) {
	return r.repo.Get(ctx, id)
}

func (r *txProducts) Insert(ctx context.Context, product *models.Product) (*models.Product, error) {
	p, err := r.repo.Insert(ctx, product)
	if err != nil {
		return nil, err
	}
	r.undoInsert(p.ID)
	return p, nil
}

func (r *txProducts) InsertMany(ctx context.Context, batch []*models.Product) ([]*models.Product, error) {
	created, err := r.repo.InsertMany(ctx, batch)
	if err != nil {
		return nil, err
	}
	for _, p := range created {
		r.undoInsert(p.ID)
	}
	return created, nil
}

func (r *txProducts) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	previous, updated, err := r.repo.Replace(ctx, product)
	if err != nil {
		return nil, err
	}
	r.tx.record(func() { _, _, _ = r.repo.Replace(context.Background(), previous) })
	return updated, nil
}

func (r *txProducts) Delete(ctx context.Context, id string) (*models.Product, error) {
	deleted, pos, err := r.repo.DeleteWithPosition(ctx, id)
	if err != nil {
		return nil, err
	}
	restored := *deleted
	r.tx.record(func() { _ = r.repo.InsertAt(context.Background(), &restored, pos) })
	return deleted, nil
}

func (r *txProducts) undoInsert(id string) {
	r.tx.record(func() { _, _ = r.repo.Delete(context.Background(), id) })
}
