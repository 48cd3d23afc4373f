package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/seedstock/internal/server/models"
	"github.com/dmitrijs2005/seedstock/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/seedstock/internal/server/repositories/products"
	"github.com/dmitrijs2005/seedstock/internal/server/repositories/repomanager"
)

var errStore = errors.New("connection refused")

// plainHasher stores "hashed:" + plaintext so tests stay fast.
type plainHasher struct {
	err error
}

func (h plainHasher) Hash(plaintext string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	return "hashed:" + plaintext, nil
}

func (h plainHasher) Verify(plaintext, hash string) bool {
	return strings.TrimPrefix(hash, "hashed:") == plaintext
}

type fakeIssuer struct {
	err      error
	subjects []string
}

func (f *fakeIssuer) Issue(subject string) (string, error) {
	f.subjects = append(f.subjects, subject)
	if f.err != nil {
		return "", f.err
	}
	return "token-for-" + subject, nil
}

func sequentialIDs(prefix string) IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

type brokenAccounts struct{}

func (brokenAccounts) Create(ctx context.Context, a *models.Account) (*models.Account, error) {
	return nil, fmt.Errorf("db error: %w", errStore)
}

func (brokenAccounts) GetByUserName(ctx context.Context, userName string) (*models.Account, error) {
	return nil, fmt.Errorf("db error: %w", errStore)
}

type brokenProducts struct{}

func (brokenProducts) List(ctx context.Context) ([]*models.Product, error) { return nil, errStore }
func (brokenProducts) Get(ctx context.Context, id string) (*models.Product, error) {
	return nil, errStore
}
func (brokenProducts) Insert(ctx context.Context, p *models.Product) (*models.Product, error) {
	return nil, errStore
}
func (brokenProducts) InsertMany(ctx context.Context, ps []*models.Product) ([]*models.Product, error) {
	return nil, errStore
}
func (brokenProducts) Update(ctx context.Context, p *models.Product) (*models.Product, error) {
	return nil, errStore
}
func (brokenProducts) Delete(ctx context.Context, id string) (*models.Product, error) {
	return nil, errStore
}

// brokenManager fails every store call.
type brokenManager struct{}

func (brokenManager) RunMigrations(ctx context.Context) error { return nil }
func (brokenManager) Accounts() accounts.Repository           { return brokenAccounts{} }
func (brokenManager) Products() products.Repository           { return brokenProducts{} }
func (brokenManager) Close() error                            { return nil }

func (m brokenManager) WithinTx(ctx context.Context, fn repomanager.TxFunc) error {
	return fn(ctx, m)
}
