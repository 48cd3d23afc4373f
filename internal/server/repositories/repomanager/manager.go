// Package repomanager vends the account and product repositories for one
// storage backend and runs work against them transactionally.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/seedstock/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/seedstock/internal/server/repositories/products"
)

// TxFunc receives a manager whose repositories are bound to the transaction.
type TxFunc func(ctx context.Context, m RepositoryManager) error

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Accounts() accounts.Repository
	Products() products.Repository
	// WithinTx runs fn atomically: every write made through the manager
	// passed to fn is committed when fn returns nil and discarded otherwise.
	WithinTx(ctx context.Context, fn TxFunc) error
	Close() error
}
