package accounts

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/seedstock/internal/common"
	"github.com/dmitrijs2005/seedstock/internal/server/models"
)

// MemoryRepository keeps accounts in process memory, keyed by username.
// It backs the server when no database DSN is configured.
type MemoryRepository struct {
	mu         sync.RWMutex
	byUserName map[string]models.Account
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byUserName: make(map[string]models.Account)}
}

func (r *MemoryRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUserName[account.UserName]; ok {
		return nil, fmt.Errorf("username %q: %w", account.UserName, common.ErrorAlreadyExists)
	}
	for _, a := range r.byUserName {
		if a.ID == account.ID {
			return nil, fmt.Errorf("account id %q: %w", account.ID, common.ErrorAlreadyExists)
		}
	}

	account.CreatedAt = time.Now().UTC()
	r.byUserName[account.UserName] = *account
	return account, nil
}

func (r *MemoryRepository) GetByUserName(ctx context.Context, userName string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byUserName[userName]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &a, nil
}

// Remove drops the account with the given username if its id matches. It
// undoes a Create made inside a rolled-back in-memory transaction.
func (r *MemoryRepository) Remove(userName, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a, ok := r.byUserName[userName]; ok && a.ID == id {
		delete(r.byUserName, userName)
	}
}
