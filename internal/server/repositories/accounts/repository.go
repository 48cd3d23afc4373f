// Package accounts persists registered accounts (the credential store).
package accounts

import (
	"context"

	"github.com/dmitrijs2005/seedstock/internal/server/models"
)

// Repository stores one row per account. Create returns
// common.ErrorAlreadyExists for a taken username; GetByUserName returns
// common.ErrorNotFound when no account matches.
type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByUserName(ctx context.Context, userName string) (*models.Account, error)
}
