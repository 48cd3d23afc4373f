// Package services contains server-side business logic. AccountService
// handles registration and login; ProductService manages the seed inventory.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/seedstock/internal/common"
	"github.com/dmitrijs2005/seedstock/internal/server/auth"
	"github.com/dmitrijs2005/seedstock/internal/server/models"
	"github.com/dmitrijs2005/seedstock/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// PasswordHasher hashes and checks plaintext passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenIssuer mints an access token for an account id.
type TokenIssuer interface {
	Issue(subject string) (string, error)
}

// IDGenerator returns a new unique identifier for a stored record.
type IDGenerator func() string

// NewUUID is the default IDGenerator.
func NewUUID() string {
	return uuid.NewString()
}

type AccountService struct {
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	tokens      TokenIssuer
	newID       IDGenerator
}

func NewAccountService(m repomanager.RepositoryManager, hasher PasswordHasher, tokens TokenIssuer, newID IDGenerator) *AccountService {
	if newID == nil {
		newID = NewUUID
	}
	return &AccountService{
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		newID:       newID,
	}
}

// Register creates an account. Missing fields yield common.ErrorValidation, a
// taken username common.ErrorAlreadyExists; any other failure is reported as
// common.ErrorRegistrationFailed.
func (s *AccountService) Register(ctx context.Context, userName, password string) (*models.Account, error) {
	if userName == "" || password == "" {
		return nil, fmt.Errorf("username and password are required: %w", common.ErrorValidation)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, fmt.Errorf("password too long: %w", common.ErrorValidation)
		}
		return nil, fmt.Errorf("%w: hash password: %v", common.ErrorRegistrationFailed, err)
	}

	account := &models.Account{
		ID:           s.newID(),
		UserName:     userName,
		PasswordHash: hash,
	}

	created, err := s.repomanager.Accounts().Create(ctx, account)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, fmt.Errorf("username %q: %w", userName, common.ErrorAlreadyExists)
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorRegistrationFailed, err)
	}

	return created, nil
}

// Login checks credentials and returns a fresh access token. Unknown users
// and wrong passwords both yield common.ErrorAuthenticationFailed.
func (s *AccountService) Login(ctx context.Context, userName, password string) (string, error) {
	account, err := s.repomanager.Accounts().GetByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorAuthenticationFailed
		}
		return "", fmt.Errorf("%w: %v", common.ErrorLoginFailed, err)
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		return "", common.ErrorAuthenticationFailed
	}

	token, err := s.tokens.Issue(account.ID)
	if err != nil {
		return "", fmt.Errorf("%w: issue token: %v", common.ErrorLoginFailed, err)
	}

	return token, nil
}
