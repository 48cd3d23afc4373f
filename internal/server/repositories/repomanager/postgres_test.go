package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/seedstock/internal/server/models"
	"github.com/dmitrijs2005/seedstock/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/seedstock/internal/server/repositories/products"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestPostgresManager_ImplementsInterface(t *testing.T) {
	db, _ := newDB(t)

	var m RepositoryManager = NewPostgresRepositoryManager(db)

	var _ accounts.Repository = m.Accounts()
	var _ products.Repository = m.Products()
	assert.IsType(t, &accounts.PostgresRepository{}, m.Accounts())
	assert.IsType(t, &products.PostgresRepository{}, m.Products())
}

func TestPostgresManager_WithinTx_Commits(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO products").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	m := NewPostgresRepositoryManager(db)
	err := m.WithinTx(context.Background(), func(ctx context.Context, tx RepositoryManager) error {
		_, err := tx.Products().Insert(ctx, &models.Product{ID: "p-1"})
		return err
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresManager_WithinTx_RollsBack(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO products").WillReturnError(errors.New("constraint"))
	mock.ExpectRollback()

	m := NewPostgresRepositoryManager(db)
	err := m.WithinTx(context.Background(), func(ctx context.Context, tx RepositoryManager) error {
		_, err := tx.Products().InsertMany(ctx, []*models.Product{{ID: "p-1"}})
		return err
	})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	require.NoError(t, NewPostgresRepositoryManager(db).RunMigrations(context.Background()))
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	err := NewPostgresRepositoryManager(db).RunMigrations(context.Background())
	require.EqualError(t, err, "boom")
}

func TestClose(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectClose()

	require.NoError(t, NewPostgresRepositoryManager(db).Close())
	require.NoError(t, mock.ExpectationsWereMet())
}
