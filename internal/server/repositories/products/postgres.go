package products

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/seedstock/internal/common"
	"github.com/dmitrijs2005/seedstock/internal/dbx"
	"github.com/dmitrijs2005/seedstock/internal/server/models"
)

const (
	productColumns = "id, rep_date, year, year_week, variety, rdcsd, stock_to_sale, season, crop_year"
	columnCount    = 9

	// keeps a single statement well under Postgres' 65535 bind parameter cap
	insertBatchSize = 1000
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (*models.Product, error) {
	p := &models.Product{}
	err := s.Scan(&p.ID, &p.RepDate, &p.Year, &p.YearWeek, &p.Variety,
		&p.RDCSD, &p.StockToSale, &p.Season, &p.CropYear)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func productArgs(p *models.Product) []any {
	return []any{p.ID, p.RepDate, p.Year, p.YearWeek, p.Variety,
		p.RDCSD, p.StockToSale, p.Season, p.CropYear}
}

func wrapWriteErr(err error) error {
	if dbx.IsUniqueViolation(err) {
		return fmt.Errorf("product id: %w", common.ErrorAlreadyExists)
	}
	return fmt.Errorf("db error: %w", err)
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, product *models.Product) (*models.Product, error) {
	query :=
		`INSERT INTO products (` + productColumns + `)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	if _, err := r.db.ExecContext(ctx, query, productArgs(product)...); err != nil {
		return nil, wrapWriteErr(err)
	}

	return product, nil
}

// InsertMany writes products with multi-row INSERT statements of up to
// insertBatchSize rows each. Each statement is atomic on its own; callers
// needing all-or-nothing across batches run it inside dbx.WithTx.
func (r *PostgresRepository) InsertMany(ctx context.Context, products []*models.Product) ([]*models.Product, error) {
	for start := 0; start < len(products); start += insertBatchSize {
		end := min(start+insertBatchSize, len(products))
		batch := products[start:end]

		query, args := buildInsertMany(batch)
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return nil, wrapWriteErr(err)
		}
	}

	return products, nil
}

func buildInsertMany(batch []*models.Product) (string, []any) {
	var sb strings.Builder
	sb.WriteString("INSERT INTO products (" + productColumns + ") VALUES ")

	args := make([]any, 0, len(batch)*columnCount)
	for i, p := range batch {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		for c := 0; c < columnCount; c++ {
			if c > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", i*columnCount+c+1)
		}
		sb.WriteString(")")
		args = append(args, productArgs(p)...)
	}

	return sb.String(), args
}

func (r *PostgresRepository) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	query :=
		`UPDATE products
		 SET rep_date = $2, year = $3, year_week = $4, variety = $5,
		     rdcsd = $6, stock_to_sale = $7, season = $8, crop_year = $9
		 WHERE id = $1
		 RETURNING ` + productColumns

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, productArgs(product)...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (*models.Product, error) {
	query := `DELETE FROM products WHERE id = $1 RETURNING ` + productColumns

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}
