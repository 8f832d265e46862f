package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/finbooks/backoffice/internal/domain/apperr"
	"github.com/finbooks/backoffice/internal/domain/model"
	"github.com/finbooks/backoffice/internal/domain/port"
	pgpkg "github.com/finbooks/backoffice/pkg/postgres"
)

// Compile-time interface check
var _ port.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implements ProductRepository using PostgreSQL.
type ProductRepo struct {
	db pgpkg.Querier
}

func NewProductRepo(db pgpkg.Querier) *ProductRepo {
	return &ProductRepo{db: db}
}

const productColumns = `id, sku, name, income_account_id, expense_account_id, default_tax_id, active, created_at, updated_at`

func (r *ProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	row := r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NewNotFound("product", id.String())
		}
		return nil, fmt.Errorf("query product: %w", err)
	}
	return p, nil
}

func (r *ProductRepo) ListActive(ctx context.Context) ([]*model.Product, error) {
	rows, err := r.db.Query(ctx, `SELECT `+productColumns+` FROM products WHERE active ORDER BY sku`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []*model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	var (
		id               uuid.UUID
		sku              string
		name             string
		incomeAccountID  *uuid.UUID
		expenseAccountID *uuid.UUID
		defaultTaxID     *uuid.UUID
		active           bool
		createdAt        time.Time
		updatedAt        time.Time
	)
	if err := row.Scan(&id, &sku, &name, &incomeAccountID, &expenseAccountID, &defaultTaxID,
		&active, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return model.ReconstructProduct(id, sku, name,
		derefUUID(incomeAccountID), derefUUID(expenseAccountID), derefUUID(defaultTaxID),
		active, createdAt, updatedAt), nil
}
