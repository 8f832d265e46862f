package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/finbooks/backoffice/internal/domain/apperr"
	"github.com/finbooks/backoffice/internal/domain/model"
	"github.com/finbooks/backoffice/internal/domain/port"
	pgpkg "github.com/finbooks/backoffice/pkg/postgres"
)

// Compile-time interface check
var _ port.TaxRepository = (*TaxRepo)(nil)

// TaxRepo implements TaxRepository using PostgreSQL.
type TaxRepo struct {
	db pgpkg.Querier
}

func NewTaxRepo(db pgpkg.Querier) *TaxRepo {
	return &TaxRepo{db: db}
}

const taxColumns = `id, name, rate, collected_account_id, recoverable_account_id, active, created_at, updated_at`

func (r *TaxRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Tax, error) {
	row := r.db.QueryRow(ctx, `SELECT `+taxColumns+` FROM taxes WHERE id = $1`, id)
	t, err := scanTax(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NewNotFound("tax", id.String())
		}
		return nil, fmt.Errorf("query tax: %w", err)
	}
	return t, nil
}

func (r *TaxRepo) ListActive(ctx context.Context) ([]*model.Tax, error) {
	rows, err := r.db.Query(ctx, `SELECT `+taxColumns+` FROM taxes WHERE active ORDER BY rate`)
	if err != nil {
		return nil, fmt.Errorf("query taxes: %w", err)
	}
	defer rows.Close()

	var taxes []*model.Tax
	for rows.Next() {
		t, err := scanTax(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tax: %w", err)
		}
		taxes = append(taxes, t)
	}
	return taxes, rows.Err()
}

func scanTax(row pgx.Row) (*model.Tax, error) {
	var (
		id                   uuid.UUID
		name                 string
		rate                 decimal.Decimal
		collectedAccountID   *uuid.UUID
		recoverableAccountID *uuid.UUID
		active               bool
		createdAt            time.Time
		updatedAt            time.Time
	)
	if err := row.Scan(&id, &name, &rate, &collectedAccountID, &recoverableAccountID,
		&active, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return model.ReconstructTax(id, name, rate,
		derefUUID(collectedAccountID), derefUUID(recoverableAccountID),
		active, createdAt, updatedAt), nil
}
