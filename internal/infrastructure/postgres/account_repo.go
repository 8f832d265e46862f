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
	"github.com/finbooks/backoffice/internal/domain/valueobject"
	pgpkg "github.com/finbooks/backoffice/pkg/postgres"
)

// Compile-time interface check
var _ port.AccountRepository = (*AccountRepo)(nil)

// AccountRepo implements AccountRepository using PostgreSQL.
type AccountRepo struct {
	db pgpkg.Querier
}

func NewAccountRepo(db pgpkg.Querier) *AccountRepo {
	return &AccountRepo{db: db}
}

const accountColumns = `id, code, name, account_type, parent_id, active, allows_movements, debit_balance, credit_balance, created_at, updated_at`

func (r *AccountRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	row := r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	acc, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NewNotFound("account", id.String())
		}
		return nil, fmt.Errorf("query account: %w", err)
	}
	return acc, nil
}

func (r *AccountRepo) ListActive(ctx context.Context) ([]*model.Account, error) {
	rows, err := r.db.Query(ctx, `SELECT `+accountColumns+` FROM accounts WHERE active ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*model.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

// ApplyMovement adds the deltas in a single statement so concurrent
// postings never lose updates.
func (r *AccountRepo) ApplyMovement(ctx context.Context, id uuid.UUID, debitDelta, creditDelta decimal.Decimal) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE accounts
		SET debit_balance = debit_balance + $2,
		    credit_balance = credit_balance + $3,
		    updated_at = now()
		WHERE id = $1
	`, id, debitDelta, creditDelta)
	if err != nil {
		return fmt.Errorf("apply movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NewNotFound("account", id.String())
	}
	return nil
}

func scanAccount(row pgx.Row) (*model.Account, error) {
	var (
		id              uuid.UUID
		code            string
		name            string
		accountType     string
		parentID        *uuid.UUID
		active          bool
		allowsMovements bool
		debitBalance    decimal.Decimal
		creditBalance   decimal.Decimal
		createdAt       time.Time
		updatedAt       time.Time
	)
	if err := row.Scan(&id, &code, &name, &accountType, &parentID, &active, &allowsMovements,
		&debitBalance, &creditBalance, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	accountCode, err := valueobject.NewAccountCode(code)
	if err != nil {
		return nil, fmt.Errorf("invalid account code %q: %w", code, err)
	}
	at, err := valueobject.NewAccountType(accountType)
	if err != nil {
		return nil, err
	}
	parent := uuid.Nil
	if parentID != nil {
		parent = *parentID
	}
	return model.ReconstructAccount(id, accountCode, name, at, parent, active, allowsMovements,
		debitBalance, creditBalance, createdAt, updatedAt), nil
}
