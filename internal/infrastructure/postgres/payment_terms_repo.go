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
var _ port.PaymentTermsRepository = (*PaymentTermsRepo)(nil)

// PaymentTermsRepo implements PaymentTermsRepository using PostgreSQL.
type PaymentTermsRepo struct {
	db pgpkg.Querier
}

func NewPaymentTermsRepo(db pgpkg.Querier) *PaymentTermsRepo {
	return &PaymentTermsRepo{db: db}
}

func (r *PaymentTermsRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.PaymentTerms, error) {
	var (
		termsID   uuid.UUID
		name      string
		active    bool
		createdAt time.Time
		updatedAt time.Time
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, name, active, created_at, updated_at FROM payment_terms WHERE id = $1
	`, id).Scan(&termsID, &name, &active, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NewNotFound("payment terms", id.String())
		}
		return nil, fmt.Errorf("query payment terms: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT seq, days_offset, percentage FROM payment_term_lines
		WHERE terms_id = $1 ORDER BY seq
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query payment term lines: %w", err)
	}
	defer rows.Close()

	var lines []model.TermLine
	for rows.Next() {
		var (
			seq        int
			daysOffset int
			percentage decimal.Decimal
		)
		if err := rows.Scan(&seq, &daysOffset, &percentage); err != nil {
			return nil, fmt.Errorf("scan payment term line: %w", err)
		}
		lines = append(lines, model.TermLine{Sequence: seq, DaysOffset: daysOffset, Percentage: percentage})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return model.ReconstructPaymentTerms(termsID, name, lines, active, createdAt, updatedAt), nil
}
