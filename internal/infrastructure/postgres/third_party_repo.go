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
	"github.com/finbooks/backoffice/internal/domain/valueobject"
	pgpkg "github.com/finbooks/backoffice/pkg/postgres"
)

// Compile-time interface check
var _ port.ThirdPartyRepository = (*ThirdPartyRepo)(nil)

// ThirdPartyRepo implements ThirdPartyRepository using PostgreSQL.
type ThirdPartyRepo struct {
	db pgpkg.Querier
}

func NewThirdPartyRepo(db pgpkg.Querier) *ThirdPartyRepo {
	return &ThirdPartyRepo{db: db}
}

func (r *ThirdPartyRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ThirdParty, error) {
	var (
		partyID        uuid.UUID
		name           string
		partyType      string
		taxID          string
		receivableID   *uuid.UUID
		payableID      *uuid.UUID
		paymentTermsID *uuid.UUID
		active         bool
		createdAt      time.Time
		updatedAt      time.Time
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, name, party_type, tax_id_number, receivable_account_id, payable_account_id, payment_terms_id, active, created_at, updated_at
		FROM third_parties WHERE id = $1
	`, id).Scan(&partyID, &name, &partyType, &taxID, &receivableID, &payableID, &paymentTermsID, &active, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NewNotFound("third party", id.String())
		}
		return nil, fmt.Errorf("query third party: %w", err)
	}

	pt, err := valueobject.NewThirdPartyType(partyType)
	if err != nil {
		return nil, err
	}
	return model.ReconstructThirdParty(partyID, name, pt, taxID,
		derefUUID(receivableID), derefUUID(payableID), derefUUID(paymentTermsID),
		active, createdAt, updatedAt), nil
}

func derefUUID(p *uuid.UUID) uuid.UUID {
	if p == nil {
		return uuid.Nil
	}
	return *p
}

func nullableUUID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}

func derefTime(p *time.Time) time.Time {
	if p == nil {
		return time.Time{}
	}
	return *p
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
