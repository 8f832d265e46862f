package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finbooks/backoffice/internal/domain/apperr"
)

// Tax is a named tax rate with optional account overrides for the
// collected (sale) and recoverable (purchase) sides.
type Tax struct {
	id                   uuid.UUID
	name                 string
	rate                 decimal.Decimal
	collectedAccountID   uuid.UUID
	recoverableAccountID uuid.UUID
	active               bool
	createdAt            time.Time
	updatedAt            time.Time
}

func NewTax(name string, rate decimal.Decimal) (*Tax, error) {
	if name == "" {
		return nil, apperr.NewValidation("tax name is required")
	}
	if rate.IsNegative() {
		return nil, apperr.NewValidation("tax rate must not be negative, got %s", rate)
	}
	now := time.Now()
	return &Tax{
		id:        uuid.New(),
		name:      name,
		rate:      rate,
		active:    true,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructTax rebuilds a Tax from persistence.
func ReconstructTax(
	id uuid.UUID,
	name string,
	rate decimal.Decimal,
	collectedAccountID uuid.UUID,
	recoverableAccountID uuid.UUID,
	active bool,
	createdAt time.Time,
	updatedAt time.Time,
) *Tax {
	return &Tax{
		id:                   id,
		name:                 name,
		rate:                 rate,
		collectedAccountID:   collectedAccountID,
		recoverableAccountID: recoverableAccountID,
		active:               active,
		createdAt:            createdAt,
		updatedAt:            updatedAt,
	}
}

func (t *Tax) ID() uuid.UUID                   { return t.id }
func (t *Tax) Name() string                    { return t.name }
func (t *Tax) Rate() decimal.Decimal           { return t.rate }
func (t *Tax) CollectedAccountID() uuid.UUID   { return t.collectedAccountID }
func (t *Tax) RecoverableAccountID() uuid.UUID { return t.recoverableAccountID }
func (t *Tax) Active() bool                    { return t.active }
func (t *Tax) CreatedAt() time.Time            { return t.createdAt }
func (t *Tax) UpdatedAt() time.Time            { return t.updatedAt }
