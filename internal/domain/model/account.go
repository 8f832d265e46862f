package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finbooks/backoffice/internal/domain/apperr"
	"github.com/finbooks/backoffice/internal/domain/valueobject"
)

// Account is a node in the chart of accounts. Only active leaf accounts
// that allow movements may appear on journal entry lines. Debit and credit
// totals are accumulated separately so both sides stay auditable.
type Account struct {
	id              uuid.UUID
	code            valueobject.AccountCode
	name            string
	accountType     valueobject.AccountType
	parentID        uuid.UUID
	active          bool
	allowsMovements bool
	debitBalance    decimal.Decimal
	creditBalance   decimal.Decimal
	createdAt       time.Time
	updatedAt       time.Time
}

func NewAccount(code valueobject.AccountCode, name string, accountType valueobject.AccountType, parentID uuid.UUID, allowsMovements bool) (*Account, error) {
	if code.IsZero() {
		return nil, apperr.NewValidation("account code is required")
	}
	if name == "" {
		return nil, apperr.NewValidation("account name is required")
	}
	if accountType.IsZero() {
		return nil, apperr.NewValidation("account type is required")
	}
	now := time.Now()
	return &Account{
		id:              uuid.New(),
		code:            code,
		name:            name,
		accountType:     accountType,
		parentID:        parentID,
		active:          true,
		allowsMovements: allowsMovements,
		debitBalance:    decimal.Zero,
		creditBalance:   decimal.Zero,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// ReconstructAccount rebuilds an Account from persistence.
func ReconstructAccount(
	id uuid.UUID,
	code valueobject.AccountCode,
	name string,
	accountType valueobject.AccountType,
	parentID uuid.UUID,
	active bool,
	allowsMovements bool,
	debitBalance decimal.Decimal,
	creditBalance decimal.Decimal,
	createdAt time.Time,
	updatedAt time.Time,
) *Account {
	return &Account{
		id:              id,
		code:            code,
		name:            name,
		accountType:     accountType,
		parentID:        parentID,
		active:          active,
		allowsMovements: allowsMovements,
		debitBalance:    debitBalance,
		creditBalance:   creditBalance,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (a *Account) ID() uuid.UUID                        { return a.id }
func (a *Account) Code() valueobject.AccountCode        { return a.code }
func (a *Account) Name() string                         { return a.name }
func (a *Account) AccountType() valueobject.AccountType { return a.accountType }
func (a *Account) ParentID() uuid.UUID                  { return a.parentID }
func (a *Account) Active() bool                         { return a.active }
func (a *Account) AllowsMovements() bool                { return a.allowsMovements }
func (a *Account) DebitBalance() decimal.Decimal        { return a.debitBalance }
func (a *Account) CreditBalance() decimal.Decimal       { return a.creditBalance }
func (a *Account) CreatedAt() time.Time                 { return a.createdAt }
func (a *Account) UpdatedAt() time.Time                 { return a.updatedAt }

// IsPostable reports whether the account may receive journal entry lines.
func (a *Account) IsPostable() bool {
	return a.active && a.allowsMovements
}

// Balance returns the debit-normal net balance (debit minus credit).
func (a *Account) Balance() decimal.Decimal {
	return a.debitBalance.Sub(a.creditBalance)
}

// ApplyMovement accumulates a posted line's sides onto the account.
func (a *Account) ApplyMovement(debit, credit decimal.Decimal) {
	a.debitBalance = a.debitBalance.Add(debit)
	a.creditBalance = a.creditBalance.Add(credit)
	a.updatedAt = time.Now()
}

// UnapplyMovement reverses a previously applied movement.
func (a *Account) UnapplyMovement(debit, credit decimal.Decimal) {
	a.debitBalance = a.debitBalance.Sub(debit)
	a.creditBalance = a.creditBalance.Sub(credit)
	a.updatedAt = time.Now()
}
