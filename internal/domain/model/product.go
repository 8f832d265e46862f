package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/finbooks/backoffice/internal/domain/apperr"
)

// Product is a sellable or purchasable item. Its income and expense
// account overrides feed the line account resolution chain.
type Product struct {
	id               uuid.UUID
	sku              string
	name             string
	incomeAccountID  uuid.UUID
	expenseAccountID uuid.UUID
	defaultTaxID     uuid.UUID
	active           bool
	createdAt        time.Time
	updatedAt        time.Time
}

func NewProduct(sku, name string) (*Product, error) {
	if sku == "" {
		return nil, apperr.NewValidation("product sku is required")
	}
	if name == "" {
		return nil, apperr.NewValidation("product name is required")
	}
	now := time.Now()
	return &Product{
		id:        uuid.New(),
		sku:       sku,
		name:      name,
		active:    true,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructProduct rebuilds a Product from persistence.
func ReconstructProduct(
	id uuid.UUID,
	sku string,
	name string,
	incomeAccountID uuid.UUID,
	expenseAccountID uuid.UUID,
	defaultTaxID uuid.UUID,
	active bool,
	createdAt time.Time,
	updatedAt time.Time,
) *Product {
	return &Product{
		id:               id,
		sku:              sku,
		name:             name,
		incomeAccountID:  incomeAccountID,
		expenseAccountID: expenseAccountID,
		defaultTaxID:     defaultTaxID,
		active:           active,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

func (p *Product) ID() uuid.UUID               { return p.id }
func (p *Product) SKU() string                 { return p.sku }
func (p *Product) Name() string                { return p.name }
func (p *Product) IncomeAccountID() uuid.UUID  { return p.incomeAccountID }
func (p *Product) ExpenseAccountID() uuid.UUID { return p.expenseAccountID }
func (p *Product) DefaultTaxID() uuid.UUID     { return p.defaultTaxID }
func (p *Product) Active() bool                { return p.active }
func (p *Product) CreatedAt() time.Time        { return p.createdAt }
func (p *Product) UpdatedAt() time.Time        { return p.updatedAt }

// SetIncomeAccount installs a per-product income account override.
func (p *Product) SetIncomeAccount(accountID uuid.UUID) {
	p.incomeAccountID = accountID
	p.updatedAt = time.Now()
}

// SetExpenseAccount installs a per-product expense account override.
func (p *Product) SetExpenseAccount(accountID uuid.UUID) {
	p.expenseAccountID = accountID
	p.updatedAt = time.Now()
}
