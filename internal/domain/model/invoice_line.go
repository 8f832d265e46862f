package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finbooks/backoffice/internal/domain/apperr"
)

// InvoiceLine is one billed item. Amounts are computed once from
// quantity, unit price, discount percent and tax rate, all rounded to
// 2 decimal places.
type InvoiceLine struct {
	id               uuid.UUID
	invoiceID        uuid.UUID
	lineNumber       int
	description      string
	productID        uuid.UUID
	accountID        uuid.UUID
	taxID            uuid.UUID
	quantity         decimal.Decimal
	unitPrice        decimal.Decimal
	discountPercent  decimal.Decimal
	taxRate          decimal.Decimal
	grossAmount      decimal.Decimal
	discountAmount   decimal.Decimal
	netAmount        decimal.Decimal
	taxAmount        decimal.Decimal
	totalAmount      decimal.Decimal
}

func NewInvoiceLine(
	invoiceID uuid.UUID,
	lineNumber int,
	description string,
	productID uuid.UUID,
	accountID uuid.UUID,
	taxID uuid.UUID,
	quantity decimal.Decimal,
	unitPrice decimal.Decimal,
	discountPercent decimal.Decimal,
	taxRate decimal.Decimal,
) (*InvoiceLine, error) {
	if lineNumber < 1 {
		return nil, apperr.NewValidation("invoice line number must be >= 1, got %d", lineNumber)
	}
	if description == "" {
		return nil, apperr.NewValidation("invoice line %d: description is required", lineNumber)
	}
	if !quantity.IsPositive() {
		return nil, apperr.NewValidation("invoice line %d: quantity must be positive", lineNumber)
	}
	if unitPrice.IsNegative() {
		return nil, apperr.NewValidation("invoice line %d: unit price must not be negative", lineNumber)
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, apperr.NewValidation("invoice line %d: discount percent must be in [0, 100]", lineNumber)
	}
	if taxRate.IsNegative() {
		return nil, apperr.NewValidation("invoice line %d: tax rate must not be negative", lineNumber)
	}
	l := &InvoiceLine{
		id:              uuid.New(),
		invoiceID:       invoiceID,
		lineNumber:      lineNumber,
		description:     description,
		productID:       productID,
		accountID:       accountID,
		taxID:           taxID,
		quantity:        quantity,
		unitPrice:       unitPrice,
		discountPercent: discountPercent,
		taxRate:         taxRate,
	}
	l.computeAmounts()
	return l, nil
}

// ReconstructInvoiceLine rebuilds an InvoiceLine from persistence.
func ReconstructInvoiceLine(
	id uuid.UUID,
	invoiceID uuid.UUID,
	lineNumber int,
	description string,
	productID uuid.UUID,
	accountID uuid.UUID,
	taxID uuid.UUID,
	quantity decimal.Decimal,
	unitPrice decimal.Decimal,
	discountPercent decimal.Decimal,
	taxRate decimal.Decimal,
) *InvoiceLine {
	l := &InvoiceLine{
		id:              id,
		invoiceID:       invoiceID,
		lineNumber:      lineNumber,
		description:     description,
		productID:       productID,
		accountID:       accountID,
		taxID:           taxID,
		quantity:        quantity,
		unitPrice:       unitPrice,
		discountPercent: discountPercent,
		taxRate:         taxRate,
	}
	l.computeAmounts()
	return l
}

// computeAmounts derives the line money figures. Discount applies to the
// gross amount; tax applies to the discounted net.
func (l *InvoiceLine) computeAmounts() {
	hundred := decimal.NewFromInt(100)
	l.grossAmount = l.quantity.Mul(l.unitPrice).Round(2)
	l.discountAmount = l.grossAmount.Mul(l.discountPercent).Div(hundred).Round(2)
	l.netAmount = l.grossAmount.Sub(l.discountAmount)
	l.taxAmount = l.netAmount.Mul(l.taxRate).Div(hundred).Round(2)
	l.totalAmount = l.netAmount.Add(l.taxAmount)
}

func (l *InvoiceLine) ID() uuid.UUID                    { return l.id }
func (l *InvoiceLine) InvoiceID() uuid.UUID             { return l.invoiceID }
func (l *InvoiceLine) LineNumber() int                  { return l.lineNumber }
func (l *InvoiceLine) Description() string              { return l.description }
func (l *InvoiceLine) ProductID() uuid.UUID             { return l.productID }
func (l *InvoiceLine) AccountID() uuid.UUID             { return l.accountID }
func (l *InvoiceLine) TaxID() uuid.UUID                 { return l.taxID }
func (l *InvoiceLine) Quantity() decimal.Decimal        { return l.quantity }
func (l *InvoiceLine) UnitPrice() decimal.Decimal       { return l.unitPrice }
func (l *InvoiceLine) DiscountPercent() decimal.Decimal { return l.discountPercent }
func (l *InvoiceLine) TaxRate() decimal.Decimal         { return l.taxRate }
func (l *InvoiceLine) GrossAmount() decimal.Decimal     { return l.grossAmount }
func (l *InvoiceLine) DiscountAmount() decimal.Decimal  { return l.discountAmount }
func (l *InvoiceLine) NetAmount() decimal.Decimal       { return l.netAmount }
func (l *InvoiceLine) TaxAmount() decimal.Decimal       { return l.taxAmount }
func (l *InvoiceLine) TotalAmount() decimal.Decimal     { return l.totalAmount }
