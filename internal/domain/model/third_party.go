package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/finbooks/backoffice/internal/domain/apperr"
	"github.com/finbooks/backoffice/internal/domain/valueobject"
)

// ThirdParty is an invoice counterparty. It may carry per-entity account
// overrides that take precedence over chart-level defaults when resolving
// the receivable or payable account.
type ThirdParty struct {
	id                  uuid.UUID
	name                string
	partyType           valueobject.ThirdPartyType
	taxID               string
	receivableAccountID uuid.UUID
	payableAccountID    uuid.UUID
	paymentTermsID      uuid.UUID
	active              bool
	createdAt           time.Time
	updatedAt           time.Time
}

func NewThirdParty(name string, partyType valueobject.ThirdPartyType, taxID string) (*ThirdParty, error) {
	if name == "" {
		return nil, apperr.NewValidation("third party name is required")
	}
	if partyType.IsZero() {
		return nil, apperr.NewValidation("third party type is required")
	}
	now := time.Now()
	return &ThirdParty{
		id:        uuid.New(),
		name:      name,
		partyType: partyType,
		taxID:     taxID,
		active:    true,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructThirdParty rebuilds a ThirdParty from persistence.
func ReconstructThirdParty(
	id uuid.UUID,
	name string,
	partyType valueobject.ThirdPartyType,
	taxID string,
	receivableAccountID uuid.UUID,
	payableAccountID uuid.UUID,
	paymentTermsID uuid.UUID,
	active bool,
	createdAt time.Time,
	updatedAt time.Time,
) *ThirdParty {
	return &ThirdParty{
		id:                  id,
		name:                name,
		partyType:           partyType,
		taxID:               taxID,
		receivableAccountID: receivableAccountID,
		payableAccountID:    payableAccountID,
		paymentTermsID:      paymentTermsID,
		active:              active,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}
}

func (p *ThirdParty) ID() uuid.UUID                         { return p.id }
func (p *ThirdParty) Name() string                          { return p.name }
func (p *ThirdParty) PartyType() valueobject.ThirdPartyType { return p.partyType }
func (p *ThirdParty) TaxID() string                         { return p.taxID }
func (p *ThirdParty) ReceivableAccountID() uuid.UUID        { return p.receivableAccountID }
func (p *ThirdParty) PayableAccountID() uuid.UUID           { return p.payableAccountID }
func (p *ThirdParty) PaymentTermsID() uuid.UUID             { return p.paymentTermsID }
func (p *ThirdParty) Active() bool                          { return p.active }
func (p *ThirdParty) CreatedAt() time.Time                  { return p.createdAt }
func (p *ThirdParty) UpdatedAt() time.Time                  { return p.updatedAt }

// SetReceivableAccount installs a per-party receivable account override.
func (p *ThirdParty) SetReceivableAccount(accountID uuid.UUID) {
	p.receivableAccountID = accountID
	p.updatedAt = time.Now()
}

// SetPayableAccount installs a per-party payable account override.
func (p *ThirdParty) SetPayableAccount(accountID uuid.UUID) {
	p.payableAccountID = accountID
	p.updatedAt = time.Now()
}

// SetPaymentTerms attaches default payment terms to the party.
func (p *ThirdParty) SetPaymentTerms(termsID uuid.UUID) {
	p.paymentTermsID = termsID
	p.updatedAt = time.Now()
}
