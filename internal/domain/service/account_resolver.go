package service

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finbooks/backoffice/internal/domain/apperr"
	"github.com/finbooks/backoffice/internal/domain/model"
	"github.com/finbooks/backoffice/internal/domain/valueobject"
)

// ResolverConfig lists the chart code prefixes scanned when neither the
// line nor the entity carries an account override. Prefixes are tried in
// order; the first active leaf account under a prefix wins.
type ResolverConfig struct {
	ReceivablePrefixes     []string
	PayablePrefixes        []string
	IncomePrefixes         []string
	ExpensePrefixes        []string
	TaxPayablePrefixes     []string
	TaxRecoverablePrefixes []string
}

// DefaultResolverConfig returns the conventional chart layout.
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		ReceivablePrefixes:     []string{"1.1.2"},
		PayablePrefixes:        []string{"2.1.1"},
		IncomePrefixes:         []string{"3.1"},
		ExpensePrefixes:        []string{"4.1"},
		TaxPayablePrefixes:     []string{"2.1.4"},
		TaxRecoverablePrefixes: []string{"1.1.4"},
	}
}

// ResolvedTax is one tax bucket: all line tax amounts sharing a rate,
// bound to the account they post to.
type ResolvedTax struct {
	Rate    decimal.Decimal
	Amount  decimal.Decimal
	Account *model.Account
}

// ResolvedAccounts is the full account binding for one invoice.
type ResolvedAccounts struct {
	ThirdParty *model.Account
	Lines      map[uuid.UUID]*model.Account
	Taxes      []ResolvedTax
}

// AccountResolver maps an invoice onto concrete ledger accounts using a
// three-tier chain: explicit override, entity default, then a chart scan
// over configured code prefixes. Every tier must yield a postable
// account of the type the role demands, so an override cannot point a
// receivable at an expense account.
type AccountResolver struct {
	cfg ResolverConfig
}

func NewAccountResolver(cfg ResolverConfig) *AccountResolver {
	return &AccountResolver{cfg: cfg}
}

// ResolveThirdPartyAccount picks the receivable (sale) or payable
// (purchase) account for the invoice counterparty: invoice override,
// then party default, then the chart scan.
func (r *AccountResolver) ResolveThirdPartyAccount(inv model.Invoice, party *model.ThirdParty, catalog *Catalog) (*model.Account, error) {
	var partyDefault uuid.UUID
	var prefixes []string
	var wantType valueobject.AccountType
	var kind string
	if inv.InvoiceType().IsSale() {
		partyDefault = party.ReceivableAccountID()
		prefixes = r.cfg.ReceivablePrefixes
		wantType = valueobject.AccountTypeAsset
		kind = "receivable"
	} else {
		partyDefault = party.PayableAccountID()
		prefixes = r.cfg.PayablePrefixes
		wantType = valueobject.AccountTypeLiability
		kind = "payable"
	}

	if inv.AccountID() != uuid.Nil {
		acc := catalog.Account(inv.AccountID())
		if acc == nil || !acc.IsPostable() {
			return nil, apperr.NewBusinessRule("account override %s on invoice %s is not postable", inv.AccountID(), inv.Number())
		}
		if acc.AccountType() != wantType {
			return nil, apperr.NewBusinessRule("account override %s on invoice %s is %s, the %s role requires %s", acc.Code(), inv.Number(), acc.AccountType(), kind, wantType)
		}
		return acc, nil
	}

	if partyDefault != uuid.Nil {
		acc := catalog.Account(partyDefault)
		if acc == nil || !acc.IsPostable() {
			return nil, apperr.NewBusinessRule("%s account override %s of party %s is not postable", kind, partyDefault, party.Name())
		}
		if acc.AccountType() != wantType {
			return nil, apperr.NewBusinessRule("%s account %s of party %s is %s, want %s", kind, acc.Code(), party.Name(), acc.AccountType(), wantType)
		}
		return acc, nil
	}
	if acc := catalog.FirstPostableUnder(prefixes, wantType); acc != nil {
		return acc, nil
	}
	return nil, apperr.NewBusinessRule("no postable %s account of type %s found under prefixes %v", kind, wantType, prefixes)
}

// ResolveLineAccount picks the income (sale) or expense (purchase)
// account for one invoice line: line override, then product default,
// then the chart scan.
func (r *AccountResolver) ResolveLineAccount(inv model.Invoice, line *model.InvoiceLine, catalog *Catalog) (*model.Account, error) {
	var prefixes []string
	var wantType valueobject.AccountType
	var kind string
	if inv.InvoiceType().IsSale() {
		prefixes = r.cfg.IncomePrefixes
		wantType = valueobject.AccountTypeIncome
		kind = "income"
	} else {
		prefixes = r.cfg.ExpensePrefixes
		wantType = valueobject.AccountTypeExpense
		kind = "expense"
	}

	if line.AccountID() != uuid.Nil {
		acc := catalog.Account(line.AccountID())
		if acc == nil || !acc.IsPostable() {
			return nil, apperr.NewBusinessRule("account override on line %d is not postable", line.LineNumber())
		}
		if acc.AccountType() != wantType {
			return nil, apperr.NewBusinessRule("account override %s on line %d is %s, the %s role requires %s", acc.Code(), line.LineNumber(), acc.AccountType(), kind, wantType)
		}
		return acc, nil
	}

	var productDefault uuid.UUID
	if line.ProductID() != uuid.Nil {
		if product := catalog.Product(line.ProductID()); product != nil {
			if inv.InvoiceType().IsSale() {
				productDefault = product.IncomeAccountID()
			} else {
				productDefault = product.ExpenseAccountID()
			}
		}
	}
	if productDefault != uuid.Nil {
		acc := catalog.Account(productDefault)
		if acc == nil || !acc.IsPostable() {
			return nil, apperr.NewBusinessRule("product %s account for line %d is not postable", kind, line.LineNumber())
		}
		if acc.AccountType() != wantType {
			return nil, apperr.NewBusinessRule("product %s account %s for line %d is %s, want %s", kind, acc.Code(), line.LineNumber(), acc.AccountType(), wantType)
		}
		return acc, nil
	}
	if acc := catalog.FirstPostableUnder(prefixes, wantType); acc != nil {
		return acc, nil
	}
	return nil, apperr.NewBusinessRule("no postable %s account of type %s found under prefixes %v for line %d", kind, wantType, prefixes, line.LineNumber())
}

// ResolveTaxAccount picks the account a tax bucket posts to. Sales post
// collected tax to a liability account; purchases post recoverable tax
// to an asset account. Tax-level overrides win over the chart scan.
func (r *AccountResolver) ResolveTaxAccount(inv model.Invoice, tax *model.Tax, catalog *Catalog) (*model.Account, error) {
	var overrideID uuid.UUID
	var prefixes []string
	var wantType valueobject.AccountType
	if inv.InvoiceType().IsSale() {
		if tax != nil {
			overrideID = tax.CollectedAccountID()
		}
		prefixes = r.cfg.TaxPayablePrefixes
		wantType = valueobject.AccountTypeLiability
	} else {
		if tax != nil {
			overrideID = tax.RecoverableAccountID()
		}
		prefixes = r.cfg.TaxRecoverablePrefixes
		wantType = valueobject.AccountTypeAsset
	}

	if overrideID != uuid.Nil {
		acc := catalog.Account(overrideID)
		if acc == nil || !acc.IsPostable() {
			return nil, apperr.NewBusinessRule("tax account override %s is not postable", overrideID)
		}
		if acc.AccountType() != wantType {
			return nil, apperr.NewBusinessRule("tax account override %s is %s, want %s", acc.Code(), acc.AccountType(), wantType)
		}
		return acc, nil
	}
	if acc := catalog.FirstPostableUnder(prefixes, wantType); acc != nil {
		return acc, nil
	}
	return nil, apperr.NewBusinessRule("no postable %s tax account found under prefixes %v", wantType, prefixes)
}

// ResolveAll binds every account the invoice needs in one pass. Tax
// buckets are grouped by rate; zero-rate and zero-amount buckets are
// skipped.
func (r *AccountResolver) ResolveAll(inv model.Invoice, party *model.ThirdParty, catalog *Catalog) (ResolvedAccounts, error) {
	resolved := ResolvedAccounts{
		Lines: make(map[uuid.UUID]*model.Account, len(inv.Lines())),
	}

	partyAccount, err := r.ResolveThirdPartyAccount(inv, party, catalog)
	if err != nil {
		return ResolvedAccounts{}, err
	}
	resolved.ThirdParty = partyAccount

	type bucket struct {
		amount decimal.Decimal
		taxID  uuid.UUID
	}
	buckets := make(map[string]*bucket)
	var rateOrder []string

	for _, line := range inv.Lines() {
		acc, err := r.ResolveLineAccount(inv, line, catalog)
		if err != nil {
			return ResolvedAccounts{}, err
		}
		resolved.Lines[line.ID()] = acc

		if line.TaxRate().IsZero() || line.TaxAmount().IsZero() {
			continue
		}
		key := line.TaxRate().String()
		b, ok := buckets[key]
		if !ok {
			b = &bucket{amount: decimal.Zero, taxID: line.TaxID()}
			buckets[key] = b
			rateOrder = append(rateOrder, key)
		}
		b.amount = b.amount.Add(line.TaxAmount())
	}

	for _, key := range rateOrder {
		b := buckets[key]
		rate, _ := decimal.NewFromString(key)
		var tax *model.Tax
		if b.taxID != uuid.Nil {
			tax = catalog.Tax(b.taxID)
		}
		acc, err := r.ResolveTaxAccount(inv, tax, catalog)
		if err != nil {
			return ResolvedAccounts{}, err
		}
		resolved.Taxes = append(resolved.Taxes, ResolvedTax{Rate: rate, Amount: b.amount, Account: acc})
	}

	return resolved, nil
}
