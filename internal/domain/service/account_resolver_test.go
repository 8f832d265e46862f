package service_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbooks/backoffice/internal/domain/apperr"
	"github.com/finbooks/backoffice/internal/domain/model"
	"github.com/finbooks/backoffice/internal/domain/service"
	"github.com/finbooks/backoffice/internal/domain/valueobject"
)

func mustAccount(t *testing.T, code string, accountType valueobject.AccountType, postable bool) *model.Account {
	t.Helper()
	acc, err := model.NewAccount(valueobject.MustAccountCode(code), "Account "+code, accountType, uuid.Nil, postable)
	require.NoError(t, err)
	return acc
}

// testChart builds the conventional chart with one postable leaf per
// resolver prefix, plus non-postable parents that a naive scan would hit
// first.
func testChart(t *testing.T) (*service.Catalog, map[string]*model.Account) {
	t.Helper()
	byCode := map[string]*model.Account{
		"1.1.2":     mustAccount(t, "1.1.2", valueobject.AccountTypeAsset, false),
		"1.1.2.001": mustAccount(t, "1.1.2.001", valueobject.AccountTypeAsset, true),
		"1.1.3.001": mustAccount(t, "1.1.3.001", valueobject.AccountTypeAsset, true),
		"1.1.4.001": mustAccount(t, "1.1.4.001", valueobject.AccountTypeAsset, true),
		"2.1.1.001": mustAccount(t, "2.1.1.001", valueobject.AccountTypeLiability, true),
		"2.1.4.001": mustAccount(t, "2.1.4.001", valueobject.AccountTypeLiability, true),
		"3.1.001":   mustAccount(t, "3.1.001", valueobject.AccountTypeIncome, true),
		"3.2.001":   mustAccount(t, "3.2.001", valueobject.AccountTypeIncome, true),
		"4.1.001":   mustAccount(t, "4.1.001", valueobject.AccountTypeExpense, true),
	}
	accounts := []*model.Account{
		byCode["1.1.2"], byCode["1.1.2.001"], byCode["1.1.3.001"], byCode["1.1.4.001"],
		byCode["2.1.1.001"], byCode["2.1.4.001"], byCode["3.1.001"], byCode["3.2.001"], byCode["4.1.001"],
	}
	return service.NewCatalog(accounts, nil, nil), byCode
}

func draftInvoice(t *testing.T, invoiceType valueobject.InvoiceType, taxRate decimal.Decimal) model.Invoice {
	t.Helper()
	invoiceDate := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	inv, err := model.NewInvoice("INV-001", invoiceType, uuid.New(), invoiceDate, invoiceDate.AddDate(0, 1, 0), "EUR")
	require.NoError(t, err)

	line, err := model.NewInvoiceLine(
		inv.ID(), 1, "Consulting services", uuid.Nil, uuid.Nil, uuid.Nil,
		decimal.NewFromInt(1), decimal.NewFromInt(100), decimal.Zero, taxRate,
	)
	require.NoError(t, err)
	inv, err = inv.WithLines([]*model.InvoiceLine{line})
	require.NoError(t, err)
	return inv
}

func newParty(t *testing.T) *model.ThirdParty {
	t.Helper()
	party, err := model.NewThirdParty("Acme GmbH", valueobject.ThirdPartyTypeCustomer, "DE123456789")
	require.NoError(t, err)
	return party
}

func TestAccountResolver_DefaultChainSale(t *testing.T) {
	catalog, byCode := testChart(t)
	r := service.NewAccountResolver(service.DefaultResolverConfig())
	inv := draftInvoice(t, valueobject.InvoiceTypeCustomer, decimal.NewFromInt(19))

	resolved, err := r.ResolveAll(inv, newParty(t), catalog)
	require.NoError(t, err)

	// skips the non-postable "1.1.2" parent
	assert.Equal(t, byCode["1.1.2.001"].ID(), resolved.ThirdParty.ID())
	assert.Equal(t, byCode["3.1.001"].ID(), resolved.Lines[inv.Lines()[0].ID()].ID())
	require.Len(t, resolved.Taxes, 1)
	assert.Equal(t, byCode["2.1.4.001"].ID(), resolved.Taxes[0].Account.ID())
	assert.True(t, resolved.Taxes[0].Amount.Equal(decimal.NewFromInt(19)))
}

func TestAccountResolver_DefaultChainPurchase(t *testing.T) {
	catalog, byCode := testChart(t)
	r := service.NewAccountResolver(service.DefaultResolverConfig())
	inv := draftInvoice(t, valueobject.InvoiceTypeSupplier, decimal.NewFromInt(19))

	resolved, err := r.ResolveAll(inv, newParty(t), catalog)
	require.NoError(t, err)

	assert.Equal(t, byCode["2.1.1.001"].ID(), resolved.ThirdParty.ID())
	assert.Equal(t, byCode["4.1.001"].ID(), resolved.Lines[inv.Lines()[0].ID()].ID())
	require.Len(t, resolved.Taxes, 1)
	assert.Equal(t, byCode["1.1.4.001"].ID(), resolved.Taxes[0].Account.ID())
}

func TestAccountResolver_PartyOverrideWins(t *testing.T) {
	catalog, byCode := testChart(t)
	r := service.NewAccountResolver(service.DefaultResolverConfig())
	inv := draftInvoice(t, valueobject.InvoiceTypeCustomer, decimal.Zero)

	party := newParty(t)
	party.SetReceivableAccount(byCode["1.1.4.001"].ID())

	acc, err := r.ResolveThirdPartyAccount(inv, party, catalog)
	require.NoError(t, err)
	assert.Equal(t, byCode["1.1.4.001"].ID(), acc.ID())
}

func TestAccountResolver_InvoiceOverrideBeatsPartyDefault(t *testing.T) {
	catalog, byCode := testChart(t)
	r := service.NewAccountResolver(service.DefaultResolverConfig())
	inv := draftInvoice(t, valueobject.InvoiceTypeCustomer, decimal.Zero)

	party := newParty(t)
	party.SetReceivableAccount(byCode["1.1.4.001"].ID())

	inv, err := inv.WithAccount(byCode["1.1.3.001"].ID())
	require.NoError(t, err)

	acc, err := r.ResolveThirdPartyAccount(inv, party, catalog)
	require.NoError(t, err)
	assert.Equal(t, byCode["1.1.3.001"].ID(), acc.ID())
}

func TestAccountResolver_InvoiceOverrideNotPostable(t *testing.T) {
	catalog, byCode := testChart(t)
	r := service.NewAccountResolver(service.DefaultResolverConfig())
	inv := draftInvoice(t, valueobject.InvoiceTypeCustomer, decimal.Zero)

	inv, err := inv.WithAccount(byCode["1.1.2"].ID())
	require.NoError(t, err)

	_, err = r.ResolveThirdPartyAccount(inv, newParty(t), catalog)
	assert.True(t, apperr.IsBusinessRule(err))
}

func TestAccountResolver_ProductDefaultBeatsChartScan(t *testing.T) {
	_, byCode := testChart(t)
	r := service.NewAccountResolver(service.DefaultResolverConfig())

	product, err := model.NewProduct("SKU-1", "Widget")
	require.NoError(t, err)
	product.SetIncomeAccount(byCode["3.2.001"].ID())

	accounts := []*model.Account{
		byCode["1.1.2.001"], byCode["3.2.001"], byCode["3.1.001"],
	}
	catalog := service.NewCatalog(accounts, []*model.Product{product}, nil)

	inv, err := model.NewInvoice("INV-002", valueobject.InvoiceTypeCustomer, uuid.New(),
		time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC), "EUR")
	require.NoError(t, err)
	line, err := model.NewInvoiceLine(
		inv.ID(), 1, "Widget", product.ID(), uuid.Nil, uuid.Nil,
		decimal.NewFromInt(1), decimal.NewFromInt(50), decimal.Zero, decimal.Zero,
	)
	require.NoError(t, err)
	inv, err = inv.WithLines([]*model.InvoiceLine{line})
	require.NoError(t, err)

	acc, err := r.ResolveLineAccount(inv, inv.Lines()[0], catalog)
	require.NoError(t, err)
	assert.Equal(t, byCode["3.2.001"].ID(), acc.ID())
}

func TestAccountResolver_ChartScanFiltersByType(t *testing.T) {
	// the only postable account under the receivable prefix is an
	// EXPENSE account, so the scan must come up empty
	wrong := mustAccount(t, "1.1.2.001", valueobject.AccountTypeExpense, true)
	catalog := service.NewCatalog([]*model.Account{wrong}, nil, nil)
	r := service.NewAccountResolver(service.DefaultResolverConfig())
	inv := draftInvoice(t, valueobject.InvoiceTypeCustomer, decimal.Zero)

	_, err := r.ResolveThirdPartyAccount(inv, newParty(t), catalog)
	assert.True(t, apperr.IsBusinessRule(err))
}

func TestAccountResolver_PartyDefaultWrongType(t *testing.T) {
	catalog, byCode := testChart(t)
	r := service.NewAccountResolver(service.DefaultResolverConfig())
	inv := draftInvoice(t, valueobject.InvoiceTypeCustomer, decimal.Zero)

	party := newParty(t)
	party.SetReceivableAccount(byCode["4.1.001"].ID())

	_, err := r.ResolveThirdPartyAccount(inv, party, catalog)
	assert.True(t, apperr.IsBusinessRule(err))
}

func TestAccountResolver_InvoiceOverrideWrongType(t *testing.T) {
	catalog, byCode := testChart(t)
	r := service.NewAccountResolver(service.DefaultResolverConfig())
	inv := draftInvoice(t, valueobject.InvoiceTypeCustomer, decimal.Zero)

	inv, err := inv.WithAccount(byCode["2.1.4.001"].ID())
	require.NoError(t, err)

	_, err = r.ResolveThirdPartyAccount(inv, newParty(t), catalog)
	assert.True(t, apperr.IsBusinessRule(err))
}

func TestAccountResolver_LineOverrideWrongType(t *testing.T) {
	catalog, byCode := testChart(t)
	r := service.NewAccountResolver(service.DefaultResolverConfig())

	inv, err := model.NewInvoice("INV-004", valueobject.InvoiceTypeCustomer, uuid.New(),
		time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC), "EUR")
	require.NoError(t, err)
	line, err := model.NewInvoiceLine(
		inv.ID(), 1, "Widget", uuid.Nil, byCode["1.1.2.001"].ID(), uuid.Nil,
		decimal.NewFromInt(1), decimal.NewFromInt(50), decimal.Zero, decimal.Zero,
	)
	require.NoError(t, err)
	inv, err = inv.WithLines([]*model.InvoiceLine{line})
	require.NoError(t, err)

	_, err = r.ResolveLineAccount(inv, inv.Lines()[0], catalog)
	assert.True(t, apperr.IsBusinessRule(err))
}

func TestAccountResolver_NoAccountFound(t *testing.T) {
	catalog := service.NewCatalog(nil, nil, nil)
	r := service.NewAccountResolver(service.DefaultResolverConfig())
	inv := draftInvoice(t, valueobject.InvoiceTypeCustomer, decimal.Zero)

	_, err := r.ResolveAll(inv, newParty(t), catalog)
	assert.True(t, apperr.IsBusinessRule(err))
}

func TestAccountResolver_GroupsTaxBucketsByRate(t *testing.T) {
	catalog, _ := testChart(t)
	r := service.NewAccountResolver(service.DefaultResolverConfig())

	invoiceDate := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	inv, err := model.NewInvoice("INV-003", valueobject.InvoiceTypeCustomer, uuid.New(), invoiceDate, invoiceDate, "EUR")
	require.NoError(t, err)

	mk := func(n int, price int64, rate int64) *model.InvoiceLine {
		l, err := model.NewInvoiceLine(
			inv.ID(), n, "line", uuid.Nil, uuid.Nil, uuid.Nil,
			decimal.NewFromInt(1), decimal.NewFromInt(price), decimal.Zero, decimal.NewFromInt(rate),
		)
		require.NoError(t, err)
		return l
	}
	inv, err = inv.WithLines([]*model.InvoiceLine{
		mk(1, 100, 19), mk(2, 200, 19), mk(3, 100, 7), mk(4, 50, 0),
	})
	require.NoError(t, err)

	resolved, err := r.ResolveAll(inv, newParty(t), catalog)
	require.NoError(t, err)

	// two buckets, zero-rate line skipped
	require.Len(t, resolved.Taxes, 2)
	assert.True(t, resolved.Taxes[0].Rate.Equal(decimal.NewFromInt(19)))
	assert.True(t, resolved.Taxes[0].Amount.Equal(decimal.NewFromInt(57)), "19%% bucket %s", resolved.Taxes[0].Amount)
	assert.True(t, resolved.Taxes[1].Rate.Equal(decimal.NewFromInt(7)))
	assert.True(t, resolved.Taxes[1].Amount.Equal(decimal.NewFromInt(7)), "7%% bucket %s", resolved.Taxes[1].Amount)
}
