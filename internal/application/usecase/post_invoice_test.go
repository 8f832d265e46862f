package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbooks/backoffice/internal/application/dto"
	"github.com/finbooks/backoffice/internal/application/usecase"
	"github.com/finbooks/backoffice/internal/domain/apperr"
	"github.com/finbooks/backoffice/internal/domain/model"
	"github.com/finbooks/backoffice/internal/domain/service"
	"github.com/finbooks/backoffice/internal/domain/valueobject"
)

// --- Fixtures ---

type fixture struct {
	store     *memStore
	publisher *mockEventPublisher
	accounts  map[string]*model.Account
	invoiceID uuid.UUID
}

// newFixture seeds the store with the conventional chart, a customer
// and one DRAFT invoice: 100 net + 19% tax = 119 total, 40/60 split.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newMemStore()

	accounts := make(map[string]*model.Account)
	add := func(code string, accountType valueobject.AccountType, postable bool) {
		acc, err := model.NewAccount(valueobject.MustAccountCode(code), "Account "+code, accountType, uuid.Nil, postable)
		require.NoError(t, err)
		accounts[code] = acc
		store.accounts[acc.ID()] = acc
	}
	add("1.1.2", valueobject.AccountTypeAsset, false)
	add("1.1.2.001", valueobject.AccountTypeAsset, true)
	add("1.1.4.001", valueobject.AccountTypeAsset, true)
	add("2.1.1.001", valueobject.AccountTypeLiability, true)
	add("2.1.4.001", valueobject.AccountTypeLiability, true)
	add("3.1.001", valueobject.AccountTypeIncome, true)
	add("4.1.001", valueobject.AccountTypeExpense, true)

	party, err := model.NewThirdParty("Acme GmbH", valueobject.ThirdPartyTypeCustomer, "DE123456789")
	require.NoError(t, err)
	store.parties[party.ID()] = party

	terms, err := model.NewPaymentTerms("40/60", []model.TermLine{
		{Sequence: 1, DaysOffset: 30, Percentage: decimal.NewFromInt(40)},
		{Sequence: 2, DaysOffset: 60, Percentage: decimal.NewFromInt(60)},
	})
	require.NoError(t, err)
	store.terms[terms.ID()] = terms

	invoiceDate := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	inv, err := model.NewInvoice("INV-001", valueobject.InvoiceTypeCustomer, party.ID(),
		invoiceDate, invoiceDate.AddDate(0, 1, 0), "EUR")
	require.NoError(t, err)
	line, err := model.NewInvoiceLine(
		inv.ID(), 1, "Consulting services", uuid.Nil, uuid.Nil, uuid.Nil,
		decimal.NewFromInt(1), decimal.NewFromInt(100), decimal.Zero, decimal.NewFromInt(19),
	)
	require.NoError(t, err)
	inv, err = inv.WithLines([]*model.InvoiceLine{line})
	require.NoError(t, err)
	inv, err = inv.WithPaymentTerms(terms.ID())
	require.NoError(t, err)
	store.invoices[inv.ID()] = inv

	return &fixture{
		store:     store,
		publisher: &mockEventPublisher{},
		accounts:  accounts,
		invoiceID: inv.ID(),
	}
}

func newPostInvoice(f *fixture) *usecase.PostInvoice {
	return usecase.NewPostInvoice(
		f.store,
		f.publisher,
		service.NewAccountResolver(service.DefaultResolverConfig()),
		service.NewPaymentScheduler(),
		service.NewEntryBuilder(),
		service.NewEntryValidator(),
	)
}

// --- Tests ---

func TestPostInvoice_Success(t *testing.T) {
	f := newFixture(t)
	uc := newPostInvoice(f)

	resp, err := uc.Execute(context.Background(), dto.PostInvoiceRequest{InvoiceID: f.invoiceID, Actor: "accountant"})
	require.NoError(t, err)

	assert.Equal(t, "POSTED", resp.Status)
	assert.NotEqual(t, uuid.Nil, resp.JournalEntryID)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(119)))

	entry, ok := f.store.entries[resp.JournalEntryID]
	require.True(t, ok)
	assert.Equal(t, valueobject.EntryStatusPosted, entry.Status())
	assert.True(t, entry.Balanced())
	require.Len(t, entry.Lines(), 4)
	assert.True(t, entry.Lines()[0].Debit().Equal(decimal.NewFromFloat(47.60)))
	assert.True(t, entry.Lines()[1].Debit().Equal(decimal.NewFromFloat(71.40)))

	// balances applied
	recv := f.accounts["1.1.2.001"]
	assert.True(t, recv.DebitBalance().Equal(decimal.NewFromInt(119)), "receivable debit %s", recv.DebitBalance())
	income := f.accounts["3.1.001"]
	assert.True(t, income.CreditBalance().Equal(decimal.NewFromInt(100)))
	tax := f.accounts["2.1.4.001"]
	assert.True(t, tax.CreditBalance().Equal(decimal.NewFromInt(19)))

	require.Len(t, f.publisher.publishedEvents, 1)
	assert.Equal(t, usecase.TopicInvoices, f.publisher.publishedTopics[0])
	assert.Equal(t, "invoicing.invoice.posted", f.publisher.publishedEvents[0].EventType())
}

func TestPostInvoice_RejectsAlreadyPosted(t *testing.T) {
	f := newFixture(t)
	uc := newPostInvoice(f)

	_, err := uc.Execute(context.Background(), dto.PostInvoiceRequest{InvoiceID: f.invoiceID, Actor: "accountant"})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), dto.PostInvoiceRequest{InvoiceID: f.invoiceID, Actor: "accountant"})
	assert.True(t, apperr.IsBusinessRule(err), "got %v", err)
}

func TestPostInvoice_NotFound(t *testing.T) {
	f := newFixture(t)
	uc := newPostInvoice(f)

	_, err := uc.Execute(context.Background(), dto.PostInvoiceRequest{InvoiceID: uuid.New(), Actor: "accountant"})
	assert.True(t, apperr.IsNotFound(err))
}

func TestPostInvoice_NoPostableAccounts(t *testing.T) {
	f := newFixture(t)
	// deactivate the whole chart
	for _, acc := range f.store.accounts {
		*acc = *model.ReconstructAccount(acc.ID(), acc.Code(), acc.Name(), acc.AccountType(),
			acc.ParentID(), false, acc.AllowsMovements(), acc.DebitBalance(), acc.CreditBalance(),
			acc.CreatedAt(), acc.UpdatedAt())
	}
	uc := newPostInvoice(f)

	_, err := uc.Execute(context.Background(), dto.PostInvoiceRequest{InvoiceID: f.invoiceID, Actor: "accountant"})
	assert.True(t, apperr.IsBusinessRule(err), "got %v", err)

	// nothing was persisted
	assert.Empty(t, f.store.entries)
	assert.Empty(t, f.publisher.publishedEvents)
}

func TestPostCancelReset_RoundTripRestoresBalances(t *testing.T) {
	f := newFixture(t)
	post := newPostInvoice(f)
	cancel := usecase.NewCancelInvoice(f.store, f.publisher)
	reset := usecase.NewResetInvoice(f.store, f.publisher)
	ctx := context.Background()

	posted, err := post.Execute(ctx, dto.PostInvoiceRequest{InvoiceID: f.invoiceID, Actor: "accountant"})
	require.NoError(t, err)
	entryID := posted.JournalEntryID

	cancelled, err := cancel.Execute(ctx, dto.CancelInvoiceRequest{InvoiceID: f.invoiceID, Actor: "accountant", Reason: "wrong amount"})
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", cancelled.Status)

	// every balance back to zero
	for code, acc := range f.accounts {
		assert.True(t, acc.DebitBalance().IsZero(), "%s debit %s", code, acc.DebitBalance())
		assert.True(t, acc.CreditBalance().IsZero(), "%s credit %s", code, acc.CreditBalance())
	}
	entry := f.store.entries[entryID]
	assert.Equal(t, valueobject.EntryStatusCancelled, entry.Status())
	assert.Contains(t, entry.AuditNote(), "wrong amount")

	resetResp, err := reset.Execute(ctx, dto.ResetInvoiceRequest{InvoiceID: f.invoiceID, Actor: "accountant"})
	require.NoError(t, err)
	assert.Equal(t, "DRAFT", resetResp.Status)
	assert.Equal(t, valueobject.EntryStatusDraft, f.store.entries[entryID].Status())

	// repost reuses the same entry identity
	reposted, err := post.Execute(ctx, dto.PostInvoiceRequest{InvoiceID: f.invoiceID, Actor: "accountant"})
	require.NoError(t, err)
	assert.Equal(t, entryID, reposted.JournalEntryID)
	assert.True(t, f.accounts["1.1.2.001"].DebitBalance().Equal(decimal.NewFromInt(119)))
}

func TestPostInvoice_RecalculatesStaleTotals(t *testing.T) {
	f := newFixture(t)
	uc := newPostInvoice(f)

	// store the invoice with a tampered header total; the lines still
	// sum to 119
	inv := f.store.invoices[f.invoiceID]
	stale := model.ReconstructInvoice(inv.ID(), inv.Number(), inv.InvoiceType(),
		inv.ThirdPartyID(), inv.PaymentTermsID(), inv.AccountID(),
		inv.InvoiceDate(), inv.DueDate(), inv.Currency(), inv.Status(), inv.Lines(),
		decimal.NewFromInt(1), decimal.Zero, decimal.Zero, decimal.NewFromInt(1), decimal.Zero,
		uuid.Nil, "", time.Time{}, "", time.Time{}, "", "",
		inv.Version(), inv.CreatedAt(), inv.UpdatedAt())
	f.store.invoices[f.invoiceID] = stale

	resp, err := uc.Execute(context.Background(), dto.PostInvoiceRequest{InvoiceID: f.invoiceID, Actor: "accountant"})
	require.NoError(t, err)

	assert.True(t, resp.Total.Equal(decimal.NewFromInt(119)), "total %s", resp.Total)
	entry := f.store.entries[resp.JournalEntryID]
	assert.True(t, entry.TotalDebit().Equal(decimal.NewFromInt(119)), "debit %s", entry.TotalDebit())
	assert.True(t, entry.Balanced())
}

func TestCancelInvoice_ForcedResetFromPosted(t *testing.T) {
	f := newFixture(t)
	post := newPostInvoice(f)
	reset := usecase.NewResetInvoice(f.store, f.publisher)
	ctx := context.Background()

	posted, err := post.Execute(ctx, dto.PostInvoiceRequest{InvoiceID: f.invoiceID, Actor: "accountant"})
	require.NoError(t, err)

	// without force the reset is refused
	_, err = reset.Execute(ctx, dto.ResetInvoiceRequest{InvoiceID: f.invoiceID, Actor: "admin"})
	assert.True(t, apperr.IsBusinessRule(err))

	resp, err := reset.Execute(ctx, dto.ResetInvoiceRequest{InvoiceID: f.invoiceID, Actor: "admin", Reason: "posted in error", Force: true})
	require.NoError(t, err)
	assert.Equal(t, "DRAFT", resp.Status)
	assert.Equal(t, valueobject.EntryStatusDraft, f.store.entries[posted.JournalEntryID].Status())
	assert.Contains(t, f.store.entries[posted.JournalEntryID].AuditNote(), "posted in error")

	for code, acc := range f.accounts {
		assert.True(t, acc.DebitBalance().IsZero(), "%s debit %s", code, acc.DebitBalance())
		assert.True(t, acc.CreditBalance().IsZero(), "%s credit %s", code, acc.CreditBalance())
	}
}
