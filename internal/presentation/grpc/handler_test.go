package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/finbooks/backoffice/internal/application/usecase"
	"github.com/finbooks/backoffice/internal/domain/apperr"
	"github.com/finbooks/backoffice/internal/domain/model"
	"github.com/finbooks/backoffice/internal/domain/port"
	"github.com/finbooks/backoffice/internal/domain/service"
	"github.com/finbooks/backoffice/internal/domain/valueobject"
	"github.com/finbooks/backoffice/pkg/auth"
	"github.com/finbooks/backoffice/pkg/events"
)

// --- Mock implementations ---

type memStore struct {
	accounts map[uuid.UUID]*model.Account
	parties  map[uuid.UUID]*model.ThirdParty
	products map[uuid.UUID]*model.Product
	taxes    map[uuid.UUID]*model.Tax
	terms    map[uuid.UUID]*model.PaymentTerms
	invoices map[uuid.UUID]model.Invoice
	entries  map[uuid.UUID]model.JournalEntry
}

func newMemStore() *memStore {
	return &memStore{
		accounts: make(map[uuid.UUID]*model.Account),
		parties:  make(map[uuid.UUID]*model.ThirdParty),
		products: make(map[uuid.UUID]*model.Product),
		taxes:    make(map[uuid.UUID]*model.Tax),
		terms:    make(map[uuid.UUID]*model.PaymentTerms),
		invoices: make(map[uuid.UUID]model.Invoice),
		entries:  make(map[uuid.UUID]model.JournalEntry),
	}
}

func (s *memStore) Accounts() port.AccountRepository            { return (*memAccounts)(s) }
func (s *memStore) ThirdParties() port.ThirdPartyRepository     { return (*memParties)(s) }
func (s *memStore) Products() port.ProductRepository            { return (*memProducts)(s) }
func (s *memStore) Taxes() port.TaxRepository                   { return (*memTaxes)(s) }
func (s *memStore) PaymentTerms() port.PaymentTermsRepository   { return (*memTerms)(s) }
func (s *memStore) Invoices() port.InvoiceRepository            { return (*memInvoices)(s) }
func (s *memStore) JournalEntries() port.JournalEntryRepository { return (*memEntries)(s) }

func (s *memStore) RunInTx(_ context.Context, fn func(uow port.UnitOfWork) error) error {
	return fn(s)
}

type memAccounts memStore

func (m *memAccounts) FindByID(_ context.Context, id uuid.UUID) (*model.Account, error) {
	acc, ok := m.accounts[id]
	if !ok {
		return nil, apperr.NewNotFound("account", id.String())
	}
	return acc, nil
}

func (m *memAccounts) ListActive(_ context.Context) ([]*model.Account, error) {
	var out []*model.Account
	for _, acc := range m.accounts {
		if acc.Active() {
			out = append(out, acc)
		}
	}
	return out, nil
}

func (m *memAccounts) ApplyMovement(_ context.Context, id uuid.UUID, debitDelta, creditDelta decimal.Decimal) error {
	acc, ok := m.accounts[id]
	if !ok {
		return apperr.NewNotFound("account", id.String())
	}
	acc.ApplyMovement(debitDelta, creditDelta)
	return nil
}

type memParties memStore

func (m *memParties) FindByID(_ context.Context, id uuid.UUID) (*model.ThirdParty, error) {
	p, ok := m.parties[id]
	if !ok {
		return nil, apperr.NewNotFound("third party", id.String())
	}
	return p, nil
}

type memProducts memStore

func (m *memProducts) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, apperr.NewNotFound("product", id.String())
	}
	return p, nil
}

func (m *memProducts) ListActive(_ context.Context) ([]*model.Product, error) {
	return nil, nil
}

type memTaxes memStore

func (m *memTaxes) FindByID(_ context.Context, id uuid.UUID) (*model.Tax, error) {
	t, ok := m.taxes[id]
	if !ok {
		return nil, apperr.NewNotFound("tax", id.String())
	}
	return t, nil
}

func (m *memTaxes) ListActive(_ context.Context) ([]*model.Tax, error) {
	return nil, nil
}

type memTerms memStore

func (m *memTerms) FindByID(_ context.Context, id uuid.UUID) (*model.PaymentTerms, error) {
	t, ok := m.terms[id]
	if !ok {
		return nil, apperr.NewNotFound("payment terms", id.String())
	}
	return t, nil
}

type memInvoices memStore

func (m *memInvoices) Create(_ context.Context, inv model.Invoice) error {
	m.invoices[inv.ID()] = inv
	return nil
}

func (m *memInvoices) Save(_ context.Context, inv model.Invoice) error {
	if _, ok := m.invoices[inv.ID()]; !ok {
		return apperr.NewNotFound("invoice", inv.ID().String())
	}
	m.invoices[inv.ID()] = inv
	return nil
}

func (m *memInvoices) FindByID(_ context.Context, id uuid.UUID) (model.Invoice, error) {
	inv, ok := m.invoices[id]
	if !ok {
		return model.Invoice{}, apperr.NewNotFound("invoice", id.String())
	}
	return inv, nil
}

type memEntries memStore

func (m *memEntries) Save(_ context.Context, entry model.JournalEntry) error {
	m.entries[entry.ID()] = entry
	return nil
}

func (m *memEntries) FindByID(_ context.Context, id uuid.UUID) (model.JournalEntry, error) {
	e, ok := m.entries[id]
	if !ok {
		return model.JournalEntry{}, apperr.NewNotFound("journal entry", id.String())
	}
	return e, nil
}

func (m *memEntries) FindByInvoiceID(_ context.Context, invoiceID uuid.UUID) (model.JournalEntry, error) {
	for _, e := range m.entries {
		if e.InvoiceID() == invoiceID {
			return e, nil
		}
	}
	return model.JournalEntry{}, apperr.NewNotFound("journal entry for invoice", invoiceID.String())
}

type mockEventPublisher struct{}

func (m *mockEventPublisher) Publish(_ context.Context, _ string, _ ...events.DomainEvent) error {
	return nil
}

// --- Helpers ---

func contextWithClaims(userID uuid.UUID) context.Context {
	claims := &auth.Claims{
		UserID: userID,
		Roles:  []string{auth.RoleAccountant},
	}
	return auth.ContextWithClaims(context.Background(), claims)
}

// seedStore loads the conventional chart, a customer with 50/50 terms
// and one DRAFT invoice: 200 net + 19% tax = 238 total.
func seedStore(t *testing.T) (*memStore, uuid.UUID) {
	t.Helper()
	store := newMemStore()

	add := func(code string, accountType valueobject.AccountType, postable bool) {
		acc, err := model.NewAccount(valueobject.MustAccountCode(code), "Account "+code, accountType, uuid.Nil, postable)
		require.NoError(t, err)
		store.accounts[acc.ID()] = acc
	}
	add("1.1.2.001", valueobject.AccountTypeAsset, true)
	add("1.1.4.001", valueobject.AccountTypeAsset, true)
	add("2.1.1.001", valueobject.AccountTypeLiability, true)
	add("2.1.4.001", valueobject.AccountTypeLiability, true)
	add("3.1.001", valueobject.AccountTypeIncome, true)
	add("4.1.001", valueobject.AccountTypeExpense, true)

	party, err := model.NewThirdParty("Acme GmbH", valueobject.ThirdPartyTypeCustomer, "DE123456789")
	require.NoError(t, err)
	store.parties[party.ID()] = party

	terms, err := model.NewPaymentTerms("50/50", []model.TermLine{
		{Sequence: 1, DaysOffset: 0, Percentage: decimal.NewFromInt(50)},
		{Sequence: 2, DaysOffset: 30, Percentage: decimal.NewFromInt(50)},
	})
	require.NoError(t, err)
	store.terms[terms.ID()] = terms

	invoiceDate := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	inv, err := model.NewInvoice("INV-100", valueobject.InvoiceTypeCustomer, party.ID(),
		invoiceDate, invoiceDate.AddDate(0, 1, 0), "EUR")
	require.NoError(t, err)
	line, err := model.NewInvoiceLine(
		inv.ID(), 1, "License fee", uuid.Nil, uuid.Nil, uuid.Nil,
		decimal.NewFromInt(2), decimal.NewFromInt(100), decimal.Zero, decimal.NewFromInt(19),
	)
	require.NoError(t, err)
	inv, err = inv.WithLines([]*model.InvoiceLine{line})
	require.NoError(t, err)
	inv, err = inv.WithPaymentTerms(terms.ID())
	require.NoError(t, err)
	store.invoices[inv.ID()] = inv

	return store, inv.ID()
}

func buildTestHandler(store *memStore) *InvoicingHandler {
	publisher := &mockEventPublisher{}
	resolver := service.NewAccountResolver(service.DefaultResolverConfig())
	scheduler := service.NewPaymentScheduler()
	builder := service.NewEntryBuilder()
	validator := service.NewEntryValidator()

	return NewInvoicingHandler(
		usecase.NewPostInvoice(store, publisher, resolver, scheduler, builder, validator),
		usecase.NewCancelInvoice(store, publisher),
		usecase.NewResetInvoice(store, publisher),
		usecase.NewPreviewJournalEntry(store, resolver, scheduler, builder, validator),
		usecase.NewPreviewPaymentSchedule(store, scheduler),
		usecase.NewGetInvoice(store),
	)
}

// --- Tests ---

func TestPostInvoiceHandler(t *testing.T) {
	t.Run("nil request returns InvalidArgument", func(t *testing.T) {
		store, _ := seedStore(t)
		h := buildTestHandler(store)
		_, err := h.PostInvoice(contextWithClaims(uuid.New()), nil)
		requireGRPCCode(t, err, codes.InvalidArgument)
	})

	t.Run("invalid invoice_id returns InvalidArgument", func(t *testing.T) {
		store, _ := seedStore(t)
		h := buildTestHandler(store)
		_, err := h.PostInvoice(contextWithClaims(uuid.New()), &PostInvoiceRequest{InvoiceID: "not-a-uuid"})
		requireGRPCCode(t, err, codes.InvalidArgument)
		assert.Contains(t, err.Error(), "invalid invoice_id")
	})

	t.Run("unknown invoice returns NotFound", func(t *testing.T) {
		store, _ := seedStore(t)
		h := buildTestHandler(store)
		_, err := h.PostInvoice(contextWithClaims(uuid.New()), &PostInvoiceRequest{InvoiceID: uuid.NewString()})
		requireGRPCCode(t, err, codes.NotFound)
	})

	t.Run("happy path posts invoice", func(t *testing.T) {
		store, invoiceID := seedStore(t)
		h := buildTestHandler(store)

		resp, err := h.PostInvoice(contextWithClaims(uuid.New()), &PostInvoiceRequest{InvoiceID: invoiceID.String()})
		require.NoError(t, err)
		require.NotNil(t, resp.Invoice)
		assert.Equal(t, "POSTED", resp.Invoice.Status)
		assert.Equal(t, "238", resp.Invoice.Total)
		assert.NotEmpty(t, resp.Invoice.JournalEntryID)
	})

	t.Run("reposting returns FailedPrecondition", func(t *testing.T) {
		store, invoiceID := seedStore(t)
		h := buildTestHandler(store)

		_, err := h.PostInvoice(contextWithClaims(uuid.New()), &PostInvoiceRequest{InvoiceID: invoiceID.String()})
		require.NoError(t, err)

		_, err = h.PostInvoice(contextWithClaims(uuid.New()), &PostInvoiceRequest{InvoiceID: invoiceID.String()})
		requireGRPCCode(t, err, codes.FailedPrecondition)
	})
}

func TestCancelAndResetHandlers(t *testing.T) {
	store, invoiceID := seedStore(t)
	h := buildTestHandler(store)
	ctx := contextWithClaims(uuid.New())

	_, err := h.PostInvoice(ctx, &PostInvoiceRequest{InvoiceID: invoiceID.String()})
	require.NoError(t, err)

	cancelResp, err := h.CancelInvoice(ctx, &CancelInvoiceRequest{
		InvoiceID: invoiceID.String(),
		Reason:    "duplicate",
	})
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", cancelResp.Invoice.Status)

	resetResp, err := h.ResetInvoice(ctx, &ResetInvoiceRequest{InvoiceID: invoiceID.String()})
	require.NoError(t, err)
	assert.Equal(t, "DRAFT", resetResp.Invoice.Status)
}

func TestPreviewHandlers(t *testing.T) {
	t.Run("journal entry preview does not persist", func(t *testing.T) {
		store, invoiceID := seedStore(t)
		h := buildTestHandler(store)

		resp, err := h.PreviewJournalEntry(contextWithClaims(uuid.New()), &PreviewJournalEntryRequest{InvoiceID: invoiceID.String()})
		require.NoError(t, err)
		require.NotNil(t, resp.Entry)
		assert.Equal(t, "DRAFT", resp.Entry.Status)
		require.Len(t, resp.Entry.Lines, 4)
		assert.Equal(t, "1.1.2.001", resp.Entry.Lines[0].AccountCode)
		assert.Equal(t, "Account 1.1.2.001", resp.Entry.Lines[0].AccountName)
		assert.Equal(t, resp.Entry.TotalDebit, resp.Entry.TotalCredit)
		assert.Empty(t, store.entries)
	})

	t.Run("payment schedule preview splits total", func(t *testing.T) {
		store, invoiceID := seedStore(t)
		h := buildTestHandler(store)

		resp, err := h.PreviewPaymentSchedule(contextWithClaims(uuid.New()), &PreviewPaymentScheduleRequest{InvoiceID: invoiceID.String()})
		require.NoError(t, err)
		assert.Equal(t, "238", resp.Total)
		require.Len(t, resp.Lines, 2)
		assert.Equal(t, "119", resp.Lines[0].Amount)
		assert.Equal(t, "119", resp.Lines[1].Amount)
		assert.Equal(t, "2026-04-01", resp.Lines[0].DueDate)
		assert.Equal(t, "2026-05-01", resp.Lines[1].DueDate)
	})

	t.Run("ad hoc schedule preview needs no invoice", func(t *testing.T) {
		store, _ := seedStore(t)
		h := buildTestHandler(store)

		var termsID uuid.UUID
		for id := range store.terms {
			termsID = id
		}

		resp, err := h.PreviewPaymentSchedule(contextWithClaims(uuid.New()), &PreviewPaymentScheduleRequest{
			Total:          "1000",
			PaymentTermsID: termsID.String(),
			InvoiceDate:    "2026-06-01",
		})
		require.NoError(t, err)
		assert.Empty(t, resp.InvoiceID)
		require.Len(t, resp.Lines, 2)
		assert.Equal(t, "500", resp.Lines[0].Amount)
		assert.Equal(t, "500", resp.Lines[1].Amount)
		assert.Equal(t, "2026-06-01", resp.Lines[0].DueDate)
		assert.Equal(t, "2026-07-01", resp.Lines[1].DueDate)
	})

	t.Run("ad hoc schedule preview rejects a bad total", func(t *testing.T) {
		store, _ := seedStore(t)
		h := buildTestHandler(store)

		_, err := h.PreviewPaymentSchedule(contextWithClaims(uuid.New()), &PreviewPaymentScheduleRequest{
			Total:       "not-a-number",
			InvoiceDate: "2026-06-01",
		})
		requireGRPCCode(t, err, codes.InvalidArgument)
	})
}

func TestGetInvoiceHandler(t *testing.T) {
	store, invoiceID := seedStore(t)
	h := buildTestHandler(store)

	resp, err := h.GetInvoice(contextWithClaims(uuid.New()), &GetInvoiceRequest{InvoiceID: invoiceID.String()})
	require.NoError(t, err)
	assert.Equal(t, "INV-100", resp.Invoice.Number)
	assert.Equal(t, "DRAFT", resp.Invoice.Status)
	assert.Equal(t, "OPEN", resp.Invoice.PaymentState)
	require.Len(t, resp.Invoice.Lines, 1)
	assert.Equal(t, "200", resp.Invoice.Lines[0].NetAmount)
}

func TestActorFromContext(t *testing.T) {
	userID := uuid.New()
	assert.Equal(t, userID.String(), actorFromContext(contextWithClaims(userID)))
	assert.Equal(t, "system", actorFromContext(context.Background()))
}

func TestToStatusError(t *testing.T) {
	requireGRPCCode(t, toStatusError(apperr.NewNotFound("invoice", "x")), codes.NotFound)
	requireGRPCCode(t, toStatusError(apperr.NewValidation("bad input")), codes.InvalidArgument)
	requireGRPCCode(t, toStatusError(apperr.NewBusinessRule("rule broken")), codes.FailedPrecondition)
	requireGRPCCode(t, toStatusError(assert.AnError), codes.Internal)
}

// requireGRPCCode asserts that an error is a gRPC status error with the given code.
func requireGRPCCode(t *testing.T, err error, code codes.Code) {
	t.Helper()
	require.Error(t, err)
	st, ok := status.FromError(err)
	require.True(t, ok, "expected gRPC status error, got %T: %v", err, err)
	assert.Equal(t, code, st.Code(), "expected gRPC code %s, got %s: %s", code, st.Code(), st.Message())
}
