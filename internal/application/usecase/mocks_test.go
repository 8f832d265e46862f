package usecase_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finbooks/backoffice/internal/domain/apperr"
	"github.com/finbooks/backoffice/internal/domain/model"
	"github.com/finbooks/backoffice/internal/domain/port"
	"github.com/finbooks/backoffice/pkg/events"
)

// --- Mock implementations ---

// memStore is an in-memory port.UnitOfWork backing all repositories.
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

// RunInTx satisfies port.TxManager; the fake has no transactionality.
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
	var out []*model.Product
	for _, p := range m.products {
		if p.Active() {
			out = append(out, p)
		}
	}
	return out, nil
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
	var out []*model.Tax
	for _, t := range m.taxes {
		if t.Active() {
			out = append(out, t)
		}
	}
	return out, nil
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
	stored, ok := m.invoices[inv.ID()]
	if !ok {
		return apperr.NewNotFound("invoice", inv.ID().String())
	}
	if stored.Version() != inv.Version()-1 {
		return apperr.NewBusinessRule("invoice %s was modified concurrently", inv.ID())
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

// mockEventPublisher implements port.EventPublisher for testing.
type mockEventPublisher struct {
	publishedTopics []string
	publishedEvents []events.DomainEvent
	publishFunc     func(ctx context.Context, topic string, evts ...events.DomainEvent) error
}

func (m *mockEventPublisher) Publish(ctx context.Context, topic string, evts ...events.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, topic, evts...)
	}
	m.publishedTopics = append(m.publishedTopics, topic)
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}
