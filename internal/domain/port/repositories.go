package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finbooks/backoffice/internal/domain/model"
	"github.com/finbooks/backoffice/pkg/events"
)

// AccountRepository defines persistence operations for the chart of accounts.
type AccountRepository interface {
	// FindByID retrieves an account by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error)
	// ListActive returns every active account, ordered by code.
	ListActive(ctx context.Context) ([]*model.Account, error)
	// ApplyMovement atomically adds the deltas to the account's debit and
	// credit balance columns. Negative deltas roll a movement back.
	ApplyMovement(ctx context.Context, id uuid.UUID, debitDelta, creditDelta decimal.Decimal) error
}

// ThirdPartyRepository defines persistence operations for counterparties.
type ThirdPartyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.ThirdParty, error)
}

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	ListActive(ctx context.Context) ([]*model.Product, error)
}

// TaxRepository defines persistence operations for tax rates.
type TaxRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Tax, error)
	ListActive(ctx context.Context) ([]*model.Tax, error)
}

// PaymentTermsRepository defines persistence operations for installment templates.
type PaymentTermsRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.PaymentTerms, error)
}

// InvoiceRepository defines persistence operations for invoices.
type InvoiceRepository interface {
	// Create inserts a new invoice with its lines.
	Create(ctx context.Context, inv model.Invoice) error
	// Save updates an invoice guarded by an optimistic version check and
	// appends its pending domain events to the outbox.
	Save(ctx context.Context, inv model.Invoice) error
	// FindByID retrieves an invoice with its lines.
	FindByID(ctx context.Context, id uuid.UUID) (model.Invoice, error)
}

// JournalEntryRepository defines persistence operations for journal entries.
type JournalEntryRepository interface {
	// Save persists an entry and its lines (insert or full update).
	Save(ctx context.Context, entry model.JournalEntry) error
	// FindByID retrieves an entry with its lines.
	FindByID(ctx context.Context, id uuid.UUID) (model.JournalEntry, error)
	// FindByInvoiceID retrieves the entry linked to an invoice.
	FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (model.JournalEntry, error)
}

// UnitOfWork exposes the repositories bound to one transaction.
type UnitOfWork interface {
	Accounts() AccountRepository
	ThirdParties() ThirdPartyRepository
	Products() ProductRepository
	Taxes() TaxRepository
	PaymentTerms() PaymentTermsRepository
	Invoices() InvoiceRepository
	JournalEntries() JournalEntryRepository
}

// TxManager runs a function inside a single database transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(uow UnitOfWork) error) error
}

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, events ...events.DomainEvent) error
}
