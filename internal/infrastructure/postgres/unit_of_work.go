package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbooks/backoffice/internal/domain/port"
	pgpkg "github.com/finbooks/backoffice/pkg/postgres"
)

// Compile-time interface checks
var (
	_ port.TxManager  = (*TxManager)(nil)
	_ port.UnitOfWork = (*unitOfWork)(nil)
)

// TxManager runs application operations inside one pgx transaction,
// handing them a UnitOfWork whose repositories share that transaction.
type TxManager struct {
	pool *pgxpool.Pool
}

func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool}
}

func (m *TxManager) RunInTx(ctx context.Context, fn func(uow port.UnitOfWork) error) error {
	return pgpkg.WithTransaction(ctx, m.pool, func(tx pgx.Tx) error {
		return fn(newUnitOfWork(tx))
	})
}

type unitOfWork struct {
	accounts     *AccountRepo
	parties      *ThirdPartyRepo
	products     *ProductRepo
	taxes        *TaxRepo
	paymentTerms *PaymentTermsRepo
	invoices     *InvoiceRepo
	entries      *JournalEntryRepo
}

func newUnitOfWork(db pgpkg.Querier) *unitOfWork {
	return &unitOfWork{
		accounts:     NewAccountRepo(db),
		parties:      NewThirdPartyRepo(db),
		products:     NewProductRepo(db),
		taxes:        NewTaxRepo(db),
		paymentTerms: NewPaymentTermsRepo(db),
		invoices:     NewInvoiceRepo(db),
		entries:      NewJournalEntryRepo(db),
	}
}

func (u *unitOfWork) Accounts() port.AccountRepository            { return u.accounts }
func (u *unitOfWork) ThirdParties() port.ThirdPartyRepository     { return u.parties }
func (u *unitOfWork) Products() port.ProductRepository            { return u.products }
func (u *unitOfWork) Taxes() port.TaxRepository                   { return u.taxes }
func (u *unitOfWork) PaymentTerms() port.PaymentTermsRepository   { return u.paymentTerms }
func (u *unitOfWork) Invoices() port.InvoiceRepository            { return u.invoices }
func (u *unitOfWork) JournalEntries() port.JournalEntryRepository { return u.entries }
