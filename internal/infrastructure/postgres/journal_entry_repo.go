package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/finbooks/backoffice/internal/domain/apperr"
	"github.com/finbooks/backoffice/internal/domain/model"
	"github.com/finbooks/backoffice/internal/domain/port"
	"github.com/finbooks/backoffice/internal/domain/valueobject"
	pgpkg "github.com/finbooks/backoffice/pkg/postgres"
)

// Compile-time interface check
var _ port.JournalEntryRepository = (*JournalEntryRepo)(nil)

// JournalEntryRepo implements JournalEntryRepository using PostgreSQL.
type JournalEntryRepo struct {
	db pgpkg.Querier
}

func NewJournalEntryRepo(db pgpkg.Querier) *JournalEntryRepo {
	return &JournalEntryRepo{db: db}
}

func (r *JournalEntryRepo) Save(ctx context.Context, entry model.JournalEntry) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO journal_entries (id, invoice_id, entry_date, status, description, reference, audit_note, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			entry_date = EXCLUDED.entry_date,
			status = EXCLUDED.status,
			description = EXCLUDED.description,
			audit_note = EXCLUDED.audit_note,
			version = EXCLUDED.version,
			updated_at = EXCLUDED.updated_at
	`, entry.ID(), entry.InvoiceID(), entry.EntryDate(), entry.Status().String(),
		entry.Description(), entry.Reference(), entry.AuditNote(), entry.Version(),
		entry.CreatedAt(), entry.UpdatedAt())
	if err != nil {
		return fmt.Errorf("upsert journal entry: %w", err)
	}

	if _, err := r.db.Exec(ctx, `DELETE FROM journal_entry_lines WHERE entry_id = $1`, entry.ID()); err != nil {
		return fmt.Errorf("delete entry lines: %w", err)
	}
	for _, l := range entry.Lines() {
		var dueDate *time.Time
		if !l.DueDate().IsZero() {
			d := l.DueDate()
			dueDate = &d
		}
		_, err := r.db.Exec(ctx, `
			INSERT INTO journal_entry_lines (entry_id, line_number, account_id, debit, credit, description, due_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, entry.ID(), l.LineNumber(), l.AccountID(), l.Debit(), l.Credit(), l.Description(), dueDate)
		if err != nil {
			return fmt.Errorf("insert entry line %d: %w", l.LineNumber(), err)
		}
	}
	return nil
}

func (r *JournalEntryRepo) FindByID(ctx context.Context, id uuid.UUID) (model.JournalEntry, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

func (r *JournalEntryRepo) FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (model.JournalEntry, error) {
	return r.findOne(ctx, `WHERE invoice_id = $1`, invoiceID)
}

func (r *JournalEntryRepo) findOne(ctx context.Context, where string, arg uuid.UUID) (model.JournalEntry, error) {
	var (
		entryID     uuid.UUID
		invoiceID   uuid.UUID
		entryDate   time.Time
		status      string
		description string
		reference   string
		auditNote   string
		version     int
		createdAt   time.Time
		updatedAt   time.Time
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, invoice_id, entry_date, status, description, reference, audit_note, version, created_at, updated_at
		FROM journal_entries `+where, arg).Scan(
		&entryID, &invoiceID, &entryDate, &status, &description, &reference, &auditNote,
		&version, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.JournalEntry{}, apperr.NewNotFound("journal entry", arg.String())
		}
		return model.JournalEntry{}, fmt.Errorf("query journal entry: %w", err)
	}

	st, err := valueobject.NewEntryStatus(status)
	if err != nil {
		return model.JournalEntry{}, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT line_number, account_id, debit, credit, description, due_date
		FROM journal_entry_lines WHERE entry_id = $1 ORDER BY line_number
	`, entryID)
	if err != nil {
		return model.JournalEntry{}, fmt.Errorf("query entry lines: %w", err)
	}
	defer rows.Close()

	var lines []model.JournalEntryLine
	for rows.Next() {
		var (
			lineNumber int
			accountID  uuid.UUID
			debit      decimal.Decimal
			credit     decimal.Decimal
			desc       string
			dueDate    *time.Time
		)
		if err := rows.Scan(&lineNumber, &accountID, &debit, &credit, &desc, &dueDate); err != nil {
			return model.JournalEntry{}, fmt.Errorf("scan entry line: %w", err)
		}
		due := time.Time{}
		if dueDate != nil {
			due = *dueDate
		}
		line, lerr := model.NewJournalEntryLine(lineNumber, accountID, debit, credit, desc, due)
		if lerr != nil {
			return model.JournalEntry{}, fmt.Errorf("invalid entry line: %w", lerr)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return model.JournalEntry{}, err
	}

	return model.ReconstructJournalEntry(entryID, invoiceID, entryDate, lines, st,
		description, reference, auditNote, version, createdAt, updatedAt), nil
}
