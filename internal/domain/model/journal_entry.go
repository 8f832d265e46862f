package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finbooks/backoffice/internal/domain/apperr"
	"github.com/finbooks/backoffice/internal/domain/valueobject"
)

// JournalEntryLine is one side of a double-entry movement. Exactly one of
// debit or credit is non-zero.
type JournalEntryLine struct {
	lineNumber  int
	accountID   uuid.UUID
	debit       decimal.Decimal
	credit      decimal.Decimal
	description string
	dueDate     time.Time
}

func NewJournalEntryLine(lineNumber int, accountID uuid.UUID, debit, credit decimal.Decimal, description string, dueDate time.Time) (JournalEntryLine, error) {
	if lineNumber < 1 {
		return JournalEntryLine{}, apperr.NewValidation("entry line number must be >= 1, got %d", lineNumber)
	}
	if accountID == uuid.Nil {
		return JournalEntryLine{}, apperr.NewValidation("entry line %d: account ID is required", lineNumber)
	}
	if debit.IsNegative() || credit.IsNegative() {
		return JournalEntryLine{}, apperr.NewValidation("entry line %d: amounts must not be negative", lineNumber)
	}
	if debit.IsPositive() == credit.IsPositive() {
		return JournalEntryLine{}, apperr.NewValidation("entry line %d: exactly one of debit or credit must be set", lineNumber)
	}
	return JournalEntryLine{
		lineNumber:  lineNumber,
		accountID:   accountID,
		debit:       debit,
		credit:      credit,
		description: description,
		dueDate:     dueDate,
	}, nil
}

func (l JournalEntryLine) LineNumber() int         { return l.lineNumber }
func (l JournalEntryLine) AccountID() uuid.UUID    { return l.accountID }
func (l JournalEntryLine) Debit() decimal.Decimal  { return l.debit }
func (l JournalEntryLine) Credit() decimal.Decimal { return l.credit }
func (l JournalEntryLine) Description() string     { return l.description }
func (l JournalEntryLine) DueDate() time.Time      { return l.dueDate }
func (l JournalEntryLine) IsDebit() bool           { return l.debit.IsPositive() }

// JournalEntry is an immutable double-entry accounting transaction tied
// one-to-one to its source invoice. State transitions return copies.
// Cancellation marks the same entry CANCELLED in place instead of
// producing reversal rows.
type JournalEntry struct {
	id          uuid.UUID
	invoiceID   uuid.UUID
	entryDate   time.Time
	lines       []JournalEntryLine
	status      valueobject.EntryStatus
	description string
	reference   string
	auditNote   string
	version     int
	createdAt   time.Time
	updatedAt   time.Time
}

// NewJournalEntry creates a new entry in DRAFT status.
func NewJournalEntry(
	invoiceID uuid.UUID,
	entryDate time.Time,
	lines []JournalEntryLine,
	description, reference string,
) (JournalEntry, error) {
	if invoiceID == uuid.Nil {
		return JournalEntry{}, apperr.NewValidation("invoice ID is required")
	}
	if entryDate.IsZero() {
		return JournalEntry{}, apperr.NewValidation("entry date is required")
	}
	if len(lines) < 2 {
		return JournalEntry{}, apperr.NewValidation("journal entry requires at least two lines, got %d", len(lines))
	}
	for i, l := range lines {
		if l.lineNumber != i+1 {
			return JournalEntry{}, apperr.NewValidation("entry line %d has number %d, want %d", i, l.lineNumber, i+1)
		}
	}

	now := time.Now().UTC()
	return JournalEntry{
		id:          uuid.New(),
		invoiceID:   invoiceID,
		entryDate:   entryDate,
		lines:       lines,
		status:      valueobject.EntryStatusDraft,
		description: description,
		reference:   reference,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructJournalEntry recreates a JournalEntry from persistence (no validation).
func ReconstructJournalEntry(
	id, invoiceID uuid.UUID,
	entryDate time.Time,
	lines []JournalEntryLine,
	status valueobject.EntryStatus,
	description, reference, auditNote string,
	version int,
	createdAt, updatedAt time.Time,
) JournalEntry {
	return JournalEntry{
		id:          id,
		invoiceID:   invoiceID,
		entryDate:   entryDate,
		lines:       lines,
		status:      status,
		description: description,
		reference:   reference,
		auditNote:   auditNote,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// WithID returns a copy carrying the given ID. Used when an invoice is
// reposted so the entry keeps its original identity.
func (je JournalEntry) WithID(id uuid.UUID) JournalEntry {
	je.id = id
	return je
}

// TotalDebit sums the debit side of all lines.
func (je JournalEntry) TotalDebit() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range je.lines {
		sum = sum.Add(l.debit)
	}
	return sum
}

// TotalCredit sums the credit side of all lines.
func (je JournalEntry) TotalCredit() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range je.lines {
		sum = sum.Add(l.credit)
	}
	return sum
}

// Balanced reports whether total debits exactly equal total credits.
func (je JournalEntry) Balanced() bool {
	return je.TotalDebit().Equal(je.TotalCredit())
}

// Post transitions the entry from DRAFT to POSTED.
func (je JournalEntry) Post(now time.Time) (JournalEntry, error) {
	if je.status != valueobject.EntryStatusDraft {
		return JournalEntry{}, apperr.NewBusinessRule("can only post entries in DRAFT status, current: %s", je.status)
	}
	if !je.Balanced() {
		return JournalEntry{}, apperr.NewBusinessRule("entry is not balanced: debit %s, credit %s", je.TotalDebit(), je.TotalCredit())
	}

	posted := je
	posted.status = valueobject.EntryStatusPosted
	posted.updatedAt = now
	posted.version++
	return posted, nil
}

// Cancel transitions the entry from POSTED to CANCELLED in place,
// recording the reason on the audit note.
func (je JournalEntry) Cancel(now time.Time, reason string) (JournalEntry, error) {
	if je.status != valueobject.EntryStatusPosted {
		return JournalEntry{}, apperr.NewBusinessRule("can only cancel entries in POSTED status, current: %s", je.status)
	}

	cancelled := je
	cancelled.status = valueobject.EntryStatusCancelled
	cancelled.auditNote = appendAuditNote(je.auditNote, fmt.Sprintf("cancelled at %s: %s", now.Format(time.RFC3339), reason))
	cancelled.updatedAt = now
	cancelled.version++
	return cancelled, nil
}

// ResetToDraft returns a CANCELLED entry to DRAFT so its invoice can be
// reworked and reposted under the same entry ID.
func (je JournalEntry) ResetToDraft(now time.Time) (JournalEntry, error) {
	if je.status != valueobject.EntryStatusCancelled {
		return JournalEntry{}, apperr.NewBusinessRule("can only reset entries in CANCELLED status, current: %s", je.status)
	}

	draft := je
	draft.status = valueobject.EntryStatusDraft
	draft.auditNote = appendAuditNote(je.auditNote, fmt.Sprintf("reset to draft at %s", now.Format(time.RFC3339)))
	draft.updatedAt = now
	draft.version++
	return draft, nil
}

func appendAuditNote(existing, note string) string {
	if existing == "" {
		return note
	}
	return existing + "; " + note
}

// Accessors
func (je JournalEntry) ID() uuid.UUID                   { return je.id }
func (je JournalEntry) InvoiceID() uuid.UUID            { return je.invoiceID }
func (je JournalEntry) EntryDate() time.Time            { return je.entryDate }
func (je JournalEntry) Lines() []JournalEntryLine       { return je.lines }
func (je JournalEntry) Status() valueobject.EntryStatus { return je.status }
func (je JournalEntry) Description() string             { return je.description }
func (je JournalEntry) Reference() string               { return je.reference }
func (je JournalEntry) AuditNote() string               { return je.auditNote }
func (je JournalEntry) Version() int                    { return je.version }
func (je JournalEntry) CreatedAt() time.Time            { return je.createdAt }
func (je JournalEntry) UpdatedAt() time.Time            { return je.updatedAt }
