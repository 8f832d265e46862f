package service

import (
	"github.com/finbooks/backoffice/internal/domain/apperr"
	"github.com/finbooks/backoffice/internal/domain/model"
)

// EntryValidator checks a journal entry against the ledger invariants
// before it may post: every line books to a postable account, each line
// carries exactly one side, and total debits equal total credits to the
// cent.
type EntryValidator struct{}

func NewEntryValidator() *EntryValidator {
	return &EntryValidator{}
}

func (v *EntryValidator) Check(entry model.JournalEntry, catalog *Catalog) error {
	if len(entry.Lines()) < 2 {
		return apperr.NewBusinessRule("journal entry requires at least two lines, got %d", len(entry.Lines()))
	}

	for _, line := range entry.Lines() {
		acc := catalog.Account(line.AccountID())
		if acc == nil {
			return apperr.NewBusinessRule("line %d books to unknown account %s", line.LineNumber(), line.AccountID())
		}
		if !acc.IsPostable() {
			return apperr.NewBusinessRule("line %d books to non-postable account %s", line.LineNumber(), acc.Code())
		}
		if line.Debit().IsPositive() == line.Credit().IsPositive() {
			return apperr.NewBusinessRule("line %d must carry exactly one of debit or credit", line.LineNumber())
		}
	}

	debit, credit := entry.TotalDebit(), entry.TotalCredit()
	if !debit.Equal(credit) {
		return apperr.NewBusinessRule("entry is not balanced: debit %s, credit %s", debit, credit)
	}
	return nil
}
