package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/backoffice/internal/domain/apperr"
	"github.com/finbooks/backoffice/internal/domain/model"
	"github.com/finbooks/backoffice/internal/domain/valueobject"
)

// EntryBuilder assembles the journal entry for an invoice from its
// resolved accounts and due schedule. Sale documents debit the
// counterparty and credit income and tax; purchase documents mirror the
// sides. Line numbers are dense and 1-based: first the counterparty
// line per installment, then one line per invoice line, then one line
// per tax bucket.
type EntryBuilder struct{}

func NewEntryBuilder() *EntryBuilder {
	return &EntryBuilder{}
}

func (b *EntryBuilder) Build(
	inv model.Invoice,
	resolved ResolvedAccounts,
	dueLines []valueobject.DueLine,
) (model.JournalEntry, error) {
	if len(inv.Lines()) == 0 {
		return model.JournalEntry{}, apperr.NewBusinessRule("invoice %s has no lines to post", inv.Number())
	}
	if len(dueLines) == 0 {
		return model.JournalEntry{}, apperr.NewBusinessRule("invoice %s has no due schedule", inv.Number())
	}
	if resolved.ThirdParty == nil {
		return model.JournalEntry{}, apperr.NewBusinessRule("invoice %s has no resolved counterparty account", inv.Number())
	}

	sale := inv.InvoiceType().IsSale()
	lines := make([]model.JournalEntryLine, 0, len(dueLines)+len(inv.Lines())+len(resolved.Taxes))
	next := 1

	for _, due := range dueLines {
		debit, credit := decimal.Zero, decimal.Zero
		if sale {
			debit = due.Amount()
		} else {
			credit = due.Amount()
		}
		if debit.IsZero() && credit.IsZero() {
			continue
		}
		jel, err := model.NewJournalEntryLine(
			next,
			resolved.ThirdParty.ID(),
			debit, credit,
			fmt.Sprintf("%s installment %d/%d", inv.Number(), due.Sequence(), len(dueLines)),
			due.DueDate(),
		)
		if err != nil {
			return model.JournalEntry{}, err
		}
		lines = append(lines, jel)
		next++
	}

	for _, il := range inv.Lines() {
		acc, ok := resolved.Lines[il.ID()]
		if !ok || acc == nil {
			return model.JournalEntry{}, apperr.NewBusinessRule("invoice line %d has no resolved account", il.LineNumber())
		}
		if il.NetAmount().IsZero() {
			continue
		}
		debit, credit := decimal.Zero, decimal.Zero
		if sale {
			credit = il.NetAmount()
		} else {
			debit = il.NetAmount()
		}
		jel, err := model.NewJournalEntryLine(
			next,
			acc.ID(),
			debit, credit,
			fmt.Sprintf("%s %s", inv.Number(), il.Description()),
			time.Time{},
		)
		if err != nil {
			return model.JournalEntry{}, err
		}
		lines = append(lines, jel)
		next++
	}

	for _, tb := range resolved.Taxes {
		if tb.Amount.IsZero() {
			continue
		}
		debit, credit := decimal.Zero, decimal.Zero
		if sale {
			credit = tb.Amount
		} else {
			debit = tb.Amount
		}
		jel, err := model.NewJournalEntryLine(
			next,
			tb.Account.ID(),
			debit, credit,
			fmt.Sprintf("%s tax %s%%", inv.Number(), tb.Rate),
			time.Time{},
		)
		if err != nil {
			return model.JournalEntry{}, err
		}
		lines = append(lines, jel)
		next++
	}

	return model.NewJournalEntry(
		inv.ID(),
		inv.InvoiceDate(),
		lines,
		fmt.Sprintf("Invoice %s", inv.Number()),
		inv.Number(),
	)
}
