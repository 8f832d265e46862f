package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/backoffice/internal/domain/apperr"
	"github.com/finbooks/backoffice/internal/domain/model"
	"github.com/finbooks/backoffice/internal/domain/valueobject"
)

// PaymentScheduler splits an invoice total into due lines according to
// its payment terms. Each installment amount is rounded to 2 decimal
// places; the last line absorbs the rounding remainder so the lines
// always sum exactly to the total.
type PaymentScheduler struct{}

func NewPaymentScheduler() *PaymentScheduler {
	return &PaymentScheduler{}
}

// Schedule produces the due lines for the given total. With nil terms a
// single line for the full amount falls due on dueDate.
func (s *PaymentScheduler) Schedule(total decimal.Decimal, invoiceDate, dueDate time.Time, terms *model.PaymentTerms) ([]valueobject.DueLine, error) {
	if total.IsNegative() {
		return nil, apperr.NewValidation("cannot schedule a negative total %s", total)
	}

	if terms == nil {
		line, err := valueobject.NewDueLine(1, total.Round(2), dueDate, "installment 1/1")
		if err != nil {
			return nil, err
		}
		return []valueobject.DueLine{line}, nil
	}

	if err := terms.Validate(); err != nil {
		return nil, err
	}

	termLines := terms.Lines()
	hundred := decimal.NewFromInt(100)
	out := make([]valueobject.DueLine, 0, len(termLines))
	allocated := decimal.Zero

	for i, tl := range termLines {
		line, err := valueobject.NewDueLine(
			tl.Sequence,
			total.Mul(tl.Percentage).Div(hundred).Round(2),
			invoiceDate.AddDate(0, 0, tl.DaysOffset),
			fmt.Sprintf("installment %d/%d", tl.Sequence, len(termLines)),
		)
		if err != nil {
			return nil, err
		}
		if i == len(termLines)-1 {
			line = line.WithAmount(total.Sub(allocated))
		}
		allocated = allocated.Add(line.Amount())
		out = append(out, line)
	}

	return out, nil
}
