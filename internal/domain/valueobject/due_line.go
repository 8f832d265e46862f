package valueobject

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DueLine is one scheduled partial payment amount with its own due date,
// derived from payment terms. Immutable value object.
type DueLine struct {
	sequence    int
	amount      decimal.Decimal
	dueDate     time.Time
	description string
}

func NewDueLine(sequence int, amount decimal.Decimal, dueDate time.Time, description string) (DueLine, error) {
	if sequence < 1 {
		return DueLine{}, fmt.Errorf("due line sequence must be >= 1, got %d", sequence)
	}
	if dueDate.IsZero() {
		return DueLine{}, fmt.Errorf("due line %d: due date is required", sequence)
	}
	return DueLine{
		sequence:    sequence,
		amount:      amount,
		dueDate:     dueDate,
		description: description,
	}, nil
}

func (d DueLine) Sequence() int           { return d.sequence }
func (d DueLine) Amount() decimal.Decimal { return d.amount }
func (d DueLine) DueDate() time.Time      { return d.dueDate }
func (d DueLine) Description() string     { return d.description }

// WithAmount returns a copy of the line carrying a different amount.
// Used by the scheduler when the last line absorbs the rounding remainder.
func (d DueLine) WithAmount(amount decimal.Decimal) DueLine {
	d.amount = amount
	return d
}

func (d DueLine) String() string {
	return fmt.Sprintf("%d: %s due %s", d.sequence, d.amount, d.dueDate.Format("2006-01-02"))
}
