package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finbooks/backoffice/internal/domain/apperr"
)

// percentageEpsilon absorbs representation noise when checking that term
// line percentages sum to 100.
var percentageEpsilon = decimal.NewFromFloat(0.0001)

// TermLine is one installment definition: pay percentage of the total
// daysOffset days after the invoice date.
type TermLine struct {
	Sequence   int
	DaysOffset int
	Percentage decimal.Decimal
}

// PaymentTerms is a reusable installment template such as "30/60 split".
type PaymentTerms struct {
	id        uuid.UUID
	name      string
	lines     []TermLine
	active    bool
	createdAt time.Time
	updatedAt time.Time
}

func NewPaymentTerms(name string, lines []TermLine) (*PaymentTerms, error) {
	pt := &PaymentTerms{
		id:        uuid.New(),
		name:      name,
		lines:     lines,
		active:    true,
		createdAt: time.Now(),
		updatedAt: time.Now(),
	}
	if name == "" {
		return nil, apperr.NewValidation("payment terms name is required")
	}
	if err := pt.Validate(); err != nil {
		return nil, err
	}
	return pt, nil
}

// ReconstructPaymentTerms rebuilds PaymentTerms from persistence.
func ReconstructPaymentTerms(
	id uuid.UUID,
	name string,
	lines []TermLine,
	active bool,
	createdAt time.Time,
	updatedAt time.Time,
) *PaymentTerms {
	return &PaymentTerms{
		id:        id,
		name:      name,
		lines:     lines,
		active:    active,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (t *PaymentTerms) ID() uuid.UUID        { return t.id }
func (t *PaymentTerms) Name() string         { return t.name }
func (t *PaymentTerms) Active() bool         { return t.active }
func (t *PaymentTerms) CreatedAt() time.Time { return t.createdAt }
func (t *PaymentTerms) UpdatedAt() time.Time { return t.updatedAt }

// Lines returns a copy of the term lines.
func (t *PaymentTerms) Lines() []TermLine {
	out := make([]TermLine, len(t.lines))
	copy(out, t.lines)
	return out
}

// Validate checks the template invariants: at least one line, sequences
// consecutive from 1, day offsets non-decreasing, percentages positive
// and summing to 100 within epsilon.
func (t *PaymentTerms) Validate() error {
	if len(t.lines) == 0 {
		return apperr.NewValidation("payment terms %q must have at least one line", t.name)
	}
	sum := decimal.Zero
	prevDays := -1
	for i, line := range t.lines {
		if line.Sequence != i+1 {
			return apperr.NewValidation("payment terms %q: line %d has sequence %d, want %d", t.name, i, line.Sequence, i+1)
		}
		if line.DaysOffset < 0 {
			return apperr.NewValidation("payment terms %q: line %d has negative days offset", t.name, line.Sequence)
		}
		if line.DaysOffset < prevDays {
			return apperr.NewValidation("payment terms %q: line %d days offset %d decreases from previous", t.name, line.Sequence, line.DaysOffset)
		}
		if !line.Percentage.IsPositive() {
			return apperr.NewValidation("payment terms %q: line %d percentage must be positive", t.name, line.Sequence)
		}
		prevDays = line.DaysOffset
		sum = sum.Add(line.Percentage)
	}
	hundred := decimal.NewFromInt(100)
	if sum.Sub(hundred).Abs().GreaterThan(percentageEpsilon) {
		return apperr.NewValidation("payment terms %q: percentages sum to %s, want 100", t.name, sum)
	}
	return nil
}
