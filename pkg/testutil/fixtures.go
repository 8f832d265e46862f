package testutil

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// MustDecimal parses a decimal string or fails the test.
func MustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid decimal %q: %v", s, err)
	}
	return d
}

// Date builds a UTC midnight time for fixtures.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
