package valueobject

import (
	"fmt"
	"regexp"
	"strings"
)

// AccountCode represents a hierarchical chart-of-accounts code, e.g. "1.1.2.001".
// Immutable value object with unexported fields.
type AccountCode struct {
	code string
}

var accountCodeRegex = regexp.MustCompile(`^[0-9]+(\.[0-9]+)*$`)

func NewAccountCode(code string) (AccountCode, error) {
	if !accountCodeRegex.MatchString(code) {
		return AccountCode{}, fmt.Errorf("invalid account code %q: must be dot-separated digit groups", code)
	}
	return AccountCode{code: code}, nil
}

func MustAccountCode(code string) AccountCode {
	ac, err := NewAccountCode(code)
	if err != nil {
		panic(err)
	}
	return ac
}

func (a AccountCode) String() string { return a.code }
func (a AccountCode) Code() string   { return a.code }
func (a AccountCode) IsZero() bool   { return a.code == "" }

func (a AccountCode) Equal(other AccountCode) bool {
	return a.code == other.code
}

// MatchesPrefix reports whether the code equals prefix or sits under it in
// the chart hierarchy ("1.1.2" matches "1.1.2" and "1.1.2.001", not "1.1.20").
func (a AccountCode) MatchesPrefix(prefix string) bool {
	if a.code == prefix {
		return true
	}
	return strings.HasPrefix(a.code, prefix+".")
}
