package valueobject

import "fmt"

// AccountType classifies a ledger account.
type AccountType struct {
	value string
}

var (
	AccountTypeAsset     = AccountType{"ASSET"}
	AccountTypeLiability = AccountType{"LIABILITY"}
	AccountTypeEquity    = AccountType{"EQUITY"}
	AccountTypeIncome    = AccountType{"INCOME"}
	AccountTypeExpense   = AccountType{"EXPENSE"}
)

var validAccountTypes = map[string]AccountType{
	"ASSET":     AccountTypeAsset,
	"LIABILITY": AccountTypeLiability,
	"EQUITY":    AccountTypeEquity,
	"INCOME":    AccountTypeIncome,
	"EXPENSE":   AccountTypeExpense,
}

// NewAccountType validates and creates an AccountType from a string.
func NewAccountType(s string) (AccountType, error) {
	if t, ok := validAccountTypes[s]; ok {
		return t, nil
	}
	return AccountType{}, fmt.Errorf("invalid account type: %q", s)
}

func (t AccountType) String() string { return t.value }
func (t AccountType) IsZero() bool   { return t.value == "" }
