package valueobject

import "fmt"

// ThirdPartyType classifies a counterparty.
type ThirdPartyType struct {
	value string
}

var (
	ThirdPartyTypeCustomer = ThirdPartyType{"CUSTOMER"}
	ThirdPartyTypeSupplier = ThirdPartyType{"SUPPLIER"}
	ThirdPartyTypeEmployee = ThirdPartyType{"EMPLOYEE"}
	ThirdPartyTypeOther    = ThirdPartyType{"OTHER"}
)

var validThirdPartyTypes = map[string]ThirdPartyType{
	"CUSTOMER": ThirdPartyTypeCustomer,
	"SUPPLIER": ThirdPartyTypeSupplier,
	"EMPLOYEE": ThirdPartyTypeEmployee,
	"OTHER":    ThirdPartyTypeOther,
}

// NewThirdPartyType validates and creates a ThirdPartyType from a string.
func NewThirdPartyType(s string) (ThirdPartyType, error) {
	if t, ok := validThirdPartyTypes[s]; ok {
		return t, nil
	}
	return ThirdPartyType{}, fmt.Errorf("invalid third party type: %q", s)
}

func (t ThirdPartyType) String() string { return t.value }
func (t ThirdPartyType) IsZero() bool   { return t.value == "" }
