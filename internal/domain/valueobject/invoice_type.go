package valueobject

import "fmt"

// InvoiceType distinguishes the four document kinds handled by the posting
// engine. Customer invoices and credit notes are sale-side documents;
// supplier invoices and debit notes are purchase-side.
type InvoiceType struct {
	value string
}

var (
	InvoiceTypeCustomer   = InvoiceType{"CUSTOMER_INVOICE"}
	InvoiceTypeSupplier   = InvoiceType{"SUPPLIER_INVOICE"}
	InvoiceTypeCreditNote = InvoiceType{"CREDIT_NOTE"}
	InvoiceTypeDebitNote  = InvoiceType{"DEBIT_NOTE"}
)

var validInvoiceTypes = map[string]InvoiceType{
	"CUSTOMER_INVOICE": InvoiceTypeCustomer,
	"SUPPLIER_INVOICE": InvoiceTypeSupplier,
	"CREDIT_NOTE":      InvoiceTypeCreditNote,
	"DEBIT_NOTE":       InvoiceTypeDebitNote,
}

// NewInvoiceType validates and creates an InvoiceType from a string.
func NewInvoiceType(s string) (InvoiceType, error) {
	if t, ok := validInvoiceTypes[s]; ok {
		return t, nil
	}
	return InvoiceType{}, fmt.Errorf("invalid invoice type: %q", s)
}

func (t InvoiceType) String() string { return t.value }
func (t InvoiceType) IsZero() bool   { return t.value == "" }

// IsSale reports whether the document books against a customer.
func (t InvoiceType) IsSale() bool {
	return t == InvoiceTypeCustomer || t == InvoiceTypeCreditNote
}

// IsPurchase reports whether the document books against a supplier.
func (t InvoiceType) IsPurchase() bool {
	return t == InvoiceTypeSupplier || t == InvoiceTypeDebitNote
}
