package valueobject

import "fmt"

// EntryStatus represents the lifecycle state of a journal entry.
// Cancellation flips the same entry to CANCELLED in place; no reversal
// rows are created, so the audit trail stays on one entry.
type EntryStatus struct {
	value string
}

var (
	EntryStatusDraft     = EntryStatus{"DRAFT"}
	EntryStatusPosted    = EntryStatus{"POSTED"}
	EntryStatusCancelled = EntryStatus{"CANCELLED"}
)

var validEntryStatuses = map[string]EntryStatus{
	"DRAFT":     EntryStatusDraft,
	"POSTED":    EntryStatusPosted,
	"CANCELLED": EntryStatusCancelled,
}

// NewEntryStatus validates and creates an EntryStatus from a string.
func NewEntryStatus(s string) (EntryStatus, error) {
	if st, ok := validEntryStatuses[s]; ok {
		return st, nil
	}
	return EntryStatus{}, fmt.Errorf("invalid entry status: %q", s)
}

func (s EntryStatus) String() string { return s.value }
func (s EntryStatus) IsZero() bool   { return s.value == "" }
