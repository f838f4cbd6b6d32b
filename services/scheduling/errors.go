package scheduling

import "fmt"

// LedgerError is returned by ledger operations that lose a reservation race
// or release a slot that was never reserved.
type LedgerError struct {
	Code    string
	Message string
}

func (e *LedgerError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

var (
	// ErrSlotTaken signals a reservation race lost to a concurrent caller.
	ErrSlotTaken = &LedgerError{Code: "slotTaken", Message: "slot is already booked"}
	// ErrSlotNotFound signals a release of a slot that is not reserved.
	// This indicates a caller bug; it is recoverable but should be logged.
	ErrSlotNotFound = &LedgerError{Code: "slotNotFound", Message: "slot is not reserved"}
)
