package appointment

import "fmt"

// LifecycleError is returned when a transition is rejected by the state
// machine or the access guard. The appointment is left untouched.
type LifecycleError struct {
	Code    string
	Message string
}

func (e *LifecycleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

var (
	// ErrPaymentRequired rejects completion of an unpaid appointment.
	ErrPaymentRequired = &LifecycleError{Code: "paymentRequired", Message: "appointment must be paid before completion"}
	// ErrTerminalState rejects any transition on a completed or cancelled appointment.
	ErrTerminalState = &LifecycleError{Code: "terminalState", Message: "appointment is already completed or cancelled"}
	// ErrCancellationNotAllowed rejects a patient cancelling a paid appointment.
	// Once paid, only staff may cancel.
	ErrCancellationNotAllowed = &LifecycleError{Code: "cancellationNotAllowed", Message: "paid appointments can only be cancelled by staff"}
	// ErrForbidden rejects a transition the actor's role does not permit.
	ErrForbidden = &LifecycleError{Code: "forbidden", Message: "role is not permitted to perform this transition"}
	// ErrDoctorUnavailable rejects booking with a doctor who is not taking appointments.
	ErrDoctorUnavailable = &LifecycleError{Code: "doctorUnavailable", Message: "doctor is not currently accepting appointments"}
	// ErrInconsistentState signals stored flags that violate the lifecycle
	// invariants (completed without paid, or completed and cancelled together).
	ErrInconsistentState = &LifecycleError{Code: "inconsistentState", Message: "appointment flags violate lifecycle invariants"}
)
