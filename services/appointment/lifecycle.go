package appointment

import "medibook/models"

// state is the tagged lifecycle state derived from the stored flags. The
// flags remain the external representation for compatibility; internally
// every transition reasons about the tagged state.
type state int

const (
	stateRequested state = iota
	statePaid
	stateCompleted
	stateCancelled
)

// stateOf maps the stored flags to a tagged state, validating the
// invariants at the boundary: completed and cancelled are mutually
// exclusive, and completed requires paid.
func stateOf(appt *models.Appointment) (state, error) {
	switch {
	case appt.Completed && appt.Cancelled:
		return 0, ErrInconsistentState
	case appt.Completed && !appt.Paid:
		return 0, ErrInconsistentState
	case appt.Cancelled:
		return stateCancelled, nil
	case appt.Completed:
		return stateCompleted, nil
	case appt.Paid:
		return statePaid, nil
	default:
		return stateRequested, nil
	}
}

func (s state) terminal() bool {
	return s == stateCompleted || s == stateCancelled
}

// markPaid applies Requested -> Paid. The appointment is mutated only when
// the transition is legal.
func markPaid(appt *models.Appointment) error {
	st, err := stateOf(appt)
	if err != nil {
		return err
	}
	if st.terminal() {
		return ErrTerminalState
	}
	appt.Paid = true
	return nil
}

// complete applies Paid -> Completed. Completion of an unpaid appointment
// is rejected with ErrPaymentRequired.
func complete(appt *models.Appointment) error {
	st, err := stateOf(appt)
	if err != nil {
		return err
	}
	if st.terminal() {
		return ErrTerminalState
	}
	if st != statePaid {
		return ErrPaymentRequired
	}
	appt.Completed = true
	return nil
}

// cancel applies Requested|Paid -> Cancelled. A patient may cancel only
// before payment; staff may cancel any pre-terminal appointment.
func cancel(appt *models.Appointment, role Role) error {
	st, err := stateOf(appt)
	if err != nil {
		return err
	}
	if st.terminal() {
		return ErrTerminalState
	}
	if role == RolePatient && st == statePaid {
		return ErrCancellationNotAllowed
	}
	appt.Cancelled = true
	return nil
}
