package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medibook/models"
)

func TestStateOf(t *testing.T) {
	t.Run("Flag Combinations Map To States", func(t *testing.T) {
		st, err := stateOf(&models.Appointment{})
		require.NoError(t, err)
		assert.Equal(t, stateRequested, st)

		st, err = stateOf(&models.Appointment{Paid: true})
		require.NoError(t, err)
		assert.Equal(t, statePaid, st)

		st, err = stateOf(&models.Appointment{Paid: true, Completed: true})
		require.NoError(t, err)
		assert.Equal(t, stateCompleted, st)

		st, err = stateOf(&models.Appointment{Cancelled: true})
		require.NoError(t, err)
		assert.Equal(t, stateCancelled, st)
	})

	t.Run("Invariant Violations Are Rejected At The Boundary", func(t *testing.T) {
		_, err := stateOf(&models.Appointment{Completed: true})
		assert.ErrorIs(t, err, ErrInconsistentState, "completed requires paid")

		_, err = stateOf(&models.Appointment{Paid: true, Completed: true, Cancelled: true})
		assert.ErrorIs(t, err, ErrInconsistentState, "completed and cancelled are mutually exclusive")
	})
}

func TestCancelRoles(t *testing.T) {
	t.Run("Doctor May Cancel A Paid Appointment", func(t *testing.T) {
		appt := &models.Appointment{Paid: true}
		require.NoError(t, cancel(appt, RoleDoctor))
		assert.True(t, appt.Cancelled)
	})

	t.Run("Patient May Not Cancel A Paid Appointment", func(t *testing.T) {
		appt := &models.Appointment{Paid: true}
		assert.ErrorIs(t, cancel(appt, RolePatient), ErrCancellationNotAllowed)
		assert.False(t, appt.Cancelled)
	})
}
