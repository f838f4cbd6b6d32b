package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	cases := []struct {
		role       Role
		transition Transition
		allowed    bool
	}{
		{RolePatient, TransitionCreate, true},
		{RoleDoctor, TransitionCreate, false},
		{RoleAdmin, TransitionCreate, false},

		{RoleAdmin, TransitionMarkPaid, true},
		{RolePatient, TransitionMarkPaid, false},
		{RoleDoctor, TransitionMarkPaid, false},

		{RoleDoctor, TransitionComplete, true},
		{RolePatient, TransitionComplete, false},
		{RoleAdmin, TransitionComplete, false},

		{RolePatient, TransitionCancel, true},
		{RoleDoctor, TransitionCancel, true},
		{RoleAdmin, TransitionCancel, true},
	}

	for _, tc := range cases {
		err := authorize(tc.role, tc.transition)
		if tc.allowed {
			assert.NoError(t, err, "%s should be allowed to %s", tc.role, tc.transition)
		} else {
			assert.ErrorIs(t, err, ErrForbidden, "%s should not be allowed to %s", tc.role, tc.transition)
		}
	}
}

func TestAuthorizeUnknownRole(t *testing.T) {
	assert.ErrorIs(t, authorize(Role("visitor"), TransitionCancel), ErrForbidden)
}
