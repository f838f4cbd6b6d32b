package appointment

// Role is an actor role recognized by the platform.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

// Actor identifies who is performing a transition. ID is the patient or
// doctor identifier; for admins it is the operator account.
type Actor struct {
	ID   string
	Role Role
}

// Transition names a lifecycle transition for authorization purposes.
type Transition string

const (
	TransitionCreate   Transition = "create"
	TransitionMarkPaid Transition = "markPaid"
	TransitionComplete Transition = "complete"
	TransitionCancel   Transition = "cancel"
)

// permissions is the single source of truth for which role may trigger
// which transition. Ownership and state preconditions are checked by the
// lifecycle, not here.
var permissions = map[Transition]map[Role]bool{
	TransitionCreate:   {RolePatient: true},
	TransitionMarkPaid: {RoleAdmin: true},
	TransitionComplete: {RoleDoctor: true},
	TransitionCancel:   {RolePatient: true, RoleDoctor: true, RoleAdmin: true},
}

// authorize checks the permission table. Every transition entry point goes
// through here so the policy lives in exactly one place.
func authorize(role Role, transition Transition) error {
	if permissions[transition][role] {
		return nil
	}
	return ErrForbidden
}
