package domain

// Role is a staff role supplied by the authentication layer
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleReceptionist Role = "receptionist"
	RoleVeterinarian Role = "veterinarian"
	RoleGroomer      Role = "groomer"
)

// Actor is the authenticated staff member performing an action
// ResourceID is set for staff who are themselves a schedulable resource
type Actor struct {
	StaffID    string
	Role       Role
	ResourceID *int64
}

// IsValid returns true for known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleReceptionist, RoleVeterinarian, RoleGroomer:
		return true
	default:
		return false
	}
}

// ManagesAllResources returns true for roles that act on any resource's calendar
func (a Actor) ManagesAllResources() bool {
	return a.Role == RoleAdmin || a.Role == RoleReceptionist
}

// CanMutate reports whether the actor may change the appointment
// Front desk roles may change anything; resource staff only unassigned
// appointments or those on their own calendar
func (a Actor) CanMutate(appt *Appointment) bool {
	if !a.Role.IsValid() || appt == nil {
		return false
	}
	if a.ManagesAllResources() {
		return true
	}
	if appt.ResourceID == nil {
		return true
	}
	return a.ResourceID != nil && *a.ResourceID == *appt.ResourceID
}

// CanAssign reports whether the actor may put a booking on the resource's calendar
func (a Actor) CanAssign(resourceID int64) bool {
	if !a.Role.IsValid() {
		return false
	}
	if a.ManagesAllResources() {
		return true
	}
	return a.ResourceID != nil && *a.ResourceID == resourceID
}

// CanManageRequests reports whether the actor may confirm or cancel public requests
func (a Actor) CanManageRequests() bool {
	return a.Role.IsValid()
}
