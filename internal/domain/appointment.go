package domain

import (
	"errors"
	"time"
)

// AppointmentStatus represents the lifecycle status of an internal appointment
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentDone      AppointmentStatus = "done"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentRejected  AppointmentStatus = "rejected"
)

// AppointmentAction is a staff action that moves an appointment between statuses
type AppointmentAction string

const (
	ActionSchedule AppointmentAction = "schedule"
	ActionReject   AppointmentAction = "reject"
	ActionComplete AppointmentAction = "complete"
	ActionCancel   AppointmentAction = "cancel"
	ActionRevert   AppointmentAction = "revert"
)

var (
	// ErrInvalidTransition is returned when the action is not defined for the current status
	ErrInvalidTransition = errors.New("domain: invalid appointment status transition")

	// ErrResourceRequired is returned when scheduling without a resource
	ErrResourceRequired = errors.New("domain: resource is required to schedule an appointment")

	// ErrUnknownAction is returned for an action outside the state machine
	ErrUnknownAction = errors.New("domain: unknown appointment action")
)

// BlockingStatuses statuses that occupy a resource's time
var BlockingStatuses = []AppointmentStatus{
	AppointmentScheduled,
}

// Appointment represents an internal appointment
// Linked either to a registered client+pet (ClientID/PetID) or to inline guest names
type Appointment struct {
	ID         int64
	ClientID   *int64
	PetID      *int64
	GuestOwner *string
	GuestPet   *string
	ResourceID *int64

	ScheduledAt     time.Time
	DurationMinutes int
	ServiceType     string
	Reason          string
	Status          AppointmentStatus

	// SourceRequestID is set when the appointment was promoted from a public request
	SourceRequestID *int64
	CreatedBy       string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndsAt returns the exclusive end of the booking interval
func (a *Appointment) EndsAt() time.Time {
	return a.ScheduledAt.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// IsBlocking returns true if the appointment occupies its resource's time
func (a *Appointment) IsBlocking() bool {
	return a.Status.IsBlocking()
}

// HasResource returns true if a resource is attached
func (a *Appointment) HasResource() bool {
	return a.ResourceID != nil
}

// IsGuest returns true if the appointment is not linked to a registered client
func (a *Appointment) IsGuest() bool {
	return a.ClientID == nil
}

// IsTerminal returns true if no transition out of the status exists
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentDone || s == AppointmentRejected
}

func (s AppointmentStatus) IsBlocking() bool {
	for _, b := range BlockingStatuses {
		if s == b {
			return true
		}
	}
	return false
}

// IsValid returns true for known statuses
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentPending, AppointmentScheduled, AppointmentDone, AppointmentCancelled, AppointmentRejected:
		return true
	default:
		return false
	}
}

// IsValid returns true for known actions
func (a AppointmentAction) IsValid() bool {
	switch a {
	case ActionSchedule, ActionReject, ActionComplete, ActionCancel, ActionRevert:
		return true
	default:
		return false
	}
}

// NextStatus applies the state machine to the appointment and returns the target status
// It does not check resource availability; callers must run the overlap check
// whenever the target status is blocking.
//
//	pending   --schedule--> scheduled (resource required)
//	pending   --reject----> rejected
//	pending   --cancel----> cancelled
//	scheduled --complete--> done
//	scheduled --cancel----> cancelled
//	cancelled --revert----> scheduled (resource retained) | pending (no resource)
func (a *Appointment) NextStatus(action AppointmentAction, resourceID *int64) (AppointmentStatus, error) {
	if !action.IsValid() {
		return "", ErrUnknownAction
	}

	switch a.Status {
	case AppointmentPending:
		switch action {
		case ActionSchedule:
			if resourceID == nil && a.ResourceID == nil {
				return "", ErrResourceRequired
			}
			return AppointmentScheduled, nil
		case ActionReject:
			return AppointmentRejected, nil
		case ActionCancel:
			return AppointmentCancelled, nil
		}

	case AppointmentScheduled:
		switch action {
		case ActionComplete:
			return AppointmentDone, nil
		case ActionCancel:
			return AppointmentCancelled, nil
		}

	case AppointmentCancelled:
		if action == ActionRevert {
			if a.HasResource() {
				return AppointmentScheduled, nil
			}
			return AppointmentPending, nil
		}
	}

	return "", ErrInvalidTransition
}

// AppointmentsFilter filter for listing appointments
type AppointmentsFilter struct {
	ResourceID *int64
	From       *time.Time // inclusive
	To         *time.Time // exclusive
	Statuses   []AppointmentStatus
	ExcludeID  *int64
	IDs        []int64
}
