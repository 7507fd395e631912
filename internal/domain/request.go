package domain

import (
	"time"

	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// RequestStatus represents the status of a public appointment request
type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestConfirmed RequestStatus = "confirmed"
	RequestCancelled RequestStatus = "cancelled"
)

// AppointmentRequest is a public intake request submitted without authentication
// Only staff mutate it after creation
type AppointmentRequest struct {
	ID        int64
	Reference string // public UUID handed to the requester

	ContactName  string
	ContactPhone *string
	ContactEmail *string
	PetName      string
	Reason       string

	RequestedAt   time.Time // date + slot start in the clinic time zone
	Status        RequestStatus
	AppointmentID *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPending returns true if the request has not been handled by staff yet
func (r *AppointmentRequest) IsPending() bool {
	return r.Status == RequestPending
}

// StartTime returns the claimed slot start as HH:MM in loc
func (r *AppointmentRequest) StartTime(loc *time.Location) types.TimeString {
	return types.NewTimeString(r.RequestedAt.In(loc))
}

// IsValid returns true for known statuses
func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestPending, RequestConfirmed, RequestCancelled:
		return true
	default:
		return false
	}
}

// RequestsFilter filter for listing requests
type RequestsFilter struct {
	Status *RequestStatus
	From   *time.Time // inclusive
	To     *time.Time // exclusive
}
