package domain

import "time"

// Collection names used in change notifications
const (
	CollectionRequests     = "appointment_requests"
	CollectionAppointments = "appointments"
)

// ChangeAction describes what happened to a record
type ChangeAction string

const (
	ChangeCreated ChangeAction = "created"
	ChangeUpdated ChangeAction = "updated"
	ChangeDeleted ChangeAction = "deleted"
)

// ChangeEvent is a hint that a record changed and views should re-fetch
// It carries no state; consumers must re-read the store
type ChangeEvent struct {
	Collection string       `json:"collection"`
	ID         int64        `json:"id"`
	Action     ChangeAction `json:"action"`
	At         time.Time    `json:"at"`
}
