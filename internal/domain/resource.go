package domain

// Resource is a staff member (veterinarian, groomer) whose calendar is checked for conflicts
// Capacity is strictly serial: one blocking interval at a time
type Resource struct {
	ID              int64
	Name            string
	Specialty       string
	Active          bool
	ScheduleVersion int64
}

// Client is a registered pet owner
type Client struct {
	ID    int64
	Name  string
	Phone *string
	Email *string
}

// Pet belongs to a registered client
type Pet struct {
	ID       int64
	ClientID int64
	Name     string
	Species  *string
}
