package models

// Event represents one gift exchange.
// An event is OPEN until its assignment has run, then CLOSED for good.
type Event struct {
	// ID is the unique identifier for the event (UUID format).
	ID string

	// HostID is the owning host. Empty for events created without a host session.
	HostID string

	// Name is the display name of the event (e.g., "Office Party").
	Name string

	// Slug is the public, URL-safe and unguessable identifier used for self-registration links.
	Slug string

	// Message is an optional note from the host shown to participants.
	Message string

	// CreatedAt is the Unix timestamp when the event was created.
	CreatedAt int64

	// AssignmentRunAt is the Unix timestamp when the assignment ran.
	// Zero while the event is open.
	AssignmentRunAt int64
}

// Closed reports whether the assignment has run.
func (e *Event) Closed() bool {
	return e.AssignmentRunAt != 0
}
