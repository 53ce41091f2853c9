package models

// Participant represents one member of an event's roster.
type Participant struct {
	// ID is the unique identifier for the participant (UUID format).
	ID string

	// EventID is the event this participant belongs to.
	EventID string

	// Name is the sanitized display name.
	Name string

	// Slug is the URL-safe form of Name, used in participant links.
	Slug string

	// Token is the private access token that identifies the participant without a login.
	Token string

	// Concept is the submitted gift wish. Empty until submitted.
	Concept string

	// ReceiverID is the participant this one gives a gift to.
	// Empty until the assignment runs. Always another participant of the same event.
	ReceiverID string

	// CreatedAt is the Unix timestamp when the participant joined.
	CreatedAt int64
}

// HasConcept reports whether the participant has submitted a concept.
func (p *Participant) HasConcept() bool {
	return p.Concept != ""
}
