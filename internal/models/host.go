package models

// Host represents a registered account that creates and runs events.
type Host struct {
	// ID is the unique identifier for the host (UUID format).
	ID string

	// Email is the host's email address (unique).
	// Used for login.
	Email string

	// DisplayName is the name shown to participants.
	DisplayName string

	// PasswordHash is the bcrypt hash of the host's password.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last account change.
	UpdatedAt int64
}
