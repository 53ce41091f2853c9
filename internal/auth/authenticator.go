package auth

import (
	"context"

	"github.com/mmynk/santa/internal/models"
)

// Authenticator defines the interface for host authentication implementations.
// This abstraction allows swapping between different auth methods (password, passkeys, OAuth, etc.)
// without changing the service layer code.
type Authenticator interface {
	// Register creates a new host account with the given email and credential.
	// Returns the created host or an error if registration fails.
	Register(ctx context.Context, email, displayName, credential string) (*models.Host, error)

	// Authenticate verifies the host's credentials and returns the host if successful.
	Authenticate(ctx context.Context, email, credential string) (*models.Host, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}

// CredentialVerifier answers "does this secret belong to this identifier".
// It is the only authentication surface the authorization boundary depends on.
type CredentialVerifier interface {
	VerifyCredentials(ctx context.Context, identifier, secret string) (bool, error)
}
