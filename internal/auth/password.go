package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/santa/internal/models"
	"github.com/mmynk/santa/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrEmailExists        = errors.New("email already registered")
)

// HostStorage defines the interface for host persistence operations.
// This allows the authenticator to be independent of the storage implementation.
type HostStorage interface {
	CreateHost(ctx context.Context, host *models.Host) error
	GetHostByEmail(ctx context.Context, email string) (*models.Host, error)
	GetHostByID(ctx context.Context, id string) (*models.Host, error)
}

var (
	_ Authenticator      = (*PasswordAuthenticator)(nil)
	_ CredentialVerifier = (*PasswordAuthenticator)(nil)
)

// PasswordAuthenticator implements password-based authentication using bcrypt.
type PasswordAuthenticator struct {
	storage HostStorage
	cost    int
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(storage HostStorage) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		storage: storage,
		cost:    bcrypt.DefaultCost,
	}
}

// WithCost returns a copy using the given bcrypt cost. Tests use bcrypt.MinCost.
func (a *PasswordAuthenticator) WithCost(cost int) *PasswordAuthenticator {
	return &PasswordAuthenticator{storage: a.storage, cost: cost}
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < 8 {
		return ErrWeakPassword
	}
	return nil
}

// Register creates a new host account with a hashed password.
func (a *PasswordAuthenticator) Register(ctx context.Context, email, displayName, credential string) (*models.Host, error) {
	email = strings.TrimSpace(email)

	// Validate password strength
	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}

	// Check if email already exists
	existing, err := a.storage.GetHostByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, ErrEmailExists
	}
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up host: %w", err)
	}

	// Hash the password
	hashed, err := bcrypt.GenerateFromPassword([]byte(credential), a.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().Unix()
	host := &models.Host{
		Email:        email,
		DisplayName:  strings.TrimSpace(displayName),
		PasswordHash: string(hashed),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Save to storage
	if err := a.storage.CreateHost(ctx, host); err != nil {
		return nil, fmt.Errorf("failed to create host: %w", err)
	}

	return host, nil
}

// Authenticate verifies the email and password, returning the host if valid.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, email, credential string) (*models.Host, error) {
	host, err := a.storage.GetHostByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// Compare password hash
	if err := bcrypt.CompareHashAndPassword([]byte(host.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return host, nil
}

// VerifyCredentials reports whether secret is the password of the host with the given email.
func (a *PasswordAuthenticator) VerifyCredentials(ctx context.Context, identifier, secret string) (bool, error) {
	_, err := a.Authenticate(ctx, identifier, secret)
	if errors.Is(err, ErrInvalidCredentials) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
