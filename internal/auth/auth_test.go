package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/santa/internal/models"
	"github.com/mmynk/santa/internal/storage/sqlite"
)

func newAuthenticator(t *testing.T) *PasswordAuthenticator {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "auth.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)
}

func TestPasswordAuthenticator(t *testing.T) {
	a := newAuthenticator(t)
	ctx := context.Background()

	host, err := a.Register(ctx, " host@example.com ", "Host", "correct-horse")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if host.ID == "" {
		t.Error("expected host ID to be generated")
	}
	if host.Email != "host@example.com" {
		t.Errorf("email not trimmed: %q", host.Email)
	}
	if host.PasswordHash == "correct-horse" {
		t.Error("password stored in plain text")
	}

	t.Run("duplicate email", func(t *testing.T) {
		_, err := a.Register(ctx, "host@example.com", "Again", "correct-horse")
		if !errors.Is(err, ErrEmailExists) {
			t.Errorf("expected ErrEmailExists, got %v", err)
		}
	})

	t.Run("weak password", func(t *testing.T) {
		_, err := a.Register(ctx, "weak@example.com", "Weak", "short")
		if !errors.Is(err, ErrWeakPassword) {
			t.Errorf("expected ErrWeakPassword, got %v", err)
		}
	})

	t.Run("authenticate", func(t *testing.T) {
		got, err := a.Authenticate(ctx, "host@example.com", "correct-horse")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if got.ID != host.ID {
			t.Errorf("ID mismatch: got %s, want %s", got.ID, host.ID)
		}
		if _, err := a.Authenticate(ctx, "host@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
		if _, err := a.Authenticate(ctx, "nobody@example.com", "correct-horse"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
		}
	})

	t.Run("verify credentials", func(t *testing.T) {
		ok, err := a.VerifyCredentials(ctx, "host@example.com", "correct-horse")
		if err != nil || !ok {
			t.Errorf("VerifyCredentials = %v, %v; want true, nil", ok, err)
		}
		ok, err = a.VerifyCredentials(ctx, "host@example.com", "nope-nope")
		if err != nil || ok {
			t.Errorf("VerifyCredentials = %v, %v; want false, nil", ok, err)
		}
	})
}

func TestSharedSecret(t *testing.T) {
	tests := []struct {
		name   string
		secret SharedSecret
		given  string
		want   bool
	}{
		{name: "match", secret: "s3cret-value", given: "s3cret-value", want: true},
		{name: "mismatch", secret: "s3cret-value", given: "s3cret-valu", want: false},
		{name: "unset secret", secret: "", given: "", want: false},
		{name: "empty given", secret: "s3cret-value", given: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.secret.VerifyCredentials(context.Background(), "", tt.given)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("VerifyCredentials = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJWTManager(t *testing.T) {
	host := &models.Host{ID: "host-1", Email: "host@example.com"}

	t.Run("round trip", func(t *testing.T) {
		m := NewJWTManager("0123456789abcdef0123456789abcdef", time.Hour)
		token, err := m.Generate(host)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		claims, err := m.Validate(token)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if claims.HostID != "host-1" || claims.Email != "host@example.com" {
			t.Errorf("unexpected claims: %+v", claims)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewJWTManager("0123456789abcdef0123456789abcdef", time.Hour).Generate(host)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		_, err = NewJWTManager("fedcba9876543210fedcba9876543210", time.Hour).Validate(token)
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		m := NewJWTManager("0123456789abcdef0123456789abcdef", -time.Hour)
		token, err := m.Generate(host)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("foreign issuer", func(t *testing.T) {
		secret := "0123456789abcdef0123456789abcdef"
		claims := &Claims{
			HostID: host.ID,
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "someone-else",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		if err != nil {
			t.Fatalf("sign failed: %v", err)
		}
		if _, err := NewJWTManager(secret, time.Hour).Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}
