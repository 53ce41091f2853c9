package auth

import (
	"context"
	"crypto/subtle"
)

var _ CredentialVerifier = SharedSecret("")

// SharedSecret authorizes callers that present one operator-configured secret,
// regardless of identifier. An empty SharedSecret never matches.
type SharedSecret string

// VerifyCredentials compares secret in constant time.
func (s SharedSecret) VerifyCredentials(_ context.Context, _, secret string) (bool, error) {
	if s == "" || secret == "" {
		return false, nil
	}
	return subtle.ConstantTimeCompare([]byte(s), []byte(secret)) == 1, nil
}
