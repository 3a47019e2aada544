// Package crypto generates the random identifiers used in session tokens.
package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// tokenIDBytes gives refresh token ids 128 bits of entropy.
const tokenIDBytes = 16

// GenerateSecureRandomString returns n random bytes, URL-safe base64
// encoded without padding.
func GenerateSecureRandomString(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("random string length must be positive, got %d", n)
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// NewTokenID returns a fresh identifier for a refresh token (the jti claim).
func NewTokenID() (string, error) {
	return GenerateSecureRandomString(tokenIDBytes)
}
