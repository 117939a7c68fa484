package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	apperrors "github.com/regwatch/securelink/internal/errors"
)

// tokenGenerator implements TokenGenerator using SHA-256 for token hashing.
type tokenGenerator struct{}

// Generate creates a new cryptographically secure 32-byte random token.
// The token is base64 URL-encoded without padding so it can travel in a query
// string unescaped. Returns the plain token and its SHA-256 hash; only the
// hash is ever stored, the plain token is shown exactly once at issuance.
// The token must never be derived from the payload, the clock or a counter:
// links travel over unauthenticated channels, so predictability would allow
// credential forgery.
func (t *tokenGenerator) Generate() (plainToken string, tokenHash string, err error) {
	// Generate 32 random bytes (256 bits)
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate random token")
	}

	// Encode to base64 URL-safe string without padding
	plainToken = base64.RawURLEncoding.EncodeToString(randomBytes)

	// Hash the token using SHA-256
	tokenHash = t.Hash(plainToken)

	return plainToken, tokenHash, nil
}

// Hash hashes a plain text token using SHA-256.
// Returns the hash as a hexadecimal string.
func (t *tokenGenerator) Hash(plainToken string) string {
	hash := sha256.Sum256([]byte(plainToken))
	return hex.EncodeToString(hash[:])
}

// NewTokenGenerator creates a new TokenGenerator instance using SHA-256 for token hashing.
func NewTokenGenerator() TokenGenerator {
	return &tokenGenerator{}
}
