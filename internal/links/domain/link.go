// Package domain defines the core domain models for ephemeral secure links.
// A link binds an unguessable bearer token to one regulatory-update briefing;
// the token lapses after its TTL and, for single-use links, after the first
// successful resolution.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Link is a stored token record. Backends never see the plain token: TokenHash
// is the SHA-256 hex of the bearer token and is the only lookup key. The
// payload is stored as an opaque encrypted blob; the store does not interpret
// its fields.
type Link struct {
	// ID is the unique identifier for this record.
	ID uuid.UUID
	// TokenHash is the SHA-256 hex digest of the plain bearer token.
	TokenHash string
	// Ciphertext contains the encrypted regulatory-update payload.
	Ciphertext []byte
	// SingleUse marks the link as invalid after its first successful resolution.
	// Immutable after issuance.
	SingleUse bool
	// CreatedAt is the UTC timestamp when the link was issued.
	CreatedAt time.Time
	// ExpiresAt is CreatedAt plus the caller-supplied TTL; always after CreatedAt.
	ExpiresAt time.Time
	// ConsumedAt marks when a single-use link was resolved (nil if unconsumed).
	ConsumedAt *time.Time
}

// Consumed reports whether a single-use link has already been resolved.
func (l *Link) Consumed() bool {
	return l.SingleUse && l.ConsumedAt != nil
}

// ExpiredAt reports whether the link is past its validity window at the given
// instant. The boundary itself is invalid: a link expires at exactly ExpiresAt.
func (l *Link) ExpiredAt(now time.Time) bool {
	return !now.Before(l.ExpiresAt)
}
