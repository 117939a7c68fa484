// Package domain defines core domain models and errors for secure links.
package domain

import (
	"github.com/regwatch/securelink/internal/errors"
)

// Link-specific error definitions. NotFound, Expired and Consumed are kept
// distinct on purpose: the landing page renders a different message for each.
var (
	// ErrLinkNotFound indicates no link exists for the presented token.
	ErrLinkNotFound = errors.Wrap(errors.ErrNotFound, "link not found")

	// ErrLinkExpired indicates the link exists but its TTL has lapsed.
	ErrLinkExpired = errors.Wrap(errors.ErrExpired, "link expired")

	// ErrLinkConsumed indicates a single-use link was already resolved.
	ErrLinkConsumed = errors.Wrap(errors.ErrConsumed, "link already consumed")

	// ErrInvalidTTL indicates the caller supplied a non-positive TTL at issuance.
	ErrInvalidTTL = errors.Wrap(errors.ErrInvalidInput, "ttl must be a positive duration")
)
