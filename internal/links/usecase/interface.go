// Package usecase implements the secure-link business logic: issuing tokens,
// resolving them exactly once, revoking them early, and sweeping expired rows.
package usecase

import (
	"context"
	"time"

	linksDomain "github.com/regwatch/securelink/internal/links/domain"
)

// LinkRepository defines persistence operations for links. Consume is the
// atomic resolve primitive: each backend guarantees that on a single-use link
// at most one concurrent Consume call succeeds.
type LinkRepository interface {
	Create(ctx context.Context, link *linksDomain.Link) error
	Get(ctx context.Context, tokenHash string) (*linksDomain.Link, error)
	Consume(ctx context.Context, tokenHash string, now time.Time) (*linksDomain.Link, error)
	Delete(ctx context.Context, tokenHash string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// IssuedLink is the result of issuing a new secure link. Token carries the
// plain bearer token; this is the only place it ever appears.
type IssuedLink struct {
	Token     string
	Link      string
	ExpiresAt time.Time
}

// LinkUseCase defines the business logic for the secure-link lifecycle.
type LinkUseCase interface {
	// Issue stores an encrypted payload and returns a fresh link for it.
	Issue(
		ctx context.Context,
		payload *linksDomain.RegulatoryUpdate,
		ttl time.Duration,
		singleUse bool,
	) (*IssuedLink, error)
	// Resolve exchanges a plain token for its payload, consuming the link
	// when it is single-use.
	Resolve(ctx context.Context, plainToken string) (*linksDomain.RegulatoryUpdate, error)
	// Revoke invalidates a link before its natural expiry. Revoking an
	// unknown token is not an error.
	Revoke(ctx context.Context, plainToken string) error
	// Sweep removes expired links and returns the number removed.
	Sweep(ctx context.Context) (int64, error)
}
