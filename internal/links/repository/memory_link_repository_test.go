package repository

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/regwatch/securelink/internal/errors"
	linksDomain "github.com/regwatch/securelink/internal/links/domain"
)

func newTestLink(tokenHash string, singleUse bool, ttl time.Duration) *linksDomain.Link {
	now := time.Now().UTC()
	return &linksDomain.Link{
		ID:         uuid.Must(uuid.NewV7()),
		TokenHash:  tokenHash,
		Ciphertext: []byte("encrypted-briefing"),
		SingleUse:  singleUse,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
	}
}

func TestMemoryLinkRepository_CreateAndConsume(t *testing.T) {
	repo := NewMemoryLinkRepository()
	ctx := context.Background()

	link := newTestLink("hash-1", false, time.Hour)
	require.NoError(t, repo.Create(ctx, link))

	resolved, err := repo.Consume(ctx, "hash-1", time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, link.ID, resolved.ID)
	assert.Equal(t, []byte("encrypted-briefing"), resolved.Ciphertext)

	// Multi-use resolution is idempotent and side-effect-free.
	again, err := repo.Consume(ctx, "hash-1", time.Now().UTC())
	require.NoError(t, err)
	assert.Nil(t, again.ConsumedAt)
}

func TestMemoryLinkRepository_Consume_NotFound(t *testing.T) {
	repo := NewMemoryLinkRepository()

	_, err := repo.Consume(context.Background(), "never-issued", time.Now().UTC())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMemoryLinkRepository_Consume_ExpiryBoundary(t *testing.T) {
	repo := NewMemoryLinkRepository()
	ctx := context.Background()

	link := newTestLink("hash-1", false, time.Second)
	require.NoError(t, repo.Create(ctx, link))

	// Strictly before expiry: valid.
	_, err := repo.Consume(ctx, "hash-1", link.ExpiresAt.Add(-time.Nanosecond))
	require.NoError(t, err)

	// At exactly expires_at: expired.
	_, err = repo.Consume(ctx, "hash-1", link.ExpiresAt)
	assert.ErrorIs(t, err, apperrors.ErrExpired)

	_, err = repo.Consume(ctx, "hash-1", link.ExpiresAt.Add(time.Minute))
	assert.ErrorIs(t, err, apperrors.ErrExpired)
}

func TestMemoryLinkRepository_Consume_SingleUse(t *testing.T) {
	repo := NewMemoryLinkRepository()
	ctx := context.Background()
	now := time.Now().UTC()

	link := newTestLink("hash-1", true, time.Hour)
	require.NoError(t, repo.Create(ctx, link))

	resolved, err := repo.Consume(ctx, "hash-1", now)
	require.NoError(t, err)
	require.NotNil(t, resolved.ConsumedAt)
	assert.Equal(t, now, *resolved.ConsumedAt)

	_, err = repo.Consume(ctx, "hash-1", now)
	assert.ErrorIs(t, err, apperrors.ErrConsumed)
}

func TestMemoryLinkRepository_Consume_ConsumedBeforeExpired(t *testing.T) {
	repo := NewMemoryLinkRepository()
	ctx := context.Background()

	link := newTestLink("hash-1", true, time.Second)
	require.NoError(t, repo.Create(ctx, link))

	_, err := repo.Consume(ctx, "hash-1", link.CreatedAt)
	require.NoError(t, err)

	// Both consumed and expired now apply; consumed must win.
	_, err = repo.Consume(ctx, "hash-1", link.ExpiresAt.Add(time.Minute))
	assert.ErrorIs(t, err, apperrors.ErrConsumed)
}

func TestMemoryLinkRepository_Consume_ConcurrentSingleUse(t *testing.T) {
	repo := NewMemoryLinkRepository()
	ctx := context.Background()
	now := time.Now().UTC()

	link := newTestLink("hash-1", true, time.Hour)
	require.NoError(t, repo.Create(ctx, link))

	var successes, consumed atomic.Int64
	var g errgroup.Group
	for range 50 {
		g.Go(func() error {
			_, err := repo.Consume(ctx, "hash-1", now)
			switch {
			case err == nil:
				successes.Add(1)
			case apperrors.Is(err, apperrors.ErrConsumed):
				consumed.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	// Exactly one caller wins; never zero, never more than one.
	assert.Equal(t, int64(1), successes.Load())
	assert.Equal(t, int64(49), consumed.Load())
}

func TestMemoryLinkRepository_Delete(t *testing.T) {
	repo := NewMemoryLinkRepository()
	ctx := context.Background()

	first := newTestLink("hash-1", false, time.Hour)
	second := newTestLink("hash-2", false, time.Hour)
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	require.NoError(t, repo.Delete(ctx, "hash-1"))

	_, err := repo.Consume(ctx, "hash-1", time.Now().UTC())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// The other link is untouched.
	resolved, err := repo.Consume(ctx, "hash-2", time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, second.ID, resolved.ID)

	// Idempotent on absent tokens.
	assert.NoError(t, repo.Delete(ctx, "hash-1"))
}

func TestMemoryLinkRepository_DeleteExpired(t *testing.T) {
	repo := NewMemoryLinkRepository()
	ctx := context.Background()

	live := newTestLink("live", false, time.Hour)
	dead := newTestLink("dead", false, time.Second)
	require.NoError(t, repo.Create(ctx, live))
	require.NoError(t, repo.Create(ctx, dead))

	removed, err := repo.DeleteExpired(ctx, dead.ExpiresAt)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	assert.Equal(t, 1, repo.Len())

	// Sweep is invisible to resolve outcomes: the dead link was already
	// unresolvable, only its error kind shifts from expired to not found.
	_, err = repo.Consume(ctx, "dead", dead.ExpiresAt)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = repo.Consume(ctx, "live", time.Now().UTC())
	assert.NoError(t, err)
}

func TestMemoryLinkRepository_Get(t *testing.T) {
	repo := NewMemoryLinkRepository()
	ctx := context.Background()

	link := newTestLink("hash-1", true, time.Second)
	require.NoError(t, repo.Create(ctx, link))

	got, err := repo.Get(ctx, "hash-1")
	require.NoError(t, err)
	assert.Equal(t, link.ID, got.ID)

	// Get does not consume.
	assert.Nil(t, got.ConsumedAt)

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
