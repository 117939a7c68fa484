// Package repository implements storage backends for secure links.
// The in-memory backend is the default; PostgreSQL and MySQL backends are
// drop-in replacements for deployments that must survive restarts or run
// multiple server instances. Every backend keys records on the token hash and
// guarantees that single-use consumption is atomic.
package repository

import (
	"context"
	"sync"
	"time"

	linksDomain "github.com/regwatch/securelink/internal/links/domain"
)

// MemoryLinkRepository stores links in a process-local map. A single mutex
// covers every operation: the store is small and request volume is one link
// per notification, so coarse locking keeps the consume path trivially atomic.
type MemoryLinkRepository struct {
	mu    sync.Mutex
	links map[string]*linksDomain.Link
}

// Create stores a new link keyed by its token hash.
func (m *MemoryLinkRepository) Create(ctx context.Context, link *linksDomain.Link) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *link
	m.links[link.TokenHash] = &stored
	return nil
}

// Get returns a copy of the link for the given token hash, regardless of its
// validity. Used by revocation and tests; resolution goes through Consume.
func (m *MemoryLinkRepository) Get(ctx context.Context, tokenHash string) (*linksDomain.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	link, ok := m.links[tokenHash]
	if !ok {
		return nil, linksDomain.ErrLinkNotFound
	}

	result := *link
	return &result, nil
}

// Consume resolves a link at the given instant. The validity checks and the
// consumed transition happen under one lock acquisition, so two concurrent
// calls on the same single-use link can never both succeed. Check order is
// not-found, consumed, expired: a link that is both consumed and expired
// reports consumed.
func (m *MemoryLinkRepository) Consume(
	ctx context.Context,
	tokenHash string,
	now time.Time,
) (*linksDomain.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	link, ok := m.links[tokenHash]
	if !ok {
		return nil, linksDomain.ErrLinkNotFound
	}
	if link.Consumed() {
		return nil, linksDomain.ErrLinkConsumed
	}
	if link.ExpiredAt(now) {
		return nil, linksDomain.ErrLinkExpired
	}

	if link.SingleUse {
		consumedAt := now
		link.ConsumedAt = &consumedAt
	}

	result := *link
	return &result, nil
}

// Delete removes a link regardless of its state. Deleting an absent link is
// not an error.
func (m *MemoryLinkRepository) Delete(ctx context.Context, tokenHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.links, tokenHash)
	return nil
}

// DeleteExpired removes every link whose expiry has passed at the given
// instant and returns the number removed. Pure memory reclamation: a link
// that Consume would reject stays rejected whether or not it has been swept.
func (m *MemoryLinkRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var removed int64
	for tokenHash, link := range m.links {
		if link.ExpiredAt(now) {
			delete(m.links, tokenHash)
			removed++
		}
	}
	return removed, nil
}

// Len reports the number of stored links. Exposed for sweeping diagnostics.
func (m *MemoryLinkRepository) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.links)
}

// NewMemoryLinkRepository creates an empty in-memory link repository.
func NewMemoryLinkRepository() *MemoryLinkRepository {
	return &MemoryLinkRepository{links: make(map[string]*linksDomain.Link)}
}
