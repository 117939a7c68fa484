package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/regwatch/securelink/internal/database"
	apperrors "github.com/regwatch/securelink/internal/errors"
	linksDomain "github.com/regwatch/securelink/internal/links/domain"
)

// MySQLLinkRepository implements link persistence for MySQL databases.
type MySQLLinkRepository struct {
	db *sql.DB
}

// Create inserts a new link into the MySQL database.
func (m *MySQLLinkRepository) Create(ctx context.Context, link *linksDomain.Link) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO links (id, token_hash, ciphertext, single_use, created_at, expires_at, consumed_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		link.ID,
		link.TokenHash,
		link.Ciphertext,
		link.SingleUse,
		link.CreatedAt,
		link.ExpiresAt,
		link.ConsumedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create link")
	}
	return nil
}

// Get retrieves a link by its token hash regardless of validity.
func (m *MySQLLinkRepository) Get(
	ctx context.Context,
	tokenHash string,
) (*linksDomain.Link, error) {
	return m.scanByTokenHash(ctx, tokenHash)
}

// Consume resolves a link at the given instant. Same compare-and-set
// discipline as the PostgreSQL backend: the consumed transition is guarded by
// consumed_at IS NULL so only one concurrent resolution of a single-use link
// can win.
func (m *MySQLLinkRepository) Consume(
	ctx context.Context,
	tokenHash string,
	now time.Time,
) (*linksDomain.Link, error) {
	link, err := m.scanByTokenHash(ctx, tokenHash)
	if err != nil {
		return nil, err
	}
	if link.Consumed() {
		return nil, linksDomain.ErrLinkConsumed
	}

	if !link.SingleUse {
		if link.ExpiredAt(now) {
			return nil, linksDomain.ErrLinkExpired
		}
		return link, nil
	}

	querier := database.GetTx(ctx, m.db)

	query := `UPDATE links
			  SET consumed_at = ?
			  WHERE token_hash = ? AND consumed_at IS NULL AND expires_at > ?`

	result, err := querier.ExecContext(ctx, query, now, tokenHash, now)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to consume link")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to consume link")
	}

	if affected == 1 {
		consumedAt := now
		link.ConsumedAt = &consumedAt
		return link, nil
	}

	link, err = m.scanByTokenHash(ctx, tokenHash)
	if err != nil {
		return nil, err
	}
	if link.Consumed() {
		return nil, linksDomain.ErrLinkConsumed
	}
	return nil, linksDomain.ErrLinkExpired
}

// Delete removes a link by its token hash. Idempotent.
func (m *MySQLLinkRepository) Delete(ctx context.Context, tokenHash string) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM links WHERE token_hash = ?`

	if _, err := querier.ExecContext(ctx, query, tokenHash); err != nil {
		return apperrors.Wrap(err, "failed to delete link")
	}
	return nil
}

// DeleteExpired removes every link whose expiry has passed at the given instant.
func (m *MySQLLinkRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM links WHERE expires_at <= ?`

	result, err := querier.ExecContext(ctx, query, now)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired links")
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired links")
	}
	return removed, nil
}

// scanByTokenHash reads a single link row, mapping sql.ErrNoRows to
// ErrLinkNotFound.
func (m *MySQLLinkRepository) scanByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*linksDomain.Link, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, token_hash, ciphertext, single_use, created_at, expires_at, consumed_at
			  FROM links
			  WHERE token_hash = ?`

	var link linksDomain.Link
	err := querier.QueryRowContext(ctx, query, tokenHash).Scan(
		&link.ID,
		&link.TokenHash,
		&link.Ciphertext,
		&link.SingleUse,
		&link.CreatedAt,
		&link.ExpiresAt,
		&link.ConsumedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, linksDomain.ErrLinkNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get link")
	}

	return &link, nil
}

// NewMySQLLinkRepository creates a new MySQL link repository instance.
func NewMySQLLinkRepository(db *sql.DB) *MySQLLinkRepository {
	return &MySQLLinkRepository{db: db}
}
