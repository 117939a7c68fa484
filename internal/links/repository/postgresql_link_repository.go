package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/regwatch/securelink/internal/database"
	apperrors "github.com/regwatch/securelink/internal/errors"
	linksDomain "github.com/regwatch/securelink/internal/links/domain"
)

// PostgreSQLLinkRepository implements link persistence for PostgreSQL databases.
type PostgreSQLLinkRepository struct {
	db *sql.DB
}

// Create inserts a new link into the PostgreSQL database.
func (p *PostgreSQLLinkRepository) Create(ctx context.Context, link *linksDomain.Link) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO links (id, token_hash, ciphertext, single_use, created_at, expires_at, consumed_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

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
func (p *PostgreSQLLinkRepository) Get(
	ctx context.Context,
	tokenHash string,
) (*linksDomain.Link, error) {
	return p.scanByTokenHash(ctx, tokenHash)
}

// Consume resolves a link at the given instant. For single-use links the
// consumed transition is a compare-and-set UPDATE guarded by
// consumed_at IS NULL, so two concurrent resolutions can never both succeed;
// the losing caller re-reads the row to report consumed vs expired. Multi-use
// links are resolved without writes.
func (p *PostgreSQLLinkRepository) Consume(
	ctx context.Context,
	tokenHash string,
	now time.Time,
) (*linksDomain.Link, error) {
	link, err := p.scanByTokenHash(ctx, tokenHash)
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

	querier := database.GetTx(ctx, p.db)

	query := `UPDATE links
			  SET consumed_at = $1
			  WHERE token_hash = $2 AND consumed_at IS NULL AND expires_at > $1`

	result, err := querier.ExecContext(ctx, query, now, tokenHash)
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

	// Lost the race or the link lapsed between read and update; re-read to
	// classify. Consumed takes precedence over expired.
	link, err = p.scanByTokenHash(ctx, tokenHash)
	if err != nil {
		return nil, err
	}
	if link.Consumed() {
		return nil, linksDomain.ErrLinkConsumed
	}
	return nil, linksDomain.ErrLinkExpired
}

// Delete removes a link by its token hash. Idempotent.
func (p *PostgreSQLLinkRepository) Delete(ctx context.Context, tokenHash string) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM links WHERE token_hash = $1`

	if _, err := querier.ExecContext(ctx, query, tokenHash); err != nil {
		return apperrors.Wrap(err, "failed to delete link")
	}
	return nil
}

// DeleteExpired removes every link whose expiry has passed at the given instant.
func (p *PostgreSQLLinkRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM links WHERE expires_at <= $1`

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
func (p *PostgreSQLLinkRepository) scanByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*linksDomain.Link, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, token_hash, ciphertext, single_use, created_at, expires_at, consumed_at
			  FROM links
			  WHERE token_hash = $1`

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

// NewPostgreSQLLinkRepository creates a new PostgreSQL link repository instance.
func NewPostgreSQLLinkRepository(db *sql.DB) *PostgreSQLLinkRepository {
	return &PostgreSQLLinkRepository{db: db}
}
