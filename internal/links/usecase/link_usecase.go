package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	linksDomain "github.com/regwatch/securelink/internal/links/domain"
	"github.com/regwatch/securelink/internal/links/service"
)

// linkUseCase implements the LinkUseCase interface.
type linkUseCase struct {
	linkRepo       LinkRepository
	tokenGenerator service.TokenGenerator
	payloadCipher  service.PayloadCipher
	basePath       string
}

// Issue validates the payload, encrypts it, and stores a new link keyed by
// the token hash. The plain token leaves this method only inside the returned
// IssuedLink; nothing else ever sees it.
func (l *linkUseCase) Issue(
	ctx context.Context,
	payload *linksDomain.RegulatoryUpdate,
	ttl time.Duration,
	singleUse bool,
) (*IssuedLink, error) {
	if ttl <= 0 {
		return nil, linksDomain.ErrInvalidTTL
	}
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	plainToken, tokenHash, err := l.tokenGenerator.Generate()
	if err != nil {
		return nil, err
	}

	plaintext, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	ciphertext, err := l.payloadCipher.Encrypt(ctx, plaintext)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	link := &linksDomain.Link{
		ID:         uuid.Must(uuid.NewV7()),
		TokenHash:  tokenHash,
		Ciphertext: ciphertext,
		SingleUse:  singleUse,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
	}

	if err := l.linkRepo.Create(ctx, link); err != nil {
		return nil, err
	}

	return &IssuedLink{
		Token:     plainToken,
		Link:      l.basePath + "?token=" + plainToken,
		ExpiresAt: link.ExpiresAt,
	}, nil
}

// Resolve consumes the link for the presented token and returns its decrypted
// payload. The repository decides validity atomically; this method only
// translates ciphertext back into the payload document.
func (l *linkUseCase) Resolve(ctx context.Context, plainToken string) (*linksDomain.RegulatoryUpdate, error) {
	tokenHash := l.tokenGenerator.Hash(plainToken)

	link, err := l.linkRepo.Consume(ctx, tokenHash, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	plaintext, err := l.payloadCipher.Decrypt(ctx, link.Ciphertext)
	if err != nil {
		return nil, err
	}

	var payload linksDomain.RegulatoryUpdate
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return nil, err
	}

	return &payload, nil
}

// Revoke deletes the link for the presented token. Idempotent: revoking a
// token that never existed or was already swept succeeds.
func (l *linkUseCase) Revoke(ctx context.Context, plainToken string) error {
	return l.linkRepo.Delete(ctx, l.tokenGenerator.Hash(plainToken))
}

// Sweep removes every link whose expiry has passed.
func (l *linkUseCase) Sweep(ctx context.Context) (int64, error) {
	return l.linkRepo.DeleteExpired(ctx, time.Now().UTC())
}

// NewLinkUseCase creates a new link use case instance with the provided
// dependencies. basePath is the landing page path the issued link points at,
// e.g. "/voice-call".
func NewLinkUseCase(
	linkRepo LinkRepository,
	tokenGenerator service.TokenGenerator,
	payloadCipher service.PayloadCipher,
	basePath string,
) LinkUseCase {
	return &linkUseCase{
		linkRepo:       linkRepo,
		tokenGenerator: tokenGenerator,
		payloadCipher:  payloadCipher,
		basePath:       basePath,
	}
}
