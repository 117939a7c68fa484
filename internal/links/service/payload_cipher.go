package service

import (
	"context"
	"fmt"

	"gocloud.dev/secrets"

	apperrors "github.com/regwatch/securelink/internal/errors"

	// Register keeper drivers: local symmetric keys and Vault transit.
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// keeperPayloadCipher implements PayloadCipher on top of a gocloud.dev keeper.
// The briefing carries user identity, so it is encrypted before any storage
// backend (including the in-memory one) sees it.
type keeperPayloadCipher struct {
	keeper *secrets.Keeper
}

// Encrypt encrypts a marshaled payload document.
func (c *keeperPayloadCipher) Encrypt(ctx context.Context, plaintext []byte) ([]byte, error) {
	ciphertext, err := c.keeper.Encrypt(ctx, plaintext)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to encrypt payload")
	}
	return ciphertext, nil
}

// Decrypt decrypts a stored payload document.
func (c *keeperPayloadCipher) Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error) {
	plaintext, err := c.keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to decrypt payload")
	}
	return plaintext, nil
}

// NewPayloadCipher creates a PayloadCipher backed by the given keeper.
func NewPayloadCipher(keeper *secrets.Keeper) PayloadCipher {
	return &keeperPayloadCipher{keeper: keeper}
}

// OpenKeeper opens a secrets keeper for the configured URL.
// Supports base64key:// (local symmetric key) and hashivault:// URLs.
func OpenKeeper(ctx context.Context, keeperURL string) (*secrets.Keeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keeperURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open secrets keeper: %w", err)
	}
	return keeper, nil
}
