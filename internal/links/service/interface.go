// Package service provides token generation and payload encryption for secure links.
package service

import (
	"context"
)

// TokenGenerator produces bearer tokens for secure links.
type TokenGenerator interface {
	// Generate returns a new unguessable token and its storage hash.
	Generate() (plainToken string, tokenHash string, err error)
	// Hash derives the storage hash for a previously issued plain token.
	Hash(plainToken string) string
}

// PayloadCipher encrypts payload documents before they reach a storage backend.
type PayloadCipher interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
}
