package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/regwatch/securelink/internal/errors"
	linksDomain "github.com/regwatch/securelink/internal/links/domain"
	"github.com/regwatch/securelink/internal/links/repository"
	"github.com/regwatch/securelink/internal/links/service"
)

const testKeeperURL = "base64key://smGbjm71Nxd1Ig5FS0wj9SlbzAIrnolCz9bQQ6uAhl4="

func newTestUseCase(t *testing.T) (LinkUseCase, *repository.MemoryLinkRepository) {
	t.Helper()

	keeper, err := service.OpenKeeper(context.Background(), testKeeperURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = keeper.Close() })

	repo := repository.NewMemoryLinkRepository()
	uc := NewLinkUseCase(repo, service.NewTokenGenerator(), service.NewPayloadCipher(keeper), "/voice-call")
	return uc, repo
}

func testPayload() *linksDomain.RegulatoryUpdate {
	return &linksDomain.RegulatoryUpdate{
		UserID:          "usr-001",
		UserName:        "Dana Whitfield",
		CompanyName:     "Meridian Logistics",
		RegulationType:  "emissions",
		RegulationTitle: "Fleet Emissions Reporting Rule",
		EffectiveDate:   "2026-10-01",
		Deadline:        "2026-12-31",
		Summary:         "New quarterly reporting requirements for fleet operators.",
		ActionRequired:  "Register fleet vehicles in the compliance portal.",
		ImpactLevel:     linksDomain.ImpactLevelHigh,
	}
}

func TestLinkUseCase_Issue(t *testing.T) {
	ctx := context.Background()
	uc, repo := newTestUseCase(t)

	issued, err := uc.Issue(ctx, testPayload(), time.Hour, true)
	require.NoError(t, err)

	assert.NotEmpty(t, issued.Token)
	assert.Equal(t, "/voice-call?token="+issued.Token, issued.Link)
	assert.WithinDuration(t, time.Now().UTC().Add(time.Hour), issued.ExpiresAt, 5*time.Second)
	assert.Equal(t, 1, repo.Len())
}

func TestLinkUseCase_Issue_InvalidTTL(t *testing.T) {
	ctx := context.Background()
	uc, repo := newTestUseCase(t)

	for _, ttl := range []time.Duration{0, -time.Minute} {
		_, err := uc.Issue(ctx, testPayload(), ttl, true)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	}
	assert.Equal(t, 0, repo.Len())
}

func TestLinkUseCase_Issue_InvalidPayload(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCase(t)

	payload := testPayload()
	payload.UserID = ""

	_, err := uc.Issue(ctx, payload, time.Hour, true)
	assert.Error(t, err)
}

func TestLinkUseCase_Issue_PayloadStoredEncrypted(t *testing.T) {
	ctx := context.Background()
	uc, repo := newTestUseCase(t)

	payload := testPayload()
	issued, err := uc.Issue(ctx, payload, time.Hour, true)
	require.NoError(t, err)

	gen := service.NewTokenGenerator()
	link, err := repo.Get(ctx, gen.Hash(issued.Token))
	require.NoError(t, err)

	// The stored record must not leak the briefing in the clear.
	assert.NotContains(t, string(link.Ciphertext), payload.UserName)
	assert.NotContains(t, string(link.Ciphertext), payload.CompanyName)
}

func TestLinkUseCase_Resolve_SingleUse(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCase(t)

	payload := testPayload()
	issued, err := uc.Issue(ctx, payload, time.Hour, true)
	require.NoError(t, err)

	resolved, err := uc.Resolve(ctx, issued.Token)
	require.NoError(t, err)
	assert.Equal(t, payload, resolved)

	// Second resolution of a single-use link reports consumed.
	_, err = uc.Resolve(ctx, issued.Token)
	assert.ErrorIs(t, err, apperrors.ErrConsumed)
}

func TestLinkUseCase_Resolve_MultiUse(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCase(t)

	issued, err := uc.Issue(ctx, testPayload(), time.Hour, false)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := uc.Resolve(ctx, issued.Token)
		require.NoError(t, err)
	}
}

func TestLinkUseCase_Resolve_UnknownToken(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCase(t)

	_, err := uc.Resolve(ctx, strings.Repeat("x", 43))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestLinkUseCase_Revoke(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCase(t)

	issued, err := uc.Issue(ctx, testPayload(), time.Hour, true)
	require.NoError(t, err)

	require.NoError(t, uc.Revoke(ctx, issued.Token))

	_, err = uc.Resolve(ctx, issued.Token)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// Revoking again is a no-op.
	assert.NoError(t, uc.Revoke(ctx, issued.Token))
}

func TestLinkUseCase_Sweep(t *testing.T) {
	ctx := context.Background()
	uc, repo := newTestUseCase(t)

	_, err := uc.Issue(ctx, testPayload(), time.Nanosecond, true)
	require.NoError(t, err)
	_, err = uc.Issue(ctx, testPayload(), time.Hour, true)
	require.NoError(t, err)

	time.Sleep(time.Millisecond)

	removed, err := uc.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	assert.Equal(t, 1, repo.Len())
}
