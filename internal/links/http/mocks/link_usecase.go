// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	linksDomain "github.com/regwatch/securelink/internal/links/domain"
	linksUseCase "github.com/regwatch/securelink/internal/links/usecase"
)

// MockLinkUseCase is a mock implementation of LinkUseCase for testing.
type MockLinkUseCase struct {
	mock.Mock
}

// Issue mocks the Issue method of LinkUseCase.
func (m *MockLinkUseCase) Issue(
	ctx context.Context,
	payload *linksDomain.RegulatoryUpdate,
	ttl time.Duration,
	singleUse bool,
) (*linksUseCase.IssuedLink, error) {
	args := m.Called(ctx, payload, ttl, singleUse)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*linksUseCase.IssuedLink), args.Error(1)
}

// Resolve mocks the Resolve method of LinkUseCase.
func (m *MockLinkUseCase) Resolve(
	ctx context.Context,
	plainToken string,
) (*linksDomain.RegulatoryUpdate, error) {
	args := m.Called(ctx, plainToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*linksDomain.RegulatoryUpdate), args.Error(1)
}

// Revoke mocks the Revoke method of LinkUseCase.
func (m *MockLinkUseCase) Revoke(ctx context.Context, plainToken string) error {
	args := m.Called(ctx, plainToken)
	return args.Error(0)
}

// Sweep mocks the Sweep method of LinkUseCase.
func (m *MockLinkUseCase) Sweep(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
