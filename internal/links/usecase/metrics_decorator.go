package usecase

import (
	"context"
	"time"

	linksDomain "github.com/regwatch/securelink/internal/links/domain"
	"github.com/regwatch/securelink/internal/metrics"
)

// linkUseCaseWithMetrics decorates LinkUseCase with metrics instrumentation.
type linkUseCaseWithMetrics struct {
	next    LinkUseCase
	metrics metrics.BusinessMetrics
}

// NewLinkUseCaseWithMetrics wraps a LinkUseCase with metrics recording.
func NewLinkUseCaseWithMetrics(useCase LinkUseCase, m metrics.BusinessMetrics) LinkUseCase {
	return &linkUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Issue records metrics for link issuance.
func (l *linkUseCaseWithMetrics) Issue(
	ctx context.Context,
	payload *linksDomain.RegulatoryUpdate,
	ttl time.Duration,
	singleUse bool,
) (*IssuedLink, error) {
	start := time.Now()
	issued, err := l.next.Issue(ctx, payload, ttl, singleUse)

	status := "success"
	if err != nil {
		status = "error"
	}

	l.metrics.RecordOperation(ctx, "links", "link_issue", status)
	l.metrics.RecordDuration(ctx, "links", "link_issue", time.Since(start), status)

	return issued, err
}

// Resolve records metrics for link resolution.
func (l *linkUseCaseWithMetrics) Resolve(
	ctx context.Context,
	plainToken string,
) (*linksDomain.RegulatoryUpdate, error) {
	start := time.Now()
	payload, err := l.next.Resolve(ctx, plainToken)

	status := "success"
	if err != nil {
		status = "error"
	}

	l.metrics.RecordOperation(ctx, "links", "link_resolve", status)
	l.metrics.RecordDuration(ctx, "links", "link_resolve", time.Since(start), status)

	return payload, err
}

// Revoke records metrics for link revocation.
func (l *linkUseCaseWithMetrics) Revoke(ctx context.Context, plainToken string) error {
	start := time.Now()
	err := l.next.Revoke(ctx, plainToken)

	status := "success"
	if err != nil {
		status = "error"
	}

	l.metrics.RecordOperation(ctx, "links", "link_revoke", status)
	l.metrics.RecordDuration(ctx, "links", "link_revoke", time.Since(start), status)

	return err
}

// Sweep records metrics for expired-link sweeps.
func (l *linkUseCaseWithMetrics) Sweep(ctx context.Context) (int64, error) {
	start := time.Now()
	removed, err := l.next.Sweep(ctx)

	status := "success"
	if err != nil {
		status = "error"
	}

	l.metrics.RecordOperation(ctx, "links", "link_sweep", status)
	l.metrics.RecordDuration(ctx, "links", "link_sweep", time.Since(start), status)

	return removed, err
}
