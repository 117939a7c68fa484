package usecase

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper periodically removes expired links from the repository. Sweeping is
// housekeeping only: Consume rejects expired links whether or not a sweep has
// run, so the interval trades storage footprint against query load.
type Sweeper struct {
	useCase  LinkUseCase
	interval time.Duration
	logger   *slog.Logger
}

// NewSweeper creates a sweeper that runs at the given interval.
func NewSweeper(useCase LinkUseCase, interval time.Duration, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		useCase:  useCase,
		interval: interval,
		logger:   logger,
	}
}

// Start runs the sweep loop until the context is cancelled. A failed sweep is
// logged and retried on the next tick.
func (s *Sweeper) Start(ctx context.Context) error {
	if s.logger != nil {
		s.logger.Info("starting expired-link sweeper",
			slog.Duration("interval", s.interval),
		)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if s.logger != nil {
				s.logger.Info("stopping expired-link sweeper")
			}
			return ctx.Err()
		case <-ticker.C:
			removed, err := s.useCase.Sweep(ctx)
			if err != nil {
				if s.logger != nil {
					s.logger.Error("sweep failed", slog.Any("error", err))
				}
				continue
			}
			if removed > 0 && s.logger != nil {
				s.logger.Info("swept expired links", slog.Int64("removed", removed))
			}
		}
	}
}
