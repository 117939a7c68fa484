package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/regwatch/securelink/internal/app"
	"github.com/regwatch/securelink/internal/config"
)

// RunSweepLinks deletes expired links once and exits. Intended for cron-style
// operation against the SQL backends when the long-running sweeper is not
// wanted.
func RunSweepLinks(ctx context.Context) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)
	logger := container.Logger()

	defer closeContainer(container, logger)

	linkUseCase, err := container.LinkUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize link use case: %w", err)
	}

	removed, err := linkUseCase.Sweep(ctx)
	if err != nil {
		return fmt.Errorf("failed to sweep expired links: %w", err)
	}

	logger.Info("swept expired links", slog.Int64("removed", removed))
	return nil
}
