package app

import (
	"fmt"

	"github.com/regwatch/securelink/internal/http"
	linksHTTP "github.com/regwatch/securelink/internal/links/http"
	linksRepository "github.com/regwatch/securelink/internal/links/repository"
	linksService "github.com/regwatch/securelink/internal/links/service"
	linksUseCase "github.com/regwatch/securelink/internal/links/usecase"
)

// LinkRepository returns the link repository for the configured storage backend.
func (c *Container) LinkRepository() (linksUseCase.LinkRepository, error) {
	var err error
	c.linkRepositoryInit.Do(func() {
		c.linkRepository, err = c.initLinkRepository()
		if err != nil {
			c.initErrors["linkRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["linkRepository"]; exists {
		return nil, storedErr
	}
	return c.linkRepository, nil
}

// LinkUseCase returns the link use case.
func (c *Container) LinkUseCase() (linksUseCase.LinkUseCase, error) {
	var err error
	c.linkUseCaseInit.Do(func() {
		c.linkUseCase, err = c.initLinkUseCase()
		if err != nil {
			c.initErrors["linkUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["linkUseCase"]; exists {
		return nil, storedErr
	}
	return c.linkUseCase, nil
}

// LinkHandler returns the HTTP handler for link operations.
func (c *Container) LinkHandler() (*linksHTTP.LinkHandler, error) {
	var err error
	c.linkHandlerInit.Do(func() {
		c.linkHandler, err = c.initLinkHandler()
		if err != nil {
			c.initErrors["linkHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["linkHandler"]; exists {
		return nil, storedErr
	}
	return c.linkHandler, nil
}

// Sweeper returns the background sweeper for expired links.
func (c *Container) Sweeper() (*linksUseCase.Sweeper, error) {
	var err error
	c.sweeperInit.Do(func() {
		c.sweeper, err = c.initSweeper()
		if err != nil {
			c.initErrors["sweeper"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sweeper"]; exists {
		return nil, storedErr
	}
	return c.sweeper, nil
}

// HTTPServer returns the HTTP server instance with all routes registered.
func (c *Container) HTTPServer() (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// initLinkRepository creates the link repository based on the storage backend.
func (c *Container) initLinkRepository() (linksUseCase.LinkRepository, error) {
	switch c.config.LinkStoreBackend {
	case "memory":
		return linksRepository.NewMemoryLinkRepository(), nil
	case "postgres":
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for link repository: %w", err)
		}
		return linksRepository.NewPostgreSQLLinkRepository(db), nil
	case "mysql":
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for link repository: %w", err)
		}
		return linksRepository.NewMySQLLinkRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", c.config.LinkStoreBackend)
	}
}

// initLinkUseCase creates the link use case with all its dependencies.
func (c *Container) initLinkUseCase() (linksUseCase.LinkUseCase, error) {
	linkRepo, err := c.LinkRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get link repository for link use case: %w", err)
	}

	keeper, err := c.Keeper()
	if err != nil {
		return nil, fmt.Errorf("failed to get keeper for link use case: %w", err)
	}

	baseUseCase := linksUseCase.NewLinkUseCase(
		linkRepo,
		linksService.NewTokenGenerator(),
		linksService.NewPayloadCipher(keeper),
		c.config.LinkBasePath,
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for link use case: %w", err)
		}
		return linksUseCase.NewLinkUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initLinkHandler creates the link HTTP handler with all its dependencies.
func (c *Container) initLinkHandler() (*linksHTTP.LinkHandler, error) {
	linkUseCase, err := c.LinkUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get link use case for link handler: %w", err)
	}

	return linksHTTP.NewLinkHandler(
		linkUseCase,
		c.config.LinkDefaultTTL,
		c.config.LinkSingleUse,
		c.Logger(),
	), nil
}

// initSweeper creates the background sweeper.
func (c *Container) initSweeper() (*linksUseCase.Sweeper, error) {
	linkUseCase, err := c.LinkUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get link use case for sweeper: %w", err)
	}

	return linksUseCase.NewSweeper(linkUseCase, c.config.LinkSweepInterval, c.Logger()), nil
}

// initHTTPServer creates the HTTP server and registers the route table.
func (c *Container) initHTTPServer() (*http.Server, error) {
	linkHandler, err := c.LinkHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get link handler for http server: %w", err)
	}

	// The memory backend runs without a database; readiness adapts.
	var db = c.db
	if c.config.LinkStoreBackend != "memory" {
		db, err = c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for http server: %w", err)
		}
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, c.Logger())

	routerConfig := http.RouterConfig{
		LinkHandler:      linkHandler,
		CORSEnabled:      c.config.CORSEnabled,
		CORSAllowOrigins: c.config.CORSAllowOrigins,
		RateLimitEnabled: c.config.RateLimitEnabled,
		RateLimitRPS:     c.config.RateLimitRequestsPerSec,
		RateLimitBurst:   c.config.RateLimitBurst,
	}

	if c.config.MetricsEnabled {
		provider, err := c.MetricsProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
		}
		routerConfig.MeterProvider = provider.MeterProvider()
		routerConfig.MetricsNamespace = c.config.MetricsNamespace
	}

	server.SetupRouter(routerConfig)
	return server, nil
}
