package api

import (
	"errors"

	"github.com/bilgisen/dashboard/internal/logger"
	"github.com/bilgisen/dashboard/internal/middleware"
	"github.com/bilgisen/dashboard/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
)

// Options configures the dashboard HTTP app
type Options struct {
	Storage       *storage.Storage
	AnalysisRoute string
	Logger        *zerolog.Logger
}

// NewApp builds the fiber app with middleware and routes installed
func NewApp(opts Options) (*fiber.App, error) {
	if opts.Storage == nil {
		return nil, errors.New("api: storage is required")
	}
	if opts.AnalysisRoute == "" {
		return nil, errors.New("api: analysis route is required")
	}
	if opts.Logger == nil {
		opts.Logger = logger.Get()
	}

	app := fiber.New(fiber.Config{
		// Routes match the request path exactly.
		CaseSensitive:         true,
		StrictRouting:         true,
		UnescapePath:          true,
		DisableStartupMessage: true,
		ErrorHandler:          middleware.NewErrorHandler(opts.Logger),
	})

	SetupRoutes(app, NewHandlers(opts.Storage, opts.Logger), opts.AnalysisRoute, opts.Logger)
	return app, nil
}

// SetupRoutes configures all the routes for the application.
// Routes match on the decoded path only, so a query string such as
// "/app.js?v=1" still reaches the asset.
func SetupRoutes(app *fiber.App, handlers *Handlers, analysisRoute string, log *zerolog.Logger) {
	// Middleware
	app.Use(middleware.RequestLogger(log))
	app.Use(recover.New())

	// AI analysis artifact, any method
	app.All(analysisRoute, handlers.ServeAnalysis)

	// Everything else is a dashboard asset or an SPA route
	app.Use(handlers.ServeStatic)
}
