package server

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Config holds configuration for the status HTTP endpoint.
type Config struct {
	// Enabled toggles the endpoint.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// Port is the port where the endpoint will listen.
	Port string `mapstructure:"port" default:"8080"`
}

// Status is the snapshot served by /status.
type Status struct {
	// Cursor is the consumer's current feed position.
	Cursor string `json:"cursor"`
	// QueueDepth is the number of pending transfer jobs.
	QueueDepth int `json:"queue_depth"`
}

// StatusSource supplies the live worker state for the endpoint.
type StatusSource interface {
	Cursor() string
	QueueLen() int
}

// New creates the fiber app serving the health and status routes.
func New(source StatusSource) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true, // The worker logs its own startup message
	})

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	app.Get("/status", func(c *fiber.Ctx) error {
		return c.JSON(Status{
			Cursor:     source.Cursor(),
			QueueDepth: source.QueueLen(),
		})
	})

	return app
}

// Listen starts the endpoint in its own goroutine.
func Listen(app *fiber.App, cfg Config, logger *zap.Logger) {
	go func() {
		logger.Info("Starting status endpoint", zap.String("port", cfg.Port))
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Error("Status endpoint failed", zap.Error(err))
		}
	}()
}
