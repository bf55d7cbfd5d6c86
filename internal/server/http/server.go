package httpserver

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"itemd/internal/config"
)

// Server wraps Fiber app and configuration.
type Server struct {
	app *fiber.App
	cfg *config.Config
}

// New builds a Fiber server with common middlewares and the item routes.
func New(cfg *config.Config, svc ItemService) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "itemd",
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSec) * time.Second,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: corsOrigins(cfg.Server.CORSOrigins)}))
	app.Use(requestID())

	RegisterRoutes(app, svc, cfg)

	return &Server{app: app, cfg: cfg}
}

// Start runs Fiber server and handles graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	addr := s.cfg.Server.Address()
	log.Printf("[itemd] listening on %s", addr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listen(addr)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(s.cfg.Server.ShutdownTimeoutSec)*time.Second)
		defer cancel()
		return s.app.ShutdownWithContext(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func corsOrigins(origins string) string {
	if origins == "" {
		return "*"
	}
	return origins
}
