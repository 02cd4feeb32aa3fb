package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/weather-lookup/internal/api/http"
	"github.com/i474232898/weather-lookup/internal/app"
	"github.com/i474232898/weather-lookup/internal/config"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Printf("error closing history store: %v", err)
		}
	}()

	// Weather requests carry no server-side deadline, so no write timeout either.
	server := fiber.New(fiber.Config{
		AppName:               "weather-lookup",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	server.Use(logger.New())
	server.Use(recover.New())

	server.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-lookup",
		})
	})

	httpapi.RegisterRoutes(server, a.Controller, a.Service)

	go func() {
		log.Printf("INFO: listening on :%s", cfg.Port)
		if err := server.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
