package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	httpapi "github.com/i474232898/bike-rental-dashboard/internal/api/http"
	"github.com/i474232898/bike-rental-dashboard/internal/charts"
	"github.com/i474232898/bike-rental-dashboard/internal/config"
	"github.com/i474232898/bike-rental-dashboard/internal/rental"
	"github.com/i474232898/bike-rental-dashboard/internal/rental/sources"
	"github.com/i474232898/bike-rental-dashboard/internal/scheduler"
	"github.com/i474232898/bike-rental-dashboard/internal/store"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for URL dataset sources.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	memStore := store.NewMemoryStore()
	service := rental.NewService(
		memStore,
		sources.New(cfg.DayDataPath, httpClient),
		sources.New(cfg.HourDataPath, httpClient),
		cfg.RFMPreviewRows,
	)

	// Both tables must load before serving; a broken file aborts startup.
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 2*time.Minute)
	err = service.Reload(loadCtx)
	cancelLoad()
	if err != nil {
		log.Fatalf("failed to load dataset: %v", err)
	}

	sched := scheduler.New(cfg.ReloadInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "bike-rental-dashboard",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		Views:                 httpapi.NewViews(),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "bike-rental-dashboard",
		})
	})

	httpapi.RegisterRoutes(app, service, charts.NewRenderer(cfg.HistogramBins), cfg.BannerURL)

	go func() {
		log.Infof("listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Errorf("fiber server stopped: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorf("error during shutdown: %v", err)
	}
}
