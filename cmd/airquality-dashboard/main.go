package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/broadway-air/airquality-dashboard/internal/airquality"
	httpapi "github.com/broadway-air/airquality-dashboard/internal/api/http"
	"github.com/broadway-air/airquality-dashboard/internal/config"
	"github.com/broadway-air/airquality-dashboard/internal/loader"
	"github.com/broadway-air/airquality-dashboard/internal/scheduler"
	"github.com/broadway-air/airquality-dashboard/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Sensor location table: built-in defaults unless a file is configured.
	sensors := airquality.DefaultSensorTable()
	if cfg.SensorFile != "" {
		sensors, err = airquality.LoadSensorTable(cfg.SensorFile)
		if err != nil {
			log.Fatalf("failed to load sensor table: %v", err)
		}
	}

	// The measurement export is loaded once; a missing or unreadable file is
	// fatal to startup.
	readings, err := loader.ReadFile(cfg.DataFile)
	if err != nil {
		log.Fatalf("failed to load measurement data: %v", err)
	}

	memStore := store.NewMemoryStore()
	memStore.Replace(readings)

	overview := airquality.BuildOverview(readings, sensors)
	log.Printf("loaded %d readings from %d sensors (%s to %s)",
		overview.TotalRecords, overview.SensorCount,
		overview.FirstReading.Format("2006-01-02"), overview.LastReading.Format("2006-01-02"))
	if overview.UnknownSensorRecords > 0 {
		log.Printf("data quality: %d readings reference sensors missing from the location table", overview.UnknownSensorRecords)
	}

	sizes := airquality.DefaultSizeScale()
	sizes.Base = cfg.MarkerBaseSize
	sizes.Range = cfg.MarkerSizeRange

	// Core service over the store and reference tables.
	service := airquality.NewService(memStore, sensors, airquality.DefaultBands(), sizes)

	// Optional scheduled re-read of the export file.
	refresher := scheduler.New(cfg.RefreshInterval, memStore, func() ([]airquality.Reading, error) {
		return loader.ReadFile(cfg.DataFile)
	})
	if err := refresher.Start(); err != nil {
		log.Fatalf("failed to start refresh scheduler: %v", err)
	}
	defer refresher.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "airquality-dashboard",
		DisableStartupMessage: true,
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
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

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: cfg.AllowedOrigins != "*",
	}))

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "airquality-dashboard",
		})
	})

	// API routes behind the password gate.
	auth := httpapi.NewAuth(cfg.Password)
	httpapi.RegisterRoutes(app, service, auth)

	// Start server with graceful shutdown
	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
