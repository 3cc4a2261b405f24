package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"docsense/internal/api/handlers"
	"docsense/internal/api/routes"
	"docsense/internal/config"
	"docsense/internal/exporter"
	"docsense/internal/extraction"
	"docsense/internal/flow"
	"docsense/internal/grpc/server"
	"docsense/internal/llm"
	"docsense/internal/logging"
	"docsense/internal/mux"
	"docsense/internal/ocr"
	"docsense/internal/report"
	"docsense/pkg/utils"
)

func main() {
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.CloseLogging()
	logger := logging.GetGlobalLogger()
	logger.Info("Starting docsense", map[string]interface{}{"version": handlers.Version})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	llmManager := llm.NewManager(cfg)
	if err := llmManager.Start(ctx); err != nil {
		logger.Fatal("Failed to start LLM manager", map[string]interface{}{"error": err.Error()})
	}
	defer llmManager.Stop()

	checks := map[string]handlers.Check{"llm": llmManager.CheckHealth}
	opts := []extraction.Option{extraction.WithProviderName(llmManager.GetProviderName())}
	if cfg.Redis.Enabled {
		redisClient := utils.NewRedisClient(cfg)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx); err != nil {
			// Extraction still works uncached; readiness reports the outage
			logger.Warn("Redis unavailable at startup", map[string]interface{}{"error": err.Error()})
		}
		opts = append(opts, extraction.WithCache(extraction.NewRedisCache(redisClient)))
		checks["redis"] = redisClient.IsHealthy
	}

	coordinator := extraction.NewCoordinator(llmManager, cfg.Policy, logger, opts...)
	store := flow.NewStore(cfg.Flows.SessionTTL, cfg.Flows.CleanupInterval, logger)
	defer store.Close()

	intake := ocr.NewClient(ocr.Config{
		ServiceURL:      cfg.OCR.ServiceURL,
		APIKey:          cfg.OCR.APIKey,
		Timeout:         cfg.OCR.Timeout,
		MaxFileSize:     cfg.OCR.MaxFileSize,
		PreferTextLayer: cfg.OCR.PreferTextLayer,
	}, nil, logger)

	var archive exporter.Uploader
	if exporter.Configured(cfg) {
		spaces, err := exporter.NewSpacesClient(cfg, logger)
		if err != nil {
			logger.Fatal("Failed to configure report storage", map[string]interface{}{"error": err.Error()})
		}
		archive = spaces
		checks["storage"] = spaces.CheckHealth
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	routes.SetupRoutes(e, cfg, routes.Services{
		Deps:    flow.NewDeps(coordinator, cfg.Policy),
		Store:   store,
		OCR:     intake,
		Report:  report.NewWriter(logger),
		Archive: archive,
		Logger:  logger,
		Checks:  checks,
	})

	grpcServer := server.NewServer(logger)
	go grpcServer.MonitorHealth(ctx, 30*time.Second, llmManager.CheckHealth)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	m := mux.NewMultiplexer(cfg, grpcServer, e, logger)
	if err := m.Start(address); err != nil {
		logger.Fatal("Server failed to start", map[string]interface{}{"error": err.Error()})
	}

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := m.Stop(shutdownCtx); err != nil {
		logger.Error("Error shutting down server", map[string]interface{}{"error": err.Error()})
	}
	logger.Info("Server shutdown complete")
}
