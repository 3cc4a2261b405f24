package routes

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"docsense/internal/api/handlers"
	"docsense/internal/api/middleware"
	"docsense/internal/config"
	"docsense/internal/exporter"
	"docsense/internal/flow"
	"docsense/internal/logging"
	"docsense/internal/ocr"
	"docsense/internal/report"
)

// Services are the collaborators the routes hand to handlers
type Services struct {
	Deps    flow.Deps
	Store   *flow.Store
	OCR     *ocr.Client
	Report  *report.Writer
	Archive exporter.Uploader
	Logger  logging.Logger
	Checks  map[string]handlers.Check
}

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, svc Services) {
	logger := svc.Logger
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.RequestContext(logger, cfg.Server.MaxBodyBytes))
	e.Use(middleware.AccessLog(logger))
	e.Use(middleware.CORSConfig(cfg.Server.AllowedOrigins))
	// Extraction and OCR wait on collaborators; everything else is local work
	e.Use(middleware.SelectiveTimeoutConfig(cfg.Server.ReadTimeout, 2*time.Minute))

	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler(svc.Checks))
		health.GET("/live", handlers.LivenessHandler)
	}

	v1 := e.Group("/api/v1")
	{
		v1.POST("/extract", handlers.ExtractHandler(svc.Deps.Extractor))
		v1.POST("/validate", handlers.ValidateHandler(svc.Deps))
		v1.POST("/analyze", handlers.AnalyzeHandler(svc.Deps))
		v1.POST("/suggest", handlers.SuggestHandler(svc.Deps))
		v1.POST("/suggest/apply", handlers.ApplySuggestionHandler())
		v1.POST("/report", handlers.ReportHandler(svc.Deps, svc.Report, svc.Archive))

		flows := v1.Group("/flows")
		{
			flows.POST("", handlers.CreateFlowHandler(svc.Store, svc.Deps))
			flows.GET("/:id", handlers.GetFlowHandler(svc.Store))
			flows.DELETE("/:id", handlers.DeleteFlowHandler(svc.Store))
			flows.POST("/:id/upload", handlers.UploadHandler(svc.Store, svc.OCR))
			flows.PUT("/:id/documents/:type", handlers.EditDocumentHandler(svc.Store))
			flows.POST("/:id/documents/:type/suggestions/:sid", handlers.ApplyFlowSuggestionHandler(svc.Store))
			flows.POST("/:id/proceed", handlers.ProceedHandler(svc.Store))
			flows.POST("/:id/complete", handlers.CompleteHandler(svc.Store))
			flows.POST("/:id/retry", handlers.RetryHandler(svc.Store))
		}
	}

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"service": "docsense",
			"version": handlers.Version,
			"status":  "running",
		})
	})
}
