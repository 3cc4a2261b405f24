package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"docsense/internal/logging"
	"docsense/pkg/models"
	"docsense/pkg/utils"
)

// Context keys set by RequestContext
const (
	RequestIDKey = "request_id"
	LoggerKey    = "logger"
)

// RequestContext tags every request with an id (reusing X-Request-ID when the
// caller sends one), attaches a request-scoped logger and rejects bodies
// larger than maxBody.
func RequestContext(logger logging.Logger, maxBody int64) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			requestID := req.Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = utils.GenerateRequestID()
			}
			c.Set(RequestIDKey, requestID)
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)
			c.Set(LoggerKey, logger.WithField("request_id", requestID))

			if maxBody > 0 && req.ContentLength > maxBody {
				return c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{
					Error:     "request_too_large",
					Message:   "Request body too large",
					RequestID: requestID,
					Timestamp: time.Now(),
				})
			}
			if maxBody > 0 && req.Body != nil {
				req.Body = http.MaxBytesReader(c.Response(), req.Body, maxBody)
			}
			return next(c)
		}
	}
}

// AccessLog writes one structured line per request
func AccessLog(logger logging.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			fields := map[string]interface{}{
				"method":     c.Request().Method,
				"path":       c.Path(),
				"status":     c.Response().Status,
				"elapsed_ms": time.Since(start).Milliseconds(),
			}
			if id, ok := c.Get(RequestIDKey).(string); ok {
				fields["request_id"] = id
			}
			if c.Response().Status >= http.StatusInternalServerError {
				logger.Error("http.request", fields)
			} else {
				logger.Debug("http.request", fields)
			}
			return nil
		}
	}
}
