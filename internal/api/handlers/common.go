package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"docsense/internal/api/middleware"
	"docsense/internal/api/validation"
	"docsense/internal/exporter"
	"docsense/internal/extraction"
	"docsense/internal/flow"
	"docsense/internal/logging"
	"docsense/internal/ocr"
	"docsense/internal/suggest"
	"docsense/pkg/models"
	"docsense/pkg/utils"
)

var requestValidator = validation.New()

func requestID(c echo.Context) string {
	if id, ok := c.Get(middleware.RequestIDKey).(string); ok {
		return id
	}
	return ""
}

func loggerFor(c echo.Context) logging.Logger {
	if l, ok := c.Get(middleware.LoggerKey).(logging.Logger); ok {
		return l
	}
	return logging.GetGlobalLogger()
}

// bind decodes and validates the body into req
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return utils.NewBadRequestError("Invalid request body: " + err.Error())
	}
	if err := requestValidator.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return utils.NewValidationError(verrs.Error())
		}
		return utils.NewValidationError(err.Error())
	}
	return nil
}

// toCustomError maps package errors onto HTTP errors
func toCustomError(err error) *utils.CustomError {
	switch {
	case errors.Is(err, flow.ErrFlowNotFound):
		return utils.NewNotFoundError("Flow not found")
	case errors.Is(err, flow.ErrNoDocument), errors.Is(err, flow.ErrUnknownSuggestion):
		return &utils.CustomError{Code: http.StatusNotFound, Message: "Not found", Detail: err.Error()}
	case errors.Is(err, flow.ErrInvalidTransition):
		return utils.NewConflictError("Invalid flow transition", err.Error())
	case errors.Is(err, flow.ErrCannotProceed):
		return utils.NewConflictError("Flow cannot complete", err.Error())
	case errors.Is(err, suggest.ErrUnknownField), errors.Is(err, suggest.ErrValueMismatch), errors.Is(err, models.ErrInvalidFieldPath):
		return utils.NewValidationError(err.Error())
	case errors.Is(err, extraction.ErrEmptyInput), errors.Is(err, ocr.ErrEmptyFile):
		return utils.NewBadRequestError(err.Error())
	case errors.Is(err, ocr.ErrFileTooLarge):
		return &utils.CustomError{Code: http.StatusRequestEntityTooLarge, Message: "File too large", Detail: err.Error()}
	case errors.Is(err, ocr.ErrUnsupportedType):
		return &utils.CustomError{Code: http.StatusUnsupportedMediaType, Message: "Unsupported file type", Detail: err.Error()}
	case errors.Is(err, ocr.ErrNotConfigured):
		return &utils.CustomError{Code: http.StatusServiceUnavailable, Message: "OCR is not configured"}
	case errors.Is(err, ocr.ErrOCRFailed):
		return utils.NewOCRError(err.Error())
	case errors.Is(err, exporter.ErrStorageConfig):
		return &utils.CustomError{Code: http.StatusServiceUnavailable, Message: "Report storage is not configured"}
	case errors.Is(err, exporter.ErrUpload):
		return &utils.CustomError{Code: http.StatusBadGateway, Message: "Report upload failed", Detail: err.Error()}
	}
	return utils.ToCustomError(err)
}

// respondError writes err as an ErrorResponse
func respondError(c echo.Context, err error) error {
	custom := toCustomError(err)
	fields := map[string]interface{}{
		"status": custom.Code,
		"error":  err.Error(),
	}
	if custom.Code >= http.StatusInternalServerError {
		loggerFor(c).Error("request failed", fields)
	} else {
		loggerFor(c).Warn("request rejected", fields)
	}

	return c.JSON(custom.Code, models.ErrorResponse{
		Error:     errorCode(custom.Code),
		Message:   custom.Message,
		Detail:    custom.Detail,
		Retryable: utils.IsRetryable(err),
		RequestID: requestID(c),
		Timestamp: time.Now(),
	})
}

func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "invalid_request"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	case http.StatusRequestEntityTooLarge:
		return "request_too_large"
	case http.StatusUnsupportedMediaType:
		return "unsupported_media_type"
	case http.StatusUnprocessableEntity:
		return "unprocessable"
	case http.StatusBadGateway:
		return "upstream_failed"
	case http.StatusServiceUnavailable:
		return "unavailable"
	}
	return "internal_error"
}
