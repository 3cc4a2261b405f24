package models

import "time"

// ExtractResponse is the result of POST /extract
type ExtractResponse struct {
	Document   Document `json:"document"`
	Confidence int      `json:"confidence"`
	Cached     bool     `json:"cached"`
	RequestID  string   `json:"request_id"`
}

// ReportResponse locates an archived report
type ReportResponse struct {
	URL       string `json:"url"`
	Key       string `json:"key"`
	RequestID string `json:"request_id"`
}

// AnalyzeResponse pairs a validation run with its gap analysis
type AnalyzeResponse struct {
	Validation ValidationResult    `json:"validation"`
	Analysis   MissingDataAnalysis `json:"analysis"`
}

// SuggestResponse lists ranked suggestions
type SuggestResponse struct {
	Suggestions []DataSuggestion `json:"suggestions"`
}

// ApplyResponse returns the updated document
type ApplyResponse struct {
	Document Document `json:"document"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Detail    string    `json:"detail,omitempty"`
	Retryable bool      `json:"retryable"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}
