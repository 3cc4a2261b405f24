package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"docsense/internal/exporter"
	"docsense/internal/flow"
	"docsense/internal/report"
	"docsense/internal/suggest"
	"docsense/pkg/models"
	"docsense/pkg/utils"
)

// ExtractHandler handles POST /api/v1/extract
func ExtractHandler(extractor flow.Extractor) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.ExtractRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		docType, _ := models.ParseDocumentType(req.Type)

		result, err := extractor.Extract(c.Request().Context(), req.Text, docType)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, models.ExtractResponse{
			Document:   result.Document,
			Confidence: result.Confidence,
			Cached:     result.Cached,
			RequestID:  requestID(c),
		})
	}
}

func decodeDocument(c echo.Context) (models.Document, error) {
	var req models.DocumentRequest
	if err := bind(c, &req); err != nil {
		return models.Document{}, err
	}
	return decode(req.Type, req.Document)
}

func decode(docType string, raw []byte) (models.Document, error) {
	doc, err := models.DecodeDocument(docType, raw)
	if err != nil {
		return models.Document{}, utils.NewValidationError(err.Error())
	}
	return doc, nil
}

// ValidateHandler handles POST /api/v1/validate
func ValidateHandler(deps flow.Deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		doc, err := decodeDocument(c)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, deps.Validator.Validate(doc))
	}
}

// AnalyzeHandler handles POST /api/v1/analyze
func AnalyzeHandler(deps flow.Deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		doc, err := decodeDocument(c)
		if err != nil {
			return respondError(c, err)
		}
		v := deps.Validator.Validate(doc)
		return c.JSON(http.StatusOK, models.AnalyzeResponse{
			Validation: v,
			Analysis:   deps.Analyzer.Analyze(doc, v),
		})
	}
}

// SuggestHandler handles POST /api/v1/suggest
func SuggestHandler(deps flow.Deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		doc, err := decodeDocument(c)
		if err != nil {
			return respondError(c, err)
		}
		v := deps.Validator.Validate(doc)
		m := deps.Analyzer.Analyze(doc, v)
		return c.JSON(http.StatusOK, models.SuggestResponse{Suggestions: deps.Engine.Suggest(doc, v, m)})
	}
}

// ApplySuggestionHandler handles POST /api/v1/suggest/apply
func ApplySuggestionHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.ApplySuggestionRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		doc, err := decode(req.Type, req.Document)
		if err != nil {
			return respondError(c, err)
		}
		updated, err := suggest.Apply(doc, req.Suggestion)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, models.ApplyResponse{Document: updated})
	}
}

// ReportHandler handles POST /api/v1/report and streams an XLSX workbook.
// With ?archive=true the workbook is uploaded and its URL returned instead.
func ReportHandler(deps flow.Deps, writer *report.Writer, archive exporter.Uploader) echo.HandlerFunc {
	return func(c echo.Context) error {
		doc, err := decodeDocument(c)
		if err != nil {
			return respondError(c, err)
		}
		v := deps.Validator.Validate(doc)
		m := deps.Analyzer.Analyze(doc, v)
		s := deps.Engine.Suggest(doc, v, m)

		now := time.Now()
		data, err := writer.XLSX(report.Input{
			Type:        doc.Type,
			Title:       documentTitle(doc),
			Validation:  v,
			Analysis:    m,
			Suggestions: s,
			GeneratedAt: now,
		})
		if err != nil {
			return respondError(c, err)
		}

		if c.QueryParam("archive") == "true" {
			if archive == nil {
				return respondError(c, exporter.ErrStorageConfig)
			}
			key := exporter.ReportKey(doc.Type, now)
			url, err := archive.Upload(c.Request().Context(), key, xlsxMIME, data)
			if err != nil {
				return respondError(c, err)
			}
			return c.JSON(http.StatusCreated, models.ReportResponse{URL: url, Key: key, RequestID: requestID(c)})
		}

		name := fmt.Sprintf("%s-report-%s.xlsx", doc.Type, now.UTC().Format("20060102-150405"))
		c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
		return c.Blob(http.StatusOK, xlsxMIME, data)
	}
}

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func documentTitle(doc models.Document) string {
	if doc.JD != nil {
		return doc.JD.JobTitle
	}
	if doc.CV != nil {
		return doc.CV.PersonalInfo.Name
	}
	return ""
}
