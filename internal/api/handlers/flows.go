package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"docsense/internal/flow"
	"docsense/internal/ocr"
	"docsense/pkg/models"
	"docsense/pkg/utils"
)

// CreateFlowHandler handles POST /api/v1/flows
func CreateFlowHandler(store *flow.Store, deps flow.Deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.CreateFlowRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		mode, _ := flow.ParseMode(req.Mode)
		docType, _ := models.ParseDocumentType(req.Type)

		f, err := flow.New(mode, docType, deps)
		if err != nil {
			return respondError(c, err)
		}
		store.Put(f)

		loggerFor(c).Info("flow.created", map[string]interface{}{
			"flow_id": f.ID(),
			"mode":    string(mode),
			"type":    string(docType),
		})
		return c.JSON(http.StatusCreated, f.Snapshot())
	}
}

// GetFlowHandler handles GET /api/v1/flows/:id
func GetFlowHandler(store *flow.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		snap, err := store.Snapshot(c.Param("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, snap)
	}
}

// DeleteFlowHandler handles DELETE /api/v1/flows/:id
func DeleteFlowHandler(store *flow.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := store.Delete(c.Param("id")); err != nil {
			return respondError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// UploadHandler handles POST /api/v1/flows/:id/upload. The body is either
// JSON {type, text} or a multipart form with a file and a type field.
func UploadHandler(store *flow.Store, intake *ocr.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var docType models.DocumentType
		var text string
		if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
			t, ok := models.ParseDocumentType(c.FormValue("type"))
			if !ok {
				return respondError(c, utils.NewValidationError("type must be cv or jd"))
			}
			fh, err := c.FormFile("file")
			if err != nil {
				return respondError(c, utils.NewBadRequestError("file is required"))
			}
			src, err := fh.Open()
			if err != nil {
				return respondError(c, utils.NewBadRequestError("could not read file"))
			}
			data, err := io.ReadAll(src)
			src.Close()
			if err != nil {
				return respondError(c, utils.NewBadRequestError("could not read file"))
			}

			result, err := intake.Text(ctx, fh.Filename, data)
			if err != nil {
				// recorded on the flow so a later GET shows the retry state
				return respondError(c, store.With(c.Param("id"), func(f *flow.Flow) error {
					return f.Fail(t, intakeError(err))
				}))
			}
			docType, text = t, result.Text
		} else {
			var req models.UploadRequest
			if err := bind(c, &req); err != nil {
				return respondError(c, err)
			}
			docType, _ = models.ParseDocumentType(req.Type)
			text = req.Text
		}

		var snap flow.Snapshot
		err := store.With(c.Param("id"), func(f *flow.Flow) error {
			err := f.Upload(ctx, docType, text)
			snap = f.Snapshot()
			return err
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, snap)
	}
}

// intakeError attaches the user-facing message for an OCR intake failure
func intakeError(err error) *flow.IntakeError {
	e := &flow.IntakeError{Cause: err}
	switch {
	case errors.Is(err, ocr.ErrFileTooLarge):
		e.Message = "The file is too large. Upload a file of at most 10 MB."
	case errors.Is(err, ocr.ErrUnsupportedType):
		e.Message = "Only PDF, JPEG and PNG files are supported."
	case errors.Is(err, ocr.ErrEmptyFile):
		e.Message = "The file is empty."
	case errors.Is(err, ocr.ErrNotConfigured):
		e.Message = "File uploads are unavailable right now. Paste the text instead."
	default:
		e.Message = "Text recognition failed. Please try again."
		e.Transient = true
	}
	return e
}

// EditDocumentHandler handles PUT /api/v1/flows/:id/documents/:type with a
// bare CV or JD object as the body
func EditDocumentHandler(store *flow.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		docType, ok := models.ParseDocumentType(c.Param("type"))
		if !ok {
			return respondError(c, utils.NewValidationError("type must be cv or jd"))
		}
		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return respondError(c, utils.NewBadRequestError("could not read body"))
		}
		doc, err := decode(string(docType), body)
		if err != nil {
			return respondError(c, err)
		}
		return flowAction(c, store, func(f *flow.Flow) error {
			return f.Edit(docType, doc)
		})
	}
}

// ApplyFlowSuggestionHandler handles
// POST /api/v1/flows/:id/documents/:type/suggestions/:sid
func ApplyFlowSuggestionHandler(store *flow.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		docType, ok := models.ParseDocumentType(c.Param("type"))
		if !ok {
			return respondError(c, utils.NewValidationError("type must be cv or jd"))
		}
		return flowAction(c, store, func(f *flow.Flow) error {
			return f.ApplySuggestion(docType, c.Param("sid"))
		})
	}
}

// ProceedHandler handles POST /api/v1/flows/:id/proceed
func ProceedHandler(store *flow.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		return flowAction(c, store, (*flow.Flow).Proceed)
	}
}

// CompleteHandler handles POST /api/v1/flows/:id/complete
func CompleteHandler(store *flow.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		return flowAction(c, store, (*flow.Flow).Complete)
	}
}

// RetryHandler handles POST /api/v1/flows/:id/retry
func RetryHandler(store *flow.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		return flowAction(c, store, func(f *flow.Flow) error {
			f.Retry()
			return nil
		})
	}
}

// flowAction runs fn on the flow and answers with its snapshot
func flowAction(c echo.Context, store *flow.Store, fn func(*flow.Flow) error) error {
	var snap flow.Snapshot
	err := store.With(c.Param("id"), func(f *flow.Flow) error {
		if err := fn(f); err != nil {
			return err
		}
		snap = f.Snapshot()
		return nil
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, snap)
}
