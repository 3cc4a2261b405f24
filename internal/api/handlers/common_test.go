package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"docsense/internal/extraction"
	"docsense/internal/flow"
	"docsense/internal/ocr"
	"docsense/internal/suggest"
	"docsense/pkg/utils"
)

func TestToCustomError(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{flow.ErrFlowNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: at step upload", flow.ErrInvalidTransition), http.StatusConflict},
		{fmt.Errorf("%w: score 20", flow.ErrCannotProceed), http.StatusConflict},
		{fmt.Errorf("%w: sid", flow.ErrUnknownSuggestion), http.StatusNotFound},
		{fmt.Errorf("%w: a.b.c", suggest.ErrUnknownField), http.StatusBadRequest},
		{extraction.ErrEmptyInput, http.StatusBadRequest},
		{fmt.Errorf("%w: 11MB", ocr.ErrFileTooLarge), http.StatusRequestEntityTooLarge},
		{fmt.Errorf("%w: text/plain", ocr.ErrUnsupportedType), http.StatusUnsupportedMediaType},
		{fmt.Errorf("%w: 500", ocr.ErrOCRFailed), http.StatusBadGateway},
		{&utils.ExtractionServiceError{Cause: errors.New("down")}, http.StatusBadGateway},
		{&utils.ExtractionParseError{Reason: "invalid JSON"}, http.StatusUnprocessableEntity},
		{&utils.ValidationInputError{Field: "mode", Reason: "unknown"}, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := toCustomError(tc.err).Code; got != tc.code {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.code, got)
		}
	}
}
