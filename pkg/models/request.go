package models

import (
	"encoding/json"
	"fmt"
)

// ExtractRequest asks for raw text to be turned into a document
type ExtractRequest struct {
	Type string `json:"type" validate:"required,doc_type"`
	Text string `json:"text" validate:"required"`
}

// DocumentRequest carries a structured document. Document holds the CV or
// JD object itself, not the {type, cv, jd} wrapper.
type DocumentRequest struct {
	Type     string          `json:"type" validate:"required,doc_type"`
	Document json.RawMessage `json:"document" validate:"required"`
}

// ApplySuggestionRequest applies one suggestion to a document
type ApplySuggestionRequest struct {
	Type       string          `json:"type" validate:"required,doc_type"`
	Document   json.RawMessage `json:"document" validate:"required"`
	Suggestion DataSuggestion  `json:"suggestion"`
}

// CreateFlowRequest starts an upload flow; Type is required in single mode
type CreateFlowRequest struct {
	Mode string `json:"mode" validate:"required,flow_mode"`
	Type string `json:"type" validate:"omitempty,doc_type"`
}

// UploadRequest is the JSON form of a flow upload
type UploadRequest struct {
	Type string `json:"type" validate:"required,doc_type"`
	Text string `json:"text" validate:"required"`
}

// DecodeDocument reads a bare CV or JD object as the given type and hydrates it
func DecodeDocument(docType string, raw json.RawMessage) (Document, error) {
	t, ok := ParseDocumentType(docType)
	if !ok {
		return Document{}, fmt.Errorf("unknown document type %q", docType)
	}
	if t == DocumentTypeJD {
		var jd JDDocument
		if err := json.Unmarshal(raw, &jd); err != nil {
			return Document{}, fmt.Errorf("invalid jd document: %w", err)
		}
		return NewJDDocument(HydrateJD(&jd)), nil
	}
	var cv CVDocument
	if err := json.Unmarshal(raw, &cv); err != nil {
		return Document{}, fmt.Errorf("invalid cv document: %w", err)
	}
	return NewCVDocument(HydrateCV(&cv)), nil
}
