package validation

import (
	"github.com/go-playground/validator/v10"

	"docsense/internal/flow"
	"docsense/pkg/models"
)

// ValidateDocType accepts cv, jd and their aliases
func ValidateDocType(fl validator.FieldLevel) bool {
	_, ok := models.ParseDocumentType(fl.Field().String())
	return ok
}

// ValidateFlowMode accepts single and dual
func ValidateFlowMode(fl validator.FieldLevel) bool {
	_, ok := flow.ParseMode(fl.Field().String())
	return ok
}

// RegisterDocumentValidators registers the request validators used by the API
func RegisterDocumentValidators(v *validator.Validate) {
	v.RegisterValidation("doc_type", ValidateDocType)
	v.RegisterValidation("flow_mode", ValidateFlowMode)
}

// New returns a validator with the custom tags registered
func New() *validator.Validate {
	v := validator.New()
	RegisterDocumentValidators(v)
	return v
}
