package validation

import (
	"testing"

	"docsense/pkg/models"
)

func TestDocumentValidators(t *testing.T) {
	v := New()

	cases := []struct {
		name  string
		req   interface{}
		valid bool
	}{
		{"cv", models.ExtractRequest{Type: "cv", Text: "x"}, true},
		{"resume alias", models.ExtractRequest{Type: "Resume", Text: "x"}, true},
		{"unknown type", models.ExtractRequest{Type: "letter", Text: "x"}, false},
		{"missing text", models.ExtractRequest{Type: "jd"}, false},
		{"dual without type", models.CreateFlowRequest{Mode: "dual"}, true},
		{"single with type", models.CreateFlowRequest{Mode: "single", Type: "cv"}, true},
		{"bad mode", models.CreateFlowRequest{Mode: "triple"}, false},
		{"bad flow type", models.CreateFlowRequest{Mode: "single", Type: "memo"}, false},
	}
	for _, tc := range cases {
		err := v.Struct(tc.req)
		if tc.valid && err != nil {
			t.Errorf("%s: expected valid, got %v", tc.name, err)
		}
		if !tc.valid && err == nil {
			t.Errorf("%s: expected a validation error", tc.name)
		}
	}
}
