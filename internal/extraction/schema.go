package extraction

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"docsense/pkg/models"
	"docsense/pkg/utils"
)

var (
	schemaMu sync.Mutex
	schemas  = map[models.DocumentType]*jsonschema.Schema{}
)

// schemaMap renders a shape tree as a JSON schema document. Unknown keys
// are allowed; only the keys the document model reads are constrained.
func schemaMap(f field) map[string]interface{} {
	switch f.kind {
	case kindString:
		return map[string]interface{}{"type": "string"}
	case kindStrings:
		return map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}}
	case kindNumber:
		return map[string]interface{}{"type": "number"}
	case kindInt:
		return map[string]interface{}{"type": "integer"}
	case kindObjects:
		return map[string]interface{}{"type": "array", "items": schemaMap(object(f.fields))}
	default:
		props := make(map[string]interface{}, len(f.fields))
		for k, child := range f.fields {
			props[k] = schemaMap(child)
		}
		return map[string]interface{}{"type": "object", "properties": props}
	}
}

func compiledSchema(docType models.DocumentType) (*jsonschema.Schema, error) {
	schemaMu.Lock()
	defer schemaMu.Unlock()

	if s, ok := schemas[docType]; ok {
		return s, nil
	}

	b, err := json.Marshal(schemaMap(shapeFor(docType)))
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	name := string(docType) + ".schema.json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	s, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	schemas[docType] = s
	return s, nil
}

// checkShape rejects repaired output that still does not fit the document model
func checkShape(docType models.DocumentType, obj map[string]interface{}) error {
	s, err := compiledSchema(docType)
	if err != nil {
		return err
	}
	if err := s.Validate(obj); err != nil {
		return &utils.ExtractionParseError{
			Reason: "response does not match the " + string(docType) + " shape",
			Cause:  err,
		}
	}
	return nil
}
