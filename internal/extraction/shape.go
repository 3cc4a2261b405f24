package extraction

import "docsense/pkg/models"

type kind int

const (
	kindString kind = iota
	kindStrings
	kindNumber
	kindInt
	kindObject
	kindObjects
)

// field describes the expected JSON shape of one document key. Repair and
// the schema check both walk the same tree.
type field struct {
	kind   kind
	fields map[string]field
}

func str() field                       { return field{kind: kindString} }
func strs() field                      { return field{kind: kindStrings} }
func num() field                       { return field{kind: kindNumber} }
func integer() field                   { return field{kind: kindInt} }
func object(f map[string]field) field  { return field{kind: kindObject, fields: f} }
func objects(f map[string]field) field { return field{kind: kindObjects, fields: f} }

func stringFields(names ...string) map[string]field {
	out := make(map[string]field, len(names))
	for _, n := range names {
		out[n] = str()
	}
	return out
}

func with(base map[string]field, extra map[string]field) map[string]field {
	for k, v := range extra {
		base[k] = v
	}
	return base
}

func skillsShape() field {
	return object(map[string]field{
		"technical":  strs(),
		"soft":       strs(),
		"tools":      strs(),
		"frameworks": strs(),
		"databases":  strs(),
		"languages":  strs(),
	})
}

var cvShapeTree = object(map[string]field{
	"personalInfo": object(stringFields("name", "email", "phone", "location", "linkedin", "github", "portfolio")),
	"summary":      str(),
	"objective":    str(),
	"experience": objects(with(
		stringFields("title", "company", "location", "duration", "startDate", "endDate", "description"),
		map[string]field{"technologies": strs(), "achievements": strs()},
	)),
	"education": objects(with(
		stringFields("degree", "institution", "field", "location", "startDate", "endDate", "gpa"),
		map[string]field{"achievements": strs()},
	)),
	"skills":         skillsShape(),
	"certifications": objects(stringFields("name", "issuer", "date", "expiry", "credentialId", "url")),
	"projects": objects(with(
		stringFields("name", "description", "url", "startDate", "endDate"),
		map[string]field{"technologies": strs()},
	)),
	"awards":       objects(stringFields("title", "issuer", "date", "description")),
	"publications": objects(stringFields("title", "publisher", "date", "url")),
	"volunteer":    objects(stringFields("role", "organization", "startDate", "endDate", "description")),
	"references":   objects(stringFields("name", "relationship", "contact")),
})

var jdShapeTree = object(with(
	stringFields("jobTitle", "company", "location", "employmentType", "experienceLevel", "remoteOption",
		"summary", "aboutCompany", "department", "teamSize"),
	map[string]field{
		"salary": object(map[string]field{
			"min":      num(),
			"max":      num(),
			"currency": str(),
			"period":   str(),
		}),
		"responsibilities": strs(),
		"requirements": object(map[string]field{
			"required":  strs(),
			"preferred": strs(),
			"education": object(stringFields("level", "field")),
			"experience": object(map[string]field{
				"minYears":    integer(),
				"maxYears":    integer(),
				"description": str(),
			}),
		}),
		"skills":   skillsShape(),
		"benefits": strs(),
	},
))

func shapeFor(docType models.DocumentType) field {
	if docType == models.DocumentTypeJD {
		return jdShapeTree
	}
	return cvShapeTree
}
