// Package validator scores CVs and job descriptions against a fixed rule
// set. Missing or malformed data is reported as issues, never as errors.
package validator

import (
	"docsense/internal/policy"
	"docsense/pkg/models"
	"docsense/pkg/utils"
)

// Validator is safe for concurrent use
type Validator struct {
	policy policy.Policy
}

// New creates a validator bound to a policy
func New(p policy.Policy) *Validator {
	return &Validator{policy: p}
}

// Policy returns the thresholds in use
func (v *Validator) Policy() policy.Policy {
	return v.policy
}

// Validate dispatches on the document type
func (v *Validator) Validate(doc models.Document) models.ValidationResult {
	if doc.Kind() == models.DocumentTypeJD {
		return v.ValidateJD(doc.JD)
	}
	return v.ValidateCV(doc.CV)
}

// ValidateCV runs the CV rules. A nil CV is scored as an empty one.
func (v *Validator) ValidateCV(in *models.CVDocument) models.ValidationResult {
	cv := models.HydrateCV(in)
	c := &collector{}

	v.checkPersonalInfo(c, cv.PersonalInfo)
	v.checkSummary(c, cv)
	v.checkExperience(c, cv.Experience)
	v.checkGaps(c, cv.Experience)
	v.checkEducation(c, cv.Education)
	v.checkSkills(c, cv.Skills)
	checkExtras(c, cv)

	completeness := v.cvCompleteness(cv)
	return v.result(c.issues, completeness, cvText(cv), cvKeywords, cvPopulated(cv))
}

// ValidateJD runs the job description rules. A nil JD is scored as an empty one.
func (v *Validator) ValidateJD(in *models.JDDocument) models.ValidationResult {
	jd := models.HydrateJD(in)
	c := &collector{}

	checkJobInfo(c, jd)
	v.checkJDSummary(c, jd)
	v.checkResponsibilities(c, jd.Responsibilities)
	v.checkRequirements(c, jd.Requirements)
	checkCompensation(c, jd)
	checkJDSkills(c, jd)

	completeness := v.jdCompleteness(jd)
	return v.result(c.issues, completeness, jdText(jd), jdKeywords, jdPopulated(jd))
}

// collector accumulates issues in rule-evaluation order
type collector struct {
	issues []models.ValidationIssue
}

func (c *collector) add(rule, field string, category models.IssueCategory, severity models.Severity, priority models.Priority, message, suggestion string) {
	id := utils.StableID("issue", rule, field)
	c.issues = append(c.issues, models.NewValidationIssue(id, field, category, severity, priority, message, suggestion))
}
