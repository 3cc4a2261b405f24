package models

// Severity of a validation issue
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Priority shared by issues and suggestion impact
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Weight maps high/medium/low to 3/2/1
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// IssueCategory groups validation issues by section
type IssueCategory string

const (
	CategoryPersonalInfo     IssueCategory = "personal-info"
	CategorySummary          IssueCategory = "summary"
	CategoryExperience       IssueCategory = "experience"
	CategoryEducation        IssueCategory = "education"
	CategorySkills           IssueCategory = "skills"
	CategoryProjects         IssueCategory = "projects"
	CategoryCertifications   IssueCategory = "certifications"
	CategoryJobInfo          IssueCategory = "job-info"
	CategoryResponsibilities IssueCategory = "responsibilities"
	CategoryRequirements     IssueCategory = "requirements"
	CategoryCompensation     IssueCategory = "compensation"
	CategoryCompany          IssueCategory = "company"
)

// ValidationIssue is a single rule finding
type ValidationIssue struct {
	ID         string        `json:"id"`
	Field      string        `json:"field"`
	Category   IssueCategory `json:"category"`
	Severity   Severity      `json:"severity"`
	Message    string        `json:"message"`
	Suggestion string        `json:"suggestion,omitempty"`
	Priority   Priority      `json:"priority"`
}

// NewValidationIssue builds an issue; errors are always high priority
func NewValidationIssue(id, field string, category IssueCategory, severity Severity, priority Priority, message, suggestion string) ValidationIssue {
	if severity == SeverityError {
		priority = PriorityHigh
	}
	return ValidationIssue{
		ID:         id,
		Field:      field,
		Category:   category,
		Severity:   severity,
		Message:    message,
		Suggestion: suggestion,
		Priority:   priority,
	}
}

// CompletenessScore holds per-section presence ratios (0-100)
type CompletenessScore struct {
	Overall  int            `json:"overall"`
	Sections map[string]int `json:"sections"`
}

// QualityScore blends rule outcomes with keyword coverage
type QualityScore struct {
	Overall             int `json:"overall"`
	Clarity             int `json:"clarity"`
	Impact              int `json:"impact"`
	Structure           int `json:"structure"`
	Completeness        int `json:"completeness"`
	KeywordOptimization int `json:"keywordOptimization"`
}

// Grade is a letter band of the overall score
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// GradeFor maps a score to its letter
func GradeFor(score int) Grade {
	switch {
	case score >= 90:
		return GradeA
	case score >= 80:
		return GradeB
	case score >= 70:
		return GradeC
	case score >= 60:
		return GradeD
	default:
		return GradeF
	}
}

// ValidationResult is the outcome of validating one document
type ValidationResult struct {
	Score        int               `json:"score"`
	Grade        Grade             `json:"grade"`
	Issues       []ValidationIssue `json:"issues"`
	Suggestions  []string          `json:"suggestions"`
	Completeness CompletenessScore `json:"completeness"`
	QualityScore QualityScore      `json:"qualityScore"`
	Confidence   int               `json:"confidence"`
}

// Count returns the number of issues with the given severity
func (r ValidationResult) Count(sev Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == sev {
			n++
		}
	}
	return n
}

// HasIssue reports whether an issue exists for field at severity
func (r ValidationResult) HasIssue(field string, sev Severity) bool {
	for _, issue := range r.Issues {
		if issue.Field == field && issue.Severity == sev {
			return true
		}
	}
	return false
}
