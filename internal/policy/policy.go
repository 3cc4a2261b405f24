// Package policy holds the heuristic thresholds shared by the validator,
// the missing-data analyzer and the suggestion engine.
package policy

import "fmt"

// Policy is immutable once built; pass it by value.
type Policy struct {
	// Thin-content thresholds
	MinDescriptionChars    int `yaml:"min_description_chars"`
	MinSummaryChars        int `yaml:"min_summary_chars"`
	MaxSummaryChars        int `yaml:"max_summary_chars"`
	MinResponsibilityChars int `yaml:"min_responsibility_chars"`
	MinTechnicalSkills     int `yaml:"min_technical_skills"`
	MinSoftSkills          int `yaml:"min_soft_skills"`
	MinPhoneDigits         int `yaml:"min_phone_digits"`

	// Section sizing
	MinResponsibilities       int `yaml:"min_responsibilities"`
	MaxResponsibilities       int `yaml:"max_responsibilities"`
	MinRequiredQualifications int `yaml:"min_required_qualifications"`

	// Employment gap, in days between an entry's end and the next start
	GapDays int `yaml:"gap_days"`

	// Flow gate: strictly greater than this score may complete
	CanProceedScore int `yaml:"can_proceed_score"`

	// Characters forwarded to the extraction collaborator
	MaxExtractionChars int `yaml:"max_extraction_chars"`

	// Suggestion engine caps
	MaxKeywordSuggestions int `yaml:"max_keyword_suggestions"`
	MaxPriorityActions    int `yaml:"max_priority_actions"`

	CVWeights CVWeights `yaml:"cv_weights"`
	JDWeights JDWeights `yaml:"jd_weights"`
}

// CVWeights are completeness section weights in percent
type CVWeights struct {
	PersonalInfo float64 `yaml:"personal_info"`
	Experience   float64 `yaml:"experience"`
	Education    float64 `yaml:"education"`
	Skills       float64 `yaml:"skills"`
	Summary      float64 `yaml:"summary"`
}

// JDWeights are completeness section weights in percent
type JDWeights struct {
	JobInfo          float64 `yaml:"job_info"`
	Responsibilities float64 `yaml:"responsibilities"`
	Requirements     float64 `yaml:"requirements"`
	Summary          float64 `yaml:"summary"`
}

// Default returns the stock thresholds
func Default() Policy {
	return Policy{
		MinDescriptionChars:       20,
		MinSummaryChars:           30,
		MaxSummaryChars:           800,
		MinResponsibilityChars:    10,
		MinTechnicalSkills:        5,
		MinSoftSkills:             3,
		MinPhoneDigits:            10,
		MinResponsibilities:       3,
		MaxResponsibilities:       10,
		MinRequiredQualifications: 2,
		GapDays:                   180,
		CanProceedScore:           50,
		MaxExtractionChars:        12000,
		MaxKeywordSuggestions:     5,
		MaxPriorityActions:        5,
		CVWeights: CVWeights{
			PersonalInfo: 30,
			Experience:   25,
			Education:    20,
			Skills:       20,
			Summary:      5,
		},
		JDWeights: JDWeights{
			JobInfo:          40,
			Responsibilities: 30,
			Requirements:     20,
			Summary:          10,
		},
	}
}

// Merge overlays every non-zero field of o onto p
func (p Policy) Merge(o Policy) Policy {
	pick := func(dst *int, v int) {
		if v > 0 {
			*dst = v
		}
	}
	pick(&p.MinDescriptionChars, o.MinDescriptionChars)
	pick(&p.MinSummaryChars, o.MinSummaryChars)
	pick(&p.MaxSummaryChars, o.MaxSummaryChars)
	pick(&p.MinResponsibilityChars, o.MinResponsibilityChars)
	pick(&p.MinTechnicalSkills, o.MinTechnicalSkills)
	pick(&p.MinSoftSkills, o.MinSoftSkills)
	pick(&p.MinPhoneDigits, o.MinPhoneDigits)
	pick(&p.MinResponsibilities, o.MinResponsibilities)
	pick(&p.MaxResponsibilities, o.MaxResponsibilities)
	pick(&p.MinRequiredQualifications, o.MinRequiredQualifications)
	pick(&p.GapDays, o.GapDays)
	pick(&p.CanProceedScore, o.CanProceedScore)
	pick(&p.MaxExtractionChars, o.MaxExtractionChars)
	pick(&p.MaxKeywordSuggestions, o.MaxKeywordSuggestions)
	pick(&p.MaxPriorityActions, o.MaxPriorityActions)

	if o.CVWeights != (CVWeights{}) {
		p.CVWeights = o.CVWeights
	}
	if o.JDWeights != (JDWeights{}) {
		p.JDWeights = o.JDWeights
	}
	return p
}

// Validate checks the weight tables sum to 100
func (p Policy) Validate() error {
	cv := p.CVWeights.PersonalInfo + p.CVWeights.Experience + p.CVWeights.Education + p.CVWeights.Skills + p.CVWeights.Summary
	if cv < 99.99 || cv > 100.01 {
		return fmt.Errorf("cv weights must sum to 100, got %.2f", cv)
	}
	jd := p.JDWeights.JobInfo + p.JDWeights.Responsibilities + p.JDWeights.Requirements + p.JDWeights.Summary
	if jd < 99.99 || jd > 100.01 {
		return fmt.Errorf("jd weights must sum to 100, got %.2f", jd)
	}
	if p.MinResponsibilities > p.MaxResponsibilities {
		return fmt.Errorf("min_responsibilities (%d) exceeds max_responsibilities (%d)", p.MinResponsibilities, p.MaxResponsibilities)
	}
	return nil
}
