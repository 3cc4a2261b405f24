package validator

import (
	"math"
	"regexp"
	"strings"

	"docsense/pkg/models"
)

var cvKeywords = compileKeywords(
	"led", "developed", "designed", "implemented", "managed", "built", "launched",
	"improved", "increased", "reduced", "optimized", "delivered", "mentored",
	"architected", "automated", "collaborated", "scaled", "migrated",
)

var jdKeywords = compileKeywords(
	"experience", "team", "design", "build", "develop", "collaborate", "ownership",
	"scalable", "growth", "impact", "mentor", "customers", "quality", "cloud",
	"agile", "learning", "benefits", "flexible",
)

func compileKeywords(terms ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(terms))
	for i, t := range terms {
		out[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(t) + `\b`)
	}
	return out
}

func keywordScore(text string, keywords []*regexp.Regexp) int {
	matched := 0
	for _, re := range keywords {
		if re.MatchString(text) {
			matched++
		}
	}
	return min(100, 50+5*matched)
}

func percent(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return 100 * float64(n) / float64(d)
}

func countTrue(flags ...bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}

func (v *Validator) cvCompleteness(cv *models.CVDocument) models.CompletenessScore {
	p := cv.PersonalInfo
	personal := percent(countTrue(p.Name != "", p.Email != "", p.Phone != "", p.Location != "", p.LinkedIn != ""), 5)

	entries, wellFormed := 0, 0
	for _, e := range cv.Experience {
		if e.IsEmpty() {
			continue
		}
		entries++
		if e.Title != "" && e.Company != "" && e.HasTimeframe() {
			wellFormed++
		}
	}
	experience := percent(wellFormed, entries)

	degrees, complete := 0, 0
	for _, e := range cv.Education {
		if e.IsEmpty() {
			continue
		}
		degrees++
		if e.Degree != "" && e.Institution != "" {
			complete++
		}
	}
	education := percent(complete, degrees)

	skills := percent(countTrue(len(cv.Skills.Technical) > 0, len(cv.Skills.Soft) > 0, len(cv.Skills.Tools) > 0), 3)

	summary := 0.0
	if cv.Summary != "" || cv.Objective != "" {
		summary = 100
	}

	w := v.policy.CVWeights
	overall := (personal*w.PersonalInfo + experience*w.Experience + education*w.Education + skills*w.Skills + summary*w.Summary) / 100

	return models.CompletenessScore{
		Overall: round(overall),
		Sections: map[string]int{
			"personalInfo": round(personal),
			"experience":   round(experience),
			"education":    round(education),
			"skills":       round(skills),
			"summary":      round(summary),
		},
	}
}

func (v *Validator) jdCompleteness(jd *models.JDDocument) models.CompletenessScore {
	jobInfo := percent(countTrue(jd.JobTitle != "", jd.Company != "", jd.Location != "", jd.EmploymentType != "", jd.ExperienceLevel != ""), 5)

	wellFormed := 0
	for _, r := range jd.Responsibilities {
		if len([]rune(r)) >= v.policy.MinResponsibilityChars {
			wellFormed++
		}
	}
	responsibilities := percent(wellFormed, len(jd.Responsibilities))

	requirements := percent(countTrue(len(jd.Requirements.Required) > 0, len(jd.Requirements.Preferred) > 0), 2)

	summary := 0.0
	if jd.Summary != "" {
		summary = 100
	}

	w := v.policy.JDWeights
	overall := (jobInfo*w.JobInfo + responsibilities*w.Responsibilities + requirements*w.Requirements + summary*w.Summary) / 100

	return models.CompletenessScore{
		Overall: round(overall),
		Sections: map[string]int{
			"jobInfo":          round(jobInfo),
			"responsibilities": round(responsibilities),
			"requirements":     round(requirements),
			"summary":          round(summary),
		},
	}
}

func (v *Validator) result(issues []models.ValidationIssue, completeness models.CompletenessScore, text string, keywords []*regexp.Regexp, populated int) models.ValidationResult {
	if issues == nil {
		issues = []models.ValidationIssue{}
	}

	errs, warns := 0, 0
	for _, issue := range issues {
		switch issue.Severity {
		case models.SeverityError:
			errs++
		case models.SeverityWarning:
			warns++
		}
	}

	quality := models.QualityScore{
		Clarity:             max(0, 100-20*errs-5*warns),
		Impact:              max(0, 100-3*warns),
		Structure:           max(0, 100-15*errs),
		Completeness:        completeness.Overall,
		KeywordOptimization: keywordScore(text, keywords),
	}
	quality.Overall = round(float64(quality.Clarity+quality.Impact+quality.Structure+quality.Completeness+quality.KeywordOptimization) / 5)

	score := round(float64(completeness.Overall+quality.Overall) / 2)
	confidence := round(float64(max(0, 100-10*errs)+min(100, 10*populated)) / 2)

	return models.ValidationResult{
		Score:        score,
		Grade:        models.GradeFor(score),
		Issues:       issues,
		Suggestions:  distinctSuggestions(issues),
		Completeness: completeness,
		QualityScore: quality,
		Confidence:   confidence,
	}
}

func distinctSuggestions(issues []models.ValidationIssue) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, issue := range issues {
		if issue.Suggestion == "" || seen[issue.Suggestion] {
			continue
		}
		seen[issue.Suggestion] = true
		out = append(out, issue.Suggestion)
	}
	return out
}

func round(f float64) int {
	return int(math.Round(f))
}

func cvText(cv *models.CVDocument) string {
	parts := []string{cv.Summary, cv.Objective}
	for _, e := range cv.Experience {
		parts = append(parts, e.Title, e.Description)
		parts = append(parts, e.Achievements...)
		parts = append(parts, e.Technologies...)
	}
	for _, p := range cv.Projects {
		parts = append(parts, p.Name, p.Description)
	}
	parts = append(parts, cv.Skills.All()...)
	return strings.Join(parts, "\n")
}

func jdText(jd *models.JDDocument) string {
	parts := []string{jd.JobTitle, jd.Summary, jd.AboutCompany}
	parts = append(parts, jd.Responsibilities...)
	parts = append(parts, jd.Requirements.Required...)
	parts = append(parts, jd.Requirements.Preferred...)
	parts = append(parts, jd.Benefits...)
	parts = append(parts, jd.Skills.All()...)
	return strings.Join(parts, "\n")
}

func cvPopulated(cv *models.CVDocument) int {
	p := cv.PersonalInfo
	return countTrue(
		p.Name != "", p.Email != "", p.Phone != "", p.Location != "",
		p.LinkedIn != "", p.GitHub != "", p.Portfolio != "",
		cv.Summary != "" || cv.Objective != "",
		len(cv.Experience) > 0, len(cv.Education) > 0, !cv.Skills.IsEmpty(),
		len(cv.Certifications) > 0, len(cv.Projects) > 0,
		len(cv.Awards) > 0, len(cv.Publications) > 0, len(cv.Volunteer) > 0,
	)
}

func jdPopulated(jd *models.JDDocument) int {
	return countTrue(
		jd.JobTitle != "", jd.Company != "", jd.Location != "",
		jd.EmploymentType != "", jd.ExperienceLevel != "", jd.RemoteOption != "",
		jd.Summary != "", jd.AboutCompany != "", !jd.Salary.IsEmpty(),
		len(jd.Responsibilities) > 0, len(jd.Requirements.Required) > 0,
		len(jd.Requirements.Preferred) > 0, !jd.Skills.IsEmpty(), len(jd.Benefits) > 0,
		jd.Department != "", jd.TeamSize != "",
	)
}
