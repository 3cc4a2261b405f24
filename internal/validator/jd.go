package validator

import (
	"fmt"
	"strings"

	"docsense/pkg/models"
)

// PassivePhrases are responsibility openers that read as duties rather than outcomes
var PassivePhrases = []string{
	"responsible for",
	"in charge of",
	"tasked with",
	"involved in",
	"helped with",
	"worked on",
	"duties include",
}

// IsPassive reports whether a responsibility opens with a passive phrase
func IsPassive(item string) bool {
	lower := strings.ToLower(strings.TrimSpace(item))
	for _, p := range PassivePhrases {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

func checkJobInfo(c *collector, jd *models.JDDocument) {
	cat := models.CategoryJobInfo

	if jd.JobTitle == "" {
		c.add("jobTitle.missing", "jobTitle", cat, models.SeverityError, models.PriorityHigh,
			"Job title is missing", "Add a clear, searchable job title")
	}
	if jd.Company == "" {
		c.add("company.missing", "company", cat, models.SeverityError, models.PriorityHigh,
			"Company name is missing", "Add the hiring company name")
	}
	if jd.Location == "" {
		c.add("location.missing", "location", cat, models.SeverityWarning, models.PriorityMedium,
			"Location is missing", "Add the office location or region")
	}
	if jd.EmploymentType == "" {
		c.add("employmentType.missing", "employmentType", cat, models.SeverityWarning, models.PriorityMedium,
			"Employment type is missing", "State whether the role is full-time, part-time, contract or similar")
	}
	if jd.ExperienceLevel == "" {
		c.add("experienceLevel.missing", "experienceLevel", cat, models.SeverityInfo, models.PriorityMedium,
			"Experience level is missing", "State the seniority, e.g. mid or senior")
	}
	if jd.RemoteOption == "" {
		c.add("remoteOption.missing", "remoteOption", cat, models.SeverityInfo, models.PriorityLow,
			"Remote work option is missing", "State whether the role is onsite, remote or hybrid")
	}
}

func (v *Validator) checkJDSummary(c *collector, jd *models.JDDocument) {
	switch {
	case jd.Summary == "":
		c.add("summary.missing", "summary", models.CategorySummary, models.SeverityWarning, models.PriorityMedium,
			"Role summary is missing", "Open with two or three sentences about the role and its impact")
	case len([]rune(jd.Summary)) < v.policy.MinSummaryChars:
		c.add("summary.short", "summary", models.CategorySummary, models.SeverityInfo, models.PriorityMedium,
			fmt.Sprintf("Role summary is shorter than %d characters", v.policy.MinSummaryChars), "Expand the summary with the team's mission and the role's impact")
	}
	if jd.AboutCompany == "" {
		c.add("aboutCompany.missing", "aboutCompany", models.CategoryCompany, models.SeverityInfo, models.PriorityLow,
			"Company description is missing", "Add a short paragraph about the company")
	}
}

func (v *Validator) checkResponsibilities(c *collector, items []string) {
	cat := models.CategoryResponsibilities

	switch n := len(items); {
	case n == 0:
		c.add("responsibilities.missing", "responsibilities", cat, models.SeverityError, models.PriorityHigh,
			"No responsibilities listed", "List the main responsibilities of the role")
		return
	case n < v.policy.MinResponsibilities:
		c.add("responsibilities.few", "responsibilities", cat, models.SeverityWarning, models.PriorityMedium,
			fmt.Sprintf("Only %d responsibilities listed", n), fmt.Sprintf("List at least %d responsibilities", v.policy.MinResponsibilities))
	case n > v.policy.MaxResponsibilities:
		c.add("responsibilities.many", "responsibilities", cat, models.SeverityInfo, models.PriorityLow,
			fmt.Sprintf("%d responsibilities listed", n), fmt.Sprintf("Keep the list to the top %d", v.policy.MaxResponsibilities))
	}

	for i, item := range items {
		if IsPassive(item) {
			c.add("responsibilities.passive", models.Indexed("responsibilities", i, ""), cat, models.SeverityWarning, models.PriorityMedium,
				fmt.Sprintf("Responsibility %q uses passive phrasing", item), "Start with an action verb")
		}
	}
}

func (v *Validator) checkRequirements(c *collector, r models.Requirements) {
	cat := models.CategoryRequirements

	switch n := len(r.Required); {
	case n == 0:
		c.add("requirements.required.missing", "requirements.required", cat, models.SeverityError, models.PriorityHigh,
			"No required qualifications listed", "List the must-have qualifications")
	case n < v.policy.MinRequiredQualifications:
		c.add("requirements.required.few", "requirements.required", cat, models.SeverityWarning, models.PriorityMedium,
			fmt.Sprintf("Only %d required qualification listed", n), fmt.Sprintf("List at least %d required qualifications", v.policy.MinRequiredQualifications))
	}
	if len(r.Preferred) == 0 {
		c.add("requirements.preferred.missing", "requirements.preferred", cat, models.SeverityInfo, models.PriorityLow,
			"No preferred qualifications listed", "Add nice-to-have qualifications")
	}
}

func checkCompensation(c *collector, jd *models.JDDocument) {
	cat := models.CategoryCompensation
	s := jd.Salary

	switch {
	case s.IsEmpty():
		c.add("salary.missing", "salary", cat, models.SeverityInfo, models.PriorityMedium,
			"Salary range is missing", "Publish a salary range to attract more applicants")
	case s.Min > 0 && s.Max > 0 && s.Min > s.Max:
		c.add("salary.range", "salary", cat, models.SeverityError, models.PriorityHigh,
			"Salary minimum is greater than the maximum", "Swap or correct the salary bounds")
	}
	if !s.IsEmpty() && s.Currency == "" {
		c.add("salary.currency", "salary.currency", cat, models.SeverityWarning, models.PriorityMedium,
			"Salary has no currency", "Add the currency, e.g. USD or EUR")
	}

	if len(jd.Benefits) == 0 {
		c.add("benefits.missing", "benefits", cat, models.SeverityInfo, models.PriorityMedium,
			"No benefits listed", "List the main benefits and perks")
	}
}

func checkJDSkills(c *collector, jd *models.JDDocument) {
	if len(jd.Skills.Technical) == 0 {
		c.add("skills.technical.missing", "skills.technical", models.CategorySkills, models.SeverityWarning, models.PriorityMedium,
			"No technical skills listed", "List the key technologies used in the role")
	}
}
