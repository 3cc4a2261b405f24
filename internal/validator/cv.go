package validator

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"docsense/pkg/models"
	"docsense/pkg/utils"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// EmailValid applies the address check used for CV contact details
func EmailValid(email string) bool {
	return emailRe.MatchString(strings.TrimSpace(email))
}

func urlLike(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && !strings.ContainsAny(s, " \t") && strings.Contains(s, ".")
}

func (v *Validator) checkPersonalInfo(c *collector, p models.PersonalInfo) {
	cat := models.CategoryPersonalInfo

	if p.Name == "" {
		c.add("name.missing", "personalInfo.name", cat, models.SeverityError, models.PriorityHigh,
			"Full name is missing", "Add your full name at the top of the CV")
	}

	switch {
	case p.Email == "":
		c.add("email.missing", "personalInfo.email", cat, models.SeverityError, models.PriorityHigh,
			"Email address is missing", "Add a professional email address")
	case !EmailValid(p.Email):
		c.add("email.invalid", "personalInfo.email", cat, models.SeverityError, models.PriorityHigh,
			fmt.Sprintf("Email address %q is not valid", p.Email), "Use the format name@domain.com")
	}

	switch {
	case p.Phone == "":
		c.add("phone.missing", "personalInfo.phone", cat, models.SeverityWarning, models.PriorityMedium,
			"Phone number is missing", "Add a phone number recruiters can reach you on")
	case utils.CountDigits(p.Phone) < v.policy.MinPhoneDigits:
		c.add("phone.invalid", "personalInfo.phone", cat, models.SeverityError, models.PriorityHigh,
			fmt.Sprintf("Phone number has fewer than %d digits", v.policy.MinPhoneDigits), "Include the full number with area code")
	}

	if p.Location == "" {
		c.add("location.missing", "personalInfo.location", cat, models.SeverityInfo, models.PriorityMedium,
			"Location is missing", "Add your city and country")
	}

	switch {
	case p.LinkedIn == "":
		c.add("linkedin.missing", "personalInfo.linkedin", cat, models.SeverityInfo, models.PriorityLow,
			"LinkedIn profile is missing", "Add your LinkedIn profile URL")
	case !strings.Contains(strings.ToLower(p.LinkedIn), "linkedin.com"):
		c.add("linkedin.invalid", "personalInfo.linkedin", cat, models.SeverityWarning, models.PriorityMedium,
			"LinkedIn value does not look like a linkedin.com URL", "Use the format linkedin.com/in/your-name")
	}

	if p.GitHub != "" && !urlLike(p.GitHub) {
		c.add("github.invalid", "personalInfo.github", cat, models.SeverityInfo, models.PriorityLow,
			"GitHub value does not look like a URL", "Use the format github.com/your-handle")
	}
	if p.Portfolio != "" && !urlLike(p.Portfolio) {
		c.add("portfolio.invalid", "personalInfo.portfolio", cat, models.SeverityInfo, models.PriorityLow,
			"Portfolio value does not look like a URL", "Link to the full portfolio address")
	}
}

func (v *Validator) checkSummary(c *collector, cv *models.CVDocument) {
	cat := models.CategorySummary
	text := cv.Summary
	field := "summary"
	if text == "" && cv.Objective != "" {
		text, field = cv.Objective, "objective"
	}

	n := len([]rune(text))
	switch {
	case text == "":
		c.add("summary.missing", "summary", cat, models.SeverityWarning, models.PriorityMedium,
			"Professional summary is missing", "Add two or three sentences about your experience and goals")
	case n < v.policy.MinSummaryChars:
		c.add("summary.short", field, cat, models.SeverityInfo, models.PriorityMedium,
			fmt.Sprintf("Summary is shorter than %d characters", v.policy.MinSummaryChars), "Expand the summary with your focus and key strengths")
	case n > v.policy.MaxSummaryChars:
		c.add("summary.long", field, cat, models.SeverityInfo, models.PriorityLow,
			fmt.Sprintf("Summary is longer than %d characters", v.policy.MaxSummaryChars), "Trim the summary to the essentials")
	}
}

func (v *Validator) checkExperience(c *collector, entries []models.ExperienceEntry) {
	cat := models.CategoryExperience

	filled := 0
	for _, e := range entries {
		if !e.IsEmpty() {
			filled++
		}
	}
	if filled == 0 {
		c.add("experience.missing", "experience", cat, models.SeverityError, models.PriorityHigh,
			"No work experience listed", "Add your work history, most recent first")
	}

	for i, e := range entries {
		if e.IsEmpty() {
			c.add("experience.empty", models.Indexed("experience", i, ""), cat, models.SeverityInfo, models.PriorityLow,
				"Experience entry is empty", "Remove the empty entry")
			continue
		}
		if e.Title == "" {
			c.add("experience.title", models.Indexed("experience", i, "title"), cat, models.SeverityWarning, models.PriorityMedium,
				"Job title is missing", "Add the job title for this position")
		}
		if e.Company == "" {
			c.add("experience.company", models.Indexed("experience", i, "company"), cat, models.SeverityWarning, models.PriorityMedium,
				"Company name is missing", "Add the employer name for this position")
		}
		if !e.HasTimeframe() {
			c.add("experience.duration", models.Indexed("experience", i, "duration"), cat, models.SeverityWarning, models.PriorityMedium,
				"Employment dates are missing", "Add start and end dates, e.g. Jan 2020 - Present")
		}
		if len([]rune(e.Description)) < v.policy.MinDescriptionChars {
			c.add("experience.description", models.Indexed("experience", i, "description"), cat, models.SeverityWarning, models.PriorityMedium,
				"Role description is missing or too short", "Describe what you did and the results you achieved")
		}
		if start, end, ongoing, ok := models.EntryRange(e); ok && !ongoing && start.After(end) {
			c.add("experience.dates", models.Indexed("experience", i, "startDate"), cat, models.SeverityError, models.PriorityHigh,
				"Start date is after end date", "Check the dates for this position")
		}
	}
}

type datedEntry struct {
	index   int
	start   time.Time
	end     time.Time
	ongoing bool
}

// checkGaps flags breaks longer than the policy allows between consecutive positions
func (v *Validator) checkGaps(c *collector, entries []models.ExperienceEntry) {
	dated := make([]datedEntry, 0, len(entries))
	for i, e := range entries {
		if e.IsEmpty() {
			continue
		}
		if start, end, ongoing, ok := models.EntryRange(e); ok {
			dated = append(dated, datedEntry{index: i, start: start, end: end, ongoing: ongoing})
		}
	}
	sort.SliceStable(dated, func(i, j int) bool { return dated[i].start.After(dated[j].start) })

	limit := time.Duration(v.policy.GapDays) * 24 * time.Hour
	for i := 0; i+1 < len(dated); i++ {
		newer, older := dated[i], dated[i+1]
		if older.ongoing {
			continue
		}
		if gap := newer.start.Sub(older.end); gap > limit {
			months := int(gap.Hours() / 24 / 30)
			c.add("experience.gap", models.Indexed("experience", newer.index, ""), models.CategoryExperience, models.SeverityInfo, models.PriorityLow,
				fmt.Sprintf("Employment gap of about %d months before this position", months),
				"Consider briefly explaining the gap")
		}
	}
}

func (v *Validator) checkEducation(c *collector, entries []models.EducationEntry) {
	cat := models.CategoryEducation

	filled := 0
	for i, e := range entries {
		if e.IsEmpty() {
			continue
		}
		filled++
		if e.Degree == "" || e.Institution == "" {
			c.add("education.incomplete", models.Indexed("education", i, ""), cat, models.SeverityWarning, models.PriorityMedium,
				"Education entry is missing the degree or the institution", "Add both the degree and the institution")
		}
	}
	if filled == 0 {
		c.add("education.missing", "education", cat, models.SeverityWarning, models.PriorityMedium,
			"No education listed", "Add your highest degree or relevant training")
	}
}

func (v *Validator) checkSkills(c *collector, s models.Skills) {
	cat := models.CategorySkills

	if s.IsEmpty() {
		c.add("skills.missing", "skills", cat, models.SeverityWarning, models.PriorityHigh,
			"No skills listed", "Add a skills section with your core technical skills")
		return
	}

	if n := len(utils.DedupeFold(s.Technical)); n < v.policy.MinTechnicalSkills {
		c.add("skills.technical.few", "skills.technical", cat, models.SeverityInfo, models.PriorityMedium,
			fmt.Sprintf("Only %d technical skills listed", n), fmt.Sprintf("List at least %d technical skills", v.policy.MinTechnicalSkills))
	}

	if dups := duplicateSkills(s); len(dups) > 0 {
		c.add("skills.duplicates", "skills", cat, models.SeverityInfo, models.PriorityLow,
			"Duplicate skills: "+strings.Join(dups, ", "), "Remove repeated skills")
	}
}

func duplicateSkills(s models.Skills) []string {
	seen := map[string]bool{}
	reported := map[string]bool{}
	var dups []string
	for _, skill := range s.All() {
		key := strings.ToLower(strings.TrimSpace(skill))
		if seen[key] && !reported[key] {
			reported[key] = true
			dups = append(dups, skill)
		}
		seen[key] = true
	}
	return dups
}

func checkExtras(c *collector, cv *models.CVDocument) {
	if len(cv.Projects) == 0 {
		c.add("projects.missing", "projects", models.CategoryProjects, models.SeverityInfo, models.PriorityLow,
			"No projects listed", "Add projects that show your skills in practice")
	}
	if len(cv.Certifications) == 0 {
		c.add("certifications.missing", "certifications", models.CategoryCertifications, models.SeverityInfo, models.PriorityLow,
			"No certifications listed", "Add relevant certifications if you have any")
	}
}
