// Package analyzer classifies absent and thin fields into critical,
// recommended and optional tiers and ranks the resulting work.
package analyzer

import (
	"fmt"
	"sort"

	"docsense/internal/policy"
	"docsense/internal/validator"
	"docsense/pkg/models"
)

// Analyzer is pure and safe for concurrent use
type Analyzer struct {
	policy policy.Policy
}

// New creates an analyzer bound to a policy
func New(p policy.Policy) *Analyzer {
	return &Analyzer{policy: p}
}

// Analyze applies the decision table for the document type. The validation
// result, when present, adds issue-derived findings such as an invalid email.
func (a *Analyzer) Analyze(doc models.Document, validation models.ValidationResult) models.MissingDataAnalysis {
	t := &table{}
	if doc.Kind() == models.DocumentTypeJD {
		a.analyzeJD(t, models.HydrateJD(doc.JD))
	} else {
		a.analyzeCV(t, models.HydrateCV(doc.CV), validation)
	}
	return a.finish(t)
}

type table struct {
	fields []models.MissingField
}

func (t *table) add(field string, category models.IssueCategory, importance models.Importance, impact int, reason, example string) {
	t.fields = append(t.fields, models.MissingField{
		Field:         field,
		Category:      string(category),
		Importance:    importance,
		Reason:        reason,
		Example:       example,
		ImpactOnScore: impact,
	})
}

func (a *Analyzer) analyzeCV(t *table, cv *models.CVDocument, validation models.ValidationResult) {
	p := cv.PersonalInfo
	pi := models.CategoryPersonalInfo

	if p.Name == "" {
		t.add("personalInfo.name", pi, models.ImportanceCritical, 15, "Recruiters cannot identify the candidate", "Jane Doe")
	}
	switch {
	case p.Email == "":
		t.add("personalInfo.email", pi, models.ImportanceCritical, 15, "No way to contact the candidate by email", "jane.doe@example.com")
	case !validator.EmailValid(p.Email) || validation.HasIssue("personalInfo.email", models.SeverityError):
		t.add("personalInfo.email", pi, models.ImportanceCritical, 15, "Email address is not valid", "jane.doe@example.com")
	}
	if p.Phone == "" {
		t.add("personalInfo.phone", pi, models.ImportanceRecommended, 8, "Many recruiters call before emailing", "+1 555 123 4567")
	}
	if p.Location == "" {
		t.add("personalInfo.location", pi, models.ImportanceRecommended, 5, "Location filters are common in candidate search", "Berlin, Germany")
	}
	if p.LinkedIn == "" {
		t.add("personalInfo.linkedin", pi, models.ImportanceRecommended, 5, "Most recruiters check LinkedIn", "https://linkedin.com/in/jane-doe")
	}
	if p.GitHub == "" {
		t.add("personalInfo.github", pi, models.ImportanceOptional, 2, "Code samples support technical claims", "https://github.com/janedoe")
	}
	if p.Portfolio == "" {
		t.add("personalInfo.portfolio", pi, models.ImportanceOptional, 2, "A portfolio shows finished work", "https://janedoe.dev")
	}

	summary := cv.Summary
	if summary == "" {
		summary = cv.Objective
	}
	switch {
	case summary == "":
		t.add("summary", models.CategorySummary, models.ImportanceRecommended, 10, "A summary frames the rest of the CV", "Backend engineer with 6 years of experience in payments")
	case len([]rune(summary)) < a.policy.MinSummaryChars:
		t.add("summary", models.CategorySummary, models.ImportanceRecommended, 5,
			fmt.Sprintf("Summary is shorter than %d characters", a.policy.MinSummaryChars), "Backend engineer with 6 years of experience in payments")
	}

	exp := models.CategoryExperience
	filled := 0
	for _, e := range cv.Experience {
		if !e.IsEmpty() {
			filled++
		}
	}
	if filled == 0 {
		t.add("experience", exp, models.ImportanceCritical, 25, "Work history is the core of a CV", "Software Engineer, Acme, 2020 - Present")
	}
	for i, e := range cv.Experience {
		if e.IsEmpty() {
			continue
		}
		if len([]rune(e.Description)) < a.policy.MinDescriptionChars {
			t.add(models.Indexed("experience", i, "description"), exp, models.ImportanceCritical, 8,
				fmt.Sprintf("Description is shorter than %d characters", a.policy.MinDescriptionChars),
				"Built and operated the billing API, cutting invoice errors by 30%")
		}
		if !e.HasTimeframe() {
			t.add(models.Indexed("experience", i, "duration"), exp, models.ImportanceRecommended, 3, "Dates show career progression", "Jan 2020 - Present")
		}
	}

	hasEducation := false
	for _, e := range cv.Education {
		if !e.IsEmpty() {
			hasEducation = true
			break
		}
	}
	if !hasEducation {
		t.add("education", models.CategoryEducation, models.ImportanceRecommended, 12, "Many roles screen on education", "BSc Computer Science, TU Berlin")
	}

	sk := models.CategorySkills
	switch n := len(cv.Skills.Technical); {
	case n == 0:
		t.add("skills.technical", sk, models.ImportanceCritical, 15, "Technical skills drive keyword matching", "Go, PostgreSQL, Kubernetes")
	case n < a.policy.MinTechnicalSkills:
		t.add("skills.technical", sk, models.ImportanceRecommended, 10,
			fmt.Sprintf("Fewer than %d technical skills listed", a.policy.MinTechnicalSkills), "Go, PostgreSQL, Kubernetes, gRPC, Redis")
	}
	if len(cv.Skills.Soft) < a.policy.MinSoftSkills {
		t.add("skills.soft", sk, models.ImportanceOptional, 3,
			fmt.Sprintf("Fewer than %d soft skills listed", a.policy.MinSoftSkills), "Communication, Mentoring, Planning")
	}

	if len(cv.Certifications) == 0 {
		t.add("certifications", models.CategoryCertifications, models.ImportanceOptional, 3, "Certifications back up skill claims", "AWS Certified Solutions Architect")
	}
	if len(cv.Projects) == 0 {
		t.add("projects", models.CategoryProjects, models.ImportanceOptional, 4, "Projects show skills in practice", "Open-source rate limiter in Go")
	}
}

func (a *Analyzer) analyzeJD(t *table, jd *models.JDDocument) {
	ji := models.CategoryJobInfo

	if jd.JobTitle == "" {
		t.add("jobTitle", ji, models.ImportanceCritical, 18, "Candidates search by title", "Senior Backend Engineer")
	}
	if jd.Company == "" {
		t.add("company", ji, models.ImportanceCritical, 15, "Candidates want to know who is hiring", "Acme Corp")
	}
	if jd.Location == "" {
		t.add("location", ji, models.ImportanceRecommended, 8, "Location is a primary search filter", "Berlin, Germany")
	}
	if jd.EmploymentType == "" {
		t.add("employmentType", ji, models.ImportanceRecommended, 5, "Contract type affects who applies", string(models.EmploymentFullTime))
	}
	if jd.ExperienceLevel == "" {
		t.add("experienceLevel", ji, models.ImportanceRecommended, 5, "Seniority sets candidate expectations", string(models.LevelSenior))
	}
	if jd.RemoteOption == "" {
		t.add("remoteOption", ji, models.ImportanceOptional, 2, "Remote policy is a common filter", string(models.RemoteHybrid))
	}

	resp := models.CategoryResponsibilities
	switch n := len(jd.Responsibilities); {
	case n == 0:
		t.add("responsibilities", resp, models.ImportanceCritical, 20, "Candidates need to know what the job involves", "Design and build payment APIs")
	case n < a.policy.MinResponsibilities:
		t.add("responsibilities", resp, models.ImportanceRecommended, 10,
			fmt.Sprintf("Fewer than %d responsibilities listed", a.policy.MinResponsibilities), "Own services end to end in production")
	}

	req := models.CategoryRequirements
	switch n := len(jd.Requirements.Required); {
	case n == 0:
		t.add("requirements.required", req, models.ImportanceCritical, 18, "Candidates cannot judge their fit", "3+ years of backend development")
	case n < a.policy.MinRequiredQualifications:
		t.add("requirements.required", req, models.ImportanceRecommended, 8,
			fmt.Sprintf("Fewer than %d required qualifications listed", a.policy.MinRequiredQualifications), "Experience with relational databases")
	}
	if len(jd.Requirements.Preferred) == 0 {
		t.add("requirements.preferred", req, models.ImportanceOptional, 3, "Nice-to-haves widen the pool without lowering the bar", "Kubernetes experience")
	}

	switch {
	case jd.Summary == "":
		t.add("summary", models.CategorySummary, models.ImportanceRecommended, 10, "A summary sells the role in seconds", "Join the payments team to build services used by millions")
	case len([]rune(jd.Summary)) < a.policy.MinSummaryChars:
		t.add("summary", models.CategorySummary, models.ImportanceRecommended, 5,
			fmt.Sprintf("Summary is shorter than %d characters", a.policy.MinSummaryChars), "Join the payments team to build services used by millions")
	}

	comp := models.CategoryCompensation
	if jd.Salary.IsEmpty() {
		t.add("salary", comp, models.ImportanceRecommended, 8, "Listings with pay ranges get more applicants", "90,000 - 120,000 EUR per year")
	}
	if len(jd.Benefits) == 0 {
		t.add("benefits", comp, models.ImportanceRecommended, 6, "Benefits differentiate the offer", "30 days paid vacation")
	}

	if len(jd.Skills.Technical) == 0 {
		t.add("skills.technical", models.CategorySkills, models.ImportanceRecommended, 8, "Technical skills drive candidate matching", "Go, PostgreSQL")
	}

	if jd.AboutCompany == "" {
		t.add("aboutCompany", models.CategoryCompany, models.ImportanceOptional, 3, "Candidates research the company before applying", "Acme builds payment infrastructure for Europe")
	}
	if jd.Department == "" {
		t.add("department", ji, models.ImportanceOptional, 1, "Department helps candidates place the role", "Engineering")
	}
	if jd.TeamSize == "" {
		t.add("teamSize", ji, models.ImportanceOptional, 1, "Team size sets expectations about scope", "8 engineers")
	}
}

func (a *Analyzer) finish(t *table) models.MissingDataAnalysis {
	out := models.MissingDataAnalysis{
		Critical:    []models.MissingField{},
		Recommended: []models.MissingField{},
		Optional:    []models.MissingField{},
	}
	for _, f := range t.fields {
		switch f.Importance {
		case models.ImportanceCritical:
			out.Critical = append(out.Critical, f)
		case models.ImportanceRecommended:
			out.Recommended = append(out.Recommended, f)
		default:
			out.Optional = append(out.Optional, f)
		}
	}
	out.OverallScore = models.MissingDataScore(len(out.Critical), len(out.Recommended), len(out.Optional))
	out.PriorityActions = a.priorityActions(t.fields)
	return out
}

// priorityActions groups fields by category in evaluation order, ranks the
// groups by summed impact and renders the top entries
func (a *Analyzer) priorityActions(fields []models.MissingField) []models.PriorityAction {
	var order []string
	groups := map[string][]models.MissingField{}
	for _, f := range fields {
		if _, ok := groups[f.Category]; !ok {
			order = append(order, f.Category)
		}
		groups[f.Category] = append(groups[f.Category], f)
	}

	actions := make([]models.PriorityAction, 0, len(order))
	for _, cat := range order {
		group := groups[cat]
		impact := 0
		names := make([]string, len(group))
		for i, f := range group {
			impact += f.ImpactOnScore
			names[i] = f.Field
		}
		tpl := templateFor(cat)
		actions = append(actions, models.PriorityAction{
			Title:         tpl.title,
			Description:   tpl.description,
			EstimatedTime: tpl.estimatedTime,
			ImpactScore:   min(100, impact),
			Difficulty:    tpl.difficulty,
			Category:      cat,
			Fields:        names,
		})
	}

	sort.SliceStable(actions, func(i, j int) bool { return actions[i].ImpactScore > actions[j].ImpactScore })

	limit := a.policy.MaxPriorityActions
	if limit > 0 && len(actions) > limit {
		actions = actions[:limit]
	}
	return actions
}
