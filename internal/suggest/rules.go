package suggest

import (
	"fmt"
	"strings"
	"unicode"

	"docsense/internal/validator"
	"docsense/pkg/models"
	"docsense/pkg/utils"
)

func (e *Engine) suggestCV(b *builder, cv *models.CVDocument, missing models.MissingDataAnalysis) {
	slug := utils.Slug(cv.PersonalInfo.Name)
	if slug == "" {
		slug = "your-name"
	}

	contact := []struct {
		field      string
		value      string
		confidence int
		reason     string
	}{
		{"personalInfo.linkedin", "https://linkedin.com/in/" + slug, confidenceLinkedIn, "Add your LinkedIn profile; most recruiters look for it"},
		{"personalInfo.github", "https://github.com/" + strings.ReplaceAll(slug, "-", ""), confidenceGitHub, "Link your GitHub to back up technical skills"},
		{"personalInfo.portfolio", "https://" + slug + ".dev", confidencePortfolio, "Link a portfolio that shows finished work"},
	}
	for _, c := range contact {
		if impact, ok := tierImpact(missing, c.field); ok {
			b.add(c.field, models.SuggestionContactInfo, models.TextValue(c.value), c.confidence, models.SourceTemplate, impact, c.reason)
		}
	}

	for i, entry := range cv.Experience {
		field := models.Indexed("experience", i, "description")
		impact, ok := tierImpact(missing, field)
		if !ok {
			continue
		}
		b.add(field, models.SuggestionContentImprovement, models.TextValue(describeRole(entry, cv.Skills)),
			confidenceDescription, models.SourceTemplate, impact, "Describe what you did in this role and the results")
	}

	if impact, ok := tierImpact(missing, "summary"); ok {
		b.add("summary", models.SuggestionSummary, models.TextValue(draftSummary(cv)),
			confidenceSummary, models.SourceTemplate, impact, "A short summary frames the rest of the CV")
	}

	present := cv.Skills.All()
	for _, e := range cv.Experience {
		present = append(present, e.Technologies...)
	}
	e.suggestKeywords(b, present, missing)
}

func (e *Engine) suggestJD(b *builder, jd *models.JDDocument, validation models.ValidationResult, missing models.MissingDataAnalysis) {
	for i, item := range jd.Responsibilities {
		if !validator.IsPassive(item) {
			continue
		}
		rewritten := Rewrite(item)
		if rewritten == item {
			continue
		}
		field := models.Indexed("responsibilities", i, "")
		b.add(field, models.SuggestionLanguage, models.TextValue(rewritten), confidenceRewrite, models.SourceRewrite,
			issuePriority(validation, field), "Start responsibilities with an action verb")
	}

	if impact, ok := tierImpact(missing, "salary"); ok {
		band, found := salaryBands[jd.ExperienceLevel]
		if !found {
			band = salaryBands[models.LevelMid]
		}
		b.add("salary", models.SuggestionCompensation, models.SalaryValue(band), confidenceSalary, models.SourceMarketData, impact,
			"Listings with a salary range attract more applicants")
	}

	if impact, ok := tierImpact(missing, "benefits"); ok {
		b.add("benefits", models.SuggestionBenefits, models.ItemsValue(defaultBenefits...), confidenceBenefits, models.SourceTemplate, impact,
			"List the benefits candidates compare offers on")
	}

	e.suggestKeywords(b, jd.Skills.All(), missing)
}

func (e *Engine) suggestKeywords(b *builder, present []string, missing models.MissingDataAnalysis) {
	limit := e.policy.MaxKeywordSuggestions
	var picks []string
	for _, skill := range trendingSkills {
		if limit > 0 && len(picks) >= limit {
			break
		}
		if !utils.ContainsFold(present, skill) {
			picks = append(picks, skill)
		}
	}
	if len(picks) == 0 {
		return
	}

	impact, ok := tierImpact(missing, "skills.technical")
	if !ok {
		impact = models.PriorityLow
	}
	b.add("skills.technical", models.SuggestionKeywords, models.ItemsValue(picks...), confidenceTrendingSkill, models.SourceTrending, impact,
		"In-demand skills that are not listed yet")
}

func issuePriority(validation models.ValidationResult, field string) models.Priority {
	for _, issue := range validation.Issues {
		if issue.Field == field {
			return issue.Priority
		}
	}
	return models.PriorityMedium
}

// Rewrite replaces a passive opener with an action verb:
// "Responsible for managing the team" becomes "Manage the team".
func Rewrite(item string) string {
	trimmed := strings.TrimSpace(item)
	lower := strings.ToLower(trimmed)
	for _, o := range passiveOpeners {
		if !strings.HasPrefix(lower, o.phrase) {
			continue
		}
		rest := strings.TrimSpace(trimmed[len(o.phrase):])
		rest = strings.TrimLeft(rest, ":- ")
		if rest == "" {
			return trimmed
		}
		first, tail, _ := strings.Cut(rest, " ")
		if verb, ok := gerunds[strings.ToLower(first)]; ok {
			return strings.TrimSpace(verb + " " + tail)
		}
		return o.verb + " " + rest
	}
	return trimmed
}

func describeRole(entry models.ExperienceEntry, skills models.Skills) string {
	title := entry.Title
	if title == "" {
		title = "a team member"
	}
	company := entry.Company
	if company == "" {
		company = "the company"
	}

	tech := entry.Technologies
	if len(tech) == 0 {
		tech = skills.Technical
	}
	if len(tech) > 3 {
		tech = tech[:3]
	}

	using := ""
	if len(tech) > 0 {
		using = " using " + joinHuman(tech)
	}
	return fmt.Sprintf("As %s at %s, built and maintained production systems%s, working with the wider team to ship features and improve reliability.",
		title, company, using)
}

func draftSummary(cv *models.CVDocument) string {
	title := "Professional"
	for _, e := range cv.Experience {
		if e.Title != "" {
			title = e.Title
			break
		}
	}

	skills := cv.Skills.Technical
	if len(skills) > 3 {
		skills = skills[:3]
	}
	if len(skills) == 0 {
		return fmt.Sprintf("%s focused on delivering reliable work and growing with a strong team.", capitalize(title))
	}
	return fmt.Sprintf("%s with hands-on experience in %s, focused on delivering reliable work and growing with a strong team.",
		capitalize(title), joinHuman(skills))
}

func joinHuman(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
