package analyzer

import "docsense/pkg/models"

type actionTemplate struct {
	title         string
	description   string
	estimatedTime string
	difficulty    models.Difficulty
}

var actionTemplates = map[models.IssueCategory]actionTemplate{
	models.CategoryPersonalInfo: {
		title:         "Complete your contact details",
		description:   "Add the missing contact information so recruiters can reach you and verify your profile.",
		estimatedTime: "5 minutes",
		difficulty:    models.DifficultyEasy,
	},
	models.CategorySummary: {
		title:         "Write a strong summary",
		description:   "Open with two or three sentences covering your focus, experience and what you are looking for.",
		estimatedTime: "15 minutes",
		difficulty:    models.DifficultyMedium,
	},
	models.CategoryExperience: {
		title:         "Strengthen your work experience",
		description:   "Describe each role with concrete responsibilities, results and dates.",
		estimatedTime: "30 minutes",
		difficulty:    models.DifficultyMedium,
	},
	models.CategoryEducation: {
		title:         "Add your education",
		description:   "List your highest degree and the institution that awarded it.",
		estimatedTime: "10 minutes",
		difficulty:    models.DifficultyEasy,
	},
	models.CategorySkills: {
		title:         "Expand the skills section",
		description:   "List the technologies and strengths that match the roles you target.",
		estimatedTime: "10 minutes",
		difficulty:    models.DifficultyEasy,
	},
	models.CategoryProjects: {
		title:         "Showcase your projects",
		description:   "Add one or two projects with a short description and the technologies used.",
		estimatedTime: "30 minutes",
		difficulty:    models.DifficultyMedium,
	},
	models.CategoryCertifications: {
		title:         "List your certifications",
		description:   "Add certifications that back up your skills.",
		estimatedTime: "5 minutes",
		difficulty:    models.DifficultyEasy,
	},
	models.CategoryJobInfo: {
		title:         "Complete the job basics",
		description:   "Fill in the title, company, location and contract details candidates filter on.",
		estimatedTime: "5 minutes",
		difficulty:    models.DifficultyEasy,
	},
	models.CategoryResponsibilities: {
		title:         "Describe the responsibilities",
		description:   "List the main responsibilities starting with action verbs.",
		estimatedTime: "20 minutes",
		difficulty:    models.DifficultyMedium,
	},
	models.CategoryRequirements: {
		title:         "Clarify the requirements",
		description:   "Separate must-have qualifications from nice-to-haves.",
		estimatedTime: "15 minutes",
		difficulty:    models.DifficultyMedium,
	},
	models.CategoryCompensation: {
		title:         "Add compensation and benefits",
		description:   "Publish a salary range and the main benefits.",
		estimatedTime: "10 minutes",
		difficulty:    models.DifficultyEasy,
	},
	models.CategoryCompany: {
		title:         "Tell candidates about the company",
		description:   "Add a short paragraph on what the company does and why people join.",
		estimatedTime: "15 minutes",
		difficulty:    models.DifficultyMedium,
	},
}

func templateFor(category string) actionTemplate {
	if tpl, ok := actionTemplates[models.IssueCategory(category)]; ok {
		return tpl
	}
	return actionTemplate{
		title:         "Fill in missing " + category,
		description:   "Complete the missing fields in this section.",
		estimatedTime: "10 minutes",
		difficulty:    models.DifficultyEasy,
	}
}
