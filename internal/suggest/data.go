package suggest

import "docsense/pkg/models"

// Confidence per rule family
const (
	confidenceLinkedIn      = 60
	confidenceGitHub        = 55
	confidencePortfolio     = 50
	confidenceDescription   = 75
	confidenceSummary       = 70
	confidenceRewrite       = 85
	confidenceSalary        = 65
	confidenceBenefits      = 70
	confidenceTrendingSkill = 60
)

// trendingSkills is checked in order; the first absent ones are suggested
var trendingSkills = []string{
	"Kubernetes", "Docker", "AWS", "TypeScript", "Go", "Python", "Terraform",
	"PostgreSQL", "GraphQL", "CI/CD", "React", "Machine Learning", "Kafka", "Redis",
}

// Yearly USD bands by seniority
var salaryBands = map[models.ExperienceLevel]models.Salary{
	models.LevelEntry:     {Min: 50000, Max: 70000, Currency: "USD", Period: models.PeriodYearly},
	models.LevelMid:       {Min: 70000, Max: 100000, Currency: "USD", Period: models.PeriodYearly},
	models.LevelSenior:    {Min: 100000, Max: 140000, Currency: "USD", Period: models.PeriodYearly},
	models.LevelLead:      {Min: 130000, Max: 170000, Currency: "USD", Period: models.PeriodYearly},
	models.LevelExecutive: {Min: 160000, Max: 220000, Currency: "USD", Period: models.PeriodYearly},
}

var defaultBenefits = []string{
	"Health insurance",
	"Paid time off",
	"Retirement plan",
	"Learning and development budget",
	"Flexible working hours",
}

// passiveOpeners maps a passive opener to the verb that replaces it
var passiveOpeners = []struct {
	phrase string
	verb   string
}{
	{"responsible for", "Own"},
	{"in charge of", "Lead"},
	{"tasked with", "Drive"},
	{"involved in", "Contribute to"},
	{"helped with", "Support"},
	{"worked on", "Build"},
	{"duties include", "Perform"},
}

// gerunds turns "managing the team" into "Manage the team" after an opener is dropped
var gerunds = map[string]string{
	"analyzing":     "Analyze",
	"building":      "Build",
	"collaborating": "Collaborate",
	"coordinating":  "Coordinate",
	"creating":      "Create",
	"defining":      "Define",
	"delivering":    "Deliver",
	"designing":     "Design",
	"developing":    "Develop",
	"driving":       "Drive",
	"ensuring":      "Ensure",
	"handling":      "Handle",
	"implementing":  "Implement",
	"improving":     "Improve",
	"leading":       "Lead",
	"maintaining":   "Maintain",
	"managing":      "Manage",
	"monitoring":    "Monitor",
	"overseeing":    "Oversee",
	"owning":        "Own",
	"planning":      "Plan",
	"providing":     "Provide",
	"reviewing":     "Review",
	"running":       "Run",
	"supporting":    "Support",
	"testing":       "Test",
	"working":       "Work",
	"writing":       "Write",
}
