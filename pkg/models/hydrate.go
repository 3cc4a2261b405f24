package models

import "strings"

// Hydrate returns a fully-populated copy of d: the pointer matching d.Kind()
// is non-nil, every collection is a non-nil slice, strings are trimmed and
// enums are normalized. Unknown enum values are cleared.
func Hydrate(d Document) Document {
	if d.Kind() == DocumentTypeJD {
		return NewJDDocument(HydrateJD(d.JD))
	}
	return NewCVDocument(HydrateCV(d.CV))
}

// HydrateCV fills every optional collection and trims every string
func HydrateCV(in *CVDocument) *CVDocument {
	cv := in.Clone()
	if cv == nil {
		cv = &CVDocument{}
	}

	p := &cv.PersonalInfo
	p.Name = trim(p.Name)
	p.Email = trim(p.Email)
	p.Phone = trim(p.Phone)
	p.Location = trim(p.Location)
	p.LinkedIn = trim(p.LinkedIn)
	p.GitHub = trim(p.GitHub)
	p.Portfolio = trim(p.Portfolio)

	cv.Summary = trim(cv.Summary)
	cv.Objective = trim(cv.Objective)

	for i := range cv.Experience {
		e := &cv.Experience[i]
		e.Title = trim(e.Title)
		e.Company = trim(e.Company)
		e.Location = trim(e.Location)
		e.Duration = trim(e.Duration)
		e.StartDate = trim(e.StartDate)
		e.EndDate = trim(e.EndDate)
		e.Description = trim(e.Description)
		e.Technologies = trimAll(e.Technologies)
		e.Achievements = trimAll(e.Achievements)
		if e.StartDate == "" && e.Duration != "" {
			e.StartDate, e.EndDate = SplitDuration(e.Duration)
		}
	}
	for i := range cv.Education {
		e := &cv.Education[i]
		e.Degree = trim(e.Degree)
		e.Institution = trim(e.Institution)
		e.Field = trim(e.Field)
		e.Location = trim(e.Location)
		e.StartDate = trim(e.StartDate)
		e.EndDate = trim(e.EndDate)
		e.GPA = trim(e.GPA)
		e.Achievements = trimAll(e.Achievements)
	}
	for i := range cv.Projects {
		cv.Projects[i].Name = trim(cv.Projects[i].Name)
		cv.Projects[i].Description = trim(cv.Projects[i].Description)
		cv.Projects[i].Technologies = trimAll(cv.Projects[i].Technologies)
	}
	for i := range cv.Certifications {
		cv.Certifications[i].Name = trim(cv.Certifications[i].Name)
		cv.Certifications[i].Issuer = trim(cv.Certifications[i].Issuer)
	}

	cv.Skills = hydrateSkills(cv.Skills)
	return cv
}

// HydrateJD fills every optional collection, trims strings and normalizes enums
func HydrateJD(in *JDDocument) *JDDocument {
	jd := in.Clone()
	if jd == nil {
		jd = &JDDocument{}
	}

	jd.JobTitle = trim(jd.JobTitle)
	jd.Company = trim(jd.Company)
	jd.Location = trim(jd.Location)
	jd.Summary = trim(jd.Summary)
	jd.AboutCompany = trim(jd.AboutCompany)
	jd.Department = trim(jd.Department)
	jd.TeamSize = trim(jd.TeamSize)

	jd.EmploymentType = NormalizeEmploymentType(string(jd.EmploymentType))
	jd.ExperienceLevel = NormalizeExperienceLevel(string(jd.ExperienceLevel))
	jd.RemoteOption = NormalizeRemoteOption(string(jd.RemoteOption))
	jd.Salary.Currency = strings.ToUpper(trim(jd.Salary.Currency))
	jd.Salary.Period = NormalizeSalaryPeriod(string(jd.Salary.Period))

	jd.Responsibilities = trimAll(jd.Responsibilities)
	jd.Requirements.Required = trimAll(jd.Requirements.Required)
	jd.Requirements.Preferred = trimAll(jd.Requirements.Preferred)
	jd.Requirements.Education.Level = trim(jd.Requirements.Education.Level)
	jd.Requirements.Education.Field = trim(jd.Requirements.Education.Field)
	jd.Requirements.Experience.Description = trim(jd.Requirements.Experience.Description)
	jd.Benefits = trimAll(jd.Benefits)
	jd.Skills = hydrateSkills(jd.Skills)
	return jd
}

func hydrateSkills(s Skills) Skills {
	return Skills{
		Technical:  trimAll(s.Technical),
		Soft:       trimAll(s.Soft),
		Tools:      trimAll(s.Tools),
		Frameworks: trimAll(s.Frameworks),
		Databases:  trimAll(s.Databases),
		Languages:  trimAll(s.Languages),
	}
}

func enumKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", "-", " ", "-").Replace(s)
}

// NormalizeEmploymentType maps synonyms such as "Full Time" or "FULL_TIME"
func NormalizeEmploymentType(s string) EmploymentType {
	switch enumKey(s) {
	case "full-time", "fulltime", "permanent":
		return EmploymentFullTime
	case "part-time", "parttime":
		return EmploymentPartTime
	case "contract", "contractor":
		return EmploymentContract
	case "internship", "intern":
		return EmploymentInternship
	case "temporary", "temp":
		return EmploymentTemporary
	case "freelance", "freelancer":
		return EmploymentFreelance
	default:
		return ""
	}
}

// NormalizeExperienceLevel maps synonyms such as "Junior" or "Principal"
func NormalizeExperienceLevel(s string) ExperienceLevel {
	switch enumKey(s) {
	case "entry", "entry-level", "junior", "graduate":
		return LevelEntry
	case "mid", "mid-level", "intermediate":
		return LevelMid
	case "senior", "sr":
		return LevelSenior
	case "lead", "principal", "staff":
		return LevelLead
	case "executive", "director", "vp":
		return LevelExecutive
	default:
		return ""
	}
}

// NormalizeRemoteOption maps synonyms such as "On-site" or "WFH"
func NormalizeRemoteOption(s string) RemoteOption {
	switch enumKey(s) {
	case "onsite", "on-site", "office", "in-office":
		return RemoteOnsite
	case "remote", "fully-remote", "wfh":
		return RemoteRemote
	case "hybrid":
		return RemoteHybrid
	default:
		return ""
	}
}

// NormalizeSalaryPeriod maps "per year", "annual", "hour" and friends
func NormalizeSalaryPeriod(s string) SalaryPeriod {
	switch strings.TrimPrefix(enumKey(s), "per-") {
	case "hourly", "hour", "hr":
		return PeriodHourly
	case "monthly", "month":
		return PeriodMonthly
	case "yearly", "year", "annual", "annually", "annum":
		return PeriodYearly
	default:
		return ""
	}
}

func trim(s string) string {
	return strings.TrimSpace(s)
}

// trimAll trims items, drops blanks and guarantees a non-nil slice
func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}
