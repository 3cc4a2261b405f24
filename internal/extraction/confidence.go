package extraction

import (
	"math"

	"docsense/pkg/models"
	"docsense/pkg/utils"
)

// Confidence scores how much of the document an extraction recovered. It
// looks only at the result, never at any self-reported model confidence.
func Confidence(doc models.Document) int {
	var earned, total float64
	add := func(weight float64, present bool) {
		total += weight
		if present {
			earned += weight
		}
	}
	perEntry := func(per, limit float64, n int) {
		total += limit
		earned += math.Min(limit, per*float64(n))
	}

	switch kind := doc.Kind(); {
	case kind == models.DocumentTypeJD && doc.JD != nil:
		jd := doc.JD
		add(15, !utils.Blank(jd.JobTitle))
		add(10, !utils.Blank(jd.Company))
		add(5, !utils.Blank(jd.Location))
		perEntry(6, 30, len(jd.Responsibilities))
		perEntry(5, 25, len(jd.Requirements.Required)+len(jd.Requirements.Preferred))
		add(15, !jd.Skills.IsEmpty())
	case kind == models.DocumentTypeCV && doc.CV != nil:
		cv := doc.CV
		add(15, !utils.Blank(cv.PersonalInfo.Name))
		add(10, !utils.Blank(cv.PersonalInfo.Email))
		add(10, !utils.Blank(cv.PersonalInfo.Phone))
		add(5, !utils.Blank(cv.PersonalInfo.Location))
		perEntry(10, 30, countNonEmpty(cv.Experience))
		perEntry(7.5, 15, countNonEmptyEducation(cv.Education))
		add(15, !cv.Skills.IsEmpty())
	default:
		return 0
	}

	if total == 0 {
		return 0
	}
	return int(math.Round(100 * earned / total))
}

func countNonEmpty(entries []models.ExperienceEntry) int {
	n := 0
	for _, e := range entries {
		if !e.IsEmpty() {
			n++
		}
	}
	return n
}

func countNonEmptyEducation(entries []models.EducationEntry) int {
	n := 0
	for _, e := range entries {
		if !e.IsEmpty() {
			n++
		}
	}
	return n
}
