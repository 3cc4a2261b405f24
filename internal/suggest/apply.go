package suggest

import (
	"errors"
	"fmt"
	"strings"

	"docsense/pkg/models"
	"docsense/pkg/utils"
)

var (
	ErrUnknownField  = errors.New("unknown suggestion field")
	ErrValueMismatch = errors.New("suggested value does not fit field")
)

// Apply writes the suggested value into a copy of doc. Text fields are
// overwritten, lists are unioned in order and indexed items are replaced,
// so applying the same suggestion twice changes nothing the second time.
func Apply(doc models.Document, s models.DataSuggestion) (models.Document, error) {
	path, err := models.ParseFieldPath(s.Field)
	if err != nil {
		return doc, err
	}
	if path.Depth() > 2 {
		return doc, fmt.Errorf("%w: %s is deeper than two levels", ErrUnknownField, s.Field)
	}

	out := models.Hydrate(doc)
	if out.Type == models.DocumentTypeJD {
		err = applyJD(out.JD, path, s.SuggestedValue)
	} else {
		err = applyCV(out.CV, path, s.SuggestedValue)
	}
	if err != nil {
		return doc, err
	}
	return out, nil
}

func unknown(path models.FieldPath) error {
	return fmt.Errorf("%w: %s", ErrUnknownField, path.String())
}

func applyCV(cv *models.CVDocument, path models.FieldPath, v models.SuggestedValue) error {
	head := path.Segments[0]
	child, hasChild := childOf(path)

	switch head.Name {
	case "summary", "objective":
		if hasChild || head.Index >= 0 {
			return unknown(path)
		}
		if head.Name == "summary" {
			return setText(&cv.Summary, v)
		}
		return setText(&cv.Objective, v)

	case "personalInfo":
		if !hasChild || head.Index >= 0 || child.Index >= 0 {
			return unknown(path)
		}
		dst := personalField(&cv.PersonalInfo, child.Name)
		if dst == nil {
			return unknown(path)
		}
		return setText(dst, v)

	case "experience":
		if head.Index < 0 || !hasChild || child.Index >= 0 {
			return unknown(path)
		}
		if head.Index >= len(cv.Experience) {
			return fmt.Errorf("%w: %s is out of range", ErrUnknownField, path.String())
		}
		e := &cv.Experience[head.Index]
		switch child.Name {
		case "technologies":
			return mergeList(&e.Technologies, v)
		case "achievements":
			return mergeList(&e.Achievements, v)
		}
		dst := experienceField(e, child.Name)
		if dst == nil {
			return unknown(path)
		}
		return setText(dst, v)

	case "education":
		if head.Index < 0 || !hasChild || child.Index >= 0 {
			return unknown(path)
		}
		if head.Index >= len(cv.Education) {
			return fmt.Errorf("%w: %s is out of range", ErrUnknownField, path.String())
		}
		dst := educationField(&cv.Education[head.Index], child.Name)
		if dst == nil {
			return unknown(path)
		}
		return setText(dst, v)

	case "skills":
		if !hasChild || head.Index >= 0 {
			return unknown(path)
		}
		dst := skillList(&cv.Skills, child.Name)
		if dst == nil {
			return unknown(path)
		}
		return listOp(dst, child.Index, v)
	}
	return unknown(path)
}

func applyJD(jd *models.JDDocument, path models.FieldPath, v models.SuggestedValue) error {
	head := path.Segments[0]
	child, hasChild := childOf(path)

	if !hasChild {
		switch head.Name {
		case "responsibilities":
			return listOp(&jd.Responsibilities, head.Index, v)
		case "benefits":
			return listOp(&jd.Benefits, head.Index, v)
		case "salary":
			if head.Index >= 0 || v.Salary == nil {
				return fmt.Errorf("%w: salary needs a salary value", ErrValueMismatch)
			}
			jd.Salary = *v.Salary
			return nil
		}
		if head.Index >= 0 {
			return unknown(path)
		}
		return setJDScalar(jd, head.Name, path, v)
	}

	if head.Index >= 0 {
		return unknown(path)
	}
	switch head.Name {
	case "salary":
		if child.Index >= 0 {
			return unknown(path)
		}
		switch child.Name {
		case "currency":
			return setText(&jd.Salary.Currency, v)
		case "period":
			var raw string
			if err := setText(&raw, v); err != nil {
				return err
			}
			period := models.NormalizeSalaryPeriod(raw)
			if period == "" {
				return fmt.Errorf("%w: unknown salary period %q", ErrValueMismatch, raw)
			}
			jd.Salary.Period = period
			return nil
		}
	case "requirements":
		switch child.Name {
		case "required":
			return listOp(&jd.Requirements.Required, child.Index, v)
		case "preferred":
			return listOp(&jd.Requirements.Preferred, child.Index, v)
		}
	case "skills":
		if dst := skillList(&jd.Skills, child.Name); dst != nil {
			return listOp(dst, child.Index, v)
		}
	}
	return unknown(path)
}

func setJDScalar(jd *models.JDDocument, name string, path models.FieldPath, v models.SuggestedValue) error {
	var text string
	switch name {
	case "jobTitle":
		return setText(&jd.JobTitle, v)
	case "company":
		return setText(&jd.Company, v)
	case "location":
		return setText(&jd.Location, v)
	case "summary":
		return setText(&jd.Summary, v)
	case "aboutCompany":
		return setText(&jd.AboutCompany, v)
	case "department":
		return setText(&jd.Department, v)
	case "teamSize":
		return setText(&jd.TeamSize, v)
	case "employmentType", "experienceLevel", "remoteOption":
		if err := setText(&text, v); err != nil {
			return err
		}
	default:
		return unknown(path)
	}

	switch name {
	case "employmentType":
		if jd.EmploymentType = models.NormalizeEmploymentType(text); jd.EmploymentType != "" {
			return nil
		}
	case "experienceLevel":
		if jd.ExperienceLevel = models.NormalizeExperienceLevel(text); jd.ExperienceLevel != "" {
			return nil
		}
	case "remoteOption":
		if jd.RemoteOption = models.NormalizeRemoteOption(text); jd.RemoteOption != "" {
			return nil
		}
	}
	return fmt.Errorf("%w: %q is not a valid %s", ErrValueMismatch, text, name)
}

func childOf(path models.FieldPath) (models.Segment, bool) {
	if path.Depth() < 2 {
		return models.Segment{Index: -1}, false
	}
	return path.Segments[1], true
}

func personalField(p *models.PersonalInfo, name string) *string {
	switch name {
	case "name":
		return &p.Name
	case "email":
		return &p.Email
	case "phone":
		return &p.Phone
	case "location":
		return &p.Location
	case "linkedin":
		return &p.LinkedIn
	case "github":
		return &p.GitHub
	case "portfolio":
		return &p.Portfolio
	}
	return nil
}

func experienceField(e *models.ExperienceEntry, name string) *string {
	switch name {
	case "title":
		return &e.Title
	case "company":
		return &e.Company
	case "location":
		return &e.Location
	case "duration":
		return &e.Duration
	case "startDate":
		return &e.StartDate
	case "endDate":
		return &e.EndDate
	case "description":
		return &e.Description
	}
	return nil
}

func educationField(e *models.EducationEntry, name string) *string {
	switch name {
	case "degree":
		return &e.Degree
	case "institution":
		return &e.Institution
	case "field":
		return &e.Field
	case "location":
		return &e.Location
	case "startDate":
		return &e.StartDate
	case "endDate":
		return &e.EndDate
	case "gpa":
		return &e.GPA
	}
	return nil
}

func skillList(s *models.Skills, name string) *[]string {
	switch name {
	case "technical":
		return &s.Technical
	case "soft":
		return &s.Soft
	case "tools":
		return &s.Tools
	case "frameworks":
		return &s.Frameworks
	case "databases":
		return &s.Databases
	case "languages":
		return &s.Languages
	}
	return nil
}

func setText(dst *string, v models.SuggestedValue) error {
	if v.IsList() || v.Salary != nil {
		return fmt.Errorf("%w: expected text", ErrValueMismatch)
	}
	*dst = strings.TrimSpace(v.Text)
	return nil
}

// listOp replaces item index when index >= 0, otherwise unions the value in
func listOp(dst *[]string, index int, v models.SuggestedValue) error {
	if index < 0 {
		return mergeList(dst, v)
	}
	if index >= len(*dst) {
		return fmt.Errorf("%w: index %d is out of range", ErrUnknownField, index)
	}
	if utils.Blank(v.Text) {
		return fmt.Errorf("%w: list items cannot be blank", ErrValueMismatch)
	}
	return setText(&(*dst)[index], v)
}

func mergeList(dst *[]string, v models.SuggestedValue) error {
	if v.Salary != nil {
		return fmt.Errorf("%w: expected a list", ErrValueMismatch)
	}
	items := v.Items
	if !v.IsList() {
		items = []string{v.Text}
	}
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" || utils.ContainsFold(*dst, item) {
			continue
		}
		*dst = append(*dst, item)
	}
	return nil
}
