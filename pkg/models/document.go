package models

import "strings"

// DocumentType identifies which schema a document follows
type DocumentType string

const (
	DocumentTypeCV DocumentType = "cv"
	DocumentTypeJD DocumentType = "jd"
)

// Valid reports whether t is a known document type
func (t DocumentType) Valid() bool {
	return t == DocumentTypeCV || t == DocumentTypeJD
}

// ParseDocumentType accepts "cv", "resume", "jd" and "job" in any case
func ParseDocumentType(s string) (DocumentType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cv", "resume":
		return DocumentTypeCV, true
	case "jd", "job", "job_description":
		return DocumentTypeJD, true
	default:
		return "", false
	}
}

// Document holds exactly one of a CV or a JD
type Document struct {
	Type DocumentType `json:"type"`
	CV   *CVDocument  `json:"cv,omitempty"`
	JD   *JDDocument  `json:"jd,omitempty"`
}

// NewCVDocument wraps a CV
func NewCVDocument(cv *CVDocument) Document {
	return Document{Type: DocumentTypeCV, CV: cv}
}

// NewJDDocument wraps a JD
func NewJDDocument(jd *JDDocument) Document {
	return Document{Type: DocumentTypeJD, JD: jd}
}

// Kind resolves the document type. An explicit Type wins; an untyped
// document with only a JD is a JD, anything else is a CV.
func (d Document) Kind() DocumentType {
	if d.Type == DocumentTypeJD || (d.Type != DocumentTypeCV && d.JD != nil) {
		return DocumentTypeJD
	}
	return DocumentTypeCV
}

// Clone returns a deep copy so callers can mutate without aliasing
func (d Document) Clone() Document {
	out := Document{Type: d.Type}
	if d.CV != nil {
		out.CV = d.CV.Clone()
	}
	if d.JD != nil {
		out.JD = d.JD.Clone()
	}
	return out
}

// Skills is shared by CVs and JDs
type Skills struct {
	Technical  []string `json:"technical"`
	Soft       []string `json:"soft"`
	Tools      []string `json:"tools"`
	Frameworks []string `json:"frameworks"`
	Databases  []string `json:"databases"`
	Languages  []string `json:"languages"`
}

// All returns every skill in category order
func (s Skills) All() []string {
	var all []string
	for _, group := range [][]string{s.Technical, s.Soft, s.Tools, s.Frameworks, s.Databases, s.Languages} {
		all = append(all, group...)
	}
	return all
}

// IsEmpty reports whether no category has an entry
func (s Skills) IsEmpty() bool {
	return len(s.All()) == 0
}

func (s Skills) clone() Skills {
	return Skills{
		Technical:  cloneStrings(s.Technical),
		Soft:       cloneStrings(s.Soft),
		Tools:      cloneStrings(s.Tools),
		Frameworks: cloneStrings(s.Frameworks),
		Databases:  cloneStrings(s.Databases),
		Languages:  cloneStrings(s.Languages),
	}
}

// PersonalInfo represents candidate contact details
type PersonalInfo struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	LinkedIn  string `json:"linkedin"`
	GitHub    string `json:"github"`
	Portfolio string `json:"portfolio"`
}

// ExperienceEntry represents a single position held
type ExperienceEntry struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	Duration     string   `json:"duration"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Achievements []string `json:"achievements"`
}

// IsEmpty reports an entry with neither title nor company
func (e ExperienceEntry) IsEmpty() bool {
	return strings.TrimSpace(e.Title) == "" && strings.TrimSpace(e.Company) == ""
}

// HasTimeframe reports whether a duration or start date is known
func (e ExperienceEntry) HasTimeframe() bool {
	return strings.TrimSpace(e.Duration) != "" || strings.TrimSpace(e.StartDate) != ""
}

// EducationEntry represents a degree or course of study
type EducationEntry struct {
	Degree       string   `json:"degree"`
	Institution  string   `json:"institution"`
	Field        string   `json:"field"`
	Location     string   `json:"location"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	GPA          string   `json:"gpa"`
	Achievements []string `json:"achievements"`
}

// IsEmpty reports an entry with neither degree nor institution
func (e EducationEntry) IsEmpty() bool {
	return strings.TrimSpace(e.Degree) == "" && strings.TrimSpace(e.Institution) == ""
}

type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
	Expiry string `json:"expiry"`
	ID     string `json:"credentialId"`
	URL    string `json:"url"`
}

type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	URL          string   `json:"url"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
}

type Award struct {
	Title       string `json:"title"`
	Issuer      string `json:"issuer"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

type Publication struct {
	Title     string `json:"title"`
	Publisher string `json:"publisher"`
	Date      string `json:"date"`
	URL       string `json:"url"`
}

type VolunteerEntry struct {
	Role         string `json:"role"`
	Organization string `json:"organization"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Description  string `json:"description"`
}

type Reference struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Contact      string `json:"contact"`
}

// CVDocument represents a structured résumé
type CVDocument struct {
	PersonalInfo   PersonalInfo      `json:"personalInfo"`
	Summary        string            `json:"summary"`
	Objective      string            `json:"objective"`
	Experience     []ExperienceEntry `json:"experience"`
	Education      []EducationEntry  `json:"education"`
	Skills         Skills            `json:"skills"`
	Certifications []Certification   `json:"certifications"`
	Projects       []Project         `json:"projects"`
	Awards         []Award           `json:"awards"`
	Publications   []Publication     `json:"publications"`
	Volunteer      []VolunteerEntry  `json:"volunteer"`
	References     []Reference       `json:"references"`
}

// Clone deep-copies the CV
func (cv *CVDocument) Clone() *CVDocument {
	if cv == nil {
		return nil
	}
	out := *cv
	out.Experience = make([]ExperienceEntry, len(cv.Experience))
	for i, e := range cv.Experience {
		e.Technologies = cloneStrings(e.Technologies)
		e.Achievements = cloneStrings(e.Achievements)
		out.Experience[i] = e
	}
	out.Education = make([]EducationEntry, len(cv.Education))
	for i, e := range cv.Education {
		e.Achievements = cloneStrings(e.Achievements)
		out.Education[i] = e
	}
	out.Skills = cv.Skills.clone()
	out.Certifications = append([]Certification{}, cv.Certifications...)
	out.Projects = make([]Project, len(cv.Projects))
	for i, p := range cv.Projects {
		p.Technologies = cloneStrings(p.Technologies)
		out.Projects[i] = p
	}
	out.Awards = append([]Award{}, cv.Awards...)
	out.Publications = append([]Publication{}, cv.Publications...)
	out.Volunteer = append([]VolunteerEntry{}, cv.Volunteer...)
	out.References = append([]Reference{}, cv.References...)
	return &out
}

// EmploymentType enumerates JD contract types
type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "full-time"
	EmploymentPartTime   EmploymentType = "part-time"
	EmploymentContract   EmploymentType = "contract"
	EmploymentInternship EmploymentType = "internship"
	EmploymentTemporary  EmploymentType = "temporary"
	EmploymentFreelance  EmploymentType = "freelance"
)

// ExperienceLevel enumerates seniority bands
type ExperienceLevel string

const (
	LevelEntry     ExperienceLevel = "entry"
	LevelMid       ExperienceLevel = "mid"
	LevelSenior    ExperienceLevel = "senior"
	LevelLead      ExperienceLevel = "lead"
	LevelExecutive ExperienceLevel = "executive"
)

// RemoteOption enumerates work arrangements
type RemoteOption string

const (
	RemoteOnsite RemoteOption = "onsite"
	RemoteRemote RemoteOption = "remote"
	RemoteHybrid RemoteOption = "hybrid"
)

// SalaryPeriod enumerates pay periods
type SalaryPeriod string

const (
	PeriodHourly  SalaryPeriod = "hourly"
	PeriodMonthly SalaryPeriod = "monthly"
	PeriodYearly  SalaryPeriod = "yearly"
)

// Salary represents a compensation range; zero amounts mean unknown
type Salary struct {
	Min      float64      `json:"min"`
	Max      float64      `json:"max"`
	Currency string       `json:"currency"`
	Period   SalaryPeriod `json:"period"`
}

// IsEmpty reports a salary with no amounts
func (s Salary) IsEmpty() bool {
	return s.Min == 0 && s.Max == 0
}

type EducationRequirement struct {
	Level string `json:"level"`
	Field string `json:"field"`
}

type ExperienceRequirement struct {
	MinYears    int    `json:"minYears"`
	MaxYears    int    `json:"maxYears"`
	Description string `json:"description"`
}

type Requirements struct {
	Required   []string              `json:"required"`
	Preferred  []string              `json:"preferred"`
	Education  EducationRequirement  `json:"education"`
	Experience ExperienceRequirement `json:"experience"`
}

// JDDocument represents a structured job description
type JDDocument struct {
	JobTitle         string          `json:"jobTitle"`
	Company          string          `json:"company"`
	Location         string          `json:"location"`
	EmploymentType   EmploymentType  `json:"employmentType"`
	ExperienceLevel  ExperienceLevel `json:"experienceLevel"`
	Salary           Salary          `json:"salary"`
	RemoteOption     RemoteOption    `json:"remoteOption"`
	Summary          string          `json:"summary"`
	AboutCompany     string          `json:"aboutCompany"`
	Responsibilities []string        `json:"responsibilities"`
	Requirements     Requirements    `json:"requirements"`
	Skills           Skills          `json:"skills"`
	Benefits         []string        `json:"benefits"`
	Department       string          `json:"department"`
	TeamSize         string          `json:"teamSize"`
}

// Clone deep-copies the JD
func (jd *JDDocument) Clone() *JDDocument {
	if jd == nil {
		return nil
	}
	out := *jd
	out.Responsibilities = cloneStrings(jd.Responsibilities)
	out.Requirements.Required = cloneStrings(jd.Requirements.Required)
	out.Requirements.Preferred = cloneStrings(jd.Requirements.Preferred)
	out.Skills = jd.Skills.clone()
	out.Benefits = cloneStrings(jd.Benefits)
	return &out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
