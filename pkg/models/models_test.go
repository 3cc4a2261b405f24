package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseFieldPath(t *testing.T) {
	p, err := ParseFieldPath("experience[2].description")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Depth() != 2 || p.Root() != "experience" || p.Segments[0].Index != 2 || p.Segments[1].Index != -1 {
		t.Fatalf("unexpected segments %+v", p.Segments)
	}
	if p.String() != "experience[2].description" {
		t.Fatalf("expected round trip, got %s", p.String())
	}

	for _, bad := range []string{"", "a..b", "[0]", "exp[x]", "exp[-1]", "exp[0", "a b"} {
		if _, err := ParseFieldPath(bad); !errors.Is(err, ErrInvalidFieldPath) {
			t.Fatalf("expected ErrInvalidFieldPath for %q, got %v", bad, err)
		}
	}
}

func TestIndexed(t *testing.T) {
	if got := Indexed("experience", 0, "description"); got != "experience[0].description" {
		t.Fatalf("expected experience[0].description, got %s", got)
	}
	if got := Indexed("responsibilities", 3, ""); got != "responsibilities[3]" {
		t.Fatalf("expected responsibilities[3], got %s", got)
	}
}

func TestSuggestedValueJSONShapes(t *testing.T) {
	b, _ := json.Marshal(TextValue("hello"))
	if string(b) != `"hello"` {
		t.Fatalf("expected bare string, got %s", b)
	}
	b, _ = json.Marshal(ItemsValue("Go", "SQL"))
	if string(b) != `["Go","SQL"]` {
		t.Fatalf("expected bare array, got %s", b)
	}

	var v SuggestedValue
	if err := json.Unmarshal([]byte(`{"min":1,"max":2,"currency":"USD","period":"yearly"}`), &v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Salary == nil || v.Salary.Max != 2 || v.Salary.Period != PeriodYearly {
		t.Fatalf("expected salary value, got %+v", v)
	}
	if err := json.Unmarshal([]byte(`42`), &v); err == nil {
		t.Fatal("expected error for numeric suggested value")
	}
}

func TestSplitDuration(t *testing.T) {
	cases := []struct {
		in, start, end string
	}{
		{"2019 - 2021", "2019", "2021"},
		{"Jan 2020 – Present", "Jan 2020", "Present"},
		{"2020-01 - 2021-06", "2020-01", "2021-06"},
		{"2018 to 2020", "2018", "2020"},
		{"2020-01", "2020-01", ""},
		{"", "", ""},
	}
	for _, c := range cases {
		start, end := SplitDuration(c.in)
		if start != c.start || end != c.end {
			t.Fatalf("SplitDuration(%q): expected %q/%q, got %q/%q", c.in, c.start, c.end, start, end)
		}
	}
}

func TestEntryRange(t *testing.T) {
	start, end, ongoing, ok := EntryRange(ExperienceEntry{Duration: "Mar 2019 - Present"})
	if !ok || !ongoing || start.Year() != 2019 || start.Month() != 3 || !end.IsZero() {
		t.Fatalf("unexpected range %v %v %v %v", start, end, ongoing, ok)
	}

	start, end, ongoing, ok = EntryRange(ExperienceEntry{StartDate: "2018-02", EndDate: "2020-05"})
	if !ok || ongoing || end.Year() != 2020 || start.After(end) {
		t.Fatalf("unexpected range %v %v %v %v", start, end, ongoing, ok)
	}

	if _, _, _, ok := EntryRange(ExperienceEntry{Duration: "a while"}); ok {
		t.Fatal("expected unparseable duration to be rejected")
	}
}

func TestHydrateCVFillsCollections(t *testing.T) {
	doc := Hydrate(Document{Type: DocumentTypeCV})
	cv := doc.CV
	if cv == nil {
		t.Fatal("expected CV to be allocated")
	}
	if cv.Experience == nil || cv.Education == nil || cv.Skills.Technical == nil || cv.Projects == nil || cv.Certifications == nil {
		t.Fatalf("expected non-nil collections, got %+v", cv)
	}

	doc = Hydrate(NewCVDocument(&CVDocument{
		PersonalInfo: PersonalInfo{Name: "  Jane Doe "},
		Experience:   []ExperienceEntry{{Title: "Engineer", Duration: "2019 - 2021"}},
		Skills:       Skills{Technical: []string{" Go ", "", "SQL"}},
	}))
	if doc.CV.PersonalInfo.Name != "Jane Doe" {
		t.Fatalf("expected trimmed name, got %q", doc.CV.PersonalInfo.Name)
	}
	if doc.CV.Experience[0].StartDate != "2019" || doc.CV.Experience[0].EndDate != "2021" {
		t.Fatalf("expected duration split, got %+v", doc.CV.Experience[0])
	}
	if len(doc.CV.Skills.Technical) != 2 || doc.CV.Skills.Technical[0] != "Go" {
		t.Fatalf("expected cleaned skills, got %v", doc.CV.Skills.Technical)
	}
}

func TestHydrateJDNormalizesEnums(t *testing.T) {
	doc := Hydrate(NewJDDocument(&JDDocument{
		EmploymentType:  "Full Time",
		ExperienceLevel: "Junior",
		RemoteOption:    "On-site",
		Salary:          Salary{Min: 1, Currency: "usd", Period: "per year"},
	}))
	jd := doc.JD
	if jd.EmploymentType != EmploymentFullTime || jd.ExperienceLevel != LevelEntry || jd.RemoteOption != RemoteOnsite {
		t.Fatalf("unexpected enums %q %q %q", jd.EmploymentType, jd.ExperienceLevel, jd.RemoteOption)
	}
	if jd.Salary.Currency != "USD" || jd.Salary.Period != PeriodYearly {
		t.Fatalf("unexpected salary %+v", jd.Salary)
	}
	if jd.Responsibilities == nil || jd.Benefits == nil || jd.Requirements.Required == nil {
		t.Fatal("expected non-nil collections")
	}

	if NormalizeEmploymentType("gig") != "" {
		t.Fatal("expected unknown employment type to be cleared")
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	orig := NewJDDocument(&JDDocument{Responsibilities: []string{"Design APIs"}})
	cp := orig.Clone()
	cp.JD.Responsibilities[0] = "changed"
	if orig.JD.Responsibilities[0] != "Design APIs" {
		t.Fatal("expected clone to be independent")
	}
}

func TestScoresAndGrades(t *testing.T) {
	if GradeFor(90) != GradeA || GradeFor(59) != GradeF || GradeFor(75) != GradeC {
		t.Fatal("unexpected grade bands")
	}
	if MissingDataScore(0, 0, 0) != 100 || MissingDataScore(2, 1, 3) != 72 || MissingDataScore(20, 0, 0) != 0 {
		t.Fatal("unexpected missing data scores")
	}
	issue := NewValidationIssue("x", "email", CategoryPersonalInfo, SeverityError, PriorityLow, "m", "")
	if issue.Priority != PriorityHigh {
		t.Fatalf("expected errors to be high priority, got %s", issue.Priority)
	}
}

func TestKindAgreesWithHydrate(t *testing.T) {
	cases := []struct {
		name string
		doc  Document
		want DocumentType
	}{
		{"explicit jd", Document{Type: DocumentTypeJD}, DocumentTypeJD},
		{"explicit cv wins over jd pointer", Document{Type: DocumentTypeCV, JD: &JDDocument{}}, DocumentTypeCV},
		{"untyped jd", Document{JD: &JDDocument{JobTitle: "Engineer"}}, DocumentTypeJD},
		{"untyped cv", Document{CV: &CVDocument{}}, DocumentTypeCV},
		{"empty", Document{}, DocumentTypeCV},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.doc.Kind(); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
			if got := Hydrate(tc.doc).Type; got != tc.want {
				t.Fatalf("expected hydrated type %s, got %s", tc.want, got)
			}
		})
	}
}
