package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"docsense/internal/logging"
	"docsense/internal/policy"
	"docsense/pkg/models"
	"docsense/pkg/utils"
)

type fakeGenerator struct {
	reply      string
	err        error
	calls      int
	lastPrompt string
	lastSystem string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt, systemInstruction string) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	f.lastSystem = systemInstruction
	return f.reply, f.err
}

type memoryCache struct {
	entries map[string]models.Document
}

func (m *memoryCache) Get(ctx context.Context, key string) (*models.Document, bool, error) {
	doc, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	return &doc, true, nil
}

func (m *memoryCache) Set(ctx context.Context, key string, doc models.Document) error {
	m.entries[key] = doc
	return nil
}

func newTestCoordinator(gen *fakeGenerator, opts ...Option) *Coordinator {
	return NewCoordinator(gen, policy.Default(), logging.Nop(), opts...)
}

func TestExtractEmptyObjectYieldsEmptyArrays(t *testing.T) {
	c := newTestCoordinator(&fakeGenerator{reply: "{}"})

	res, err := c.Extract(context.Background(), "Jane Doe\nEngineer", models.DocumentTypeCV)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, _ := json.Marshal(res.Document.CV)
	var out map[string]interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, key := range []string{"experience", "education", "certifications", "projects", "awards", "publications", "volunteer", "references"} {
		arr, ok := out[key].([]interface{})
		if !ok || len(arr) != 0 {
			t.Fatalf("expected %s to be an empty array, got %#v", key, out[key])
		}
	}
	skills := out["skills"].(map[string]interface{})
	for _, key := range []string{"technical", "soft", "tools", "frameworks", "databases", "languages"} {
		if _, ok := skills[key].([]interface{}); !ok {
			t.Fatalf("expected skills.%s to be an array, got %#v", key, skills[key])
		}
	}
}

func TestExtractEmptyJDObjectYieldsEmptyArrays(t *testing.T) {
	c := newTestCoordinator(&fakeGenerator{reply: "{}"})

	res, err := c.Extract(context.Background(), "Backend Engineer", models.DocumentTypeJD)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	jd := res.Document.JD
	if jd == nil || jd.Responsibilities == nil || jd.Benefits == nil || jd.Requirements.Required == nil || jd.Requirements.Preferred == nil || jd.Skills.Technical == nil {
		t.Fatalf("expected hydrated JD, got %+v", jd)
	}
}

func TestExtractParsesFencedResponse(t *testing.T) {
	gen := &fakeGenerator{reply: "Sure, here it is:\n```json\n{\"personalInfo\":{\"name\":\"Jane Doe\",\"email\":\"jane@example.com\"},\"experience\":[{\"title\":\"Engineer\",\"company\":\"Acme\",\"duration\":\"2019 - 2021\"}]}\n```"}
	c := newTestCoordinator(gen)

	res, err := c.Extract(context.Background(), "Jane Doe resume", models.DocumentTypeCV)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cv := res.Document.CV
	if cv.PersonalInfo.Name != "Jane Doe" || len(cv.Experience) != 1 {
		t.Fatalf("unexpected document %+v", cv)
	}
	if cv.Experience[0].StartDate != "2019" || cv.Experience[0].EndDate != "2021" {
		t.Fatalf("expected duration to be split, got %+v", cv.Experience[0])
	}
	if !strings.Contains(gen.lastSystem, `"personalInfo"`) || !strings.HasPrefix(gen.lastPrompt, "CV TEXT") {
		t.Fatalf("unexpected prompt %q / system %q", gen.lastPrompt, gen.lastSystem)
	}
}

func TestExtractServiceErrorIsRetryable(t *testing.T) {
	c := newTestCoordinator(&fakeGenerator{err: errors.New("503 from upstream")}, WithProviderName("claude"))

	_, err := c.Extract(context.Background(), "some text", models.DocumentTypeCV)
	var svc *utils.ExtractionServiceError
	if !errors.As(err, &svc) {
		t.Fatalf("expected ExtractionServiceError, got %v", err)
	}
	if svc.Provider != "claude" || !utils.IsRetryable(err) {
		t.Fatalf("expected retryable claude error, got %+v", svc)
	}
}

func TestExtractNonJSONIsParseError(t *testing.T) {
	for _, reply := range []string{"I could not read this document.", "{not json}"} {
		c := newTestCoordinator(&fakeGenerator{reply: reply})
		_, err := c.Extract(context.Background(), "some text", models.DocumentTypeJD)
		var parse *utils.ExtractionParseError
		if !errors.As(err, &parse) {
			t.Fatalf("expected ExtractionParseError for %q, got %v", reply, err)
		}
		if utils.IsRetryable(err) {
			t.Fatalf("expected parse error to be non-retryable")
		}
	}
}

func TestExtractShapeMismatchIsParseError(t *testing.T) {
	c := newTestCoordinator(&fakeGenerator{reply: `{"experience":"Engineer at Acme since 2019"}`})
	_, err := c.Extract(context.Background(), "some text", models.DocumentTypeCV)
	var parse *utils.ExtractionParseError
	if !errors.As(err, &parse) {
		t.Fatalf("expected ExtractionParseError, got %v", err)
	}
}

func TestRepairAliasPrecedence(t *testing.T) {
	for i := 0; i < 50; i++ {
		jd := repair(models.DocumentTypeJD, map[string]interface{}{
			"position": "Staff Engineer",
			"title":    "Backend Engineer",
		})
		if jd["jobTitle"] != "Backend Engineer" {
			t.Fatalf("run %d: expected title to win over position, got %v", i, jd["jobTitle"])
		}
		if _, left := jd["position"]; left {
			t.Fatalf("run %d: expected position to be removed", i)
		}

		cv := repair(models.DocumentTypeCV, map[string]interface{}{
			"contactInfo": map[string]interface{}{"name": "Other"},
			"contact":     map[string]interface{}{"name": "Jane Doe"},
		})
		info, _ := cv["personalInfo"].(map[string]interface{})
		if info["name"] != "Jane Doe" {
			t.Fatalf("run %d: expected contact to win over contactInfo, got %v", i, cv["personalInfo"])
		}
	}
}

func TestExtractRepairsNearMisses(t *testing.T) {
	reply := `{
		"job_title": "Backend Engineer",
		"company_name": "Acme",
		"employment_type": "Full Time",
		"responsibilities": "Design APIs",
		"requirements": ["Go", "SQL"],
		"skills": ["Go", "Kubernetes"],
		"salary": {"min": "$120k", "max": "150,000", "currency": "usd", "period": "per year"},
		"team_size": 12,
		"benefits": null
	}`
	c := newTestCoordinator(&fakeGenerator{reply: reply})

	res, err := c.Extract(context.Background(), "Backend Engineer at Acme", models.DocumentTypeJD)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	jd := res.Document.JD
	if jd.JobTitle != "Backend Engineer" || jd.Company != "Acme" {
		t.Fatalf("expected aliases to be applied, got %q / %q", jd.JobTitle, jd.Company)
	}
	if jd.EmploymentType != models.EmploymentFullTime {
		t.Fatalf("expected full-time, got %q", jd.EmploymentType)
	}
	if len(jd.Responsibilities) != 1 || len(jd.Requirements.Required) != 2 || len(jd.Skills.Technical) != 2 {
		t.Fatalf("expected list coercions, got %+v", jd)
	}
	if jd.Salary.Min != 120000 || jd.Salary.Max != 150000 || jd.Salary.Currency != "USD" || jd.Salary.Period != models.PeriodYearly {
		t.Fatalf("unexpected salary %+v", jd.Salary)
	}
	if jd.TeamSize != "12" || jd.Benefits == nil {
		t.Fatalf("unexpected team size %q / benefits %v", jd.TeamSize, jd.Benefits)
	}
}

func TestExtractUsesCache(t *testing.T) {
	gen := &fakeGenerator{reply: `{"personalInfo":{"name":"Jane Doe"}}`}
	cache := &memoryCache{entries: map[string]models.Document{}}
	c := newTestCoordinator(gen, WithCache(cache))

	first, err := c.Extract(context.Background(), "Jane Doe", models.DocumentTypeCV)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := c.Extract(context.Background(), "Jane   Doe", models.DocumentTypeCV)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gen.calls != 1 {
		t.Fatalf("expected 1 generator call, got %d", gen.calls)
	}
	if first.Cached || !second.Cached || second.Document.CV.PersonalInfo.Name != "Jane Doe" {
		t.Fatalf("unexpected cache behaviour: %+v / %+v", first, second)
	}
}

func TestExtractRejectsEmptyInput(t *testing.T) {
	gen := &fakeGenerator{reply: "{}"}
	c := newTestCoordinator(gen)
	if _, err := c.Extract(context.Background(), " \n ---- \n ", models.DocumentTypeCV); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	if gen.calls != 0 {
		t.Fatalf("expected no generator call, got %d", gen.calls)
	}
}

func TestExtractRejectsUnknownType(t *testing.T) {
	c := newTestCoordinator(&fakeGenerator{reply: "{}"})
	var input *utils.ValidationInputError
	if _, err := c.Extract(context.Background(), "text", models.DocumentType("memo")); !errors.As(err, &input) {
		t.Fatalf("expected ValidationInputError, got %v", err)
	}
}

func TestConfidence(t *testing.T) {
	empty := models.Hydrate(models.Document{Type: models.DocumentTypeCV})
	if got := Confidence(empty); got != 0 {
		t.Fatalf("expected 0 for empty CV, got %d", got)
	}

	cv := &models.CVDocument{
		PersonalInfo: models.PersonalInfo{Name: "Jane", Email: "jane@example.com", Phone: "5551234567", Location: "Berlin"},
		Experience: []models.ExperienceEntry{
			{Title: "A", Company: "X"}, {Title: "B", Company: "Y"}, {Title: "C", Company: "Z"}, {Title: "D", Company: "W"},
		},
		Education: []models.EducationEntry{{Degree: "BSc", Institution: "TU"}},
		Skills:    models.Skills{Technical: []string{"Go"}},
	}
	// 15+10+10+5 + 30 (capped) + 7.5 + 15 = 92.5
	if got := Confidence(models.NewCVDocument(cv)); got != 93 {
		t.Fatalf("expected 93, got %d", got)
	}

	jd := &models.JDDocument{JobTitle: "Engineer", Company: "Acme", Responsibilities: []string{"a", "b"}}
	// 15+10 + 12 = 37
	if got := Confidence(models.NewJDDocument(jd)); got != 37 {
		t.Fatalf("expected 37, got %d", got)
	}
}

func TestPreprocess(t *testing.T) {
	in := "Jane Doe\r\n\r\n\r\n\r\n=====\r\nEmail:   jane@example.com | Phone: 555\r\n------\r\nExperience  -\r\n"
	got := Preprocess(in, 0)
	want := "Jane Doe\n\nEmail: jane@example.com Phone: 555\nExperience"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	if got := Preprocess("abcdef", 3); got != "abc" {
		t.Fatalf("expected cap at 3 runes, got %q", got)
	}

	html := "<html><body><div><h1>Backend Engineer</h1><p>Build APIs</p></div></body></html>"
	if got := Preprocess(html, 0); strings.Contains(got, "<") || !strings.Contains(got, "Backend Engineer") {
		t.Fatalf("expected markup to be stripped, got %q", got)
	}
}
