package flow

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"docsense/internal/extraction"
	"docsense/internal/policy"
	"docsense/pkg/models"
	"docsense/pkg/utils"
)

type fakeExtractor struct {
	docs  map[models.DocumentType]models.Document
	err   error
	calls int
}

func (f *fakeExtractor) Extract(ctx context.Context, rawText string, docType models.DocumentType) (*extraction.Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &extraction.Result{Document: models.Hydrate(f.docs[docType]), Confidence: 80}, nil
}

func goodCV() models.Document {
	return models.NewCVDocument(&models.CVDocument{
		PersonalInfo: models.PersonalInfo{
			Name:     "Jane Doe",
			Email:    "jane@example.com",
			Phone:    "+1 555 123 4567",
			Location: "Berlin, Germany",
			LinkedIn: "https://linkedin.com/in/jane-doe",
		},
		Summary: "Backend engineer with eight years of experience building payment systems.",
		Experience: []models.ExperienceEntry{
			{Title: "Senior Engineer", Company: "Acme", StartDate: "2021-01", EndDate: "Present",
				Description: "Led the migration of the billing platform to Go and reduced latency by 40%."},
		},
		Education: []models.EducationEntry{{Degree: "BSc Computer Science", Institution: "TU Berlin"}},
		Skills: models.Skills{
			Technical: []string{"Go", "PostgreSQL", "Kubernetes", "gRPC", "Redis"},
			Soft:      []string{"Mentoring", "Communication", "Planning"},
		},
	})
}

func goodJD() models.Document {
	return models.NewJDDocument(&models.JDDocument{
		JobTitle:        "Backend Engineer",
		Company:         "Acme",
		Location:        "Remote, EU",
		EmploymentType:  models.EmploymentFullTime,
		ExperienceLevel: models.LevelSenior,
		RemoteOption:    models.RemoteRemote,
		Summary:         "Join the payments team to build scalable services used by millions.",
		Responsibilities: []string{
			"Design and build payment APIs",
			"Own services end to end in production",
			"Mentor engineers on the team",
		},
		Requirements: models.Requirements{Required: []string{"5+ years of Go", "Experience with PostgreSQL"}},
		Salary:       models.Salary{Min: 90000, Max: 120000, Currency: "EUR", Period: models.PeriodYearly},
		Skills:       models.Skills{Technical: []string{"Go", "PostgreSQL"}},
		Benefits:     []string{"Remote budget"},
	})
}

func newFlow(t *testing.T, mode Mode, docType models.DocumentType, ex *fakeExtractor) *Flow {
	t.Helper()
	f, err := New(mode, docType, NewDeps(ex, policy.Default()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return f
}

func TestSingleFlowHappyPath(t *testing.T) {
	ex := &fakeExtractor{docs: map[models.DocumentType]models.Document{models.DocumentTypeCV: goodCV()}}
	f := newFlow(t, ModeSingle, models.DocumentTypeCV, ex)

	if f.Step() != StepUpload || f.Progress() != 0 {
		t.Fatalf("expected upload at 0%%, got %s at %d", f.Step(), f.Progress())
	}
	if err := f.Upload(context.Background(), models.DocumentTypeCV, "raw cv"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Step() != StepPreview {
		t.Fatalf("expected preview, got %s", f.Step())
	}
	if err := f.Proceed(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Step() != StepValidate || f.Progress() != 67 {
		t.Fatalf("expected validate at 67%%, got %s at %d", f.Step(), f.Progress())
	}
	if !f.CanProceed() {
		state, _ := f.Document(models.DocumentTypeCV)
		t.Fatalf("expected a passing score, got %d", state.Validation.Score)
	}
	if err := f.Complete(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Step() != StepComplete || f.Progress() != 100 {
		t.Fatalf("expected complete at 100%%, got %s at %d", f.Step(), f.Progress())
	}
}

func TestNoSkipAhead(t *testing.T) {
	ex := &fakeExtractor{docs: map[models.DocumentType]models.Document{models.DocumentTypeCV: goodCV()}}
	f := newFlow(t, ModeSingle, models.DocumentTypeCV, ex)

	if err := f.Proceed(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
	if err := f.Complete(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
	if err := f.Edit(models.DocumentTypeCV, goodCV()); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
	if err := f.Upload(context.Background(), models.DocumentTypeJD, "raw"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected wrong-type upload to be rejected, got %v", err)
	}
	if ex.calls != 0 {
		t.Fatalf("expected no extraction calls, got %d", ex.calls)
	}

	if err := f.Upload(context.Background(), models.DocumentTypeCV, "raw"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.Upload(context.Background(), models.DocumentTypeCV, "raw"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected second upload to be rejected, got %v", err)
	}
}

func TestFailRecordsIntakeError(t *testing.T) {
	ex := &fakeExtractor{}
	f := newFlow(t, ModeSingle, models.DocumentTypeCV, ex)

	cause := errors.New("ocr service returned 503")
	err := f.Fail(models.DocumentTypeCV, &IntakeError{Message: "Text recognition failed.", Transient: true, Cause: cause})
	if !errors.Is(err, cause) {
		t.Fatalf("expected the cause to be returned, got %v", err)
	}
	snap := f.Snapshot()
	if snap.CurrentStep != StepUpload || !snap.Retryable || len(snap.Errors) != 1 || snap.Errors[0] != "Text recognition failed." {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if ex.calls != 0 {
		t.Fatalf("expected no extraction call, got %d", ex.calls)
	}

	if err := f.Fail(models.DocumentTypeJD, cause); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for the wrong type, got %v", err)
	}
}

func TestUploadFailureKeepsStep(t *testing.T) {
	ex := &fakeExtractor{err: &utils.ExtractionServiceError{Provider: "fake", Cause: errors.New("503")}}
	f := newFlow(t, ModeSingle, models.DocumentTypeJD, ex)

	err := f.Upload(context.Background(), models.DocumentTypeJD, "raw jd")
	if err == nil {
		t.Fatal("expected an error")
	}
	snap := f.Snapshot()
	if snap.CurrentStep != StepUpload {
		t.Fatalf("expected to stay on upload, got %s", snap.CurrentStep)
	}
	if len(snap.Errors) != 1 || !snap.Retryable {
		t.Fatalf("expected one retryable error, got %+v", snap)
	}

	ex.err = &utils.ExtractionParseError{Reason: "invalid JSON"}
	_ = f.Upload(context.Background(), models.DocumentTypeJD, "raw jd")
	if f.Snapshot().Retryable {
		t.Fatal("expected a parse failure to be non-retryable")
	}

	ex.err = nil
	ex.docs = map[models.DocumentType]models.Document{models.DocumentTypeJD: goodJD()}
	if err := f.Upload(context.Background(), models.DocumentTypeJD, "raw jd"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap := f.Snapshot(); len(snap.Errors) != 0 || snap.Retryable {
		t.Fatalf("expected errors cleared, got %+v", snap)
	}
}

func TestCompleteRequiresPassingScore(t *testing.T) {
	thin := models.NewCVDocument(&models.CVDocument{PersonalInfo: models.PersonalInfo{Name: "Jane Doe"}})
	ex := &fakeExtractor{docs: map[models.DocumentType]models.Document{models.DocumentTypeCV: thin}}
	f := newFlow(t, ModeSingle, models.DocumentTypeCV, ex)

	_ = f.Upload(context.Background(), models.DocumentTypeCV, "raw")
	_ = f.Proceed()
	if err := f.Complete(); !errors.Is(err, ErrCannotProceed) {
		t.Fatalf("expected cannot proceed, got %v", err)
	}
	if f.Step() != StepValidate {
		t.Fatalf("expected to stay in validate, got %s", f.Step())
	}

	// editing is still allowed and can unblock completion
	if err := f.Edit(models.DocumentTypeCV, goodCV()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.Complete(); err != nil {
		t.Fatalf("expected completion after edit, got %v", err)
	}
}

func TestEditKeepsRawText(t *testing.T) {
	ex := &fakeExtractor{docs: map[models.DocumentType]models.Document{models.DocumentTypeCV: goodCV()}}
	f := newFlow(t, ModeSingle, models.DocumentTypeCV, ex)
	_ = f.Upload(context.Background(), models.DocumentTypeCV, "original OCR text")

	edited := goodCV()
	edited.CV.PersonalInfo.Email = ""
	if err := f.Edit(models.DocumentTypeCV, edited); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state, _ := f.Document(models.DocumentTypeCV)
	if state.RawText != "original OCR text" {
		t.Fatalf("expected raw text preserved, got %q", state.RawText)
	}
	if state.Validation.Count(models.SeverityError) == 0 {
		t.Fatal("expected re-validation to flag the missing email")
	}
	if err := f.Edit(models.DocumentTypeCV, goodJD()); err == nil {
		t.Fatal("expected a type mismatch error")
	}
}

func TestApplySuggestion(t *testing.T) {
	thin := models.NewCVDocument(&models.CVDocument{PersonalInfo: models.PersonalInfo{Name: "Jane Doe"}})
	ex := &fakeExtractor{docs: map[models.DocumentType]models.Document{models.DocumentTypeCV: thin}}
	f := newFlow(t, ModeSingle, models.DocumentTypeCV, ex)
	_ = f.Upload(context.Background(), models.DocumentTypeCV, "raw")

	state, _ := f.Document(models.DocumentTypeCV)
	var id string
	for _, s := range state.Suggestions {
		if s.Field == "personalInfo.linkedin" {
			id = s.ID
		}
	}
	if id == "" {
		t.Fatalf("expected a linkedin suggestion, got %+v", state.Suggestions)
	}
	if err := f.ApplySuggestion(models.DocumentTypeCV, id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state, _ = f.Document(models.DocumentTypeCV)
	if state.Document.CV.PersonalInfo.LinkedIn != "https://linkedin.com/in/jane-doe" {
		t.Fatalf("expected linkedin applied, got %q", state.Document.CV.PersonalInfo.LinkedIn)
	}
	if _, ok := state.Analysis.Find("personalInfo.linkedin"); ok {
		t.Fatal("expected analysis to be refreshed")
	}
	if err := f.ApplySuggestion(models.DocumentTypeCV, "nope"); !errors.Is(err, ErrUnknownSuggestion) {
		t.Fatalf("expected unknown suggestion, got %v", err)
	}
}

func TestDualFlow(t *testing.T) {
	ex := &fakeExtractor{docs: map[models.DocumentType]models.Document{
		models.DocumentTypeCV: goodCV(),
		models.DocumentTypeJD: goodJD(),
	}}
	f := newFlow(t, ModeDual, "", ex)
	ctx := context.Background()

	if err := f.Upload(ctx, models.DocumentTypeJD, "jd"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected the cv first, got %v", err)
	}
	want := []Step{StepUploadCV, StepUploadJD, StepPreviewCV, StepPreviewJD, StepValidate, StepComplete}
	actions := []func() error{
		func() error { return f.Upload(ctx, models.DocumentTypeCV, "cv") },
		func() error { return f.Upload(ctx, models.DocumentTypeJD, "jd") },
		f.Proceed,
		f.Proceed,
		f.Complete,
	}
	for i, act := range actions {
		if f.Step() != want[i] {
			t.Fatalf("step %d: expected %s, got %s", i, want[i], f.Step())
		}
		if err := act(); err != nil {
			t.Fatalf("step %s: unexpected error: %v", want[i], err)
		}
	}
	if f.Step() != StepComplete {
		t.Fatalf("expected complete, got %s", f.Step())
	}
}

func TestRetryResets(t *testing.T) {
	ex := &fakeExtractor{docs: map[models.DocumentType]models.Document{models.DocumentTypeCV: goodCV()}}
	f := newFlow(t, ModeSingle, models.DocumentTypeCV, ex)
	_ = f.Upload(context.Background(), models.DocumentTypeCV, "raw")
	_ = f.Proceed()

	f.Retry()
	snap := f.Snapshot()
	if snap.CurrentStep != StepUpload || len(snap.Documents) != 0 || len(snap.Errors) != 0 || snap.Progress != 0 {
		t.Fatalf("expected a clean flow, got %+v", snap)
	}
}

func TestSnapshotSerializes(t *testing.T) {
	ex := &fakeExtractor{docs: map[models.DocumentType]models.Document{models.DocumentTypeJD: goodJD()}}
	f := newFlow(t, ModeSingle, models.DocumentTypeJD, ex)
	_ = f.Upload(context.Background(), models.DocumentTypeJD, "raw")

	data, err := json.Marshal(f.Snapshot())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var back map[string]interface{}
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back["currentStep"] != "preview" {
		t.Fatalf("expected preview, got %v", back["currentStep"])
	}
	docs, ok := back["documents"].(map[string]interface{})
	if !ok || docs["jd"] == nil {
		t.Fatalf("expected a jd document, got %v", back["documents"])
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	deps := NewDeps(&fakeExtractor{}, policy.Default())
	if _, err := New(ModeSingle, "", deps); err == nil {
		t.Fatal("expected single mode without a type to fail")
	}
	if _, err := New("triple", models.DocumentTypeCV, deps); err == nil {
		t.Fatal("expected an unknown mode to fail")
	}
}

func TestStoreWithAndCleanup(t *testing.T) {
	s := NewStore(time.Minute, 0, nil)
	defer s.Close()

	now := time.Now()
	s.now = func() time.Time { return now }

	f := newFlow(t, ModeSingle, models.DocumentTypeCV, &fakeExtractor{})
	s.Put(f)

	if err := s.With("missing", func(*Flow) error { return nil }); !errors.Is(err, ErrFlowNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	sentinel := errors.New("boom")
	if err := s.With(f.ID(), func(*Flow) error { return sentinel }); !errors.Is(err, sentinel) {
		t.Fatalf("expected fn error to propagate, got %v", err)
	}

	now = now.Add(30 * time.Second)
	if n := s.Cleanup(); n != 0 {
		t.Fatalf("expected nothing expired, got %d", n)
	}
	now = now.Add(2 * time.Minute)
	if n := s.Cleanup(); n != 1 || s.Len() != 0 {
		t.Fatalf("expected the idle flow removed, got %d (len %d)", n, s.Len())
	}
	if _, err := s.Snapshot(f.ID()); !errors.Is(err, ErrFlowNotFound) {
		t.Fatalf("expected not found after cleanup, got %v", err)
	}
}

func TestStoreSerializesPerFlow(t *testing.T) {
	s := NewStore(time.Hour, time.Hour, nil)
	defer s.Close()

	f := newFlow(t, ModeSingle, models.DocumentTypeCV, &fakeExtractor{})
	s.Put(f)

	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.With(f.ID(), func(*Flow) error {
				counter++
				return nil
			})
		}()
	}
	wg.Wait()
	if counter != 50 {
		t.Fatalf("expected 50 serialized calls, got %d", counter)
	}

	if err := s.Delete(f.ID()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Delete(f.ID()); !errors.Is(err, ErrFlowNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
