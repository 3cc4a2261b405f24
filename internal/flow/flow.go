// Package flow drives a document (or a CV and JD pair) from upload through
// preview and validation to completion.
package flow

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"docsense/internal/analyzer"
	"docsense/internal/extraction"
	"docsense/internal/policy"
	"docsense/internal/suggest"
	"docsense/internal/validator"
	"docsense/pkg/models"
	"docsense/pkg/utils"
)

// Mode selects how many documents a flow collects
type Mode string

const (
	ModeSingle Mode = "single"
	ModeDual   Mode = "dual"
)

// ParseMode accepts "single" and "dual"
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeSingle, ModeDual:
		return Mode(s), true
	}
	return "", false
}

// Step is a position in the flow
type Step string

const (
	StepUpload    Step = "upload"
	StepPreview   Step = "preview"
	StepUploadCV  Step = "upload-cv"
	StepUploadJD  Step = "upload-jd"
	StepPreviewCV Step = "preview-cv"
	StepPreviewJD Step = "preview-jd"
	StepValidate  Step = "validate"
	StepComplete  Step = "complete"
)

var (
	ErrInvalidTransition = errors.New("invalid flow transition")
	ErrCannotProceed     = errors.New("documents do not meet the completion score")
	ErrNoDocument        = errors.New("no document of that type in this flow")
	ErrUnknownSuggestion = errors.New("unknown suggestion")
)

// Extractor is the part of the extraction coordinator a flow needs
type Extractor interface {
	Extract(ctx context.Context, rawText string, docType models.DocumentType) (*extraction.Result, error)
}

// Deps are the collaborators shared by every flow
type Deps struct {
	Extractor Extractor
	Validator *validator.Validator
	Analyzer  *analyzer.Analyzer
	Engine    *suggest.Engine
	Policy    policy.Policy
}

// NewDeps builds the pure stages from one policy
func NewDeps(ex Extractor, p policy.Policy) Deps {
	return Deps{
		Extractor: ex,
		Validator: validator.New(p),
		Analyzer:  analyzer.New(p),
		Engine:    suggest.New(p),
		Policy:    p,
	}
}

// DocumentState is everything a flow knows about one uploaded document.
// RawText is kept as uploaded; edits only change Document.
type DocumentState struct {
	Type                 models.DocumentType        `json:"type"`
	RawText              string                     `json:"rawText"`
	Document             models.Document            `json:"document"`
	ExtractionConfidence int                        `json:"extractionConfidence"`
	Validation           models.ValidationResult    `json:"validation"`
	Analysis             models.MissingDataAnalysis `json:"analysis"`
	Suggestions          []models.DataSuggestion    `json:"suggestions"`
}

// Flow is not safe for concurrent mutation; see Store
type Flow struct {
	id        string
	mode      Mode
	docType   models.DocumentType
	steps     []Step
	index     int
	documents map[models.DocumentType]*DocumentState
	errors    []string
	retryable bool
	deps      Deps
	createdAt time.Time
	updatedAt time.Time
}

// New starts a flow. docType is required in single mode and ignored in dual mode.
func New(mode Mode, docType models.DocumentType, deps Deps) (*Flow, error) {
	var steps []Step
	switch mode {
	case ModeSingle:
		if !docType.Valid() {
			return nil, &utils.ValidationInputError{Field: "type", Reason: "single mode needs cv or jd"}
		}
		steps = []Step{StepUpload, StepPreview, StepValidate, StepComplete}
	case ModeDual:
		docType = ""
		steps = []Step{StepUploadCV, StepUploadJD, StepPreviewCV, StepPreviewJD, StepValidate, StepComplete}
	default:
		return nil, &utils.ValidationInputError{Field: "mode", Reason: fmt.Sprintf("unknown mode %q", mode)}
	}

	now := time.Now()
	return &Flow{
		id:        uuid.New().String(),
		mode:      mode,
		docType:   docType,
		steps:     steps,
		documents: make(map[models.DocumentType]*DocumentState),
		deps:      deps,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ID returns the session id
func (f *Flow) ID() string { return f.id }

// Step returns the current step
func (f *Flow) Step() Step { return f.steps[f.index] }

// Progress is the step index scaled to 0-100
func (f *Flow) Progress() int {
	if len(f.steps) < 2 {
		return 100
	}
	return int(math.Round(float64(f.index) * 100 / float64(len(f.steps)-1)))
}

// Document returns the state for docType, if uploaded
func (f *Flow) Document(docType models.DocumentType) (*DocumentState, bool) {
	d, ok := f.documents[docType]
	return d, ok
}

// uploadType is the document type the current step accepts, if any
func (f *Flow) uploadType() (models.DocumentType, bool) {
	switch f.Step() {
	case StepUpload:
		return f.docType, true
	case StepUploadCV:
		return models.DocumentTypeCV, true
	case StepUploadJD:
		return models.DocumentTypeJD, true
	}
	return "", false
}

func (f *Flow) editable() bool {
	switch f.Step() {
	case StepPreview, StepPreviewCV, StepPreviewJD, StepValidate:
		return true
	}
	return false
}

func (f *Flow) transitionError(action string) error {
	return fmt.Errorf("%w: cannot %s at step %s", ErrInvalidTransition, action, f.Step())
}

// Upload extracts rawText on the upload step that expects docType. On
// extraction failure the flow stays put and records a user-facing error.
func (f *Flow) Upload(ctx context.Context, docType models.DocumentType, rawText string) error {
	want, ok := f.uploadType()
	if !ok || want != docType {
		return f.transitionError("upload " + string(docType))
	}

	result, err := f.deps.Extractor.Extract(ctx, rawText, docType)
	if err != nil {
		f.record(err)
		return err
	}

	state := &DocumentState{
		Type:                 docType,
		RawText:              rawText,
		Document:             result.Document,
		ExtractionConfidence: result.Confidence,
	}
	f.evaluate(state)
	f.documents[docType] = state
	f.errors = nil
	f.retryable = false
	f.index++
	f.touch()
	return nil
}

// Fail records a failure that happened before extraction, such as an
// unreadable file, on the upload step that expects docType. It returns err,
// or ErrInvalidTransition when no such upload is pending.
func (f *Flow) Fail(docType models.DocumentType, err error) error {
	want, ok := f.uploadType()
	if !ok || want != docType {
		return f.transitionError("upload " + string(docType))
	}
	f.record(err)
	return err
}

func (f *Flow) record(err error) {
	f.errors = []string{UserMessage(err)}
	f.retryable = utils.IsRetryable(err)
	f.touch()
}

// IntakeError is a file intake failure with the message to show the user
type IntakeError struct {
	Message   string
	Transient bool
	Cause     error
}

func (e *IntakeError) Error() string   { return e.Cause.Error() }
func (e *IntakeError) Unwrap() error   { return e.Cause }
func (e *IntakeError) Retryable() bool { return e.Transient }

// Edit replaces the structured document for docType and re-scores it
func (f *Flow) Edit(docType models.DocumentType, doc models.Document) error {
	if !f.editable() {
		return f.transitionError("edit")
	}
	state, ok := f.documents[docType]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoDocument, docType)
	}
	if doc.Type != "" && doc.Type != docType {
		return &utils.ValidationInputError{Field: "document.type", Reason: fmt.Sprintf("expected %s, got %s", docType, doc.Type)}
	}
	doc.Type = docType
	state.Document = models.Hydrate(doc)
	f.evaluate(state)
	f.touch()
	return nil
}

// ApplySuggestion applies one of the current suggestions for docType
func (f *Flow) ApplySuggestion(docType models.DocumentType, suggestionID string) error {
	if !f.editable() {
		return f.transitionError("apply a suggestion")
	}
	state, ok := f.documents[docType]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoDocument, docType)
	}
	s, ok := suggest.Find(state.Suggestions, suggestionID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSuggestion, suggestionID)
	}
	doc, err := suggest.Apply(state.Document, s)
	if err != nil {
		return err
	}
	state.Document = doc
	f.evaluate(state)
	f.touch()
	return nil
}

// Proceed leaves a preview step, re-validating every document
func (f *Flow) Proceed() error {
	switch f.Step() {
	case StepPreview, StepPreviewCV, StepPreviewJD:
	default:
		return f.transitionError("proceed")
	}
	for _, state := range f.documents {
		f.evaluate(state)
	}
	f.index++
	f.touch()
	return nil
}

// Complete finishes the flow when every document clears the score gate
func (f *Flow) Complete() error {
	if f.Step() != StepValidate {
		return f.transitionError("complete")
	}
	if !f.CanProceed() {
		return fmt.Errorf("%w: every document must score above %d", ErrCannotProceed, f.deps.Policy.CanProceedScore)
	}
	f.index++
	f.touch()
	return nil
}

// Retry returns to the first upload step and discards all results
func (f *Flow) Retry() {
	f.index = 0
	f.documents = make(map[models.DocumentType]*DocumentState)
	f.errors = nil
	f.retryable = false
	f.touch()
}

// CanProceed reports whether every expected document is present and scores
// strictly above the policy threshold
func (f *Flow) CanProceed() bool {
	for _, t := range f.expected() {
		state, ok := f.documents[t]
		if !ok || state.Validation.Score <= f.deps.Policy.CanProceedScore {
			return false
		}
	}
	return true
}

func (f *Flow) expected() []models.DocumentType {
	if f.mode == ModeDual {
		return []models.DocumentType{models.DocumentTypeCV, models.DocumentTypeJD}
	}
	return []models.DocumentType{f.docType}
}

func (f *Flow) evaluate(state *DocumentState) {
	state.Validation = f.deps.Validator.Validate(state.Document)
	state.Analysis = f.deps.Analyzer.Analyze(state.Document, state.Validation)
	state.Suggestions = f.deps.Engine.Suggest(state.Document, state.Validation, state.Analysis)
}

func (f *Flow) touch() { f.updatedAt = time.Now() }

// Snapshot is the serializable view of a flow
type Snapshot struct {
	ID          string                                `json:"id"`
	Mode        Mode                                  `json:"mode"`
	Type        models.DocumentType                   `json:"type,omitempty"`
	CurrentStep Step                                  `json:"currentStep"`
	Steps       []Step                                `json:"steps"`
	Progress    int                                   `json:"progress"`
	Errors      []string                              `json:"errors"`
	Retryable   bool                                  `json:"retryable"`
	CanProceed  bool                                  `json:"canProceed"`
	Documents   map[models.DocumentType]DocumentState `json:"documents"`
	CreatedAt   time.Time                             `json:"createdAt"`
	UpdatedAt   time.Time                             `json:"updatedAt"`
}

// Snapshot copies the flow state; later mutation does not affect it
func (f *Flow) Snapshot() Snapshot {
	docs := make(map[models.DocumentType]DocumentState, len(f.documents))
	for t, state := range f.documents {
		cp := *state
		cp.Document = state.Document.Clone()
		cp.Suggestions = append([]models.DataSuggestion{}, state.Suggestions...)
		docs[t] = cp
	}
	return Snapshot{
		ID:          f.id,
		Mode:        f.mode,
		Type:        f.docType,
		CurrentStep: f.Step(),
		Steps:       append([]Step{}, f.steps...),
		Progress:    f.Progress(),
		Errors:      append([]string{}, f.errors...),
		Retryable:   f.retryable,
		CanProceed:  f.CanProceed(),
		Documents:   docs,
		CreatedAt:   f.createdAt,
		UpdatedAt:   f.updatedAt,
	}
}

// UserMessage turns an extraction failure into text suitable for an end user
func UserMessage(err error) string {
	var svc *utils.ExtractionServiceError
	var parse *utils.ExtractionParseError
	var input *utils.ValidationInputError
	var intake *IntakeError
	switch {
	case errors.As(err, &intake):
		return intake.Message
	case errors.Is(err, extraction.ErrEmptyInput):
		return "The document has no readable text. Upload a clearer file or paste the text instead."
	case errors.As(err, &svc):
		return "The extraction service is unavailable right now. Please try again in a moment."
	case errors.As(err, &parse):
		return "We could not read the structure of this document. Try another file or paste the text instead."
	case errors.As(err, &input):
		return "The upload was rejected: " + input.Reason
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "The upload timed out. Please try again."
	}
	return "Extraction failed. Please try again."
}
