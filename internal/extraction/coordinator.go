package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"docsense/internal/llm"
	"docsense/internal/logging"
	"docsense/internal/policy"
	"docsense/pkg/models"
	"docsense/pkg/utils"
)

// Result is a hydrated document plus the extraction confidence
type Result struct {
	Document   models.Document `json:"document"`
	Confidence int             `json:"confidence"`
	Cached     bool            `json:"cached"`
}

// Coordinator turns raw OCR text into a typed document via the extraction collaborator
type Coordinator struct {
	generator llm.Generator
	cache     Cache
	policy    policy.Policy
	provider  string
	logger    logging.Logger
}

// Option customizes a Coordinator
type Option func(*Coordinator)

// WithCache enables result caching
func WithCache(c Cache) Option {
	return func(co *Coordinator) {
		if c != nil {
			co.cache = c
		}
	}
}

// WithProviderName labels service errors with the backing provider
func WithProviderName(name string) Option {
	return func(co *Coordinator) { co.provider = name }
}

// NewCoordinator creates a coordinator around a generator
func NewCoordinator(gen llm.Generator, pol policy.Policy, logger logging.Logger, opts ...Option) *Coordinator {
	if logger == nil {
		logger = logging.Nop()
	}
	c := &Coordinator{
		generator: gen,
		cache:     NoopCache{},
		policy:    pol,
		logger:    logger.WithField("component", "extraction"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Extract preprocesses text, asks the collaborator for JSON, repairs and
// shape-checks it, and returns a hydrated document. Collaborator failures are
// *utils.ExtractionServiceError; unusable output is *utils.ExtractionParseError.
func (c *Coordinator) Extract(ctx context.Context, rawText string, docType models.DocumentType) (*Result, error) {
	if !docType.Valid() {
		return nil, &utils.ValidationInputError{Field: "type", Reason: fmt.Sprintf("unsupported document type %q", docType)}
	}

	start := time.Now()
	text := Preprocess(rawText, c.policy.MaxExtractionChars)
	if text == "" {
		return nil, ErrEmptyInput
	}

	log := c.logger.WithFields(map[string]interface{}{
		"doc_type": string(docType),
		"chars":    len([]rune(text)),
	})
	log.Info("extraction.start")

	key := CacheKey(docType, text)
	if doc, ok, err := c.cache.Get(ctx, key); err != nil {
		log.Warn("extraction.cache.error", map[string]interface{}{"error": err.Error()})
	} else if ok && doc != nil {
		hydrated := models.Hydrate(*doc)
		log.Info("extraction.cache.hit", map[string]interface{}{"elapsed_ms": time.Since(start).Milliseconds()})
		return &Result{Document: hydrated, Confidence: Confidence(hydrated), Cached: true}, nil
	}

	raw, err := c.generator.Generate(ctx, Prompt(docType, text), SystemInstruction(docType))
	if err != nil {
		log.Error("extraction.service.failed", map[string]interface{}{
			"error":      err.Error(),
			"elapsed_ms": time.Since(start).Milliseconds(),
		})
		return nil, &utils.ExtractionServiceError{Provider: c.provider, Cause: err}
	}

	doc, err := decode(docType, raw)
	if err != nil {
		log.Error("extraction.parse.failed", map[string]interface{}{
			"error":      err.Error(),
			"elapsed_ms": time.Since(start).Milliseconds(),
		})
		return nil, err
	}

	if err := c.cache.Set(ctx, key, doc); err != nil {
		log.Warn("extraction.cache.error", map[string]interface{}{"error": err.Error()})
	}

	confidence := Confidence(doc)
	log.Info("extraction.ok", map[string]interface{}{
		"confidence": confidence,
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return &Result{Document: doc, Confidence: confidence}, nil
}

// decode runs the parse, repair, shape check and hydrate steps on raw model output
func decode(docType models.DocumentType, raw string) (models.Document, error) {
	obj, err := parseObject(raw)
	if err != nil {
		return models.Document{}, err
	}

	obj = repair(docType, obj)
	if err := checkShape(docType, obj); err != nil {
		return models.Document{}, err
	}

	b, err := json.Marshal(obj)
	if err != nil {
		return models.Document{}, &utils.ExtractionParseError{Reason: "re-encode repaired output", Cause: err}
	}

	var doc models.Document
	switch docType {
	case models.DocumentTypeJD:
		var jd models.JDDocument
		if err := json.Unmarshal(b, &jd); err != nil {
			return models.Document{}, &utils.ExtractionParseError{Reason: "decode job description", Snippet: utils.Truncate(string(b), snippetLen), Cause: err}
		}
		doc = models.NewJDDocument(&jd)
	default:
		var cv models.CVDocument
		if err := json.Unmarshal(b, &cv); err != nil {
			return models.Document{}, &utils.ExtractionParseError{Reason: "decode CV", Snippet: utils.Truncate(string(b), snippetLen), Cause: err}
		}
		doc = models.NewCVDocument(&cv)
	}

	return models.Hydrate(doc), nil
}
