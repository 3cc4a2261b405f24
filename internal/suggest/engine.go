// Package suggest turns validation issues and missing-data findings into
// concrete values a user can accept, and applies them to documents.
package suggest

import (
	"sort"

	"docsense/internal/policy"
	"docsense/pkg/models"
	"docsense/pkg/utils"
)

// Engine is pure and safe for concurrent use
type Engine struct {
	policy policy.Policy
}

// New creates an engine bound to a policy
func New(p policy.Policy) *Engine {
	return &Engine{policy: p}
}

// Suggest runs every rule for the document type and ranks the results by
// impact weight times confidence. Ties keep rule order.
func (e *Engine) Suggest(doc models.Document, validation models.ValidationResult, missing models.MissingDataAnalysis) []models.DataSuggestion {
	b := &builder{items: []models.DataSuggestion{}}
	if doc.Kind() == models.DocumentTypeJD {
		e.suggestJD(b, models.HydrateJD(doc.JD), validation, missing)
	} else {
		e.suggestCV(b, models.HydrateCV(doc.CV), missing)
	}

	out := b.items
	sort.SliceStable(out, func(i, j int) bool { return out[i].RankScore() > out[j].RankScore() })
	return out
}

// Find returns the suggestion with id
func Find(suggestions []models.DataSuggestion, id string) (models.DataSuggestion, bool) {
	for _, s := range suggestions {
		if s.ID == id {
			return s, true
		}
	}
	return models.DataSuggestion{}, false
}

type builder struct {
	items []models.DataSuggestion
}

func (b *builder) add(field string, category models.SuggestionCategory, value models.SuggestedValue, confidence int, source models.SuggestionSource, impact models.Priority, reason string) {
	b.items = append(b.items, models.DataSuggestion{
		ID:             utils.StableID("suggestion", string(category), field),
		Field:          field,
		Category:       category,
		SuggestedValue: value,
		Confidence:     confidence,
		Source:         source,
		Reason:         reason,
		Impact:         impact,
	})
}

// tierImpact returns the impact implied by a missing-data entry for field
func tierImpact(missing models.MissingDataAnalysis, field string) (models.Priority, bool) {
	f, ok := missing.Find(field)
	if !ok {
		return "", false
	}
	return f.Importance.Impact(), true
}
