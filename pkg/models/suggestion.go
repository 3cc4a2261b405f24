package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SuggestionCategory groups data suggestions
type SuggestionCategory string

const (
	SuggestionContactInfo        SuggestionCategory = "contact-info"
	SuggestionContentImprovement SuggestionCategory = "content-improvement"
	SuggestionSummary            SuggestionCategory = "summary"
	SuggestionLanguage           SuggestionCategory = "language"
	SuggestionCompensation       SuggestionCategory = "compensation"
	SuggestionBenefits           SuggestionCategory = "benefits"
	SuggestionKeywords           SuggestionCategory = "keywords"
)

// SuggestionSource records which rule family produced a suggestion
type SuggestionSource string

const (
	SourceTemplate   SuggestionSource = "template"
	SourceRewrite    SuggestionSource = "rewrite"
	SourceMarketData SuggestionSource = "market-data"
	SourceTrending   SuggestionSource = "trending-skills"
)

// SuggestedValue is a string, a list of strings, or a salary band.
// It marshals to the bare JSON value of whichever is set.
type SuggestedValue struct {
	Text   string
	Items  []string
	Salary *Salary
}

// TextValue wraps a scalar suggestion
func TextValue(s string) SuggestedValue { return SuggestedValue{Text: s} }

// ItemsValue wraps a list suggestion
func ItemsValue(items ...string) SuggestedValue { return SuggestedValue{Items: items} }

// SalaryValue wraps a salary suggestion
func SalaryValue(s Salary) SuggestedValue { return SuggestedValue{Salary: &s} }

// IsList reports whether the value holds items
func (v SuggestedValue) IsList() bool { return v.Items != nil }

func (v SuggestedValue) MarshalJSON() ([]byte, error) {
	switch {
	case v.Salary != nil:
		return json.Marshal(v.Salary)
	case v.Items != nil:
		return json.Marshal(v.Items)
	default:
		return json.Marshal(v.Text)
	}
}

func (v *SuggestedValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = SuggestedValue{}
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = SuggestedValue{Text: s}
	case '[':
		items := []string{}
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*v = SuggestedValue{Items: items}
	case '{':
		var s Salary
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = SuggestedValue{Salary: &s}
	default:
		return fmt.Errorf("unsupported suggested value: %s", data)
	}
	return nil
}

// DataSuggestion proposes a concrete value for a field
type DataSuggestion struct {
	ID             string             `json:"id"`
	Field          string             `json:"field"`
	Category       SuggestionCategory `json:"category"`
	SuggestedValue SuggestedValue     `json:"suggestedValue"`
	Confidence     int                `json:"confidence"`
	Source         SuggestionSource   `json:"source"`
	Reason         string             `json:"reason"`
	Impact         Priority           `json:"impact"`
}

// RankScore is impact weight times confidence fraction
func (s DataSuggestion) RankScore() float64 {
	return float64(s.Impact.Weight()) * float64(s.Confidence) / 100
}
