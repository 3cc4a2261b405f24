// Package report renders a validation run as an XLSX workbook.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"docsense/internal/logging"
	"docsense/pkg/models"
)

// Sheet names, in workbook order
const (
	SheetSummary     = "Summary"
	SheetIssues      = "Issues"
	SheetMissing     = "Missing"
	SheetSuggestions = "Suggestions"
)

// Input is one document's full pipeline output
type Input struct {
	Type        models.DocumentType
	Title       string
	Validation  models.ValidationResult
	Analysis    models.MissingDataAnalysis
	Suggestions []models.DataSuggestion
	GeneratedAt time.Time
}

// Writer builds workbooks
type Writer struct {
	logger logging.Logger
}

func NewWriter(logger logging.Logger) *Writer {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Writer{logger: logger}
}

// XLSX returns the workbook bytes
func (w *Writer) XLSX(in Input) ([]byte, error) {
	start := time.Now()
	if in.GeneratedAt.IsZero() {
		in.GeneratedAt = time.Now().UTC()
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}
	for _, name := range []string{SheetIssues, SheetMissing, SheetSuggestions} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("xlsx sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx style: %w", err)
	}

	writeSummary(f, in, header)
	writeIssues(f, in.Validation.Issues, header)
	writeMissing(f, in.Analysis, header)
	writeSuggestions(f, in.Suggestions, header)

	if index, err := f.GetSheetIndex(SheetSummary); err == nil {
		f.SetActiveSheet(index)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	w.logger.Info("export.xlsx.ok", map[string]interface{}{
		"type":        string(in.Type),
		"issues":      len(in.Validation.Issues),
		"suggestions": len(in.Suggestions),
		"elapsed_ms":  time.Since(start).Milliseconds(),
	})
	return buf.Bytes(), nil
}

// table writes a header row and then rows, one per slice entry
func table(f *excelize.File, sheet string, header int, headers []string, rows [][]interface{}) {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	_ = f.SetCellStyle(sheet, "A1", last, header)

	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
}

func writeSummary(f *excelize.File, in Input, header int) {
	v := in.Validation
	rows := [][]interface{}{
		{"Document type", string(in.Type)},
		{"Title", in.Title},
		{"Generated at", in.GeneratedAt.Format(time.RFC3339)},
		{"Score", v.Score},
		{"Grade", string(v.Grade)},
		{"Confidence", v.Confidence},
		{"Completeness", v.Completeness.Overall},
		{"Quality", v.QualityScore.Overall},
		{"Clarity", v.QualityScore.Clarity},
		{"Impact", v.QualityScore.Impact},
		{"Structure", v.QualityScore.Structure},
		{"Keyword optimization", v.QualityScore.KeywordOptimization},
		{"Missing-data score", in.Analysis.OverallScore},
		{"Errors", v.Count(models.SeverityError)},
		{"Warnings", v.Count(models.SeverityWarning)},
	}
	for _, section := range sortedKeys(v.Completeness.Sections) {
		rows = append(rows, []interface{}{"Completeness: " + section, v.Completeness.Sections[section]})
	}
	for _, a := range in.Analysis.PriorityActions {
		rows = append(rows, []interface{}{"Action: " + a.Title, a.ImpactScore})
	}
	table(f, SheetSummary, header, []string{"Metric", "Value"}, rows)
	_ = f.SetColWidth(SheetSummary, "A", "A", 40)
	_ = f.SetColWidth(SheetSummary, "B", "B", 28)
}

func writeIssues(f *excelize.File, issues []models.ValidationIssue, header int) {
	rows := make([][]interface{}, 0, len(issues))
	for _, issue := range issues {
		rows = append(rows, []interface{}{
			issue.Field, string(issue.Category), string(issue.Severity), string(issue.Priority), issue.Message, issue.Suggestion,
		})
	}
	table(f, SheetIssues, header, []string{"Field", "Category", "Severity", "Priority", "Message", "Suggestion"}, rows)
	_ = f.SetColWidth(SheetIssues, "A", "A", 28)
	_ = f.SetColWidth(SheetIssues, "B", "D", 14)
	_ = f.SetColWidth(SheetIssues, "E", "F", 60)
}

func writeMissing(f *excelize.File, a models.MissingDataAnalysis, header int) {
	var rows [][]interface{}
	for _, m := range a.All() {
		rows = append(rows, []interface{}{
			m.Field, m.Category, string(m.Importance), m.ImpactOnScore, m.Reason, m.Example,
		})
	}
	table(f, SheetMissing, header, []string{"Field", "Category", "Importance", "Impact", "Reason", "Example"}, rows)
	_ = f.SetColWidth(SheetMissing, "A", "A", 28)
	_ = f.SetColWidth(SheetMissing, "E", "F", 50)
}

func writeSuggestions(f *excelize.File, suggestions []models.DataSuggestion, header int) {
	rows := make([][]interface{}, 0, len(suggestions))
	for _, s := range suggestions {
		rows = append(rows, []interface{}{
			s.Field, string(s.Category), valueText(s.SuggestedValue), s.Confidence, string(s.Impact), string(s.Source), s.Reason,
		})
	}
	table(f, SheetSuggestions, header, []string{"Field", "Category", "Value", "Confidence", "Impact", "Source", "Reason"}, rows)
	_ = f.SetColWidth(SheetSuggestions, "A", "B", 24)
	_ = f.SetColWidth(SheetSuggestions, "C", "C", 60)
	_ = f.SetColWidth(SheetSuggestions, "G", "G", 50)
}

func valueText(v models.SuggestedValue) string {
	switch {
	case v.Salary != nil:
		s := v.Salary
		text := fmt.Sprintf("%.0f-%.0f %s", s.Min, s.Max, s.Currency)
		if s.Period != "" {
			text += " " + string(s.Period)
		}
		return strings.TrimSpace(text)
	case v.IsList():
		return strings.Join(v.Items, ", ")
	}
	return v.Text
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
