package report

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"docsense/internal/analyzer"
	"docsense/internal/policy"
	"docsense/internal/suggest"
	"docsense/internal/validator"
	"docsense/pkg/models"
)

func TestXLSXSheets(t *testing.T) {
	p := policy.Default()
	doc := models.NewCVDocument(&models.CVDocument{PersonalInfo: models.PersonalInfo{Name: "Jane Doe"}})
	v := validator.New(p).Validate(doc)
	m := analyzer.New(p).Analyze(doc, v)
	s := suggest.New(p).Suggest(doc, v, m)

	data, err := NewWriter(nil).XLSX(Input{Type: models.DocumentTypeCV, Title: "Jane Doe", Validation: v, Analysis: m, Suggestions: s})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	want := []string{SheetSummary, SheetIssues, SheetMissing, SheetSuggestions}
	if len(sheets) != len(want) {
		t.Fatalf("expected sheets %v, got %v", want, sheets)
	}
	for i := range want {
		if sheets[i] != want[i] {
			t.Fatalf("expected sheets %v, got %v", want, sheets)
		}
	}

	counts := map[string]int{
		SheetIssues:      len(v.Issues),
		SheetMissing:     len(m.All()),
		SheetSuggestions: len(s),
	}
	for sheet, n := range counts {
		rows, err := f.GetRows(sheet)
		if err != nil {
			t.Fatalf("read %s: %v", sheet, err)
		}
		if len(rows) != n+1 {
			t.Fatalf("%s: expected %d rows plus header, got %d", sheet, n, len(rows))
		}
	}

	score, err := f.GetCellValue(SheetSummary, "B5")
	if err != nil || score == "" {
		t.Fatalf("expected a score cell, got %q / %v", score, err)
	}
}

func TestValueText(t *testing.T) {
	if got := valueText(models.ItemsValue("Go", "Docker")); got != "Go, Docker" {
		t.Fatalf("unexpected list text %q", got)
	}
	salary := models.SalaryValue(models.Salary{Min: 100000, Max: 140000, Currency: "USD", Period: models.PeriodYearly})
	if got := valueText(salary); got != "100000-140000 USD yearly" {
		t.Fatalf("unexpected salary text %q", got)
	}
}
