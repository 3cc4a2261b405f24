package policy

import "testing"

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("expected default policy to validate, got %v", err)
	}
}

func TestMergeKeepsZeroFields(t *testing.T) {
	p := Default().Merge(Policy{GapDays: 365, MinTechnicalSkills: 8})

	if p.GapDays != 365 {
		t.Fatalf("expected gap days 365, got %d", p.GapDays)
	}
	if p.MinTechnicalSkills != 8 {
		t.Fatalf("expected min technical skills 8, got %d", p.MinTechnicalSkills)
	}
	if p.MinSummaryChars != 30 {
		t.Fatalf("expected untouched min summary 30, got %d", p.MinSummaryChars)
	}
	if p.CVWeights.PersonalInfo != 30 {
		t.Fatalf("expected untouched cv weights, got %+v", p.CVWeights)
	}
}

func TestValidateRejectsBadWeights(t *testing.T) {
	p := Default()
	p.JDWeights.Summary = 50
	if err := p.Validate(); err == nil {
		t.Fatal("expected error for jd weights summing past 100")
	}
}
