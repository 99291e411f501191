package score

import (
	"testing"

	"github.com/nurgulresearch/irec/internal/model"
)

func findings(errors, warnings, info int) model.FindingSet {
	fs := model.NewFindingSet()
	for i := 0; i < errors; i++ {
		fs.Errorf("error %d", i)
	}
	for i := 0; i < warnings; i++ {
		fs.Warnf("warning %d", i)
	}
	for i := 0; i < info; i++ {
		fs.Infof("info %d", i)
	}
	return fs
}

func TestScorer_Summarize(t *testing.T) {
	scorer := NewScorer()

	parts := map[string]model.FindingSet{
		model.SectionScreening:  findings(1, 2, 3),
		model.SectionCoverSheet: findings(0, 1, 5),
		model.SectionNaming:     findings(2, 0, 0),
	}

	sum := scorer.Summarize(parts)
	if sum.Errors != 3 || sum.Warnings != 3 || sum.Info != 8 {
		t.Errorf("Unexpected summary: %+v", sum)
	}

	if empty := scorer.Summarize(nil); empty != (model.Summary{}) {
		t.Errorf("Expected zero summary for no parts, got %+v", empty)
	}
}

func TestScorer_Status(t *testing.T) {
	scorer := NewScorer()

	missing := model.NewFindingSet()
	missing.NotFound("Part 7: Risk/Benefit Analysis section not found.")

	// The wording of an error does not decide the status
	notFoundWording := model.NewFindingSet()
	notFoundWording.Errorf("Part 0 section not found in the document.")

	tests := []struct {
		name string
		fs   model.FindingSet
		want Status
	}{
		{"clean", findings(0, 0, 4), StatusPass},
		{"empty", model.NewFindingSet(), StatusPass},
		{"warnings", findings(0, 2, 1), StatusWarn},
		{"errors", findings(1, 2, 1), StatusFail},
		{"missing section", missing, StatusMissing},
		{"not found wording", notFoundWording, StatusFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scorer.Status(tt.fs); got != tt.want {
				t.Errorf("Status() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestScorer_Sections_Order(t *testing.T) {
	scorer := NewScorer()

	parts := map[string]model.FindingSet{
		model.SectionNaming:    findings(1, 0, 0),
		model.SectionFunding:   findings(0, 0, 1),
		model.SectionScreening: findings(0, 1, 0),
		"Appendix":             findings(0, 0, 0),
	}

	got := scorer.Sections(parts)
	want := []string{model.SectionScreening, model.SectionFunding, model.SectionNaming, "Appendix"}

	if len(got) != len(want) {
		t.Fatalf("Expected %d sections, got %d", len(want), len(got))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("Section %d = %s, want %s", i, got[i].Name, name)
		}
	}

	if got[0].Status != StatusWarn || got[0].Warnings != 1 {
		t.Errorf("Unexpected Part 0 score: %+v", got[0])
	}
	if got[2].Status != StatusFail || got[2].Errors != 1 {
		t.Errorf("Unexpected Part 11 score: %+v", got[2])
	}
}

func TestScorer_Overall(t *testing.T) {
	scorer := NewScorer()

	if got := scorer.Overall(nil); got != StatusPass {
		t.Errorf("Expected pass for no sections, got %s", got)
	}

	sections := []SectionScore{
		{Name: "Part 0", Status: StatusPass},
		{Name: "Part 1", Status: StatusWarn},
		{Name: "Part 2", Status: StatusFail},
	}
	if got := scorer.Overall(sections); got != StatusFail {
		t.Errorf("Expected fail, got %s", got)
	}

	sections = append(sections, SectionScore{Name: "Part 3", Status: StatusMissing})
	if got := scorer.Overall(sections); got != StatusMissing {
		t.Errorf("Expected missing, got %s", got)
	}
}
