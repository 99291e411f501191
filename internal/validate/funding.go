package validate

import (
	"github.com/nurgulresearch/irec/internal/extract"
	"github.com/nurgulresearch/irec/internal/model"
)

const (
	fundingAnchor   = "Is this project being supported by any funding sources?"
	fundingSource   = "If yes, please specify the funding source(s):"
	fundingExternal = "Is the funding external to Nazarbayev University?"
)

// Funding validates Part 10
func Funding(c Context) (model.FindingSet, Context) {
	fs := model.NewFindingSet()

	loc, ok := section(c, MarkerFunding, fundingAnchor, fundingSource, fundingExternal)
	if !ok {
		fs.NotFound("Part 10: Project Funding section not found.")
		return fs, c
	}

	funding := ask(&fs, loc, fundingAnchor, "Project funding")
	switch {
	case funding.Is(extract.OptionYes):
		if source := field(loc, fundingSource); source == "" {
			fs.Errorf("Funding source description is missing or empty.")
		} else {
			fs.Infof("Funding source: %s.", source)
		}
		if ask(&fs, loc, fundingExternal, "External funding").Is(extract.OptionYes) {
			c.Require(FormFundingSource, "Required for external funding.")
		}

	case funding.Is(extract.OptionNo):
		if field(loc, fundingSource) != "" {
			fs.Errorf("Funding source should be empty when funding is No.")
		}
		if loc.Answer(fundingExternal).Answered() {
			fs.Errorf("External funding question should be unanswered when funding is No.")
		}
	}

	return fs, c
}
