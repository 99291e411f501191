package validate

import (
	"strings"

	"github.com/nurgulresearch/irec/internal/extract"
	"github.com/nurgulresearch/irec/internal/model"
)

const (
	minimalRisk        = "Do you believe those risks will be no greater than minimal?"
	minimalRiskExplain = "Explain why:"
	risksAnchor        = "Describe all risks"
	greaterThanMinimal = "If risks are greater than minimal"
	benefitsAnchor     = "Will the participants directly or indirectly benefit"
	benefitsExplain    = "Please explain:"
	societalBenefits   = "What are the anticipated benefits to society"
	incentivesAnchor   = "Will incentives be offered"
	incentivesExplain  = `If "Yes", please describe`
)

// greaterRiskFields are required only when risks exceed minimal
var greaterRiskFields = []struct{ name, anchor string }{
	{"Why risks are essential", "Explain why these risks are essential to your study"},
	{"Minimize risks", "What have you done to minimize risks"},
	{"Protections for consequences", "What protections have you put in place"},
	{"Adverse events reporting", "What procedures have you established for reporting adverse events"},
}

func riskAnchors() []string {
	anchors := []string{
		minimalRisk, minimalRiskExplain, risksAnchor, greaterThanMinimal, benefitsAnchor,
		benefitsExplain, societalBenefits, incentivesAnchor, incentivesExplain,
	}
	for _, f := range greaterRiskFields {
		anchors = append(anchors, f.anchor)
	}
	return anchors
}

// RiskBenefit validates Part 7
func RiskBenefit(c Context) (model.FindingSet, Context) {
	fs := model.NewFindingSet()

	loc, ok := section(c, MarkerRiskBenefit, riskAnchors()...)
	if !ok {
		fs.NotFound("Part 7: Risk/Benefit Analysis section not found.")
		return fs, c
	}

	risk := ask(&fs, loc, minimalRisk, "Minimal risk")
	if risk.Found() {
		requireField(&fs, field(loc, minimalRiskExplain), "Minimal risk explanation")
	}

	risks := field(loc, risksAnchor)
	switch {
	case risks == "":
		fs.Errorf("Risks description is missing or empty.")
	case dismissesRisk(risks):
		fs.Errorf("Risks description cannot be 'Not Applicable' or 'No risk'.")
	default:
		fs.Infof("Risks description: %s.", risks)
	}

	if risk.Is(extract.OptionNo) {
		c.Require(FormWrittenConsent, "Required for research with greater than minimal risk, detailing risk management procedures.")
		for _, f := range greaterRiskFields {
			if field(loc, f.anchor) == "" {
				fs.Errorf("%s description is missing or empty when risks are greater than minimal.", f.name)
			} else {
				fs.Infof("%s description provided.", f.name)
			}
		}
	}

	benefits := ask(&fs, loc, benefitsAnchor, "Participant benefits")
	if benefits.Answered() {
		if requireField(&fs, field(loc, benefitsExplain), "Participant benefits explanation") && benefits.Is(extract.OptionYes) {
			c.Require(FormWrittenConsent, "Required to detail participant benefits.")
		}
	}

	requireField(&fs, field(loc, societalBenefits), "Societal benefits description")

	incentives := explainedAnswer{
		label:    "Incentives",
		question: "Incentives",
		anchor:   incentivesAnchor,
		explain:  incentivesExplain,
	}
	if incentives.check(&fs, loc) {
		c.Require(FormWrittenConsent, "Required for incentives, with details.")
	}

	return fs, c
}

// dismissesRisk reports whether a risks description only waves the risks away
func dismissesRisk(text string) bool {
	t := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(text)), ".")
	return t == "not applicable" || t == "no risk" || t == "no risks" || t == "n/a"
}
