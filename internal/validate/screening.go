package validate

import (
	"github.com/nurgulresearch/irec/internal/extract"
	"github.com/nurgulresearch/irec/internal/model"
)

// Trigger is the answer to a screening question that means an IREC
// application is needed
type Trigger int

const (
	TriggerYes    Trigger = iota // "Yes" needs an application
	TriggerNo                    // "No" needs an application
	TriggerAlways                // Any marked answer needs an application
)

// Fires reports whether a marked option triggers the application requirement
func (t Trigger) Fires(opt extract.Option) bool {
	switch t {
	case TriggerYes:
		return opt == extract.OptionYes
	case TriggerNo:
		return opt == extract.OptionNo
	default:
		return true
	}
}

// ScreeningQuestion is one row of the Part 0 questionnaire
type ScreeningQuestion struct {
	ID      string
	Text    string // Wording used in findings
	Anchor  string
	Trigger Trigger
}

// ScreeningQuestions is the Part 0 rule table
var ScreeningQuestions = []ScreeningQuestion{
	{
		ID:      "human_subjects",
		Text:    "Does your research involve human subjects or official records about human subjects?",
		Anchor:  "Does your research involve human subjects",
		Trigger: TriggerYes,
	},
	{
		ID:      "course_requirements",
		Text:    "Is this project being conducted solely to fulfill course requirements...?",
		Anchor:  "Is this project being conducted solely to fulfill course requirements",
		Trigger: TriggerNo,
	},
	{
		ID:      "quality_assurance",
		Text:    "Is this project a quality assurance activity or program improvement activity...?",
		Anchor:  "Is this project a quality assurance activity",
		Trigger: TriggerNo,
	},
	{
		ID:      "future_investigations",
		Text:    "Would you like to use this study to launch future investigations...?",
		Anchor:  "Would you like to use this study to launch future investigations",
		Trigger: TriggerYes,
	},
	{
		ID:      "dissemination",
		Text:    "Would you like to disseminate or publish findings...?",
		Anchor:  "Would you like to disseminate or publish findings",
		Trigger: TriggerYes,
	},
	{
		ID:      "exemption",
		Text:    "Do you think this research is eligible for an Exemption...?",
		Anchor:  "Do you think this research is eligible for an Exemption",
		Trigger: TriggerAlways,
	},
}

// ExemptionCategory is a category that disqualifies an expedited application
// from exemption. All must be left unchecked.
type ExemptionCategory struct {
	Code  string
	Label string
}

// ExemptionCategories lists the exemption categories checked in Part 0
var ExemptionCategories = []ExemptionCategory{
	{Code: "f1", Label: "Research conducted in established or commonly accepted educational settings"},
	{Code: "f2", Label: "Research involving the use of educational tests"},
	{Code: "f3", Label: "Research involving the collection or study of existing data"},
}

const exemptionJustification = "Outline the reasons why your study should be considered exempt:"

func screeningAnchors() []string {
	anchors := []string{exemptionJustification}
	for _, q := range ScreeningQuestions {
		anchors = append(anchors, q.Anchor)
	}
	for _, c := range ExemptionCategories {
		anchors = append(anchors, c.Code+" ")
	}
	return anchors
}

// Screening validates Part 0 and exports whether an exemption is claimed
func Screening(c Context) (model.FindingSet, Context) {
	fs := model.NewFindingSet()

	loc, ok := section(c, MarkerScreening, screeningAnchors()...)
	if !ok {
		fs.NotFound("Part 0 section not found in the document.")
		return fs, c
	}

	needed := false
	for _, q := range ScreeningQuestions {
		ans := respond(&fs, loc, q.Anchor, q.Text)
		if !ans.Answered() {
			continue
		}
		if q.Trigger.Fires(ans.Option) {
			needed = true
		}
		if q.ID == "exemption" && ans.Is(extract.OptionYes) {
			c.ExemptionClaimed = true
		}
	}

	if !needed {
		fs.Errorf("Part 0 responses indicate no application is needed.")
	}

	if c.ExemptionClaimed {
		if field(loc, exemptionJustification) != "" {
			fs.Infof("Exemption justification provided.")
		} else {
			fs.Warnf("Exemption claimed, but no justification provided.")
		}
	}

	for _, cat := range ExemptionCategories {
		checked, found := loc.Checkbox(cat.Label)
		switch {
		case !found:
			fs.Errorf("Exemption category '%s' not found.", cat.Code)
		case checked:
			fs.Errorf("Exemption category '%s' is checked. Must be unchecked (%s).", cat.Code, extract.GlyphUnmarked)
		default:
			fs.Infof("Exemption category '%s' is correctly unchecked (%s).", cat.Code, extract.GlyphUnmarked)
		}
	}

	return fs, c
}
