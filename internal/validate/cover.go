package validate

import (
	"github.com/nurgulresearch/irec/internal/extract"
	"github.com/nurgulresearch/irec/internal/model"
)

const (
	reviewExpedited = "An Expedited Review"
	reviewFullBoard = "A Full Board Review"
	reviewExemption = "An Exemption"
	applicationDate = "Application Date:"
	reviewPrompt    = "This application is for:"
)

var coverFields = []string{
	"Principal Investigator:",
	applicationDate,
	"Nazarbayev University Unit (School):",
	"Primary Research Discipline:",
	"Application Title:",
}

var reviewTypes = []string{reviewExpedited, reviewFullBoard, reviewExemption}

// CoverSheet validates Part 1
func CoverSheet(c Context) (model.FindingSet, Context) {
	fs := model.NewFindingSet()

	anchors := append(append([]string{}, coverFields...), reviewPrompt)
	anchors = append(anchors, reviewTypes...)
	loc, ok := section(c, MarkerCoverSheet, anchors...)
	if !ok {
		fs.NotFound("Part 1: Cover Sheet section not found.")
		return fs, c
	}

	for _, name := range coverFields {
		value := line(loc, name)
		if value == "" {
			fs.Errorf("Field '%s' is missing or empty.", name)
			continue
		}
		fs.Infof("Field '%s' filled: %s", name, value)

		if name == applicationDate {
			if _, err := extract.ParseDate(value); err != nil {
				fs.Errorf("Application Date is not in valid format (MM/DD/YYYY).")
			} else {
				fs.Infof("Application Date is in valid format (MM/DD/YYYY).")
			}
		}
	}

	var selected []string
	for _, review := range reviewTypes {
		if reviewSelected(&fs, loc, review) {
			selected = append(selected, review)
		}
	}

	switch {
	case len(selected) != 1:
		fs.Errorf("Exactly one review type must be selected. Found %d.", len(selected))
	case selected[0] != reviewExpedited:
		fs.Errorf("School-level review requires '%s'. Selected: %s.", reviewExpedited, selected[0])
	}

	for _, review := range selected {
		if review == reviewExemption && !c.ExemptionClaimed {
			fs.Errorf("Exemption selected in Part 1, but Part 0 does not claim exemption.")
		}
	}

	return fs, c
}

// reviewSelected decodes one review-type option. The form renders these
// either as a Yes/No pair or as a single checkbox next to the label.
func reviewSelected(fs *model.FindingSet, loc extract.Locator, review string) bool {
	ans := loc.Answer(review)
	if !ans.Found() {
		checked, found := loc.Checkbox(review)
		if !found {
			fs.Errorf("Response to '%s' not found or improperly formatted.", review)
			return false
		}
		if checked {
			fs.Infof("Response to '%s': %s", review, extract.GlyphMarked)
		}
		return checked
	}

	switch ans.State {
	case extract.StateMarked:
		fs.Infof("Response to '%s': %s", review, ans)
	case extract.StateAmbiguous:
		fs.Warnf("Checkbox for '%s' has more than one option marked.", review)
	default:
		fs.Warnf("Checkbox for '%s' is not marked (%s).", review, extract.GlyphUnmarked)
	}
	return ans.Is(extract.OptionYes)
}
