package validate

import (
	"github.com/nurgulresearch/irec/internal/extract"
	"github.com/nurgulresearch/irec/internal/model"
)

// Section header markers, in document order
const (
	MarkerScreening       = "Part 0: Do I Submit an NU IREC Application?"
	MarkerCoverSheet      = "Part 1: Cover Sheet"
	MarkerResearchTeam    = "Part 2: Research Team Details"
	MarkerResearchDesign  = "Part 3: Research Design"
	MarkerParticipants    = "Part 4: Participants"
	MarkerProcedures      = "Part 5: Detailed Procedures"
	MarkerDataManagement  = "Part 6: Data Management Plan"
	MarkerRiskBenefit     = "Part 7: Risk/Benefit Analysis"
	MarkerConfidentiality = "Part 8: Confidentiality/Anonymity"
	MarkerFunding         = "Part 10: Project Funding"
	MarkerNaming          = "Part 11: Protocol for naming of documents"
	MarkerChecklist       = "Application Checklist"
)

// sectionBound is a section header and the first question of its body. The
// landmark still bounds the preceding section when the header is missing.
type sectionBound struct {
	header   string
	landmark string
}

// sectionBounds lists the sections in document order
var sectionBounds = []sectionBound{
	{MarkerScreening, ""},
	{MarkerCoverSheet, "Principal Investigator:"},
	{MarkerResearchTeam, citiStatus},
	{MarkerResearchDesign, designPurpose},
	{MarkerParticipants, "Will your research involve any of the following special populations?"},
	{MarkerProcedures, collectionDates},
	{MarkerDataManagement, surveyGate},
	{MarkerRiskBenefit, minimalRisk},
	{MarkerConfidentiality, recordingsAnchor},
	{MarkerFunding, fundingAnchor},
	{MarkerNaming, "Name each file as"},
}

// boundsAfter returns the headers and landmarks of the sections after start
func boundsAfter(start string) []string {
	for i, b := range sectionBounds {
		if b.header != start {
			continue
		}
		var ends []string
		for _, later := range sectionBounds[i+1:] {
			ends = append(ends, later.header, later.landmark)
		}
		return ends
	}
	return nil
}

// section slices one section out of the paragraph stream and wraps it in a
// locator bounded by the section's anchors. The section ends at the first
// header or landmark of any later section. It reports false when the start
// marker never appears.
func section(c Context, start string, anchors ...string) (*extract.TextLocator, bool) {
	text := extract.Slice(c.Paragraphs, start, boundsAfter(start)...)
	if text == "" {
		return nil, false
	}
	return extract.NewLocator(text, anchors...), true
}

// ask decodes a Yes/No question and records the finding for its state:
// missing is an error, unmarked or ambiguous a warning, marked an info.
func ask(fs *model.FindingSet, loc extract.Locator, anchor, label string, options ...extract.Option) extract.AnswerToken {
	ans := loc.Answer(anchor, options...)
	switch ans.State {
	case extract.StateMissing:
		fs.Errorf("%s question not found or improperly formatted.", label)
	case extract.StateUnmarked:
		fs.Warnf("%s checkbox is not marked (%s).", label, extract.GlyphUnmarked)
	case extract.StateAmbiguous:
		fs.Warnf("%s has more than one option marked.", label)
	case extract.StateMarked:
		fs.Infof("%s: %s.", label, ans.Option)
	}
	return ans
}

// respond is ask for questions reported by their full wording
func respond(fs *model.FindingSet, loc extract.Locator, anchor, question string, options ...extract.Option) extract.AnswerToken {
	ans := loc.Answer(anchor, options...)
	switch ans.State {
	case extract.StateMissing:
		fs.Errorf("Response to '%s' not found or improperly formatted.", question)
	case extract.StateUnmarked:
		fs.Warnf("Checkbox for '%s' is not marked (%s).", question, extract.GlyphUnmarked)
	case extract.StateAmbiguous:
		fs.Warnf("Checkbox for '%s' has more than one option marked.", question)
	case extract.StateMarked:
		fs.Infof("Response to '%s': %s", question, ans)
	}
	return ans
}

// requireField records an error for an empty value and an info otherwise.
// It reports whether the value was present.
func requireField(fs *model.FindingSet, value, label string) bool {
	if value == "" {
		fs.Errorf("%s is missing or empty.", label)
		return false
	}
	fs.Infof("%s provided.", label)
	return true
}

// field is Locator.Field without the found flag
func field(loc extract.Locator, anchor string) string {
	v, _ := loc.Field(anchor)
	return v
}

// line is Locator.Line without the found flag
func line(loc extract.Locator, anchor string) string {
	v, _ := loc.Line(anchor)
	return v
}
