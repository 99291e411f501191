package validate

import (
	"regexp"
	"strings"

	"github.com/nurgulresearch/irec/internal/extract"
	"github.com/nurgulresearch/irec/internal/model"
)

const (
	collectionDates   = "When is the data collection for the research intended to begin and end?"
	involvementAnchor = "Describe how subjects will be involved in detail"
	administerAnchor  = "Will you be the one administering"
	discomfortAnchor  = "Will the participants experience any discomfort?"
	discomfortExplain = `If "Yes", please explain`
	deceptionAnchor   = "Will deception or false or misleading information be used"
	deceptionExplain  = `If "Yes", explain why deception is necessary`
)

var monthSpan = regexp.MustCompile(`(\d{1,2}/\d{4})\s*(?:to|-|–)\s*(\d{1,2}/\d{4})`)

// Procedures validates Part 5 and exports the involvement text
func Procedures(c Context) (model.FindingSet, Context) {
	fs := model.NewFindingSet()

	loc, ok := section(c, MarkerProcedures,
		collectionDates, involvementAnchor, administerAnchor,
		discomfortAnchor, discomfortExplain, deceptionAnchor, deceptionExplain)
	if !ok {
		fs.NotFound("Part 5: Detailed Procedures section not found.")
		return fs, c
	}

	checkCollectionSpan(&fs, c, line(loc, collectionDates)+"\n"+field(loc, collectionDates))

	involvement := field(loc, involvementAnchor)
	if requireField(&fs, involvement, "Participant involvement description") {
		c.InvolvementText = strings.ToLower(involvement)
		if strings.Contains(c.InvolvementText, "debriefing") {
			c.Require(FormDebriefing, "Required if debriefing is part of the research process.")
		}
	}

	requireField(&fs, field(loc, administerAnchor), "Data collection administration description")

	discomfort := explainedAnswer{
		label:    "Discomfort",
		question: "Participants may experience discomfort",
		anchor:   discomfortAnchor,
		explain:  discomfortExplain,
		next:     deceptionAnchor,
	}
	if discomfort.check(&fs, loc) {
		c.Require(FormWrittenConsent, "Required for research involving potential discomfort, with precautions described.")
	}

	deception := explainedAnswer{
		label:    "Deception",
		question: "Deception will be used",
		anchor:   deceptionAnchor,
		explain:  deceptionExplain,
	}
	if deception.check(&fs, loc) {
		c.Require(FormWrittenConsent, "Required for research involving deception, with debriefing procedures described.")
		c.Require(FormDebriefing, "Required for research involving deception to explain debriefing procedures.")
	}

	return fs, c
}

func checkCollectionSpan(fs *model.FindingSet, c Context, value string) {
	m := monthSpan.FindStringSubmatch(value)
	if m == nil {
		fs.Errorf("Data collection start and end dates are missing or improperly formatted.")
		return
	}

	start, errStart := extract.ParseMonth(m[1])
	end, errEnd := extract.ParseMonth(m[2])
	if errStart != nil || errEnd != nil {
		fs.Errorf("Data collection dates must be in MM/YYYY format.")
		return
	}
	fs.Infof("Data collection dates: %s to %s.", m[1], m[2])

	months := extract.MonthsBetween(start, end)
	switch {
	case months < 0:
		fs.Errorf("Data collection end date is before the start date.")
	case months > c.Rules.MaxCollectionMonths:
		fs.Errorf("Data collection period of %d months exceeds %d months, which is not allowed without extension.", months, c.Rules.MaxCollectionMonths)
	}
}

// explainedAnswer is a Yes/No question whose "Yes" needs an explanation and
// whose "No" should leave the explanation empty
type explainedAnswer struct {
	label    string // Used in findings about the checkbox and explanation
	question string // Used in the info finding for the answer
	anchor   string
	explain  string
	next     string // Anchor that bounds the explanation, if any
}

// check records the findings and reports whether "Yes" was marked
func (q explainedAnswer) check(fs *model.FindingSet, loc extract.Locator) bool {
	ans := loc.Answer(q.anchor)
	switch {
	case !ans.Found():
		fs.Errorf("%s question not found or improperly formatted.", q.label)
		return false
	case !ans.Answered():
		fs.Warnf("%s checkbox is not marked (%s).", q.label, extract.GlyphUnmarked)
		return false
	}

	block := loc.Block(q.anchor, q.next)
	explanation := field(block, q.explain)

	if ans.Is(extract.OptionNo) {
		fs.Infof("%s: No.", q.question)
		if explanation != "" {
			fs.Warnf("%s explanation provided when %s is No; expected N/A or empty.", q.label, strings.ToLower(q.label))
		}
		return false
	}

	fs.Infof("%s: Yes.", q.question)
	lower := strings.ToLower(q.label)
	switch {
	case block.NotApplicable(q.explain).Is(extract.OptionNA):
		fs.Errorf("%s explanation cannot be N/A when %s is Yes.", q.label, lower)
	case explanation == "":
		fs.Errorf("%s explanation is missing or empty when %s is Yes.", q.label, lower)
	default:
		fs.Infof("%s explanation provided.", q.label)
	}
	return true
}
