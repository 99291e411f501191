package validate

import (
	"regexp"
	"strconv"

	"github.com/nurgulresearch/irec/internal/extract"
	"github.com/nurgulresearch/irec/internal/model"
)

// Population is a special participant population asked about in Part 4
type Population struct {
	Name      string
	Anchor    string
	Minor     bool // Needs assent and parental consent instead of written consent
	Sensitive bool // Confidentiality agreement is recommended
}

// Populations is the Part 4 special-population table
var Populations = []Population{
	{Name: "Minors", Anchor: "Minors (under 18 years of age)?", Minor: true},
	{Name: "Legally incompetent", Anchor: "Legally incompetent?"},
	{Name: "Prisoners", Anchor: "Prisoners?"},
	{Name: "Perinatal women", Anchor: "Perinatal women"},
	{Name: "Institutionalized", Anchor: "Institutionalized?"},
	{Name: "Mentally incapacitated", Anchor: "Mentally incapacitated?"},
	{Name: "Sexual behaviors", Anchor: "Sexual behaviors?", Sensitive: true},
	{Name: "Drug use", Anchor: "Drug use?", Sensitive: true},
	{Name: "Illegal conduct", Anchor: "Illegal conduct?", Sensitive: true},
	{Name: "Use of alcohol", Anchor: "Use of alcohol?", Sensitive: true},
}

const (
	populationOther     = "Other (please specify)"
	sampleSize          = "Expected number of participants or sample size:"
	groupJustification  = "Explain why you have chosen this particular group"
	relationshipAnchor  = "What is your relationship to the participants?"
	powerAnchor         = "Does your relationship potentially create any power"
	recruitedAnchor     = "Will participants be recruited?"
	contactAnchor       = "How will you contact potential participants"
	recruitMethodAnchor = "Describe the method for recruiting participants"
	exclusionsAnchor    = "Exclusions:"
	withdrawalAnchor    = "Procedures in the event of a participant withdrawing"

	allLanguages = "English, Russian, Kazakh"
)

var leadingDigits = regexp.MustCompile(`^\d+`)

// demographicFields maps finding names to their inline anchors
var demographicFields = []struct{ name, anchor string }{
	{"Languages of communication", "Languages of communication:"},
	{"Gender, race or ethnic group", "Gender, race or ethnic group"},
	{"Affiliation of participants", "Affiliation of participants"},
	{"Mental health", "Participants' general state of mental health:"},
	{"Physical health", "Participants' general state of physical health:"},
}

func participantAnchors() []string {
	anchors := []string{
		populationOther, sampleSize, groupJustification, relationshipAnchor, powerAnchor,
		recruitedAnchor, contactAnchor, recruitMethodAnchor, exclusionsAnchor, withdrawalAnchor,
	}
	for _, p := range Populations {
		anchors = append(anchors, p.Anchor)
	}
	for _, f := range demographicFields {
		anchors = append(anchors, f.anchor)
	}
	return anchors
}

// Participants validates Part 4
func Participants(c Context) (model.FindingSet, Context) {
	fs := model.NewFindingSet()

	loc, ok := section(c, MarkerParticipants, participantAnchors()...)
	if !ok {
		fs.NotFound("Part 4: Participants section not found.")
		return fs, c
	}

	selected := 0
	for _, p := range Populations {
		ans := loc.Answer(p.Anchor)
		switch {
		case !ans.Found():
			fs.Errorf("Response to '%s' not found or improperly formatted.", p.Name)
		case !ans.Answered():
			fs.Warnf("Checkbox for '%s' is not marked (%s).", p.Name, extract.GlyphUnmarked)
		case ans.Is(extract.OptionYes):
			selected++
			fs.Infof("Special population '%s' selected: Yes.", p.Name)
			requirePopulationForms(&c, p)
		default:
			fs.Infof("Special population '%s' selected: No.", p.Name)
		}
	}

	if other := line(loc, populationOther); other != "" {
		selected++
		fs.Infof("Other special population specified: %s.", other)
		c.Require(FormWrittenConsent, "Required for research involving other special populations in "+allLanguages+".")
	}

	if n, err := strconv.Atoi(leadingDigits.FindString(line(loc, sampleSize))); err != nil || n <= 0 {
		fs.Errorf("Expected number of participants or sample size is missing or invalid.")
	} else {
		fs.Infof("Sample size: %d.", n)
	}

	for _, f := range demographicFields {
		if value := line(loc, f.anchor); value == "" {
			fs.Errorf("Field '%s' is missing or empty.", f.name)
		} else {
			fs.Infof("Field '%s' filled: %s.", f.name, value)
		}
	}

	switch {
	case loc.NotApplicable(groupJustification).Is(extract.OptionNA):
		if selected > 0 {
			fs.Errorf("Justification for participant group cannot be N/A when special populations are selected.")
		} else {
			fs.Infof("Justification for participant group marked as N/A.")
		}
	case field(loc, groupJustification) != "":
		fs.Infof("Justification for participant group provided.")
	default:
		fs.Errorf("Justification for participant group is missing or empty.")
	}

	if v := field(loc, relationshipAnchor); v == "" {
		fs.Errorf("Relationship to participants is missing or empty.")
	} else {
		fs.Infof("Relationship to participants: %s.", v)
	}
	if v := field(loc, powerAnchor); v == "" {
		fs.Errorf("Power dynamics description is missing or empty.")
	} else {
		fs.Infof("Power dynamics description: %s.", v)
	}

	checkRecruitment(&fs, &c, loc)

	switch {
	case loc.NotApplicable(exclusionsAnchor).Is(extract.OptionNA):
		fs.Infof("Exclusions marked as N/A.")
	case field(loc, exclusionsAnchor) != "":
		fs.Infof("Exclusions description provided.")
	default:
		fs.Errorf("Exclusions description is missing or empty.")
	}

	requireField(&fs, field(loc, withdrawalAnchor), "Withdrawal procedures description")

	return fs, c
}

func requirePopulationForms(c *Context, p Population) {
	if p.Minor {
		c.Require(FormAssent, "Required for research involving minors in "+allLanguages+".")
		c.Require(FormParentalConsent, "Required for research involving minors in "+allLanguages+".")
		return
	}

	c.Require(FormWrittenConsent, "Required for research involving special population '"+p.Name+"' in "+allLanguages+".")
	if p.Sensitive {
		c.Require(FormConfidentiality, "Recommended for research involving sensitive subjects ('"+p.Name+"') to ensure confidentiality.")
	}
}

func checkRecruitment(fs *model.FindingSet, c *Context, loc extract.Locator) {
	ans := loc.Answer(recruitedAnchor)
	switch {
	case !ans.Found():
		fs.Errorf("Recruitment question not found or improperly formatted.")
		return
	case !ans.Answered():
		fs.Warnf("Recruitment checkbox is not marked (%s).", extract.GlyphUnmarked)
		return
	}

	narratives := []struct{ name, anchor string }{
		{"Contact method", contactAnchor},
		{"Recruitment method", recruitMethodAnchor},
	}

	if ans.Is(extract.OptionYes) {
		fs.Infof("Participants will be recruited: Yes.")
		c.Require(FormRecruitment, "Required for participant recruitment.")
		for _, n := range narratives {
			switch {
			case loc.NotApplicable(n.anchor).Is(extract.OptionNA):
				fs.Errorf("%s cannot be N/A when recruitment is Yes.", n.name)
			case field(loc, n.anchor) == "":
				fs.Errorf("%s description is missing or empty.", n.name)
			default:
				fs.Infof("%s description provided.", n.name)
			}
		}
		return
	}

	fs.Infof("Participants will be recruited: No.")
	for _, n := range narratives {
		if field(loc, n.anchor) != "" {
			fs.Errorf("%s should be N/A when recruitment is No.", n.name)
		}
	}
}
