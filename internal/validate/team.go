package validate

import (
	"fmt"
	"strings"

	"github.com/nurgulresearch/irec/internal/extract"
	"github.com/nurgulresearch/irec/internal/model"
)

const (
	headerPI       = "Principal Investigator"
	headerAdvisor  = "Research Advisor:"
	headerAI       = "Additional Investigator"
	headerStudents = "For students:"

	fieldName     = "Name:"
	fieldEmail    = "E-mail address:"
	citiStatus    = "Have you completed the CITI basic course"
	citiDatePI    = "CITI Training completion date:"
	citiDateOther = "CITI or alternative training completion date:"
	fieldCourse   = "Course:"
)

var (
	memberFields   = []string{fieldName, "NU ID:", "NU School:", "Department:", "Position:", fieldEmail}
	piPhoneFields  = []string{"Daytime Phone:", "Mobile phone:"}
	studentOptions = []string{"Undergraduate", "Masters", "PhD", "Other"}
)

func teamAnchors() []string {
	anchors := []string{headerAdvisor, headerAI, headerStudents, citiStatus, citiDatePI, citiDateOther, fieldCourse}
	anchors = append(anchors, memberFields...)
	return append(anchors, piPhoneFields...)
}

// member describes how one team member block is reported
type member struct {
	lead     string   // Prepended to every finding, e.g. "Additional Investigator 2: "
	prefix   string   // Prepended to field names, e.g. "PI "
	fields   []string // Inline fields, in order
	dateName string   // Training date label
	dateText string   // Training date label used in date findings
}

func (m member) errorf(fs *model.FindingSet, format string, args ...any) {
	fs.Errorf(m.lead+format, args...)
}

func (m member) warnf(fs *model.FindingSet, format string, args ...any) {
	fs.Warnf(m.lead+format, args...)
}

func (m member) infof(fs *model.FindingSet, format string, args ...any) {
	fs.Infof(m.lead+format, args...)
}

// ResearchTeam validates Part 2 and exports the PI surname
func ResearchTeam(c Context) (model.FindingSet, Context) {
	fs := model.NewFindingSet()

	loc, ok := section(c, MarkerResearchTeam, teamAnchors()...)
	if !ok {
		fs.NotFound("Part 2: Research Team Details section not found.")
		return fs, c
	}

	pi := member{
		prefix:   "PI ",
		fields:   append(append([]string{}, memberFields...), piPhoneFields...),
		dateName: citiDatePI,
		dateText: "PI CITI Training completion date",
	}
	piBlock := loc.Block(headerPI, headerAdvisor)
	checkMember(&fs, c, piBlock, pi)
	if name := line(piBlock, fieldName); name != "" {
		parts := strings.Fields(name)
		c.PISurname = parts[len(parts)-1]
	}

	advisor := member{
		prefix:   "RA ",
		fields:   memberFields,
		dateName: citiDateOther,
		dateText: "RA CITI training date",
	}
	checkMember(&fs, c, loc.Block(headerAdvisor, headerAI), advisor)

	count := 0
	for _, block := range loc.Blocks(headerAI, headerStudents) {
		if line(block, fieldName) == "" {
			continue
		}
		count++
		checkMember(&fs, c, block, member{
			lead:     fmt.Sprintf("Additional Investigator %d: ", count),
			prefix:   "AI ",
			fields:   memberFields,
			dateName: citiDateOther,
			dateText: "CITI training date",
		})
	}
	if count == 0 {
		fs.Infof("No Additional Investigators specified.")
	} else {
		fs.Infof("Additional Investigators specified: %d.", count)
	}

	checkStudents(&fs, loc.Block(headerStudents, ""))

	return fs, c
}

func checkMember(fs *model.FindingSet, c Context, block extract.Locator, m member) {
	for _, name := range m.fields {
		value := line(block, name)
		label := m.prefix + name
		if value == "" {
			m.errorf(fs, "Field '%s' is missing or empty.", label)
			continue
		}
		m.infof(fs, "Field '%s' filled: %s", label, value)
		if name == fieldEmail && !extract.ValidEmail(value) {
			m.errorf(fs, "%sE-mail address is not a valid e-mail address: %s.", m.prefix, value)
		}
	}

	checkTrainingDate(fs, c, block, m)

	role := strings.TrimSpace(m.prefix)
	status := block.Answer(citiStatus)
	switch {
	case !status.Found():
		m.errorf(fs, "%s CITI training completion status not found.", role)
	case status.Is(extract.OptionNo):
		m.errorf(fs, "%s CITI training completion status is 'No'.", role)
	case status.Is(extract.OptionYes):
		m.infof(fs, "%s CITI training completion status is 'Yes'.", role)
	default:
		m.warnf(fs, "%s CITI training completion status checkbox is not marked (%s).", role, extract.GlyphUnmarked)
	}
}

func checkTrainingDate(fs *model.FindingSet, c Context, block extract.Locator, m member) {
	label := m.prefix + m.dateName
	value := line(block, m.dateName)
	if value == "" {
		m.errorf(fs, "Field '%s' is missing or empty.", label)
		return
	}
	m.infof(fs, "Field '%s' filled: %s", label, value)

	completed, err := extract.ParseDate(value)
	if err != nil {
		m.errorf(fs, "%s is not in valid format (MM/DD/YYYY).", m.dateText)
		return
	}

	years := c.Rules.TrainingValidityYears
	if !extract.TrainingCurrent(completed, c.Now, years) {
		m.errorf(fs, "%s is older than %d years.", m.dateText, years)
		return
	}
	m.infof(fs, "%s is valid.", m.dateText)
}

func checkStudents(fs *model.FindingSet, block extract.Locator) {
	if !block.Found() {
		fs.Errorf("For students section not found or improperly formatted.")
		return
	}

	var selected []string
	found := 0
	for _, opt := range studentOptions {
		checked, ok := block.Checkbox(opt)
		if !ok {
			continue
		}
		found++
		if checked {
			selected = append(selected, opt)
		}
	}

	switch {
	case found == 0:
		fs.Errorf("For students section not found or improperly formatted.")
	case len(selected) != 1:
		fs.Errorf("Exactly one student category must be selected. Found %d.", len(selected))
	default:
		fs.Infof("Student category selected: %s.", selected[0])
	}

	if course := line(block, fieldCourse); course == "" {
		fs.Errorf("Course field in For students section is missing or empty.")
	} else {
		fs.Infof("Course field filled: %s.", course)
	}
}
