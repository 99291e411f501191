package validate

import (
	"slices"
	"time"

	"github.com/nurgulresearch/irec/internal/model"
)

// Context is threaded by value through the section stages. Each stage reads
// the facts exported by earlier stages and returns an updated copy.
type Context struct {
	Paragraphs []string
	FileNames  []string
	Now        time.Time
	Rules      model.RulesConfig

	// Facts exported by earlier sections
	ExemptionClaimed bool
	PISurname        string
	MethodologyText  string // lower-cased
	SitesText        string // lower-cased
	InvolvementText  string // lower-cased
	MaintenanceText  string // lower-cased
	SharingText      string // lower-cased
	StorageText      string // lower-cased

	// Forms accumulates required forms in trigger order, duplicates included
	Forms []model.RequiredForm
}

// NewContext creates a fresh context for one validation run
func NewContext(paragraphs, fileNames []string, now time.Time, rules model.RulesConfig) Context {
	return Context{
		Paragraphs: paragraphs,
		FileNames:  fileNames,
		Now:        now,
		Rules:      rules,
		Forms:      []model.RequiredForm{},
	}
}

// Require appends a required form. The forms slice is clipped first so a
// stage never writes into the backing array of the context it was given.
func (c *Context) Require(form, reason string) {
	c.Forms = append(slices.Clip(c.Forms), model.RequiredForm{Form: form, Reason: reason})
}

// Stage validates one questionnaire section
type Stage struct {
	Name string // Report key, e.g. "Part 3"
	Run  func(Context) (model.FindingSet, Context)
}

// Stages returns the section stages in the order they must run
func Stages() []Stage {
	return []Stage{
		{Name: model.SectionScreening, Run: Screening},
		{Name: model.SectionCoverSheet, Run: CoverSheet},
		{Name: model.SectionResearchTeam, Run: ResearchTeam},
		{Name: model.SectionResearchDesign, Run: ResearchDesign},
		{Name: model.SectionParticipants, Run: Participants},
		{Name: model.SectionProcedures, Run: Procedures},
		{Name: model.SectionDataManagement, Run: DataManagement},
		{Name: model.SectionRiskBenefit, Run: RiskBenefit},
		{Name: model.SectionConfidentiality, Run: Confidentiality},
		{Name: model.SectionFunding, Run: Funding},
		{Name: model.SectionNaming, Run: NamingAndChecklist},
	}
}
