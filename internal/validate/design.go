package validate

import (
	"strings"

	"github.com/nurgulresearch/irec/internal/extract"
	"github.com/nurgulresearch/irec/internal/model"
)

const (
	designPurpose     = "What is the purpose of the research?"
	designQuestions   = "What question(s) do you hope to answer?"
	designMethodology = "Describe the data collection methodology"
	designAnalysis    = "Briefly describe the data analysis processes"
	designSites       = "Briefly describe the research sites"
)

var (
	qualitativeTerms  = []string{"interview", "focus group", "observation", "action research"}
	quantitativeTerms = []string{"survey", "clinical trial", "existing data set", "human genetics"}
	internetTerms     = []string{"internet survey", "online survey"}
	geneticTerms      = []string{"genetic", "biobank"}
	collaboratorTerms = []string{"collaborator", "external organization"}
)

// designField is a Part 3 narrative and its word bounds
type designField struct {
	name   string
	anchor string
	words  *model.WordRange
}

// ResearchDesign validates Part 3, seeds the required forms and exports the
// methodology and research-site text
func ResearchDesign(c Context) (model.FindingSet, Context) {
	fs := model.NewFindingSet()

	c.Require(FormApplication, "Required for all initial NU IREC submissions.")
	c.Require(FormTraining, "Required for all research team members.")

	loc, ok := section(c, MarkerResearchDesign,
		designPurpose, designQuestions, designMethodology, designAnalysis, designSites)
	if !ok {
		fs.NotFound("Part 3: Research Design section not found.")
		return fs, c
	}

	rules := c.Rules
	fields := []designField{
		{name: "Purpose of the research", anchor: designPurpose, words: &rules.PurposeWords},
		{name: "Research question(s)", anchor: designQuestions},
		{name: "Data collection methodology", anchor: designMethodology, words: &rules.MethodologyWords},
		{name: "Data analysis processes", anchor: designAnalysis, words: &rules.AnalysisWords},
		{name: "Research sites", anchor: designSites},
	}

	for _, f := range fields {
		value := field(loc, f.anchor)
		if value == "" {
			fs.Errorf("Field '%s' is missing or empty.", f.name)
			continue
		}
		fs.Infof("Field '%s' filled.", f.name)

		if f.words == nil {
			continue
		}
		n := extract.CountWords(value)
		if f.words.Contains(n) {
			fs.Infof("Field '%s' word count is valid: %d words.", f.name, n)
		} else {
			fs.Warnf("Field '%s' has %d words, expected %d–%d words.", f.name, n, f.words.Min, f.words.Max)
		}
	}

	c.MethodologyText = strings.ToLower(field(loc, designMethodology))
	c.SitesText = strings.ToLower(field(loc, designSites))
	if c.MethodologyText != "" {
		requireDesignForms(&c)
	}

	if loc.Contains("attach", "appendix") {
		fs.Infof("References to attachments detected in Part 3.")
	} else {
		fs.Warnf("No references to attachments detected in Part 3.")
	}

	return fs, c
}

// ConsentLanguages returns the languages consent forms must be provided in,
// derived from the research-site text
func ConsentLanguages(sites, home string) []string {
	langs := []string{"English"}
	switch {
	case strings.Contains(sites, "kazakhstan"):
		langs = append(langs, "Russian", "Kazakh")
	case sites != "" && !strings.Contains(sites, home):
		langs = append(langs, officialLanguageLabel)
	}
	return langs
}

// requireDesignForms runs the methodology keyword cascade
func requireDesignForms(c *Context) {
	method := c.MethodologyText
	langs := strings.Join(ConsentLanguages(c.SitesText, c.Rules.HomeInstitution), ", ")

	mixed := strings.Contains(method, "mixed method")
	kind := ""
	if mixed {
		kind = "mixed methods "
	}

	if mixed || containsAny(method, qualitativeTerms) {
		c.Require(FormWrittenConsent, "Required for "+kindOr(kind, "qualitative ")+"research in "+langs+".")
		c.Require(FormOralConsent, "Required if oral consent is used for "+kindOr(kind, "qualitative ")+"research in "+langs+".")
		c.Require(FormInterviewGuides, "Required for qualitative data collection methods in "+langs+".")
		c.Require(FormRecruitment, "Required for participant notification in "+kindOr(kind, "qualitative ")+"research in "+langs+".")
	}

	if mixed || containsAny(method, quantitativeTerms) {
		if containsAny(method, internetTerms) {
			c.Require(FormInternetConsent, "Required for internet-based surveys in "+langs+".")
		} else {
			c.Require(FormWrittenConsent, "Required for "+kindOr(kind, "quantitative ")+"research in "+langs+".")
		}
		c.Require(FormSurveys, "Required for quantitative data collection methods.")
	}

	if containsAny(method, geneticTerms) {
		c.Require(FormGeneticConsent, "Required for genetic/biobank research in "+langs+".")
	}
	if containsAny(method, collaboratorTerms) {
		c.Require(FormConfidentiality, "Required for external collaborators in "+langs+".")
	}
	if c.SitesText != "" && !strings.Contains(c.SitesText, c.Rules.HomeInstitution) {
		c.Require(FormLettersOfSupport, "Required for research conducted at external sites.")
	}
	if strings.Contains(method, "visual stimuli") {
		c.Require(FormVisualStimuli, "Required if visual stimuli are presented to participants.")
	}
}

func kindOr(kind, fallback string) string {
	if kind != "" {
		return kind
	}
	return fallback
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}
