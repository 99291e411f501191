package validate

import (
	"net/url"
	"strings"

	"github.com/nurgulresearch/irec/internal/extract"
	"github.com/nurgulresearch/irec/internal/model"
)

const (
	surveyGate       = "Are you conducting a survey using any electronic media?"
	namePrivacy      = "Will you assure that the participant will only see his/her name?"
	readReceipt      = `Will you have the "read receipt" function turned off?`
	emailExplain     = `If you answered "No" to these questions, please explain`
	surveyPreamble   = "If your survey contains questions"
	dropdownQuestion = `Do they have the option to choose "No response" or to leave the question blank?`
	transmission     = "How will data be transmitted?"
	surveyURL        = "What is the URL?"
	storageAnchor    = "Where will data be stored?"
	maintenance      = "How will data be maintained?"
	sharingAnchor    = "Will data be shared?"
	sharingDetails   = "How? With whom? Will subjects be re-identifiable? Why or why not?"
	securityPlan     = "Describe the data security plan"

	optionNoDropdown extract.Option = "No dropdown menu"
)

var dropdownOptions = []extract.Option{optionNoDropdown, extract.OptionYes, extract.OptionNo}

// DataManagement validates Part 6 and exports the storage, maintenance and
// sharing text
func DataManagement(c Context) (model.FindingSet, Context) {
	fs := model.NewFindingSet()

	loc, ok := section(c, MarkerDataManagement,
		surveyGate, namePrivacy, readReceipt, emailExplain, surveyPreamble, dropdownQuestion,
		transmission, surveyURL, storageAnchor, maintenance, sharingAnchor, sharingDetails, securityPlan)
	if !ok {
		fs.NotFound("Part 6: Data Management Plan section not found.")
		return fs, c
	}

	gate := loc.Answer(surveyGate)
	switch {
	case !gate.Found():
		fs.Errorf("Electronic survey question not found or improperly formatted.")
		return fs, c
	case !gate.Answered():
		fs.Warnf("Electronic survey checkbox is not marked (%s).", extract.GlyphUnmarked)
		return fs, c
	}

	fs.Infof("Conducting electronic survey: %s.", gate)
	if gate.Is(extract.OptionYes) {
		c.Require(FormInternetConsent, "Required for internet-based surveys in "+allLanguages+".")
		checkElectronicSurvey(&fs, loc, c.Rules)
	} else {
		checkNoElectronicSurvey(&fs, loc)
	}

	if storage := field(loc, storageAnchor); storage == "" {
		fs.Errorf("Data storage description is missing or empty.")
	} else {
		c.StorageText = strings.ToLower(storage)
		fs.Infof("Data storage: %s.", storage)
	}

	if maint := field(loc, maintenance); maint == "" {
		fs.Errorf("Data maintenance description is missing or empty.")
	} else {
		c.MaintenanceText = strings.ToLower(maint)
		fs.Infof("Data maintenance: %s.", maint)
		if strings.Contains(c.MaintenanceText, "identifiable") {
			c.Require(FormConfidentiality, "Recommended for research involving individually identifiable data.")
		}
	}

	sharing := ask(&fs, loc, sharingAnchor, "Data sharing")
	if sharing.Answered() {
		details := field(loc, sharingDetails)
		if details == "" {
			fs.Errorf("Data sharing details (how, with whom, re-identifiable, why) are missing or empty.")
		} else {
			c.SharingText = strings.ToLower(details)
			fs.Infof("Data sharing details: %s.", details)
			if sharing.Is(extract.OptionYes) && strings.Contains(c.SharingText, "identifiable") {
				c.Require(FormConfidentiality, "Required for sharing identifiable data to ensure confidentiality.")
			}
		}
	}

	if plan := field(loc, securityPlan); plan == "" {
		fs.Errorf("Data security plan description is missing or empty.")
	} else {
		fs.Infof("Data security plan: %s.", plan)
	}

	return fs, c
}

func checkElectronicSurvey(fs *model.FindingSet, loc extract.Locator, rules model.RulesConfig) {
	privacy := ask(fs, loc, namePrivacy, "Name privacy")
	receipt := ask(fs, loc, readReceipt, "Read receipt")

	explanation := field(loc, emailExplain)
	switch {
	case privacy.Is(extract.OptionNo) || receipt.Is(extract.OptionNo):
		if explanation == "" {
			fs.Errorf("Explanation for 'No' in email invitation questions is missing or empty.")
		} else {
			fs.Infof("Explanation for 'No' in email invitation provided.")
		}
	case explanation != "":
		fs.Warnf("Email explanation provided when not required (both email questions are Yes or unanswered).")
	}

	ask(fs, loc, dropdownQuestion, "Dropdown menu", dropdownOptions...)

	requireField(fs, field(loc, transmission), "Data transmission description")

	link := line(loc, surveyURL)
	if link == "" {
		fs.Errorf("URL is missing or empty for electronic survey.")
		return
	}
	fs.Infof("Survey URL: %s.", link)
	u, err := url.Parse(link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		fs.Warnf("Survey URL does not look like an http(s) address: %s.", link)
		return
	}

	switch tier := NewPlatformClassifier(rules).Classify(u); tier {
	case PlatformUnknown:
		fs.Warnf("Survey host '%s' is not an institutional or approved survey platform; describe how responses are protected.", u.Hostname())
	default:
		fs.Infof("Survey host '%s': %s.", u.Hostname(), tier)
	}
}

func checkNoElectronicSurvey(fs *model.FindingSet, loc extract.Locator) {
	if loc.Answer(namePrivacy).Answered() {
		fs.Errorf("Name privacy question should be unanswered (%s) when electronic survey is No.", extract.GlyphUnmarked)
	}
	if loc.Answer(readReceipt).Answered() {
		fs.Errorf("Read receipt question should be unanswered (%s) when electronic survey is No.", extract.GlyphUnmarked)
	}
	if field(loc, emailExplain) != "" {
		fs.Errorf("Email explanation should be empty when electronic survey is No.")
	}
	if loc.Answer(dropdownQuestion, dropdownOptions...).Answered() {
		fs.Errorf("Dropdown menu question should be unanswered (%s) when electronic survey is No.", extract.GlyphUnmarked)
	}
	if field(loc, transmission) != "" {
		fs.Errorf("Data transmission description should be empty when electronic survey is No.")
	}
	if line(loc, surveyURL) != "" {
		fs.Errorf("URL should be empty when electronic survey is No.")
	}
}
