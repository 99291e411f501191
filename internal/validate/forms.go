package validate

import (
	"strings"

	"github.com/nurgulresearch/irec/internal/model"
)

// Supplementary forms an application may need to attach
const (
	FormApplication       = "Appendix A: IREC Application Form"
	FormTraining          = "CITI Training Certificates"
	FormWrittenConsent    = "Appendix B: Written Informed Consent Form"
	FormInternetConsent   = "Appendix C: Informed Consent Form for Internet Surveys"
	FormOralConsent       = "Appendix D: Oral Consent Script"
	FormAssent            = "Appendix E: Assent Form"
	FormParentalConsent   = "Parental Consent Forms"
	FormFundingSource     = "Appendix K: Funding Source Form"
	FormConfidentiality   = "Appendix L: Confidentiality Agreement Form"
	FormGeneticConsent    = "Appendix M: Written Informed Consent Form For Genetic and/or Biobank Research"
	FormInterviewGuides   = "Interview Questions/Focus Group Guides"
	FormRecruitment       = "Recruitment Materials (e.g., emails, flyers)"
	FormSurveys           = "Surveys/Questionnaires"
	FormLettersOfSupport  = "Letters of Support/Approval from Outside Organizations"
	FormVisualStimuli     = "Visual Stimuli"
	FormDebriefing        = "Debriefing Documents"
	officialLanguageLabel = "Official language(s) of the country"
)

// formKey normalises a form or checklist label for comparison
func formKey(label string) string {
	return strings.ToLower(strings.Join(strings.Fields(label), " "))
}

// DistinctForms returns the forms with one entry per form name, keeping the
// first occurrence and its reason.
func DistinctForms(forms []model.RequiredForm) []model.RequiredForm {
	seen := make(map[string]bool, len(forms))
	out := make([]model.RequiredForm, 0, len(forms))
	for _, f := range forms {
		key := formKey(f.Form)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, f)
	}
	return out
}
