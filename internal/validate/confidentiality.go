package validate

import (
	"strings"

	"github.com/nurgulresearch/irec/internal/extract"
	"github.com/nurgulresearch/irec/internal/model"
)

const (
	recordingsAnchor     = "Will you be video recording"
	recordingConsent     = "Will you be obtaining signed consent forms"
	identifiableAnchor   = "Will the data be identifiable"
	identifiableExplain  = `If "Yes", please explain`
	anonymityAnchor      = "Describe procedures to create/preserve anonymity"
	confidentialityIntro = "Describe procedures to preserve confidentiality"
)

// RecordingTerms in the methodology or involvement text mean the study records participants
var RecordingTerms = []string{"video", "audio", "photograph", "recording", "interview via video"}

var confidentialityPhases = []string{
	"During data collection",
	"While results are analyzed",
	"In publication/reporting",
	"In storage after research completion",
}

func confidentialityAnchors() []string {
	anchors := []string{
		recordingsAnchor, recordingConsent, identifiableAnchor, identifiableExplain,
		anonymityAnchor, confidentialityIntro,
	}
	return append(anchors, confidentialityPhases...)
}

// Confidentiality validates Part 8 and cross-checks it against the text
// carried from Parts 3, 5 and 6
func Confidentiality(c Context) (model.FindingSet, Context) {
	fs := model.NewFindingSet()

	loc, ok := section(c, MarkerConfidentiality, confidentialityAnchors()...)
	if !ok {
		fs.NotFound("Part 8: Confidentiality/Anonymity section not found.")
		return fs, c
	}

	recordings := ask(&fs, loc, recordingsAnchor, "Video/Photograph/Audio Recordings")
	if recordings.Answered() {
		if recordings.Is(extract.OptionYes) {
			c.Require(FormWrittenConsent, "Required for recordings.")
		}
		mentioned := containsAny(c.MethodologyText, RecordingTerms) || containsAny(c.InvolvementText, RecordingTerms)
		switch {
		case mentioned && !recordings.Is(extract.OptionYes):
			fs.Errorf("Part 8.1 should be 'Yes' as Parts 3 or 5 mention video/audio/photograph.")
		case !mentioned && recordings.Is(extract.OptionYes):
			fs.Warnf("Part 8.1 is 'Yes' but no video/audio/photograph mentioned in Parts 3 or 5.")
		}
	}

	consent := ask(&fs, loc, recordingConsent, "Consent for recordings")
	if consent.Answered() && recordings.Answered() {
		switch {
		case recordings.Is(extract.OptionYes) && !consent.Is(extract.OptionYes):
			fs.Errorf("Consent for recordings must be 'Yes' when recordings is 'Yes'.")
		case recordings.Is(extract.OptionNo) && consent.Is(extract.OptionYes):
			fs.Errorf("Consent for recordings should be 'No' or unanswered when recordings is 'No'.")
		}
	}

	identifiable := ask(&fs, loc, identifiableAnchor, "Identifiability")
	carried := c.MaintenanceText + "\n" + c.SharingText + "\n" + c.StorageText
	sixMentions := strings.Contains(carried, "identifiable")

	switch {
	case identifiable.Is(extract.OptionYes):
		c.Require(FormConfidentiality, "Required for identifiable data.")

		explanation := field(loc.Block(identifiableAnchor, anonymityAnchor), identifiableExplain)
		if explanation == "" {
			fs.Errorf("Identifiability explanation is missing or empty when identifiability is Yes.")
		} else {
			fs.Infof("Identifiability explanation provided.")
		}

		if sixMentions {
			fs.Infof("Identifiability in Part 8 is consistent with Part 6.")
		} else {
			fs.Warnf("Part 8.3 is 'Yes' but Part 6 does not mention identifiable data.")
		}

		if field(loc, anonymityAnchor) != "" {
			fs.Errorf("Anonymity procedures should be empty when identifiability is Yes.")
		}

		for _, phase := range confidentialityPhases {
			if field(loc, phase) == "" {
				fs.Errorf("Confidentiality procedures for '%s' are missing or empty.", phase)
			} else {
				fs.Infof("Confidentiality procedures for '%s' provided.", phase)
			}
		}

	case identifiable.Is(extract.OptionNo):
		if sixMentions {
			fs.Errorf("Part 8.3 should be 'Yes' as Part 6 mentions identifiable data.")
		}

		switch {
		case loc.NotApplicable(anonymityAnchor).Is(extract.OptionNA):
			fs.Errorf("Anonymity procedures cannot be N/A when identifiability is No.")
		case field(loc, anonymityAnchor) == "":
			fs.Errorf("Anonymity procedures description is missing or empty when identifiability is No.")
		default:
			fs.Infof("Anonymity procedures description provided.")
		}

		for _, phase := range confidentialityPhases {
			if field(loc, phase) != "" {
				fs.Warnf("Confidentiality procedures for '%s' should be empty when identifiability is No.", phase)
			}
		}
	}

	return fs, c
}
