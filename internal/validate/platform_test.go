package validate

import (
	"net/url"
	"testing"

	"github.com/nurgulresearch/irec/internal/model"
)

func TestPlatformClassifier_Classify(t *testing.T) {
	classifier := NewPlatformClassifier(model.DefaultRules())

	tests := []struct {
		url  string
		want PlatformTier
	}{
		{"https://nu.edu.kz/survey/1", PlatformInstitutional},
		{"https://surveys.nu.edu.kz/s/abc", PlatformInstitutional},
		{"https://NU.EDU.KZ./x", PlatformInstitutional},
		{"https://nu.qualtrics.com/jfe/form/SV_1", PlatformApproved},
		{"https://www.surveymonkey.com/r/ABC", PlatformApproved},
		{"https://docs.google.com/forms/d/e/1/viewform", PlatformApproved},
		{"https://forms.gle/abc", PlatformApproved},
		{"http://forms.office.com:443/r/x", PlatformApproved},
		{"https://my-survey.kz/stress", PlatformUnknown},
		{"https://notqualtrics.com/x", PlatformUnknown},
		{"https://edu.kz/x", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			u, err := url.Parse(tt.url)
			if err != nil {
				t.Fatalf("parse %s: %v", tt.url, err)
			}
			if got := classifier.Classify(u); got != tt.want {
				t.Errorf("Classify(%s) = %s, want %s", tt.url, got, tt.want)
			}
		})
	}
}

func TestPlatformClassifier_CustomLists(t *testing.T) {
	rules := model.DefaultRules()
	rules.InstitutionDomains = []string{"www.example.edu"}
	rules.SurveyPlatforms = nil

	classifier := NewPlatformClassifier(rules)

	u, _ := url.Parse("https://polls.example.edu/1")
	if got := classifier.Classify(u); got != PlatformInstitutional {
		t.Errorf("expected institutional, got %s", got)
	}

	u, _ = url.Parse("https://qualtrics.com/1")
	if got := classifier.Classify(u); got != PlatformUnknown {
		t.Errorf("expected unknown with no approved platforms, got %s", got)
	}

	if got := classifier.Classify(&url.URL{}); got != PlatformUnknown {
		t.Errorf("expected unknown for empty host, got %s", got)
	}
}

func TestPlatformTier_String(t *testing.T) {
	for tier, want := range map[PlatformTier]string{
		PlatformUnknown:       "unknown",
		PlatformApproved:      "approved platform",
		PlatformInstitutional: "institutional",
	} {
		if got := tier.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", tier, got, want)
		}
	}
}
