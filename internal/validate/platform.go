package validate

import (
	"net/url"
	"strings"

	"github.com/nurgulresearch/irec/internal/model"
)

// PlatformTier ranks the host of an electronic survey
type PlatformTier int

const (
	PlatformUnknown       PlatformTier = iota // Host not on any list
	PlatformApproved                          // Third-party platform the office accepts
	PlatformInstitutional                     // Hosted by the home institution
)

func (t PlatformTier) String() string {
	switch t {
	case PlatformInstitutional:
		return "institutional"
	case PlatformApproved:
		return "approved platform"
	default:
		return "unknown"
	}
}

// PlatformClassifier classifies survey URLs by host
type PlatformClassifier struct {
	institutional map[string]bool
	approved      map[string]bool
}

// NewPlatformClassifier builds a classifier from the configured host lists
func NewPlatformClassifier(rules model.RulesConfig) *PlatformClassifier {
	p := &PlatformClassifier{
		institutional: make(map[string]bool, len(rules.InstitutionDomains)),
		approved:      make(map[string]bool, len(rules.SurveyPlatforms)),
	}
	for _, d := range rules.InstitutionDomains {
		p.institutional[normalizeHost(d)] = true
	}
	for _, d := range rules.SurveyPlatforms {
		p.approved[normalizeHost(d)] = true
	}
	return p
}

// Classify returns the tier of u's host. Subdomains inherit the tier of a
// listed domain, so surveys.nu.edu.kz is institutional.
func (p *PlatformClassifier) Classify(u *url.URL) PlatformTier {
	host := normalizeHost(u.Hostname())
	if host == "" {
		return PlatformUnknown
	}

	if matchDomain(p.institutional, host) {
		return PlatformInstitutional
	}
	if matchDomain(p.approved, host) {
		return PlatformApproved
	}
	return PlatformUnknown
}

// matchDomain reports whether host or one of its parent domains is listed
func matchDomain(domains map[string]bool, host string) bool {
	for {
		if domains[host] {
			return true
		}
		dot := strings.IndexByte(host, '.')
		if dot < 0 {
			return false
		}
		host = host[dot+1:]
	}
}

func normalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	host = strings.TrimSuffix(host, ".")
	return strings.TrimPrefix(host, "www.")
}
