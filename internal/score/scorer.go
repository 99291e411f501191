package score

import (
	"slices"

	"github.com/nurgulresearch/irec/internal/model"
)

// Status is the outcome of one section
type Status string

const (
	StatusPass    Status = "pass"    // No errors or warnings
	StatusWarn    Status = "warn"    // Warnings only
	StatusFail    Status = "fail"    // At least one error
	StatusMissing Status = "missing" // Section header not found
)

// rank orders statuses from best to worst
var rank = map[Status]int{
	StatusPass:    0,
	StatusWarn:    1,
	StatusFail:    2,
	StatusMissing: 3,
}

// SectionScore is the status and finding counts of one section
type SectionScore struct {
	Name     string `json:"name"`
	Status   Status `json:"status"`
	Errors   int    `json:"errors"`
	Warnings int    `json:"warnings"`
	Info     int    `json:"info"`
}

// Scorer derives summary counts and section statuses from findings
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Summarize totals the findings of every section
func (s *Scorer) Summarize(parts map[string]model.FindingSet) model.Summary {
	var sum model.Summary
	for _, fs := range parts {
		sum.Errors += len(fs.Errors)
		sum.Warnings += len(fs.Warnings)
		sum.Info += len(fs.Info)
	}
	return sum
}

// Status classifies one section's findings
func (s *Scorer) Status(fs model.FindingSet) Status {
	switch {
	case fs.Missing:
		return StatusMissing
	case len(fs.Errors) > 0:
		return StatusFail
	case len(fs.Warnings) > 0:
		return StatusWarn
	default:
		return StatusPass
	}
}

// Sections scores every section present in parts, in questionnaire order.
// Sections outside the questionnaire order follow, sorted by name.
func (s *Scorer) Sections(parts map[string]model.FindingSet) []SectionScore {
	names := make([]string, 0, len(parts))
	for _, name := range model.SectionOrder {
		if _, ok := parts[name]; ok {
			names = append(names, name)
		}
	}

	var extra []string
	for name := range parts {
		if !slices.Contains(model.SectionOrder, name) {
			extra = append(extra, name)
		}
	}
	slices.Sort(extra)
	names = append(names, extra...)

	scores := make([]SectionScore, 0, len(names))
	for _, name := range names {
		fs := parts[name]
		scores = append(scores, SectionScore{
			Name:     name,
			Status:   s.Status(fs),
			Errors:   len(fs.Errors),
			Warnings: len(fs.Warnings),
			Info:     len(fs.Info),
		})
	}
	return scores
}

// Overall returns the worst status across sections. No sections is a pass.
func (s *Scorer) Overall(sections []SectionScore) Status {
	worst := StatusPass
	for _, sec := range sections {
		if rank[sec.Status] > rank[worst] {
			worst = sec.Status
		}
	}
	return worst
}
