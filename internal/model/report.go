package model

import "fmt"

// Report represents the complete validation report for one application document
type Report struct {
	SubmissionID string                `json:"submission_id"`        // Fresh identifier per invocation
	Timestamp    string                `json:"timestamp"`            // Capture time (TimestampLayout)
	Source       string                `json:"source,omitempty"`     // Document name, when known
	FileNames    []string              `json:"file_names,omitempty"` // Candidate names checked against the naming protocol
	Parts        map[string]FindingSet `json:"parts"`                // Section name -> findings
	Summary      Summary               `json:"summary"`              // Totals across all parts

	RequiredForms []RequiredForm `json:"required_forms"` // Accumulation order, duplicates preserved
}

// TimestampLayout is the human-readable layout used for Report.Timestamp
const TimestampLayout = "2006-01-02 15:04:05"

// Summary holds finding totals across all sections
type Summary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Info     int `json:"info"`
}

// FindingSet holds the ordered findings for one section
type FindingSet struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Info     []string `json:"info"`

	Missing bool `json:"-"` // Section header not found in the document
}

// NewFindingSet returns an empty finding set whose lists encode as [] rather than null
func NewFindingSet() FindingSet {
	return FindingSet{
		Errors:   []string{},
		Warnings: []string{},
		Info:     []string{},
	}
}

// Errorf appends an error finding
func (f *FindingSet) Errorf(format string, args ...any) {
	f.Errors = append(f.Errors, fmt.Sprintf(format, args...))
}

// Warnf appends a warning finding
func (f *FindingSet) Warnf(format string, args ...any) {
	f.Warnings = append(f.Warnings, fmt.Sprintf(format, args...))
}

// Infof appends an informational finding
func (f *FindingSet) Infof(format string, args ...any) {
	f.Info = append(f.Info, fmt.Sprintf(format, args...))
}

// NotFound appends an error finding and marks the section as missing
func (f *FindingSet) NotFound(format string, args ...any) {
	f.Errorf(format, args...)
	f.Missing = true
}

// Len returns the total number of findings
func (f FindingSet) Len() int {
	return len(f.Errors) + len(f.Warnings) + len(f.Info)
}

// RequiredForm is a supplementary document the applicant must attach.
// Identity is the Form string.
type RequiredForm struct {
	Form   string `json:"form"`
	Reason string `json:"reason"`
}

// Section names, in pipeline order. The questionnaire has no Part 9.
const (
	SectionScreening       = "Part 0"
	SectionCoverSheet      = "Part 1"
	SectionResearchTeam    = "Part 2"
	SectionResearchDesign  = "Part 3"
	SectionParticipants    = "Part 4"
	SectionProcedures      = "Part 5"
	SectionDataManagement  = "Part 6"
	SectionRiskBenefit     = "Part 7"
	SectionConfidentiality = "Part 8"
	SectionFunding         = "Part 10"
	SectionNaming          = "Part 11"
)

// SectionOrder lists the report sections in the order they are validated
var SectionOrder = []string{
	SectionScreening,
	SectionCoverSheet,
	SectionResearchTeam,
	SectionResearchDesign,
	SectionParticipants,
	SectionProcedures,
	SectionDataManagement,
	SectionRiskBenefit,
	SectionConfidentiality,
	SectionFunding,
	SectionNaming,
}
