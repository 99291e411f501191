package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoverSheet_ReviewType(t *testing.T) {
	tests := []struct {
		name      string
		expedited string
		fullBoard string
		exemption string
		wantError string
	}{
		{
			name:      "expedited only",
			expedited: yes, fullBoard: no, exemption: no,
		},
		{
			name:      "two selected",
			expedited: yes, fullBoard: yes, exemption: no,
			wantError: "Exactly one review type must be selected. Found 2.",
		},
		{
			name:      "none selected",
			expedited: no, fullBoard: no, exemption: no,
			wantError: "Exactly one review type must be selected. Found 0.",
		},
		{
			name:      "full board only",
			expedited: no, fullBoard: yes, exemption: no,
			wantError: "School-level review requires 'An Expedited Review'. Selected: A Full Board Review.",
		},
		{
			name:      "exemption without Part 0 claim",
			expedited: no, fullBoard: no, exemption: yes,
			wantError: "Exemption selected in Part 1, but Part 0 does not claim exemption.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paragraphs := loadFixture(t)
			paragraphs = edit(t, paragraphs, reviewExpedited, reviewExpedited+" "+tt.expedited)
			paragraphs = edit(t, paragraphs, reviewFullBoard, reviewFullBoard+" "+tt.fullBoard)
			paragraphs = edit(t, paragraphs, reviewExemption, reviewExemption+" "+tt.exemption)

			fs, _ := CoverSheet(newTestContext(paragraphs, nil))

			if tt.wantError == "" {
				assert.Empty(t, fs.Errors)
				return
			}
			assert.Contains(t, fs.Errors, tt.wantError)
		})
	}
}

func TestCoverSheet_SingleCheckboxReviewTypes(t *testing.T) {
	paragraphs := loadFixture(t)
	paragraphs = edit(t, paragraphs, reviewExpedited, "☑ "+reviewExpedited)
	paragraphs = edit(t, paragraphs, reviewFullBoard, "☐ "+reviewFullBoard)
	paragraphs = edit(t, paragraphs, reviewExemption, "☐ "+reviewExemption)

	fs, _ := CoverSheet(newTestContext(paragraphs, nil))
	assert.Empty(t, fs.Errors)
	assert.Contains(t, fs.Info, "Response to 'An Expedited Review': ☑")
}

func TestCoverSheet_ApplicationDate(t *testing.T) {
	paragraphs := edit(t, loadFixture(t), applicationDate, "Application Date: 2026-02-20")

	fs, _ := CoverSheet(newTestContext(paragraphs, nil))
	assert.Contains(t, fs.Errors, "Application Date is not in valid format (MM/DD/YYYY).")

	paragraphs = edit(t, loadFixture(t), "Application Title:", "")
	fs, _ = CoverSheet(newTestContext(paragraphs, nil))
	assert.Contains(t, fs.Errors, "Field 'Application Title:' is missing or empty.")
}

func TestCoverSheet_EmptyInlineField(t *testing.T) {
	for _, field := range []string{"Application Title:", "Primary Research Discipline:"} {
		t.Run(field, func(t *testing.T) {
			paragraphs := edit(t, loadFixture(t), field, field)

			fs, _ := CoverSheet(newTestContext(paragraphs, nil))
			assert.Contains(t, fs.Errors, "Field '"+field+"' is missing or empty.")
			for _, info := range fs.Info {
				assert.NotContains(t, info, "filled: This application is for:")
				assert.NotContains(t, info, "filled: Application Title:")
			}
		})
	}
}

func TestResearchTeam_TrainingDateBoundary(t *testing.T) {
	tests := []struct {
		date  string
		valid bool
	}{
		{"03/10/2023", true}, // exactly three years before the run date
		{"03/09/2023", false},
		{"03/11/2023", true},
		{"12/31/2022", false},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			paragraphs := edit(t, loadFixture(t), citiDatePI, citiDatePI+" "+tt.date)

			fs, _ := ResearchTeam(newTestContext(paragraphs, nil))

			expired := hasFinding(fs.Errors, "PI CITI Training completion date is older than 3 years.")
			if expired == tt.valid {
				t.Errorf("Date %s: valid=%v, errors %v", tt.date, tt.valid, fs.Errors)
			}
		})
	}
}

func TestResearchTeam_Members(t *testing.T) {
	fs, c := ResearchTeam(newTestContext(loadFixture(t), nil))

	assert.Empty(t, fs.Errors)
	assert.Equal(t, "Smith", c.PISurname)
	assert.Contains(t, fs.Info, "Additional Investigators specified: 1.")
	assert.Contains(t, fs.Info, "Additional Investigator 1: AI CITI training completion status is 'Yes'.")
	assert.Contains(t, fs.Info, "Student category selected: Masters.")
}

func TestResearchTeam_InvalidFields(t *testing.T) {
	paragraphs := loadFixture(t)
	paragraphs = edit(t, paragraphs, "E-mail address: d.nurlanov", "E-mail address: d.nurlanov at nu")
	paragraphs = edit(t, paragraphs, "Undergraduate", "Undergraduate ☑ Masters ☑ PhD ☐ Other ☐")
	paragraphs = edit(t, paragraphs, "NU ID: 201912345", "NU ID:")

	fs, _ := ResearchTeam(newTestContext(paragraphs, nil))

	assert.Contains(t, fs.Errors, "RA E-mail address is not a valid e-mail address: d.nurlanov at nu.")
	assert.Contains(t, fs.Errors, "Exactly one student category must be selected. Found 2.")
	assert.Contains(t, fs.Errors, "Field 'PI NU ID:' is missing or empty.")
}

func TestResearchTeam_BlankAdditionalInvestigator(t *testing.T) {
	paragraphs := loadFixture(t)
	paragraphs = edit(t, paragraphs, "Name: Madina Ospanova", "Name:")

	fs, _ := ResearchTeam(newTestContext(paragraphs, nil))
	assert.Contains(t, fs.Info, "No Additional Investigators specified.")
	assert.False(t, hasFindingPrefix(fs.Errors, "Additional Investigator"), "errors: %v", fs.Errors)
}
