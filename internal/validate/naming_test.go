package validate

import (
	"testing"

	"github.com/nurgulresearch/irec/internal/model"
)

func TestCheckNaming(t *testing.T) {
	tests := []struct {
		name       string
		surname    string
		files      []string
		wantErrors []string
		wantInfo   int
	}{
		{
			name:     "main application",
			surname:  "Smith",
			files:    []string{"Smith_IREC Application_01152025.docx"},
			wantInfo: 1,
		},
		{
			name:     "all patterns",
			surname:  "Smith",
			files:    []string{"uploads/Smith_IREC Application_01152025.docx", "Smith_TRREE_06302024.pdf", "Smith_Interview Guide-Kz_01152025.docx"},
			wantInfo: 3,
		},
		{
			name:       "document only",
			surname:    "Smith",
			files:      []string{"Smith_Consent Form-Eng_01152025.docx"},
			wantErrors: []string{"Main application file not found (expected 'Smith_IREC Application_MMDDYYYY')."},
			wantInfo:   1,
		},
		{
			name:    "wrong surname",
			surname: "Smith",
			files:   []string{"Jones_IREC Application_01152025.docx"},
			wantErrors: []string{
				"File 'Jones_IREC Application_01152025.docx' does not follow the naming protocol for surname 'Smith'.",
				"Main application file not found (expected 'Smith_IREC Application_MMDDYYYY').",
			},
		},
		{
			name:       "invalid date",
			surname:    "Smith",
			files:      []string{"Smith_IREC Application_13452025.docx"},
			wantErrors: []string{"File 'Smith_IREC Application_13452025.docx' has an invalid date '13452025' (expected MMDDYYYY)."},
			wantInfo:   1,
		},
		{
			name:       "unsupported language",
			surname:    "Smith",
			files:      []string{"Smith_IREC Application_01152025.docx", "Smith_Consent Form-De_01152025.docx"},
			wantErrors: []string{"File 'Smith_Consent Form-De_01152025.docx' does not follow the naming protocol for surname 'Smith'."},
			wantInfo:   1,
		},
		{
			name:     "no files",
			surname:  "Smith",
			wantInfo: 1,
		},
		{
			name:       "unknown surname",
			files:      []string{"Smith_IREC Application_01152025.docx"},
			wantErrors: []string{"PI surname could not be determined from Part 2; naming protocol check skipped."},
		},
		{
			name:       "unknown surname without files",
			wantErrors: []string{"PI surname could not be determined from Part 2; naming protocol check skipped."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := CheckNaming(tt.surname, tt.files)

			if len(fs.Errors) != len(tt.wantErrors) {
				t.Fatalf("Expected %d errors, got %d: %v", len(tt.wantErrors), len(fs.Errors), fs.Errors)
			}
			for i, want := range tt.wantErrors {
				if fs.Errors[i] != want {
					t.Errorf("Error %d = %q, want %q", i, fs.Errors[i], want)
				}
			}
			if len(fs.Info) != tt.wantInfo {
				t.Errorf("Expected %d info findings, got %d: %v", tt.wantInfo, len(fs.Info), fs.Info)
			}
		})
	}
}

func TestCheckNaming_SurnameIsLiteral(t *testing.T) {
	fs := CheckNaming("O.Brien", []string{"OxBrien_IREC Application_01152025.docx"})
	if len(fs.Errors) != 2 {
		t.Errorf("Expected surname to match literally, got errors %v", fs.Errors)
	}
}

func TestParseChecklist(t *testing.T) {
	text := "Application Checklist\n" +
		"Appendix A: IREC Application Form ☑\n" +
		"☐ Appendix B: Written Informed Consent Form\n" +
		"Some explanatory note\n" +
		"Appendix B: Written Informed Consent Form ☒\n" +
		"Surveys/Questionnaires ☐\n"

	got := ParseChecklist(text)
	want := []ChecklistItem{
		{Label: "Appendix A: IREC Application Form", Checked: true},
		{Label: "Appendix B: Written Informed Consent Form", Checked: true},
		{Label: "Surveys/Questionnaires", Checked: false},
	}

	if len(got) != len(want) {
		t.Fatalf("Expected %d items, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Item %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestReconcileChecklist(t *testing.T) {
	forms := []model.RequiredForm{
		{Form: FormApplication, Reason: "all"},
		{Form: FormWrittenConsent, Reason: "qualitative"},
		{Form: FormWrittenConsent, Reason: "recordings"},
	}
	items := []ChecklistItem{
		{Label: FormApplication, Checked: true},
		{Label: FormWrittenConsent, Checked: false},
		{Label: FormInternetConsent, Checked: true},
	}

	fs := ReconcileChecklist(forms, items)

	if fs.Len() != 3 {
		t.Fatalf("Expected exactly 3 findings, got %d: %+v", fs.Len(), fs)
	}
	if want := "Required form 'Appendix A: IREC Application Form' checked in checklist."; fs.Info[0] != want {
		t.Errorf("Info = %q, want %q", fs.Info[0], want)
	}
	if want := "Required form 'Appendix B: Written Informed Consent Form' not checked in checklist."; fs.Errors[0] != want {
		t.Errorf("Error = %q, want %q", fs.Errors[0], want)
	}
	if want := "Checklist item 'Appendix C: Informed Consent Form for Internet Surveys' checked but not required."; fs.Warnings[0] != want {
		t.Errorf("Warning = %q, want %q", fs.Warnings[0], want)
	}
}

func TestReconcileChecklist_MissingItem(t *testing.T) {
	forms := []model.RequiredForm{{Form: FormSurveys}}

	fs := ReconcileChecklist(forms, nil)
	if len(fs.Errors) != 1 || fs.Errors[0] != "Required form 'Surveys/Questionnaires' not in checklist." {
		t.Errorf("Unexpected errors: %v", fs.Errors)
	}
}

func TestNamingAndChecklist_MissingChecklist(t *testing.T) {
	paragraphs := edit(t, loadFixture(t), MarkerChecklist, "")

	fs, _ := NamingAndChecklist(newTestContext(paragraphs, fixtureFiles))

	found := false
	for _, e := range fs.Errors {
		if e == "Application Checklist not found." {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected missing checklist error, got %v", fs.Errors)
	}
}
