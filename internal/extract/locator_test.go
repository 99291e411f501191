package extract

import (
	"testing"
)

const coverText = `Part 4: Participants
Will participants be recruited? Yes ☑ No ☐
How will you contact potential participants?
By e-mail through the department list.
Minors (under 18 years)? Yes ☐ No ☑
Prisoners? Yes ☐ No ☐
Pregnant women? Yes ☑ No ☑
Will data be shared? No dropdown menu ☑ Yes ☐ No ☐
Gender, race or ethnic group (if relevant): women aged 20-40
Affiliation of participants:
NU undergraduate students
Other (please specify)
Inclusions:
Adults over 18
who live in Astana
N/A ☐
Exclusions:
N/A ☑
`

func newCoverLocator() *TextLocator {
	return NewLocator(coverText,
		"Will participants be recruited?",
		"How will you contact potential participants?",
		"Minors",
		"Prisoners?",
		"Pregnant women?",
		"Will data be shared?",
		"Gender, race or ethnic group",
		"Affiliation of participants:",
		"Other (please specify)",
		"Inclusions:",
		"Exclusions:",
	)
}

func TestLocator_Answer(t *testing.T) {
	loc := newCoverLocator()

	tests := []struct {
		anchor string
		opts   []Option
		want   AnswerToken
	}{
		{"Will participants be recruited?", nil, AnswerToken{Option: OptionYes, State: StateMarked}},
		{"Minors", nil, AnswerToken{Option: OptionNo, State: StateMarked}},
		{"Prisoners?", nil, AnswerToken{Option: OptionYes, State: StateUnmarked}},
		{"Pregnant women?", nil, AnswerToken{State: StateAmbiguous}},
		{"Not in the document", nil, AnswerToken{}},
		{"Will data be shared?", []Option{"No dropdown menu", OptionYes, OptionNo}, AnswerToken{Option: "No dropdown menu", State: StateMarked}},
		{"Exclusions:", []Option{OptionNA}, AnswerToken{Option: OptionNA, State: StateMarked}},
		{"Inclusions:", []Option{OptionNA}, AnswerToken{Option: OptionNA, State: StateUnmarked}},
	}

	for _, tt := range tests {
		got := loc.Answer(tt.anchor, tt.opts...)
		if got != tt.want {
			t.Errorf("Answer(%q) = %+v, want %+v", tt.anchor, got, tt.want)
		}
	}
}

func TestLocator_AnswerDoesNotCrossAnchors(t *testing.T) {
	loc := NewLocator("Q1? \nQ2? Yes ☑ No ☐\n", "Q1?", "Q2?")

	if got := loc.Answer("Q1?"); got.Found() {
		t.Errorf("Expected Q1 to be missing, got %+v", got)
	}
	if got := loc.Answer("Q2?"); !got.Is(OptionYes) {
		t.Errorf("Expected Q2 to be Yes, got %+v", got)
	}
}

func TestLocator_AnswerAcrossLines(t *testing.T) {
	loc := NewLocator("Anonymous?\nYes ☐\nNo ☒\n", "Anonymous?")

	got := loc.Answer("Anonymous?")
	if !got.Is(OptionNo) {
		t.Errorf("Expected No, got %+v", got)
	}
	if got.String() != "No ☑" {
		t.Errorf("Expected 'No ☑', got %q", got.String())
	}
}

func TestLocator_Line(t *testing.T) {
	loc := newCoverLocator()

	if got, ok := loc.Line("Gender, race or ethnic group"); !ok || got != "women aged 20-40" {
		t.Errorf("Expected qualifier to be dropped, got %q (found=%v)", got, ok)
	}
	if got, _ := loc.Line("Affiliation of participants:"); got != "NU undergraduate students" {
		t.Errorf("Expected next-line fallback, got %q", got)
	}
	if got, ok := loc.Line("Other (please specify)"); !ok || got != "" {
		t.Errorf("Expected empty value that does not steal the next anchor, got %q", got)
	}
	if _, ok := loc.Line("Missing label:"); ok {
		t.Error("Expected missing anchor to report not found")
	}
}

func TestLocator_LineSkipsNextLabel(t *testing.T) {
	loc := NewLocator("Application Title:\nThis application is for:\nAn Expedited Review Yes ☑ No ☐\n" +
		"NU ID:\nDepartment: Sociology\n" +
		"Survey URL:\nhttps://nu.qualtrics.com/jfe/form/SV_1\n",
		"Application Title:", "An Expedited Review")

	tests := []struct {
		anchor string
		want   string
	}{
		{"Application Title:", ""},
		{"NU ID:", ""},
		{"Survey URL:", "https://nu.qualtrics.com/jfe/form/SV_1"},
	}

	for _, tt := range tests {
		t.Run(tt.anchor, func(t *testing.T) {
			got, ok := loc.Line(tt.anchor)
			if !ok {
				t.Fatalf("Expected %q to be found", tt.anchor)
			}
			if got != tt.want {
				t.Errorf("Line(%q) = %q, want %q", tt.anchor, got, tt.want)
			}
		})
	}
}

func TestLocator_Field(t *testing.T) {
	loc := newCoverLocator()

	got, ok := loc.Field("Inclusions:")
	if !ok {
		t.Fatal("Expected Inclusions to be found")
	}
	if got != "Adults over 18\nwho live in Astana" {
		t.Errorf("Expected multi-line field without N/A token, got %q", got)
	}

	got, _ = loc.Field("How will you contact potential participants?")
	if got != "By e-mail through the department list." {
		t.Errorf("Unexpected contact field %q", got)
	}

	got, _ = loc.Field("Exclusions:")
	if got != "" {
		t.Errorf("Expected N/A-only field to be empty, got %q", got)
	}
}

func TestLocator_Checkbox(t *testing.T) {
	loc := NewLocator("Undergraduate ☐ Masters ☑ PhD ☐\nf1 ☑ Research conducted in schools\nf2 ☐ Research involving tests\n")

	tests := []struct {
		label   string
		checked bool
		ok      bool
	}{
		{"Undergraduate", false, true},
		{"Masters", true, true},
		{"Research conducted in schools", true, true},
		{"Research involving tests", false, true},
		{"Faculty", false, false},
	}

	for _, tt := range tests {
		checked, ok := loc.Checkbox(tt.label)
		if checked != tt.checked || ok != tt.ok {
			t.Errorf("Checkbox(%q) = (%v, %v), want (%v, %v)", tt.label, checked, ok, tt.checked, tt.ok)
		}
	}
}

func TestLocator_Blocks(t *testing.T) {
	text := "Principal Investigator\nName: A\nAdditional Investigator\nName: B\nAdditional Investigator\nName: C\nFaculty Advisor\nName: D\n"
	loc := NewLocator(text, "Name:")

	blocks := loc.Blocks("Additional Investigator", "Faculty Advisor")
	if len(blocks) != 2 {
		t.Fatalf("Expected 2 blocks, got %d", len(blocks))
	}

	for i, want := range []string{"B", "C"} {
		if got, _ := blocks[i].Line("Name:"); got != want {
			t.Errorf("Block %d: expected name %q, got %q", i, want, got)
		}
	}

	advisor := loc.Block("Faculty Advisor", "")
	if got, _ := advisor.Line("Name:"); got != "D" {
		t.Errorf("Expected advisor name D, got %q", got)
	}

	if loc.Block("Co-Investigator", "").Found() {
		t.Error("Expected missing block to be empty")
	}
}

func TestLocator_ContainsIsCaseInsensitive(t *testing.T) {
	loc := NewLocator("Interviews and Focus Groups")

	if !loc.Contains("focus group") {
		t.Error("Expected case-insensitive match")
	}
	if loc.Contains("survey", "questionnaire") {
		t.Error("Expected no match")
	}
}

func TestSlice(t *testing.T) {
	paragraphs := []string{
		"Intro",
		"Part 1: Cover Sheet",
		"Title: “Stress” in students",
		"Part 2: Research Team Details",
		"Name: A",
	}

	got := Slice(paragraphs, "Part 1: Cover Sheet", "Part 2: Research Team Details")
	want := "Part 1: Cover Sheet\nTitle: \"Stress\" in students\n"
	if got != want {
		t.Errorf("Slice = %q, want %q", got, want)
	}

	if got := Slice(paragraphs, "Part 2: Research Team Details"); got != "Part 2: Research Team Details\nName: A\n" {
		t.Errorf("Expected open-ended slice to run to end, got %q", got)
	}

	if got := Slice(paragraphs, "Part 7", "Part 8"); got != "" {
		t.Errorf("Expected empty slice for missing start, got %q", got)
	}
}

func TestSlice_StopsAtAnyLaterHeader(t *testing.T) {
	paragraphs := []string{
		"Part 0: Screening",
		"Justification:",
		"Part 2: Research Team Details",
		"Name: A",
		"Part 3: Research Design",
	}

	got := Slice(paragraphs, "Part 0: Screening", "Part 1: Cover Sheet", "Part 2: Research Team Details", "Part 3: Research Design")
	if want := "Part 0: Screening\nJustification:\n"; got != want {
		t.Errorf("Slice = %q, want %q", got, want)
	}
}
