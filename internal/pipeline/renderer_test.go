package pipeline

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurgulresearch/irec/internal/model"
)

func sampleReport() *model.Report {
	screening := model.NewFindingSet()
	screening.Infof("Trigger 'minors' answered No.")

	naming := model.NewFindingSet()
	naming.Errorf("File 'Jones_IREC Application_01152025.docx' does not follow the naming protocol for surname 'Smith'.")
	naming.Warnf("Checklist item 'Surveys/Questionnaires' checked but not required.")

	return &model.Report{
		SubmissionID: "irec_0001",
		Timestamp:    "2026-03-10 09:30:00",
		Source:       "Smith_IREC Application_02202026.docx",
		Parts: map[string]model.FindingSet{
			model.SectionScreening: screening,
			model.SectionNaming:    naming,
		},
		Summary: model.Summary{Errors: 1, Warnings: 1, Info: 1},
		RequiredForms: []model.RequiredForm{
			{Form: "Appendix A: IREC Application Form", Reason: "Always required."},
			{Form: "Appendix A: IREC Application Form", Reason: "Duplicate."},
			{Form: "Interview Guides", Reason: "Interviews | focus groups."},
		},
	}
}

func TestRenderer_WriteJSON(t *testing.T) {
	r := NewRenderer(true, false)

	var buf bytes.Buffer
	require.NoError(t, r.WriteJSON(&buf, sampleReport()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "irec_0001", decoded["submission_id"])
	assert.Contains(t, decoded, "parts")
	assert.Contains(t, decoded, "required_forms")

	// Empty finding lists stay arrays
	part0 := decoded["parts"].(map[string]any)[model.SectionScreening].(map[string]any)
	assert.Equal(t, []any{}, part0["errors"])
}

func TestRenderer_Markdown(t *testing.T) {
	md := string(NewRenderer(true, false).Markdown(sampleReport()))

	assert.Contains(t, md, "# IREC Application Validation Report")
	assert.Contains(t, md, "| Part 11 | fail | 1 | 1 | 0 |")
	assert.Contains(t, md, `- File 'Jones\_IREC Application\_01152025.docx' does not follow`)
	assert.Contains(t, md, `Interviews \| focus groups.`)
	assert.Contains(t, md, "- **Overall:** fail")
	assert.Equal(t, 1, strings.Count(md, "| Appendix A: IREC Application Form |"), "forms are deduplicated")

	// Part 0 precedes Part 11
	assert.Less(t, strings.Index(md, "## Part 0"), strings.Index(md, "## Part 11"))
	assert.Contains(t, md, footer)

	noFooter := string(NewRenderer(false, false).Markdown(sampleReport()))
	assert.NotContains(t, noFooter, footer)
}

func TestRenderer_MultilineFinding(t *testing.T) {
	report := sampleReport()
	dm := model.NewFindingSet()
	dm.Infof("Data security plan: Encrypted drive.\n# Backups\n- weekly\n\n1. offsite")
	report.Parts[model.SectionDataManagement] = dm

	r := NewRenderer(true, false)
	md := string(r.Markdown(report))
	assert.Contains(t, md, "- Data security plan: Encrypted drive. # Backups - weekly 1. offsite\n")
	assert.NotContains(t, md, "\n# Backups")

	out, err := r.HTML(report)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<h1>Backups</h1>")
	assert.NotContains(t, string(out), "<ol>")
}

func TestRenderer_HTML(t *testing.T) {
	report := sampleReport()
	report.Parts[model.SectionScreening] = model.FindingSet{
		Errors: []string{"<script>alert(1)</script> injected"},
	}

	out, err := NewRenderer(true, false).HTML(report)
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "<h1>IREC Application Validation Report</h1>")
	assert.Contains(t, html, "<table>")
	assert.NotContains(t, html, "<script>")
}

func TestRenderer_RenderFiles(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(true, false)
	report := sampleReport()

	jsonPath := filepath.Join(dir, "report.json")
	mdPath := filepath.Join(dir, "report.md")
	htmlPath := filepath.Join(dir, "report.html")

	require.NoError(t, r.RenderJSON(report, jsonPath))
	require.NoError(t, r.RenderMarkdown(report, mdPath))
	require.NoError(t, r.RenderHTML(report, htmlPath))

	for _, path := range []string{jsonPath, mdPath, htmlPath} {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size(), path)
	}

	err := r.RenderJSON(report, filepath.Join(dir, "missing", "report.json"))
	assert.Error(t, err)
}

func TestRenderer_RenderSummary(t *testing.T) {
	r := NewRenderer(true, false)

	var buf bytes.Buffer
	r.RenderSummary(&buf, sampleReport(), false)
	out := buf.String()

	assert.Contains(t, out, "Document: Smith_IREC Application_02202026.docx")
	assert.Contains(t, out, "Overall: FAIL (1 errors, 1 warnings, 1 info)")
	assert.Contains(t, out, "✗ [Part 11] File 'Jones_IREC Application_01152025.docx'")
	assert.NotContains(t, out, "Checklist item")
	assert.NotContains(t, out, "\x1b[", "color disabled")

	buf.Reset()
	r.RenderSummary(&buf, sampleReport(), true)
	out = buf.String()
	assert.Contains(t, out, "! [Part 11] Checklist item 'Surveys/Questionnaires' checked but not required.")
	assert.Contains(t, out, "Required forms: 2")
	assert.Contains(t, out, "  - Interview Guides (Interviews | focus groups.)")
}
