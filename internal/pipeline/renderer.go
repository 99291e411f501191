package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/nurgulresearch/irec/internal/model"
	"github.com/nurgulresearch/irec/internal/score"
	"github.com/nurgulresearch/irec/internal/validate"
)

const footer = "Findings are keyword-based checks of the application text. The IREC reviewer makes the final decision."

// colorScheme holds the console colors of the summary
type colorScheme struct {
	pass  *color.Color
	fail  *color.Color
	warn  *color.Color
	label *color.Color
	value *color.Color
}

func newColorScheme(enabled bool) *colorScheme {
	s := &colorScheme{
		pass:  color.New(color.FgGreen, color.Bold),
		fail:  color.New(color.FgRed, color.Bold),
		warn:  color.New(color.FgYellow),
		label: color.New(color.FgCyan),
		value: color.New(color.FgWhite, color.Bold),
	}
	if !enabled {
		for _, c := range []*color.Color{s.pass, s.fail, s.warn, s.label, s.value} {
			c.DisableColor()
		}
	}
	return s
}

func (s *colorScheme) status(st score.Status) *color.Color {
	switch st {
	case score.StatusPass:
		return s.pass
	case score.StatusWarn:
		return s.warn
	default:
		return s.fail
	}
}

// Renderer turns reports into JSON, Markdown, HTML and console output
type Renderer struct {
	includeFooter bool
	scorer        *score.Scorer
	colors        *colorScheme
	markdown      goldmark.Markdown
	policy        *bluemonday.Policy
}

// NewRenderer creates a renderer. Color applies to the console summary only.
func NewRenderer(includeFooter, useColor bool) *Renderer {
	return &Renderer{
		includeFooter: includeFooter,
		scorer:        score.NewScorer(),
		colors:        newColorScheme(useColor),
		markdown:      goldmark.New(goldmark.WithExtensions(extension.Table)),
		policy:        bluemonday.UGCPolicy(),
	}
}

// WriteJSON encodes the report as indented JSON
func (r *Renderer) WriteJSON(w io.Writer, report *model.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(report)
}

// RenderJSON writes the report as JSON to path
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	var buf bytes.Buffer
	if err := r.WriteJSON(&buf, report); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// Markdown renders the report as a Markdown document
func (r *Renderer) Markdown(report *model.Report) []byte {
	var b strings.Builder

	b.WriteString("# IREC Application Validation Report\n\n")
	fmt.Fprintf(&b, "- **Submission ID:** %s\n", escapeMarkdown(report.SubmissionID))
	fmt.Fprintf(&b, "- **Timestamp:** %s\n", report.Timestamp)
	if report.Source != "" {
		fmt.Fprintf(&b, "- **Document:** %s\n", escapeMarkdown(report.Source))
	}
	if len(report.FileNames) > 0 {
		names := make([]string, len(report.FileNames))
		for i, n := range report.FileNames {
			names[i] = escapeMarkdown(n)
		}
		fmt.Fprintf(&b, "- **Files checked:** %s\n", strings.Join(names, ", "))
	}

	sections := r.scorer.Sections(report.Parts)
	fmt.Fprintf(&b, "- **Overall:** %s\n\n", r.scorer.Overall(sections))

	b.WriteString("## Summary\n\n")
	b.WriteString("| Section | Status | Errors | Warnings | Info |\n")
	b.WriteString("|---|---|---:|---:|---:|\n")
	for _, sec := range sections {
		fmt.Fprintf(&b, "| %s | %s | %d | %d | %d |\n", sec.Name, sec.Status, sec.Errors, sec.Warnings, sec.Info)
	}
	fmt.Fprintf(&b, "| **Total** | | %d | %d | %d |\n\n", report.Summary.Errors, report.Summary.Warnings, report.Summary.Info)

	for _, sec := range sections {
		fs := report.Parts[sec.Name]
		fmt.Fprintf(&b, "## %s\n\n", sec.Name)
		if fs.Len() == 0 {
			b.WriteString("No findings.\n\n")
			continue
		}
		writeFindings(&b, "Errors", fs.Errors)
		writeFindings(&b, "Warnings", fs.Warnings)
		writeFindings(&b, "Info", fs.Info)
	}

	forms := validate.DistinctForms(report.RequiredForms)
	b.WriteString("## Required Forms\n\n")
	if len(forms) == 0 {
		b.WriteString("None.\n\n")
	} else {
		b.WriteString("| # | Form | Reason |\n")
		b.WriteString("|---:|---|---|\n")
		for i, f := range forms {
			fmt.Fprintf(&b, "| %d | %s | %s |\n", i+1, escapeMarkdown(f.Form), escapeMarkdown(f.Reason))
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\n")
		fmt.Fprintf(&b, "*%s*\n", footer)
	}

	return []byte(b.String())
}

// RenderMarkdown writes the report as Markdown to path
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	return os.WriteFile(path, r.Markdown(report), 0o644)
}

// HTML renders the Markdown report to sanitized HTML
func (r *Renderer) HTML(report *model.Report) ([]byte, error) {
	var body bytes.Buffer
	if err := r.markdown.Convert(r.Markdown(report), &body); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>IREC Application Validation Report</title>\n</head>\n<body>\n")
	page.Write(r.policy.SanitizeBytes(body.Bytes()))
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}

// RenderHTML writes the report as HTML to path
func (r *Renderer) RenderHTML(report *model.Report, path string) error {
	data, err := r.HTML(report)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// RenderSummary prints a per-section overview to w. Verbose adds warnings
// and the required forms.
func (r *Renderer) RenderSummary(w io.Writer, report *model.Report, verbose bool) {
	sections := r.scorer.Sections(report.Parts)
	overall := r.scorer.Overall(sections)
	c := r.colors

	fmt.Fprintln(w)
	if report.Source != "" {
		fmt.Fprintf(w, "%s %s\n", c.label.Sprint("Document:"), c.value.Sprint(report.Source))
	}
	fmt.Fprintf(w, "%s %s\n\n", c.label.Sprint("Submission:"), report.SubmissionID)

	for _, sec := range sections {
		fmt.Fprintf(w, "  %-8s %s  %d errors, %d warnings\n",
			sec.Name, c.status(sec.Status).Sprintf("%-7s", sec.Status), sec.Errors, sec.Warnings)
	}

	fmt.Fprintf(w, "\n%s %s (%d errors, %d warnings, %d info)\n",
		c.label.Sprint("Overall:"), c.status(overall).Sprint(strings.ToUpper(string(overall))),
		report.Summary.Errors, report.Summary.Warnings, report.Summary.Info)

	for _, sec := range sections {
		fs := report.Parts[sec.Name]
		for _, e := range fs.Errors {
			fmt.Fprintf(w, "  %s [%s] %s\n", c.fail.Sprint("✗"), sec.Name, e)
		}
		if verbose {
			for _, warning := range fs.Warnings {
				fmt.Fprintf(w, "  %s [%s] %s\n", c.warn.Sprint("!"), sec.Name, warning)
			}
		}
	}

	if verbose {
		forms := validate.DistinctForms(report.RequiredForms)
		fmt.Fprintf(w, "\n%s %d\n", c.label.Sprint("Required forms:"), len(forms))
		for _, f := range forms {
			fmt.Fprintf(w, "  - %s (%s)\n", f.Form, f.Reason)
		}
	}
	fmt.Fprintln(w)
}

func writeFindings(b *strings.Builder, heading string, findings []string) {
	if len(findings) == 0 {
		return
	}
	fmt.Fprintf(b, "### %s\n\n", heading)
	for _, f := range findings {
		fmt.Fprintf(b, "- %s\n", escapeMarkdown(singleLine(f)))
	}
	b.WriteString("\n")
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"|", `\|`,
)

// escapeMarkdown keeps finding text literal, e.g. underscores in file names
// singleLine collapses runs of whitespace, newlines included, to one space
// so a narrative finding stays inside its list item
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
