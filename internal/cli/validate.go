package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// ErrFindings is returned by --strict runs whose report has errors
var ErrFindings = errors.New("validation found errors")

var (
	outJSON     string
	outMD       string
	outHTML     string
	attachments []string
	noFooter    bool
	strict      bool
	timeout     time.Duration
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate one IREC application document",
	Long: `Validate reads an application document (.docx, .txt, .md or .html) and
checks every questionnaire part:
- Part 0 screening and exemption claims
- Cover sheet, research team and training dates
- Research design, participants, procedures and data management
- Risk/benefit, confidentiality and funding
- Part 11 naming protocol and application checklist

The document's own file name is always checked against the naming protocol;
add the names of the other files in the submission with --attach.

Example:
  irec validate "Smith_IREC Application_02202026.docx"
  irec validate app.docx --attach Smith_CITI_01152025.pdf --attach "Smith_Consent Form-Eng_02202026.docx"
  irec validate app.docx --json report.json --md report.md --html report.html`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path")
	validateCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path")
	validateCmd.Flags().StringVar(&outHTML, "html", "", "output HTML path")
	validateCmd.Flags().StringSliceVar(&attachments, "attach", nil, "names of the other files in the submission (repeatable)")
	validateCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown and HTML reports")
	validateCmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when the report has errors")
	validateCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "timeout for reading the document")
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	if noFooter {
		cfg.Output.IncludeFooter = false
	}
	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Validating: %s\n", path)
		if len(attachments) > 0 {
			fmt.Fprintf(os.Stderr, "Attachments: %d\n", len(attachments))
		}
		fmt.Fprintln(os.Stderr)
	}

	p := newPipeline(false)

	report, err := p.ValidateFile(ctx, path, attachments)
	if err != nil {
		return err
	}

	if err := p.RenderReport(report, outJSON, outMD, outHTML, cfg.Output.Verbose); err != nil {
		return err
	}

	if strict && report.Summary.Errors > 0 {
		return fmt.Errorf("%w: %d", ErrFindings, report.Summary.Errors)
	}
	return nil
}
