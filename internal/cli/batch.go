package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nurgulresearch/irec/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	batchDirs    []string
	siblings     bool
	batchAttach  []string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch [list-file]",
	Short: "Validate many application documents in parallel",
	Long: `Batch validates many documents concurrently:
- Read document paths from a list file (one per line, # comments allowed)
- Add every supported document found in each --dir
- Validate each document independently on a worker pool
- Write <name>.json and <name>.md for each document into the output dir

With --siblings, the other files next to each document are treated as its
attachments for the naming protocol check.

Example:
  irec batch submissions.txt
  irec batch --dir ./inbox --siblings --output-dir ./reports
  irec batch submissions.txt --concurrency 8 --timeout 5m`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default from config)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./irec-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringSliceVar(&batchDirs, "dir", nil, "directory of documents to validate (repeatable)")
	batchCmd.Flags().BoolVar(&siblings, "siblings", false, "use files next to each document as its attachments")
	batchCmd.Flags().StringSliceVar(&batchAttach, "attach", nil, "attachment names added to every document (repeatable)")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), batchTimeout)
	defer cancel()

	paths, err := collectPaths(args, batchDirs)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no documents to validate (give a list file or --dir)")
	}

	workers := concurrency
	if workers <= 0 {
		workers = cfg.Concurrency.Workers
	}
	if noFooter {
		cfg.Output.IncludeFooter = false
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  IREC Batch Validation\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Documents:    %d\n", len(paths))
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", workers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p := newPipeline(true)
	processor := worker.NewBatchProcessor(p, workers,
		worker.WithSiblings(siblings),
		worker.WithBatchLogger(logger))

	outcomes := processor.ProcessFiles(ctx, paths, batchAttach)

	renderer := p.Renderer()
	names := newReportNames()
	passed, flagged, failed := 0, 0, 0

	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", o.Path, o.Err)
			continue
		}

		stem := names.next(o.Path)
		jsonPath := filepath.Join(outputDir, stem+".json")
		mdPath := filepath.Join(outputDir, stem+".md")

		if err := renderer.RenderJSON(o.Report, jsonPath); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", o.Path, err)
			continue
		}
		if err := renderer.RenderMarkdown(o.Report, mdPath); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", o.Path, err)
			continue
		}

		sum := o.Report.Summary
		if sum.Errors > 0 {
			flagged++
			fmt.Fprintf(os.Stderr, "! %s (%d errors, %d warnings)\n", filepath.Base(o.Path), sum.Errors, sum.Warnings)
		} else {
			passed++
			fmt.Fprintf(os.Stderr, "✓ %s (%d warnings)\n", filepath.Base(o.Path), sum.Warnings)
		}
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:          %d documents\n", len(paths))
	fmt.Fprintf(os.Stderr, "  Without errors: %d\n", passed)
	fmt.Fprintf(os.Stderr, "  With errors:    %d\n", flagged)
	fmt.Fprintf(os.Stderr, "  Failed:         %d\n", failed)
	if skipped := len(paths) - len(outcomes); skipped > 0 {
		fmt.Fprintf(os.Stderr, "  Not run:        %d (timeout or interrupt)\n", skipped)
	}
	fmt.Fprintf(os.Stderr, "  Output:         %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// collectPaths merges the list file entries with the documents in dirs,
// dropping duplicates
func collectPaths(args, dirs []string) ([]string, error) {
	var paths []string
	if len(args) == 1 {
		listed, err := worker.ReadPathsFromFile(args[0])
		if err != nil {
			return nil, err
		}
		paths = append(paths, listed...)
	}
	if len(dirs) > 0 {
		found, err := worker.ExpandPaths(dirs)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}

	seen := make(map[string]bool, len(paths))
	return slices.DeleteFunc(paths, func(p string) bool {
		dup := seen[p]
		seen[p] = true
		return dup
	}), nil
}

// reportNames derives unique report file stems from document paths
type reportNames struct {
	used map[string]int
}

func newReportNames() *reportNames {
	return &reportNames{used: make(map[string]int)}
}

func (r *reportNames) next(path string) string {
	stem := sanitizeFilename(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	r.used[stem]++
	if n := r.used[stem]; n > 1 {
		return fmt.Sprintf("%s-%d", stem, n)
	}
	return stem
}

// sanitizeFilename sanitizes a string for use as a filename
func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
	s = strings.TrimSpace(replacer.Replace(s))
	if s == "" || s == "." || s == ".." {
		return "report"
	}
	return s
}
