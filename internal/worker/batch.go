package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/nurgulresearch/irec/internal/document"
	"github.com/nurgulresearch/irec/internal/logging"
)

// BatchProcessor validates many documents concurrently
type BatchProcessor struct {
	validator   Validator
	concurrency int
	siblings    bool
	logger      *zap.Logger
}

// BatchOption configures a BatchProcessor
type BatchOption func(*BatchProcessor)

// WithSiblings treats the other files in a document's directory as its
// attachments for the naming protocol check
func WithSiblings(enabled bool) BatchOption {
	return func(b *BatchProcessor) {
		b.siblings = enabled
	}
}

// WithBatchLogger sets the logger for per-document progress
func WithBatchLogger(logger *zap.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(validator Validator, concurrency int, opts ...BatchOption) *BatchProcessor {
	b := &BatchProcessor{
		validator:   validator,
		concurrency: concurrency,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = logging.OrNop(b.logger)
	return b
}

// ProcessFiles validates every path and returns the outcomes in input order.
// attachments are added to every document's naming candidates.
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths, attachments []string) []Outcome {
	if len(paths) == 0 {
		return []Outcome{}
	}

	pool := NewPool(ctx, b.validator, b.concurrency)
	pool.Start()

	for i, path := range paths {
		task := Task{Index: i, Path: path, Attachments: attachments}
		if b.siblings {
			task.Attachments = append(Siblings(path), attachments...)
		}
		if !pool.Submit(task) {
			b.logger.Warn("batch cancelled", zap.Int("submitted", i), zap.Int("total", len(paths)))
			return pool.Shutdown()
		}
	}

	outcomes := pool.Wait()
	for _, o := range outcomes {
		if o.Err != nil {
			b.logger.Warn("document failed", zap.String("path", o.Path), zap.Error(o.Err))
			continue
		}
		b.logger.Debug("document done",
			zap.String("path", o.Path),
			zap.Int("errors", o.Report.Summary.Errors),
			zap.Duration("elapsed", o.Elapsed))
	}
	return outcomes
}

// ProcessList reads document paths from a list file and validates them
func (b *BatchProcessor) ProcessList(ctx context.Context, listPath string, attachments []string) ([]Outcome, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read paths: %w", err)
	}
	return b.ProcessFiles(ctx, paths, attachments), nil
}

// ReadPathsFromFile reads document paths from a file, one per line. Blank
// lines and # comments are skipped; duplicates are dropped. Relative paths
// resolve against the list file's directory.
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	dir := filepath.Dir(listPath)
	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !filepath.IsAbs(line) {
			line = filepath.Join(dir, line)
		}
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}

// ExpandPaths replaces directories with the supported documents they contain
// (non-recursive, sorted). Files are kept as given.
func ExpandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("read dir %s: %w", arg, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if _, err := document.Detect(e.Name()); err == nil {
				paths = append(paths, filepath.Join(arg, e.Name()))
			}
		}
	}
	return paths, nil
}

// Siblings returns the names of the other regular files next to path
func Siblings(path string) []string {
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		return nil
	}

	base := filepath.Base(path)
	var names []string
	for _, e := range entries {
		if e.IsDir() || e.Name() == base || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	slices.Sort(names)
	return names
}
