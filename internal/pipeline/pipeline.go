package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nurgulresearch/irec/internal/cache"
	"github.com/nurgulresearch/irec/internal/document"
	"github.com/nurgulresearch/irec/internal/idgen"
	"github.com/nurgulresearch/irec/internal/logging"
	"github.com/nurgulresearch/irec/internal/model"
	"github.com/nurgulresearch/irec/internal/score"
	"github.com/nurgulresearch/irec/internal/validate"
)

// ErrEmptyDocument is returned when a document has no text to validate
var ErrEmptyDocument = errors.New("empty paragraph stream")

// Pipeline runs the section validators over one document at a time. A
// Pipeline is safe for concurrent use; every run builds its own context.
type Pipeline struct {
	config   *model.Config
	loader   *document.Loader
	scorer   *score.Scorer
	renderer *Renderer
	stages   []validate.Stage
	newID    idgen.Generator
	now      func() time.Time
	logger   *zap.Logger
	cache    cache.Cache
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithClock sets the clock used for training-date checks and timestamps
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

// WithIDGenerator sets the submission ID generator
func WithIDGenerator(gen idgen.Generator) Option {
	return func(p *Pipeline) {
		p.newID = gen
	}
}

// WithLogger sets the logger for stage and document events
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithCache lets the loader reuse parsed paragraphs of identical uploads
func WithCache(c cache.Cache) Option {
	return func(p *Pipeline) {
		p.cache = c
	}
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config, opts ...Option) *Pipeline {
	p := &Pipeline{
		config: cfg,
		scorer: score.NewScorer(),
		stages: validate.Stages(),
		newID:  idgen.Default,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = logging.OrNop(p.logger)

	loaderOpts := []document.Option{document.WithLogger(p.logger)}
	if p.cache != nil {
		loaderOpts = append(loaderOpts, document.WithCache(p.cache))
	}
	p.loader = document.NewLoader(cfg.Document, loaderOpts...)
	p.renderer = NewRenderer(cfg.Output.IncludeFooter, cfg.Output.Color)

	return p
}

// Renderer returns the pipeline's report renderer
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}

// Scorer returns the pipeline's scorer
func (p *Pipeline) Scorer() *score.Scorer {
	return p.scorer
}

// Validate runs every section validator over paragraphs and assembles the
// report. fileNames are the candidate names checked against the naming
// protocol.
func (p *Pipeline) Validate(paragraphs, fileNames []string) (*model.Report, error) {
	if blank(paragraphs) {
		return nil, ErrEmptyDocument
	}

	now := p.now()
	c := validate.NewContext(paragraphs, fileNames, now, p.config.Rules)
	parts := make(map[string]model.FindingSet, len(p.stages))

	for _, stage := range p.stages {
		var fs model.FindingSet
		fs, c = stage.Run(c)
		parts[stage.Name] = fs

		p.logger.Debug("section validated",
			zap.String("section", stage.Name),
			zap.Int("errors", len(fs.Errors)),
			zap.Int("warnings", len(fs.Warnings)),
			zap.Int("info", len(fs.Info)))
	}

	report := &model.Report{
		SubmissionID:  p.newID(),
		Timestamp:     now.Format(model.TimestampLayout),
		FileNames:     fileNames,
		Parts:         parts,
		Summary:       p.scorer.Summarize(parts),
		RequiredForms: c.Forms,
	}

	p.logger.Debug("document validated",
		zap.String("submission_id", report.SubmissionID),
		zap.Int("errors", report.Summary.Errors),
		zap.Int("warnings", report.Summary.Warnings),
		zap.Int("required_forms", len(validate.DistinctForms(report.RequiredForms))))

	return report, nil
}

// ValidateFile loads the document at path and validates it. The document's
// own name is always a naming-protocol candidate, followed by attachments.
func (p *Pipeline) ValidateFile(ctx context.Context, path string, attachments []string) (*model.Report, error) {
	doc, err := p.loader.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	return p.validateDocument(doc, attachments)
}

// ValidateReader parses a document streamed from r, e.g. an upload
func (p *Pipeline) ValidateReader(ctx context.Context, name string, r io.Reader, attachments []string) (*model.Report, error) {
	doc, err := p.loader.Read(ctx, name, r)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	return p.validateDocument(doc, attachments)
}

func (p *Pipeline) validateDocument(doc *document.Document, attachments []string) (*model.Report, error) {
	report, err := p.Validate(doc.Paragraphs, CandidateNames(doc.Name, attachments))
	if err != nil {
		return nil, fmt.Errorf("validate %s: %w", doc.Name, err)
	}
	report.Source = doc.Name
	return report, nil
}

// CandidateNames returns the document name followed by the attachment base
// names, without duplicates or blanks
func CandidateNames(docName string, attachments []string) []string {
	names := make([]string, 0, len(attachments)+1)
	for _, n := range append([]string{docName}, attachments...) {
		n = strings.TrimSpace(filepath.Base(n))
		if n == "" || n == "." || slices.Contains(names, n) {
			continue
		}
		names = append(names, n)
	}
	return names
}

// RenderReport writes the requested report files and prints the summary
func (p *Pipeline) RenderReport(report *model.Report, jsonPath, mdPath, htmlPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	if htmlPath != "" {
		if err := p.renderer.RenderHTML(report, htmlPath); err != nil {
			return fmt.Errorf("render HTML: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote HTML: %s\n", htmlPath)
		}
	}

	p.renderer.RenderSummary(os.Stdout, report, verbose)
	return nil
}

func blank(paragraphs []string) bool {
	for _, para := range paragraphs {
		if strings.TrimSpace(para) != "" {
			return false
		}
	}
	return true
}
