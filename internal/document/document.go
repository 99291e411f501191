// Package document loads questionnaire documents into paragraph streams.
//
// Supported formats:
//   - .docx: word/document.xml, one paragraph per w:p
//   - .txt, .md: one paragraph per line
//   - .html, .htm: one paragraph per block element
package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/nurgulresearch/irec/internal/cache"
	"github.com/nurgulresearch/irec/internal/logging"
	"github.com/nurgulresearch/irec/internal/model"
)

var (
	// ErrUnsupportedFormat is returned for file extensions no parser handles
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrTooLarge is returned when a document exceeds the configured size
	ErrTooLarge = errors.New("document too large")
)

// Format identifies a document parser
type Format string

const (
	FormatDocx     Format = "docx"
	FormatText     Format = "txt"
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
)

// Document is a parsed questionnaire document
type Document struct {
	Name       string   // Base file name
	Format     Format   // Parser used
	Paragraphs []string // Paragraph texts in document order
	Cached     bool     // Paragraphs came from the cache
}

// Detect returns the document format based on file extension
func Detect(name string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".docx":
		return FormatDocx, nil
	case ".txt", ".text":
		return FormatText, nil
	case ".md", ".markdown":
		return FormatMarkdown, nil
	case ".html", ".htm":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Loader reads documents from disk or memory
type Loader struct {
	maxBytes int64
	cache    cache.Cache
	logger   *zap.Logger
}

// Option configures a Loader
type Option func(*Loader)

// WithCache reuses parsed paragraphs for byte-identical documents
func WithCache(c cache.Cache) Option {
	return func(l *Loader) {
		l.cache = c
	}
}

// WithLogger sets the loader's logger
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a loader enforcing the configured size limit
func NewLoader(cfg model.DocumentConfig, opts ...Option) *Loader {
	l := &Loader{
		maxBytes: cfg.MaxFileBytes,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = logging.OrNop(l.logger)
	return l
}

// Load reads and parses the document at path
func (l *Loader) Load(ctx context.Context, path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if l.maxBytes > 0 && info.Size() > l.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, info.Size(), l.maxBytes)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return l.Read(ctx, filepath.Base(path), f)
}

// Read parses a document from r. The name selects the parser.
func (l *Loader) Read(ctx context.Context, name string, r io.Reader) (*Document, error) {
	format, err := Detect(name)
	if err != nil {
		return nil, err
	}

	if l.maxBytes > 0 {
		r = io.LimitReader(r, l.maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if l.maxBytes > 0 && int64(len(data)) > l.maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, l.maxBytes)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := &Document{Name: name, Format: format}

	key := cache.Key(string(format), data)
	if l.cache != nil {
		if paragraphs, ok := l.cache.Get(key); ok {
			l.logger.Debug("document cache hit", zap.String("name", name))
			doc.Paragraphs = paragraphs
			doc.Cached = true
			return doc, nil
		}
	}

	doc.Paragraphs, err = Parse(format, data)
	if err != nil {
		return nil, fmt.Errorf("parse %s (%s): %w", name, format, err)
	}

	l.logger.Debug("document parsed",
		zap.String("name", name),
		zap.String("format", string(format)),
		zap.Int("paragraphs", len(doc.Paragraphs)))

	if l.cache != nil {
		l.cache.Set(key, doc.Paragraphs, 0)
	}
	return doc, nil
}

// Parse converts raw document bytes of the given format into paragraphs
func Parse(format Format, data []byte) ([]string, error) {
	switch format {
	case FormatDocx:
		return parseDocx(data)
	case FormatText:
		return parseText(data), nil
	case FormatMarkdown:
		return parseMarkdown(data), nil
	case FormatHTML:
		return parseHTML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
