package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/nurgulresearch/irec/internal/document"
	"github.com/nurgulresearch/irec/internal/model"
)

// Upload form fields
const (
	fieldFile       = "file"
	fieldAttachment = "attachment"
)

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if s.cfg.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	}
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "upload exceeds the size limit")
			return
		}
		writeError(w, http.StatusBadRequest, "expected a multipart form upload")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile(fieldFile)
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing 'file' field")
		return
	}
	defer func() { _ = file.Close() }()

	parts, err := ParseParts(r.URL.Query().Get("parts"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	attachments := r.MultipartForm.Value[fieldAttachment]
	report, err := s.pipeline.ValidateReader(r.Context(), header.Filename, file, attachments)
	if err != nil {
		status := statusFor(err)
		s.logger.Warn("upload rejected", zap.String("file", header.Filename), zap.Int("status", status), zap.Error(err))
		writeError(w, status, err.Error())
		return
	}

	if len(parts) > 0 {
		report = FilterParts(report, parts, s.pipeline.Scorer().Summarize)
	}

	renderer := s.pipeline.Renderer()
	switch r.URL.Query().Get("format") {
	case "html":
		body, err := renderer.HTML(report)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "render report")
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(body)
	case "md", "markdown":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		_, _ = w.Write(renderer.Markdown(report))
	case "", "json":
		w.Header().Set("Content-Type", "application/json")
		_ = renderer.WriteJSON(w, report)
	default:
		writeError(w, http.StatusBadRequest, "format must be json, md or html")
	}
}

// statusFor maps a pipeline error to an HTTP status
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, document.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, document.ErrTooLarge), errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		// Empty or unreadable documents
		return http.StatusUnprocessableEntity
	}
}

// ParseParts reads a parts filter such as "0,1,2" or "Part 0,Part 10".
// An empty filter selects every part.
func ParseParts(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var parts []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if !strings.HasPrefix(p, "Part ") {
			p = "Part " + p
		}
		if !slices.Contains(model.SectionOrder, p) {
			return nil, fmt.Errorf("unknown part %q", p)
		}
		if !slices.Contains(parts, p) {
			parts = append(parts, p)
		}
	}
	return parts, nil
}

// FilterParts returns a copy of report holding only the named parts, with
// the summary recomputed over them
func FilterParts(report *model.Report, parts []string, summarize func(map[string]model.FindingSet) model.Summary) *model.Report {
	filtered := *report
	filtered.Parts = make(map[string]model.FindingSet, len(parts))
	for _, name := range parts {
		if fs, ok := report.Parts[name]; ok {
			filtered.Parts[name] = fs
		}
	}
	filtered.Summary = summarize(filtered.Parts)
	return &filtered
}

// cors allows the configured origins. "*" allows any origin.
func cors(allowed []string) func(http.Handler) http.Handler {
	anyOrigin := slices.Contains(allowed, "*")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && (anyOrigin || slices.Contains(allowed, origin)) {
				if anyOrigin {
					w.Header().Set("Access-Control-Allow-Origin", "*")
				} else {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Add("Vary", "Origin")
				}
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
