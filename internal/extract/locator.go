package extract

import (
	"regexp"
	"slices"
	"strings"
	"sync"
)

var (
	naToken     = regexp.MustCompile(`(?:^|[^\pL\pN])N/A[ \t]*[☑☒☐]`)
	glyphAfter  = regexp.MustCompile(`^[ \t]*([☑☒☐])`)
	glyphBefore = regexp.MustCompile(`([☑☒☐])[ \t]*$`)
	labelLine   = regexp.MustCompile(`^\pL[^:\n]{0,80}:(?:\s|$)`)

	optionPatterns sync.Map // joined options -> *regexp.Regexp
)

// Locator finds answers inside the text of one questionnaire section.
// Every lookup is bounded by the anchors the locator was declared with:
// a value never runs past the next declared anchor.
type Locator interface {
	// Found reports whether the section text is non-empty
	Found() bool
	// Text returns the raw section text
	Text() string
	// Contains reports whether any keyword occurs, case-insensitively
	Contains(keywords ...string) bool
	// Answer decodes the checkbox options following anchor
	Answer(anchor string, options ...Option) AnswerToken
	// NotApplicable decodes the N/A checkbox following anchor
	NotApplicable(anchor string) AnswerToken
	// Checkbox reports the glyph adjacent to label
	Checkbox(label string) (checked, ok bool)
	// Line returns the single-line value following anchor
	Line(anchor string) (string, bool)
	// Field returns the narrative text between anchor and the next anchor
	Field(anchor string) (string, bool)
	// Block narrows the locator to the text from start up to end
	Block(start, end string) Locator
	// Blocks splits the text into repeated blocks each opened by header
	Blocks(header, end string) []Locator
}

// TextLocator is a Locator over plain section text
type TextLocator struct {
	text    string
	lower   string
	anchors []string
}

var _ Locator = (*TextLocator)(nil)

// NewLocator creates a locator over text with the given declared anchors
func NewLocator(text string, anchors ...string) *TextLocator {
	text = Normalize(text)
	return &TextLocator{
		text:    text,
		lower:   strings.ToLower(text),
		anchors: anchors,
	}
}

func (l *TextLocator) sub(text string) *TextLocator {
	return &TextLocator{text: text, lower: strings.ToLower(text), anchors: l.anchors}
}

// Found reports whether the section text is non-empty
func (l *TextLocator) Found() bool {
	return strings.TrimSpace(l.text) != ""
}

// Text returns the raw section text
func (l *TextLocator) Text() string {
	return l.text
}

// Contains reports whether any keyword occurs, case-insensitively
func (l *TextLocator) Contains(keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(l.lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// Answer decodes the options after anchor up to the next declared anchor.
// Without options it decodes Yes/No.
func (l *TextLocator) Answer(anchor string, options ...Option) AnswerToken {
	if len(options) == 0 {
		options = YesNo
	}

	idx := strings.Index(l.text, anchor)
	if idx < 0 {
		return AnswerToken{}
	}

	from := idx + len(anchor)
	return decodeAnswer(l.text[from:l.nextAnchor(from)], options)
}

// NotApplicable decodes the N/A checkbox after anchor
func (l *TextLocator) NotApplicable(anchor string) AnswerToken {
	return l.Answer(anchor, OptionNA)
}

// Checkbox looks for a glyph right after label on the same line, then right
// before it.
func (l *TextLocator) Checkbox(label string) (checked, ok bool) {
	idx := strings.Index(l.text, label)
	if idx < 0 {
		return false, false
	}

	if m := glyphAfter.FindStringSubmatch(l.text[idx+len(label):]); m != nil {
		return isMarkedGlyph(m[1]), true
	}

	lineStart := strings.LastIndexByte(l.text[:idx], '\n') + 1
	if m := glyphBefore.FindStringSubmatch(l.text[lineStart:idx]); m != nil {
		return isMarkedGlyph(m[1]), true
	}

	return false, false
}

// Line returns the rest of the anchor's line. When that is empty the next
// line is used unless it holds a declared anchor or is a label of its own.
func (l *TextLocator) Line(anchor string) (string, bool) {
	idx := strings.Index(l.text, anchor)
	if idx < 0 {
		return "", false
	}

	rest, after := splitLine(l.text[idx+len(anchor):])
	value := cleanValue(trimQualifier(anchor, rest))
	if value == "" && after != "" {
		next, _ := splitLine(after)
		if !l.hasAnchor(next) && !isLabel(next) {
			value = cleanValue(next)
		}
	}

	return value, true
}

// Field returns the text from the line after anchor up to the line holding
// the next declared anchor. For anchors ending in a colon the rest of the
// anchor's own line is included.
func (l *TextLocator) Field(anchor string) (string, bool) {
	idx := strings.Index(l.text, anchor)
	if idx < 0 {
		return "", false
	}

	from := idx + len(anchor)
	inline, _ := splitLine(l.text[from:])
	if !strings.HasSuffix(anchor, ":") {
		inline = ""
	}

	nl := strings.IndexByte(l.text[from:], '\n')
	if nl < 0 {
		return cleanValue(inline), true
	}

	body := from + nl + 1
	end := l.nextAnchor(body)
	if end < len(l.text) {
		end = max(strings.LastIndexByte(l.text[:end], '\n')+1, body)
	}

	return cleanValue(inline + "\n" + l.text[body:end]), true
}

// Block narrows to the text from start up to the first end after it.
// An empty end runs to the end of the text.
func (l *TextLocator) Block(start, end string) Locator {
	idx := strings.Index(l.text, start)
	if idx < 0 {
		return l.sub("")
	}

	stop := len(l.text)
	if end != "" {
		if j := strings.Index(l.text[idx+len(start):], end); j >= 0 {
			stop = idx + len(start) + j
		}
	}

	return l.sub(l.text[idx:stop])
}

// Blocks returns one locator per occurrence of header. Each block runs to
// the next header, the first end after it, or the end of the text.
func (l *TextLocator) Blocks(header, end string) []Locator {
	var starts []int
	for off := 0; ; {
		j := strings.Index(l.text[off:], header)
		if j < 0 {
			break
		}
		starts = append(starts, off+j)
		off += j + len(header)
	}

	blocks := make([]Locator, 0, len(starts))
	for i, start := range starts {
		stop := len(l.text)
		if i+1 < len(starts) {
			stop = starts[i+1]
		}
		if end != "" {
			if j := strings.Index(l.text[start+len(header):stop], end); j >= 0 {
				stop = start + len(header) + j
			}
		}
		blocks = append(blocks, l.sub(l.text[start:stop]))
	}

	return blocks
}

// nextAnchor returns the index of the earliest declared anchor at or after from
func (l *TextLocator) nextAnchor(from int) int {
	next := len(l.text)
	for _, a := range l.anchors {
		if j := strings.Index(l.text[from:], a); j >= 0 && from+j < next {
			next = from + j
		}
	}
	return next
}

func (l *TextLocator) hasAnchor(line string) bool {
	for _, a := range l.anchors {
		if strings.Contains(line, a) {
			return true
		}
	}
	return false
}

func decodeAnswer(window string, options []Option) AnswerToken {
	matches := optionPattern(options).FindAllStringSubmatch(window, -1)
	if len(matches) == 0 {
		return AnswerToken{}
	}

	var marked []Option
	for _, m := range matches {
		if isMarkedGlyph(m[2]) {
			marked = append(marked, Option(m[1]))
		}
	}

	switch len(marked) {
	case 0:
		return AnswerToken{Option: Option(matches[0][1]), State: StateUnmarked}
	case 1:
		return AnswerToken{Option: marked[0], State: StateMarked}
	default:
		return AnswerToken{State: StateAmbiguous}
	}
}

// optionPattern matches "<option> <glyph>" tokens. Longer options are tried
// first so that "No dropdown menu" is never read as "No".
func optionPattern(options []Option) *regexp.Regexp {
	sorted := slices.Clone(options)
	slices.SortStableFunc(sorted, func(a, b Option) int {
		return len(b) - len(a)
	})

	quoted := make([]string, len(sorted))
	for i, o := range sorted {
		quoted[i] = regexp.QuoteMeta(string(o))
	}
	key := strings.Join(quoted, "|")

	if re, ok := optionPatterns.Load(key); ok {
		return re.(*regexp.Regexp)
	}

	re := regexp.MustCompile(`(?:^|[^\pL\pN])(` + key + `)[ \t]*([☑☒☐])`)
	optionPatterns.Store(key, re)
	return re
}

func splitLine(s string) (line, rest string) {
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		return s[:nl], s[nl+1:]
	}
	return s, ""
}

// trimQualifier drops a parenthetical qualifier and colon that follow an
// anchor written without its trailing colon, e.g. "(please specify):".
func trimQualifier(anchor, rest string) string {
	if strings.HasSuffix(anchor, ":") {
		return rest
	}

	t := strings.TrimSpace(rest)
	if strings.HasPrefix(t, ":") {
		return t[1:]
	}
	if strings.HasPrefix(t, "(") {
		if i := strings.Index(t, "):"); i >= 0 {
			return t[i+2:]
		}
	}

	return rest
}

// isLabel reports whether line starts with a "Label:" prompt
func isLabel(line string) bool {
	return labelLine.MatchString(strings.TrimSpace(line))
}

func cleanValue(s string) string {
	return strings.TrimSpace(naToken.ReplaceAllString(s, ""))
}
