package document

import (
	"regexp"
	"strings"
)

var (
	markdownHeading  = regexp.MustCompile(`^\s{0,3}#{1,6}\s+`)
	markdownEmphasis = strings.NewReplacer("**", "", "__", "")
)

// parseText returns one paragraph per line
func parseText(data []byte) []string {
	text := strings.TrimPrefix(string(data), "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// parseMarkdown is parseText with heading markers and bold markers removed,
// so "## Part 1: Cover Sheet" and "**Name:** X" read as in the form
func parseMarkdown(data []byte) []string {
	lines := parseText(data)
	for i, ln := range lines {
		ln = markdownHeading.ReplaceAllString(ln, "")
		lines[i] = markdownEmphasis.Replace(ln)
	}
	return lines
}
