package extract

import "strings"

// quoteReplacer folds typographic quotes and spaces so anchors can be written in ASCII
var quoteReplacer = strings.NewReplacer(
	"“", `"`, // left double quotation mark
	"”", `"`, // right double quotation mark
	"„", `"`, // double low-9 quotation mark
	"‘", "'", // left single quotation mark
	"’", "'", // right single quotation mark
	" ", " ", // no-break space
)

// Normalize folds typographic quotes and no-break spaces to their ASCII forms
func Normalize(s string) string {
	return quoteReplacer.Replace(s)
}

// Slice returns the text of one section: every paragraph from the first one
// containing start (inclusive) up to the next one containing any of ends
// (exclusive), joined by newlines. Without ends it runs to end-of-stream. The
// result is empty when start never appears.
func Slice(paragraphs []string, start string, ends ...string) string {
	var buf strings.Builder
	in := false

	for _, para := range paragraphs {
		para = Normalize(para)
		if !in {
			if !strings.Contains(para, start) {
				continue
			}
			in = true
		} else if containsAny(para, ends) {
			break
		}

		buf.WriteString(para)
		buf.WriteByte('\n')
	}

	return buf.String()
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
