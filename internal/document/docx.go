package document

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// symbolGlyphs maps checkbox characters of symbol fonts to Unicode glyphs.
// Word stores them as w:sym with a private-use code (0xF000 + char).
var symbolGlyphs = map[string]map[rune]string{
	"wingdings": {
		0xA8: "☐",
		0xFD: "☒",
		0xFE: "☑",
	},
	"wingdings 2": {
		0x52: "☑",
		0x54: "☒",
		0xA3: "☐",
	},
}

// parseDocx reads word/document.xml and returns one string per paragraph.
// Tabs and breaks inside a paragraph are kept as "\t" and "\n".
func parseDocx(data []byte) ([]string, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}

	var docFile *zip.File
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return nil, fmt.Errorf("word/document.xml not found in archive")
	}

	rc, err := docFile.Open()
	if err != nil {
		return nil, fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var paragraphs []string
	var current strings.Builder
	depth := 0 // Nesting of w:p; text boxes nest paragraphs
	inText := false

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				if depth == 0 {
					current.Reset()
				}
				depth++
			case "t":
				inText = depth > 0
			case "tab":
				if depth > 0 {
					current.WriteByte('\t')
				}
			case "br", "cr":
				if depth > 0 {
					current.WriteByte('\n')
				}
			case "sym":
				if depth > 0 {
					current.WriteString(symbolGlyph(t.Attr))
				}
			}

		case xml.CharData:
			if inText {
				current.Write(t)
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if depth == 0 {
					continue
				}
				depth--
				if depth == 0 {
					paragraphs = append(paragraphs, current.String())
				}
			}
		}
	}

	return paragraphs, nil
}

// symbolGlyph translates a w:sym element, or returns "" for symbols that
// are not checkboxes
func symbolGlyph(attrs []xml.Attr) string {
	var font, char string
	for _, a := range attrs {
		switch a.Name.Local {
		case "font":
			font = strings.ToLower(a.Value)
		case "char":
			char = a.Value
		}
	}

	code, err := strconv.ParseUint(char, 16, 32)
	if err != nil {
		return ""
	}
	// Symbol fonts use the private-use range F000-F0FF
	if code >= 0xF000 {
		code -= 0xF000
	}
	return symbolGlyphs[font][rune(code)]
}
