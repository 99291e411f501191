package extract

// Checkbox glyphs as they appear in the questionnaire
const (
	GlyphMarked    = "☑"
	GlyphMarkedAlt = "☒" // Word content-control checkboxes render as a crossed box
	GlyphUnmarked  = "☐"
)

// Option is a labelled choice carrying a checkbox glyph
type Option string

const (
	OptionYes Option = "Yes"
	OptionNo  Option = "No"
	OptionNA  Option = "N/A"
)

// YesNo is the default option set for a question
var YesNo = []Option{OptionYes, OptionNo}

// State describes how an answer was found
type State int

const (
	StateMissing   State = iota // Anchor or option line not found
	StateUnmarked               // Options found, none marked
	StateAmbiguous              // More than one option marked
	StateMarked                 // Exactly one option marked
)

func (s State) String() string {
	switch s {
	case StateUnmarked:
		return "unmarked"
	case StateAmbiguous:
		return "ambiguous"
	case StateMarked:
		return "marked"
	default:
		return "missing"
	}
}

// AnswerToken is the decoded answer to a checkbox question
type AnswerToken struct {
	Option Option `json:"option,omitempty"`
	State  State  `json:"state"`
}

// Found reports whether the question's options were located
func (a AnswerToken) Found() bool {
	return a.State != StateMissing
}

// Answered reports whether exactly one option is marked
func (a AnswerToken) Answered() bool {
	return a.State == StateMarked
}

// Is reports whether the given option is the marked answer
func (a AnswerToken) Is(opt Option) bool {
	return a.State == StateMarked && a.Option == opt
}

// String renders the token the way it reads in the document, e.g. "Yes ☑"
func (a AnswerToken) String() string {
	switch a.State {
	case StateMarked:
		return string(a.Option) + " " + GlyphMarked
	case StateUnmarked:
		return string(a.Option) + " " + GlyphUnmarked
	case StateAmbiguous:
		return "multiple " + GlyphMarked
	default:
		return ""
	}
}

func isMarkedGlyph(g string) bool {
	return g == GlyphMarked || g == GlyphMarkedAlt
}
