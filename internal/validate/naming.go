package validate

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/nurgulresearch/irec/internal/model"
)

// dateStamp is the MMDDYYYY date that ends every protocol file name
const dateStamp = "01022006"

// namingProtocol holds the file-name patterns for one applicant surname
type namingProtocol struct {
	surname  string
	main     *regexp.Regexp // {Surname}_IREC Application_{MMDDYYYY}
	training *regexp.Regexp // {Surname}_{CITI|TRREE}_{MMDDYYYY}
	document *regexp.Regexp // {Surname}_{Description}-{Eng|Ru|Kz}_{MMDDYYYY}
}

func newNamingProtocol(surname string) namingProtocol {
	s := regexp.QuoteMeta(surname)
	return namingProtocol{
		surname:  surname,
		main:     regexp.MustCompile(`^` + s + `_IREC Application_(\d{8})$`),
		training: regexp.MustCompile(`^` + s + `_(CITI|TRREE)_(\d{8})$`),
		document: regexp.MustCompile(`^` + s + `_(.+)-(Eng|Ru|Kz)_(\d{8})$`),
	}
}

// CheckNaming validates candidate file names against the naming protocol
// for the given surname
func CheckNaming(surname string, fileNames []string) model.FindingSet {
	fs := model.NewFindingSet()

	if surname == "" {
		fs.Errorf("PI surname could not be determined from Part 2; naming protocol check skipped.")
		return fs
	}
	if len(fileNames) == 0 {
		fs.Infof("No file names supplied; naming protocol check skipped.")
		return fs
	}

	p := newNamingProtocol(surname)
	mainFound := false
	for _, name := range fileNames {
		base := filepath.Base(name)
		stem := strings.TrimSuffix(base, filepath.Ext(base))

		var date string
		if m := p.main.FindStringSubmatch(stem); m != nil {
			mainFound = true
			date = m[1]
			fs.Infof("File '%s' follows the main application naming pattern.", base)
		} else if m := p.training.FindStringSubmatch(stem); m != nil {
			date = m[2]
			fs.Infof("File '%s' follows the training certificate naming pattern (%s).", base, m[1])
		} else if m := p.document.FindStringSubmatch(stem); m != nil {
			date = m[3]
			fs.Infof("File '%s' follows the document naming pattern (%s, %s).", base, m[1], m[2])
		} else {
			fs.Errorf("File '%s' does not follow the naming protocol for surname '%s'.", base, surname)
			continue
		}

		if _, err := time.Parse(dateStamp, date); err != nil {
			fs.Errorf("File '%s' has an invalid date '%s' (expected MMDDYYYY).", base, date)
		}
	}

	if !mainFound {
		fs.Errorf("Main application file not found (expected '%s_IREC Application_MMDDYYYY').", surname)
	}

	return fs
}

// NamingAndChecklist validates Part 11: the naming protocol and the
// application checklist
func NamingAndChecklist(c Context) (model.FindingSet, Context) {
	fs := model.NewFindingSet()

	loc, ok := section(c, MarkerNaming, MarkerChecklist)
	if !ok {
		fs.NotFound("Part 11: Protocol for naming of documents section not found.")
		return fs, c
	}

	merge(&fs, CheckNaming(c.PISurname, c.FileNames))

	checklist := loc.Block(MarkerChecklist, "")
	if !checklist.Found() {
		fs.Errorf("Application Checklist not found.")
		return fs, c
	}
	merge(&fs, ReconcileChecklist(c.Forms, ParseChecklist(checklist.Text())))

	return fs, c
}

func merge(dst *model.FindingSet, src model.FindingSet) {
	dst.Errors = append(dst.Errors, src.Errors...)
	dst.Warnings = append(dst.Warnings, src.Warnings...)
	dst.Info = append(dst.Info, src.Info...)
}
