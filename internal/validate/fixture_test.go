package validate

import (
	"os"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/nurgulresearch/irec/internal/model"
)

// fixedNow is the validation date used by every test
var fixedNow = time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)

var fixtureFiles = []string{
	"Smith_IREC Application_02202026.docx",
	"Smith_CITI_01152025.pdf",
	"Smith_Consent Form-Eng_02202026.docx",
}

// loadFixture returns the sample application, one paragraph per line
func loadFixture(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile("testdata/application.txt")
	if err != nil {
		t.Fatalf("Failed to read fixture: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

// edit returns a copy of paragraphs with the first paragraph starting with
// prefix replaced. Replacing with "" removes the paragraph.
func edit(t *testing.T, paragraphs []string, prefix, replacement string) []string {
	t.Helper()
	out := slices.Clone(paragraphs)
	for i, p := range out {
		if strings.HasPrefix(p, prefix) {
			if replacement == "" {
				return slices.Delete(out, i, i+1)
			}
			out[i] = replacement
			return out
		}
	}
	t.Fatalf("No paragraph starts with %q", prefix)
	return nil
}

// setAnswer replaces the paragraph that follows the one starting with anchor
func setAnswer(t *testing.T, paragraphs []string, anchor, answer string) []string {
	t.Helper()
	out := slices.Clone(paragraphs)
	for i, p := range out {
		if strings.HasPrefix(p, anchor) && i+1 < len(out) {
			out[i+1] = answer
			return out
		}
	}
	t.Fatalf("No paragraph starts with %q", anchor)
	return nil
}

func newTestContext(paragraphs, fileNames []string) Context {
	return NewContext(paragraphs, fileNames, fixedNow, model.DefaultRules())
}

// runStages runs every stage in order and returns the findings per section
// together with the final context
func runStages(paragraphs, fileNames []string) (map[string]model.FindingSet, Context) {
	c := newTestContext(paragraphs, fileNames)
	parts := make(map[string]model.FindingSet)
	for _, stage := range Stages() {
		var fs model.FindingSet
		fs, c = stage.Run(c)
		parts[stage.Name] = fs
	}
	return parts, c
}

func hasFinding(list []string, want string) bool {
	return slices.Contains(list, want)
}

func hasFindingPrefix(list []string, prefix string) bool {
	for _, f := range list {
		if strings.HasPrefix(f, prefix) {
			return true
		}
	}
	return false
}

func formNames(forms []model.RequiredForm) []string {
	names := make([]string, len(forms))
	for i, f := range forms {
		names[i] = f.Form
	}
	return names
}
