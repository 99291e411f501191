package validate

import (
	"regexp"
	"strings"

	"github.com/nurgulresearch/irec/internal/extract"
	"github.com/nurgulresearch/irec/internal/model"
)

// checklistLine matches "<label> <glyph>" and "<glyph> <label>"
var checklistLine = regexp.MustCompile(`^(?:([☑☒☐])\s*(.+?)|(.+?)\s*([☑☒☐]))$`)

// ChecklistItem is one line of the application checklist
type ChecklistItem struct {
	Label   string
	Checked bool
}

// ParseChecklist parses the checklist lines following the checklist header.
// Lines without a glyph are ignored. A label listed twice counts as checked
// if any of its lines is checked.
func ParseChecklist(text string) []ChecklistItem {
	var items []ChecklistItem
	index := make(map[string]int)

	for _, raw := range strings.Split(text, "\n") {
		ln := strings.TrimSpace(raw)
		if ln == "" || strings.Contains(ln, MarkerChecklist) {
			continue
		}

		m := checklistLine.FindStringSubmatch(ln)
		if m == nil {
			continue
		}

		label, glyph := m[2], m[1]
		if glyph == "" {
			label, glyph = m[3], m[4]
		}
		label = strings.TrimSpace(label)
		checked := glyph != extract.GlyphUnmarked

		key := formKey(label)
		if i, ok := index[key]; ok {
			items[i].Checked = items[i].Checked || checked
			continue
		}
		index[key] = len(items)
		items = append(items, ChecklistItem{Label: label, Checked: checked})
	}

	return items
}

// ReconcileChecklist checks every distinct required form against the
// checklist, then flags checked items no rule asked for
func ReconcileChecklist(forms []model.RequiredForm, items []ChecklistItem) model.FindingSet {
	fs := model.NewFindingSet()

	byKey := make(map[string]ChecklistItem, len(items))
	for _, item := range items {
		byKey[formKey(item.Label)] = item
	}

	required := make(map[string]bool, len(forms))
	for _, f := range DistinctForms(forms) {
		key := formKey(f.Form)
		required[key] = true

		item, ok := byKey[key]
		switch {
		case !ok:
			fs.Errorf("Required form '%s' not in checklist.", f.Form)
		case !item.Checked:
			fs.Errorf("Required form '%s' not checked in checklist.", f.Form)
		default:
			fs.Infof("Required form '%s' checked in checklist.", f.Form)
		}
	}

	for _, item := range items {
		if item.Checked && !required[formKey(item.Label)] {
			fs.Warnf("Checklist item '%s' checked but not required.", item.Label)
		}
	}

	return fs
}
