package extract

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// CountWords counts runs of letters, digits and underscores
func CountWords(text string) int {
	return len(strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	}))
}

// ParseDate parses an MM/DD/YYYY date (single-digit month and day accepted)
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"01/02/2006", "1/2/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse date %q: want MM/DD/YYYY", s)
}

// ParseMonth parses an MM/YYYY month
func ParseMonth(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"01/2006", "1/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse month %q: want MM/YYYY", s)
}

// MonthsBetween returns the number of calendar months from start to end
func MonthsBetween(start, end time.Time) int {
	return (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
}

// ValidEmail reports whether s has the local@domain.tld shape
func ValidEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// TrainingCurrent reports whether a certificate completed on the given date is
// still valid at now. Dates strictly before the calendar day exactly `years`
// years before now are expired.
func TrainingCurrent(completed, now time.Time, years int) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	cutoff := today.AddDate(-years, 0, 0)
	day := time.Date(completed.Year(), completed.Month(), completed.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(cutoff)
}
