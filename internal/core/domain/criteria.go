package domain

import (
	"fmt"
	"strings"
	"time"
)

// MatchDateLayout is the layout of dates found in document text,
// e.g. "January 5, 2015".
const MatchDateLayout = "January 2, 2006"

// Accepted layouts for user-supplied range bounds. Day-first is what the
// regulator desks type; ISO is accepted for scripting.
var inputDateLayouts = []string{"2/1/2006", "2006-01-02"}

// FilterCriteria is supplied once per run and applied to every match.
// Start and End are inclusive calendar dates; the time of day is ignored.
type FilterCriteria struct {
	// Start is the first date included.
	Start time.Time

	// End is the last date included. Zero means unbounded.
	End time.Time

	// Keywords are matched case-insensitively. Empty disables keyword scanning.
	Keywords []string
}

// Validate checks the range is well formed.
func (c FilterCriteria) Validate() error {
	if !c.End.IsZero() && truncateDay(c.End).Before(truncateDay(c.Start)) {
		return fmt.Errorf("%w: end date %s is before start date %s",
			ErrInvalidInput, c.End.Format(time.DateOnly), c.Start.Format(time.DateOnly))
	}
	return nil
}

// Includes reports whether d falls within [Start, End].
func (c FilterCriteria) Includes(d time.Time) bool {
	d = truncateDay(d)
	if d.Before(truncateDay(c.Start)) {
		return false
	}
	if !c.End.IsZero() && d.After(truncateDay(c.End)) {
		return false
	}
	return true
}

// HasKeywords reports whether keyword scanning is enabled.
func (c FilterCriteria) HasKeywords() bool {
	return len(c.Keywords) > 0
}

// ParseDate parses a user-supplied range bound in DD/MM/YYYY or YYYY-MM-DD form.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range inputDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q is not a date (expected DD/MM/YYYY)", ErrInvalidInput, s)
}

// ParseKeywords splits a semicolon separated keyword list.
// Entries are trimmed and empty entries dropped.
func ParseKeywords(s string) []string {
	var out []string
	for _, k := range strings.Split(s, ";") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
