package services

import (
	"errors"
	"time"

	"github.com/custodia-labs/regscan/internal/core/domain"
)

// ReportFilter applies FilterCriteria to matches and shapes the survivors
// into report rows. It holds no state.
type ReportFilter struct{}

// NewReportFilter creates a report filter.
func NewReportFilter() *ReportFilter {
	return &ReportFilter{}
}

// Filter returns the records for matches that pass criteria, in match order.
// Keyword matches always pass. A date match whose value cannot be parsed
// is dropped and reported as a *domain.DateParseError; the remaining
// matches are unaffected and the errors are returned joined.
func (f *ReportFilter) Filter(
	record domain.SourceRecord,
	matches []domain.Match,
	criteria domain.FilterCriteria,
) ([]domain.OutputRecord, error) {
	var (
		out  []domain.OutputRecord
		errs []error
	)
	for _, m := range matches {
		if m.IsDate() {
			d, err := ParseMatchDate(m.Value)
			if err != nil {
				errs = append(errs, &domain.DateParseError{RecordID: record.RecordID, Value: m.Value, Err: err})
				continue
			}
			if !criteria.Includes(d) {
				continue
			}
		}
		out = append(out, domain.OutputRecord{
			RecordID:       record.RecordID,
			Institution:    record.Institution,
			KeyInformation: m.Value,
			Sentence:       m.Sentence,
		})
	}
	return out, errors.Join(errs...)
}

// ParseMatchDate parses a scanned date such as "January 5, 2015".
func ParseMatchDate(s string) (time.Time, error) {
	return time.Parse(domain.MatchDateLayout, collapseSpace(s))
}
