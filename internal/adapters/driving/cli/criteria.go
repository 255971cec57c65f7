package cli

import (
	"fmt"

	"github.com/custodia-labs/regscan/internal/core/domain"
)

// parseCriteria builds FilterCriteria from command flags.
func parseCriteria(start, end, keywords string) (domain.FilterCriteria, error) {
	var c domain.FilterCriteria
	if start == "" {
		return c, fmt.Errorf("%w: --start is required", domain.ErrInvalidInput)
	}
	s, err := domain.ParseDate(start)
	if err != nil {
		return c, err
	}
	c.Start = s
	if end != "" {
		e, err := domain.ParseDate(end)
		if err != nil {
			return c, err
		}
		c.End = e
	}
	c.Keywords = domain.ParseKeywords(keywords)
	return c, c.Validate()
}
