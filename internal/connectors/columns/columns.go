// Package columns holds helpers shared by the regulator table resolvers.
package columns

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/regscan/internal/core/domain"
	"github.com/custodia-labs/regscan/internal/core/ports/driven"
)

// Require checks that the table has every named column. An empty table
// passes.
func Require(rows []driven.Row, names ...string) error {
	if len(rows) == 0 {
		return nil
	}
	for _, name := range names {
		if _, ok := rows[0][name]; !ok {
			return fmt.Errorf("%w: table has no %q column", domain.ErrInvalidInput, name)
		}
	}
	return nil
}

// RecordID returns the row's value for column, or the 1-based row number
// when the column is absent or empty.
func RecordID(row driven.Row, column string, index int) string {
	if id := strings.TrimSpace(row[column]); id != "" {
		return id
	}
	return strconv.Itoa(index + 1)
}

// NotFound is the error returned when no row carries key.
func NotFound(r domain.Regulator, key string) error {
	return fmt.Errorf("%w: no %s row with %s %q", domain.ErrNotFound, r, r.KeyName(), key)
}
