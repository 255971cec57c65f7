package occ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/regscan/internal/core/domain"
	"github.com/custodia-labs/regscan/internal/core/ports/driven"
)

func rows() []driven.Row {
	return []driven.Row{
		{ColumnOrder: "AA-EC-2015-1", ColumnLink: "https://occ.gov/1.pdf", ColumnInstitution: "Alpha NA", ColumnRecordID: "100"},
		{ColumnOrder: "AA-EC-2015-2", ColumnLink: "https://occ.gov/2.pdf", ColumnInstitution: "Beta NA", ColumnRecordID: "101"},
	}
}

func TestResolver_Metadata(t *testing.T) {
	r := New()
	assert.Equal(t, domain.RegulatorOCC, r.Regulator())
	assert.Equal(t, "OCC.xlsx", r.DefaultTable())
}

func TestResolver_All(t *testing.T) {
	records, err := New().All(rows())

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "100", records[0].RecordID)
	assert.Equal(t, "Beta NA", records[1].Institution)
}

func TestResolver_Lookup(t *testing.T) {
	t.Run("finds by order number", func(t *testing.T) {
		records, err := New().Lookup(rows(), "AA-EC-2015-2")

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, domain.SourceRecord{
			RecordID:    "101",
			Institution: "Beta NA",
			Link:        "https://occ.gov/2.pdf",
			Regulator:   domain.RegulatorOCC,
		}, records[0])
	})

	t.Run("order numbers match exactly", func(t *testing.T) {
		_, err := New().Lookup(rows(), "aa-ec-2015-2")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
