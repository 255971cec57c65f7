package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRun_DurationAndSucceeded(t *testing.T) {
	start := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)
	r := &Run{
		StartedAt: start,
		Documents: 3,
		Failures:  []DocumentFailure{{RecordID: "2", Error: "boom"}},
	}

	assert.Zero(t, r.Duration(), "unfinished run has no duration")
	assert.Equal(t, 2, r.Succeeded())

	r.FinishedAt = start.Add(90 * time.Second)
	assert.Equal(t, 90*time.Second, r.Duration())
}

func TestRun_Summary(t *testing.T) {
	r := &Run{
		ID:        "run-1",
		Mode:      RunModeLookup,
		Regulator: RegulatorFDIC,
		Key:       "FDIC-01-123",
		Documents: 2,
		Records:   []OutputRecord{{RecordID: "1"}, {RecordID: "1"}, {RecordID: "2"}},
		Failures:  []DocumentFailure{{RecordID: "3"}},
	}

	s := r.Summary()
	assert.Equal(t, "run-1", s.ID)
	assert.Equal(t, RunModeLookup, s.Mode)
	assert.Equal(t, "FDIC-01-123", s.Key)
	assert.Equal(t, 3, s.Records)
	assert.Equal(t, 1, s.Failures)
}
