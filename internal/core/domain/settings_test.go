package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, "eng", s.OCR.Language)
	assert.GreaterOrEqual(t, s.OCR.Workers, 1)
	assert.Equal(t, 500, s.Raster.DPI)
	assert.Equal(t, 2, s.Batch.Concurrency)
	assert.Equal(t, DefaultFEDBaseURL, s.Fetch.FEDBaseURL)
	assert.NoError(t, s.Validate())
}

func TestAppSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppSettings)
	}{
		{"empty language", func(s *AppSettings) { s.OCR.Language = "" }},
		{"zero ocr workers", func(s *AppSettings) { s.OCR.Workers = 0 }},
		{"dpi too low", func(s *AppSettings) { s.Raster.DPI = 10 }},
		{"dpi too high", func(s *AppSettings) { s.Raster.DPI = 5000 }},
		{"zero concurrency", func(s *AppSettings) { s.Batch.Concurrency = 0 }},
		{"negative timeout", func(s *AppSettings) { s.Batch.DocumentTimeout = -1 }},
		{"zero rate", func(s *AppSettings) { s.Fetch.Rate = 0 }},
		{"zero burst", func(s *AppSettings) { s.Fetch.Burst = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultAppSettings()
			tt.mutate(&s)
			assert.ErrorIs(t, s.Validate(), ErrInvalidInput)
		})
	}
}
