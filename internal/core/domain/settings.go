package domain

import (
	"fmt"
	"runtime"
	"time"
)

const unknownDescription = "Unknown"

// Defaults applied when a setting is absent from the config file.
const (
	DefaultOCRLanguage     = "eng"
	DefaultRasterDPI       = 500
	DefaultBatchWorkers    = 2
	DefaultDocumentTimeout = 30 * time.Minute
	DefaultFetchRate       = 2.0
	DefaultFetchBurst      = 1
	DefaultFetchTimeout    = 2 * time.Minute
	DefaultFEDBaseURL      = "https://www.federalreserve.gov/"
)

// OCRSettings configures text recognition.
type OCRSettings struct {
	// Language is the Tesseract language code, e.g. "eng".
	Language string

	// Workers bounds the number of pages recognised concurrently.
	Workers int
}

// RasterSettings configures page rendering.
type RasterSettings struct {
	// DPI is the render resolution. OCR accuracy on scanned orders
	// drops noticeably below 300.
	DPI int
}

// BatchSettings configures document-level concurrency.
type BatchSettings struct {
	// Concurrency bounds the number of documents processed at once.
	Concurrency int

	// DocumentTimeout caps the time spent on one document. Zero disables it.
	DocumentTimeout time.Duration
}

// FetchSettings configures remote document retrieval.
type FetchSettings struct {
	// Rate is the sustained request rate per second.
	Rate float64

	// Burst is the token bucket size.
	Burst int

	// Timeout caps a single HTTP request.
	Timeout time.Duration

	// FEDBaseURL is prefixed to relative links.
	FEDBaseURL string

	// UserAgent is sent with every request.
	UserAgent string
}

// StorageSettings configures where artifacts are written.
type StorageSettings struct {
	// DocumentsDir receives merged <RecordID>.pdf files. Empty means
	// $REGSCAN_HOME/documents.
	DocumentsDir string
}

// AppSettings holds all user-configurable settings.
type AppSettings struct {
	OCR     OCRSettings
	Raster  RasterSettings
	Batch   BatchSettings
	Fetch   FetchSettings
	Storage StorageSettings
}

// DefaultAppSettings returns the default settings.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		OCR: OCRSettings{
			Language: DefaultOCRLanguage,
			Workers:  runtime.NumCPU(),
		},
		Raster: RasterSettings{DPI: DefaultRasterDPI},
		Batch: BatchSettings{
			Concurrency:     DefaultBatchWorkers,
			DocumentTimeout: DefaultDocumentTimeout,
		},
		Fetch: FetchSettings{
			Rate:       DefaultFetchRate,
			Burst:      DefaultFetchBurst,
			Timeout:    DefaultFetchTimeout,
			FEDBaseURL: DefaultFEDBaseURL,
			UserAgent:  "regscan",
		},
	}
}

// Validate checks the settings are usable.
func (s AppSettings) Validate() error {
	switch {
	case s.OCR.Language == "":
		return fmt.Errorf("%w: ocr.language is required", ErrInvalidInput)
	case s.OCR.Workers < 1:
		return fmt.Errorf("%w: ocr.workers must be at least 1", ErrInvalidInput)
	case s.Raster.DPI < 72 || s.Raster.DPI > 1200:
		return fmt.Errorf("%w: raster.dpi must be between 72 and 1200", ErrInvalidInput)
	case s.Batch.Concurrency < 1:
		return fmt.Errorf("%w: batch.concurrency must be at least 1", ErrInvalidInput)
	case s.Batch.DocumentTimeout < 0:
		return fmt.Errorf("%w: batch.document_timeout must not be negative", ErrInvalidInput)
	case s.Fetch.Rate <= 0:
		return fmt.Errorf("%w: fetch.rate must be positive", ErrInvalidInput)
	case s.Fetch.Burst < 1:
		return fmt.Errorf("%w: fetch.burst must be at least 1", ErrInvalidInput)
	}
	return nil
}
