package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/regscan/internal/core/domain"
	"github.com/custodia-labs/regscan/internal/core/ports/driven"
	"github.com/custodia-labs/regscan/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyOCRLanguage     = "ocr.language"
	KeyOCRWorkers      = "ocr.workers"
	KeyRasterDPI       = "raster.dpi"
	KeyBatchWorkers    = "batch.concurrency"
	KeyDocumentTimeout = "batch.document_timeout"
	KeyFetchRate       = "fetch.rate"
	KeyFetchBurst      = "fetch.burst"
	KeyFetchTimeout    = "fetch.timeout"
	KeyFEDBaseURL      = "fetch.fed_base_url"
	KeyUserAgent       = "fetch.user_agent"
	KeyDocumentsDir    = "storage.documents_dir"
)

// settingKeys is the display order of Keys.
var settingKeys = []string{
	KeyOCRLanguage,
	KeyOCRWorkers,
	KeyRasterDPI,
	KeyBatchWorkers,
	KeyDocumentTimeout,
	KeyFetchRate,
	KeyFetchBurst,
	KeyFetchTimeout,
	KeyFEDBaseURL,
	KeyUserAgent,
	KeyDocumentsDir,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Missing or malformed
// values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		OCR: domain.OCRSettings{
			Language: s.getString(KeyOCRLanguage, defaults.OCR.Language),
			Workers:  s.getInt(KeyOCRWorkers, defaults.OCR.Workers),
		},
		Raster: domain.RasterSettings{
			DPI: s.getInt(KeyRasterDPI, defaults.Raster.DPI),
		},
		Batch: domain.BatchSettings{
			Concurrency:     s.getInt(KeyBatchWorkers, defaults.Batch.Concurrency),
			DocumentTimeout: s.getDuration(KeyDocumentTimeout, defaults.Batch.DocumentTimeout),
		},
		Fetch: domain.FetchSettings{
			Rate:       s.getFloat(KeyFetchRate, defaults.Fetch.Rate),
			Burst:      s.getInt(KeyFetchBurst, defaults.Fetch.Burst),
			Timeout:    s.getDuration(KeyFetchTimeout, defaults.Fetch.Timeout),
			FEDBaseURL: s.getString(KeyFEDBaseURL, defaults.Fetch.FEDBaseURL),
			UserAgent:  s.getString(KeyUserAgent, defaults.Fetch.UserAgent),
		},
		Storage: domain.StorageSettings{
			DocumentsDir: s.getString(KeyDocumentsDir, defaults.Storage.DocumentsDir),
		},
	}

	return settings, nil
}

// Set parses value for key, validates the resulting settings and
// persists the value.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	// 1. Parse into the typed field
	value = strings.TrimSpace(value)
	var stored any
	switch key {
	case KeyOCRLanguage:
		settings.OCR.Language = value
		stored = value
	case KeyOCRWorkers:
		stored, err = parseInt(key, value, &settings.OCR.Workers)
	case KeyRasterDPI:
		stored, err = parseInt(key, value, &settings.Raster.DPI)
	case KeyBatchWorkers:
		stored, err = parseInt(key, value, &settings.Batch.Concurrency)
	case KeyDocumentTimeout:
		stored, err = parseDuration(key, value, &settings.Batch.DocumentTimeout)
	case KeyFetchRate:
		var f float64
		f, err = strconv.ParseFloat(value, 64)
		if err != nil {
			err = fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		settings.Fetch.Rate = f
		stored = f
	case KeyFetchBurst:
		stored, err = parseInt(key, value, &settings.Fetch.Burst)
	case KeyFetchTimeout:
		stored, err = parseDuration(key, value, &settings.Fetch.Timeout)
	case KeyFEDBaseURL:
		if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			return fmt.Errorf("%w: %s must be an http(s) URL", domain.ErrInvalidInput, key)
		}
		settings.Fetch.FEDBaseURL = value
		stored = value
	case KeyUserAgent:
		settings.Fetch.UserAgent = value
		stored = value
	case KeyDocumentsDir:
		settings.Storage.DocumentsDir = value
		stored = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	if err != nil {
		return err
	}

	// 2. Validate the whole set
	if err := settings.Validate(); err != nil {
		return err
	}

	// 3. Persist
	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys lists the supported config keys in display order.
func (s *SettingsService) Keys() []string {
	out := make([]string, len(settingKeys))
	copy(out, settingKeys)
	return out
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

// getDuration reads a Go duration string such as "30m".
func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}

func parseInt(key, value string, dst *int) (any, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
	}
	*dst = n
	return n, nil
}

func parseDuration(key, value string, dst *time.Duration) (any, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a duration such as 30m", domain.ErrInvalidInput, key)
	}
	*dst = d
	return d.String(), nil
}
