// Command regscan extracts dated and keyword sentences from scanned bank
// enforcement actions.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/regscan/cgo/mupdf"
	"github.com/custodia-labs/regscan/cgo/tesseract"
	"github.com/custodia-labs/regscan/internal/adapters/driven/assembler"
	"github.com/custodia-labs/regscan/internal/adapters/driven/config/file"
	"github.com/custodia-labs/regscan/internal/adapters/driven/report"
	"github.com/custodia-labs/regscan/internal/adapters/driven/storage/files"
	"github.com/custodia-labs/regscan/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/regscan/internal/adapters/driven/table"
	"github.com/custodia-labs/regscan/internal/adapters/driving/cli"
	"github.com/custodia-labs/regscan/internal/connectors"
	"github.com/custodia-labs/regscan/internal/connectors/local"
	"github.com/custodia-labs/regscan/internal/connectors/web"
	"github.com/custodia-labs/regscan/internal/core/ports/driven"
	"github.com/custodia-labs/regscan/internal/core/ports/driving"
	"github.com/custodia-labs/regscan/internal/core/services"
	"github.com/custodia-labs/regscan/internal/normalisers/ocrtext"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	home, err := homeDir()
	if err != nil {
		return fail(err)
	}

	// 1. Settings
	configStore, err := file.NewConfigStore(home)
	if err != nil {
		return fail(fmt.Errorf("open config: %w", err))
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return fail(fmt.Errorf("load settings: %w", err))
	}

	// 2. Run history
	store, err := sqlite.NewStore(filepath.Join(home, "data"))
	if err != nil {
		return fail(fmt.Errorf("open run store: %w", err))
	}
	defer store.Close()

	// 3. Merged PDFs
	docsDir := settings.Storage.DocumentsDir
	if docsDir == "" {
		docsDir = filepath.Join(home, "documents")
	}
	docStore, err := files.NewDocumentStore(docsDir)
	if err != nil {
		return fail(fmt.Errorf("open documents dir: %w", err))
	}

	// 4. Extraction pipeline
	extraction := services.NewExtractionService(
		assembler.New(),
		mupdf.New(settings.Raster.DPI),
		tesseract.New(settings.OCR.Language),
		ocrtext.New(),
		docStore,
		settings.OCR.Workers,
	)

	// 5. Batch services, one per document source
	writer := report.NewCSVWriter()
	runStore := store.RunStore()
	opts := services.BatchOptions{
		Concurrency:     settings.Batch.Concurrency,
		DocumentTimeout: settings.Batch.DocumentTimeout,
	}
	newBatch := func(source driven.DocumentSource) driving.BatchService {
		return services.NewBatchService(source, extraction, runStore, writer, opts)
	}

	fetcher := web.NewFetcher(web.Config{
		BaseURL:   settings.Fetch.FEDBaseURL,
		UserAgent: settings.Fetch.UserAgent,
		Timeout:   settings.Fetch.Timeout,
		Rate:      settings.Fetch.Rate,
		Burst:     settings.Fetch.Burst,
	})

	cli.SetServices(cli.Services{
		Batch: newBatch(fetcher),
		LocalBatch: func(dir string) driving.BatchService {
			return newBatch(local.NewSource(dir))
		},
		Lookup:   services.NewLookupService(table.NewReader(), connectors.Builtin(settings.Fetch.FEDBaseURL)),
		Runs:     services.NewRunService(runStore, writer),
		Settings: settingsService,
		Engines: []cli.Engine{
			{Name: "MuPDF", Available: mupdf.Available()},
			{Name: "Tesseract", Available: tesseract.Available(), Version: tesseract.Version()},
		},
	})

	return cli.Execute()
}

// homeDir returns $REGSCAN_HOME, defaulting to ~/.regscan.
func homeDir() (string, error) {
	if dir := os.Getenv("REGSCAN_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot locate home directory: %w", err)
	}
	return filepath.Join(home, ".regscan"), nil
}

// fail prints a startup error. Command errors are printed by cobra.
func fail(err error) error {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return err
}
