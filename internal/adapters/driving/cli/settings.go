package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/regscan/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change OCR, rendering, concurrency and download settings.
Settings are stored in config.toml under $REGSCAN_HOME (default ~/.regscan).`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change one setting. Durations use Go syntax such as 90s or 30m.

Keys:
  ocr.language            Tesseract language, e.g. eng or eng+fra
  ocr.workers             pages recognised at once
  raster.dpi              render resolution (72-1200)
  batch.concurrency       documents processed at once
  batch.document_timeout  time limit per document, 0s disables
  fetch.rate              requests per second
  fetch.burst             request burst size
  fetch.timeout           time limit per HTTP request
  fetch.fed_base_url      prefix for relative Federal Reserve links
  fetch.user_agent        HTTP User-Agent
  storage.documents_dir   where merged PDFs are saved`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[OCR]")
	cmd.Printf("  Language: %s\n", settings.OCR.Language)
	cmd.Printf("  Workers: %d\n", settings.OCR.Workers)
	cmd.Println()

	cmd.Println("[Raster]")
	cmd.Printf("  DPI: %d\n", settings.Raster.DPI)
	cmd.Println()

	cmd.Println("[Batch]")
	cmd.Printf("  Concurrency: %d\n", settings.Batch.Concurrency)
	cmd.Printf("  Document timeout: %s\n", formatTimeout(settings.Batch))
	cmd.Println()

	cmd.Println("[Fetch]")
	cmd.Printf("  Rate: %g req/s (burst %d)\n", settings.Fetch.Rate, settings.Fetch.Burst)
	cmd.Printf("  Timeout: %s\n", settings.Fetch.Timeout)
	cmd.Printf("  FED base URL: %s\n", settings.Fetch.FEDBaseURL)
	cmd.Printf("  User agent: %s\n", settings.Fetch.UserAgent)
	cmd.Println()

	cmd.Println("[Storage]")
	dir := settings.Storage.DocumentsDir
	if dir == "" {
		dir = "(default)"
	}
	cmd.Printf("  Documents: %s\n", dir)

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return err
		}
		return fmt.Errorf("failed to save setting: %w", err)
	}
	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}

func formatTimeout(b domain.BatchSettings) string {
	if b.DocumentTimeout == 0 {
		return "none"
	}
	return b.DocumentTimeout.String()
}
