// Package cli implements the regscan command line.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/regscan/internal/core/ports/driving"
	"github.com/custodia-labs/regscan/internal/logger"
)

// version is set at build time with -ldflags "-X .../cli.version=...".
var version = "dev"

var verbose bool

// Services used by the commands. Set by SetServices before Execute.
var (
	batchService    driving.BatchService
	localBatch      func(dir string) driving.BatchService
	lookupService   driving.LookupService
	runService      driving.RunService
	settingsService driving.SettingsService
	engines         []Engine
)

// Engine describes a native engine linked into the binary.
type Engine struct {
	Name      string
	Available bool
	// Version is empty when the engine does not report one.
	Version string
}

// Services holds the driving ports the commands call.
type Services struct {
	// Batch downloads documents over HTTP.
	Batch driving.BatchService

	// LocalBatch returns a batch service reading <RecordID>.pdf from dir.
	LocalBatch func(dir string) driving.BatchService

	Lookup   driving.LookupService
	Runs     driving.RunService
	Settings driving.SettingsService

	// Engines are listed by the version command.
	Engines []Engine
}

// SetServices wires the commands to their services.
func SetServices(s Services) {
	batchService = s.Batch
	localBatch = s.LocalBatch
	lookupService = s.Lookup
	runService = s.Runs
	settingsService = s.Settings
	engines = s.Engines
}

// Version returns the build version.
func Version() string {
	return version
}

var rootCmd = &cobra.Command{
	Use:   "regscan",
	Short: "Extract dated and keyword sentences from enforcement actions",
	Long: `regscan downloads bank enforcement actions published by the FDIC, OCC
and Federal Reserve, reads the scanned PDFs with OCR and reports every
sentence that carries a date in the requested range or one of the
requested keywords.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print pipeline diagnostics to stderr")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
