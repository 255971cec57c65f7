package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/regscan/internal/core/domain"
)

// defaultLookupStart is the earliest date reported by lookups.
const defaultLookupStart = "01/01/1990"

var (
	lookupTable    string
	lookupStart    string
	lookupEnd      string
	lookupKeywords string
	lookupOutput   string
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <fdic|occ|fed> <key>",
	Short: "Scan the enforcement actions matching one regulator key",
	Long: `Finds the rows of a regulator table matching a key and scans their
documents:

  fdic  key is a docket number (FDIC.csv)
  occ   key is an order number (OCC.xlsx)
  fed   key is the URL column value (FED.csv)

By default every date from 01/01/1990 onwards is reported.`,
	Example: `  regscan lookup fdic FDIC-14-0001b
  regscan lookup occ AA-EC-2015-1 --table ~/data/occ.xlsx --keywords "penalty"`,
	Args: cobra.ExactArgs(2),
	RunE: runLookup,
}

func init() {
	lookupCmd.Flags().StringVar(&lookupTable, "table", "", "regulator table (default FDIC.csv, OCC.xlsx or FED.csv)")
	lookupCmd.Flags().StringVar(&lookupStart, "start", defaultLookupStart, "first date included, DD/MM/YYYY")
	lookupCmd.Flags().StringVar(&lookupEnd, "end", "", "last date included, DD/MM/YYYY (default unbounded)")
	lookupCmd.Flags().StringVar(&lookupKeywords, "keywords", "", "semicolon separated keywords")
	lookupCmd.Flags().StringVarP(&lookupOutput, "output", "o", "Output.csv", "report path")
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	if lookupService == nil || batchService == nil {
		return errors.New("lookup service not configured")
	}

	regulator := domain.Regulator(strings.ToLower(args[0]))
	if !regulator.IsValid() || regulator == domain.RegulatorGeneric {
		return fmt.Errorf("%w: unknown regulator %q (want fdic, occ or fed)", domain.ErrInvalidInput, args[0])
	}
	key := strings.TrimSpace(args[1])

	criteria, err := parseCriteria(lookupStart, lookupEnd, lookupKeywords)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	records, err := lookupService.Resolve(ctx, regulator, lookupTable, key)
	if errors.Is(err, domain.ErrNotFound) {
		// A mistyped key is reported, not treated as a failure.
		cmd.Printf("No %s action with %s %q.\n", strings.ToUpper(string(regulator)), regulator.KeyName(), key)
		return nil
	}
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}

	for _, r := range records {
		cmd.Printf("  %s  %s\n", r.RecordID, r.Institution)
	}

	return runBatch(ctx, cmd, batchService, domain.BatchRequest{
		Records:   records,
		Criteria:  criteria,
		Mode:      domain.RunModeLookup,
		Regulator: regulator,
		Key:       key,
		Output:    lookupOutput,
	})
}
