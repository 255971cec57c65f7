package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/regscan/internal/core/domain"
	"github.com/custodia-labs/regscan/internal/core/ports/driving"
)

var (
	extractData     string
	extractStart    string
	extractEnd      string
	extractKeywords string
	extractLocal    string
	extractOutput   string
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Scan every document listed in a table",
	Long: `Reads a table with "Record ID", "Institution Name" and "Link to File"
columns, downloads each document, reads it with OCR and writes every
sentence carrying a date between --start and --end, or one of --keywords,
to the output report.

Dates are DD/MM/YYYY. Keywords are separated by semicolons and matched
case-insensitively. Keyword matches are reported regardless of date.`,
	Example: `  regscan extract --start 01/01/2010 --end 31/12/2015
  regscan extract --data actions.xlsx --start 01/01/2010 --keywords "civil money penalty;restitution"
  regscan extract --local ./pdfs --start 01/01/2000`,
	Args: cobra.NoArgs,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractData, "data", "Data.csv", "input table (.csv or .xlsx)")
	extractCmd.Flags().StringVar(&extractStart, "start", "", "first date included, DD/MM/YYYY (required)")
	extractCmd.Flags().StringVar(&extractEnd, "end", "", "last date included, DD/MM/YYYY (default unbounded)")
	extractCmd.Flags().StringVar(&extractKeywords, "keywords", "", "semicolon separated keywords")
	extractCmd.Flags().StringVar(&extractLocal, "local", "", "read <Record ID>.pdf from this directory instead of downloading")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "Output.csv", "report path")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	if lookupService == nil {
		return errors.New("lookup service not configured")
	}

	criteria, err := parseCriteria(extractStart, extractEnd, extractKeywords)
	if err != nil {
		return err
	}

	batch := batchService
	if extractLocal != "" {
		if localBatch == nil {
			return errors.New("local batch service not configured")
		}
		batch = localBatch(extractLocal)
	}
	if batch == nil {
		return errors.New("batch service not configured")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	records, err := lookupService.All(ctx, domain.RegulatorGeneric, extractData)
	if err != nil {
		return fmt.Errorf("failed to read table: %w", err)
	}
	if len(records) == 0 {
		cmd.Printf("No records in %s.\n", extractData)
		return nil
	}

	return runBatch(ctx, cmd, batch, domain.BatchRequest{
		Records:   records,
		Criteria:  criteria,
		Mode:      domain.RunModeBatch,
		Regulator: domain.RegulatorGeneric,
		Output:    extractOutput,
	})
}

// runBatch runs req and prints the outcome. A partial run is still
// reported before its error is returned.
func runBatch(ctx context.Context, cmd *cobra.Command, batch driving.BatchService, req domain.BatchRequest) error {
	cmd.Printf("Processing %d document(s)...\n", len(req.Records))

	run, err := batch.Run(ctx, req, progressFunc(cmd))
	if run != nil {
		printRun(cmd, run)
		if err == nil && req.Output != "" {
			cmd.Printf("Report written to %s\n", req.Output)
		}
	}
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}
	return nil
}
