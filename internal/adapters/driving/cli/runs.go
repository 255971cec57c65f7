package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/regscan/internal/core/domain"
)

var (
	runsShowJSON   bool
	runsExportPath string
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect previous runs",
	Long:  `Every extract and lookup is saved with its criteria, report rows and failed documents.`,
	RunE:  runRunsList,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List runs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a run with its records",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

var runsExportCmd = &cobra.Command{
	Use:   "export <run-id>",
	Short: "Write a run's records as a CSV report",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsExport,
}

var runsDeleteCmd = &cobra.Command{
	Use:   "delete <run-id>",
	Short: "Delete a run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsDelete,
}

func init() {
	runsShowCmd.Flags().BoolVar(&runsShowJSON, "json", false, "output the run as JSON")
	runsExportCmd.Flags().StringVarP(&runsExportPath, "output", "o", "Output.csv", "report path")
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsExportCmd)
	runsCmd.AddCommand(runsDeleteCmd)
	rootCmd.AddCommand(runsCmd)
}

func runRunsList(cmd *cobra.Command, _ []string) error {
	if runService == nil {
		return errors.New("run service not configured")
	}

	runs, err := runService.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) == 0 {
		cmd.Println("No runs yet.")
		return nil
	}

	for _, r := range runs {
		label := string(r.Mode)
		if r.Key != "" {
			label = fmt.Sprintf("%s %s %s", r.Mode, r.Regulator, r.Key)
		}
		cmd.Printf("%s  %s  %-30s  %d doc(s)  %d record(s)  %d failure(s)\n",
			r.ID, r.StartedAt.Local().Format(time.DateTime), label, r.Documents, r.Records, r.Failures)
	}
	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	if runService == nil {
		return errors.New("run service not configured")
	}

	run, err := runService.Get(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}

	if runsShowJSON {
		data, err := json.MarshalIndent(run, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode run: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printRun(cmd, run)
	cmd.Printf("  Criteria:  %s\n", describeCriteria(run.Criteria))
	if len(run.Records) == 0 {
		return nil
	}
	cmd.Println()
	for _, r := range run.Records {
		cmd.Printf("  [%s] %s: %s\n", r.RecordID, r.KeyInformation, r.Sentence)
	}
	return nil
}

func runRunsExport(cmd *cobra.Command, args []string) error {
	if runService == nil {
		return errors.New("run service not configured")
	}

	if err := runService.Export(context.Background(), args[0], runsExportPath); err != nil {
		return fmt.Errorf("failed to export run: %w", err)
	}
	cmd.Printf("Report written to %s\n", runsExportPath)
	return nil
}

func runRunsDelete(cmd *cobra.Command, args []string) error {
	if runService == nil {
		return errors.New("run service not configured")
	}

	if err := runService.Delete(context.Background(), args[0]); err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	cmd.Printf("Deleted run %s\n", args[0])
	return nil
}

func describeCriteria(c domain.FilterCriteria) string {
	end := "open"
	if !c.End.IsZero() {
		end = c.End.Format(time.DateOnly)
	}
	s := fmt.Sprintf("%s to %s", c.Start.Format(time.DateOnly), end)
	if c.HasKeywords() {
		s += "; keywords: " + strings.Join(c.Keywords, ", ")
	}
	return s
}
