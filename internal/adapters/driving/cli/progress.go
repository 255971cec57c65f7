package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/regscan/internal/core/domain"
	"github.com/custodia-labs/regscan/internal/core/ports/driving"
)

// isTerminal reports whether w is an interactive terminal.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// progressFunc returns a progress callback that redraws one status line,
// or nil when output is not a terminal.
func progressFunc(cmd *cobra.Command) driving.ProgressFunc {
	out := cmd.OutOrStdout()
	if !isTerminal(out) {
		return nil
	}
	return func(done, total int, recordID string, err error) {
		status := "ok"
		if err != nil {
			status = "failed"
		}
		fmt.Fprintf(out, "\r\033[K[%d/%d] %s %s", done, total, recordID, status)
		if done == total {
			fmt.Fprintln(out)
		}
	}
}

// printRun prints a run summary and its failures.
func printRun(cmd *cobra.Command, run *domain.Run) {
	cmd.Printf("Run %s\n", run.ID)
	cmd.Printf("  Documents: %d (%d succeeded)\n", run.Documents, run.Succeeded())
	cmd.Printf("  Records:   %d\n", len(run.Records))
	if d := run.Duration(); d > 0 {
		cmd.Printf("  Duration:  %s\n", d.Round(time.Millisecond))
	}
	if len(run.Failures) > 0 {
		cmd.Printf("  Failures:  %d\n", len(run.Failures))
		for _, f := range run.Failures {
			cmd.Printf("    %s: %s\n", f.RecordID, f.Error)
		}
	}
}
