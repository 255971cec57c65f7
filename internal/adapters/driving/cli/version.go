package cli

import (
	"runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and the OCR engines compiled in",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("regscan version %s (%s %s/%s)\n", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		for _, e := range engines {
			status := "not compiled in"
			switch {
			case e.Available && e.Version != "":
				status = e.Version
			case e.Available:
				status = "available"
			}
			cmd.Printf("  %-10s %s\n", e.Name+":", status)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
