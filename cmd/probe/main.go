// Command probe acquires a playback session headlessly and reports what the
// engine does with it.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "probe",
	Short:         "Exercise a playback session without the terminal UI",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func main() {
	rootCmd.AddCommand(newRunCmd(), newHistoryCmd())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
