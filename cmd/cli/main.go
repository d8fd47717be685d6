// healthprobe CLI: one-shot endpoint evaluation, probe server, and
// version information.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootFlags struct {
	configFile string
	jsonOutput bool
}

func main() {
	root := &cobra.Command{
		Use:           "healthprobe",
		Short:         "Evaluate HTTP endpoint health",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&rootFlags.configFile, "config", "c", "", "Path to healthprobe.yaml")
	root.PersistentFlags().BoolVar(&rootFlags.jsonOutput, "json", false, "Machine-readable JSON output")

	root.AddCommand(
		newCheckCmd(),
		newServeCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
