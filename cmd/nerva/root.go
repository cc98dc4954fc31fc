// The nerva command runs and audits deterministic network simulations.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "nerva",
	Short: "Nerva runs network simulations whose results are independent of the machine shape.",
	Long: `Nerva runs network simulations whose results are independent of the ` +
		`machine shape. A run is configured with a number of virtual processes ` +
		`and a seed; how many ranks and threads execute those virtual processes ` +
		`never changes the simulation output.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
