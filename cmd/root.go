// Package cmd provides the command-line interface of the paging simulator.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pagesim",
	Short: "pagesim simulates demand paging with FIFO or LRU replacement.",
	Long: `pagesim simulates demand paging over a physical memory of ` +
		`4 frames of 10 instructions each. A pseudo-random instruction ` +
		`stream is executed step by step, reporting every page fault, ` +
		`replacement and physical address.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		loadDotEnv()

		level, err := parseLogLevel(envOrFlagString(cmd, "log-level",
			envLogLevel))
		if err != nil {
			return err
		}

		setupLogger(cmd.ErrOrStderr(), level)

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info",
		"Log level: debug, info, warn or error.")
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
