package cmd

import (
	"fmt"
	"io"

	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/tracing"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report <database>",
	Short: "Summarize the runs recorded in a database.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reader, err := datarecording.NewReader(args[0])
		if err != nil {
			return err
		}
		defer reader.Close()

		summaries, err := reader.Summaries(cmd.Context())
		if err != nil {
			return err
		}

		printSummaries(cmd.OutOrStdout(), summaries)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func printSummaries(out io.Writer, summaries []datarecording.RunSummary) {
	if len(summaries) == 0 {
		fmt.Fprintln(out, "no runs recorded")
		return
	}

	for _, s := range summaries {
		fmt.Fprintf(out, "%s  %-4s  %d/%d instructions  %s\n",
			s.RunID, s.Policy, s.Executed, s.TotalInstructions,
			tracing.FormatStats(s.Faults, s.Executed))
	}
}
