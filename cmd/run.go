package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/sarchlab/pagesim/paging"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation to completion.",
	Long: "`run` executes every instruction of a simulation, or the number " +
		"given by --steps, and prints a log line for every step.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadSimConfig(cmd)
		if err != nil {
			return err
		}

		steps, _ := cmd.Flags().GetInt("steps")
		if steps < 0 {
			return fmt.Errorf("steps must not be negative, got %d", steps)
		}

		sim, err := newSimulation(cfg, cmd.OutOrStdout())
		if err != nil {
			return err
		}

		runSteps(sim.engine, steps, cmd.OutOrStdout())
		sim.logSummary()

		return sim.close()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	addSimFlags(runCmd)
	runCmd.Flags().Int("steps", 0,
		"Number of steps to execute; 0 runs to completion.")
}

// runSteps executes up to limit steps, or all remaining ones when limit is
// 0. Stepping past the end prints a notice instead of failing.
func runSteps(engine *paging.Engine, limit int, out io.Writer) int {
	if limit == 0 {
		return len(engine.RunToCompletion())
	}

	for i := 0; i < limit; i++ {
		_, err := engine.Step()
		if errors.Is(err, paging.ErrAlreadyComplete) {
			fmt.Fprintln(out, "notice: "+err.Error())
			return i
		}
	}

	return limit
}
