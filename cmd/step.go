package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sarchlab/pagesim/paging"
	"github.com/sarchlab/pagesim/tracing"
	"github.com/spf13/cobra"
)

var stepCmd = &cobra.Command{
	Use:   "step",
	Short: "Step through a simulation interactively.",
	Long: "`step` reads commands from the standard input. Press enter to " +
		"execute one instruction, or type `help` to list the commands.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadSimConfig(cmd)
		if err != nil {
			return err
		}

		sim, err := newSimulation(cfg, cmd.OutOrStdout())
		if err != nil {
			return err
		}

		err = interact(sim.engine, cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}

		sim.logSummary()

		return sim.close()
	},
}

func init() {
	rootCmd.AddCommand(stepCmd)
	addSimFlags(stepCmd)
}

const stepHelp = `commands:
  <enter>, s          execute one instruction
  r                   run the remaining instructions
  stats               show the fault statistics
  frames              show the frames
  reset <n> <policy>  start a new run
  q                   quit
`

// interact runs the single-step loop until the input ends or the user quits.
func interact(engine *paging.Engine, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())

		quit := handleCommand(engine, fields, out)
		if quit {
			return nil
		}

		fmt.Fprint(out, "> ")
	}

	return scanner.Err()
}

func handleCommand(engine *paging.Engine, fields []string, out io.Writer) bool {
	command := ""
	if len(fields) > 0 {
		command = strings.ToLower(fields[0])
	}

	switch command {
	case "", "s", "step":
		_, err := engine.Step()
		if errors.Is(err, paging.ErrAlreadyComplete) {
			fmt.Fprintln(out, "notice: "+err.Error())
		}
	case "r", "run":
		engine.RunToCompletion()
	case "stats":
		fmt.Fprintln(out, tracing.FormatStats(
			engine.FaultCount(), engine.ExecutedCount()))
	case "frames":
		fmt.Fprintln(out, tracing.FormatFrames(engine.Frames()))
	case "reset":
		resetFromCommand(engine, fields[1:], out)
	case "q", "quit", "exit":
		return true
	case "help":
		fmt.Fprint(out, stepHelp)
	default:
		fmt.Fprintf(out, "unknown command %q, type help\n", command)
	}

	return false
}

func resetFromCommand(engine *paging.Engine, args []string, out io.Writer) {
	total := engine.TotalInstructions()
	policy := engine.Policy()

	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 || n > paging.MaxInstructions {
			fmt.Fprintf(out, "instruction count must be between 1 and %d\n",
				paging.MaxInstructions)
			return
		}

		total = n
	}

	if len(args) > 1 {
		p, err := paging.ParsePolicy(args[1])
		if err != nil {
			fmt.Fprintln(out, err)
			return
		}

		policy = p
	}

	err := engine.Reset(total, policy)
	if err != nil {
		fmt.Fprintln(out, err)
	}
}
