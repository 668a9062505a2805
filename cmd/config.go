package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sarchlab/pagesim/paging"
	"github.com/spf13/cobra"
)

// Environment variables that provide defaults for the flags. They can also be
// set in a .env file in the working directory.
const (
	envInstructions = "PAGESIM_INSTRUCTIONS"
	envPolicy       = "PAGESIM_POLICY"
	envSeed         = "PAGESIM_SEED"
	envLogLevel     = "PAGESIM_LOG_LEVEL"
	envRecord       = "PAGESIM_RECORD"
)

// simConfig is the configuration of a simulation, collected from flags,
// environment variables and defaults, in that order of priority.
type simConfig struct {
	Instructions int
	Policy       paging.Policy
	Seed         uint64
	Record       string
	MemoryView   bool
}

func loadDotEnv() {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("cannot load .env file", "error", err)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("instructions", "n", paging.MaxInstructions,
		fmt.Sprintf("Total number of instructions (1-%d).",
			paging.MaxInstructions))
	cmd.Flags().StringP("policy", "p", "fifo",
		"Page replacement policy: fifo or lru.")
	cmd.Flags().Uint64("seed", 0,
		"Seed of the instruction stream; 0 picks a random seed.")
	cmd.Flags().String("record", "",
		"Record every step into this SQLite database.")
	cmd.Flags().Bool("memory-view", false,
		"Print the content of the frames after every step.")
}

// envOrFlagString returns the flag value as text. An explicitly set flag wins
// over the environment variable, which wins over the flag default.
func envOrFlagString(cmd *cobra.Command, name, env string) string {
	f := cmd.Flag(name)
	if f == nil {
		panic(fmt.Sprintf("flag %s is not defined", name))
	}

	if f.Changed {
		return f.Value.String()
	}

	if envValue, ok := os.LookupEnv(env); ok {
		return envValue
	}

	return f.Value.String()
}

func loadSimConfig(cmd *cobra.Command) (simConfig, error) {
	cfg := simConfig{}

	instructions, err := strconv.Atoi(envOrFlagString(
		cmd, "instructions", envInstructions))
	if err != nil {
		return cfg, fmt.Errorf("invalid instruction count: %w", err)
	}

	if instructions < 1 || instructions > paging.MaxInstructions {
		return cfg, fmt.Errorf("instruction count must be between 1 and %d, "+
			"got %d", paging.MaxInstructions, instructions)
	}

	cfg.Instructions = instructions

	cfg.Policy, err = paging.ParsePolicy(envOrFlagString(
		cmd, "policy", envPolicy))
	if err != nil {
		return cfg, err
	}

	cfg.Seed, err = strconv.ParseUint(envOrFlagString(
		cmd, "seed", envSeed), 10, 64)
	if err != nil {
		return cfg, fmt.Errorf("invalid seed: %w", err)
	}

	cfg.Record = envOrFlagString(cmd, "record", envRecord)
	cfg.MemoryView, _ = cmd.Flags().GetBool("memory-view")

	return cfg, nil
}

func parseLogLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

func setupLogger(w io.Writer, level slog.Level) {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler).With("module", "pagesim"))
}
