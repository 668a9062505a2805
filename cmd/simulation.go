package cmd

import (
	"io"
	"log/slog"

	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/paging"
	"github.com/sarchlab/pagesim/tracing"
)

// simulation is an engine with the tracers requested by the configuration.
type simulation struct {
	engine   *paging.Engine
	recorder datarecording.DataRecorder
}

func newSimulation(cfg simConfig, out io.Writer) (*simulation, error) {
	builder := paging.MakeBuilder().
		WithTotalInstructions(cfg.Instructions).
		WithPolicy(cfg.Policy)
	if cfg.Seed != 0 {
		builder = builder.WithSeed(cfg.Seed)
	}

	engine, err := builder.Build("PagingEngine")
	if err != nil {
		return nil, err
	}

	s := &simulation{engine: engine}

	if out != nil {
		tracing.CollectTrace(engine, tracing.NewStepPrinter(out, cfg.MemoryView))
	}

	if cfg.Record != "" {
		s.recorder, err = datarecording.New(cfg.Record)
		if err != nil {
			return nil, err
		}

		slog.Info("recording steps",
			"database", datarecording.Filename(s.recorder))
		tracing.CollectTrace(engine, tracing.NewRecordingTracer(s.recorder))
	}

	slog.Debug("simulation created", "run", engine.Run().ID,
		"instructions", cfg.Instructions, "policy", cfg.Policy)

	return s, nil
}

// close flushes the recorded steps.
func (s *simulation) close() error {
	if s.recorder == nil {
		return nil
	}

	return s.recorder.Close()
}

func (s *simulation) logSummary() {
	slog.Info("simulation finished",
		"run", s.engine.Run().ID,
		"policy", s.engine.Policy(),
		"executed", s.engine.ExecutedCount(),
		"faults", s.engine.FaultCount(),
		"fault_rate", s.engine.FaultRate())
}
