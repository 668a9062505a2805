// Package tracing observes paging engines through hooks.
package tracing

import "github.com/sarchlab/pagesim/paging"

// A Tracer is notified about the runs and steps of an engine.
type Tracer interface {
	// StartRun is called when the engine starts a new run.
	StartRun(run paging.RunInfo)

	// Step is called after every executed instruction.
	Step(run paging.RunInfo, step paging.StepResult)
}
