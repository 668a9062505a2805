package tracing

import (
	"fmt"
	"reflect"

	"github.com/sarchlab/pagesim/paging"
)

// A Domain is a hookable object that runs simulations, such as an engine.
type Domain interface {
	paging.Hookable
	Name() string
	Run() paging.RunInfo
}

// CollectTrace lets the tracer observe the domain. The tracer learns about
// the current run right away.
func CollectTrace(domain Domain, tracer Tracer) {
	for _, hook := range domain.Hooks() {
		hook, ok := hook.(*traceHook)
		if ok && hook.t == tracer {
			panic(fmt.Sprintf(
				"domain %s already has tracer %s",
				domain.Name(), reflect.TypeOf(tracer)))
		}
	}

	h := traceHook{t: tracer}
	domain.AcceptHook(&h)

	tracer.StartRun(domain.Run())
}

// A traceHook forwards engine hooks to a tracer.
type traceHook struct {
	t Tracer
}

// Func calls the tracer interfaces when the hook is triggered
func (h *traceHook) Func(ctx paging.HookCtx) {
	switch ctx.Pos {
	case paging.HookPosReset:
		h.t.StartRun(ctx.Item.(paging.RunInfo))
	case paging.HookPosStep:
		h.t.Step(ctx.Item.(paging.RunInfo), ctx.Detail.(paging.StepResult))
	}
}
