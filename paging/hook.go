package paging

// HookPos names the place in the engine where a hook is triggered.
type HookPos struct {
	Name string
}

// HookPosReset triggers after the engine is reset. Item is the RunInfo of the
// new run.
var HookPosReset = &HookPos{Name: "Reset"}

// HookPosStep triggers after every executed instruction. Item is the RunInfo
// and Detail is the StepResult.
var HookPosStep = &HookPos{Name: "Step"}

// HookCtx holds the information about the site where a hook is triggered.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   interface{}
	Detail interface{}
}

// Hook is a short piece of program that can be invoked by a hookable object.
type Hook interface {
	// Func determines what to do if hook is invoked.
	Func(ctx HookCtx)
}

// Hookable defines an object that accepts hooks.
type Hookable interface {
	AcceptHook(hook Hook)
	Hooks() []Hook
}

// HookFunc adapts a plain function to the Hook interface.
type HookFunc func(ctx HookCtx)

// Func calls f.
func (f HookFunc) Func(ctx HookCtx) {
	f(ctx)
}

// A HookableBase provides the bookkeeping of the Hookable interface.
type HookableBase struct {
	hooks []Hook
}

// AcceptHook registers a hook.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.hooks = append(h.hooks, hook)
}

// Hooks returns the registered hooks.
func (h *HookableBase) Hooks() []Hook {
	return h.hooks
}

// NumHooks returns the number of registered hooks.
func (h *HookableBase) NumHooks() int {
	return len(h.hooks)
}

// InvokeHook triggers the registered hooks in registration order.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hooks {
		hook.Func(ctx)
	}
}
