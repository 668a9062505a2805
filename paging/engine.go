package paging

import (
	"fmt"

	"github.com/rs/xid"
)

// RunInfo describes the configuration of one simulation run.
type RunInfo struct {
	ID                string
	EngineName        string
	TotalInstructions int
	Policy            Policy
	FirstInstruction  int
}

// StepResult reports what happened while executing one instruction.
type StepResult struct {
	// Seq is the 1-based position of the instruction in the run.
	Seq         int
	Instruction int
	Page        int
	Hit         bool

	// Evicted is the page replaced by the fault, or NoPage.
	Evicted int

	// Loaded is the page brought in by the fault, or NoPage on a hit.
	Loaded int

	FrameIndex      int
	PhysicalAddress int
	Frames          FrameSnapshot
	FaultCount      int
	ExecutedCount   int
}

// Engine is a demand-paging simulator. An Engine is not safe for concurrent
// use; create one engine per simulation.
type Engine struct {
	HookableBase

	name string
	run  RunInfo

	frames  frameTable
	tracker Tracker
	refGen  *ReferenceGenerator

	executedCount int
	faultCount    int
	current       int
}

// Name returns the name of the engine.
func (e *Engine) Name() string {
	return e.name
}

// Run returns the description of the current run.
func (e *Engine) Run() RunInfo {
	return e.run
}

// TotalInstructions returns the length of the current run.
func (e *Engine) TotalInstructions() int {
	return e.run.TotalInstructions
}

// Policy returns the replacement policy of the current run.
func (e *Engine) Policy() Policy {
	return e.run.Policy
}

// ExecutedCount returns the number of instructions executed so far.
func (e *Engine) ExecutedCount() int {
	return e.executedCount
}

// FaultCount returns the number of page faults so far.
func (e *Engine) FaultCount() int {
	return e.faultCount
}

// CurrentReference returns the instruction that executes next.
func (e *Engine) CurrentReference() int {
	return e.current
}

// Frames returns a copy of the frame table.
func (e *Engine) Frames() FrameSnapshot {
	return e.frames.snapshot()
}

// ResidentOrder returns the resident pages in replacement order, next victim
// first.
func (e *Engine) ResidentOrder() []int {
	return e.tracker.Pages()
}

// IsComplete tells if every instruction of the run has been executed.
func (e *Engine) IsComplete() bool {
	return e.executedCount >= e.run.TotalInstructions
}

// FaultRate returns the ratio of faults to executed instructions, or 0 before
// the first instruction.
func (e *Engine) FaultRate() float64 {
	if e.executedCount == 0 {
		return 0
	}

	return float64(e.faultCount) / float64(e.executedCount)
}

// Reset starts a new run. It empties all frames, zeroes the counters and
// draws the first instruction at random. An invalid configuration leaves the
// engine unchanged.
func (e *Engine) Reset(totalInstructions int, policy Policy) error {
	if totalInstructions < 1 {
		return fmt.Errorf("%w, got %d",
			ErrInvalidInstructionCount, totalInstructions)
	}

	if policy != FIFO && policy != LRU {
		return fmt.Errorf("%w: %s", ErrUnknownPolicy, policy)
	}

	e.frames.clear()
	e.tracker = NewTracker(policy)
	e.executedCount = 0
	e.faultCount = 0
	e.current = e.refGen.First(totalInstructions)

	e.run = RunInfo{
		ID:                xid.New().String(),
		EngineName:        e.name,
		TotalInstructions: totalInstructions,
		Policy:            policy,
		FirstInstruction:  e.current,
	}

	e.InvokeHook(HookCtx{
		Domain: e,
		Pos:    HookPosReset,
		Item:   e.run,
	})

	return nil
}

// Step executes the current instruction. It returns ErrAlreadyComplete once
// the run is over.
func (e *Engine) Step() (StepResult, error) {
	if e.IsComplete() {
		return StepResult{}, ErrAlreadyComplete
	}

	instruction := e.current
	page := PageOf(instruction)

	result := StepResult{
		Seq:         e.executedCount + 1,
		Instruction: instruction,
		Page:        page,
		Evicted:     NoPage,
		Loaded:      NoPage,
	}

	frame, hit := e.frames.lookup(page)
	if hit {
		e.tracker.Touch(page)
		result.Hit = true
	} else {
		frame, result.Evicted = e.handleFault(page)
		result.Loaded = page
	}

	e.trackerMustMatchFrames()

	result.FrameIndex = frame
	result.PhysicalAddress = PhysicalAddress(frame, instruction)
	result.Frames = e.frames.snapshot()

	e.current = e.refGen.Next(e.current, e.run.TotalInstructions)
	e.executedCount++

	result.FaultCount = e.faultCount
	result.ExecutedCount = e.executedCount

	e.InvokeHook(HookCtx{
		Domain: e,
		Pos:    HookPosStep,
		Item:   e.run,
		Detail: result,
	})

	return result, nil
}

// RunToCompletion executes the remaining instructions and returns their
// results in order.
func (e *Engine) RunToCompletion() []StepResult {
	results := make([]StepResult, 0,
		e.run.TotalInstructions-e.executedCount)

	for !e.IsComplete() {
		result, err := e.Step()
		if err != nil {
			panic(err)
		}

		results = append(results, result)
	}

	return results
}

// handleFault brings the page into memory and returns the frame it is loaded
// into, together with the page it replaced.
func (e *Engine) handleFault(page int) (frame, evicted int) {
	e.faultCount++

	evicted = NoPage

	frame, free := e.frames.freeFrame()
	if !free {
		evicted = e.tracker.Victim()
		e.tracker.Remove(evicted)
		frame = e.frames.mustFind(evicted)
	}

	e.frames.place(frame, page)
	e.tracker.Load(page)

	return frame, evicted
}

func (e *Engine) trackerMustMatchFrames() {
	snapshot := e.frames.snapshot()
	if snapshot.Occupied() != e.tracker.Len() {
		panic(fmt.Sprintf("%d frames occupied but %d pages tracked",
			snapshot.Occupied(), e.tracker.Len()))
	}

	for _, page := range e.tracker.Pages() {
		if _, found := e.frames.lookup(page); !found {
			panic(fmt.Sprintf("tracked page %d is not resident", page))
		}
	}
}
