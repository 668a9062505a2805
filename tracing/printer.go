package tracing

import (
	"fmt"
	"io"
	"strings"

	"github.com/sarchlab/pagesim/paging"
)

// StepPrinter writes a human-readable log of the steps.
type StepPrinter struct {
	w          io.Writer
	memoryView bool
}

// NewStepPrinter creates a printer writing to w. With memoryView set, the
// content of every frame is printed after each step.
func NewStepPrinter(w io.Writer, memoryView bool) *StepPrinter {
	return &StepPrinter{w: w, memoryView: memoryView}
}

// StartRun prints the run header.
func (p *StepPrinter) StartRun(run paging.RunInfo) {
	fmt.Fprintf(p.w, "run %s: %d instructions, %s, starting at %d\n",
		run.ID, run.TotalInstructions, run.Policy, run.FirstInstruction)
}

// Step prints the step.
func (p *StepPrinter) Step(_ paging.RunInfo, step paging.StepResult) {
	fmt.Fprintln(p.w, FormatStep(step))
	fmt.Fprintf(p.w, "physical address: %d\n", step.PhysicalAddress)
	fmt.Fprintln(p.w, FormatStats(step.FaultCount, step.ExecutedCount))

	if p.memoryView {
		fmt.Fprint(p.w, FormatMemory(step))
	}
}

// FormatStep describes whether the step hit or which pages were swapped.
func FormatStep(step paging.StepResult) string {
	if step.Hit {
		return fmt.Sprintf("%d: instruction %d hit, page %d",
			step.Seq, step.Instruction, step.Page)
	}

	evicted := "none"
	if step.Evicted != paging.NoPage {
		evicted = fmt.Sprint(step.Evicted)
	}

	return fmt.Sprintf("%d: instruction %d page fault, evicted page %s, "+
		"loaded page %d", step.Seq, step.Instruction, evicted, step.Loaded)
}

// FormatStats prints the fault count and the fault rate as a percentage.
func FormatStats(faults, executed int) string {
	rate := 0.0
	if executed > 0 {
		rate = float64(faults) / float64(executed) * 100
	}

	return fmt.Sprintf("page faults: %d, fault rate: %.2f%%", faults, rate)
}

// FormatMemory draws the frames with the addresses they hold. The cell of
// the accessed physical address is put in brackets.
func FormatMemory(step paging.StepResult) string {
	var b strings.Builder

	for frame := range step.Frames {
		page := step.Frames[frame]
		if page == paging.NoPage {
			fmt.Fprintf(&b, "frame %d: empty\n", frame+1)
			continue
		}

		fmt.Fprintf(&b, "frame %d: page %-3d|", frame+1, page)

		for offset, addr := range step.Frames.Addresses(frame) {
			cell := fmt.Sprintf(" %3d ", addr)
			if frame*paging.PageSize+offset == step.PhysicalAddress {
				cell = fmt.Sprintf("[%3d]", addr)
			}

			b.WriteString(cell)
		}

		b.WriteString("\n")
	}

	return b.String()
}
