package tracing

import (
	"strconv"
	"strings"

	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/paging"
)

// RecordingTracer stores every run and step into a data recorder.
type RecordingTracer struct {
	backend datarecording.DataRecorder
}

// NewRecordingTracer creates the run and step tables in the backend.
func NewRecordingTracer(
	backend datarecording.DataRecorder,
) *RecordingTracer {
	backend.CreateTable(datarecording.RunTable, datarecording.RunEntry{})
	backend.CreateTable(datarecording.StepTable, datarecording.StepEntry{})

	return &RecordingTracer{backend: backend}
}

// StartRun records the configuration of the run.
func (t *RecordingTracer) StartRun(run paging.RunInfo) {
	t.backend.InsertData(datarecording.RunTable, datarecording.RunEntry{
		RunID:             run.ID,
		Engine:            run.EngineName,
		Policy:            run.Policy.String(),
		TotalInstructions: run.TotalInstructions,
		FirstInstruction:  run.FirstInstruction,
	})
}

// Step records a step.
func (t *RecordingTracer) Step(run paging.RunInfo, step paging.StepResult) {
	t.backend.InsertData(datarecording.StepTable, datarecording.StepEntry{
		RunID:           run.ID,
		Seq:             step.Seq,
		Instruction:     step.Instruction,
		Page:            step.Page,
		Hit:             step.Hit,
		Evicted:         step.Evicted,
		Loaded:          step.Loaded,
		Frame:           step.FrameIndex,
		PhysicalAddress: step.PhysicalAddress,
		Frames:          FormatFrames(step.Frames),
		FaultCount:      step.FaultCount,
		ExecutedCount:   step.ExecutedCount,
	})
}

// Flush writes the buffered records.
func (t *RecordingTracer) Flush() {
	t.backend.Flush()
}

// FormatFrames lists the resident pages separated by commas.
func FormatFrames(frames paging.FrameSnapshot) string {
	parts := make([]string, len(frames))
	for i, page := range frames {
		parts[i] = strconv.Itoa(page)
	}

	return strings.Join(parts, ",")
}
