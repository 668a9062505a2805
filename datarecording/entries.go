package datarecording

// Names of the tables that hold paging simulations.
const (
	RunTable  = "paging_runs"
	StepTable = "paging_steps"
)

// A RunEntry is a row of the run table.
type RunEntry struct {
	RunID             string
	Engine            string
	Policy            string
	TotalInstructions int
	FirstInstruction  int
}

// A StepEntry is a row of the step table. Frames lists the resident page of
// every frame, separated by commas, with -1 for an empty frame.
type StepEntry struct {
	RunID           string
	Seq             int
	Instruction     int
	Page            int
	Hit             bool
	Evicted         int
	Loaded          int
	Frame           int
	PhysicalAddress int
	Frames          string
	FaultCount      int
	ExecutedCount   int
}

// A RunSummary aggregates the recorded steps of a run.
type RunSummary struct {
	RunID             string
	Policy            string
	TotalInstructions int
	Executed          int
	Faults            int
}

// FaultRate returns the ratio of faults to executed steps.
func (s RunSummary) FaultRate() float64 {
	if s.Executed == 0 {
		return 0
	}

	return float64(s.Faults) / float64(s.Executed)
}
