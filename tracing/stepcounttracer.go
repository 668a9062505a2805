package tracing

import (
	"sort"
	"sync"

	"github.com/sarchlab/pagesim/paging"
)

// StepCountTracer counts the hits, faults and evictions of the current run.
type StepCountTracer struct {
	lock          sync.Mutex
	runID         string
	hits          uint64
	faults        uint64
	evictions     uint64
	pageFaults    map[int]uint64
	pageEvictions map[int]uint64
}

// NewStepCountTracer creates a new StepCountTracer
func NewStepCountTracer() *StepCountTracer {
	return &StepCountTracer{
		pageFaults:    make(map[int]uint64),
		pageEvictions: make(map[int]uint64),
	}
}

// StartRun clears the counters.
func (t *StepCountTracer) StartRun(run paging.RunInfo) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.runID = run.ID
	t.hits = 0
	t.faults = 0
	t.evictions = 0
	t.pageFaults = make(map[int]uint64)
	t.pageEvictions = make(map[int]uint64)
}

// Step counts one executed instruction.
func (t *StepCountTracer) Step(_ paging.RunInfo, step paging.StepResult) {
	t.lock.Lock()
	defer t.lock.Unlock()

	if step.Hit {
		t.hits++
		return
	}

	t.faults++
	t.pageFaults[step.Page]++

	if step.Evicted != paging.NoPage {
		t.evictions++
		t.pageEvictions[step.Evicted]++
	}
}

// RunID returns the ID of the run being counted.
func (t *StepCountTracer) RunID() string {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.runID
}

// Hits returns the number of hits.
func (t *StepCountTracer) Hits() uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.hits
}

// Faults returns the number of page faults.
func (t *StepCountTracer) Faults() uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.faults
}

// Evictions returns the number of faults that replaced a resident page.
func (t *StepCountTracer) Evictions() uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.evictions
}

// FaultsOfPage returns how many times the page was loaded.
func (t *StepCountTracer) FaultsOfPage(page int) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.pageFaults[page]
}

// EvictionsOfPage returns how many times the page was replaced.
func (t *StepCountTracer) EvictionsOfPage(page int) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.pageEvictions[page]
}

// FaultedPages returns the pages that faulted at least once, in ascending
// order.
func (t *StepCountTracer) FaultedPages() []int {
	t.lock.Lock()
	defer t.lock.Unlock()

	pages := make([]int, 0, len(t.pageFaults))
	for page := range t.pageFaults {
		pages = append(pages, page)
	}
	sort.Ints(pages)

	return pages
}
