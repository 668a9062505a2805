package monitoring

import (
	"sync"
	"time"
)

// A ProgressBar tracks how far a simulation run has gone.
type ProgressBar struct {
	sync.Mutex
	ID        string
	Name      string
	StartTime time.Time
	Total     uint64
	Finished  uint64
	Faults    uint64
}

type progressRsp struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	Total     uint64    `json:"total"`
	Finished  uint64    `json:"finished"`
	Faults    uint64    `json:"faults"`
}

// IncrementFinished adds a certain amount to the finished instructions.
func (b *ProgressBar) IncrementFinished(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.Finished += amount
}

// IncrementFaults adds a certain amount to the page faults.
func (b *ProgressBar) IncrementFaults(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.Faults += amount
}

func (b *ProgressBar) snapshot() progressRsp {
	b.Lock()
	defer b.Unlock()

	return progressRsp{
		ID:        b.ID,
		Name:      b.Name,
		StartTime: b.StartTime,
		Total:     b.Total,
		Finished:  b.Finished,
		Faults:    b.Faults,
	}
}
