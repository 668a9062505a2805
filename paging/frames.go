package paging

import "fmt"

// FrameSnapshot is a copy of the frame table. Each entry holds the resident
// page number or NoPage.
type FrameSnapshot [NumFrames]int

// Addresses returns the instruction addresses held by a frame, in offset
// order. An empty frame has no addresses.
func (s FrameSnapshot) Addresses(frame int) []int {
	page := s[frame]
	if page == NoPage {
		return nil
	}

	addrs := make([]int, PageSize)
	for i := range addrs {
		addrs[i] = page*PageSize + i
	}

	return addrs
}

// Occupied returns the number of non-empty frames.
func (s FrameSnapshot) Occupied() int {
	n := 0
	for _, page := range s {
		if page != NoPage {
			n++
		}
	}

	return n
}

// frameTable is the physical memory. With only a handful of frames, every
// lookup is a linear scan.
type frameTable struct {
	slots [NumFrames]int
}

func (t *frameTable) clear() {
	for i := range t.slots {
		t.slots[i] = NoPage
	}
}

// lookup returns the frame holding the page.
func (t *frameTable) lookup(page int) (frame int, found bool) {
	for i, p := range t.slots {
		if p == page {
			return i, true
		}
	}

	return 0, false
}

// freeFrame returns the lowest-numbered empty frame.
func (t *frameTable) freeFrame() (frame int, found bool) {
	return t.lookup(NoPage)
}

func (t *frameTable) place(frame, page int) {
	if page != NoPage {
		if other, found := t.lookup(page); found && other != frame {
			panic(fmt.Sprintf("page %d is already resident in frame %d",
				page, other))
		}
	}

	t.slots[frame] = page
}

func (t *frameTable) mustFind(page int) int {
	frame, found := t.lookup(page)
	if !found {
		panic(fmt.Sprintf("page %d is not resident", page))
	}

	return frame
}

func (t *frameTable) snapshot() FrameSnapshot {
	return FrameSnapshot(t.slots)
}
