package paging

import "fmt"

// A Tracker keeps the replacement order of the resident pages. The head of
// the order is always the next victim.
type Tracker interface {
	// Load records a newly loaded page at the most recent end.
	Load(page int)

	// Touch records a hit on a resident page.
	Touch(page int)

	// Victim returns the page that should be evicted next.
	Victim() int

	// Remove forgets a page.
	Remove(page int)

	// Pages returns the tracked pages, next victim first.
	Pages() []int

	// Len returns the number of tracked pages.
	Len() int
}

// NewTracker creates the tracker that implements the policy.
func NewTracker(policy Policy) Tracker {
	switch policy {
	case FIFO:
		return &fifoTracker{}
	case LRU:
		return &lruTracker{}
	default:
		panic(fmt.Sprintf("no tracker for policy %s", policy))
	}
}

// orderQueue is a list of distinct page numbers.
type orderQueue struct {
	order []int
}

func (q *orderQueue) pushBack(page int) {
	if q.indexOf(page) >= 0 {
		panic(fmt.Sprintf("page %d is already tracked", page))
	}

	q.order = append(q.order, page)
}

func (q *orderQueue) indexOf(page int) int {
	for i, p := range q.order {
		if p == page {
			return i
		}
	}

	return -1
}

func (q *orderQueue) remove(page int) {
	i := q.indexOf(page)
	if i < 0 {
		panic(fmt.Sprintf("page %d is not tracked", page))
	}

	q.order = append(q.order[:i], q.order[i+1:]...)
}

func (q *orderQueue) head() int {
	if len(q.order) == 0 {
		panic("no page to evict")
	}

	return q.order[0]
}

func (q *orderQueue) Pages() []int {
	pages := make([]int, len(q.order))
	copy(pages, q.order)

	return pages
}

func (q *orderQueue) Len() int {
	return len(q.order)
}

// fifoTracker evicts in load order. Hits do not change the order.
type fifoTracker struct {
	orderQueue
}

func (t *fifoTracker) Load(page int) {
	t.pushBack(page)
}

func (t *fifoTracker) Touch(page int) {
	// nothing to do for FIFO
}

func (t *fifoTracker) Victim() int {
	return t.head()
}

func (t *fifoTracker) Remove(page int) {
	t.remove(page)
}

// lruTracker keeps the least recently used page at the head.
type lruTracker struct {
	orderQueue
}

func (t *lruTracker) Load(page int) {
	t.pushBack(page)
}

// Touch moves the page to the end of the order.
func (t *lruTracker) Touch(page int) {
	t.remove(page)
	t.order = append(t.order, page)
}

func (t *lruTracker) Victim() int {
	return t.head()
}

func (t *lruTracker) Remove(page int) {
	t.remove(page)
}
