// Package paging simulates demand paging over a tiny physical memory.
//
// An Engine walks a pseudo-random stream of instruction addresses, maps each
// address to a page and keeps the pages resident in a fixed set of frames,
// replacing pages with either the FIFO or the LRU policy on page faults.
package paging

import (
	"fmt"
	"strings"
)

const (
	// NumFrames is the number of physical frames.
	NumFrames = 4

	// PageSize is the number of consecutive instruction addresses in a page.
	PageSize = 10

	// MaxInstructions is the largest instruction count the front ends accept.
	MaxInstructions = 320

	// NoPage marks an empty frame or the absence of an evicted/loaded page.
	NoPage = -1
)

// Policy selects how the victim page is chosen on a page fault.
type Policy int

// A list of supported replacement policies.
const (
	FIFO Policy = iota
	LRU
)

func (p Policy) String() string {
	switch p {
	case FIFO:
		return "FIFO"
	case LRU:
		return "LRU"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy converts a case-insensitive policy name into a Policy.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fifo":
		return FIFO, nil
	case "lru":
		return LRU, nil
	default:
		return FIFO, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

// PageOf returns the page that holds the instruction address.
func PageOf(instruction int) int {
	return instruction / PageSize
}

// PhysicalAddress translates an instruction address into the address inside
// the physical memory, given the frame that holds its page.
func PhysicalAddress(frame, instruction int) int {
	return frame*PageSize + instruction%PageSize
}
