package paging

import (
	"math/rand/v2"
	"time"
)

// Probabilities of the three moves of the reference walk. Whatever remains
// after the sequential and backward moves is a forward jump.
const (
	SequentialProbability = 0.5
	BackwardProbability   = 0.25
)

// A RandSource provides the randomness of a simulation. *rand.Rand from
// math/rand/v2 satisfies it.
type RandSource interface {
	// Float64 returns a number in [0, 1).
	Float64() float64

	// IntN returns a number in [0, n). n is always positive.
	IntN(n int) int
}

// NewRandSource returns a seeded random source. Two sources with the same
// seed produce the same stream.
func NewRandSource(seed uint64) RandSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewTimeSeededRandSource returns a random source seeded from the clock.
func NewTimeSeededRandSource() RandSource {
	return NewRandSource(uint64(time.Now().UnixNano()))
}

// A ReferenceGenerator decides which instruction executes next. Half of the
// time it moves on sequentially, otherwise it jumps backward or forward,
// which gives the locality that makes paging worthwhile.
type ReferenceGenerator struct {
	rand RandSource
}

// NewReferenceGenerator creates a generator drawing from the source.
func NewReferenceGenerator(source RandSource) *ReferenceGenerator {
	return &ReferenceGenerator{rand: source}
}

// First draws the starting instruction of a run uniformly from [0, total).
func (g *ReferenceGenerator) First(total int) int {
	return g.rand.IntN(total)
}

// Next returns the instruction that follows current in a run of total
// instructions.
func (g *ReferenceGenerator) Next(current, total int) int {
	p := g.rand.Float64()

	switch {
	case p < SequentialProbability:
		return (current + 1) % total
	case p < SequentialProbability+BackwardProbability:
		return g.backward(current)
	default:
		return g.forward(current, total)
	}
}

// backward draws from [0, current-1].
func (g *ReferenceGenerator) backward(current int) int {
	if current <= 0 {
		return 0
	}

	return g.rand.IntN(current)
}

// forward draws from [current+1, total-1].
func (g *ReferenceGenerator) forward(current, total int) int {
	if current >= total-1 {
		return total - 1
	}

	return current + 1 + g.rand.IntN(total-1-current)
}
