package paging

// A Builder can build paging engines.
type Builder struct {
	totalInstructions int
	policy            Policy
	randSource        RandSource
}

// MakeBuilder creates a builder with the default configuration: the longest
// accepted run, FIFO replacement and a clock-seeded random source.
func MakeBuilder() Builder {
	return Builder{
		totalInstructions: MaxInstructions,
		policy:            FIFO,
	}
}

// WithTotalInstructions sets the number of instructions of the first run.
func (b Builder) WithTotalInstructions(n int) Builder {
	b.totalInstructions = n
	return b
}

// WithPolicy sets the replacement policy of the first run.
func (b Builder) WithPolicy(policy Policy) Builder {
	b.policy = policy
	return b
}

// WithRandSource sets the source of randomness.
func (b Builder) WithRandSource(source RandSource) Builder {
	b.randSource = source
	return b
}

// WithSeed makes the engine reproducible by seeding its random source.
func (b Builder) WithSeed(seed uint64) Builder {
	b.randSource = NewRandSource(seed)
	return b
}

// Build creates an engine and resets it into its first run.
func (b Builder) Build(name string) (*Engine, error) {
	source := b.randSource
	if source == nil {
		source = NewTimeSeededRandSource()
	}

	e := &Engine{
		name:   name,
		refGen: NewReferenceGenerator(source),
	}
	err := e.Reset(b.totalInstructions, b.policy)
	if err != nil {
		return nil, err
	}

	return e, nil
}
