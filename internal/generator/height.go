package generator

// Source is the random source the generator draws from. *rand.Rand from math/rand/v2
// satisfies it.
type Source interface {
	// IntN returns a uniform value in [0, n). n is always positive.
	IntN(n int) int
}

// HeightSampler draws skyscraper heights.
type HeightSampler struct {
	rng Source
}

// NewHeightSampler creates a sampler backed by rng.
func NewHeightSampler(rng Source) *HeightSampler {
	return &HeightSampler{rng: rng}
}

// Sample returns a height drawn uniformly from [1, maxHeight].
func (s *HeightSampler) Sample(maxHeight int) (int, error) {
	if maxHeight <= 0 {
		return 0, invalidf("max height must be positive, got %d", maxHeight)
	}
	return 1 + s.rng.IntN(maxHeight), nil
}
