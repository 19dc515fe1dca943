package logic

import "math/rand/v2"

// RandomSource samples uniformly from the closed interval [min, max].
type RandomSource interface {
	Range(min, max float64) float64
}

// Rand is the default RandomSource backed by a PCG generator. It is not safe
// for concurrent use; one per frame loop.
type Rand struct {
	r *rand.Rand
}

// NewRand returns a source seeded with seed. Seed 0 picks a random seed.
func NewRand(seed uint64) *Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Rand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *Rand) Range(min, max float64) float64 {
	if max < min {
		min, max = max, min
	}
	if min == max {
		return min
	}
	v := min + r.r.Float64()*(max-min)
	if v > max {
		return max
	}
	return v
}
