// Package rng wraps a per-worker math/rand source behind the four
// primitives the simulation kernels need: a uniform integer, a uniform
// real, a binomial draw, and a multinomial redistribution implemented as
// a sequence of conditional binomials.
//
// Each worker owns a *rand.Rand seeded by DeriveSeed rather than
// sharing a single generator behind a mutex; replicate streams stay
// independent and reproducible without lock contention.
package rng

import "math/rand"

// RNG is not safe for concurrent use; callers construct one per worker.
type RNG struct {
	r *rand.Rand
}

// New returns a generator seeded deterministically from seed.
func New(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewSource(seed))}
}

// DeriveSeed derives a per-worker seed from a single top-level seed so
// that replicate i always gets the same stream regardless of scheduling
// order, which is what reproducibility across runs requires.
func DeriveSeed(masterSeed int64, workerID int) int64 {
	h := uint64(masterSeed) + uint64(workerID+1)*0x9E3779B97F4A7C15
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return int64(h)
}

// UniformInt returns an integer uniformly distributed in {a,...,b}.
func (g *RNG) UniformInt(a, b int) int {
	if b < a {
		panic("rng: UniformInt requires a <= b")
	}
	return a + g.r.Intn(b-a+1)
}

// UniformReal returns a real uniformly distributed in [a,b).
func (g *RNG) UniformReal(a, b float64) float64 {
	if b < a {
		panic("rng: UniformReal requires a <= b")
	}
	return a + g.r.Float64()*(b-a)
}

// Binomial returns a draw from Binomial(n,p), n >= 0, 0 <= p <= 1.
func (g *RNG) Binomial(n int, p float64) int {
	if n <= 0 || p <= 0 {
		return 0
	}
	if p >= 1 {
		return n
	}

	count := 0
	for i := 0; i < n; i++ {
		if g.r.Float64() < p {
			count++
		}
	}
	return count
}

// Multinomial redistributes N trials across len(counts) buckets, treating
// counts as relative weights, via the conditional-binomial decomposition:
// total := sum(counts); for each bucket in order, draw
// Binomial(remaining, counts[i]/total) and shrink total/remaining by the
// consumed share. This ordering is load-bearing - it is the only form the
// Simulation kernels use, and changing the iteration order changes the
// marginal distributions.
func (g *RNG) Multinomial(counts []int, n int) []int {
	out := make([]int, len(counts))

	total := 0
	for _, c := range counts {
		total += c
	}

	remaining := n
	for i, c := range counts {
		if total == 0 {
			out[i] = 0
			continue
		}

		p := float64(c) / float64(total)
		x := g.Binomial(remaining, p)
		out[i] = x

		total -= c
		remaining -= x
	}

	return out
}

// MultinomialWeighted is Multinomial's conditional-binomial
// decomposition generalized to real-valued weights, for regimes (such as
// selection) where a bucket's relative weight isn't simply its current
// count.
func (g *RNG) MultinomialWeighted(weights []float64, n int) []int {
	out := make([]int, len(weights))

	total := 0.0
	for _, w := range weights {
		total += w
	}

	remaining := n
	for i, w := range weights {
		if total <= 0 {
			out[i] = 0
			continue
		}

		p := w / total
		if p < 0 {
			p = 0
		}
		x := g.Binomial(remaining, p)
		out[i] = x

		total -= w
		remaining -= x
	}

	return out
}
