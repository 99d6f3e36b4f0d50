package simulation

import "math"

// updateBottleneck applies an optional population-size
// edge at tStart/tEnd, then the shared drift kernel at whatever
// populationSize is current. When the original size is not divisible by
// the reduction factor, restoration multiplies the floored, reduced
// value back up - the result can differ from the original by the floor
// residue; that is the specified behavior, not a bug.
func (s *Simulation) updateBottleneck(t int) error {
	if t == s.bottleneckStart {
		s.populationSize = int(math.Floor(float64(s.populationSize) / s.bottleneckReduction))
	}
	if t == s.bottleneckEnd {
		s.populationSize = int(float64(s.populationSize) * s.bottleneckReduction)
	}

	s.counts = s.drift(s.counts, s.populationSize)
	return nil
}
