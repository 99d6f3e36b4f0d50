package simulation

// updateSelection does not run the generic drift kernel.
// Instead each row's weight is counts[i]*(1+s[i]) and a conditional-
// binomial decomposition runs directly over those weights - the same
// algorithm as the drift kernel's multinomial, but driven by weights
// instead of raw counts. A coefficient of -1 drives a row's weight (and
// therefore its post-update count) to exactly zero.
func (s *Simulation) updateSelection() error {
	weights := make([]float64, len(s.counts))
	for i, c := range s.counts {
		weights[i] = float64(c) * (1 + s.selectionCoeffs[i])
	}

	s.counts = s.rng.MultinomialWeighted(weights, s.populationSize)
	return nil
}
