package simulation

// updateNone implements the pure-drift regime: a single multinomial
// re-sampling of the allele table at the constant population size.
func (s *Simulation) updateNone() error {
	s.counts = s.drift(s.counts, s.populationSize)
	return nil
}
