package simulation

// drift runs one multinomial re-sampling of size N over counts, via the
// conditional-binomial decomposition in rng.Multinomial. It is the one
// kernel every regime except selection and migration shares verbatim.
func (s *Simulation) drift(counts []int, n int) []int {
	next := s.rng.Multinomial(counts, n)

	residual := n
	for _, c := range next {
		assertf(c >= 0, "drift: negative count %d", c)
		residual -= c
	}
	assertf(residual == 0, "drift: residual population %d after resampling to %d", residual, n)

	return next
}
