package simulation

import "driftsim/allele"

// updateMutations runs the shared drift kernel, then the per-site
// mutation pass: for each marker position and each allele row, draw how
// many of that row's copies mutate at that site, then resolve each
// mutation's target nucleotide against the transition matrix and record
// the moved copy as a pending delta. Deltas are merged into the table
// only after every site has been processed, so an allele produced by a
// mutation this generation is never drawn as a mutation source again
// until the next Update.
func (s *Simulation) updateMutations() error {
	s.counts = s.drift(s.counts, s.populationSize)

	k := len(s.counts)
	credits := make(map[string]int)
	var appeared []allele.Allele

	for l := 0; l < s.markerCount; l++ {
		mu := s.mutationRates[l]

		for i := 0; i < k; i++ {
			if s.counts[i] == 0 {
				continue
			}

			m := s.rng.Binomial(s.counts[i], mu)
			source := s.identifiers[i]
			x := source.At(l)

			for j := 0; j < m; j++ {
				draw := s.rng.UniformReal(0, 1)
				y, err := s.transitionMatrix.Target(x, draw)
				if err != nil {
					return err
				}

				s.counts[i]--
				mutated := source.WithSubstitution(l, y)

				key := mutated.String()
				if _, pending := credits[key]; !pending {
					if _, exists := s.idIndex[key]; !exists {
						appeared = append(appeared, mutated)
					}
				}
				credits[key]++
			}
		}
	}

	for _, id := range appeared {
		s.idIndex[id.String()] = len(s.identifiers)
		s.identifiers = append(s.identifiers, id)
		s.counts = append(s.counts, 0)
	}
	for key, delta := range credits {
		s.counts[s.idIndex[key]] += delta
	}

	sum := 0
	for _, c := range s.counts {
		assertf(c >= 0, "mutations: negative count %d", c)
		sum += c
	}
	assertf(sum == s.populationSize, "mutations: population %d after mutation pass, want %d", sum, s.populationSize)

	return nil
}
