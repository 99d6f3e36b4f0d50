package simulation

// updateMigration advances the deme x allele matrix one generation. No
// drift is applied beyond the intra-deme resampling baked into the
// multinomial draws below: migration is the only source of stochastic
// change in this regime.
func (s *Simulation) updateMigration() error {
	d := len(s.demeCounts)
	k := len(s.identifiers)
	sizes := demeSizes(s.demeCounts)

	outgoing := make([][][]int, d)
	stay := make([][]int, d)

	for i := 0; i < d; i++ {
		outgoing[i] = make([][]int, d)

		gone := 0
		for j := 0; j < d; j++ {
			if i == j {
				outgoing[i][j] = make([]int, k)
				continue
			}
			n := s.migRates[i][j]
			gone += n
			outgoing[i][j] = s.rng.Multinomial(s.demeCounts[i], n)
		}

		stay[i] = s.rng.Multinomial(s.demeCounts[i], sizes[i]-gone)
	}

	next := make([][]int, d)
	for j := 0; j < d; j++ {
		next[j] = append([]int(nil), stay[j]...)
	}
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			if i == j {
				continue
			}
			for a := 0; a < k; a++ {
				next[j][a] += outgoing[i][j][a]
			}
		}
	}

	for i, size := range demeSizes(next) {
		assertf(size == sizes[i], "migration: deme %d size %d after exchange, want %d", i, size, sizes[i])
	}

	s.demeCounts = next
	return nil
}
