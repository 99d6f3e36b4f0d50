package executor

import (
	"driftsim/allele"
	"driftsim/config"
	"driftsim/rng"
	"driftsim/simulation"
)

// deriveLookups builds the read-only tables every worker's Simulation
// shares: the nucleotide transition matrix, the initial deme matrix (one
// founding allele per deme), and the migration-rate matrix. r is used
// only for the random migration-rate/star-center derivation and is not
// retained.
func deriveLookups(cfg *config.Config, r *rng.RNG) (simulation.Lookups, error) {
	var lk simulation.Lookups
	var err error

	if cfg.Regime() == config.RegimeMutations {
		lk.TransitionMatrix, err = buildTransitionMatrix(cfg)
		if err != nil {
			return lk, err
		}
	}

	if cfg.Regime() == config.RegimeMigration {
		counts := cfg.InitialCounts()
		lk.InitialDemeMatrix = initialDemeMatrix(counts)

		sizes := make([]int, len(counts))
		copy(sizes, counts)

		lk.MigrationRates, err = buildMigrationRates(cfg, sizes, r, -1)
		if err != nil {
			return lk, err
		}
	}

	return lk, nil
}

func buildTransitionMatrix(cfg *config.Config) (allele.TransitionMatrix, error) {
	switch cfg.MutationModel() {
	case config.MutationKimura:
		return allele.Kimura(cfg.KimuraDelta())
	case config.MutationFelsenstein:
		return allele.Felsenstein(cfg.FelsensteinConstants())
	default:
		return allele.JukesCantor(), nil
	}
}

// initialDemeMatrix places every founding allele in its own deme: deme d
// holds counts[d] copies of allele d and none of any other allele.
func initialDemeMatrix(counts []int) [][]int {
	d := len(counts)
	m := make([][]int, d)
	for i := range m {
		m[i] = make([]int, d)
		m[i][i] = counts[i]
	}
	return m
}

// buildMigrationRates returns the D x D migration-rate matrix. Both
// modes honor the selected topology: user-supplied rates are masked to
// the topology's edges and pre-trimmed cyclically so no row exceeds its
// deme's size; randomized rates are drawn uniformly per edge, bounded by
// size[i] divided by deme i's out-degree under the chosen topology so the
// row-sum invariant holds by construction. forceCenter pins the star
// topology's center deme (tests only); pass -1 to draw it randomly.
func buildMigrationRates(cfg *config.Config, sizes []int, r *rng.RNG, forceCenter int) ([][]int, error) {
	d := len(sizes)

	adjacency := topologyAdjacency(cfg.MigrationTopology(), d, r, forceCenter)

	if cfg.MigrationMode() == config.MigrationUser {
		rows := cfg.MigrationRates()
		out := make([][]int, d)
		for i, row := range rows {
			masked := make([]int, d)
			for j, v := range row {
				if adjacency[i][j] {
					masked[j] = v
				}
			}
			out[i] = trimRow(masked, sizes[i])
		}
		return out, nil
	}

	out := make([][]int, d)
	for i := 0; i < d; i++ {
		out[i] = make([]int, d)

		degree := 0
		for j := 0; j < d; j++ {
			if adjacency[i][j] {
				degree++
			}
		}
		if degree == 0 {
			continue
		}

		perEdgeCap := sizes[i] / degree
		for j := 0; j < d; j++ {
			if adjacency[i][j] {
				out[i][j] = r.UniformInt(0, perEdgeCap)
			}
		}
	}

	return out, nil
}

// topologyAdjacency returns, for each ordered pair (i,j), whether the
// selected topology allows migration from i to j.
func topologyAdjacency(topology config.MigrationTopology, d int, r *rng.RNG, forceCenter int) [][]bool {
	adj := make([][]bool, d)
	for i := range adj {
		adj[i] = make([]bool, d)
	}

	switch topology {
	case config.TopologyStar:
		center := forceCenter
		if center < 0 {
			center = r.UniformInt(0, d-1)
		}
		for j := 0; j < d; j++ {
			if j == center {
				continue
			}
			adj[center][j] = true
			adj[j][center] = true
		}

	case config.TopologyRing:
		for i := 0; i < d; i++ {
			next := (i + 1) % d
			prev := (i - 1 + d) % d
			adj[i][next] = true
			adj[i][prev] = true
		}

	default: // TopologyComplete
		for i := 0; i < d; i++ {
			for j := 0; j < d; j++ {
				if i != j {
					adj[i][j] = true
				}
			}
		}
	}

	return adj
}

// trimRow decrements the currently-largest positive entries of row,
// cyclically, until its sum fits within limit. This is the executor's
// pre-trim of an over-subscribed user-supplied migration row, so the
// Simulation never observes an invalid matrix.
func trimRow(row []int, limit int) []int {
	sum := 0
	for _, v := range row {
		sum += v
	}

	for sum > limit {
		maxIdx := -1
		for i, v := range row {
			if v > 0 && (maxIdx < 0 || v > row[maxIdx]) {
				maxIdx = i
			}
		}
		if maxIdx < 0 {
			break
		}
		row[maxIdx]--
		sum--
	}

	return row
}
