package ingest

import (
	"github.com/pkg/errors"

	"driftsim/allele"
	"driftsim/config"
)

// BuildConfig assembles a RawConfig and a founding population (as read by
// ParseFasta) into a validated *config.Config. seed is the top-level RNG
// seed, supplied separately since it is a command-line concern, not a
// config-file field.
func BuildConfig(raw *RawConfig, alleles []allele.Allele, counts []int, seed int64) (*config.Config, error) {
	populationSize := 0
	for _, c := range counts {
		populationSize += c
	}

	b := config.NewBuilder().
		PopulationSize(populationSize).
		Generations(raw.Generations).
		Replicates(raw.Replicates).
		Seed(seed).
		MarkerSites(raw.Sites).
		InitialAlleles(alleles, counts).
		Regime(config.Regime(raw.Mode))

	if len(raw.Mut) > 0 {
		b = b.MutationRates(raw.Mut)
	}
	if raw.MutKimura != nil {
		b = b.KimuraDelta(*raw.MutKimura)
	}
	if raw.MutFelsenstein != nil {
		b = b.FelsensteinConstants(*raw.MutFelsenstein)
	}

	if len(raw.Sel) > 0 {
		b = b.SelectionCoeffs(raw.Sel)
	}

	b = b.MigrationTopology(config.MigrationTopology(raw.MigModel))
	b = b.MigrationMode(config.MigrationMode(raw.MigMode))
	if len(raw.MigRates) > 0 {
		b = b.MigrationRates(expandMigrationRates(raw.MigRates))
	}
	if raw.AggregateDemes {
		b = b.MigrationPerDeme(false)
	}
	if raw.MinPrecision != 0 {
		b = b.MinPrecision(raw.MinPrecision)
	}

	if raw.Reduction != nil || raw.Start != nil || raw.End != nil {
		start := config.DefaultBottleneckStart
		end := config.DefaultBottleneckEnd
		reduction := config.DefaultBottleneckReduction
		if raw.Start != nil {
			start = *raw.Start
		}
		if raw.End != nil {
			end = *raw.End
		}
		if raw.Reduction != nil {
			reduction = *raw.Reduction
		}
		b = b.Bottleneck(start, end, reduction)
	}

	cfg, err := b.Build()
	if err != nil {
		return nil, errors.Wrap(err, "ingest: assembling config")
	}
	return cfg, nil
}

// expandMigrationRates turns the flat per-row magnitudes of the
// MIG_RATES key into the D x D matrix the executor consumes: row i
// carries magnitude rates[i] toward every other deme, zero on the
// diagonal. The executor masks the matrix with the selected topology
// and pre-trims over-subscribed rows.
func expandMigrationRates(rates []int) [][]int {
	d := len(rates)
	out := make([][]int, d)
	for i, m := range rates {
		out[i] = make([]int, d)
		for j := range out[i] {
			if i != j {
				out[i][j] = m
			}
		}
	}
	return out
}
