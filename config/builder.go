package config

import (
	"github.com/pkg/errors"

	"driftsim/allele"
)

// DefaultMutationRate is applied to every marker site whose rate was not
// supplied.
const DefaultMutationRate = 1e-6

// DefaultBottleneckReduction, DefaultBottleneckStart and
// DefaultBottleneckEnd are applied by Builder when REDUCTION/START/END
// are not supplied.
const (
	DefaultBottleneckReduction = 2.0
	DefaultBottleneckStart     = 20
	DefaultBottleneckEnd       = 40
)

// Builder accumulates the fields of a Config and validates them eagerly
// on Build.
type Builder struct {
	cfg Config

	kimuraDelta *float64
	felsenstein *[4]float64

	mutationRatesSet bool
}

// NewBuilder returns a Builder with the package defaults applied.
func NewBuilder() *Builder {
	b := &Builder{}
	b.cfg.minPrecision = 2
	b.cfg.bottleneckReduction = DefaultBottleneckReduction
	b.cfg.bottleneckStart = DefaultBottleneckStart
	b.cfg.bottleneckEnd = DefaultBottleneckEnd
	b.cfg.migrationPerDeme = true
	return b
}

func (b *Builder) PopulationSize(n int) *Builder { b.cfg.populationSize = n; return b }
func (b *Builder) Generations(t int) *Builder    { b.cfg.generations = t; return b }
func (b *Builder) Replicates(r int) *Builder     { b.cfg.replicates = r; return b }
func (b *Builder) Seed(seed int64) *Builder      { b.cfg.seed = seed; return b }
func (b *Builder) MarkerSites(sites []int) *Builder {
	b.cfg.markerSites = append([]int(nil), sites...)
	return b
}

func (b *Builder) InitialAlleles(alleles []allele.Allele, counts []int) *Builder {
	b.cfg.initialAlleles = append([]allele.Allele(nil), alleles...)
	b.cfg.initialCounts = append([]int(nil), counts...)
	return b
}

func (b *Builder) Regime(r Regime) *Builder { b.cfg.regime = r; return b }

func (b *Builder) MutationRates(rates []float64) *Builder {
	b.cfg.mutationRates = append([]float64(nil), rates...)
	b.mutationRatesSet = true
	return b
}

func (b *Builder) KimuraDelta(delta float64) *Builder {
	b.kimuraDelta = &delta
	return b
}

func (b *Builder) FelsensteinConstants(c [4]float64) *Builder {
	b.felsenstein = &c
	return b
}

func (b *Builder) SelectionCoeffs(s []float64) *Builder {
	b.cfg.selectionCoeffs = append([]float64(nil), s...)
	return b
}

func (b *Builder) MigrationTopology(t MigrationTopology) *Builder {
	b.cfg.migrationTopology = t
	return b
}

func (b *Builder) MigrationMode(m MigrationMode) *Builder {
	b.cfg.migrationMode = m
	return b
}

func (b *Builder) MigrationRates(rates [][]int) *Builder {
	out := make([][]int, len(rates))
	for i, row := range rates {
		out[i] = append([]int(nil), row...)
	}
	b.cfg.migrationRates = out
	return b
}

func (b *Builder) DemeCount(d int) *Builder { b.cfg.demeCount = d; return b }

func (b *Builder) Bottleneck(start, end int, reduction float64) *Builder {
	b.cfg.bottleneckStart = start
	b.cfg.bottleneckEnd = end
	b.cfg.bottleneckReduction = reduction
	return b
}

func (b *Builder) MinPrecision(p int) *Builder {
	b.cfg.minPrecision = p
	return b
}

func (b *Builder) MigrationPerDeme(perDeme bool) *Builder {
	b.cfg.migrationPerDeme = perDeme
	return b
}

// Build validates every field and, on success, resolves the mutation
// model and returns an immutable *Config.
func (b *Builder) Build() (*Config, error) {
	cfg := b.cfg

	if cfg.populationSize <= 0 {
		return nil, errors.Errorf("config: populationSize must be > 0, got %d", cfg.populationSize)
	}
	if cfg.generations <= 0 {
		return nil, errors.Errorf("config: generations must be > 0, got %d", cfg.generations)
	}
	if cfg.replicates <= 0 {
		return nil, errors.Errorf("config: replicates must be > 0, got %d", cfg.replicates)
	}
	if len(cfg.markerSites) < 1 {
		return nil, errors.New("config: at least one marker site is required")
	}

	switch cfg.regime {
	case RegimeNone, RegimeMutations, RegimeMigration, RegimeSelection, RegimeBottleneck:
	default:
		return nil, errors.Errorf("config: regime %d is not one of the five supported tags", cfg.regime)
	}

	if len(cfg.initialAlleles) != len(cfg.initialCounts) {
		return nil, errors.Errorf("config: %d initial alleles but %d counts", len(cfg.initialAlleles), len(cfg.initialCounts))
	}
	sum := 0
	seen := make(map[string]bool, len(cfg.initialAlleles))
	for i, a := range cfg.initialAlleles {
		if a.Len() != len(cfg.markerSites) {
			return nil, errors.Errorf("config: allele %q has length %d, expected %d", a.String(), a.Len(), len(cfg.markerSites))
		}
		if seen[a.String()] {
			return nil, errors.Errorf("config: duplicate initial allele identifier %q", a.String())
		}
		seen[a.String()] = true
		if cfg.initialCounts[i] < 0 {
			return nil, errors.Errorf("config: negative initial count for allele %q", a.String())
		}
		sum += cfg.initialCounts[i]
	}
	if sum != cfg.populationSize {
		return nil, errors.Errorf("config: sum of initial counts (%d) != populationSize (%d)", sum, cfg.populationSize)
	}

	if err := resolveMutationModel(&cfg, b); err != nil {
		return nil, err
	}

	if cfg.regime == RegimeSelection {
		if len(cfg.selectionCoeffs) != len(cfg.initialAlleles) {
			return nil, errors.Errorf("config: %d selection coefficients, expected one per initial allele (%d)", len(cfg.selectionCoeffs), len(cfg.initialAlleles))
		}
		for i, s := range cfg.selectionCoeffs {
			if s < -1 {
				return nil, errors.Errorf("config: selection coefficient[%d]=%v below the -1 lethal floor", i, s)
			}
		}
	}

	if cfg.regime == RegimeMigration {
		if cfg.demeCount <= 0 {
			// The lookups derivation places every founding allele in its
			// own deme, so the natural default deme count is K.
			cfg.demeCount = len(cfg.initialAlleles)
		}
		if cfg.migrationMode == MigrationUser {
			if len(cfg.migrationRates) != cfg.demeCount {
				return nil, errors.Errorf("config: migration rate matrix has %d rows, expected %d", len(cfg.migrationRates), cfg.demeCount)
			}
			for i, row := range cfg.migrationRates {
				if len(row) != cfg.demeCount {
					return nil, errors.Errorf("config: migration rate row %d has %d entries, expected %d", i, len(row), cfg.demeCount)
				}
				if row[i] != 0 {
					return nil, errors.Errorf("config: migration rate diagonal mig[%d][%d] must be 0", i, i)
				}
				for _, v := range row {
					if v < 0 {
						return nil, errors.Errorf("config: migration rate row %d has a negative entry", i)
					}
				}
			}
		}
	}

	if cfg.regime == RegimeBottleneck {
		if cfg.bottleneckStart > cfg.bottleneckEnd {
			return nil, errors.Errorf("config: bottleneck START (%d) must be <= END (%d)", cfg.bottleneckStart, cfg.bottleneckEnd)
		}
		if cfg.bottleneckReduction <= 0 {
			return nil, errors.Errorf("config: bottleneck REDUCTION must be > 0, got %v", cfg.bottleneckReduction)
		}
	}

	if cfg.minPrecision != 2 && cfg.minPrecision != 3 {
		return nil, errors.Errorf("config: minPrecision must be 2 or 3, got %d", cfg.minPrecision)
	}

	return &cfg, nil
}

// resolveMutationModel applies the model precedence: Kimura (if a
// valid delta was supplied), else Felsenstein (if four constants were
// supplied), else Jukes-Cantor. It also fills in the default per-site
// mutation rate for any unset site.
func resolveMutationModel(cfg *Config, b *Builder) error {
	if len(cfg.mutationRates) == 0 {
		cfg.mutationRates = make([]float64, len(cfg.markerSites))
	}
	if len(cfg.mutationRates) != len(cfg.markerSites) {
		return errors.Errorf("config: %d mutation rates, expected one per marker site (%d)", len(cfg.mutationRates), len(cfg.markerSites))
	}
	for i, mu := range cfg.mutationRates {
		if mu == 0 && !b.mutationRatesSet {
			cfg.mutationRates[i] = DefaultMutationRate
		} else if mu < 0 || mu >= 1 {
			return errors.Errorf("config: mutation rate[%d]=%v outside [0,1)", i, mu)
		}
	}

	switch {
	case b.kimuraDelta != nil && *b.kimuraDelta >= 1.0/3.0 && *b.kimuraDelta <= 1.0:
		cfg.mutationModel = MutationKimura
		cfg.kimuraDelta = *b.kimuraDelta

	case b.felsenstein != nil:
		cfg.mutationModel = MutationFelsenstein
		cfg.felsensteinConsts = *b.felsenstein

	default:
		cfg.mutationModel = MutationJukesCantor
	}

	return nil
}
