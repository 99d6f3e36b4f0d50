// Package simulation implements the per-replicate state machine: one
// Simulation owns the current generation's state (an allele table for
// regimes none/mutations/selection/bottleneck, or a deme x allele matrix
// for migration) plus whatever read-only lookup tables its regime needs.
//
// Regimes are expressed as a tag on Simulation rather than as a type
// hierarchy - Update is a switch on that tag, and each regime's state
// lives in its own (mostly nil) fields rather than a shared god-struct.
package simulation

import (
	"driftsim/allele"
	"driftsim/config"
	"driftsim/rng"
)

// Lookups carries the read-only tables the executor derives once from a
// Config and shares, by reference, across every worker's Simulation:
// the nucleotide transition matrix, the initial per-deme allele matrix,
// and the migration-rate matrix. Only the fields relevant to the
// selected regime are populated.
type Lookups struct {
	TransitionMatrix  allele.TransitionMatrix
	InitialDemeMatrix [][]int // D x K
	MigrationRates    [][]int // D x D
}

// Simulation is the tagged-variant per-replicate state machine.
type Simulation struct {
	regime config.Regime
	rng    *rng.RNG

	markerCount  int
	minPrecision int
	precision    int

	// Shared allele ordering, insertion order. identifiers/idIndex are
	// used directly by regimes none/mutations/selection/bottleneck;
	// migration uses the same ordering to index its deme matrix columns.
	identifiers []allele.Allele
	idIndex     map[string]int

	// regimes none, mutations, selection, bottleneck
	counts         []int
	populationSize int

	// mutations
	mutationRates    []float64
	transitionMatrix allele.TransitionMatrix

	// selection
	selectionCoeffs []float64

	// migration
	demeCounts [][]int // D x K
	migRates   [][]int // D x D

	// bottleneck
	basePopulationSize  int
	bottleneckStart     int
	bottleneckEnd       int
	bottleneckReduction float64
	bottleneckActive    bool
}

// New constructs a Simulation for cfg's selected regime, its initial
// state, and the shared lookups the executor derived.
func New(cfg *config.Config, lookups Lookups, r *rng.RNG) *Simulation {
	s := &Simulation{
		regime:       cfg.Regime(),
		rng:          r,
		markerCount:  cfg.MarkerCount(),
		minPrecision: cfg.MinPrecision(),
	}

	s.identifiers = cfg.InitialAlleles()
	s.idIndex = make(map[string]int, len(s.identifiers))
	for i, a := range s.identifiers {
		s.idIndex[a.String()] = i
	}
	s.precision = calcPrecision(s.markerCount, s.minPrecision)

	switch s.regime {
	case config.RegimeNone:
		s.counts = cfg.InitialCounts()
		s.populationSize = cfg.PopulationSize()

	case config.RegimeMutations:
		s.counts = cfg.InitialCounts()
		s.populationSize = cfg.PopulationSize()
		s.mutationRates = cfg.MutationRates()
		s.transitionMatrix = lookups.TransitionMatrix

	case config.RegimeSelection:
		s.counts = cfg.InitialCounts()
		s.populationSize = cfg.PopulationSize()
		s.selectionCoeffs = cfg.SelectionCoeffs()

	case config.RegimeMigration:
		s.demeCounts = cloneMatrix(lookups.InitialDemeMatrix)
		s.migRates = lookups.MigrationRates
		s.populationSize = cfg.PopulationSize()

	case config.RegimeBottleneck:
		s.counts = cfg.InitialCounts()
		s.populationSize = cfg.PopulationSize()
		s.basePopulationSize = cfg.PopulationSize()
		s.bottleneckStart = cfg.BottleneckStart()
		s.bottleneckEnd = cfg.BottleneckEnd()
		s.bottleneckReduction = cfg.BottleneckReduction()
	}

	return s
}

// Update advances the simulation by one generation, given the 0-based
// generation index t.
func (s *Simulation) Update(t int) error {
	switch s.regime {
	case config.RegimeNone:
		return s.updateNone()
	case config.RegimeMutations:
		return s.updateMutations()
	case config.RegimeSelection:
		return s.updateSelection()
	case config.RegimeMigration:
		return s.updateMigration()
	case config.RegimeBottleneck:
		return s.updateBottleneck(t)
	default:
		panic("simulation: unknown regime tag")
	}
}

// PopulationSize returns the current effective population size (constant
// except across the bottleneck's reduction/restoration edges).
func (s *Simulation) PopulationSize() int {
	return s.populationSize
}

// Width returns the number of allele columns currently in the table -
// only regimes that can append new identifiers (mutations) ever grow
// this past len(InitialAlleles()).
func (s *Simulation) Width() int {
	return len(s.identifiers)
}

// demeSizes returns each row's current total. Deme totals are not cached
// but recomputed from the matrix; updateMigration uses them to check that
// every deme's total is unchanged after each exchange.
func demeSizes(demeCounts [][]int) []int {
	sizes := make([]int, len(demeCounts))
	for d, row := range demeCounts {
		sum := 0
		for _, c := range row {
			sum += c
		}
		sizes[d] = sum
	}
	return sizes
}

func cloneMatrix(m [][]int) [][]int {
	out := make([][]int, len(m))
	for i, row := range m {
		out[i] = append([]int(nil), row...)
	}
	return out
}

func calcPrecision(alleleIDLen, minPrecision int) int {
	// the recurring 2 is the width of "0.", the part before the precision
	if alleleIDLen <= 2+minPrecision {
		return minPrecision
	}
	return alleleIDLen - 2
}
