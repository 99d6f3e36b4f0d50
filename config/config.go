// Package config holds the immutable digest every simulation run is
// built from: population size, generation and replicate counts, marker
// sites, the founding allele multiset, the selected regime, and every
// regime-specific parameter table. A Config is built once by Builder and
// is thereafter read-only, shared by reference across all replicate
// workers.
package config

import "driftsim/allele"

// Regime is the execution regime selected by the MODE bitflag. Exactly
// one value is active per run; it is not a combinable bitmask in
// practice, but the tag space keeps the bitflag values.
type Regime int

const (
	RegimeNone       Regime = 0
	RegimeMutations  Regime = 1
	RegimeMigration  Regime = 2
	RegimeSelection  Regime = 4
	RegimeBottleneck Regime = 8
)

func (r Regime) String() string {
	switch r {
	case RegimeNone:
		return "none"
	case RegimeMutations:
		return "mutations"
	case RegimeMigration:
		return "migration"
	case RegimeSelection:
		return "selection"
	case RegimeBottleneck:
		return "bottleneck"
	default:
		return "unknown"
	}
}

// MutationModel selects the 4x4 nucleotide transition parameterization.
type MutationModel int

const (
	MutationJukesCantor MutationModel = iota
	MutationKimura
	MutationFelsenstein
)

// MigrationTopology selects the fixed inter-deme graph.
type MigrationTopology int

const (
	TopologyComplete MigrationTopology = iota
	TopologyStar
	TopologyRing
)

// MigrationMode selects whether migration rates come from the user or
// are randomly generated by the executor.
type MigrationMode int

const (
	MigrationUser MigrationMode = iota
	MigrationRandom
)

// Config is the immutable digest a Simulation and the replicate executor
// are built from. Every field is read-only after Builder.Build returns.
type Config struct {
	populationSize int
	generations    int
	replicates     int
	markerSites    []int

	initialAlleles []allele.Allele
	initialCounts  []int

	regime Regime

	mutationModel     MutationModel
	mutationRates     []float64
	kimuraDelta       float64
	felsensteinConsts [4]float64

	selectionCoeffs []float64

	demeCount         int
	migrationTopology MigrationTopology
	migrationMode     MigrationMode
	migrationRates    [][]int

	bottleneckStart     int
	bottleneckEnd       int
	bottleneckReduction float64

	minPrecision     int
	migrationPerDeme bool
	seed             int64
}

func (c *Config) PopulationSize() int                  { return c.populationSize }
func (c *Config) Generations() int                     { return c.generations }
func (c *Config) Replicates() int                      { return c.replicates }
func (c *Config) MarkerSites() []int                   { return append([]int(nil), c.markerSites...) }
func (c *Config) MarkerCount() int                     { return len(c.markerSites) }
func (c *Config) Regime() Regime                       { return c.regime }
func (c *Config) MutationModel() MutationModel         { return c.mutationModel }
func (c *Config) KimuraDelta() float64                 { return c.kimuraDelta }
func (c *Config) FelsensteinConstants() [4]float64     { return c.felsensteinConsts }
func (c *Config) Seed() int64                          { return c.seed }
func (c *Config) MinPrecision() int                    { return c.minPrecision }
func (c *Config) MigrationPerDeme() bool               { return c.migrationPerDeme }
func (c *Config) DemeCount() int                       { return c.demeCount }
func (c *Config) MigrationTopology() MigrationTopology { return c.migrationTopology }
func (c *Config) MigrationMode() MigrationMode         { return c.migrationMode }
func (c *Config) BottleneckStart() int                 { return c.bottleneckStart }
func (c *Config) BottleneckEnd() int                   { return c.bottleneckEnd }
func (c *Config) BottleneckReduction() float64         { return c.bottleneckReduction }

// InitialAlleles returns the founding allele identifiers, in insertion
// order. The returned slice is a defensive copy.
func (c *Config) InitialAlleles() []allele.Allele {
	return append([]allele.Allele(nil), c.initialAlleles...)
}

// InitialCounts returns the founding per-allele counts, parallel to
// InitialAlleles.
func (c *Config) InitialCounts() []int {
	return append([]int(nil), c.initialCounts...)
}

// MutationRates returns the per-site mutation rate vector, length
// MarkerCount().
func (c *Config) MutationRates() []float64 {
	return append([]float64(nil), c.mutationRates...)
}

// SelectionCoeffs returns the per-allele selection coefficient vector,
// length len(InitialAlleles()) at config time (it does not grow even
// though the allele table can, under the mutation regime only).
func (c *Config) SelectionCoeffs() []float64 {
	return append([]float64(nil), c.selectionCoeffs...)
}

// MigrationRates returns the user-supplied D x D migration magnitude
// matrix, or nil when none was supplied. It is returned as given in
// either MigrationMode.
func (c *Config) MigrationRates() [][]int {
	if c.migrationRates == nil {
		return nil
	}
	out := make([][]int, len(c.migrationRates))
	for i, row := range c.migrationRates {
		out[i] = append([]int(nil), row...)
	}
	return out
}
