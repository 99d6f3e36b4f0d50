package config_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"driftsim/allele"
	"driftsim/config"
)

type BuilderSuite struct {
	suite.Suite
}

func TestBuilderSuite(t *testing.T) {
	suite.Run(t, new(BuilderSuite))
}

func mustAllele(t *testing.T, s string) allele.Allele {
	a, err := allele.FromString(s)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func (s *BuilderSuite) baseBuilder() *config.Builder {
	a1 := mustAllele(s.T(), "AC")
	a2 := mustAllele(s.T(), "GT")
	return config.NewBuilder().
		PopulationSize(30).
		Generations(10).
		Replicates(2).
		Seed(1).
		MarkerSites([]int{1, 2}).
		InitialAlleles([]allele.Allele{a1, a2}, []int{10, 20}).
		Regime(config.RegimeNone)
}

func (s *BuilderSuite) TestBuildSucceedsWithDefaults() {
	cfg, err := s.baseBuilder().Build()
	s.Require().NoError(err)
	s.Equal(30, cfg.PopulationSize())
	s.Equal(config.MutationJukesCantor, cfg.MutationModel())
	s.Len(cfg.MutationRates(), 2)
	for _, mu := range cfg.MutationRates() {
		s.Equal(config.DefaultMutationRate, mu)
	}
}

func (s *BuilderSuite) TestBuildRejectsCountMismatch() {
	a1 := mustAllele(s.T(), "AC")
	_, err := config.NewBuilder().
		PopulationSize(30).
		Generations(10).
		Replicates(2).
		MarkerSites([]int{1, 2}).
		InitialAlleles([]allele.Allele{a1}, []int{10, 20}).
		Regime(config.RegimeNone).
		Build()
	s.Error(err)
}

func (s *BuilderSuite) TestBuildRejectsCountSumMismatch() {
	_, err := s.baseBuilder().InitialAlleles(
		[]allele.Allele{mustAllele(s.T(), "AC"), mustAllele(s.T(), "GT")},
		[]int{10, 10},
	).Build()
	s.Error(err)
}

func (s *BuilderSuite) TestBuildRejectsDuplicateIdentifiers() {
	dup := mustAllele(s.T(), "AC")
	_, err := config.NewBuilder().
		PopulationSize(20).
		Generations(5).
		Replicates(1).
		MarkerSites([]int{1, 2}).
		InitialAlleles([]allele.Allele{dup, dup}, []int{10, 10}).
		Regime(config.RegimeNone).
		Build()
	s.Error(err)
}

func (s *BuilderSuite) TestKimuraTakesPrecedenceOverFelsenstein() {
	cfg, err := s.baseBuilder().
		KimuraDelta(0.6).
		FelsensteinConstants([4]float64{0.1, 0.2, 0.3, 0.4}).
		Build()
	s.Require().NoError(err)
	s.Equal(config.MutationKimura, cfg.MutationModel())
}

func (s *BuilderSuite) TestFelsensteinUsedWhenKimuraAbsent() {
	cfg, err := s.baseBuilder().
		FelsensteinConstants([4]float64{0.1, 0.2, 0.3, 0.4}).
		Build()
	s.Require().NoError(err)
	s.Equal(config.MutationFelsenstein, cfg.MutationModel())
}

func (s *BuilderSuite) TestSelectionRequiresOneCoeffPerAllele() {
	_, err := s.baseBuilder().
		Regime(config.RegimeSelection).
		SelectionCoeffs([]float64{-1}).
		Build()
	s.Error(err)
}

func (s *BuilderSuite) TestSelectionRejectsBelowLethalFloor() {
	_, err := s.baseBuilder().
		Regime(config.RegimeSelection).
		SelectionCoeffs([]float64{-1, -1.5}).
		Build()
	s.Error(err)
}

func (s *BuilderSuite) TestSelectionAcceptsLethalCoefficient() {
	cfg, err := s.baseBuilder().
		Regime(config.RegimeSelection).
		SelectionCoeffs([]float64{-1, 0.2}).
		Build()
	s.Require().NoError(err)
	s.Equal(-1.0, cfg.SelectionCoeffs()[0])
}

func (s *BuilderSuite) TestMigrationDefaultsDemeCountToAlleleCount() {
	cfg, err := s.baseBuilder().
		Regime(config.RegimeMigration).
		MigrationMode(config.MigrationRandom).
		Build()
	s.Require().NoError(err)
	s.Equal(2, cfg.DemeCount())
}

func (s *BuilderSuite) TestMigrationRejectsNonZeroDiagonal() {
	_, err := s.baseBuilder().
		Regime(config.RegimeMigration).
		MigrationRates([][]int{{1, 2}, {3, 0}}).
		Build()
	s.Error(err)
}

func (s *BuilderSuite) TestMigrationRejectsNegativeRate() {
	_, err := s.baseBuilder().
		Regime(config.RegimeMigration).
		MigrationRates([][]int{{0, -1}, {2, 0}}).
		Build()
	s.Error(err)
}

func (s *BuilderSuite) TestBottleneckRejectsInvertedWindow() {
	_, err := s.baseBuilder().
		Regime(config.RegimeBottleneck).
		Bottleneck(40, 20, 2.0).
		Build()
	s.Error(err)
}

func (s *BuilderSuite) TestBottleneckDefaultsAppliedByNewBuilder() {
	cfg, err := s.baseBuilder().Regime(config.RegimeBottleneck).Build()
	s.Require().NoError(err)
	s.Equal(config.DefaultBottleneckStart, cfg.BottleneckStart())
	s.Equal(config.DefaultBottleneckEnd, cfg.BottleneckEnd())
	s.Equal(config.DefaultBottleneckReduction, cfg.BottleneckReduction())
}

func (s *BuilderSuite) TestMinPrecisionMustBeTwoOrThree() {
	_, err := s.baseBuilder().MinPrecision(4).Build()
	s.Error(err)
}

func (s *BuilderSuite) TestInvalidRegimeTagRejected() {
	_, err := s.baseBuilder().Regime(config.Regime(99)).Build()
	s.Error(err)
}
