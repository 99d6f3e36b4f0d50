package rng_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"driftsim/rng"
)

type RNGSuite struct {
	suite.Suite
}

func TestRNGSuite(t *testing.T) {
	suite.Run(t, new(RNGSuite))
}

func (s *RNGSuite) TestDeriveSeedIsStableAndDistinct() {
	a := rng.DeriveSeed(42, 0)
	b := rng.DeriveSeed(42, 1)
	c := rng.DeriveSeed(42, 0)

	s.Equal(a, c, "deriving the same worker ID twice must be stable")
	s.NotEqual(a, b, "distinct worker IDs must not collide for a small sample")
}

func (s *RNGSuite) TestUniformIntBounds() {
	g := rng.New(1)
	for i := 0; i < 1000; i++ {
		v := g.UniformInt(3, 7)
		s.GreaterOrEqual(v, 3)
		s.LessOrEqual(v, 7)
	}
}

func (s *RNGSuite) TestUniformIntDegenerate() {
	g := rng.New(1)
	s.Equal(5, g.UniformInt(5, 5))
}

func (s *RNGSuite) TestBinomialEdgeCases() {
	g := rng.New(1)
	s.Equal(0, g.Binomial(0, 0.5))
	s.Equal(0, g.Binomial(10, 0))
	s.Equal(10, g.Binomial(10, 1))
}

func (s *RNGSuite) TestBinomialWithinBounds() {
	g := rng.New(7)
	for i := 0; i < 200; i++ {
		x := g.Binomial(50, 0.3)
		s.GreaterOrEqual(x, 0)
		s.LessOrEqual(x, 50)
	}
}

func (s *RNGSuite) TestMultinomialConservesTotal() {
	g := rng.New(99)
	counts := []int{10, 20, 30, 0, 5}
	out := g.Multinomial(counts, 65)

	sum := 0
	for _, c := range out {
		s.GreaterOrEqual(c, 0)
		sum += c
	}
	s.Equal(65, sum)
	s.Len(out, len(counts))
}

func (s *RNGSuite) TestMultinomialZeroWeightBucketStaysZero() {
	g := rng.New(5)
	counts := []int{0, 100}
	out := g.Multinomial(counts, 40)
	s.Equal(0, out[0])
	s.Equal(40, out[1])
}

func (s *RNGSuite) TestMultinomialAllZeroWeightsYieldsAllZero() {
	g := rng.New(5)
	out := g.Multinomial([]int{0, 0, 0}, 10)
	s.Equal([]int{0, 0, 0}, out)
}

func (s *RNGSuite) TestMultinomialWeightedConservesTotal() {
	g := rng.New(11)
	weights := []float64{1.5, 0, 3.0, 0.5}
	out := g.MultinomialWeighted(weights, 50)

	sum := 0
	for _, c := range out {
		sum += c
	}
	s.Equal(50, sum)
	s.Equal(0, out[1], "zero-weight bucket must receive nothing")
}

func (s *RNGSuite) TestMultinomialWeightedNegativeWeightClampsToZeroProbability() {
	g := rng.New(11)
	weights := []float64{-1, 5}
	out := g.MultinomialWeighted(weights, 20)
	s.Equal(0, out[0], "a weight clamped below zero must draw nothing")
	s.Equal(20, out[1])
}
