package ingest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"driftsim/ingest"
	"driftsim/rng"
)

type IngestSuite struct {
	suite.Suite
}

func TestIngestSuite(t *testing.T) {
	suite.Run(t, new(IngestSuite))
}

func (s *IngestSuite) writeFile(name, content string) string {
	dir := s.T().TempDir()
	path := filepath.Join(dir, name)
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (s *IngestSuite) TestParseConfigFileReadsScalarsAndLists() {
	path := s.writeFile("run.conf", `
# a comment line, and a blank line follow

GEN=10
REP=4
SITES=1|3|5
MODE=1
MUT=0.01|0.02|0.03
`)
	raw, err := ingest.ParseConfigFile(path)
	s.Require().NoError(err)

	s.Equal(10, raw.Generations)
	s.Equal(4, raw.Replicates)
	s.Equal([]int{1, 3, 5}, raw.Sites)
	s.Equal(1, raw.Mode)
	s.Equal([]float64{0.01, 0.02, 0.03}, raw.Mut)
}

func (s *IngestSuite) TestParseConfigFileMigrationRates() {
	path := s.writeFile("run.conf", "MIG_RATES=3|5|2\n")
	raw, err := ingest.ParseConfigFile(path)
	s.Require().NoError(err)

	s.Equal([]int{3, 5, 2}, raw.MigRates)
}

func (s *IngestSuite) TestBuildConfigExpandsMigrationRateRows() {
	raw := &ingest.RawConfig{
		Generations: 5,
		Replicates:  2,
		Sites:       []int{1, 2},
		Mode:        2,
		MigRates:    []int{3, 5},
	}

	alleles, counts, err := ingest.ParseFasta(s.writeFile("f.fasta", ">a\nAC\n>b\nGT\n"), raw.Sites, rng.New(1))
	s.Require().NoError(err)

	cfg, err := ingest.BuildConfig(raw, alleles, counts, 7)
	s.Require().NoError(err)

	s.Equal([][]int{{0, 3}, {5, 0}}, cfg.MigrationRates())
}

func (s *IngestSuite) TestParseConfigFileRejectsMissingFile() {
	_, err := ingest.ParseConfigFile("/nonexistent/path/run.conf")
	s.Error(err)
}

func (s *IngestSuite) TestParseFastaMergesIdenticalProjections() {
	path := s.writeFile("founders.fasta", ">seq1\nACGT\n>seq2\nACTT\n>seq3\nACGT\n")

	alleles, counts, err := ingest.ParseFasta(path, []int{1, 2, 3, 4}, rng.New(1))
	s.Require().NoError(err)

	s.Len(alleles, 2)
	s.Equal("ACGT", alleles[0].String())
	s.Equal(2, counts[0])
	s.Equal("ACTT", alleles[1].String())
	s.Equal(1, counts[1])
}

func (s *IngestSuite) TestParseFastaProjectsOnlyMarkerSites() {
	path := s.writeFile("founders.fasta", ">seq1\nAACCGGTT\n")

	alleles, _, err := ingest.ParseFasta(path, []int{1, 4, 8}, rng.New(1))
	s.Require().NoError(err)

	s.Equal("ACT", alleles[0].String())
}

func (s *IngestSuite) TestParseFastaRejectsSiteOutOfRange() {
	path := s.writeFile("founders.fasta", ">seq1\nACGT\n")

	_, _, err := ingest.ParseFasta(path, []int{1, 9}, rng.New(1))
	s.Error(err)
}

func (s *IngestSuite) TestBuildConfigAssemblesFromRawAndFounders() {
	raw := &ingest.RawConfig{
		Generations: 5,
		Replicates:  2,
		Sites:       []int{1, 2},
		Mode:        0,
	}

	alleles, counts, err := ingest.ParseFasta(s.writeFile("f.fasta", ">a\nAC\n>b\nGT\n"), raw.Sites, rng.New(1))
	s.Require().NoError(err)

	cfg, err := ingest.BuildConfig(raw, alleles, counts, 7)
	s.Require().NoError(err)

	s.Equal(2, cfg.PopulationSize())
	s.Equal(5, cfg.Generations())
	s.Equal(int64(7), cfg.Seed())
}

func (s *IngestSuite) TestBuildConfigAppliesRunLevelKnobs() {
	raw := &ingest.RawConfig{
		Generations:    5,
		Replicates:     2,
		Sites:          []int{1, 2},
		Mode:           0,
		MinPrecision:   3,
		AggregateDemes: true,
	}

	alleles, counts, err := ingest.ParseFasta(s.writeFile("f.fasta", ">a\nAC\n>b\nGT\n"), raw.Sites, rng.New(1))
	s.Require().NoError(err)

	cfg, err := ingest.BuildConfig(raw, alleles, counts, 7)
	s.Require().NoError(err)

	s.Equal(3, cfg.MinPrecision())
	s.False(cfg.MigrationPerDeme())
}
