package sink_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/suite"

	"driftsim/sink"
)

type SinkSuite struct {
	suite.Suite
}

func TestSinkSuite(t *testing.T) {
	suite.Run(t, new(SinkSuite))
}

func (s *SinkSuite) TestWriteRowNoPaddingForSmallGenerationCounts() {
	var buf bytes.Buffer
	sk := sink.New(&buf, 10)

	s.Require().NoError(sk.WriteRow(3, []string{"0.50", "0.50"}))
	s.Require().NoError(sk.Flush())

	s.Equal("3\t0.50\t0.50\n", buf.String())
}

func (s *SinkSuite) TestWriteRowPadsStepForLargeGenerationCounts() {
	var buf bytes.Buffer
	sk := sink.New(&buf, 1000)

	s.Require().NoError(sk.WriteRow(3, []string{"x"}))
	s.Require().NoError(sk.Flush())

	s.Equal("   3\tx\n", buf.String())
}

func (s *SinkSuite) TestMultipleRowsFlushInOrder() {
	var buf bytes.Buffer
	sk := sink.New(&buf, 5)

	s.Require().NoError(sk.WriteRow(0, []string{"a"}))
	s.Require().NoError(sk.WriteRow(1, []string{"b"}))
	s.Require().NoError(sk.Flush())

	s.Equal("0\ta\n1\tb\n", buf.String())
}
