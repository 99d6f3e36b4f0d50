package simulation

import (
	"fmt"
	"strconv"
	"strings"

	"driftsim/config"
)

const demeGroupSeparator = "  "

// Precision returns the number of fractional digits used by
// FrequenciesString, max(minPrecision, L-2).
func (s *Simulation) Precision() int {
	return s.precision
}

// FrequenciesString formats the current generation's allele frequencies,
// pipe-separated in insertion order. Under the migration regime it emits
// one pipe-separated group per deme (in deme order), groups separated by
// a double space. The one-column-per-allele form is
// AggregatedFrequenciesString; the executor calls that instead when
// Config.MigrationPerDeme() is false.
func (s *Simulation) FrequenciesString() string {
	if s.regime != config.RegimeMigration {
		return formatFrequencies(s.counts, s.populationSize, s.precision)
	}
	return s.migrationFrequenciesString()
}

func (s *Simulation) migrationFrequenciesString() string {
	if len(s.demeCounts) == 0 {
		return ""
	}

	sizes := demeSizes(s.demeCounts)
	groups := make([]string, 0, len(s.demeCounts))
	for d, row := range s.demeCounts {
		groups = append(groups, formatFrequencies(row, sizes[d], s.precision))
	}
	return strings.Join(groups, demeGroupSeparator)
}

// AggregatedFrequenciesString collapses the deme matrix into a single
// per-allele frequency column, for the migration regime's alternate
// output flag.
func (s *Simulation) AggregatedFrequenciesString() string {
	if s.regime != config.RegimeMigration {
		return s.FrequenciesString()
	}

	k := len(s.identifiers)
	sizes := demeSizes(s.demeCounts)
	total := make([]int, k)
	pop := 0
	for d, row := range s.demeCounts {
		for a := 0; a < k; a++ {
			total[a] += row[a]
		}
		pop += sizes[d]
	}
	return formatFrequencies(total, pop, s.precision)
}

func formatFrequencies(counts []int, populationSize, precision int) string {
	parts := make([]string, len(counts))
	for i, c := range counts {
		freq := 0.0
		if populationSize > 0 {
			freq = float64(c) / float64(populationSize)
		}
		parts[i] = strconv.FormatFloat(freq, 'f', precision, 64)
	}
	return strings.Join(parts, "|")
}

// IdentifiersString formats the allele identifier header: the current
// identifier sequence, insertion order, pipe-separated, each column
// padded to match the width of a frequency column (precision+2).
func (s *Simulation) IdentifiersString() string {
	width := s.precision + 2
	parts := make([]string, len(s.identifiers))
	for i, a := range s.identifiers {
		id := a.String()
		if pad := width - len(id); pad > 0 {
			id += strings.Repeat(" ", pad)
		}
		parts[i] = id
	}
	return strings.Join(parts, "|")
}

func (s *Simulation) String() string {
	return fmt.Sprintf("Simulation{regime=%s, K=%d, N=%d}", s.regime, len(s.identifiers), s.populationSize)
}
