// Package ingest parses the two input files: the textual KEY=VALUE run
// configuration and the FASTA founding population, producing the inputs
// config.Builder needs. The KEY=VALUE format is bespoke (not
// YAML/TOML/env), so parsing is a plain bufio.Scanner line reader
// rather than a generic config-file library.
package ingest

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	commentPrefix = '#'
	listSeparator = "|"
)

// RawConfig holds the KEY=VALUE file's fields before they are resolved
// against the founding population and handed to config.Builder.
type RawConfig struct {
	Generations int
	Replicates  int
	Sites       []int // 1-based marker-site indices

	Mode int // MODE bitflag: 0 none, 1 mutations, 2 migration, 4 selection, 8 bottleneck

	Mut            []float64
	MutKimura      *float64
	MutFelsenstein *[4]float64

	Sel []float64

	MigModel int   // MIG_MODEL: 0 complete, 1 star, 2 ring
	MigMode  int   // MIG_MODE: 0 user, 1 randomized
	MigRates []int // per-row migration magnitudes

	Reduction *float64
	Start     *int
	End       *int

	// Run-level knobs with no config-file key; the command line fills
	// them in after parsing.
	MinPrecision   int  // 0 leaves the config.Builder default
	AggregateDemes bool // collapse per-deme columns in migration output
}

// ParseConfigFile reads fname and returns its RawConfig. Unreadable input
// surfaces as a wrapped error before any worker starts.
func ParseConfigFile(fname string) (*RawConfig, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, errors.Wrap(err, "ingest: opening config file")
	}
	defer f.Close()

	raw := &RawConfig{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == commentPrefix {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if err := raw.set(key, value); err != nil {
			return nil, errors.Wrapf(err, "ingest: parsing key %q", key)
		}
	}

	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "ingest: reading config file")
	}

	return raw, nil
}

func (raw *RawConfig) set(key, value string) error {
	switch key {
	case "GEN":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		raw.Generations = n

	case "REP":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		raw.Replicates = n

	case "SITES":
		sites, err := splitInts(value)
		if err != nil {
			return err
		}
		raw.Sites = sites

	case "MODE":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		raw.Mode = n

	case "MUT":
		rates, err := splitFloats(value)
		if err != nil {
			return err
		}
		raw.Mut = rates

	case "MUT_KIMURA":
		d, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		raw.MutKimura = &d

	case "MUT_FELSENSTEIN":
		c, err := splitFloats(value)
		if err != nil {
			return err
		}
		if len(c) != 4 {
			return errors.Errorf("MUT_FELSENSTEIN requires 4 values, got %d", len(c))
		}
		raw.MutFelsenstein = &[4]float64{c[0], c[1], c[2], c[3]}

	case "SEL":
		s, err := splitFloats(value)
		if err != nil {
			return err
		}
		raw.Sel = s

	case "MIG_MODEL":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		raw.MigModel = n

	case "MIG_MODE":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		raw.MigMode = n

	case "MIG_RATES":
		rates, err := splitInts(value)
		if err != nil {
			return err
		}
		raw.MigRates = rates

	case "REDUCTION":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		raw.Reduction = &f

	case "START":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		raw.Start = &n

	case "END":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		raw.End = &n
	}

	return nil
}

func splitInts(value string) ([]int, error) {
	parts := strings.Split(value, listSeparator)
	out := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func splitFloats(value string) ([]float64, error) {
	parts := strings.Split(value, listSeparator)
	out := make([]float64, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}
