package ingest

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"driftsim/allele"
	"driftsim/rng"
)

// ParseFasta reads a founding population from a FASTA-formatted file: one
// ">identifier" header line followed by one sequence line, repeated.
// Gzip-compressed input is detected by probing for a gzip header and
// falling back to the raw file.
//
// Each sequence is projected onto sites (1-based positions into the full
// sequence) to build an Allele; sequences that project to the same Allele
// are merged, their occurrences summed into one founding count. The
// returned alleles and counts are parallel and order-preserving by first
// occurrence, matching the order config.Builder expects. Any character
// outside {A,C,G,T} at a marker site is resolved to a uniform random
// canonical base via r, since an Allele may only ever hold {A,C,G,T}.
func ParseFasta(fname string, sites []int, r *rng.RNG) (alleles []allele.Allele, counts []int, err error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ingest: opening FASTA file")
	}
	defer f.Close()

	var src io.Reader
	if gz, gzErr := gzip.NewReader(f); gzErr == nil {
		src = gz
	} else {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, nil, errors.Wrap(err, "ingest: seeking FASTA file")
		}
		src = f
	}

	index := make(map[string]int)
	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {
		header := strings.TrimSpace(sc.Text())
		if header == "" {
			continue
		}
		if !strings.HasPrefix(header, ">") {
			return nil, nil, errors.Errorf("ingest: expected FASTA header, got %q", header)
		}

		if !sc.Scan() {
			return nil, nil, errors.New("ingest: FASTA header without sequence")
		}
		seq := strings.TrimSpace(sc.Text())

		a, err := projectSequence(seq, sites, r)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "ingest: projecting sequence for %q", header)
		}

		key := a.String()
		if idx, ok := index[key]; ok {
			counts[idx]++
			continue
		}
		index[key] = len(alleles)
		alleles = append(alleles, a)
		counts = append(counts, 1)
	}

	if err := sc.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "ingest: reading FASTA file")
	}

	return alleles, counts, nil
}

// projectSequence builds an Allele from the nucleotides at the 1-based
// positions listed in sites. Any character outside {A,C,G,T} maps to the
// N sentinel first, then resolves to a random canonical base.
func projectSequence(seq string, sites []int, r *rng.RNG) (allele.Allele, error) {
	nts := make([]allele.Nucleotide, len(sites))
	for i, pos := range sites {
		if pos < 1 || pos > len(seq) {
			return allele.Allele{}, errors.Errorf("marker site %d out of range for sequence of length %d", pos, len(seq))
		}
		nt, ok := allele.FromByte(seq[pos-1])
		if !ok {
			nt = allele.N
		}
		nts[i] = allele.Resolve(nt, r)
	}
	return allele.New(nts), nil
}
