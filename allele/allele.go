// Package allele defines the nucleotide alphabet and the Allele value
// type used throughout driftsim: a fixed-length sequence over
// {A,C,G,T} identifying a haplotype at the configured marker positions.
package allele

import (
	"strings"

	"github.com/pkg/errors"

	"driftsim/rng"
)

// Nucleotide is one of the four canonical bases, or N, the ingest-only
// placeholder for an unresolved character. N never reaches an Allele.
type Nucleotide int

const (
	A Nucleotide = iota
	C
	G
	T
	N
)

var letters = [...]byte{'A', 'C', 'G', 'T', 'N'}

// Byte returns the canonical character for nt.
func (nt Nucleotide) Byte() byte {
	if nt < 0 || int(nt) >= len(letters) {
		return '?'
	}
	return letters[nt]
}

func (nt Nucleotide) String() string {
	return string(nt.Byte())
}

// FromByte maps a FASTA character to a Nucleotide. The ambiguity codes
// N, x (either case) and '*' map to the N sentinel; any other character
// outside {A,C,G,T} is reported as not ok.
func FromByte(b byte) (Nucleotide, bool) {
	switch b {
	case 'A', 'a':
		return A, true
	case 'C', 'c':
		return C, true
	case 'G', 'g':
		return G, true
	case 'T', 't':
		return T, true
	case 'N', 'n', 'x', 'X', '*':
		return N, true
	default:
		return 0, false
	}
}

// Resolve returns nt unchanged unless it is the N sentinel, in which case
// it draws a uniform replacement over {A,C,G,T}. This is the only place N
// is allowed to exist; every other consumer of a Nucleotide assumes one
// of the four canonical values.
func Resolve(nt Nucleotide, r *rng.RNG) Nucleotide {
	if nt != N {
		return nt
	}
	return Nucleotide(r.UniformInt(int(A), int(T)))
}

// Allele is an immutable, fixed-length sequence over {A,C,G,T}. Identity
// is sequence equality; mutating a position produces a new Allele by
// value via WithSubstitution.
type Allele struct {
	seq []Nucleotide
}

// New copies seq into a new Allele. Every element must already be a
// canonical nucleotide (A,C,G,T); ingest is responsible for resolving N
// before an Allele is built.
func New(seq []Nucleotide) Allele {
	cp := make([]Nucleotide, len(seq))
	copy(cp, seq)
	return Allele{seq: cp}
}

// FromString builds an Allele from a string over {A,C,G,T} (any case).
func FromString(s string) (Allele, error) {
	seq := make([]Nucleotide, len(s))
	for i := 0; i < len(s); i++ {
		nt, ok := FromByte(s[i])
		if !ok || nt == N {
			return Allele{}, errors.Errorf("allele: invalid nucleotide %q at position %d", s[i], i)
		}
		seq[i] = nt
	}
	return Allele{seq: seq}, nil
}

// Len returns the number of marker positions, L.
func (a Allele) Len() int {
	return len(a.seq)
}

// At returns the nucleotide at position i.
func (a Allele) At(i int) Nucleotide {
	return a.seq[i]
}

// Equal reports whether a and b have the same identifier.
func (a Allele) Equal(b Allele) bool {
	return a.String() == b.String()
}

// String returns the identifier, e.g. "ACGT".
func (a Allele) String() string {
	var sb strings.Builder
	sb.Grow(len(a.seq))
	for _, nt := range a.seq {
		sb.WriteByte(nt.Byte())
	}
	return sb.String()
}

// WithSubstitution returns a new Allele equal to a except position pos,
// which is replaced by nt. a is never mutated.
func (a Allele) WithSubstitution(pos int, nt Nucleotide) Allele {
	cp := make([]Nucleotide, len(a.seq))
	copy(cp, a.seq)
	cp[pos] = nt
	return Allele{seq: cp}
}
