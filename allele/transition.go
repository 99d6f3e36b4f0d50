package allele

import "github.com/pkg/errors"

// TransitionMatrix is a row-stochastic 4x4 matrix of per-mutation
// nucleotide target probabilities, indexed [source][target]. Every row's
// diagonal is zero: a mutation is always a change of state.
type TransitionMatrix [4][4]float64

// JukesCantor returns the uniform 1/3 off-diagonal model, the default
// when neither MUT_KIMURA nor MUT_FELSENSTEIN is supplied.
func JukesCantor() TransitionMatrix {
	var m TransitionMatrix
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if i != j {
				m[i][j] = 1.0 / 3.0
			}
		}
	}
	return m
}

// Kimura returns the two-parameter model: transversions (to either of the
// two bases that are not the transition partner) each get (1-delta)/2,
// the transition partner gets delta. delta must be in [1/3, 1].
func Kimura(delta float64) (TransitionMatrix, error) {
	if delta < 1.0/3.0 || delta > 1.0 {
		return TransitionMatrix{}, errors.Errorf("allele: kimura delta %v out of range [1/3,1]", delta)
	}

	// A<->G and C<->T are the transition pairs; the other four
	// substitutions are transversions.
	transitionPartner := [4]int{int(G), int(T), int(A), int(C)}
	transversion := (1.0 - delta) / 2.0

	var m TransitionMatrix
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if i == j {
				continue
			}
			if j == transitionPartner[i] {
				m[i][j] = delta
			} else {
				m[i][j] = transversion
			}
		}
	}
	return m, nil
}

// Felsenstein builds the equilibrium-frequency model from four constants
// c[A],c[C],c[G],c[T]. Negative constants are clipped to
// their absolute value, then if their sum is < 1 the residual (1-sum)/4
// is added to each; a sum > 1 after clipping is rejected. Rows are formed
// as p_i = c_i/(1-c_i), then row-normalized to restore zero-diagonal
// row-stochasticity.
func Felsenstein(c [4]float64) (TransitionMatrix, error) {
	clipped := c
	sum := 0.0
	for i := range clipped {
		if clipped[i] < 0 {
			clipped[i] = -clipped[i]
		}
		sum += clipped[i]
	}

	if sum > 1 {
		return TransitionMatrix{}, errors.Errorf("allele: felsenstein constants sum to %v > 1 after clipping", sum)
	}

	if sum < 1 {
		residual := (1 - sum) / 4
		for i := range clipped {
			clipped[i] += residual
		}
	}

	var m TransitionMatrix
	for i := 0; i < 4; i++ {
		if clipped[i] >= 1 {
			return TransitionMatrix{}, errors.Errorf("allele: felsenstein constant c[%d]=%v yields a non-finite row", i, clipped[i])
		}

		rowSum := 0.0
		for j := 0; j < 4; j++ {
			if i == j {
				continue
			}
			p := clipped[j] / (1 - clipped[j])
			m[i][j] = p
			rowSum += p
		}

		if rowSum == 0 {
			return TransitionMatrix{}, errors.Errorf("allele: felsenstein row %d normalizes to zero", i)
		}
		for j := 0; j < 4; j++ {
			if i != j {
				m[i][j] /= rowSum
			}
		}
	}

	return m, nil
}

// Target draws the mutation destination for a source nucleotide x, given
// a uniform draw in [0,1). It walks the row's cumulative distribution in
// index order and returns the first target whose cumulative sum meets or
// exceeds draw - a row that is all zero, or whose cumulative sum never
// reaches draw, is a model error: the mutation target cannot be
// resolved.
func (m TransitionMatrix) Target(x Nucleotide, draw float64) (Nucleotide, error) {
	cum := 0.0
	for j := 0; j < 4; j++ {
		cum += m[x][j]
		if draw <= cum {
			return Nucleotide(j), nil
		}
	}
	return 0, errors.Errorf("allele: mutation target unresolvable for source %s (draw=%v, row=%v)", x, draw, m[x])
}
