package kzg10

import (
	"fmt"

	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"

	"github.com/ABMatrix/snarkVM/internal/ntt"
)

// OpenLagrange produces an opening proof that the polynomial p, given by
// its evaluations over the domain (domainSize, domainGenerator), satisfies
// p(point) == value.
//
// The natural definition of the quotient q(X) = (p(X) - value) / (X -
// point) has a division-by-zero special case when point happens to be one
// of the domain elements themselves (the original snarkVM special-cases
// this in its Lagrange-basis division routine). This implementation
// sidesteps that case entirely by round-tripping through the coefficient
// basis: inverse-transform the evaluations to coefficients, run ordinary
// synthetic polynomial division by (X - point) -- which is well-defined
// for every point, domain element or not -- then forward-transform the
// quotient's coefficients back to evaluations to commit in the Lagrange
// basis. point is "almost surely" not a domain element in practice (it is
// a Fiat-Shamir challenge), but this path is correct either way.
func OpenLagrange(
	domainSize uint64,
	domainGenerator fr.Element,
	lagrangeBasis []bls12377.G1Affine,
	evaluations []fr.Element,
	point fr.Element,
	value fr.Element,
) (*Proof, error) {
	if uint64(len(evaluations)) != domainSize {
		return nil, fmt.Errorf("%w: domain size %d, evaluations %d", ErrSizeMismatch, domainSize, len(evaluations))
	}
	if uint64(len(lagrangeBasis)) != domainSize {
		return nil, fmt.Errorf("%w: domain size %d, basis %d", ErrSizeMismatch, domainSize, len(lagrangeBasis))
	}
	if domainSize < 2 {
		return nil, fmt.Errorf("kzg10: domain size %d too small to open", domainSize)
	}

	coeffs := make([]fr.Element, domainSize)
	copy(coeffs, evaluations)
	ntt.FrInverse(coeffs, domainGenerator)
	coeffs[0].Sub(&coeffs[0], &value)

	quotient := syntheticDivide(coeffs, point)

	qEval := make([]fr.Element, domainSize)
	copy(qEval, quotient)
	ntt.FrForward(qEval, domainGenerator)

	w, err := CommitLagrange(lagrangeBasis, qEval)
	if err != nil {
		return nil, fmt.Errorf("kzg10: committing to quotient: %w", err)
	}

	return &Proof{W: w, Hiding: false}, nil
}

// syntheticDivide divides f(X) = Sum f[i] X^i by (X - a), returning the
// degree len(f)-2 quotient's coefficients in natural order. The remainder
// f(a) is discarded: callers that have already subtracted the claimed
// value from f[0] expect it to be (close to) zero.
func syntheticDivide(f []fr.Element, a fr.Element) []fr.Element {
	n := len(f)
	q := make([]fr.Element, n-1)
	q[n-2] = f[n-1]
	for i := n - 2; i >= 1; i-- {
		var t fr.Element
		t.Mul(&a, &q[i])
		q[i-1].Add(&f[i], &t)
	}
	return q
}
