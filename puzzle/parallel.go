package puzzle

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"

	"github.com/ABMatrix/snarkVM/internal/parallel"
)

// parallelMulEvaluations fills out[i] = a[i]*b[i] using a chunked,
// data-parallel loop, since pointwise multiplication over a full
// evaluation domain is one of the hot loops worth running concurrently.
func parallelMulEvaluations(out, a, b []fr.Element) {
	parallel.Range(len(out), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i].Mul(&a[i], &b[i])
		}
	})
}

// sumFr is the associative monoid combine for Fr used by parallel.Fold
// when reducing per-solution evaluations in Accumulate/Verify.
func sumFr(a, b fr.Element) fr.Element {
	var out fr.Element
	out.Add(&a, &b)
	return out
}

// addPolynomials is the associative monoid combine for Polynomial used by
// parallel.Fold when accumulating per-solution polynomials in Accumulate.
// The shorter operand is treated as zero-padded to the longer's length;
// neither input is mutated.
func addPolynomials(a, b Polynomial) Polynomial {
	if len(b) > len(a) {
		a, b = b, a
	}
	out := make(Polynomial, len(a))
	copy(out, a)
	for i := range b {
		out[i].Add(&out[i], &b[i])
	}
	return out
}
