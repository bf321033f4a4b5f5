package puzzle

import (
	"math/bits"

	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr/fft"

	"github.com/ABMatrix/snarkVM/internal/ntt"
)

// frTwoAdicity is the two-adicity of the BLS12-377 scalar field: the
// largest S such that 2^S divides r-1, so the field supports NTT domains
// up to size 2^S. Mirrors the constant gnark-crypto's generated
// bls12-377/fr package encodes internally.
const frTwoAdicity = 47

// EvaluationDomain is the multiplicative subgroup of Fr the puzzle uses
// to represent polynomials by their evaluations. It is always a
// power-of-two size, with its generator and element vector derived from
// gnark-crypto's own root-of-unity tower via fft.NewDomain, keeping this
// module from having to re-derive a field's 2-adic structure itself.
type EvaluationDomain struct {
	size      uint64
	generator fr.Element
	elements  []fr.Element
}

// NewEvaluationDomain returns the evaluation domain of the smallest
// power-of-two size >= minSize. It fails with ErrInvalidDegree if that
// size would exceed the field's supported 2-adicity.
func NewEvaluationDomain(minSize uint64) (*EvaluationDomain, error) {
	if minSize == 0 {
		minSize = 1
	}
	size := nextPowerOfTwo(minSize)
	if bits.Len64(size-1) > frTwoAdicity {
		return nil, wrapErr(ErrInvalidDegree, "domain size 2^%d exceeds field two-adicity %d", bits.Len64(size-1), frTwoAdicity)
	}

	d := fft.NewDomain(size)
	if d.Cardinality != size {
		return nil, wrapErr(ErrInvalidDegree, "requested domain size %d, got %d", size, d.Cardinality)
	}

	elements := make([]fr.Element, size)
	elements[0].SetOne()
	for i := uint64(1); i < size; i++ {
		elements[i].Mul(&elements[i-1], &d.Generator)
	}

	return &EvaluationDomain{
		size:      size,
		generator: d.Generator,
		elements:  elements,
	}, nil
}

func nextPowerOfTwo(n uint64) uint64 {
	if n&(n-1) == 0 {
		return n
	}
	return uint64(1) << bits.Len64(n)
}

// Size returns the domain's cardinality (a power of two).
func (d *EvaluationDomain) Size() uint64 { return d.size }

// Generator returns the domain's primitive size-th root of unity.
func (d *EvaluationDomain) Generator() fr.Element { return d.generator }

// Elements returns omega^0 .. omega^(size-1), in that order. The returned
// slice must not be mutated by callers.
func (d *EvaluationDomain) Elements() []fr.Element { return d.elements }

// FFT evaluates, in place, the polynomial whose coefficients are the
// natural-order entries of a (zero-padded to the domain size by the
// caller) at every domain element, in order: a[i] becomes p(omega^i).
func (d *EvaluationDomain) FFT(a []fr.Element) {
	mustMatchSize(len(a), d.size)
	ntt.FrForward(a, d.generator)
}

// FFTInverse is the inverse of FFT: given evaluations a[i] = p(omega^i),
// it recovers p's coefficients in natural order, in place.
func (d *EvaluationDomain) FFTInverse(a []fr.Element) {
	mustMatchSize(len(a), d.size)
	ntt.FrInverse(a, d.generator)
}

// FFTG1 is FFT generalized to a vector of G1 points. Its inverse,
// FFTInverseG1, is the transform that maps the monomial powers-of-beta-g
// basis to the Lagrange basis without the secret trapdoor scalar;
// polycommit/kzg10 applies that transform through internal/ntt directly
// rather than through these methods.
func (d *EvaluationDomain) FFTG1(a []bls12377.G1Jac) {
	mustMatchSize(len(a), d.size)
	ntt.G1Forward(a, d.generator)
}

// FFTInverseG1 is the inverse of FFTG1.
func (d *EvaluationDomain) FFTInverseG1(a []bls12377.G1Jac) {
	mustMatchSize(len(a), d.size)
	ntt.G1Inverse(a, d.generator)
}

func mustMatchSize(got int, want uint64) {
	if uint64(got) != want {
		panic("puzzle: slice does not match evaluation domain size")
	}
}

// MulEvaluations computes, pointwise, out[i] = a[i] * b[i] for two
// polynomials already represented as evaluations over this domain. This
// is how the puzzle forms h = f*g without ever multiplying polynomials in
// coefficient form.
func (d *EvaluationDomain) MulEvaluations(a, b []fr.Element) []fr.Element {
	mustMatchSize(len(a), d.size)
	mustMatchSize(len(b), d.size)
	out := make([]fr.Element, d.size)
	parallelMulEvaluations(out, a, b)
	return out
}
