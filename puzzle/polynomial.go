package puzzle

import "github.com/consensys/gnark-crypto/ecc/bls12-377/fr"

// Polynomial is a dense, coefficient-basis univariate polynomial over Fr,
// stored low-degree-first: Polynomial[i] is the coefficient of X^i.
type Polynomial []fr.Element

// Evaluate computes p(point) by Horner's method.
func (p Polynomial) Evaluate(point fr.Element) fr.Element {
	var result fr.Element
	for i := len(p) - 1; i >= 0; i-- {
		result.Mul(&result, &point)
		result.Add(&result, &p[i])
	}
	return result
}

// Degree returns the index of the last coefficient, or -1 for an empty
// coefficient slice. It does not trim trailing zero coefficients; callers that
// derive polynomials via hashToPolynomial accept that the declared
// degree bound's top coefficient may be zero.
func (p Polynomial) Degree() int { return len(p) - 1 }

// Evaluations zero-pads p up to size and evaluates it over domain via a
// forward NTT, returning the evaluation vector. p is not mutated.
func (p Polynomial) Evaluations(domain *EvaluationDomain) []fr.Element {
	padded := make([]fr.Element, domain.Size())
	copy(padded, p)
	domain.FFT(padded)
	return padded
}

// ScaleAndAccumulate adds scalar*p into acc in place, extending acc with
// zero coefficients if p is longer. This is the per-term step of forming
// F(X) = Sum r_i * f_i(X) in Accumulate.
func ScaleAndAccumulate(acc Polynomial, scalar fr.Element, p Polynomial) Polynomial {
	if len(p) > len(acc) {
		grown := make(Polynomial, len(p))
		copy(grown, acc)
		acc = grown
	}
	for i := range p {
		var term fr.Element
		term.Mul(&scalar, &p[i])
		acc[i].Add(&acc[i], &term)
	}
	return acc
}
