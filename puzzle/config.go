// Package puzzle implements the Coinbase Puzzle: a proof-of-useful-work
// mining puzzle built on a Lagrange-basis KZG polynomial commitment over
// BLS12-377. It covers epoch challenges, proving/verifying keys, the
// prove/accumulate/verify engine, and solution types.
package puzzle

import "fmt"

// MaxProverSolutions bounds the number of PartialSolutions a single
// CoinbaseSolution may aggregate. This is a consensus-fixed constant, not
// a tunable.
const MaxProverSolutions = 100

// PuzzleConfig parameterizes the puzzle's polynomial degree. The prover
// polynomial has degree <= Degree; the product polynomial f*g has degree
// <= 2*Degree.
type PuzzleConfig struct {
	// Degree is the maximum degree of the prover and epoch polynomials.
	Degree uint32
}

// Validate checks the PuzzleConfig invariant (Degree >= 1).
func (c PuzzleConfig) Validate() error {
	if c.Degree < 1 {
		return wrapErr(ErrInvalidDegree, "degree must be >= 1, got %d", c.Degree)
	}
	return nil
}

func (c PuzzleConfig) String() string {
	return fmt.Sprintf("PuzzleConfig{Degree: %d}", c.Degree)
}

// productDomainMinSize returns the minimum product-domain size needed to
// represent the product of two degree-n polynomials without aliasing:
// 2n+1 coefficients.
func productDomainMinSize(degree uint32) uint64 {
	return 2*uint64(degree) + 1
}
