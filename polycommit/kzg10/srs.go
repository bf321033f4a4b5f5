// Package kzg10 implements a non-hiding KZG polynomial commitment scheme
// over BLS12-377, committing and opening in the Lagrange basis of a
// power-of-two evaluation domain; the SRS holds the monomial basis
// (powers_of_beta_g) from which that Lagrange basis is derived. There is
// no monomial-basis commit or open. It generalizes the textbook single-point commit/open
// a plain KZG implementation provides (see other_examples'
// bls12-377 kzg.go) with the Lagrange-basis path the coinbase puzzle
// needs, and drops the random blinding term entirely since every proof
// produced by this package is explicitly non-hiding.
package kzg10

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"golang.org/x/exp/slices"

	"github.com/ABMatrix/snarkVM/internal/ntt"
)

// Commitment is a single G1 element binding to a committed polynomial.
type Commitment = bls12377.G1Affine

var (
	// ErrDegreeTooLarge is returned when a caller requests powers of beta
	// beyond what the SRS supports.
	ErrDegreeTooLarge = errors.New("kzg10: requested degree exceeds SRS size")
	// ErrSizeMismatch is returned when a Lagrange basis and an evaluation
	// vector passed to Commit/Open have different lengths.
	ErrSizeMismatch = errors.New("kzg10: basis and evaluation vector length mismatch")
)

// SRS is the (non-hiding) structured reference string: the monomial
// powers of beta in G1, plus the G2 elements needed for the pairing
// check. In production this is loaded from an external universal SRS and
// trimmed (see the puzzle package's Trim); Setup below exists so this
// package is independently testable and so the puzzle's own Setup has
// something concrete to call.
type SRS struct {
	// PowersOfBetaG is [G, beta*G, beta^2*G, ...] up to the configured
	// maximum degree.
	PowersOfBetaG []bls12377.G1Affine
	// H is the G2 generator.
	H bls12377.G2Affine
	// BetaH is beta*H.
	BetaH bls12377.G2Affine
}

// Setup draws a trapdoor scalar beta from rng (32 bytes, reduced mod the
// scalar field order) and builds an SRS supporting commitments to
// polynomials of degree up to maxDegree. rng is an io.Reader rather than
// a *rand.Rand so callers can supply a deterministic, seeded stream in
// tests, or crypto/rand.Reader in a real (if still explicitly
// insecure/toy) setup.
func Setup(maxDegree int, rng io.Reader) (*SRS, error) {
	if maxDegree < 0 {
		return nil, fmt.Errorf("kzg10: negative max degree")
	}

	var beta fr.Element
	buf := make([]byte, fr.Bytes)
	if _, err := io.ReadFull(rng, buf); err != nil {
		return nil, fmt.Errorf("kzg10: reading randomness: %w", err)
	}
	beta.SetBytes(buf)

	_, _, g1Gen, g2Gen := bls12377.Generators()

	powers := make([]bls12377.G1Affine, maxDegree+1)
	betaPower := fr.Element{}
	betaPower.SetOne()
	for i := 0; i <= maxDegree; i++ {
		var betaPowerBig big.Int
		betaPower.ToBigIntRegular(&betaPowerBig)
		powers[i].ScalarMultiplication(&g1Gen, &betaPowerBig)
		betaPower.Mul(&betaPower, &beta)
	}

	var betaBig big.Int
	beta.ToBigIntRegular(&betaBig)
	var betaH bls12377.G2Affine
	betaH.ScalarMultiplication(&g2Gen, &betaBig)

	return &SRS{
		PowersOfBetaG: powers,
		H:             g2Gen,
		BetaH:         betaH,
	}, nil
}

// PowersOfBetaGRange returns a copy of PowersOfBetaG[lower:upper).
func (s *SRS) PowersOfBetaGRange(lower, upper int) ([]bls12377.G1Affine, error) {
	if lower < 0 || upper > len(s.PowersOfBetaG) || lower > upper {
		return nil, fmt.Errorf("%w: requested [%d,%d) of %d", ErrDegreeTooLarge, lower, upper, len(s.PowersOfBetaG))
	}
	return slices.Clone(s.PowersOfBetaG[lower:upper]), nil
}

// PowerOfBetaG returns PowersOfBetaG[i].
func (s *SRS) PowerOfBetaG(i int) (bls12377.G1Affine, error) {
	if i < 0 || i >= len(s.PowersOfBetaG) {
		return bls12377.G1Affine{}, fmt.Errorf("%w: index %d of %d", ErrDegreeTooLarge, i, len(s.PowersOfBetaG))
	}
	return s.PowersOfBetaG[i], nil
}

// LagrangeBasis derives {L_i(beta)*G} for the evaluation domain of the
// given size and generator, from PowersOfBetaG[0:domainSize] alone --
// the secret trapdoor beta is never needed. This is the same relationship
// the original snarkVM expresses as "apply an inverse FFT to the
// truncated monomial basis", generalized here from the scalar-field FFT
// to a G1-point NTT (internal/ntt.G1Inverse).
func (s *SRS) LagrangeBasis(domainSize uint64, generator fr.Element) ([]bls12377.G1Affine, error) {
	if uint64(len(s.PowersOfBetaG)) < domainSize {
		return nil, fmt.Errorf("%w: need %d powers of beta, have %d", ErrDegreeTooLarge, domainSize, len(s.PowersOfBetaG))
	}

	points := make([]bls12377.G1Jac, domainSize)
	for i := range points {
		points[i].FromAffine(&s.PowersOfBetaG[i])
	}
	ntt.G1Inverse(points, generator)

	basis := make([]bls12377.G1Affine, domainSize)
	for i := range basis {
		basis[i].FromJacobian(&points[i])
	}
	return basis, nil
}
