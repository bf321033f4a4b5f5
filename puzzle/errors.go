package puzzle

import (
	"errors"
	"fmt"
)

// Sentinel error kinds, checkable with errors.Is.
var (
	// ErrWrongRole is returned when a Prover-only operation is invoked on
	// a Verifier-role Puzzle handle.
	ErrWrongRole = errors.New("coinbase puzzle: operation requires a different puzzle role")
	// ErrInvalidDegree is returned when the requested product domain size
	// is unsupported by the curve's two-adicity, or the configured degree
	// is otherwise out of range.
	ErrInvalidDegree = errors.New("coinbase puzzle: invalid degree")
	// ErrEmptySolutions is returned by Accumulate/Verify on an empty
	// solution list.
	ErrEmptySolutions = errors.New("coinbase puzzle: no prover solutions supplied")
	// ErrTooManySolutions is returned when a solution list exceeds
	// MaxProverSolutions.
	ErrTooManySolutions = errors.New("coinbase puzzle: too many prover solutions")
	// ErrHidingProof is returned when a proof that must be non-hiding
	// carries a blinding component.
	ErrHidingProof = errors.New("coinbase puzzle: proof must be non-hiding")
	// ErrDifficultyNotMet is returned by ProveWithTarget when the
	// commitment's individual difficulty falls short of the target, and
	// by Verify when a solution or the cumulative batch fails its target.
	ErrDifficultyNotMet = errors.New("coinbase puzzle: difficulty target not met")
	// ErrMalformedChallenge indicates the Fiat-Shamir transcript produced
	// an unexpected number of challenge scalars -- an invariant violation
	// rather than a caller mistake.
	ErrMalformedChallenge = errors.New("coinbase puzzle: malformed Fiat-Shamir challenge sequence")
	// ErrCryptoBackend wraps a pass-through failure from the underlying
	// field/group/pairing primitives (FFT, MSM, pairing check).
	ErrCryptoBackend = errors.New("coinbase puzzle: cryptographic backend error")
)

func wrapErr(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}
