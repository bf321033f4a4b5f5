package puzzle

import (
	"math"
	"math/bits"

	"github.com/ABMatrix/snarkVM/polycommit/kzg10"
)

// PartialSolution is the immutable, address-bound commitment a single
// prover contributes to a CoinbaseSolution.
type PartialSolution struct {
	Address    [32]byte
	Nonce      uint64
	Commitment kzg10.Commitment
}

// ToTarget computes this solution's individual difficulty target
// d(C) = u64::MAX / sha256d_to_u64(C). The divisor is zero only when the
// hash's first 8 bytes are all zero (probability 2^-64); that case is not
// handled and panics with Go's integer division by zero.
func (p PartialSolution) ToTarget() uint64 {
	h := sha256dToU64(p.Commitment.Marshal())
	return math.MaxUint64 / h
}

// ProverSolution pairs a PartialSolution with the non-hiding KZG opening
// proof that its commitment equals f(z)*g(z) at the Fiat-Shamir point z.
type ProverSolution struct {
	Partial PartialSolution
	Proof   *kzg10.Proof
}

func (s ProverSolution) Address() [32]byte       { return s.Partial.Address }
func (s ProverSolution) Nonce() uint64           { return s.Partial.Nonce }
func (s ProverSolution) Commitment() kzg10.Commitment { return s.Partial.Commitment }

// ToProverPolynomial recomputes this solution's prover polynomial from
// its address and nonce under epoch -- the same derivation Prove used to
// produce the commitment in the first place. Accumulate and Verify both
// need this to rebuild the random linear combination without trusting
// the prover to have sent the polynomial itself.
func (s ProverSolution) ToProverPolynomial(epoch *EpochChallenge) (Polynomial, error) {
	return proverPolynomial(epoch, s.Partial.Address, s.Partial.Nonce)
}

// CoinbaseSolution is the network-level aggregate: many partial solutions
// bound together by a single KZG opening proof of their random linear
// combination.
type CoinbaseSolution struct {
	PartialSolutions []PartialSolution
	Proof            *kzg10.Proof
}

// ToCumulativeTarget sums every partial solution's individual target as
// an unsigned 128-bit integer, represented as a (hi, lo) uint64 pair
// since Go has no native u128.
func (c CoinbaseSolution) ToCumulativeTarget() (hi, lo uint64) {
	for _, partial := range c.PartialSolutions {
		target := partial.ToTarget()
		var carry uint64
		lo, carry = bits.Add64(lo, target, 0)
		hi, _ = bits.Add64(hi, 0, carry)
	}
	return hi, lo
}

// cumulativeTargetGTE reports whether the u128 value (hi,lo) is >= the
// u64 threshold t.
func cumulativeTargetGTE(hi, lo uint64, t uint64) bool {
	if hi > 0 {
		return true
	}
	return lo >= t
}
