package kzg10

import bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"

// Proof is a KZG opening proof: a commitment to the quotient polynomial
// (p(X) - v) / (X - z). The scheme this package implements never adds a
// blinding term, so unlike a general-purpose KZG proof there is no random
// G1/Fr component here -- only W.
//
// Hiding is nonetheless a real, checkable field rather than a method that
// always returns false: the puzzle layer treats "is this proof hiding"
// as a defensive runtime check against proofs constructed elsewhere
// (deserialized from the wire, or crafted by a misbehaving peer), not a
// compile-time guarantee. Every proof OpenLagrange below produces sets
// Hiding to false.
type Proof struct {
	W      bls12377.G1Affine
	Hiding bool
}

// IsHiding reports whether this proof carries a blinding component.
func (p *Proof) IsHiding() bool { return p.Hiding }
