package kzg10

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
)

// CommitLagrange commits to a polynomial given by its evaluations over a
// domain whose Lagrange basis (in G1) is lagrangeBasis, via a single
// multi-scalar multiplication: C = Sum_i evaluations[i] * lagrangeBasis[i].
// Since this scheme is non-hiding there is no random blinding factor to
// add, unlike a general KZG10 commit.
func CommitLagrange(lagrangeBasis []bls12377.G1Affine, evaluations []fr.Element) (Commitment, error) {
	if len(lagrangeBasis) != len(evaluations) {
		return Commitment{}, fmt.Errorf("%w: basis %d, evaluations %d", ErrSizeMismatch, len(lagrangeBasis), len(evaluations))
	}

	var acc bls12377.G1Jac
	if _, err := acc.MultiExp(lagrangeBasis, evaluations, ecc.MultiExpConfig{}); err != nil {
		return Commitment{}, fmt.Errorf("kzg10: multi-scalar multiplication: %w", err)
	}

	var out Commitment
	out.FromJacobian(&acc)
	return out, nil
}
