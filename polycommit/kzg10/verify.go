package kzg10

import (
	"fmt"
	"math/big"

	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
)

// VerifyingKey holds the (small, public) data needed to check an opening
// proof: the G1 generator (used to fold the claimed value into the
// commitment), and the G2 generator and its beta-multiple.
//
// GammaG and the Prepared* fields exist to keep this type's shape aligned
// with a general (possibly hiding) KZG verifying key: GammaG is the
// all-zero G1 identity since this scheme never blinds, and PreparedH /
// PreparedBetaH are this backend's cached copies of H and BetaH --
// bls12377.PairingCheck performs Miller-loop line-function preparation
// internally given raw affine points, so there is no separate prepared
// representation to cache here the way a from-scratch Miller loop would
// need.
type VerifyingKey struct {
	G            bls12377.G1Affine
	GammaG       bls12377.G1Affine
	H            bls12377.G2Affine
	BetaH        bls12377.G2Affine
	PreparedH    bls12377.G2Affine
	PreparedBetaH bls12377.G2Affine
}

// NewVerifyingKey builds a VerifyingKey from an SRS's degree-0 power of
// beta (the G1 generator) and its G2 elements.
func NewVerifyingKey(srs *SRS) (*VerifyingKey, error) {
	g, err := srs.PowerOfBetaG(0)
	if err != nil {
		return nil, err
	}
	return &VerifyingKey{
		G:             g,
		GammaG:        bls12377.G1Affine{},
		H:             srs.H,
		BetaH:         srs.BetaH,
		PreparedH:     srs.H,
		PreparedBetaH: srs.BetaH,
	}, nil
}

// Check verifies that proof attests p(point) == value for the polynomial
// bound by commitment, under vk. It performs purely the cryptographic
// pairing check; whether proof.IsHiding() should cause outright rejection
// is a policy decision the puzzle layer makes explicitly (mirroring the
// original's ensure!(!proof.is_hiding()) calls living beside, not inside,
// KZG10::check).
//
// The check is the standard KZG pairing equation
//
//	e(C - value*G, H) == e(W, beta*H - point*H)
//
// rearranged into a single product-of-pairings-equals-one form:
//
//	e(C - value*G, H) * e(-W, beta*H - point*H) == 1
func Check(vk *VerifyingKey, commitment Commitment, point, value fr.Element, proof *Proof) (bool, error) {
	var valueBig big.Int
	value.ToBigIntRegular(&valueBig)
	var valueG bls12377.G1Affine
	valueG.ScalarMultiplication(&vk.G, &valueBig)

	var lhsJac bls12377.G1Jac
	lhsJac.FromAffine(&commitment)
	var valueGJac bls12377.G1Jac
	valueGJac.FromAffine(&valueG)
	lhsJac.SubAssign(&valueGJac)
	var commitmentMinusValueG bls12377.G1Affine
	commitmentMinusValueG.FromJacobian(&lhsJac)

	var negW bls12377.G1Affine
	negW.Neg(&proof.W)

	var pointBig big.Int
	point.ToBigIntRegular(&pointBig)
	var pointH bls12377.G2Affine
	pointH.ScalarMultiplication(&vk.H, &pointBig)

	var rhsJac bls12377.G2Jac
	rhsJac.FromAffine(&vk.BetaH)
	var pointHJac bls12377.G2Jac
	pointHJac.FromAffine(&pointH)
	rhsJac.SubAssign(&pointHJac)
	var betaHMinusPointH bls12377.G2Affine
	betaHMinusPointH.FromJacobian(&rhsJac)

	ok, err := bls12377.PairingCheck(
		[]bls12377.G1Affine{commitmentMinusValueG, negW},
		[]bls12377.G2Affine{vk.H, betaHMinusPointH},
	)
	if err != nil {
		return false, fmt.Errorf("kzg10: pairing check: %w", err)
	}
	return ok, nil
}
