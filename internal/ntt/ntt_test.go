package ntt

import (
	"math/big"
	"testing"

	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr/fft"
	"github.com/stretchr/testify/require"
)

func TestFrForwardInverseRoundTrip(t *testing.T) {
	assert := require.New(t)

	const size = 16
	d := fft.NewDomain(size)

	coeffs := make([]fr.Element, size)
	for i := range coeffs {
		coeffs[i].SetUint64(uint64(i + 1))
	}

	evals := make([]fr.Element, size)
	copy(evals, coeffs)
	FrForward(evals, d.Generator)
	FrInverse(evals, d.Generator)

	for i := range coeffs {
		assert.True(coeffs[i].Equal(&evals[i]), "index %d: roundtrip mismatch", i)
	}
}

func TestFrForwardMatchesDirectEvaluation(t *testing.T) {
	assert := require.New(t)

	const size = 8
	d := fft.NewDomain(size)

	coeffs := make([]fr.Element, size)
	for i := range coeffs {
		coeffs[i].SetUint64(uint64(2*i + 1))
	}

	evals := make([]fr.Element, size)
	copy(evals, coeffs)
	FrForward(evals, d.Generator)

	// evaluate directly at each domain point via Horner and compare
	point := fr.Element{}
	point.SetOne()
	for i := 0; i < size; i++ {
		var want fr.Element
		for j := size - 1; j >= 0; j-- {
			want.Mul(&want, &point)
			want.Add(&want, &coeffs[j])
		}
		assert.True(want.Equal(&evals[i]), "domain point %d mismatch", i)
		point.Mul(&point, &d.Generator)
	}
}

func TestG1ForwardInverseRoundTrip(t *testing.T) {
	assert := require.New(t)

	const size = 8
	d := fft.NewDomain(size)

	_, _, g1GenAff, _ := bls12377.Generators()

	points := make([]bls12377.G1Jac, size)
	for i := range points {
		var scalar fr.Element
		scalar.SetUint64(uint64(i + 1))
		var scalarBig big.Int
		scalar.ToBigIntRegular(&scalarBig)
		var affine bls12377.G1Affine
		affine.ScalarMultiplication(&g1GenAff, &scalarBig)
		points[i].FromAffine(&affine)
	}

	original := make([]bls12377.G1Jac, size)
	copy(original, points)

	G1Forward(points, d.Generator)
	G1Inverse(points, d.Generator)

	for i := range original {
		var a, b bls12377.G1Affine
		a.FromJacobian(&original[i])
		b.FromJacobian(&points[i])
		assert.True(a.Equal(&b), "index %d: roundtrip mismatch", i)
	}
}
