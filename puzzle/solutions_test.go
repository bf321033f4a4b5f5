package puzzle

import (
	"testing"

	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"
	"github.com/stretchr/testify/require"

	"github.com/ABMatrix/snarkVM/polycommit/kzg10"
)

func TestPartialSolutionToTargetIsDeterministic(t *testing.T) {
	assert := require.New(t)
	_, _, gen, _ := bls12377.Generators()
	p := PartialSolution{Nonce: 7, Commitment: gen}
	assert.Equal(p.ToTarget(), p.ToTarget())
}

func TestCumulativeTargetSumsIndividualTargets(t *testing.T) {
	assert := require.New(t)

	_, _, gen, _ := bls12377.Generators()
	var gen2 bls12377.G1Affine
	gen2.Add(&gen, &gen)

	solution := CoinbaseSolution{
		PartialSolutions: []PartialSolution{
			{Nonce: 1, Commitment: gen},
			{Nonce: 2, Commitment: gen2},
		},
		Proof: &kzg10.Proof{},
	}

	hi, lo := solution.ToCumulativeTarget()
	t0 := solution.PartialSolutions[0].ToTarget()
	t1 := solution.PartialSolutions[1].ToTarget()

	wantHi, wantLo := uint64(0), uint64(0)
	sum := t0 + t1
	if sum < t0 {
		wantHi = 1
	}
	wantLo = sum

	assert.Equal(wantHi, hi)
	assert.Equal(wantLo, lo)
}

func TestCumulativeTargetGTE(t *testing.T) {
	assert := require.New(t)
	assert.True(cumulativeTargetGTE(1, 0, ^uint64(0)))
	assert.True(cumulativeTargetGTE(0, 10, 10))
	assert.False(cumulativeTargetGTE(0, 9, 10))
}

func TestToProverPolynomialMatchesDirectDerivation(t *testing.T) {
	assert := require.New(t)

	domain, err := NewEvaluationDomain(productDomainMinSize(4))
	assert.NoError(err)
	epochPoly := make(Polynomial, 5)
	for i := range epochPoly {
		epochPoly[i].SetUint64(uint64(i + 1))
	}
	epoch, err := NewEpochChallenge(0, [32]byte{}, epochPoly, domain)
	assert.NoError(err)

	var addr [32]byte
	addr[0] = 0xAB
	solution := ProverSolution{Partial: PartialSolution{Address: addr, Nonce: 99}}

	viaMethod, err := solution.ToProverPolynomial(epoch)
	assert.NoError(err)
	direct, err := proverPolynomial(epoch, addr, 99)
	assert.NoError(err)

	assert.Equal(direct, viaMethod)
}
