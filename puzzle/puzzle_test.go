package puzzle

import (
	"testing"

	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"
	"github.com/stretchr/testify/require"
)

// buildTestPuzzle wires up a full Setup -> Trim -> Prover/Verifier handle
// pair at the given degree, with a fixed epoch challenge derived the same
// way a prover polynomial is (hash-expand of a domain-separated label),
// since the epoch polynomial's own derivation is out of this package's
// scope -- only its shape (degree <= n, consistent evaluations) matters
// here.
func buildTestPuzzle(t *testing.T, degree uint32) (*Puzzle, *Puzzle, *EpochChallenge) {
	t.Helper()
	assert := require.New(t)

	config := PuzzleConfig{Degree: degree}
	srs, err := Setup(config, newSeededRNG(0))
	assert.NoError(err)

	pk, err := Trim(srs, config)
	assert.NoError(err)

	prover := NewProverPuzzle(pk)
	verifier := NewVerifierPuzzle(pk.VerifyingKey)

	epochPoly, err := hashToPolynomial([]byte("epoch-0"), degree)
	assert.NoError(err)
	epoch, err := NewEpochChallenge(0, [32]byte{}, epochPoly, pk.ProductDomain)
	assert.NoError(err)

	return prover, verifier, epoch
}

// seededRNG is a small deterministic byte stream for reproducible tests.
type seededRNG struct{ state uint64 }

func newSeededRNG(seed uint64) *seededRNG { return &seededRNG{state: seed ^ 0x9e3779b97f4a7c15} }

func (r *seededRNG) Read(p []byte) (int, error) {
	for i := range p {
		r.state = r.state*6364136223846793005 + 1442695040888963407
		p[i] = byte(r.state >> 56)
	}
	return len(p), nil
}

// E1: single honest prover, zero targets, must succeed end to end.
func TestE1SingleProverZeroTargetsVerifies(t *testing.T) {
	assert := require.New(t)

	prover, verifier, epoch := buildTestPuzzle(t, 8)

	var addr [32]byte
	solution, err := prover.Prove(epoch, addr, 0)
	assert.NoError(err)
	assert.False(solution.Proof.IsHiding())

	coinbase, err := prover.Accumulate(epoch, []ProverSolution{*solution})
	assert.NoError(err)

	ok, err := prover.Verify(coinbase, epoch, 0, 0)
	assert.NoError(err)
	assert.True(ok)

	ok, err = verifier.Verify(coinbase, epoch, 0, 0)
	assert.NoError(err)
	assert.True(ok, "a verifier-only handle must reach the same verdict")
}

// E2: an unreachable proof_target makes ProveWithTarget fail fast on
// essentially every nonce.
func TestE2ImpossibleTargetFailsFast(t *testing.T) {
	assert := require.New(t)
	prover, _, epoch := buildTestPuzzle(t, 8)

	var addr [32]byte
	_, err := prover.ProveWithTarget(epoch, addr, 0, ^uint64(0))
	assert.ErrorIs(err, ErrDifficultyNotMet)
}

// E3: three distinct provers aggregate and verify; tampering with one
// partial solution's commitment (adding the G1 generator to it) flips the
// verdict to false without an error.
func TestE3ThreeProversAggregateAndDetectTampering(t *testing.T) {
	assert := require.New(t)
	prover, _, epoch := buildTestPuzzle(t, 8)

	solutions := make([]ProverSolution, 3)
	for i := range solutions {
		var addr [32]byte
		addr[0] = byte(i + 1)
		sol, err := prover.Prove(epoch, addr, uint64(i))
		assert.NoError(err)
		solutions[i] = *sol
	}

	coinbase, err := prover.Accumulate(epoch, solutions)
	assert.NoError(err)

	ok, err := prover.Verify(coinbase, epoch, 0, 0)
	assert.NoError(err)
	assert.True(ok)

	tampered := *coinbase
	tampered.PartialSolutions = append([]PartialSolution{}, coinbase.PartialSolutions...)
	_, _, gen, _ := bls12377.Generators()
	tampered.PartialSolutions[0].Commitment.Add(&tampered.PartialSolutions[0].Commitment, &gen)

	ok, err = prover.Verify(&tampered, epoch, 0, 0)
	assert.NoError(err)
	assert.False(ok, "a tampered commitment must not verify")
}

// E4: empty solution list is rejected.
func TestE4EmptyAccumulateRejected(t *testing.T) {
	prover, _, epoch := buildTestPuzzle(t, 4)
	_, err := prover.Accumulate(epoch, nil)
	require.ErrorIs(t, err, ErrEmptySolutions)
}

// E5: too many solutions is rejected.
func TestE5TooManySolutionsRejected(t *testing.T) {
	assert := require.New(t)
	prover, _, epoch := buildTestPuzzle(t, 2)

	solutions := make([]ProverSolution, MaxProverSolutions+1)
	for i := range solutions {
		var addr [32]byte
		addr[0] = byte(i)
		sol, err := prover.Prove(epoch, addr, uint64(i))
		assert.NoError(err)
		solutions[i] = *sol
	}

	_, err := prover.Accumulate(epoch, solutions)
	assert.ErrorIs(err, ErrTooManySolutions)
}

// E6: swapping two partial solutions' order changes the Fiat-Shamir
// challenges derived at verification time, so the aggregate must fail.
func TestE6SwappedOrderFailsVerification(t *testing.T) {
	assert := require.New(t)
	prover, _, epoch := buildTestPuzzle(t, 8)

	solutions := make([]ProverSolution, 2)
	for i := range solutions {
		var addr [32]byte
		addr[0] = byte(i + 1)
		sol, err := prover.Prove(epoch, addr, uint64(i))
		assert.NoError(err)
		solutions[i] = *sol
	}

	coinbase, err := prover.Accumulate(epoch, solutions)
	assert.NoError(err)

	ok, err := prover.Verify(coinbase, epoch, 0, 0)
	assert.NoError(err)
	assert.True(ok)

	swapped := *coinbase
	swapped.PartialSolutions = []PartialSolution{coinbase.PartialSolutions[1], coinbase.PartialSolutions[0]}

	ok, err = prover.Verify(&swapped, epoch, 0, 0)
	assert.NoError(err)
	assert.False(ok, "reordering partial solutions must change the recomputed challenges")
}

func TestProveFromVerifierHandleIsWrongRole(t *testing.T) {
	_, verifier, epoch := buildTestPuzzle(t, 4)
	var addr [32]byte
	_, err := verifier.Prove(epoch, addr, 0)
	require.ErrorIs(t, err, ErrWrongRole)
}

func TestAccumulateFromVerifierHandleIsWrongRole(t *testing.T) {
	_, verifier, epoch := buildTestPuzzle(t, 4)
	_, err := verifier.Accumulate(epoch, nil)
	require.ErrorIs(t, err, ErrWrongRole)
}
