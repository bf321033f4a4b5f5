package puzzle

import (
	"testing"

	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/ABMatrix/snarkVM/polycommit/kzg10"
)

func frElement(seed uint64) fr.Element {
	var e fr.Element
	e.SetUint64(seed)
	return e
}

// Invariant 1 (soundness of open): for any f, any z, opening f at z with
// the claimed value f(z) verifies.
func TestPropertyOpenAtClaimedValueAlwaysVerifies(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	const degree = 3
	domain, err := NewEvaluationDomain(productDomainMinSize(degree))
	if err != nil {
		t.Fatal(err)
	}
	srs, err := Setup(PuzzleConfig{Degree: degree}, newSeededRNG(7))
	if err != nil {
		t.Fatal(err)
	}
	basis, err := srs.LagrangeBasis(domain.Size(), domain.Generator())
	if err != nil {
		t.Fatal(err)
	}
	vk, err := kzg10.NewVerifyingKey(srs)
	if err != nil {
		t.Fatal(err)
	}

	properties.Property("open(f, z, f(z)) verifies", prop.ForAll(
		func(coeffSeeds []uint64, pointSeed uint64) bool {
			f := make(Polynomial, domain.Size())
			for i, s := range coeffSeeds {
				if i >= len(f) {
					break
				}
				f[i] = frElement(s)
			}
			point := frElement(pointSeed + 1) // avoid the all-zero point degenerating trivially
			value := f.Evaluate(point)
			evals := f.Evaluations(domain)

			proof, err := kzg10.OpenLagrange(domain.Size(), domain.Generator(), basis, evals, point, value)
			if err != nil {
				return false
			}
			commitment, err := kzg10.CommitLagrange(basis, evals)
			if err != nil {
				return false
			}
			ok, err := kzg10.Check(vk, commitment, point, value, proof)
			return err == nil && ok
		},
		gen.SliceOfN(int(domain.Size()), gen.UInt64Range(0, 1<<40)),
		gen.UInt64Range(0, 1<<40),
	))

	properties.TestingRun(t)
}

// Invariant 8 (length law): hash_commitments returns len(xs)+1
// challenges. Order dependence is checked separately by
// TestHashCommitmentsDependsOnOrder.
func TestPropertyHashCommitmentsLengthLaw(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	properties.Property("len(hash_commitments(xs)) == len(xs)+1", prop.ForAll(
		func(k int) bool {
			commitments := make([]kzg10.Commitment, k)
			for i := range commitments {
				commitments[i] = srsGenerator()
			}
			challenges, err := hashCommitments(commitments)
			if err != nil {
				return false
			}
			return len(challenges) == k+1
		},
		gen.IntRange(0, 10),
	))

	properties.TestingRun(t)
}

func srsGenerator() kzg10.Commitment {
	_, _, aff, _ := bls12377.Generators()
	return aff
}

// Invariant 3 (aggregation soundness): for k honestly-generated prover
// solutions, accumulate's output verifies. k is sampled from [1, 10].
func TestPropertyAccumulateVerifiesForArbitraryK(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 10
	properties := gopter.NewProperties(parameters)

	const degree = 4
	prover, verifier, epoch := buildTestPuzzle(t, degree)

	properties.Property("accumulate(k honest solutions) verifies", prop.ForAll(
		func(k int) bool {
			solutions := make([]ProverSolution, k)
			for i := 0; i < k; i++ {
				var addr [32]byte
				addr[0] = byte(i + 1)
				addr[1] = byte((i + 1) >> 8)
				s, err := prover.Prove(epoch, addr, uint64(i))
				if err != nil {
					return false
				}
				solutions[i] = *s
			}

			aggregate, err := prover.Accumulate(epoch, solutions)
			if err != nil {
				return false
			}
			ok, err := verifier.Verify(aggregate, epoch, 0, 0)
			return err == nil && ok
		},
		gen.IntRange(1, 10),
	))

	properties.TestingRun(t)
}

// Invariant 4 (determinism): prove(epoch, address, nonce) produces
// byte-identical commitment and proof output across repeated invocations.
func TestPropertyProveIsDeterministic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	const degree = 4
	prover, _, epoch := buildTestPuzzle(t, degree)

	properties.Property("prove(epoch, addr, nonce) is deterministic", prop.ForAll(
		func(addrSeed, nonce uint64) bool {
			var addr [32]byte
			addr[0] = byte(addrSeed)
			addr[1] = byte(addrSeed >> 8)
			addr[2] = byte(addrSeed >> 16)
			addr[3] = byte(addrSeed >> 24)

			first, err := prover.Prove(epoch, addr, nonce)
			if err != nil {
				return false
			}
			second, err := prover.Prove(epoch, addr, nonce)
			if err != nil {
				return false
			}

			firstCommitment := first.Partial.Commitment.Marshal()
			secondCommitment := second.Partial.Commitment.Marshal()
			firstProof := first.Proof.W.Marshal()
			secondProof := second.Proof.W.Marshal()

			if len(firstCommitment) != len(secondCommitment) || len(firstProof) != len(secondProof) {
				return false
			}
			for i := range firstCommitment {
				if firstCommitment[i] != secondCommitment[i] {
					return false
				}
			}
			for i := range firstProof {
				if firstProof[i] != secondProof[i] {
					return false
				}
			}
			return true
		},
		gen.UInt64Range(0, 1<<32),
		gen.UInt64Range(0, 1<<32),
	))

	properties.TestingRun(t)
}
