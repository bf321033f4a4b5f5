package puzzle

import (
	"encoding/binary"
	"math"

	"github.com/consensys/gnark-crypto/ecc"
	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"

	"github.com/ABMatrix/snarkVM/internal/parallel"
	"github.com/ABMatrix/snarkVM/internal/zlog"
	"github.com/ABMatrix/snarkVM/polycommit/kzg10"
)

// Puzzle is a tagged-union handle: either a prover (holding the full
// proving key, including the embedded verifying key) or a verifier
// (holding only the verifying key). This is modeled as a struct with
// exactly one of its two pointer fields set, not as an interface
// implemented by two types, so that role-mismatched calls fail with one
// explicit check rather than a type assertion scattered through the
// engine.
type Puzzle struct {
	proving   *CoinbaseProvingKey
	verifying *CoinbaseVerifyingKey
}

// NewProverPuzzle returns a Prover-role handle.
func NewProverPuzzle(pk *CoinbaseProvingKey) *Puzzle {
	return &Puzzle{proving: pk}
}

// NewVerifierPuzzle returns a Verifier-role handle.
func NewVerifierPuzzle(vk *CoinbaseVerifyingKey) *Puzzle {
	return &Puzzle{verifying: vk}
}

// IsProver reports whether this handle can Prove/Accumulate.
func (p *Puzzle) IsProver() bool { return p.proving != nil }

func (p *Puzzle) verifyingKey() *CoinbaseVerifyingKey {
	if p.proving != nil {
		return p.proving.VerifyingKey
	}
	return p.verifying
}

// proverPolynomial derives the degree-n polynomial bound to
// (epoch, address, nonce) by hashing the 76-byte wire layout:
// epoch_number_LE(4) || epoch_block_hash(32) || address(32) || nonce_LE(8).
func proverPolynomial(epoch *EpochChallenge, address [32]byte, nonce uint64) (Polynomial, error) {
	input := make([]byte, 76)
	binary.LittleEndian.PutUint32(input[0:4], epoch.EpochNumber())
	blockHash := epoch.EpochBlockHash()
	copy(input[4:36], blockHash[:])
	copy(input[36:68], address[:])
	binary.LittleEndian.PutUint64(input[68:76], nonce)
	return hashToPolynomial(input, epoch.Degree())
}

// commitProductPolynomial runs steps 1-4 of Prove: derive f, NTT it onto
// the product domain, multiply pointwise by g's evaluations, and commit
// on the Lagrange basis. This is split out because ProveWithTarget needs
// to stop here on a difficulty miss, before ever running the (far more
// expensive) opening step.
func (p *Puzzle) commitProductPolynomial(epoch *EpochChallenge, address [32]byte, nonce uint64) (Polynomial, []fr.Element, kzg10.Commitment, error) {
	if !p.IsProver() {
		return nil, nil, kzg10.Commitment{}, wrapErr(ErrWrongRole, "commit requires a prover handle")
	}
	f, err := proverPolynomial(epoch, address, nonce)
	if err != nil {
		return nil, nil, kzg10.Commitment{}, err
	}

	domain := p.proving.ProductDomain
	fEval := f.Evaluations(domain)
	hEval := domain.MulEvaluations(fEval, epoch.EpochPolynomialEvaluations())

	commitment, err := kzg10.CommitLagrange(p.proving.LagrangeBasisAtBetaG, hEval)
	if err != nil {
		return nil, nil, kzg10.Commitment{}, wrapErr(ErrCryptoBackend, "commit_lagrange: %v", err)
	}
	return f, hEval, commitment, nil
}

// Prove always produces an opening, regardless of difficulty. It is the
// path used by tests and by callers that already
// know their commitment meets the target; the mining hot loop should
// prefer ProveWithTarget, which can reject a candidate before paying for
// the opening.
func (p *Puzzle) Prove(epoch *EpochChallenge, address [32]byte, nonce uint64) (*ProverSolution, error) {
	f, hEval, commitment, err := p.commitProductPolynomial(epoch, address, nonce)
	if err != nil {
		return nil, err
	}
	solution, err := p.openProverSolution(epoch, address, nonce, f, hEval, commitment)
	if err != nil {
		return nil, err
	}
	zlog.Logger().Debug().Uint64("nonce", nonce).Msg("coinbase puzzle: prove complete")
	return solution, nil
}

// ProveWithTarget is the mining-loop entry point: it fails fast with
// ErrDifficultyNotMet immediately after forming the commitment, before
// running the (expensive, degree-linear) opening step, so a caller
// iterating nonces pays the full cost only for commitments that actually
// meet proofTarget.
func (p *Puzzle) ProveWithTarget(epoch *EpochChallenge, address [32]byte, nonce uint64, proofTarget uint64) (*ProverSolution, error) {
	f, hEval, commitment, err := p.commitProductPolynomial(epoch, address, nonce)
	if err != nil {
		return nil, err
	}
	if math.MaxUint64/sha256dToU64(commitment.Marshal()) < proofTarget {
		return nil, ErrDifficultyNotMet
	}
	solution, err := p.openProverSolution(epoch, address, nonce, f, hEval, commitment)
	if err != nil {
		return nil, err
	}
	zlog.Logger().Debug().Uint64("nonce", nonce).Uint64("proof_target", proofTarget).Msg("coinbase puzzle: prove_with_target met difficulty")
	return solution, nil
}

func (p *Puzzle) openProverSolution(epoch *EpochChallenge, address [32]byte, nonce uint64, f Polynomial, hEval []fr.Element, commitment kzg10.Commitment) (*ProverSolution, error) {
	domain := p.proving.ProductDomain

	point, err := hashCommitment(commitment)
	if err != nil {
		return nil, err
	}
	value := f.Evaluate(point)
	gAtPoint := epoch.EpochPolynomial().Evaluate(point)
	value.Mul(&value, &gAtPoint)

	proof, err := kzg10.OpenLagrange(domain.Size(), domain.Generator(), p.proving.LagrangeBasisAtBetaG, hEval, point, value)
	if err != nil {
		return nil, wrapErr(ErrCryptoBackend, "open_lagrange: %v", err)
	}
	if proof.IsHiding() {
		return nil, ErrHidingProof
	}

	solution := &ProverSolution{
		Partial: PartialSolution{Address: address, Nonce: nonce, Commitment: commitment},
		Proof:   proof,
	}

	if ok, err := kzg10.Check(p.verifyingKey(), commitment, point, value, proof); err != nil {
		zlog.Logger().Warn().Err(err).Msg("coinbase puzzle: post-prove check errored")
	} else if !ok {
		zlog.Logger().Warn().Msg("coinbase puzzle: freshly produced opening failed its own check")
	}

	return solution, nil
}

// Accumulate folds k honestly-generated ProverSolutions into a single
// CoinbaseSolution.
func (p *Puzzle) Accumulate(epoch *EpochChallenge, solutions []ProverSolution) (*CoinbaseSolution, error) {
	if !p.IsProver() {
		return nil, wrapErr(ErrWrongRole, "accumulate requires a prover handle")
	}
	if len(solutions) == 0 {
		return nil, ErrEmptySolutions
	}
	if len(solutions) > MaxProverSolutions {
		return nil, wrapErr(ErrTooManySolutions, "got %d, max %d", len(solutions), MaxProverSolutions)
	}
	zlog.Logger().Debug().Int("solutions", len(solutions)).Msg("coinbase puzzle: accumulate starting")

	retained := make([]ProverSolution, 0, len(solutions))
	for _, s := range solutions {
		if s.Proof.IsHiding() {
			zlog.Logger().Warn().Msg("coinbase puzzle: dropping hiding proof from accumulation batch")
			continue
		}
		retained = append(retained, s)
	}
	if len(retained) == 0 {
		return nil, ErrEmptySolutions
	}

	commitments := make([]bls12377.G1Affine, len(retained))
	parallel.Map(len(retained), commitments, func(i int) bls12377.G1Affine {
		return retained[i].Partial.Commitment
	})

	challenges, err := hashCommitments(commitments)
	if err != nil {
		return nil, err
	}
	if len(challenges) != len(retained)+1 {
		return nil, wrapErr(ErrMalformedChallenge, "expected %d challenges, got %d", len(retained)+1, len(challenges))
	}
	accumulatorPoint := challenges[len(challenges)-1]
	randomizers := challenges[:len(challenges)-1]

	scaled := make([]Polynomial, len(retained))
	var deriveErr error
	parallel.Range(len(retained), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			fi, err := retained[i].ToProverPolynomial(epoch)
			if err != nil {
				deriveErr = err
				return
			}
			scaled[i] = ScaleAndAccumulate(nil, randomizers[i], fi)
		}
	})
	if deriveErr != nil {
		return nil, deriveErr
	}
	combined := parallel.Fold(len(scaled), Polynomial(nil), func(i int) Polynomial { return scaled[i] }, addPolynomials)

	value := combined.Evaluate(accumulatorPoint)
	gAtPoint := epoch.EpochPolynomial().Evaluate(accumulatorPoint)
	value.Mul(&value, &gAtPoint)

	domain := p.proving.ProductDomain
	fEval := combined.Evaluations(domain)
	hEval := domain.MulEvaluations(fEval, epoch.EpochPolynomialEvaluations())

	proof, err := kzg10.OpenLagrange(domain.Size(), domain.Generator(), p.proving.LagrangeBasisAtBetaG, hEval, accumulatorPoint, value)
	if err != nil {
		return nil, wrapErr(ErrCryptoBackend, "open_lagrange: %v", err)
	}
	if proof.IsHiding() {
		return nil, ErrHidingProof
	}

	partials := make([]PartialSolution, len(retained))
	parallel.Map(len(retained), partials, func(i int) PartialSolution {
		return retained[i].Partial
	})

	zlog.Logger().Debug().Int("retained", len(retained)).Msg("coinbase puzzle: accumulate complete")
	return &CoinbaseSolution{PartialSolutions: partials, Proof: proof}, nil
}

// Verify reconstructs the aggregate commitment and evaluation from a
// CoinbaseSolution's partial solutions and checks the single KZG opening
// proof. It accepts either a Prover or Verifier
// handle: a Prover handle's embedded verifying key is used transparently.
func (p *Puzzle) Verify(solution *CoinbaseSolution, epoch *EpochChallenge, coinbaseTarget, proofTarget uint64) (bool, error) {
	if len(solution.PartialSolutions) == 0 {
		return false, ErrEmptySolutions
	}
	if len(solution.PartialSolutions) > MaxProverSolutions {
		return false, wrapErr(ErrTooManySolutions, "got %d, max %d", len(solution.PartialSolutions), MaxProverSolutions)
	}
	if solution.Proof.IsHiding() {
		return false, ErrHidingProof
	}
	zlog.Logger().Debug().
		Int("partial_solutions", len(solution.PartialSolutions)).
		Uint64("coinbase_target", coinbaseTarget).
		Uint64("proof_target", proofTarget).
		Msg("coinbase puzzle: verify starting")

	cumulativeHi, cumulativeLo := solution.ToCumulativeTarget()
	if !cumulativeTargetGTE(cumulativeHi, cumulativeLo, coinbaseTarget) {
		return false, wrapErr(ErrDifficultyNotMet, "cumulative target below coinbase_target %d", coinbaseTarget)
	}

	commitments := make([]bls12377.G1Affine, len(solution.PartialSolutions))
	polynomials := make([]Polynomial, len(solution.PartialSolutions))
	var polyErr error
	parallel.Range(len(solution.PartialSolutions), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			partial := solution.PartialSolutions[i]
			if partial.ToTarget() < proofTarget {
				polyErr = wrapErr(ErrDifficultyNotMet, "partial solution %d below proof_target %d", i, proofTarget)
				return
			}
			commitments[i] = partial.Commitment
			fi, err := proverPolynomial(epoch, partial.Address, partial.Nonce)
			if err != nil {
				polyErr = err
				return
			}
			polynomials[i] = fi
		}
	})
	if polyErr != nil {
		return false, polyErr
	}

	challenges, err := hashCommitments(commitments)
	if err != nil {
		return false, err
	}
	if len(challenges) != len(commitments)+1 {
		return false, wrapErr(ErrMalformedChallenge, "expected %d challenges, got %d", len(commitments)+1, len(challenges))
	}
	accumulatorPoint := challenges[len(challenges)-1]
	randomizers := challenges[:len(challenges)-1]

	combinedEval := parallel.Fold(len(polynomials), fr.Element{}, func(i int) fr.Element {
		term := polynomials[i].Evaluate(accumulatorPoint)
		term.Mul(&term, &randomizers[i])
		return term
	}, sumFr)
	gAtPoint := epoch.EpochPolynomial().Evaluate(accumulatorPoint)
	combinedEval.Mul(&combinedEval, &gAtPoint)

	var accumulatorCommitmentJac bls12377.G1Jac
	if _, err := accumulatorCommitmentJac.MultiExp(commitments, randomizers, ecc.MultiExpConfig{}); err != nil {
		return false, wrapErr(ErrCryptoBackend, "accumulator commitment MSM: %v", err)
	}
	var accumulatorCommitment bls12377.G1Affine
	accumulatorCommitment.FromJacobian(&accumulatorCommitmentJac)

	ok, err := kzg10.Check(p.verifyingKey(), accumulatorCommitment, accumulatorPoint, combinedEval, solution.Proof)
	if err != nil {
		return false, wrapErr(ErrCryptoBackend, "check: %v", err)
	}
	return ok, nil
}
