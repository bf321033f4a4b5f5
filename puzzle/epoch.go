package puzzle

import "github.com/consensys/gnark-crypto/ecc/bls12-377/fr"

// EpochChallenge bundles the consensus-fixed public inputs for one epoch:
// the epoch number, the epoch's block hash, and the epoch polynomial g
// along with its evaluations over the product domain.
type EpochChallenge struct {
	epochNumber             uint32
	epochBlockHash          [32]byte
	epochPolynomial         Polynomial
	epochPolynomialEvaluations []fr.Element
}

// NewEpochChallenge constructs an EpochChallenge over the given product
// domain, checking that epochPolynomial has no more coefficients than the
// domain has elements before computing its evaluations. The evaluations are derived
// from the polynomial, not accepted independently, so the invariant
// "evaluations are consistent with the polynomial under the product
// domain" holds by construction.
func NewEpochChallenge(epochNumber uint32, epochBlockHash [32]byte, epochPolynomial Polynomial, domain *EvaluationDomain) (*EpochChallenge, error) {
	if uint32(epochPolynomial.Degree()) > 0 && uint64(len(epochPolynomial)) > domain.Size() {
		return nil, wrapErr(ErrInvalidDegree, "epoch polynomial length %d exceeds product domain size %d", len(epochPolynomial), domain.Size())
	}
	return &EpochChallenge{
		epochNumber:                epochNumber,
		epochBlockHash:             epochBlockHash,
		epochPolynomial:            epochPolynomial,
		epochPolynomialEvaluations: epochPolynomial.Evaluations(domain),
	}, nil
}

func (e *EpochChallenge) EpochNumber() uint32 { return e.epochNumber }

func (e *EpochChallenge) EpochBlockHash() [32]byte { return e.epochBlockHash }

func (e *EpochChallenge) EpochPolynomial() Polynomial { return e.epochPolynomial }

func (e *EpochChallenge) EpochPolynomialEvaluations() []fr.Element { return e.epochPolynomialEvaluations }

// Degree returns the epoch polynomial's configured degree bound n, used
// by proverPolynomial to size the hash-derived polynomial it builds
// against the same epoch.
func (e *EpochChallenge) Degree() uint32 {
	return uint32(len(e.epochPolynomial) - 1)
}
