package puzzle

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	htf "github.com/consensys/gnark-crypto/ecc/bls12-377/fr/hash_to_field"
	fiatshamir "github.com/consensys/gnark-crypto/fiat-shamir"
)

var (
	polynomialDomainTag = []byte("coinbase_puzzle/hash_to_polynomial")
	commitmentDomainTag = []byte("coinbase_puzzle/hash_commitment")
)

// hashToPolynomial deterministically derives a degree-n polynomial (n+1
// coefficients) from input, by hashing input concatenated with a
// little-endian coefficient index into Fr through gnark-crypto's
// per-curve hash-to-field construction, once per coefficient. The top
// coefficient is as likely to be zero as any other sampled field element.
func hashToPolynomial(input []byte, degree uint32) (Polynomial, error) {
	h := htf.New(polynomialDomainTag)
	coeffs := make(Polynomial, degree+1)
	idxBuf := make([]byte, 4)
	for i := range coeffs {
		binary.LittleEndian.PutUint32(idxBuf, uint32(i))
		h.Reset()
		if _, err := h.Write(input); err != nil {
			return nil, wrapErr(ErrCryptoBackend, "hash_to_polynomial: %v", err)
		}
		if _, err := h.Write(idxBuf); err != nil {
			return nil, wrapErr(ErrCryptoBackend, "hash_to_polynomial: %v", err)
		}
		coeffs[i].SetBytes(h.Sum(nil))
	}
	return coeffs, nil
}

// hashCommitment reduces a single G1 commitment to one Fr element via the
// same hash-to-field construction, with a distinct domain tag from
// hashToPolynomial.
func hashCommitment(c bls12377.G1Affine) (fr.Element, error) {
	h := htf.New(commitmentDomainTag)
	bz := c.Marshal()
	if _, err := h.Write(bz); err != nil {
		return fr.Element{}, wrapErr(ErrCryptoBackend, "hash_commitment: %v", err)
	}
	var out fr.Element
	out.SetBytes(h.Sum(nil))
	return out, nil
}

// hashCommitments absorbs commitments, in order, into a Fiat-Shamir
// transcript and squeezes len(commitments)+1 challenges: r_0..r_{k-1}
// followed by the accumulator point z*.
// The transcript is a pure function of the ordered commitment list: every
// challenge label absorbs the full, ordered commitment set before being
// squeezed, so no challenge depends on anything but (commitments, its own
// position).
func hashCommitments(commitments []bls12377.G1Affine) ([]fr.Element, error) {
	k := len(commitments)
	labels := make([]string, k+1)
	for i := 0; i < k; i++ {
		labels[i] = fmt.Sprintf("r%d", i)
	}
	labels[k] = "z"

	ts := fiatshamir.NewTranscript(sha256.New(), labels...)
	for _, label := range labels {
		for _, c := range commitments {
			bz := c.Marshal()
			if err := ts.Bind(label, bz); err != nil {
				return nil, wrapErr(ErrCryptoBackend, "hash_commitments: bind: %v", err)
			}
		}
	}

	challenges := make([]fr.Element, k+1)
	for i, label := range labels {
		b, err := ts.ComputeChallenge(label)
		if err != nil {
			return nil, wrapErr(ErrCryptoBackend, "hash_commitments: squeeze: %v", err)
		}
		challenges[i].SetBytes(b)
	}
	if len(challenges) != k+1 {
		return nil, wrapErr(ErrMalformedChallenge, "expected %d challenges, got %d", k+1, len(challenges))
	}
	return challenges, nil
}

// sha256dToU64 implements the difficulty-gate hash: double SHA-256 of
// data, interpreting the first 8 bytes of the digest as a little-endian
// u64.
func sha256dToU64(data []byte) uint64 {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	return binary.LittleEndian.Uint64(second[:8])
}
