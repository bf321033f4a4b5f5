package puzzle

import (
	"io"

	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"
	"github.com/fxamacker/cbor/v2"

	"github.com/ABMatrix/snarkVM/internal/zlog"
	"github.com/ABMatrix/snarkVM/polycommit/kzg10"
)

// CoinbaseVerifyingKey is the public data a verifier needs to run the
// pairing check: the SRS's G1 generator, the (always-zero, non-hiding)
// blinding generator, and the G2 elements, identical in shape to
// kzg10.VerifyingKey.
type CoinbaseVerifyingKey = kzg10.VerifyingKey

// CoinbaseProvingKey holds everything a prover needs: the truncated
// monomial basis, the product evaluation domain, and the Lagrange basis
// derived from it, plus the embedded verifying key so a Prover-role
// Puzzle can verify its own output without a second handle.
type CoinbaseProvingKey struct {
	PowersOfBetaG        []bls12377.G1Affine
	ProductDomain        *EvaluationDomain
	LagrangeBasisAtBetaG []bls12377.G1Affine
	VerifyingKey         *CoinbaseVerifyingKey
}

// Setup produces an SRS supporting commitments up to at least degree 2n
// (at least 2n+1 powers of beta*G), in non-hiding mode. rng must
// be a source of 32 uniformly random bytes; callers that need
// reproducible tests supply a seeded deterministic stream.
//
// The SRS is sized to the rounded-up product domain (the smallest power
// of two >= 2n+1), one power per domain element, rather than to exactly
// 2n+1: Trim's Lagrange-basis derivation runs an inverse NTT over the
// whole domain, which needs one power of beta*G per domain point even
// though only the first 2n+1 of them are exposed as the proving key's
// monomial basis.
func Setup(config PuzzleConfig, rng io.Reader) (*kzg10.SRS, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	domain, err := NewEvaluationDomain(productDomainMinSize(config.Degree))
	if err != nil {
		return nil, err
	}
	maxDegree := int(domain.Size()) - 1
	srs, err := kzg10.Setup(maxDegree, rng)
	if err != nil {
		return nil, wrapErr(ErrCryptoBackend, "setup: %v", err)
	}
	zlog.Logger().Debug().
		Uint64("product_domain_size", domain.Size()).
		Int("max_degree", maxDegree).
		Msg("coinbase puzzle: setup complete")
	return srs, nil
}

// Trim extracts a CoinbaseProvingKey from a universal srs: the first
// 2n+1 powers of beta*G, the product domain of size m >= 2n+1, and the
// Lagrange basis at beta*G derived by a single inverse NTT from the
// SRS's first m powers (so srs must hold at least m of them).
func Trim(srs *kzg10.SRS, config PuzzleConfig) (*CoinbaseProvingKey, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	productNumCoefficients := 2*int(config.Degree) + 1
	powers, err := srs.PowersOfBetaGRange(0, productNumCoefficients)
	if err != nil {
		return nil, wrapErr(ErrInvalidDegree, "trim: %v", err)
	}

	domain, err := NewEvaluationDomain(productDomainMinSize(config.Degree))
	if err != nil {
		return nil, err
	}

	lagrangeBasis, err := srs.LagrangeBasis(domain.Size(), domain.Generator())
	if err != nil {
		return nil, wrapErr(ErrCryptoBackend, "trim: deriving lagrange basis: %v", err)
	}

	vk, err := kzg10.NewVerifyingKey(srs)
	if err != nil {
		return nil, wrapErr(ErrCryptoBackend, "trim: building verifying key: %v", err)
	}

	zlog.Logger().Debug().
		Int("powers_of_beta_g", len(powers)).
		Uint64("product_domain_size", domain.Size()).
		Msg("coinbase puzzle: trim complete")

	return &CoinbaseProvingKey{
		PowersOfBetaG:        powers,
		ProductDomain:        domain,
		LagrangeBasisAtBetaG: lagrangeBasis,
		VerifyingKey:         vk,
	}, nil
}

type verifyingKeyWire struct {
	Version string `cbor:"v"`
	G       []byte `cbor:"g"`
	GammaG  []byte `cbor:"gamma_g"`
	H       []byte `cbor:"h"`
	BetaH   []byte `cbor:"beta_h"`
}

type provingKeyWire struct {
	Version           string           `cbor:"v"`
	PowersOfBetaG     [][]byte         `cbor:"powers"`
	ProductDomainSize uint64           `cbor:"domain_size"`
	LagrangeBasis     [][]byte         `cbor:"lagrange_basis"`
	VerifyingKey      verifyingKeyWire `cbor:"vk"`
}

// EncodeVerifyingKey serializes a CoinbaseVerifyingKey to CBOR. PreparedH
// and PreparedBetaH are not encoded: DecodeVerifyingKey reconstructs them
// from H and BetaH, per kzg10.NewVerifyingKey's own convention that they
// are cached copies, not independent data.
func EncodeVerifyingKey(vk *CoinbaseVerifyingKey) ([]byte, error) {
	return cbor.Marshal(verifyingKeyWire{
		Version: wireVersion.String(),
		G:       vk.G.Marshal(),
		GammaG:  vk.GammaG.Marshal(),
		H:       vk.H.Marshal(),
		BetaH:   vk.BetaH.Marshal(),
	})
}

// DecodeVerifyingKey decodes a CoinbaseVerifyingKey from CBOR, rejecting
// an incompatible major wire version.
func DecodeVerifyingKey(data []byte) (*CoinbaseVerifyingKey, error) {
	var w verifyingKeyWire
	if err := cbor.Unmarshal(data, &w); err != nil {
		return nil, wrapErr(ErrCryptoBackend, "decoding verifying key: %v", err)
	}
	if err := checkWireVersion(w.Version); err != nil {
		return nil, err
	}
	var g, gammaG bls12377.G1Affine
	if _, err := g.SetBytes(w.G); err != nil {
		return nil, wrapErr(ErrCryptoBackend, "verifying key: decoding g: %v", err)
	}
	if _, err := gammaG.SetBytes(w.GammaG); err != nil {
		return nil, wrapErr(ErrCryptoBackend, "verifying key: decoding gamma_g: %v", err)
	}
	var h, betaH bls12377.G2Affine
	if _, err := h.SetBytes(w.H); err != nil {
		return nil, wrapErr(ErrCryptoBackend, "verifying key: decoding h: %v", err)
	}
	if _, err := betaH.SetBytes(w.BetaH); err != nil {
		return nil, wrapErr(ErrCryptoBackend, "verifying key: decoding beta_h: %v", err)
	}
	return &CoinbaseVerifyingKey{
		G:             g,
		GammaG:        gammaG,
		H:             h,
		BetaH:         betaH,
		PreparedH:     h,
		PreparedBetaH: betaH,
	}, nil
}

// EncodeProvingKey serializes a CoinbaseProvingKey to CBOR. The product
// domain is encoded as its size alone: NewEvaluationDomain deterministically
// regenerates its generator and element vector from that size, so there is
// nothing else about the domain worth shipping over the wire.
func EncodeProvingKey(pk *CoinbaseProvingKey) ([]byte, error) {
	vkBytes, err := EncodeVerifyingKey(pk.VerifyingKey)
	if err != nil {
		return nil, err
	}
	var vkWire verifyingKeyWire
	if err := cbor.Unmarshal(vkBytes, &vkWire); err != nil {
		return nil, err
	}

	powers := make([][]byte, len(pk.PowersOfBetaG))
	for i := range pk.PowersOfBetaG {
		powers[i] = pk.PowersOfBetaG[i].Marshal()
	}
	basis := make([][]byte, len(pk.LagrangeBasisAtBetaG))
	for i := range pk.LagrangeBasisAtBetaG {
		basis[i] = pk.LagrangeBasisAtBetaG[i].Marshal()
	}

	return cbor.Marshal(provingKeyWire{
		Version:           wireVersion.String(),
		PowersOfBetaG:     powers,
		ProductDomainSize: pk.ProductDomain.Size(),
		LagrangeBasis:     basis,
		VerifyingKey:      vkWire,
	})
}

// DecodeProvingKey decodes a CoinbaseProvingKey from CBOR.
func DecodeProvingKey(data []byte) (*CoinbaseProvingKey, error) {
	var w provingKeyWire
	if err := cbor.Unmarshal(data, &w); err != nil {
		return nil, wrapErr(ErrCryptoBackend, "decoding proving key: %v", err)
	}
	if err := checkWireVersion(w.Version); err != nil {
		return nil, err
	}

	vkBytes, err := cbor.Marshal(w.VerifyingKey)
	if err != nil {
		return nil, err
	}
	vk, err := DecodeVerifyingKey(vkBytes)
	if err != nil {
		return nil, err
	}

	domain, err := NewEvaluationDomain(w.ProductDomainSize)
	if err != nil {
		return nil, err
	}

	powers := make([]bls12377.G1Affine, len(w.PowersOfBetaG))
	for i, b := range w.PowersOfBetaG {
		if _, err := powers[i].SetBytes(b); err != nil {
			return nil, wrapErr(ErrCryptoBackend, "proving key: decoding power %d: %v", i, err)
		}
	}
	basis := make([]bls12377.G1Affine, len(w.LagrangeBasis))
	for i, b := range w.LagrangeBasis {
		if _, err := basis[i].SetBytes(b); err != nil {
			return nil, wrapErr(ErrCryptoBackend, "proving key: decoding lagrange basis %d: %v", i, err)
		}
	}

	return &CoinbaseProvingKey{
		PowersOfBetaG:        powers,
		ProductDomain:        domain,
		LagrangeBasisAtBetaG: basis,
		VerifyingKey:         vk,
	}, nil
}
