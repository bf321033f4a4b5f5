package puzzle

import (
	"fmt"

	"github.com/blang/semver/v4"
	"github.com/fxamacker/cbor/v2"

	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"

	"github.com/ABMatrix/snarkVM/polycommit/kzg10"
)

// wireVersion is the format version tag every serialized solution
// carries, so a future incompatible change to the wire layout can be
// detected instead of silently misparsed.
var wireVersion = semver.MustParse("1.0.0")

type partialSolutionWire struct {
	Version    string `cbor:"v"`
	Address    []byte `cbor:"addr"`
	Nonce      uint64 `cbor:"nonce"`
	Commitment []byte `cbor:"commitment"`
}

type proverSolutionWire struct {
	Version string `cbor:"v"`
	Partial partialSolutionWire `cbor:"partial"`
	Hiding  bool   `cbor:"hiding"`
	Proof   []byte `cbor:"proof"`
}

type coinbaseSolutionWire struct {
	Version  string                 `cbor:"v"`
	Partials []partialSolutionWire  `cbor:"partials"`
	Hiding   bool                   `cbor:"hiding"`
	Proof    []byte                 `cbor:"proof"`
}

// MarshalCBOR encodes a PartialSolution to CBOR.
func (p PartialSolution) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(partialSolutionWire{
		Version:    wireVersion.String(),
		Address:    p.Address[:],
		Nonce:      p.Nonce,
		Commitment: p.Commitment.Marshal(),
	})
}

// UnmarshalCBOR decodes a PartialSolution from CBOR, rejecting an
// incompatible major version.
func (p *PartialSolution) UnmarshalCBOR(data []byte) error {
	var w partialSolutionWire
	if err := cbor.Unmarshal(data, &w); err != nil {
		return wrapErr(ErrCryptoBackend, "decoding partial solution: %v", err)
	}
	if err := checkWireVersion(w.Version); err != nil {
		return err
	}
	if len(w.Address) != 32 {
		return wrapErr(ErrCryptoBackend, "partial solution: address length %d, want 32", len(w.Address))
	}
	var commitment bls12377.G1Affine
	if _, err := commitment.SetBytes(w.Commitment); err != nil {
		return wrapErr(ErrCryptoBackend, "partial solution: decoding commitment: %v", err)
	}
	copy(p.Address[:], w.Address)
	p.Nonce = w.Nonce
	p.Commitment = commitment
	return nil
}

// MarshalCBOR encodes a ProverSolution to CBOR.
func (s ProverSolution) MarshalCBOR() ([]byte, error) {
	partialBytes, err := s.Partial.MarshalCBOR()
	if err != nil {
		return nil, err
	}
	var partial partialSolutionWire
	if err := cbor.Unmarshal(partialBytes, &partial); err != nil {
		return nil, err
	}
	return cbor.Marshal(proverSolutionWire{
		Version: wireVersion.String(),
		Partial: partial,
		Hiding:  s.Proof.IsHiding(),
		Proof:   s.Proof.W.Marshal(),
	})
}

// UnmarshalCBOR decodes a ProverSolution from CBOR.
func (s *ProverSolution) UnmarshalCBOR(data []byte) error {
	var w proverSolutionWire
	if err := cbor.Unmarshal(data, &w); err != nil {
		return wrapErr(ErrCryptoBackend, "decoding prover solution: %v", err)
	}
	if err := checkWireVersion(w.Version); err != nil {
		return err
	}
	partialBytes, err := cbor.Marshal(w.Partial)
	if err != nil {
		return err
	}
	var partial PartialSolution
	if err := partial.UnmarshalCBOR(partialBytes); err != nil {
		return err
	}
	var proofPoint bls12377.G1Affine
	if _, err := proofPoint.SetBytes(w.Proof); err != nil {
		return wrapErr(ErrCryptoBackend, "prover solution: decoding proof: %v", err)
	}
	s.Partial = partial
	s.Proof = &kzg10.Proof{W: proofPoint, Hiding: w.Hiding}
	return nil
}

// MarshalCBOR encodes a CoinbaseSolution to CBOR.
func (c CoinbaseSolution) MarshalCBOR() ([]byte, error) {
	partials := make([]partialSolutionWire, len(c.PartialSolutions))
	for i, p := range c.PartialSolutions {
		b, err := p.MarshalCBOR()
		if err != nil {
			return nil, err
		}
		if err := cbor.Unmarshal(b, &partials[i]); err != nil {
			return nil, err
		}
	}
	return cbor.Marshal(coinbaseSolutionWire{
		Version:  wireVersion.String(),
		Partials: partials,
		Hiding:   c.Proof.IsHiding(),
		Proof:    c.Proof.W.Marshal(),
	})
}

// UnmarshalCBOR decodes a CoinbaseSolution from CBOR.
func (c *CoinbaseSolution) UnmarshalCBOR(data []byte) error {
	var w coinbaseSolutionWire
	if err := cbor.Unmarshal(data, &w); err != nil {
		return wrapErr(ErrCryptoBackend, "decoding coinbase solution: %v", err)
	}
	if err := checkWireVersion(w.Version); err != nil {
		return err
	}
	partials := make([]PartialSolution, len(w.Partials))
	for i, pw := range w.Partials {
		b, err := cbor.Marshal(pw)
		if err != nil {
			return err
		}
		if err := partials[i].UnmarshalCBOR(b); err != nil {
			return err
		}
	}
	var proofPoint bls12377.G1Affine
	if _, err := proofPoint.SetBytes(w.Proof); err != nil {
		return wrapErr(ErrCryptoBackend, "coinbase solution: decoding proof: %v", err)
	}
	c.PartialSolutions = partials
	c.Proof = &kzg10.Proof{W: proofPoint, Hiding: w.Hiding}
	return nil
}

func checkWireVersion(v string) error {
	parsed, err := semver.Parse(v)
	if err != nil {
		return wrapErr(ErrCryptoBackend, "invalid wire version %q: %v", v, err)
	}
	if parsed.Major != wireVersion.Major {
		return fmt.Errorf("coinbase puzzle: incompatible wire version %s, expected major %d", v, wireVersion.Major)
	}
	return nil
}
