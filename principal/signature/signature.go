// Package signature holds detached signatures encoded as CESR primitives.
package signature

import (
	"bytes"
	"fmt"

	"github.com/storacha/go-verfer/core/matter"
	"github.com/storacha/go-verfer/principal/verifier"
)

// codes maps signature codes to the key algorithm that produces them.
var codes = map[matter.Code]verifier.Algorithm{
	matter.Ed25519Sig:    verifier.Ed25519,
	matter.ECDSA256k1Sig: verifier.ECDSASecp256k1,
}

// CodeFor returns the signature code produced by keys of alg.
func CodeFor(alg verifier.Algorithm) (matter.Code, error) {
	for code, a := range codes {
		if a == alg {
			return code, nil
		}
	}
	return "", fmt.Errorf("no signature code for algorithm %s", alg)
}

type Signature struct {
	code matter.Code
	raw  []byte
}

func fromMatter(m *matter.Matter) (Signature, error) {
	if _, ok := codes[m.Code()]; !ok {
		return Signature{}, fmt.Errorf("unexpected signature code: %q", string(m.Code()))
	}
	return Signature{code: m.Code(), raw: m.Raw()}, nil
}

// New packages raw signature bytes with a signature code.
func New(code matter.Code, raw []byte) (Signature, error) {
	m, err := matter.New(code, raw)
	if err != nil {
		return Signature{}, err
	}
	return fromMatter(m)
}

// Parse decodes a qb64 signature.
func Parse(qb64 string) (Signature, error) {
	return Decode([]byte(qb64))
}

// Decode decodes a qb64b signature.
func Decode(qb64b []byte) (Signature, error) {
	m, err := matter.Decode(qb64b)
	if err != nil {
		return Signature{}, err
	}
	return fromMatter(m)
}

// DecodeBinary decodes a qb2 signature.
func DecodeBinary(qb2 []byte) (Signature, error) {
	m, err := matter.DecodeBinary(qb2)
	if err != nil {
		return Signature{}, err
	}
	return fromMatter(m)
}

func (s Signature) Code() matter.Code {
	return s.code
}

// Raw signature (without the derivation code).
func (s Signature) Raw() []byte {
	return bytes.Clone(s.raw)
}

// Algorithm returns the key algorithm that produced the signature.
func (s Signature) Algorithm() verifier.Algorithm {
	return codes[s.code]
}

func (s Signature) QB64() (string, error) {
	b, err := matter.Encode(s.code, s.raw)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s Signature) QB2() ([]byte, error) {
	return matter.EncodeBinary(s.code, s.raw)
}

// Verify that the signature was produced over msg by the key of v. A signature
// from another algorithm family is an error.
func (s Signature) Verify(msg []byte, v *verifier.Verifier) (bool, error) {
	if alg := s.Algorithm(); alg != v.Algorithm() {
		return false, fmt.Errorf("%s signature cannot be verified by %s key", alg, v.Algorithm())
	}
	return v.Verify(s.raw, msg)
}
