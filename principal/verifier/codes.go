package verifier

import (
	"github.com/storacha/go-verfer/core/matter"
	ed25519verifier "github.com/storacha/go-verfer/principal/ed25519/verifier"
	secp256k1verifier "github.com/storacha/go-verfer/principal/secp256k1/verifier"
)

// Algorithm is a signature algorithm family.
type Algorithm int

const (
	Ed25519 Algorithm = iota + 1
	ECDSASecp256k1
)

func (a Algorithm) String() string {
	switch a {
	case Ed25519:
		return ed25519verifier.Name
	case ECDSASecp256k1:
		return secp256k1verifier.Name
	default:
		return "unknown"
	}
}

type class struct {
	alg          Algorithm
	transferable bool
}

// codes is the allow-list of derivation codes a Verifier may carry.
var codes = map[matter.Code]class{
	matter.Ed25519N:    {Ed25519, false},
	matter.Ed25519:     {Ed25519, true},
	matter.ECDSA256k1N: {ECDSASecp256k1, false},
	matter.ECDSA256k1:  {ECDSASecp256k1, true},
}

// Codes returns the derivation codes accepted for verification keys.
func Codes() []matter.Code {
	return []matter.Code{matter.Ed25519N, matter.Ed25519, matter.ECDSA256k1N, matter.ECDSA256k1}
}

// Validate returns an UnexpectedCodeError if code is not a verification key
// code.
func Validate(code matter.Code) error {
	if _, ok := codes[code]; !ok {
		return NewUnexpectedCodeError(code)
	}
	return nil
}

// Classify returns the algorithm family of code and whether it is the
// transferable variant.
func Classify(code matter.Code) (Algorithm, bool, error) {
	c, ok := codes[code]
	if !ok {
		return 0, false, NewUnexpectedCodeError(code)
	}
	return c.alg, c.transferable, nil
}

// CodeFor returns the code of the given algorithm family and variant.
func CodeFor(alg Algorithm, transferable bool) (matter.Code, error) {
	for code, c := range codes {
		if c.alg == alg && c.transferable == transferable {
			return code, nil
		}
	}
	return "", NewUnsupportedAlgorithmError(alg, transferable)
}
