package principal

import (
	"github.com/storacha/go-verfer/core/matter"
	"github.com/storacha/go-verfer/did"
	"github.com/storacha/go-verfer/principal/verifier"
)

// Verifier is a public key that can check signatures made by its private key.
type Verifier interface {
	Code() matter.Code
	Raw() []byte
	QB64() (string, error)
	DID() (did.DID, error)
	// Verify reports whether sig is a valid signature of msg. An error means
	// the inputs were malformed and verification could not be attempted.
	Verify(sig, msg []byte) (bool, error)
}

var _ Verifier = (*verifier.Verifier)(nil)
