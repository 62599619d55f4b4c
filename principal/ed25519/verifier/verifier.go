package verifier

import (
	"crypto/ed25519"
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/multiformats/go-multicodec"
)

const Name = "Ed25519"

// Multicodec is the code that tags an Ed25519 public key in a did:key.
const Multicodec = multicodec.Ed25519Pub

const KeySize = ed25519.PublicKeySize
const SignatureSize = ed25519.SignatureSize

var (
	ErrInvalidPublicKey = errors.New("invalid Ed25519 public key")
	ErrInvalidSignature = errors.New("invalid Ed25519 signature")
)

// Verify reports whether sig is a valid signature of msg by pub.
//
// A key that is not a 32 byte encoding of a curve point, or a signature that
// is not 64 bytes, is an error. A well formed signature that does not match
// returns false.
func Verify(pub, sig, msg []byte) (bool, error) {
	if len(pub) != KeySize {
		return false, fmt.Errorf("%w: invalid length: %d wanted: %d", ErrInvalidPublicKey, len(pub), KeySize)
	}
	if _, err := new(edwards25519.Point).SetBytes(pub); err != nil {
		return false, fmt.Errorf("%w: %s", ErrInvalidPublicKey, err)
	}
	if len(sig) != SignatureSize {
		return false, fmt.Errorf("%w: invalid length: %d wanted: %d", ErrInvalidSignature, len(sig), SignatureSize)
	}
	return ed25519.Verify(ed25519.PublicKey(pub), msg, sig), nil
}
