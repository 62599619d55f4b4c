package verifier

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/multiformats/go-multicodec"
)

const Name = "ECDSA-secp256k1"

// Multicodec is the code that tags a compressed secp256k1 public key in a
// did:key.
const Multicodec = multicodec.Secp256k1Pub

// KeySize is the size of a SEC1 compressed public key.
const KeySize = btcec.PubKeyBytesLenCompressed

// SignatureSize is the size of a compact r||s signature.
const SignatureSize = 64

var (
	ErrInvalidPublicKey = errors.New("invalid secp256k1 public key")
	ErrInvalidSignature = errors.New("invalid secp256k1 signature")
)

// Verify reports whether sig is a valid ECDSA signature of the SHA-256 digest
// of msg by pub.
//
// pub must be a SEC1 compressed point and sig a 64 byte r||s pair with both
// scalars in [1, N-1]; anything else is an error. Signatures with a high S
// value are not canonical and return false.
func Verify(pub, sig, msg []byte) (bool, error) {
	if len(pub) != KeySize {
		return false, fmt.Errorf("%w: invalid length: %d wanted: %d", ErrInvalidPublicKey, len(pub), KeySize)
	}
	key, err := btcec.ParsePubKey(pub)
	if err != nil {
		return false, fmt.Errorf("%w: %s", ErrInvalidPublicKey, err)
	}

	s, err := parseSignature(sig)
	if err != nil {
		return false, err
	}
	if s.high {
		return false, nil
	}

	digest := sha256.Sum256(msg)
	return s.sig.Verify(digest[:], key), nil
}

type signature struct {
	sig  *ecdsa.Signature
	high bool
}

func parseSignature(sig []byte) (signature, error) {
	if len(sig) != SignatureSize {
		return signature{}, fmt.Errorf("%w: invalid length: %d wanted: %d", ErrInvalidSignature, len(sig), SignatureSize)
	}
	var r, s secp256k1.ModNScalar
	if overflow := r.SetByteSlice(sig[:32]); overflow {
		return signature{}, fmt.Errorf("%w: R is not less than the group order", ErrInvalidSignature)
	}
	if overflow := s.SetByteSlice(sig[32:]); overflow {
		return signature{}, fmt.Errorf("%w: S is not less than the group order", ErrInvalidSignature)
	}
	if r.IsZero() {
		return signature{}, fmt.Errorf("%w: R is zero", ErrInvalidSignature)
	}
	if s.IsZero() {
		return signature{}, fmt.Errorf("%w: S is zero", ErrInvalidSignature)
	}
	return signature{sig: ecdsa.NewSignature(&r, &s), high: s.IsOverHalfOrder()}, nil
}
