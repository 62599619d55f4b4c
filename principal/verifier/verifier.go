// Package verifier implements self-describing signature verification keys.
//
// A Verifier pairs raw public key bytes with a derivation code. The code fixes
// the key size and the signature algorithm, and says whether the key belongs
// to a transferable identifier (one that may rotate to a new key) or a
// non-transferable one. Only Ed25519 and ECDSA-secp256k1 codes are accepted,
// on every construction path.
package verifier

import (
	"errors"
	"sync"

	"github.com/storacha/go-verfer/core/matter"
	"github.com/storacha/go-verfer/did"
	ed25519verifier "github.com/storacha/go-verfer/principal/ed25519/verifier"
	"github.com/storacha/go-verfer/principal/multiformat"
	secp256k1verifier "github.com/storacha/go-verfer/principal/secp256k1/verifier"
)

// Verifier is a public key tagged with its derivation code. It is safe for
// concurrent use.
type Verifier struct {
	mu   sync.RWMutex
	code matter.Code
	raw  []byte
	size uint32
}

// ErrNoMatter is returned when a Codec reports success without a value.
var ErrNoMatter = errors.New("codec returned no matter")

// fromMatter validates the code of a codec result. The codec may not return
// the code it was given.
func fromMatter(m *matter.Matter) (*Verifier, error) {
	if m == nil {
		return nil, ErrNoMatter
	}
	if err := Validate(m.Code()); err != nil {
		return nil, err
	}
	return &Verifier{code: m.Code(), raw: m.Raw(), size: m.Size()}, nil
}

// New creates a Verifier from a derivation code and raw key bytes.
func New(code matter.Code, raw []byte, opts ...Option) (*Verifier, error) {
	if err := Validate(code); err != nil {
		return nil, err
	}
	cfg, err := configure(opts)
	if err != nil {
		return nil, err
	}
	m, err := cfg.codec.New(code, raw)
	if err != nil {
		return nil, err
	}
	return fromMatter(m)
}

// Parse creates a Verifier from its qb64 text encoding.
func Parse(qb64 string, opts ...Option) (*Verifier, error) {
	return Decode([]byte(qb64), opts...)
}

// Decode creates a Verifier from its qb64b encoding.
func Decode(qb64b []byte, opts ...Option) (*Verifier, error) {
	cfg, err := configure(opts)
	if err != nil {
		return nil, err
	}
	m, err := cfg.codec.Decode(qb64b)
	if err != nil {
		return nil, err
	}
	return fromMatter(m)
}

// DecodeBinary creates a Verifier from its qb2 encoding.
func DecodeBinary(qb2 []byte, opts ...Option) (*Verifier, error) {
	cfg, err := configure(opts)
	if err != nil {
		return nil, err
	}
	m, err := cfg.codec.DecodeBinary(qb2)
	if err != nil {
		return nil, err
	}
	return fromMatter(m)
}

// FromDID creates a Verifier from a did:key. A did:key does not say whether
// its key may rotate, so the caller picks the variant.
func FromDID(id did.DID, transferable bool, opts ...Option) (*Verifier, error) {
	mc, key, err := multiformat.ReadTag(id.Bytes())
	if err != nil {
		return nil, err
	}
	var alg Algorithm
	switch mc {
	case ed25519verifier.Multicodec:
		alg = Ed25519
	case secp256k1verifier.Multicodec:
		alg = ECDSASecp256k1
	default:
		return nil, NewUnsupportedKeyTypeError(mc)
	}
	code, err := CodeFor(alg, transferable)
	if err != nil {
		return nil, err
	}
	return New(code, key, opts...)
}

// Code returns the derivation code.
func (v *Verifier) Code() matter.Code {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.code
}

// Raw returns a copy of the raw public key bytes.
func (v *Verifier) Raw() []byte {
	return append([]byte(nil), v.raw...)
}

// Size returns the codec size count carried with the key.
func (v *Verifier) Size() uint32 {
	return v.size
}

// Algorithm returns the signature algorithm family of the key.
func (v *Verifier) Algorithm() Algorithm {
	alg, _, _ := Classify(v.Code())
	return alg
}

// Transferable reports whether the key belongs to an identifier that may be
// rotated to a new key.
func (v *Verifier) Transferable() bool {
	_, transferable, _ := Classify(v.Code())
	return transferable
}

// SetCode re-tags the key as the transferable or non-transferable variant of
// the same algorithm. Moving a key to another algorithm family is refused, as
// the raw bytes would be meaningless under the new code.
func (v *Verifier) SetCode(code matter.Code) error {
	to, _, err := Classify(code)
	if err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	from, _, err := Classify(v.code)
	if err != nil {
		return err
	}
	if from != to {
		return NewRetagError(v.code, code)
	}
	v.code = code
	return nil
}

// Verify reports whether sig is a valid signature of msg by this key.
//
// A well formed signature that does not match returns false with a nil error.
// An error means verification could not be attempted: the key or signature
// bytes are malformed for the algorithm (AlgorithmInputError), or the code is
// not a verification key code (UnexpectedCodeError).
func (v *Verifier) Verify(sig, msg []byte) (bool, error) {
	v.mu.RLock()
	code := v.code
	v.mu.RUnlock()

	var (
		alg Algorithm
		ok  bool
		err error
	)
	switch code {
	case matter.Ed25519N, matter.Ed25519:
		alg = Ed25519
		ok, err = ed25519verifier.Verify(v.raw, sig, msg)
	case matter.ECDSA256k1N, matter.ECDSA256k1:
		alg = ECDSASecp256k1
		ok, err = secp256k1verifier.Verify(v.raw, sig, msg)
	default:
		return false, NewUnexpectedCodeError(code)
	}
	if err != nil {
		return false, NewAlgorithmInputError(alg, err)
	}
	return ok, nil
}

// QB64 returns the qb64 text encoding.
func (v *Verifier) QB64() (string, error) {
	b, err := v.QB64B()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// QB64B returns the qb64b encoding.
func (v *Verifier) QB64B() ([]byte, error) {
	return matter.Encode(v.Code(), v.raw)
}

// QB2 returns the qb2 encoding.
func (v *Verifier) QB2() ([]byte, error) {
	return matter.EncodeBinary(v.Code(), v.raw)
}

// DID returns the did:key of the key. The transferable distinction is not
// carried by a did:key.
func (v *Verifier) DID() (did.DID, error) {
	switch v.Algorithm() {
	case Ed25519:
		return did.Decode(multiformat.TagWith(ed25519verifier.Multicodec, v.raw))
	case ECDSASecp256k1:
		return did.Decode(multiformat.TagWith(secp256k1verifier.Multicodec, v.raw))
	default:
		return did.DID{}, NewUnexpectedCodeError(v.Code())
	}
}

func (v *Verifier) String() string {
	qb64, err := v.QB64()
	if err != nil {
		return "<invalid verifier>"
	}
	return qb64
}
