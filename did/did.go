// Package did implements did:key identifiers: the multibase base58btc
// encoding of a multicodec tagged public key.
package did

import (
	"fmt"
	"strings"

	"github.com/multiformats/go-multibase"
	"github.com/storacha/go-verfer/principal/multiformat"
)

const KeyPrefix = "did:key:"

// DID is a did:key identifier. The zero value is undefined.
type DID struct {
	bytes string
}

// Defined reports whether d holds a key.
func (d DID) Defined() bool {
	return d.bytes != ""
}

// Bytes returns the multicodec tagged public key.
func (d DID) Bytes() []byte {
	return []byte(d.bytes)
}

func (d DID) String() string {
	if !d.Defined() {
		return ""
	}
	str, _ := multibase.Encode(multibase.Base58BTC, []byte(d.bytes))
	return KeyPrefix + str
}

func (d DID) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *DID) UnmarshalText(b []byte) error {
	id, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = id
	return nil
}

// Decode creates a DID from multicodec tagged public key bytes.
func Decode(b []byte) (DID, error) {
	if _, _, err := multiformat.ReadTag(b); err != nil {
		return DID{}, err
	}
	return DID{string(b)}, nil
}

// Parse parses a did:key string.
func Parse(str string) (DID, error) {
	if !strings.HasPrefix(str, KeyPrefix) {
		return DID{}, fmt.Errorf("must start with %q", KeyPrefix)
	}
	enc, b, err := multibase.Decode(str[len(KeyPrefix):])
	if err != nil {
		return DID{}, fmt.Errorf("decoding multibase: %w", err)
	}
	if enc != multibase.Base58BTC {
		return DID{}, fmt.Errorf("unexpected multibase encoding: %s", multibase.EncodingToStr[enc])
	}
	return Decode(b)
}
