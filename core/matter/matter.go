// Package matter encodes and decodes fixed size CESR primitives. A primitive
// is a (code, raw) pair with three interchangeable serializations: qb64 text,
// qb64b (the same text as bytes) and qb2 packed binary.
package matter

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"
)

var b64 = base64.RawURLEncoding

// Matter is a decoded primitive.
type Matter struct {
	code Code
	raw  []byte
	size uint32
}

// New packages raw bytes with code. The length of raw must equal the raw size
// fixed by code.
func New(code Code, raw []byte) (*Matter, error) {
	s, err := Lookup(code)
	if err != nil {
		return nil, err
	}
	if len(raw) != s.Rs() {
		return nil, NewRawSizeError(code, s.Rs(), len(raw))
	}
	return &Matter{code: code, raw: bytes.Clone(raw)}, nil
}

// Parse decodes a qb64 string.
func Parse(qb64 string) (*Matter, error) {
	return Decode([]byte(qb64))
}

// Decode decodes qb64b bytes.
func Decode(qb64b []byte) (*Matter, error) {
	if len(qb64b) == 0 {
		return nil, NewDecodeError("empty input", nil)
	}
	hs, ok := hardSize(qb64b[0])
	if !ok {
		return nil, NewDecodeError(fmt.Sprintf("unsupported code selector %q", qb64b[0]), nil)
	}
	if len(qb64b) < hs {
		return nil, NewDecodeError(fmt.Sprintf("need %d chars for code, got %d", hs, len(qb64b)), nil)
	}
	if i := invalidChar(qb64b[:hs]); i >= 0 {
		return nil, NewDecodeError(fmt.Sprintf("invalid character %q at offset %d", qb64b[i], i), nil)
	}
	code := Code(qb64b[:hs])
	s, err := Lookup(code)
	if err != nil {
		return nil, err
	}
	if len(qb64b) != s.Fs {
		return nil, NewDecodeError(fmt.Sprintf("invalid length: %d wanted: %d", len(qb64b), s.Fs), nil)
	}

	if i := invalidChar(qb64b); i >= 0 {
		return nil, NewDecodeError(fmt.Sprintf("invalid character %q at offset %d", qb64b[i], i), nil)
	}

	ps := s.Ps()
	base := make([]byte, 0, s.Fs-s.Cs()+ps)
	base = append(base, strings.Repeat("A", ps)...)
	base = append(base, qb64b[s.Cs():]...)
	paw := make([]byte, b64.DecodedLen(len(base)))
	n, err := b64.Decode(paw, base)
	if err != nil {
		return nil, NewDecodeError("invalid base64url", err)
	}
	paw = paw[:n]
	for _, b := range paw[:ps] {
		if b != 0 {
			return nil, NewDecodeError("non-zero pad bits", nil)
		}
	}
	raw := paw[ps:]
	if len(raw) != s.Rs() {
		return nil, NewRawSizeError(code, s.Rs(), len(raw))
	}
	return &Matter{code: code, raw: raw}, nil
}

// invalidChar returns the offset of the first byte outside the base64url
// alphabet, or -1.
func invalidChar(b []byte) int {
	for i, c := range b {
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return i
		}
	}
	return -1
}

// DecodeBinary decodes qb2 bytes.
func DecodeBinary(qb2 []byte) (*Matter, error) {
	if len(qb2) == 0 {
		return nil, NewDecodeError("empty input", nil)
	}
	// the first sextet is the code selector
	sel := b64.EncodeToString(qb2[:1])[0]
	hs, ok := hardSize(sel)
	if !ok {
		return nil, NewDecodeError(fmt.Sprintf("unsupported code selector %q", sel), nil)
	}
	bhs := (hs*3 + 3) / 4
	if len(qb2) < bhs {
		return nil, NewDecodeError(fmt.Sprintf("need %d bytes for code, got %d", bhs, len(qb2)), nil)
	}
	code := Code(b64.EncodeToString(qb2[:bhs])[:hs])
	s, err := Lookup(code)
	if err != nil {
		return nil, err
	}
	bfs := s.Fs * 3 / 4
	if len(qb2) != bfs {
		return nil, NewDecodeError(fmt.Sprintf("invalid length: %d wanted: %d", len(qb2), bfs), nil)
	}
	return Decode([]byte(b64.EncodeToString(qb2)))
}

// Code returns the derivation code.
func (m *Matter) Code() Code {
	return m.code
}

// Raw returns a copy of the raw bytes.
func (m *Matter) Raw() []byte {
	return bytes.Clone(m.raw)
}

// Size returns the soft size count. Fixed size codes always have size zero.
func (m *Matter) Size() uint32 {
	return m.size
}

// QB64 returns the text encoding.
func (m *Matter) QB64() (string, error) {
	b, err := m.QB64B()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// QB64B returns the text encoding as bytes.
func (m *Matter) QB64B() ([]byte, error) {
	return Encode(m.code, m.raw)
}

// QB2 returns the packed binary encoding.
func (m *Matter) QB2() ([]byte, error) {
	return EncodeBinary(m.code, m.raw)
}

// Encode returns the qb64b encoding of (code, raw).
func Encode(code Code, raw []byte) ([]byte, error) {
	s, err := Lookup(code)
	if err != nil {
		return nil, err
	}
	if len(raw) != s.Rs() {
		return nil, NewRawSizeError(code, s.Rs(), len(raw))
	}
	ps := s.Ps()
	padded := make([]byte, ps+len(raw))
	copy(padded[ps:], raw)

	out := make([]byte, 0, s.Fs)
	out = append(out, string(code)...)
	out = append(out, b64.EncodeToString(padded)[ps:]...)
	if len(out) != s.Fs {
		return nil, fmt.Errorf("encoded size %d does not match full size %d for code %q", len(out), s.Fs, string(code))
	}
	return out, nil
}

// EncodeBinary returns the qb2 encoding of (code, raw).
func EncodeBinary(code Code, raw []byte) ([]byte, error) {
	qb64b, err := Encode(code, raw)
	if err != nil {
		return nil, err
	}
	qb2 := make([]byte, b64.DecodedLen(len(qb64b)))
	n, err := b64.Decode(qb2, qb64b)
	if err != nil {
		return nil, fmt.Errorf("packing qb64 to qb2: %w", err)
	}
	return qb2[:n], nil
}
