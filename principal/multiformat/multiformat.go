package multiformat

import (
	"bytes"
	"fmt"

	"github.com/multiformats/go-multicodec"
	"github.com/multiformats/go-varint"
)

func TagWith(code multicodec.Code, bytes []byte) []byte {
	offset := varint.UvarintSize(uint64(code))
	tagged := make([]byte, len(bytes)+offset)
	varint.PutUvarint(tagged, uint64(code))
	copy(tagged[offset:], bytes)
	return tagged
}

func UntagWith(code multicodec.Code, source []byte, offset int) ([]byte, error) {
	b := source
	if offset != 0 {
		b = source[offset:]
	}

	tag, err := varint.ReadUvarint(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}

	if tag != uint64(code) {
		return nil, fmt.Errorf("expected multiformat with 0x%x tag instead got 0x%x", uint64(code), tag)
	}

	size := varint.UvarintSize(uint64(code))
	return b[size:], nil
}

// ReadTag returns the multicodec tag at the start of b and the untagged
// remainder.
func ReadTag(b []byte) (multicodec.Code, []byte, error) {
	tag, n, err := varint.FromUvarint(b)
	if err != nil {
		return 0, nil, fmt.Errorf("reading multiformat tag: %w", err)
	}
	return multicodec.Code(tag), b[n:], nil
}
