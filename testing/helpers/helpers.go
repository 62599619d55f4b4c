package helpers

import (
	crand "crypto/rand"
)

// Must takes return values from a function and returns the non-error one. If
// the error value is non-nil then it panics.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

func RandomBytes(size int) []byte {
	bytes := make([]byte, size)
	_, _ = crand.Read(bytes)
	return bytes
}

// FlipBit returns a copy of b with bit i flipped.
func FlipBit(b []byte, i int) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	c[i/8] ^= 1 << (i % 8)
	return c
}
