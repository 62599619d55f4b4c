package matter

import (
	"fmt"

	"github.com/storacha/go-verfer/core/result/failure"
)

// UnknownCodeError is returned when a derivation code is not in the table.
type UnknownCodeError struct {
	failure.NamedWithStackTrace
	Code Code
}

func NewUnknownCodeError(code Code) error {
	return UnknownCodeError{failure.NamedWithCurrentStackTrace("UnknownCode"), code}
}

func (e UnknownCodeError) Error() string {
	return fmt.Sprintf("unknown derivation code: %q", string(e.Code))
}

// RawSizeError is returned when raw bytes do not match the size fixed by the
// derivation code.
type RawSizeError struct {
	failure.NamedWithStackTrace
	Code     Code
	Expected int
	Actual   int
}

func NewRawSizeError(code Code, expected, actual int) error {
	return RawSizeError{failure.NamedWithCurrentStackTrace("RawSize"), code, expected, actual}
}

func (e RawSizeError) Error() string {
	return fmt.Sprintf("invalid raw size for code %q: %d wanted: %d", string(e.Code), e.Actual, e.Expected)
}

// DecodeError is returned when a qb64, qb64b or qb2 encoding is malformed.
type DecodeError struct {
	failure.NamedWithStackTrace
	Reason string
	cause  error
}

func NewDecodeError(reason string, cause error) error {
	return DecodeError{failure.NamedWithCurrentStackTrace("DecodeError"), reason, cause}
}

func (e DecodeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("decoding primitive: %s: %s", e.Reason, e.cause)
	}
	return fmt.Sprintf("decoding primitive: %s", e.Reason)
}

func (e DecodeError) Unwrap() error {
	return e.cause
}
