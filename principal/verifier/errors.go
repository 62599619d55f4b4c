package verifier

import (
	"errors"
	"fmt"

	"github.com/multiformats/go-multicodec"
	"github.com/storacha/go-verfer/core/matter"
	"github.com/storacha/go-verfer/core/result/failure"
)

// UnexpectedCodeError is returned when a derivation code is not one a
// Verifier can verify with. Retrying with the same input cannot succeed.
type UnexpectedCodeError struct {
	failure.NamedWithStackTrace
	Code matter.Code
}

func NewUnexpectedCodeError(code matter.Code) error {
	return UnexpectedCodeError{failure.NamedWithCurrentStackTrace("UnexpectedCode"), code}
}

func (e UnexpectedCodeError) Error() string {
	return fmt.Sprintf("unexpected verification key code: code = %q", string(e.Code))
}

// UnsupportedKeyTypeError is returned when a did:key carries a multicodec
// tag with no verification key code.
type UnsupportedKeyTypeError struct {
	failure.NamedWithStackTrace
	Multicodec multicodec.Code
}

func NewUnsupportedKeyTypeError(mc multicodec.Code) error {
	return UnsupportedKeyTypeError{failure.NamedWithCurrentStackTrace("UnsupportedKeyType"), mc}
}

func (e UnsupportedKeyTypeError) Error() string {
	return fmt.Sprintf("unsupported key type: multicodec %s (0x%x)", e.Multicodec, uint64(e.Multicodec))
}

// UnsupportedAlgorithmError is returned when no code exists for an algorithm
// and variant.
type UnsupportedAlgorithmError struct {
	failure.NamedWithStackTrace
	Algorithm    Algorithm
	Transferable bool
}

func NewUnsupportedAlgorithmError(alg Algorithm, transferable bool) error {
	return UnsupportedAlgorithmError{failure.NamedWithCurrentStackTrace("UnsupportedAlgorithm"), alg, transferable}
}

func (e UnsupportedAlgorithmError) Error() string {
	return fmt.Sprintf("unsupported algorithm: %s (transferable = %t)", e.Algorithm, e.Transferable)
}

// AlgorithmInputError is returned by Verify when the key or signature bytes
// are not a valid encoding for the algorithm. It means verification could not
// be attempted, not that the signature is invalid.
type AlgorithmInputError struct {
	failure.NamedWithStackTrace
	Algorithm Algorithm
	cause     error
}

func NewAlgorithmInputError(alg Algorithm, cause error) error {
	return AlgorithmInputError{failure.NamedWithCurrentStackTrace("AlgorithmInput"), alg, cause}
}

func (e AlgorithmInputError) Error() string {
	return fmt.Sprintf("%s verification input: %s", e.Algorithm, e.cause)
}

func (e AlgorithmInputError) Unwrap() error {
	return e.cause
}

// RetagError is returned when re-tagging would move a key to another
// algorithm family.
type RetagError struct {
	failure.NamedWithStackTrace
	From matter.Code
	To   matter.Code
}

func NewRetagError(from, to matter.Code) error {
	return RetagError{failure.NamedWithCurrentStackTrace("Retag"), from, to}
}

func (e RetagError) Error() string {
	return fmt.Sprintf("cannot re-tag %s key as %s", from(e.From), from(e.To))
}

func from(code matter.Code) string {
	if alg, _, err := Classify(code); err == nil {
		return fmt.Sprintf("%s (%q)", alg, string(code))
	}
	return fmt.Sprintf("%q", string(code))
}

// IsUnexpectedCode reports whether err is (or wraps) an UnexpectedCodeError.
func IsUnexpectedCode(err error) bool {
	var e UnexpectedCodeError
	return errors.As(err, &e)
}

// IsAlgorithmInput reports whether err is (or wraps) an AlgorithmInputError.
func IsAlgorithmInput(err error) bool {
	var e AlgorithmInputError
	return errors.As(err, &e)
}
