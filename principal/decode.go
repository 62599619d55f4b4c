package principal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/storacha/go-verfer/did"
	"github.com/storacha/go-verfer/principal/verifier"
)

// Parser parses a string into a verifier.
type Parser interface {
	Parse(str string) (Verifier, error)
}

// ComposedParser implements a parser that tries multiple principal parsers
type ComposedParser struct {
	parsers []Parser
}

// NewComposedParser creates a new composed parser with the given parsers
func NewComposedParser(parsers ...Parser) *ComposedParser {
	return &ComposedParser{parsers: parsers}
}

// Parse attempts to parse the string using each parser in sequence
func (cp *ComposedParser) Parse(str string) (Verifier, error) {
	var errs []error
	for _, parser := range cp.parsers {
		if v, err := parser.Parse(str); err == nil {
			return v, nil
		} else {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("unsupported verifier %s: %w", str, errors.Join(errs...))
	}
	return nil, fmt.Errorf("unsupported verifier %s", str)
}

// Or adds another parser to the composed parser
func (cp *ComposedParser) Or(parser Parser) *ComposedParser {
	return &ComposedParser{parsers: append(cp.parsers, parser)}
}

// QB64Parser implements Parser for qb64 encoded verification keys
type QB64Parser struct{}

func (p QB64Parser) Parse(str string) (Verifier, error) {
	if strings.HasPrefix(str, "did:") {
		return nil, fmt.Errorf("expected qb64 but got DID %s", str)
	}
	v, err := verifier.Parse(str)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// DIDKeyParser implements Parser for did:key identifiers. A did:key is bound
// to a single key for its lifetime, so keys are tagged non-transferable unless
// Transferable is set.
type DIDKeyParser struct {
	Transferable bool
}

func (p DIDKeyParser) Parse(str string) (Verifier, error) {
	id, err := did.Parse(str)
	if err != nil {
		return nil, fmt.Errorf("parsing DID: %w", err)
	}
	v, err := verifier.FromDID(id, p.Transferable)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// DefaultParser returns a composed parser with all supported encodings
func DefaultParser() *ComposedParser {
	return NewComposedParser(
		QB64Parser{},
		DIDKeyParser{},
	)
}

// Parse parses a qb64 verification key or a did:key using the default
// composed parser
func Parse(str string) (Verifier, error) {
	return DefaultParser().Parse(str)
}
