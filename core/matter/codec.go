package matter

// Codec packages raw bytes with a derivation code and unpacks the three wire
// forms back into a Matter.
type Codec interface {
	New(code Code, raw []byte) (*Matter, error)
	// Decode decodes qb64b. Callers with a qb64 string convert it to bytes.
	Decode(qb64b []byte) (*Matter, error)
	DecodeBinary(qb2 []byte) (*Matter, error)
}

type codec struct{}

func (codec) New(code Code, raw []byte) (*Matter, error) {
	return New(code, raw)
}

func (codec) Decode(qb64b []byte) (*Matter, error) {
	return Decode(qb64b)
}

func (codec) DecodeBinary(qb2 []byte) (*Matter, error) {
	return DecodeBinary(qb2)
}

// Default is the Codec backed by the package code table.
var Default Codec = codec{}

// Unchecked builds a Matter without consulting the code table. It exists for
// Codec implementations that carry codes of their own.
func Unchecked(code Code, raw []byte, size uint32) *Matter {
	return &Matter{code: code, raw: raw, size: size}
}
