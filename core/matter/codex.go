package matter

import "fmt"

// Code is a derivation code: the hard part of a primitive's text encoding that
// names its type and fixes its size.
type Code string

const (
	Ed25519Seed     Code = "A"
	Ed25519N        Code = "B"
	X25519          Code = "C"
	Ed25519         Code = "D"
	Blake3_256      Code = "E"
	Blake2b_256     Code = "F"
	Blake2s_256     Code = "G"
	SHA3_256        Code = "H"
	SHA2_256        Code = "I"
	ECDSA256k1Seed  Code = "J"
	Short           Code = "M"
	Big             Code = "N"
	X25519Private   Code = "O"
	ECDSA256r1Seed  Code = "Q"
	Salt128         Code = "0A"
	Ed25519Sig      Code = "0B"
	ECDSA256k1Sig   Code = "0C"
	Blake3_512      Code = "0D"
	Blake2b_512     Code = "0E"
	SHA3_512        Code = "0F"
	SHA2_512        Code = "0G"
	Long            Code = "0H"
	ECDSA256r1Sig   Code = "0I"
	ECDSA256k1N     Code = "1AAA"
	ECDSA256k1      Code = "1AAB"
	Ed448N          Code = "1AAC"
	Ed448           Code = "1AAD"
	Ed448Sig        Code = "1AAE"
	Tern            Code = "1AAF"
	DateTime        Code = "1AAG"
	ECDSA256r1N     Code = "1AAI"
	ECDSA256r1      Code = "1AAJ"
)

// Sizage describes the layout of a primitive's text encoding.
//
// Hs is the hard size (chars of the code), Ss the soft size (chars of a
// variable size count), Fs the full size in chars and Ls the number of lead
// pad bytes. All codes in this table are fixed size, so Ss and Ls are zero.
type Sizage struct {
	Hs int
	Ss int
	Fs int
	Ls int
}

// Cs returns the total code size in chars.
func (s Sizage) Cs() int {
	return s.Hs + s.Ss
}

// Ps returns the number of pad chars (and pad bytes) implied by the code size.
func (s Sizage) Ps() int {
	return s.Cs() % 4
}

// Rs returns the raw size in bytes.
func (s Sizage) Rs() int {
	return (s.Fs-s.Cs()+s.Ps())*3/4 - s.Ps() - s.Ls
}

type entry struct {
	name string
	size Sizage
}

var codex = map[Code]entry{
	Ed25519Seed:    {"Ed25519_Seed", Sizage{Hs: 1, Fs: 44}},
	Ed25519N:       {"Ed25519N", Sizage{Hs: 1, Fs: 44}},
	X25519:         {"X25519", Sizage{Hs: 1, Fs: 44}},
	Ed25519:        {"Ed25519", Sizage{Hs: 1, Fs: 44}},
	Blake3_256:     {"Blake3_256", Sizage{Hs: 1, Fs: 44}},
	Blake2b_256:    {"Blake2b_256", Sizage{Hs: 1, Fs: 44}},
	Blake2s_256:    {"Blake2s_256", Sizage{Hs: 1, Fs: 44}},
	SHA3_256:       {"SHA3_256", Sizage{Hs: 1, Fs: 44}},
	SHA2_256:       {"SHA2_256", Sizage{Hs: 1, Fs: 44}},
	ECDSA256k1Seed: {"ECDSA_256k1_Seed", Sizage{Hs: 1, Fs: 44}},
	Short:          {"Short", Sizage{Hs: 1, Fs: 4}},
	Big:            {"Big", Sizage{Hs: 1, Fs: 12}},
	X25519Private:  {"X25519_Private", Sizage{Hs: 1, Fs: 44}},
	ECDSA256r1Seed: {"ECDSA_256r1_Seed", Sizage{Hs: 1, Fs: 44}},
	Salt128:        {"Salt_128", Sizage{Hs: 2, Fs: 24}},
	Ed25519Sig:     {"Ed25519_Sig", Sizage{Hs: 2, Fs: 88}},
	ECDSA256k1Sig:  {"ECDSA_256k1_Sig", Sizage{Hs: 2, Fs: 88}},
	Blake3_512:     {"Blake3_512", Sizage{Hs: 2, Fs: 88}},
	Blake2b_512:    {"Blake2b_512", Sizage{Hs: 2, Fs: 88}},
	SHA3_512:       {"SHA3_512", Sizage{Hs: 2, Fs: 88}},
	SHA2_512:       {"SHA2_512", Sizage{Hs: 2, Fs: 88}},
	Long:           {"Long", Sizage{Hs: 2, Fs: 8}},
	ECDSA256r1Sig:  {"ECDSA_256r1_Sig", Sizage{Hs: 2, Fs: 88}},
	ECDSA256k1N:    {"ECDSA_256k1N", Sizage{Hs: 4, Fs: 48}},
	ECDSA256k1:     {"ECDSA_256k1", Sizage{Hs: 4, Fs: 48}},
	Ed448N:         {"Ed448N", Sizage{Hs: 4, Fs: 80}},
	Ed448:          {"Ed448", Sizage{Hs: 4, Fs: 80}},
	Ed448Sig:       {"Ed448_Sig", Sizage{Hs: 4, Fs: 156}},
	Tern:           {"Tern", Sizage{Hs: 4, Fs: 8}},
	DateTime:       {"DateTime", Sizage{Hs: 4, Fs: 36}},
	ECDSA256r1N:    {"ECDSA_256r1N", Sizage{Hs: 4, Fs: 48}},
	ECDSA256r1:     {"ECDSA_256r1", Sizage{Hs: 4, Fs: 48}},
}

// hardSize returns the number of chars in a hard code given its first char.
func hardSize(c byte) (int, bool) {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z':
		return 1, true
	case c == '0':
		return 2, true
	case c >= '1' && c <= '3':
		return 4, true
	default:
		return 0, false
	}
}

// Lookup returns the size table entry for code.
func Lookup(code Code) (Sizage, error) {
	e, ok := codex[code]
	if !ok {
		return Sizage{}, NewUnknownCodeError(code)
	}
	return e.size, nil
}

// RawSize returns the number of raw bytes a primitive with code carries.
func RawSize(code Code) (int, error) {
	s, err := Lookup(code)
	if err != nil {
		return 0, err
	}
	return s.Rs(), nil
}

// Name returns the descriptive name of code, or "" if it is unknown.
func Name(code Code) string {
	return codex[code].name
}

func (c Code) String() string {
	if n := Name(c); n != "" {
		return fmt.Sprintf("%s (%s)", string(c), n)
	}
	return string(c)
}
