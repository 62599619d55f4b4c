package verifier

import (
	"bytes"
	"crypto/ed25519"
	"errors"
	"sync"
	"testing"

	"github.com/multiformats/go-multicodec"
	"github.com/storacha/go-verfer/core/matter"
	"github.com/storacha/go-verfer/did"
	ed25519verifier "github.com/storacha/go-verfer/principal/ed25519/verifier"
	"github.com/storacha/go-verfer/principal/multiformat"
	secp256k1verifier "github.com/storacha/go-verfer/principal/secp256k1/verifier"
	"github.com/storacha/go-verfer/testing/fixtures"
	"github.com/storacha/go-verfer/testing/helpers"
	"github.com/stretchr/testify/require"
	"lukechampine.com/blake3"
)

var raw32 = []byte{
	0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef, 0x00, 0x00, 0x11, 0x11, 0x22, 0x22, 0x33, 0x33,
	0x44, 0x44, 0x55, 0x55, 0x66, 0x66, 0x77, 0x77, 0x88, 0x88, 0x99, 0x99, 0x00, 0x00, 0xaa, 0xaa,
}

// otherCodes returns every code in the table that is not a verification key
// code, with raw bytes of the right size.
func otherCodes(t *testing.T) map[matter.Code][]byte {
	t.Helper()
	allowed := map[matter.Code]bool{}
	for _, c := range Codes() {
		allowed[c] = true
	}
	others := map[matter.Code][]byte{}
	for _, code := range []matter.Code{
		matter.Ed25519Seed, matter.X25519, matter.Blake3_256, matter.Blake2b_256,
		matter.Blake2s_256, matter.SHA3_256, matter.SHA2_256, matter.ECDSA256k1Seed,
		matter.Short, matter.Big, matter.X25519Private, matter.ECDSA256r1Seed,
		matter.Salt128, matter.Ed25519Sig, matter.ECDSA256k1Sig, matter.Blake3_512,
		matter.Blake2b_512, matter.SHA3_512, matter.SHA2_512, matter.Long,
		matter.ECDSA256r1Sig, matter.Ed448N, matter.Ed448, matter.Ed448Sig,
		matter.Tern, matter.DateTime, matter.ECDSA256r1N, matter.ECDSA256r1,
	} {
		require.False(t, allowed[code])
		others[code] = helpers.RandomBytes(helpers.Must(matter.RawSize(code)))
	}
	return others
}

func requireUnexpectedCode(t *testing.T, err error, code matter.Code) {
	t.Helper()
	var uerr UnexpectedCodeError
	require.True(t, errors.As(err, &uerr), "expected UnexpectedCodeError, got %v", err)
	require.Equal(t, code, uerr.Code)
	require.Equal(t, "UnexpectedCode", uerr.Name())
}

func TestValidate(t *testing.T) {
	for _, code := range Codes() {
		require.NoError(t, Validate(code))
	}
	for code := range otherCodes(t) {
		requireUnexpectedCode(t, Validate(code), code)
	}
	requireUnexpectedCode(t, Validate(""), "")
	requireUnexpectedCode(t, Validate("ZZZZ"), "ZZZZ")
}

func TestClassify(t *testing.T) {
	tests := []struct {
		code         matter.Code
		alg          Algorithm
		transferable bool
	}{
		{matter.Ed25519N, Ed25519, false},
		{matter.Ed25519, Ed25519, true},
		{matter.ECDSA256k1N, ECDSASecp256k1, false},
		{matter.ECDSA256k1, ECDSASecp256k1, true},
	}
	for _, tc := range tests {
		alg, transferable, err := Classify(tc.code)
		require.NoError(t, err)
		require.Equal(t, tc.alg, alg)
		require.Equal(t, tc.transferable, transferable)

		code, err := CodeFor(tc.alg, tc.transferable)
		require.NoError(t, err)
		require.Equal(t, tc.code, code)
	}

	_, _, err := Classify(matter.Blake3_256)
	requireUnexpectedCode(t, err, matter.Blake3_256)

	_, err = CodeFor(Algorithm(99), true)
	var aerr UnsupportedAlgorithmError
	require.True(t, errors.As(err, &aerr), "expected UnsupportedAlgorithmError, got %v", err)
	require.Equal(t, Algorithm(99), aerr.Algorithm)
	require.False(t, IsUnexpectedCode(err))
}

func TestNew(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		v, err := New(matter.Ed25519N, raw32)
		require.NoError(t, err)
		require.Equal(t, raw32, v.Raw())
		require.Equal(t, matter.Ed25519N, v.Code())
		require.Equal(t, uint32(0), v.Size())
		require.Equal(t, Ed25519, v.Algorithm())
		require.False(t, v.Transferable())
	})

	t.Run("digest code", func(t *testing.T) {
		_, err := New(matter.Blake3_256, raw32)
		requireUnexpectedCode(t, err, matter.Blake3_256)
	})

	t.Run("zero bytes with digest code", func(t *testing.T) {
		_, err := New(matter.Blake3_256, make([]byte, 32))
		requireUnexpectedCode(t, err, matter.Blake3_256)
	})

	t.Run("wrong raw size", func(t *testing.T) {
		_, err := New(matter.ECDSA256k1, raw32)
		var serr matter.RawSizeError
		require.True(t, errors.As(err, &serr))
		require.False(t, IsUnexpectedCode(err))
	})
}

func TestConstructionRejectsOtherCodes(t *testing.T) {
	for code, raw := range otherCodes(t) {
		t.Run(matter.Name(code), func(t *testing.T) {
			_, err := New(code, raw)
			requireUnexpectedCode(t, err, code)

			m := helpers.Must(matter.New(code, raw))

			_, err = Parse(helpers.Must(m.QB64()))
			requireUnexpectedCode(t, err, code)

			_, err = Decode(helpers.Must(m.QB64B()))
			requireUnexpectedCode(t, err, code)

			_, err = DecodeBinary(helpers.Must(m.QB2()))
			requireUnexpectedCode(t, err, code)
		})
	}
}

func TestDigestOfKey(t *testing.T) {
	// a self-addressing digest has the same raw size as an Ed25519 key but
	// must never be accepted as one
	digest := blake3.Sum256(fixtures.Ed25519Public(fixtures.AliceEd25519))
	m := helpers.Must(matter.New(matter.Blake3_256, digest[:]))

	_, err := Parse(helpers.Must(m.QB64()))
	requireUnexpectedCode(t, err, matter.Blake3_256)
}

func TestRoundTrip(t *testing.T) {
	keys := map[matter.Code][]byte{
		matter.Ed25519N:    fixtures.Ed25519Public(fixtures.AliceEd25519),
		matter.Ed25519:     fixtures.Ed25519Public(fixtures.BobEd25519),
		matter.ECDSA256k1N: fixtures.Secp256k1Public(fixtures.AliceSecp256k1),
		matter.ECDSA256k1:  fixtures.Secp256k1Public(fixtures.BobSecp256k1),
	}
	for code, raw := range keys {
		t.Run(matter.Name(code), func(t *testing.T) {
			v := helpers.Must(New(code, raw))

			qb64 := helpers.Must(v.QB64())
			qb64b := helpers.Must(v.QB64B())
			qb2 := helpers.Must(v.QB2())
			require.Equal(t, qb64, string(qb64b))
			require.Equal(t, qb64, v.String())

			for _, d := range []*Verifier{
				helpers.Must(Parse(qb64)),
				helpers.Must(Decode(qb64b)),
				helpers.Must(DecodeBinary(qb2)),
			} {
				require.Equal(t, code, d.Code())
				require.Equal(t, raw, d.Raw())
				require.Equal(t, v.Size(), d.Size())
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	_, err := Parse("")
	var derr matter.DecodeError
	require.True(t, errors.As(err, &derr))

	_, err = DecodeBinary([]byte{0x0c})
	require.True(t, errors.As(err, &derr))
}

func TestVerifyEd25519(t *testing.T) {
	msg := []byte("e1be4d7a8ab5560aa4199eea339849ba8e293d55ca0a81006726d184519e647f")
	badMsg := helpers.FlipBit(msg, 7)

	sig := ed25519.Sign(fixtures.AliceEd25519, msg)
	badSig := bytes.Clone(sig)
	badSig[0] ^= 0xff

	v := helpers.Must(New(matter.Ed25519, fixtures.Ed25519Public(fixtures.AliceEd25519)))

	check := func(t *testing.T) {
		ok, err := v.Verify(sig, msg)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = v.Verify(badSig, msg)
		require.NoError(t, err)
		require.False(t, ok)

		ok, err = v.Verify(sig, badMsg)
		require.NoError(t, err)
		require.False(t, ok)

		for i := 0; i < len(sig)*8; i += 37 {
			ok, err = v.Verify(helpers.FlipBit(sig, i), msg)
			require.NoError(t, err)
			require.False(t, ok)
		}

		_, err = v.Verify(nil, msg)
		require.True(t, IsAlgorithmInput(err))
		require.True(t, errors.Is(err, ed25519verifier.ErrInvalidSignature))

		_, err = v.Verify(sig[:63], msg)
		require.True(t, IsAlgorithmInput(err))
	}

	t.Run("transferable", check)

	t.Run("non-transferable", func(t *testing.T) {
		require.NoError(t, v.SetCode(matter.Ed25519N))
		require.False(t, v.Transferable())
		check(t)
	})

	t.Run("zero signature", func(t *testing.T) {
		v := helpers.Must(New(matter.Ed25519, fixtures.Ed25519Public(fixtures.BobEd25519)))
		ok, err := v.Verify(make([]byte, 64), []byte("abc"))
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("invalid point", func(t *testing.T) {
		bad := make([]byte, 32)
		bad[0] = 2
		v := helpers.Must(New(matter.Ed25519N, bad))
		_, err := v.Verify(sig, msg)
		require.True(t, IsAlgorithmInput(err))
		require.True(t, errors.Is(err, ed25519verifier.ErrInvalidPublicKey))

		var aerr AlgorithmInputError
		require.True(t, errors.As(err, &aerr))
		require.Equal(t, Ed25519, aerr.Algorithm)
		require.Equal(t, "AlgorithmInput", aerr.Name())
	})
}

func TestVerifySecp256k1(t *testing.T) {
	msg := []byte("e1be4d7a8ab5560aa4199eea339849ba8e293d55ca0a81006726d184519e647f")
	badMsg := []byte{0xba, 0xdd}

	sig := fixtures.SignSecp256k1(fixtures.AliceSecp256k1, msg)
	badSig := bytes.Clone(sig)
	badSig[31] ^= 0x01

	v := helpers.Must(New(matter.ECDSA256k1, fixtures.Secp256k1Public(fixtures.AliceSecp256k1)))

	check := func(t *testing.T) {
		ok, err := v.Verify(sig, msg)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = v.Verify(badSig, msg)
		require.NoError(t, err)
		require.False(t, ok)

		ok, err = v.Verify(sig, badMsg)
		require.NoError(t, err)
		require.False(t, ok)

		_, err = v.Verify(nil, msg)
		require.True(t, IsAlgorithmInput(err))
		require.True(t, errors.Is(err, secp256k1verifier.ErrInvalidSignature))

		_, err = v.Verify(sig[:40], msg)
		require.True(t, IsAlgorithmInput(err))
	}

	t.Run("transferable", check)

	t.Run("non-transferable", func(t *testing.T) {
		require.NoError(t, v.SetCode(matter.ECDSA256k1N))
		require.False(t, v.Transferable())
		check(t)
	})

	t.Run("invalid point", func(t *testing.T) {
		bad := fixtures.Secp256k1Public(fixtures.AliceSecp256k1)
		bad[0] = 0x07
		v := helpers.Must(New(matter.ECDSA256k1N, bad))
		_, err := v.Verify(sig, msg)
		require.True(t, errors.Is(err, secp256k1verifier.ErrInvalidPublicKey))

		var aerr AlgorithmInputError
		require.True(t, errors.As(err, &aerr))
		require.Equal(t, ECDSASecp256k1, aerr.Algorithm)
	})
}

func TestSetCode(t *testing.T) {
	t.Run("same family", func(t *testing.T) {
		v := helpers.Must(New(matter.Ed25519N, raw32))
		require.NoError(t, v.SetCode(matter.Ed25519))
		require.Equal(t, matter.Ed25519, v.Code())
		require.True(t, v.Transferable())
		require.Equal(t, "D", helpers.Must(v.QB64())[:1])
	})

	t.Run("other family", func(t *testing.T) {
		v := helpers.Must(New(matter.Ed25519N, raw32))
		err := v.SetCode(matter.ECDSA256k1)
		var rerr RetagError
		require.True(t, errors.As(err, &rerr))
		require.Equal(t, matter.Ed25519N, rerr.From)
		require.Equal(t, matter.ECDSA256k1, rerr.To)
		require.Equal(t, matter.Ed25519N, v.Code())
	})

	t.Run("not a key code", func(t *testing.T) {
		v := helpers.Must(New(matter.Ed25519N, raw32))
		requireUnexpectedCode(t, v.SetCode(matter.Blake3_256), matter.Blake3_256)
		require.Equal(t, matter.Ed25519N, v.Code())
	})
}

func TestVerifyUnexpectedCode(t *testing.T) {
	v := &Verifier{code: matter.Blake3_256}
	_, err := v.Verify(nil, nil)
	requireUnexpectedCode(t, err, matter.Blake3_256)

	_, err = v.DID()
	requireUnexpectedCode(t, err, matter.Blake3_256)
}

func TestDID(t *testing.T) {
	t.Run("Ed25519", func(t *testing.T) {
		id, err := did.Parse("did:key:z6Mkod5Jr3yd5SC7UDueqK4dAAw5xYJYjksy722tA9Boxc4z")
		require.NoError(t, err)

		v, err := FromDID(id, true)
		require.NoError(t, err)
		require.Equal(t, matter.Ed25519, v.Code())
		require.Equal(t, id.String(), helpers.Must(v.DID()).String())

		v, err = FromDID(id, false)
		require.NoError(t, err)
		require.Equal(t, matter.Ed25519N, v.Code())
	})

	t.Run("secp256k1", func(t *testing.T) {
		v := helpers.Must(New(matter.ECDSA256k1N, fixtures.Secp256k1Public(fixtures.AliceSecp256k1)))
		id := helpers.Must(v.DID())
		require.Regexp(t, "^did:key:zQ3s", id.String())

		rt, err := FromDID(id, false)
		require.NoError(t, err)
		require.Equal(t, v.Code(), rt.Code())
		require.Equal(t, v.Raw(), rt.Raw())
	})

	t.Run("unsupported key type", func(t *testing.T) {
		id := helpers.Must(did.Decode(multiformat.TagWith(0x1200, make([]byte, 33))))
		_, err := FromDID(id, true)
		var kerr UnsupportedKeyTypeError
		require.True(t, errors.As(err, &kerr), "expected UnsupportedKeyTypeError, got %v", err)
		require.Equal(t, multicodec.Code(0x1200), kerr.Multicodec)
		require.False(t, IsUnexpectedCode(err))
	})
}

type fakeCodec struct {
	code matter.Code
}

func (f fakeCodec) New(_ matter.Code, raw []byte) (*matter.Matter, error) {
	return matter.Unchecked(f.code, raw, 7), nil
}

func (f fakeCodec) Decode(qb64b []byte) (*matter.Matter, error) {
	return matter.Unchecked(f.code, qb64b, 7), nil
}

func (f fakeCodec) DecodeBinary(qb2 []byte) (*matter.Matter, error) {
	return matter.Unchecked(f.code, qb2, 7), nil
}

type nilCodec struct{}

func (nilCodec) New(matter.Code, []byte) (*matter.Matter, error) { return nil, nil }
func (nilCodec) Decode([]byte) (*matter.Matter, error) { return nil, nil }
func (nilCodec) DecodeBinary([]byte) (*matter.Matter, error) { return nil, nil }

func TestWithCodec(t *testing.T) {
	t.Run("codec result is validated", func(t *testing.T) {
		codec := WithCodec(fakeCodec{code: "Z"})

		_, err := New(matter.Ed25519, raw32, codec)
		requireUnexpectedCode(t, err, "Z")

		_, err = Parse("anything", codec)
		requireUnexpectedCode(t, err, "Z")

		_, err = Decode([]byte("anything"), codec)
		requireUnexpectedCode(t, err, "Z")

		_, err = DecodeBinary([]byte("anything"), codec)
		requireUnexpectedCode(t, err, "Z")
	})

	t.Run("codec result is used", func(t *testing.T) {
		v, err := DecodeBinary(raw32, WithCodec(fakeCodec{code: matter.Ed25519N}))
		require.NoError(t, err)
		require.Equal(t, matter.Ed25519N, v.Code())
		require.Equal(t, raw32, v.Raw())
		require.Equal(t, uint32(7), v.Size())
	})

	t.Run("codec returns no matter", func(t *testing.T) {
		codec := WithCodec(nilCodec{})

		_, err := New(matter.Ed25519, raw32, codec)
		require.ErrorIs(t, err, ErrNoMatter)

		_, err = Parse("anything", codec)
		require.ErrorIs(t, err, ErrNoMatter)

		_, err = DecodeBinary([]byte("anything"), codec)
		require.ErrorIs(t, err, ErrNoMatter)
	})

	t.Run("nil codec", func(t *testing.T) {
		_, err := New(matter.Ed25519, raw32, WithCodec(nil))
		require.Error(t, err)
	})
}

func TestConcurrentVerify(t *testing.T) {
	msg := []byte("hello")
	sig := ed25519.Sign(fixtures.AliceEd25519, msg)
	v := helpers.Must(New(matter.Ed25519, fixtures.Ed25519Public(fixtures.AliceEd25519)))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				ok, err := v.Verify(sig, msg)
				require.NoError(t, err)
				require.True(t, ok)
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 50; j++ {
			code := matter.Ed25519
			if j%2 == 0 {
				code = matter.Ed25519N
			}
			require.NoError(t, v.SetCode(code))
		}
	}()
	wg.Wait()
}
