// Package fixtures provides deterministic key pairs and signing helpers for
// tests. Signing lives here and nowhere else in the module.
package fixtures

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha256"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

var AliceEd25519 = ed25519.NewKeyFromSeed(bytes.Repeat([]byte{0x01}, ed25519.SeedSize))
var BobEd25519 = ed25519.NewKeyFromSeed(bytes.Repeat([]byte{0x02}, ed25519.SeedSize))

var AliceSecp256k1, _ = btcec.PrivKeyFromBytes(bytes.Repeat([]byte{0x11}, 32))
var BobSecp256k1, _ = btcec.PrivKeyFromBytes(bytes.Repeat([]byte{0x22}, 32))

// Ed25519Public returns the raw public key of priv.
func Ed25519Public(priv ed25519.PrivateKey) []byte {
	return []byte(priv.Public().(ed25519.PublicKey))
}

// Secp256k1Public returns the SEC1 compressed public key of priv.
func Secp256k1Public(priv *btcec.PrivateKey) []byte {
	return priv.PubKey().SerializeCompressed()
}

// SignSecp256k1 signs the SHA-256 digest of msg and returns the compact r||s
// form.
func SignSecp256k1(priv *btcec.PrivateKey, msg []byte) []byte {
	digest := sha256.Sum256(msg)
	// the first byte of a compact signature is the recovery header
	sig := ecdsa.SignCompact(priv, digest[:], true)
	return sig[1:]
}
