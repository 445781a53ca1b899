package sigscheme

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/sha256"

	"filippo.io/edwards25519"
	"github.com/cloudflare/circl/sign/dilithium/mode3"
	circled448 "github.com/cloudflare/circl/sign/ed448"
)

func init() {
	MustRegister(ecdsaP256Scheme{})
	MustRegister(ed25519Scheme{})
	MustRegister(ed448Scheme{})
	MustRegister(dilithium3Scheme{})
}

// MustLookup is like Lookup but panics when id is not registered. It is meant
// for the built-in identifiers.
func MustLookup(id ID) Scheme {
	s, err := Lookup(id)
	if err != nil {
		panic(err)
	}
	return s
}

type ed25519Scheme struct{}

func (ed25519Scheme) ID() ID       { return Ed25519 }
func (ed25519Scheme) Name() string { return "ed25519" }

func (s ed25519Scheme) ValidatePublicKey(pub []byte) error {
	if len(pub) != ed25519.PublicKeySize {
		return invalidKey(s.Name(), "want %d bytes, got %d", ed25519.PublicKeySize, len(pub))
	}
	if _, err := new(edwards25519.Point).SetBytes(pub); err != nil {
		return invalidKey(s.Name(), "not a curve point")
	}
	return nil
}

func (ed25519Scheme) Verify(pub, msg, sig []byte) bool {
	if len(pub) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub), msg, sig)
}

// ed448 signatures use an empty context string.
type ed448Scheme struct{}

func (ed448Scheme) ID() ID       { return Ed448 }
func (ed448Scheme) Name() string { return "ed448" }

func (s ed448Scheme) ValidatePublicKey(pub []byte) error {
	if len(pub) != circled448.PublicKeySize {
		return invalidKey(s.Name(), "want %d bytes, got %d", circled448.PublicKeySize, len(pub))
	}
	return nil
}

func (ed448Scheme) Verify(pub, msg, sig []byte) bool {
	if len(pub) != circled448.PublicKeySize || len(sig) != circled448.SignatureSize {
		return false
	}
	return circled448.Verify(circled448.PublicKey(pub), msg, sig, "")
}

// ecdsa_secp256r1_sha256: uncompressed SEC1 point, ASN.1 DER signature over
// SHA-256(msg).
type ecdsaP256Scheme struct{}

func (ecdsaP256Scheme) ID() ID       { return ECDSAP256SHA256 }
func (ecdsaP256Scheme) Name() string { return "ecdsa_secp256r1_sha256" }

func (s ecdsaP256Scheme) ValidatePublicKey(pub []byte) error {
	if _, err := ecdsa.ParseUncompressedPublicKey(elliptic.P256(), pub); err != nil {
		return invalidKey(s.Name(), "%v", err)
	}
	return nil
}

func (ecdsaP256Scheme) Verify(pub, msg, sig []byte) bool {
	pk, err := ecdsa.ParseUncompressedPublicKey(elliptic.P256(), pub)
	if err != nil {
		return false
	}
	digest := sha256.Sum256(msg)
	return ecdsa.VerifyASN1(pk, digest[:], sig)
}

type dilithium3Scheme struct{}

func (dilithium3Scheme) ID() ID       { return Dilithium3 }
func (dilithium3Scheme) Name() string { return "dilithium3" }

func (s dilithium3Scheme) ValidatePublicKey(pub []byte) error {
	if len(pub) != mode3.PublicKeySize {
		return invalidKey(s.Name(), "want %d bytes, got %d", mode3.PublicKeySize, len(pub))
	}
	var pk mode3.PublicKey
	if err := pk.UnmarshalBinary(pub); err != nil {
		return invalidKey(s.Name(), "%v", err)
	}
	return nil
}

func (dilithium3Scheme) Verify(pub, msg, sig []byte) bool {
	if len(sig) != mode3.SignatureSize {
		return false
	}
	var pk mode3.PublicKey
	if err := pk.UnmarshalBinary(pub); err != nil {
		return false
	}
	return mode3.Verify(&pk, msg, sig)
}
