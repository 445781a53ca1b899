package keys

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/cloudflare/circl/sign/dilithium/mode3"
	circled448 "github.com/cloudflare/circl/sign/ed448"

	"xdao.co/mlsroster/sigscheme"
)

// Signer produces signatures that the paired scheme's Verify accepts.
type Signer interface {
	Scheme() sigscheme.Scheme
	// PublicKey returns a copy of the public key in the scheme's wire form.
	PublicKey() []byte
	Sign(msg []byte) ([]byte, error)
}

// Generate creates a fresh keypair for the scheme registered under id.
func Generate(id sigscheme.ID, rand io.Reader) (Signer, error) {
	scheme, err := sigscheme.Lookup(id)
	if err != nil {
		return nil, err
	}
	switch id {
	case sigscheme.Ed25519:
		_, priv, err := ed25519.GenerateKey(rand)
		if err != nil {
			return nil, err
		}
		return &ed25519Signer{scheme: scheme, priv: priv}, nil
	case sigscheme.Ed448:
		_, priv, err := circled448.GenerateKey(rand)
		if err != nil {
			return nil, err
		}
		return &ed448Signer{scheme: scheme, priv: priv}, nil
	case sigscheme.ECDSAP256SHA256:
		priv, err := ecdsa.GenerateKey(elliptic.P256(), rand)
		if err != nil {
			return nil, err
		}
		return &p256Signer{scheme: scheme, priv: priv, rand: rand}, nil
	case sigscheme.Dilithium3:
		pk, sk, err := mode3.GenerateKey(rand)
		if err != nil {
			return nil, err
		}
		return &dilithium3Signer{scheme: scheme, pub: pk, priv: sk}, nil
	default:
		return nil, fmt.Errorf("keys: no key generator for scheme %s", id)
	}
}

// Ed25519FromSeed returns the Ed25519 signer for a 32-byte seed.
func Ed25519FromSeed(seed []byte) (Signer, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("keys: ed25519 seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	scheme, err := sigscheme.Lookup(sigscheme.Ed25519)
	if err != nil {
		return nil, err
	}
	return &ed25519Signer{scheme: scheme, priv: ed25519.NewKeyFromSeed(seed)}, nil
}

type ed25519Signer struct {
	scheme sigscheme.Scheme
	priv   ed25519.PrivateKey
}

func (s *ed25519Signer) Scheme() sigscheme.Scheme { return s.scheme }

func (s *ed25519Signer) PublicKey() []byte {
	return append([]byte(nil), s.priv.Public().(ed25519.PublicKey)...)
}

func (s *ed25519Signer) Sign(msg []byte) ([]byte, error) {
	return ed25519.Sign(s.priv, msg), nil
}

type ed448Signer struct {
	scheme sigscheme.Scheme
	priv   circled448.PrivateKey
}

func (s *ed448Signer) Scheme() sigscheme.Scheme { return s.scheme }

func (s *ed448Signer) PublicKey() []byte {
	return append([]byte(nil), s.priv.Public().(circled448.PublicKey)...)
}

func (s *ed448Signer) Sign(msg []byte) ([]byte, error) {
	return circled448.Sign(s.priv, msg, ""), nil
}

type p256Signer struct {
	scheme sigscheme.Scheme
	priv   *ecdsa.PrivateKey
	rand   io.Reader
}

func (s *p256Signer) Scheme() sigscheme.Scheme { return s.scheme }

func (s *p256Signer) PublicKey() []byte {
	b, err := s.priv.PublicKey.Bytes()
	if err != nil {
		// A key produced by ecdsa.GenerateKey always encodes.
		return nil
	}
	return b
}

func (s *p256Signer) Sign(msg []byte) ([]byte, error) {
	digest := sha256.Sum256(msg)
	return ecdsa.SignASN1(s.rand, s.priv, digest[:])
}

type dilithium3Signer struct {
	scheme sigscheme.Scheme
	pub    *mode3.PublicKey
	priv   *mode3.PrivateKey
}

func (s *dilithium3Signer) Scheme() sigscheme.Scheme { return s.scheme }

func (s *dilithium3Signer) PublicKey() []byte {
	return s.pub.Bytes()
}

func (s *dilithium3Signer) Sign(msg []byte) ([]byte, error) {
	if s.priv == nil {
		return nil, fmt.Errorf("keys: missing dilithium3 private key")
	}
	sig := make([]byte, mode3.SignatureSize)
	mode3.SignTo(s.priv, msg, sig)
	return sig, nil
}
