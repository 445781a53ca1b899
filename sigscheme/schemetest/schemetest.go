// Package schemetest is a conformance suite for sigscheme.Scheme
// implementations and their signers.
package schemetest

import (
	"errors"
	"testing"

	"xdao.co/mlsroster/sigscheme"
)

// Signer is the signing half a conformance run needs.
type Signer interface {
	PublicKey() []byte
	Sign(msg []byte) ([]byte, error)
}

// NewSigner constructs a fresh signer for the scheme under test.
type NewSigner func(t *testing.T) Signer

func RunSchemeConformance(t *testing.T, scheme sigscheme.Scheme, newSigner NewSigner) {
	t.Helper()

	t.Run("Registered", func(t *testing.T) {
		got, err := sigscheme.Lookup(scheme.ID())
		if err != nil {
			t.Fatalf("Lookup(%s): %v", scheme.ID(), err)
		}
		if got != scheme {
			t.Fatalf("Lookup returned a different handle for %s", scheme.Name())
		}
		byName, err := sigscheme.LookupName(scheme.Name())
		if err != nil {
			t.Fatalf("LookupName(%q): %v", scheme.Name(), err)
		}
		if byName != scheme {
			t.Fatalf("LookupName returned a different handle for %s", scheme.Name())
		}
	})

	t.Run("SignVerifyRoundTrip", func(t *testing.T) {
		s := newSigner(t)
		msg := []byte("roster commit")
		sig, err := s.Sign(msg)
		if err != nil {
			t.Fatalf("Sign: %v", err)
		}
		if !scheme.Verify(s.PublicKey(), msg, sig) {
			t.Fatalf("signature did not verify")
		}
	})

	t.Run("RejectTamperedMessage", func(t *testing.T) {
		s := newSigner(t)
		sig, err := s.Sign([]byte("add alice"))
		if err != nil {
			t.Fatalf("Sign: %v", err)
		}
		if scheme.Verify(s.PublicKey(), []byte("add mallory"), sig) {
			t.Fatalf("signature verified over a different message")
		}
	})

	t.Run("RejectTamperedSignature", func(t *testing.T) {
		s := newSigner(t)
		msg := []byte("remove bob")
		sig, err := s.Sign(msg)
		if err != nil {
			t.Fatalf("Sign: %v", err)
		}
		bad := append([]byte(nil), sig...)
		bad[len(bad)/2] ^= 0x01
		if scheme.Verify(s.PublicKey(), msg, bad) {
			t.Fatalf("tampered signature verified")
		}
		if scheme.Verify(s.PublicKey(), msg, nil) {
			t.Fatalf("empty signature verified")
		}
	})

	t.Run("RejectOtherKey", func(t *testing.T) {
		a, b := newSigner(t), newSigner(t)
		msg := []byte("update")
		sig, err := a.Sign(msg)
		if err != nil {
			t.Fatalf("Sign: %v", err)
		}
		if scheme.Verify(b.PublicKey(), msg, sig) {
			t.Fatalf("signature verified under an unrelated key")
		}
	})

	t.Run("ValidatePublicKey", func(t *testing.T) {
		s := newSigner(t)
		if err := scheme.ValidatePublicKey(s.PublicKey()); err != nil {
			t.Fatalf("ValidatePublicKey(generated): %v", err)
		}
		for _, bad := range [][]byte{nil, {0x04}, append(s.PublicKey(), 0x00)} {
			err := scheme.ValidatePublicKey(bad)
			if !errors.Is(err, sigscheme.ErrInvalidPublicKey) {
				t.Fatalf("ValidatePublicKey(%d bytes): got %v want ErrInvalidPublicKey", len(bad), err)
			}
		}
	})

	t.Run("VerifyRejectsMalformedKey", func(t *testing.T) {
		s := newSigner(t)
		msg := []byte("m")
		sig, err := s.Sign(msg)
		if err != nil {
			t.Fatalf("Sign: %v", err)
		}
		if scheme.Verify(nil, msg, sig) {
			t.Fatalf("verified under a nil key")
		}
	})
}
