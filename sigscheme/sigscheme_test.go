package sigscheme_test

import (
	"encoding/hex"
	"errors"
	"testing"

	"xdao.co/mlsroster/sigscheme"
)

func TestBuiltinsRegistered(t *testing.T) {
	want := []sigscheme.ID{
		sigscheme.ECDSAP256SHA256,
		sigscheme.Ed25519,
		sigscheme.Ed448,
		sigscheme.Dilithium3,
	}
	got := sigscheme.IDs()
	if len(got) < len(want) {
		t.Fatalf("expected at least %d schemes, got %v", len(want), got)
	}
	for i := 1; i < len(got); i++ {
		if got[i-1] >= got[i] {
			t.Fatalf("IDs not sorted: %v", got)
		}
	}
	for _, id := range want {
		s, err := sigscheme.Lookup(id)
		if err != nil {
			t.Fatalf("Lookup(%04x): %v", uint16(id), err)
		}
		if s.ID() != id {
			t.Fatalf("scheme id mismatch: got %04x want %04x", uint16(s.ID()), uint16(id))
		}
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := sigscheme.Lookup(sigscheme.ID(0x0001))
	if !errors.Is(err, sigscheme.ErrUnknownScheme) {
		t.Fatalf("expected ErrUnknownScheme, got %v", err)
	}
	if _, err := sigscheme.LookupName("rsa_pkcs1_sha256"); !errors.Is(err, sigscheme.ErrUnknownScheme) {
		t.Fatalf("expected ErrUnknownScheme, got %v", err)
	}
}

func TestIDString(t *testing.T) {
	if got := sigscheme.Ed25519.String(); got != "ed25519" {
		t.Fatalf("got %q", got)
	}
	if got := sigscheme.ID(0x0001).String(); got != "0x0001" {
		t.Fatalf("got %q", got)
	}
}

type stubScheme struct {
	id   sigscheme.ID
	name string
}

func (s stubScheme) ID() sigscheme.ID             { return s.id }
func (s stubScheme) Name() string                 { return s.name }
func (stubScheme) Verify(_, _, _ []byte) bool     { return false }
func (stubScheme) ValidatePublicKey([]byte) error { return nil }

func TestRegister_Duplicates(t *testing.T) {
	if err := sigscheme.Register(stubScheme{id: sigscheme.Ed25519, name: "other"}); !errors.Is(err, sigscheme.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for reused id, got %v", err)
	}
	if err := sigscheme.Register(stubScheme{id: 0xFEFE, name: "ed25519"}); !errors.Is(err, sigscheme.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for reused name, got %v", err)
	}
	if err := sigscheme.Register(stubScheme{id: 0xFEFD}); err == nil {
		t.Fatalf("expected error for unnamed scheme")
	}
	if err := sigscheme.Register(nil); err == nil {
		t.Fatalf("expected error for nil scheme")
	}
}

func TestRegister_NewScheme(t *testing.T) {
	s := stubScheme{id: 0xFEF0, name: "test-stub"}
	if err := sigscheme.Register(s); err != nil {
		t.Fatalf("Register: %v", err)
	}
	got, err := sigscheme.Lookup(0xFEF0)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got != sigscheme.Scheme(s) {
		t.Fatalf("Lookup returned %v", got)
	}
}

// RFC 8032 section 7.1, test 1.
func TestEd25519_KnownAnswer(t *testing.T) {
	pub, _ := hex.DecodeString("d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a")
	sig, _ := hex.DecodeString("e5564300c360ac729086e2cc806e828a84877f1eb8e5d974d873e065224901555fb8821590a33bacc61e39701cf9b46bd25bf5f0595bbe24655141438e7a100b")
	s := sigscheme.MustLookup(sigscheme.Ed25519)
	if err := s.ValidatePublicKey(pub); err != nil {
		t.Fatalf("ValidatePublicKey: %v", err)
	}
	if !s.Verify(pub, nil, sig) {
		t.Fatalf("known-answer signature did not verify")
	}
	if s.Verify(pub, []byte{0x00}, sig) {
		t.Fatalf("signature verified over a different message")
	}
}

func TestEd25519_RejectsOffCurveKey(t *testing.T) {
	// y = 2 has no matching x on the curve.
	pub := make([]byte, 32)
	pub[0] = 0x02
	err := sigscheme.MustLookup(sigscheme.Ed25519).ValidatePublicKey(pub)
	if !errors.Is(err, sigscheme.ErrInvalidPublicKey) {
		t.Fatalf("expected ErrInvalidPublicKey, got %v", err)
	}
}

func TestMustLookup_PanicsOnUnknown(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	sigscheme.MustLookup(sigscheme.ID(0x0002))
}
