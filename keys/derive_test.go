package keys

import (
	"crypto/ed25519"
	"strings"
	"testing"
)

func TestDeriveMemberSeedDeterministic(t *testing.T) {
	root := make([]byte, ed25519.SeedSize)
	for i := range root {
		root[i] = byte(i)
	}

	a, err := DeriveMemberSeed(root, []byte("alice"))
	if err != nil {
		t.Fatalf("DeriveMemberSeed: %v", err)
	}
	b, err := DeriveMemberSeed(root, []byte("alice"))
	if err != nil {
		t.Fatalf("DeriveMemberSeed: %v", err)
	}
	if string(a) != string(b) {
		t.Fatalf("expected deterministic derivation")
	}
	if len(a) != ed25519.SeedSize {
		t.Fatalf("expected %d-byte seed, got %d", ed25519.SeedSize, len(a))
	}

	c, err := DeriveMemberSeed(root, []byte("bob"))
	if err != nil {
		t.Fatalf("DeriveMemberSeed: %v", err)
	}
	if string(a) == string(c) {
		t.Fatalf("expected different identities to derive different seeds")
	}

	// The empty identity is a valid member label.
	if _, err := DeriveMemberSeed(root, nil); err != nil {
		t.Fatalf("DeriveMemberSeed(empty identity): %v", err)
	}
}

func TestDeriveMemberSeed_RejectsBadRoot(t *testing.T) {
	if _, err := DeriveMemberSeed(make([]byte, 16), []byte("alice")); err == nil {
		t.Fatalf("expected error for short root seed")
	}
}

func TestParseSeedHex(t *testing.T) {
	if _, err := ParseSeedHex(strings.Repeat("ab", 32)); err != nil {
		t.Fatalf("ParseSeedHex: %v", err)
	}
	if _, err := ParseSeedHex("abcd"); err == nil {
		t.Fatalf("expected length error")
	}
	if _, err := ParseSeedHex(strings.Repeat("zz", 32)); err == nil {
		t.Fatalf("expected hex error")
	}
}
