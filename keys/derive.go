package keys

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

const memberSeedSalt = "xdao-mlsroster-member-v1"

// DeriveMemberSeed deterministically derives the Ed25519 seed for a member
// identity from a 32-byte root seed (HKDF-SHA256, identity as info).
//
// Distinct identities under the same root yield unrelated seeds.
func DeriveMemberSeed(rootSeed, identity []byte) ([]byte, error) {
	if len(rootSeed) != ed25519.SeedSize {
		return nil, fmt.Errorf("root seed must be %d bytes", ed25519.SeedSize)
	}
	r := hkdf.New(sha256.New, rootSeed, []byte(memberSeedSalt), identity)
	out := make([]byte, ed25519.SeedSize)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ParseSeedHex decodes a 64-character hex Ed25519 seed.
func ParseSeedHex(seedHex string) ([]byte, error) {
	seedHex = strings.TrimSpace(seedHex)
	if len(seedHex) != 2*ed25519.SeedSize {
		return nil, fmt.Errorf("seed must be %d hex chars", 2*ed25519.SeedSize)
	}
	seed, err := hex.DecodeString(seedHex)
	if err != nil {
		return nil, fmt.Errorf("invalid seed hex: %w", err)
	}
	return seed, nil
}
