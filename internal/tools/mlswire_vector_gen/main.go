package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"xdao.co/mlsroster/cidutil"
	"xdao.co/mlsroster/credential"
	"xdao.co/mlsroster/keys"
	"xdao.co/mlsroster/roster"
)

// RFC 8032 section 7.1 TEST 1 and TEST 2 secret keys.
const (
	aliceSeedHex = "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60"
	bobSeedHex   = "4ccd089b28ff96da9db6c346ec114e0f5b8a319f35aba624da8cf6ed4fb8a6fb"
)

type vector struct {
	dir     string // credential or roster
	name    string
	enc     []byte
	withCID bool
}

func main() {
	outDir := flag.String("out", "", "output directory (testdata/conformance)")
	flag.Parse()
	if *outDir == "" {
		fmt.Fprintln(os.Stderr, "usage: mlswire_vector_gen -out <dir>")
		os.Exit(2)
	}

	vectors, err := buildVectors()
	if err != nil {
		fatalf("build vectors: %v", err)
	}
	for _, v := range vectors {
		if err := writeVector(*outDir, v); err != nil {
			fatalf("%v", err)
		}
	}
}

func buildVectors() ([]vector, error) {
	alice, err := basic("alice", aliceSeedHex)
	if err != nil {
		return nil, err
	}
	bob, err := basic("bob", bobSeedHex)
	if err != nil {
		return nil, err
	}
	cert := credential.NewX509(credential.X509CertData("example certificate"))

	var out []vector
	add := func(dir, name string, v interface{ MarshalBinary() ([]byte, error) }) error {
		enc, err := v.MarshalBinary()
		if err != nil {
			return fmt.Errorf("%s/%s: %w", dir, name, err)
		}
		out = append(out, vector{dir: dir, name: name, enc: enc, withCID: true})
		return nil
	}
	raw := func(dir, name string, enc []byte) {
		out = append(out, vector{dir: dir, name: name, enc: enc})
	}

	if err := add("credential", "basic_ed25519_alice", alice); err != nil {
		return nil, err
	}
	if err := add("credential", "basic_ed25519_bob", bob); err != nil {
		return nil, err
	}
	if err := add("credential", "x509_opaque", cert); err != nil {
		return nil, err
	}
	aliceEnc := out[0].enc

	raw("credential", "malformed_unknown_type", append([]byte{0x02}, aliceEnc[1:]...))
	raw("credential", "malformed_x509_empty", []byte{0x01, 0x00, 0x00, 0x00})
	// Scheme id follows the tag and the 2+5 byte identity.
	unknownScheme := append([]byte(nil), aliceEnc...)
	unknownScheme[8], unknownScheme[9] = 0x00, 0x01
	raw("credential", "malformed_unknown_scheme", unknownScheme)
	raw("credential", "malformed_truncated_key", aliceEnc[:len(aliceEnc)-1])
	raw("credential", "malformed_trailing_byte", append(append([]byte(nil), aliceEnc...), 0x00))

	if err := add("roster", "empty", roster.New()); err != nil {
		return nil, err
	}
	if err := add("roster", "alice_blank_bob", roster.New(&alice, nil, &bob)); err != nil {
		return nil, err
	}
	if err := add("roster", "noncanonical_trailing_blanks", roster.New(&alice, nil, &bob, nil, nil)); err != nil {
		return nil, err
	}
	raw("roster", "malformed_presence_flag", []byte{0x00, 0x00, 0x00, 0x01, 0x02})

	// One present slot whose credential loses the last key byte; the outer
	// length still matches the body.
	single, err := roster.New(&alice).MarshalBinary()
	if err != nil {
		return nil, err
	}
	truncated := single[:len(single)-1]
	truncated[3]--
	raw("roster", "malformed_truncated_slot", truncated)

	return out, nil
}

func basic(identity, seedHex string) (credential.Credential, error) {
	seed, err := keys.ParseSeedHex(seedHex)
	if err != nil {
		return credential.Credential{}, fmt.Errorf("seed for %s: %w", identity, err)
	}
	signer, err := keys.Ed25519FromSeed(seed)
	if err != nil {
		return credential.Credential{}, fmt.Errorf("signer for %s: %w", identity, err)
	}
	return credential.NewBasic(credential.Identity(identity), signer.Scheme(), signer.PublicKey()), nil
}

func writeVector(outDir string, v vector) error {
	dir := filepath.Join(outDir, v.dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir out: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, v.name+".hex"), []byte(hex.EncodeToString(v.enc)+"\n"), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", v.name, err)
	}
	if !v.withCID {
		return nil
	}
	if err := os.WriteFile(filepath.Join(dir, v.name+".cid"), []byte(cidutil.String(v.enc)+"\n"), 0o644); err != nil {
		return fmt.Errorf("write %s cid: %w", v.name, err)
	}
	return nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
