package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func vectorPath(kind, name string) string {
	return filepath.Join("..", "..", "..", "testdata", "conformance", kind, name)
}

func readCID(t *testing.T, kind, name string) string {
	t.Helper()
	b, err := os.ReadFile(vectorPath(kind, name+".cid"))
	if err != nil {
		t.Fatalf("read cid: %v", err)
	}
	return strings.TrimSpace(string(b))
}

func TestRun_CredentialPrintsDescriptionAndCID(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"credential", vectorPath("credential", "basic_ed25519_alice.hex")}, &out, &errOut)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut.String())
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected description and cid lines, got %q", out.String())
	}
	if !strings.HasPrefix(lines[0], "basic(identity=alice, scheme=ed25519") {
		t.Fatalf("unexpected description: %s", lines[0])
	}
	if want := readCID(t, "credential", "basic_ed25519_alice"); lines[1] != want {
		t.Fatalf("cid: got %s want %s", lines[1], want)
	}
}

func TestRun_RosterPrintsSlotsAndCID(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"roster", vectorPath("roster", "alice_blank_bob.hex")}, &out, &errOut)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut.String())
	}
	got := out.String()
	for _, want := range []string{
		"roster(3 slots, 2 occupied)",
		"[0] basic(identity=alice",
		"[1] blank",
		"[2] basic(identity=bob",
		readCID(t, "roster", "alice_blank_bob"),
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in output:\n%s", want, got)
		}
	}
}

func TestRun_StrictRejectsNoncanonicalRoster(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"roster", vectorPath("roster", "noncanonical_trailing_blanks.hex")}, &out, &errOut)
	if code != 1 || !strings.Contains(errOut.String(), "ROSTER-ENC-101") {
		t.Fatalf("exit %d stderr %q", code, errOut.String())
	}
}

func TestRun_Usage(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run(nil, &out, &errOut); code != 2 {
		t.Fatalf("no args: exit %d", code)
	}
	if code := run([]string{"group", "x.hex"}, &out, &errOut); code != 2 {
		t.Fatalf("unknown kind: exit %d", code)
	}
	if code := run([]string{"roster", filepath.Join(t.TempDir(), "missing.hex")}, &out, &errOut); code != 1 {
		t.Fatalf("missing file: exit %d", code)
	}
}
