package compliance

import "testing"

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": Permissive, "permissive": Permissive, "strict": Strict} {
		got, err := ParseMode(in)
		if err != nil {
			t.Fatalf("ParseMode(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseMode(%q): got %s want %s", in, got, want)
		}
	}
	if _, err := ParseMode("lenient"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestModeString(t *testing.T) {
	if Strict.String() != "strict" || Permissive.String() != "permissive" {
		t.Fatalf("unexpected names: %s %s", Strict, Permissive)
	}
	if Mode(7).String() != "Mode(7)" {
		t.Fatalf("unexpected fallback: %s", Mode(7))
	}
}
