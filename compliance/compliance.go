// Package compliance selects how strictly wire decoders treat well-formed but
// non-canonical input.
package compliance

import "fmt"

// Mode selects decode strictness.
//
// Permissive accepts every structurally valid encoding. Strict additionally
// rejects encodings that a conforming writer would never produce, such as a
// roster with trailing blank slots or a public key its scheme rejects.
type Mode int

const (
	Permissive Mode = iota
	Strict
)

func (m Mode) String() string {
	switch m {
	case Permissive:
		return "permissive"
	case Strict:
		return "strict"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses the flag form of a mode ("permissive" or "strict").
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "permissive":
		return Permissive, nil
	case "strict":
		return Strict, nil
	default:
		return Permissive, fmt.Errorf("unknown compliance mode %q (want permissive|strict)", s)
	}
}
