// Package sigscheme is the process-wide registry of signature schemes a member
// credential can declare.
//
// A credential stores a handle to a registered Scheme, never the algorithm
// itself. Schemes register themselves in init(); callers resolve a wire
// identifier with Lookup. New algorithms are added by registering another
// Scheme, without touching the credential types.
package sigscheme

import (
	"errors"
	"fmt"
)

// ID is the 16-bit SignatureScheme code point carried on the wire.
type ID uint16

// MLS SignatureScheme code points for the built-in schemes. Dilithium3 uses the
// private-use range.
const (
	ECDSAP256SHA256 ID = 0x0403
	Ed25519         ID = 0x0807
	Ed448           ID = 0x0808
	Dilithium3      ID = 0xFE03
)

func (id ID) String() string {
	if s, err := Lookup(id); err == nil {
		return s.Name()
	}
	return fmt.Sprintf("0x%04x", uint16(id))
}

// Scheme is a named signing algorithm. Implementations must be immutable and
// safe for concurrent use.
type Scheme interface {
	ID() ID
	Name() string
	// Verify reports whether sig is a valid signature of msg under pub.
	// Malformed keys or signatures yield false.
	Verify(pub, msg, sig []byte) bool
	// ValidatePublicKey returns an error wrapping ErrInvalidPublicKey when pub
	// is not a well-formed public key for the scheme.
	ValidatePublicKey(pub []byte) error
}

var (
	ErrUnknownScheme    = errors.New("sigscheme: unknown signature scheme")
	ErrInvalidPublicKey = errors.New("sigscheme: invalid public key")
	ErrDuplicate        = errors.New("sigscheme: scheme already registered")
)

func invalidKey(name, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidPublicKey, name, fmt.Sprintf(format, args...))
}
