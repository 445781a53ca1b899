// Package credential models member credentials for an MLS-style group: the
// identity a member is known by and the key its signatures are checked with.
//
// A Credential is a closed sum over two variants. Basic credentials carry an
// identity, a handle to a registered signature scheme and a public key. X509
// credentials carry certificate bytes that are never parsed; every accessor on
// them fails with KindNotImplemented so callers can treat certificate members
// as unsupported through an ordinary error path.
package credential

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"unicode"
	"unicode/utf8"

	"xdao.co/mlsroster/sigscheme"
)

// Identity is an opaque member label. It is supplied by the caller and is not
// unique by construction.
type Identity []byte

func (id Identity) Equal(other Identity) bool { return bytes.Equal(id, other) }

// String renders printable UTF-8 identities as text and anything else as hex.
func (id Identity) String() string {
	if utf8.Valid(id) {
		printable := true
		for _, r := range string(id) {
			if !unicode.IsPrint(r) {
				printable = false
				break
			}
		}
		if printable {
			return string(id)
		}
	}
	return "0x" + hex.EncodeToString(id)
}

// SigPublicKey is a public key in the wire form of its signature scheme.
type SigPublicKey []byte

func (k SigPublicKey) Equal(other SigPublicKey) bool { return bytes.Equal(k, other) }

func (k SigPublicKey) String() string { return hex.EncodeToString(k) }

// X509CertData is an opaque certificate chain. It is never introspected.
type X509CertData []byte

func (c X509CertData) Equal(other X509CertData) bool { return bytes.Equal(c, other) }

// BasicCredential binds an identity to a public key under a signature scheme.
// The scheme is a shared handle from the sigscheme registry; the credential
// does not own it. Key validity is not checked here.
type BasicCredential struct {
	Identity  Identity
	Scheme    sigscheme.Scheme
	PublicKey SigPublicKey
}

func (b BasicCredential) Equal(other BasicCredential) bool {
	if (b.Scheme == nil) != (other.Scheme == nil) {
		return false
	}
	if b.Scheme != nil && b.Scheme.ID() != other.Scheme.ID() {
		return false
	}
	return b.Identity.Equal(other.Identity) && b.PublicKey.Equal(other.PublicKey)
}

// Type is the credential variant; its value is the wire tag.
type Type uint8

const (
	TypeBasic Type = 0
	TypeX509  Type = 1

	typeNone Type = 0xff
)

func (t Type) String() string {
	switch t {
	case TypeBasic:
		return "basic"
	case TypeX509:
		return "x509"
	case typeNone:
		return "none"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// Credential is exactly one of a BasicCredential or an X509CertData. The zero
// value is empty: it holds neither variant, cannot be encoded, and its
// accessors fail with KindInvalid.
//
// Credentials are immutable; the byte slices returned by accessors must not be
// modified.
type Credential struct {
	basic *BasicCredential
	cert  X509CertData
	x509  bool
}

// NewBasic returns a Basic credential. The identity and key are copied.
func NewBasic(identity Identity, scheme sigscheme.Scheme, publicKey SigPublicKey) Credential {
	return Credential{basic: &BasicCredential{
		Identity:  append(Identity{}, identity...),
		Scheme:    scheme,
		PublicKey: append(SigPublicKey{}, publicKey...),
	}}
}

// FromBasic wraps b as a Credential.
func FromBasic(b BasicCredential) Credential {
	return NewBasic(b.Identity, b.Scheme, b.PublicKey)
}

// NewX509 returns an X509 credential. The certificate bytes are copied.
func NewX509(cert X509CertData) Credential {
	return Credential{cert: append(X509CertData{}, cert...), x509: true}
}

// IsZero reports whether c is the empty Credential.
func (c Credential) IsZero() bool { return c.basic == nil && !c.x509 }

// Type returns the active variant. The empty Credential reports a type that
// is neither TypeBasic nor TypeX509.
func (c Credential) Type() Type {
	switch {
	case c.basic != nil:
		return TypeBasic
	case c.x509:
		return TypeX509
	default:
		return typeNone
	}
}

// Basic returns the Basic variant, if active.
func (c Credential) Basic() (BasicCredential, bool) {
	if c.basic == nil {
		return BasicCredential{}, false
	}
	return *c.basic, true
}

// X509 returns the X509 variant, if active.
func (c Credential) X509() (X509CertData, bool) {
	if !c.x509 {
		return nil, false
	}
	return c.cert, true
}

// Identity returns the member identity of a Basic credential.
func (c Credential) Identity() (Identity, error) {
	switch {
	case c.basic != nil:
		return c.basic.Identity, nil
	case c.x509:
		return nil, NewError(KindNotImplemented, "CRED-X509-001", "identity of an x509 credential is not implemented")
	default:
		return nil, errEmpty()
	}
}

// PublicKey returns the signature public key of a Basic credential.
func (c Credential) PublicKey() (SigPublicKey, error) {
	switch {
	case c.basic != nil:
		return c.basic.PublicKey, nil
	case c.x509:
		return nil, NewError(KindNotImplemented, "CRED-X509-002", "public key of an x509 credential is not implemented")
	default:
		return nil, errEmpty()
	}
}

// SignatureScheme returns the scheme handle of a Basic credential.
func (c Credential) SignatureScheme() (sigscheme.Scheme, error) {
	switch {
	case c.basic != nil:
		return c.basic.Scheme, nil
	case c.x509:
		return nil, NewError(KindNotImplemented, "CRED-X509-003", "signature scheme of an x509 credential is not implemented")
	default:
		return nil, errEmpty()
	}
}

// VerifySignature checks sig over msg against the credential's declared
// scheme and key. It fails with KindNotImplemented for X509 credentials and
// KindSignature when the signature does not verify.
func (c Credential) VerifySignature(msg, sig []byte) error {
	scheme, err := c.SignatureScheme()
	if err != nil {
		return err
	}
	if scheme == nil {
		return NewError(KindInvalid, "CRED-VAL-002", "basic credential has no signature scheme")
	}
	pub, err := c.PublicKey()
	if err != nil {
		return err
	}
	if !scheme.Verify(pub, msg, sig) {
		return NewError(KindSignature, "CRED-SIG-001", fmt.Sprintf("%s signature does not verify", scheme.Name()))
	}
	return nil
}

// Equal reports whether both credentials hold the same variant and contents.
// Schemes compare by ID.
func (c Credential) Equal(other Credential) bool {
	switch {
	case c.basic != nil:
		return other.basic != nil && c.basic.Equal(*other.basic)
	case c.x509:
		return other.x509 && c.cert.Equal(other.cert)
	default:
		return other.IsZero()
	}
}

func (c Credential) String() string {
	switch {
	case c.basic != nil:
		scheme := "<nil>"
		if c.basic.Scheme != nil {
			scheme = c.basic.Scheme.Name()
		}
		key := c.basic.PublicKey.String()
		if len(key) > 16 {
			key = key[:16] + "..."
		}
		return fmt.Sprintf("basic(identity=%s, scheme=%s, key=%s)", c.basic.Identity, scheme, key)
	case c.x509:
		return fmt.Sprintf("x509(%d bytes)", len(c.cert))
	default:
		return "empty"
	}
}

func errEmpty() error {
	return NewError(KindInvalid, "CRED-VAL-001", "empty credential")
}
