package credential

import (
	"errors"
	"fmt"

	"github.com/ipfs/go-cid"
	"golang.org/x/crypto/cryptobyte"

	"xdao.co/mlsroster/cidutil"
	"xdao.co/mlsroster/compliance"
	"xdao.co/mlsroster/sigscheme"
	"xdao.co/mlsroster/tlspl"
)

// Wire bounds:
//
//	opaque identity<0..2^16-1>;
//	opaque signature_key<1..2^16-1>;
//	opaque cert_data<1..2^24-1>;
var (
	IdentityBound  = tlspl.Bound{Width: tlspl.U16, Min: 0, Max: 1<<16 - 1}
	PublicKeyBound = tlspl.Bound{Width: tlspl.U16, Min: 1, Max: 1<<16 - 1}
	CertDataBound  = tlspl.Bound{Width: tlspl.U24, Min: 1, Max: 1<<24 - 1}
)

// DecodeOptions controls decoding. The zero value decodes permissively.
type DecodeOptions struct {
	// Mode Strict additionally requires each public key to pass its scheme's
	// ValidatePublicKey.
	Mode compliance.Mode
}

// Encode appends the identity vector to b.
func (id Identity) Encode(b *cryptobyte.Builder) {
	if err := IdentityBound.Check(len(id)); err != nil {
		b.SetError(WrapError(KindInvalid, "CRED-VAL-003", "identity does not fit its length prefix", err))
		return
	}
	IdentityBound.Write(b, id)
}

func (id Identity) MarshalBinary() ([]byte, error) { return marshal(id.Encode) }

// DecodeIdentity reads an identity vector from s.
func DecodeIdentity(s *cryptobyte.String) (Identity, error) {
	v, err := IdentityBound.Read(s)
	if err != nil {
		return nil, WrapError(KindMalformedEncoding, "CRED-ENC-001", "malformed identity", err)
	}
	return Identity(v), nil
}

// UnmarshalIdentity decodes exactly one identity vector.
func UnmarshalIdentity(data []byte) (Identity, error) {
	s := cryptobyte.String(data)
	id, err := DecodeIdentity(&s)
	if err != nil {
		return nil, err
	}
	if err := finish(s); err != nil {
		return nil, err
	}
	return id, nil
}

// Encode appends the cert_data vector to b.
func (c X509CertData) Encode(b *cryptobyte.Builder) {
	if err := CertDataBound.Check(len(c)); err != nil {
		b.SetError(WrapError(KindInvalid, "CRED-VAL-005", "certificate data does not fit its bounds", err))
		return
	}
	CertDataBound.Write(b, c)
}

func (c X509CertData) MarshalBinary() ([]byte, error) { return marshal(c.Encode) }

// DecodeX509CertData reads a cert_data vector from s. An empty certificate is
// malformed.
func DecodeX509CertData(s *cryptobyte.String) (X509CertData, error) {
	v, err := CertDataBound.Read(s)
	if err != nil {
		return nil, WrapError(KindMalformedEncoding, "CRED-ENC-005", "malformed certificate data", err)
	}
	return X509CertData(v), nil
}

// UnmarshalX509CertData decodes exactly one cert_data vector.
func UnmarshalX509CertData(data []byte) (X509CertData, error) {
	s := cryptobyte.String(data)
	c, err := DecodeX509CertData(&s)
	if err != nil {
		return nil, err
	}
	if err := finish(s); err != nil {
		return nil, err
	}
	return c, nil
}

// Encode appends identity, scheme id and public key, in that order.
func (bc BasicCredential) Encode(b *cryptobyte.Builder) {
	if bc.Scheme == nil {
		b.SetError(NewError(KindInvalid, "CRED-VAL-002", "basic credential has no signature scheme"))
		return
	}
	bc.Identity.Encode(b)
	b.AddUint16(uint16(bc.Scheme.ID()))
	if err := PublicKeyBound.Check(len(bc.PublicKey)); err != nil {
		b.SetError(WrapError(KindInvalid, "CRED-VAL-004", "public key does not fit its bounds", err))
		return
	}
	PublicKeyBound.Write(b, bc.PublicKey)
}

// DecodeBasic reads a BasicCredential from s. The scheme identifier is
// resolved through the sigscheme registry; an unregistered identifier is
// malformed.
func DecodeBasic(s *cryptobyte.String, opts DecodeOptions) (BasicCredential, error) {
	id, err := DecodeIdentity(s)
	if err != nil {
		return BasicCredential{}, err
	}
	var schemeID uint16
	if !s.ReadUint16(&schemeID) {
		return BasicCredential{}, WrapError(KindMalformedEncoding, "CRED-ENC-002", "missing signature scheme", tlspl.ErrTruncated)
	}
	scheme, err := sigscheme.Lookup(sigscheme.ID(schemeID))
	if err != nil {
		return BasicCredential{}, WrapError(KindMalformedEncoding, "CRED-ENC-003", "unsupported signature scheme", err)
	}
	pub, err := PublicKeyBound.Read(s)
	if err != nil {
		return BasicCredential{}, WrapError(KindMalformedEncoding, "CRED-ENC-004", "malformed public key", err)
	}
	if opts.Mode == compliance.Strict {
		if err := scheme.ValidatePublicKey(pub); err != nil {
			return BasicCredential{}, WrapError(KindMalformedEncoding, "CRED-ENC-101", "strict mode: public key rejected by its scheme", err)
		}
	}
	return BasicCredential{Identity: id, Scheme: scheme, PublicKey: SigPublicKey(pub)}, nil
}

// Encode appends the one-byte credential type followed by the variant.
func (c Credential) Encode(b *cryptobyte.Builder) {
	switch {
	case c.basic != nil:
		b.AddUint8(uint8(TypeBasic))
		c.basic.Encode(b)
	case c.x509:
		b.AddUint8(uint8(TypeX509))
		c.cert.Encode(b)
	default:
		b.SetError(errEmpty())
	}
}

func (c Credential) MarshalBinary() ([]byte, error) { return marshal(c.Encode) }

// UnmarshalBinary decodes data permissively into c.
func (c *Credential) UnmarshalBinary(data []byte) error {
	got, err := Unmarshal(data, DecodeOptions{})
	if err != nil {
		return err
	}
	*c = got
	return nil
}

// Decode reads one Credential from s.
func Decode(s *cryptobyte.String, opts DecodeOptions) (Credential, error) {
	var tag uint8
	if !s.ReadUint8(&tag) {
		return Credential{}, WrapError(KindMalformedEncoding, "CRED-ENC-006", "missing credential type", tlspl.ErrTruncated)
	}
	switch Type(tag) {
	case TypeBasic:
		bc, err := DecodeBasic(s, opts)
		if err != nil {
			return Credential{}, err
		}
		return Credential{basic: &bc}, nil
	case TypeX509:
		cert, err := DecodeX509CertData(s)
		if err != nil {
			return Credential{}, err
		}
		return Credential{cert: cert, x509: true}, nil
	default:
		return Credential{}, NewError(KindMalformedEncoding, "CRED-ENC-007", fmt.Sprintf("unknown credential type %d", tag))
	}
}

// Unmarshal decodes exactly one Credential; trailing bytes are malformed.
func Unmarshal(data []byte, opts DecodeOptions) (Credential, error) {
	s := cryptobyte.String(data)
	c, err := Decode(&s, opts)
	if err != nil {
		return Credential{}, err
	}
	if err := finish(s); err != nil {
		return Credential{}, err
	}
	return c, nil
}

// CID returns the content identifier of the credential's encoding.
func (c Credential) CID() (cid.Cid, error) {
	b, err := c.MarshalBinary()
	if err != nil {
		return cid.Undef, err
	}
	return cidutil.Sum(b)
}

func finish(s cryptobyte.String) error {
	if err := tlspl.Finish(s); err != nil {
		return WrapError(KindMalformedEncoding, "CRED-ENC-008", fmt.Sprintf("%d unexpected trailing bytes", len(s)), err)
	}
	return nil
}

func marshal(encode func(*cryptobyte.Builder)) ([]byte, error) {
	b := cryptobyte.NewBuilder(nil)
	encode(b)
	out, err := b.Bytes()
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			return nil, err
		}
		return nil, WrapError(KindInvalid, "CRED-VAL-000", "encode failed", err)
	}
	return out, nil
}
