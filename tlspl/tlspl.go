// Package tlspl reads and writes the TLS presentation-language constructs used
// by the group wire format: bounded opaque vectors and optional values.
//
// Readers operate on a cryptobyte.String and advance it; writers append to a
// cryptobyte.Builder and record the first error on the builder, so a caller
// encoding a nested structure checks the error once via Builder.Bytes.
package tlspl

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/cryptobyte"
)

// Width is the size in bytes of a vector length prefix.
type Width int

const (
	U8  Width = 1
	U16 Width = 2
	U24 Width = 3
	U32 Width = 4
)

// Max returns the largest length a prefix of this width can express. It is an
// int64 so the U32 limit is representable where int is 32 bits.
func (w Width) Max() int64 {
	switch w {
	case U8:
		return 1<<8 - 1
	case U16:
		return 1<<16 - 1
	case U24:
		return 1<<24 - 1
	case U32:
		return 1<<32 - 1
	default:
		return 0
	}
}

var (
	ErrTruncated    = errors.New("tlspl: truncated input")
	ErrTrailingData = errors.New("tlspl: trailing data")
	ErrBadWidth     = errors.New("tlspl: unsupported length prefix width")
	ErrBadPresence  = errors.New("tlspl: optional presence flag must be 0 or 1")
)

// Bound describes an opaque vector `opaque v<Min..Max>` whose length prefix is
// Width bytes wide.
type Bound struct {
	Width Width
	Min   int64
	Max   int64
}

func (b Bound) String() string {
	return fmt.Sprintf("<%d..%d>", b.Min, b.Max)
}

// BoundError reports a vector length outside its declared bound.
type BoundError struct {
	Bound Bound
	Len   int64
}

func (e *BoundError) Error() string {
	return fmt.Sprintf("tlspl: vector length %d outside %s", e.Len, e.Bound)
}

// Check reports whether n is an acceptable length for the vector.
func (b Bound) Check(n int) error {
	return b.checkLen(int64(n))
}

func (b Bound) checkLen(n int64) error {
	if n < b.Min || n > b.Max || n > b.Width.Max() {
		return &BoundError{Bound: b, Len: n}
	}
	return nil
}

// ReadVector reads the length prefix and body of a vector into out without
// copying. The declared length is checked against the bound before the body
// is consumed.
func (b Bound) ReadVector(s *cryptobyte.String, out *cryptobyte.String) error {
	n, err := readLength(s, b.Width)
	if err != nil {
		return err
	}
	if err := b.checkLen(n); err != nil {
		return err
	}
	if n > int64(len(*s)) {
		return ErrTruncated
	}
	var body []byte
	if !s.ReadBytes(&body, int(n)) {
		return ErrTruncated
	}
	*out = cryptobyte.String(body)
	return nil
}

// Read reads a vector and returns a copy of its body.
func (b Bound) Read(s *cryptobyte.String) ([]byte, error) {
	var body cryptobyte.String
	if err := b.ReadVector(s, &body); err != nil {
		return nil, err
	}
	out := make([]byte, len(body))
	copy(out, body)
	return out, nil
}

// Write appends v as a vector. A length outside the bound is recorded as the
// builder's error.
func (b Bound) Write(bld *cryptobyte.Builder, v []byte) {
	if err := b.Check(len(v)); err != nil {
		bld.SetError(err)
		return
	}
	switch b.Width {
	case U8:
		bld.AddUint8(uint8(len(v)))
	case U16:
		bld.AddUint16(uint16(len(v)))
	case U24:
		bld.AddUint24(uint32(len(v)))
	case U32:
		bld.AddUint32(uint32(len(v)))
	default:
		bld.SetError(ErrBadWidth)
		return
	}
	bld.AddBytes(v)
}

// WriteNested builds the vector body with f in a scratch builder, then writes
// it with the bound applied to the finished body.
func (b Bound) WriteNested(bld *cryptobyte.Builder, f func(*cryptobyte.Builder)) {
	child := cryptobyte.NewBuilder(nil)
	f(child)
	body, err := child.Bytes()
	if err != nil {
		bld.SetError(err)
		return
	}
	b.Write(bld, body)
}

// ReadPresence reads the one-byte presence flag of an optional value.
func ReadPresence(s *cryptobyte.String) (bool, error) {
	var flag uint8
	if !s.ReadUint8(&flag) {
		return false, ErrTruncated
	}
	switch flag {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, ErrBadPresence
	}
}

// WritePresence appends the one-byte presence flag of an optional value.
func WritePresence(bld *cryptobyte.Builder, present bool) {
	if present {
		bld.AddUint8(1)
		return
	}
	bld.AddUint8(0)
}

// Finish returns ErrTrailingData when s still holds unread bytes.
func Finish(s cryptobyte.String) error {
	if !s.Empty() {
		return ErrTrailingData
	}
	return nil
}

func readLength(s *cryptobyte.String, w Width) (int64, error) {
	switch w {
	case U8:
		var v uint8
		if !s.ReadUint8(&v) {
			return 0, ErrTruncated
		}
		return int64(v), nil
	case U16:
		var v uint16
		if !s.ReadUint16(&v) {
			return 0, ErrTruncated
		}
		return int64(v), nil
	case U24:
		var v uint32
		if !s.ReadUint24(&v) {
			return 0, ErrTruncated
		}
		return int64(v), nil
	case U32:
		var v uint32
		if !s.ReadUint32(&v) {
			return 0, ErrTruncated
		}
		return int64(v), nil
	default:
		return 0, ErrBadWidth
	}
}
