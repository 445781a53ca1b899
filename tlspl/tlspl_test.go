package tlspl

import (
	"bytes"
	"errors"
	"testing"

	"golang.org/x/crypto/cryptobyte"
)

func TestBound_WriteReadRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		bound Bound
		body  []byte
		want  []byte
	}{
		{"u8", Bound{Width: U8, Min: 0, Max: 255}, []byte("ab"), []byte{0x02, 'a', 'b'}},
		{"u16", Bound{Width: U16, Min: 0, Max: 1<<16 - 1}, []byte("ab"), []byte{0x00, 0x02, 'a', 'b'}},
		{"u24", Bound{Width: U24, Min: 1, Max: 1<<24 - 1}, []byte("ab"), []byte{0x00, 0x00, 0x02, 'a', 'b'}},
		{"u32", Bound{Width: U32, Min: 0, Max: 1<<32 - 1}, []byte("ab"), []byte{0x00, 0x00, 0x00, 0x02, 'a', 'b'}},
		{"u16 empty", Bound{Width: U16, Min: 0, Max: 1<<16 - 1}, nil, []byte{0x00, 0x00}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := cryptobyte.NewBuilder(nil)
			tc.bound.Write(b, tc.body)
			got, err := b.Bytes()
			if err != nil {
				t.Fatalf("Write: %v", err)
			}
			if !bytes.Equal(got, tc.want) {
				t.Fatalf("encoding mismatch: got %x want %x", got, tc.want)
			}

			s := cryptobyte.String(got)
			body, err := tc.bound.Read(&s)
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if !bytes.Equal(body, tc.body) {
				t.Fatalf("body mismatch: got %x want %x", body, tc.body)
			}
			if err := Finish(s); err != nil {
				t.Fatalf("Finish: %v", err)
			}
		})
	}
}

func TestBound_ReadRejectsDeclaredLengthOutOfBound(t *testing.T) {
	bound := Bound{Width: U24, Min: 1, Max: 1<<24 - 1}
	s := cryptobyte.String([]byte{0x00, 0x00, 0x00})
	_, err := bound.Read(&s)
	var be *BoundError
	if !errors.As(err, &be) {
		t.Fatalf("expected *BoundError, got %v", err)
	}
	if be.Len != 0 {
		t.Fatalf("expected reported length 0, got %d", be.Len)
	}

	small := Bound{Width: U16, Min: 0, Max: 4}
	s = cryptobyte.String([]byte{0x00, 0x05, 1, 2, 3, 4, 5})
	if _, err := small.Read(&s); !errors.As(err, &be) {
		t.Fatalf("expected *BoundError for length 5, got %v", err)
	}
}

func TestBound_ReadTruncated(t *testing.T) {
	bound := Bound{Width: U16, Min: 0, Max: 1<<16 - 1}
	for _, in := range [][]byte{{}, {0x00}, {0x00, 0x03, 'a'}} {
		s := cryptobyte.String(in)
		if _, err := bound.Read(&s); !errors.Is(err, ErrTruncated) {
			t.Fatalf("input %x: expected ErrTruncated, got %v", in, err)
		}
	}
}

func TestBound_WriteRejectsOutOfBound(t *testing.T) {
	b := cryptobyte.NewBuilder(nil)
	Bound{Width: U24, Min: 1, Max: 1<<24 - 1}.Write(b, nil)
	_, err := b.Bytes()
	var be *BoundError
	if !errors.As(err, &be) {
		t.Fatalf("expected *BoundError, got %v", err)
	}
}

func TestBound_WriteNested(t *testing.T) {
	b := cryptobyte.NewBuilder(nil)
	Bound{Width: U32, Min: 0, Max: 1<<32 - 1}.WriteNested(b, func(child *cryptobyte.Builder) {
		WritePresence(child, true)
		child.AddUint8(7)
		WritePresence(child, false)
	})
	got, err := b.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	want := []byte{0x00, 0x00, 0x00, 0x03, 0x01, 0x07, 0x00}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x want %x", got, want)
	}
}

func TestReadPresence(t *testing.T) {
	s := cryptobyte.String([]byte{0x01, 0x00, 0x02})
	if p, err := ReadPresence(&s); err != nil || !p {
		t.Fatalf("expected present, got %v %v", p, err)
	}
	if p, err := ReadPresence(&s); err != nil || p {
		t.Fatalf("expected absent, got %v %v", p, err)
	}
	if _, err := ReadPresence(&s); !errors.Is(err, ErrBadPresence) {
		t.Fatalf("expected ErrBadPresence, got %v", err)
	}
	if _, err := ReadPresence(&s); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestFinish_TrailingData(t *testing.T) {
	if err := Finish(cryptobyte.String{0x00}); !errors.Is(err, ErrTrailingData) {
		t.Fatalf("expected ErrTrailingData, got %v", err)
	}
}

func TestWidth_MaxU32(t *testing.T) {
	if got := U32.Max(); got != 1<<32-1 {
		t.Fatalf("U32.Max: got %d want %d", got, int64(1<<32-1))
	}
	if got := U24.Max(); got != 1<<24-1 {
		t.Fatalf("U24.Max: got %d", got)
	}
}

func TestBound_ReadU32MaxDeclaredLength(t *testing.T) {
	// A declared length above the int32 range must be reported as truncated
	// input, not wrapped to a negative length.
	bound := Bound{Width: U32, Min: 0, Max: 1<<32 - 1}
	s := cryptobyte.String([]byte{0xff, 0xff, 0xff, 0xff, 0x01})
	if _, err := bound.Read(&s); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}

	tight := Bound{Width: U32, Min: 0, Max: 8}
	s = cryptobyte.String([]byte{0x80, 0x00, 0x00, 0x00})
	_, err := tight.Read(&s)
	var be *BoundError
	if !errors.As(err, &be) || be.Len != 1<<31 {
		t.Fatalf("expected *BoundError with length 2^31, got %v", err)
	}
}
