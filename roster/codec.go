package roster

import (
	"fmt"

	"github.com/ipfs/go-cid"
	"golang.org/x/crypto/cryptobyte"

	"xdao.co/mlsroster/cidutil"
	"xdao.co/mlsroster/compliance"
	"xdao.co/mlsroster/credential"
	"xdao.co/mlsroster/tlspl"
)

// Bound is the wire bound of the slot vector:
//
//	optional<Credential> roster<0..2^32-1>;
//
// Each slot is a one-byte presence flag followed by the Credential when the
// flag is 1.
var Bound = tlspl.Bound{Width: tlspl.U32, Min: 0, Max: 1<<32 - 1}

// Encode appends the slot vector to b.
func (r *Roster) Encode(b *cryptobyte.Builder) {
	Bound.WriteNested(b, func(body *cryptobyte.Builder) {
		for _, s := range r.slots {
			tlspl.WritePresence(body, s != nil)
			if s != nil {
				s.Encode(body)
			}
		}
	})
}

func (r *Roster) MarshalBinary() ([]byte, error) {
	b := cryptobyte.NewBuilder(nil)
	r.Encode(b)
	out, err := b.Bytes()
	if err != nil {
		if credential.RuleID(err) != "" {
			return nil, err
		}
		return nil, credential.WrapError(credential.KindInvalid, "ROSTER-VAL-001", "roster does not fit its length prefix", err)
	}
	return out, nil
}

// UnmarshalBinary decodes data permissively into r.
func (r *Roster) UnmarshalBinary(data []byte) error {
	got, err := Unmarshal(data, credential.DecodeOptions{})
	if err != nil {
		return err
	}
	r.slots = got.slots
	return nil
}

// Decode reads a roster from s. In strict mode a roster that ends in a blank
// slot is rejected: a compacted roster never encodes that way.
func Decode(s *cryptobyte.String, opts credential.DecodeOptions) (*Roster, error) {
	var body cryptobyte.String
	if err := Bound.ReadVector(s, &body); err != nil {
		return nil, credential.WrapError(credential.KindMalformedEncoding, "ROSTER-ENC-001", "malformed roster vector", err)
	}
	r := &Roster{}
	for !body.Empty() {
		present, err := tlspl.ReadPresence(&body)
		if err != nil {
			return nil, credential.WrapError(credential.KindMalformedEncoding, "ROSTER-ENC-002",
				fmt.Sprintf("slot %d: malformed presence flag", len(r.slots)), err)
		}
		if !present {
			r.slots = append(r.slots, nil)
			continue
		}
		c, err := credential.Decode(&body, opts)
		if err != nil {
			return nil, credential.WrapError(credential.KindMalformedEncoding, "ROSTER-ENC-003",
				fmt.Sprintf("slot %d: malformed credential", len(r.slots)), err)
		}
		r.slots = append(r.slots, &c)
	}
	if opts.Mode == compliance.Strict && len(r.slots) > 0 && r.slots[len(r.slots)-1] == nil {
		return nil, credential.NewError(credential.KindMalformedEncoding, "ROSTER-ENC-101",
			"strict mode: roster has trailing blank slots")
	}
	return r, nil
}

// Unmarshal decodes exactly one roster; trailing bytes are malformed.
func Unmarshal(data []byte, opts credential.DecodeOptions) (*Roster, error) {
	s := cryptobyte.String(data)
	r, err := Decode(&s, opts)
	if err != nil {
		return nil, err
	}
	if err := tlspl.Finish(s); err != nil {
		return nil, credential.WrapError(credential.KindMalformedEncoding, "ROSTER-ENC-004",
			fmt.Sprintf("%d unexpected trailing bytes", len(s)), err)
	}
	return r, nil
}

// CID returns the content identifier of the roster's encoding. Members that
// agree on the roster agree on its CID only after the same compaction.
func (r *Roster) CID() (cid.Cid, error) {
	b, err := r.MarshalBinary()
	if err != nil {
		return cid.Undef, err
	}
	return cidutil.Sum(b)
}
