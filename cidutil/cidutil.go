// Package cidutil derives content identifiers for canonical wire encodings.
//
// A credential or roster is identified by the CIDv1 of its encoding, using the
// "raw" multicodec and a sha2-256 multihash, so two members that hold the same
// roster bytes agree on the same identifier.
package cidutil

import (
	"errors"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// ErrMismatch reports encoded bytes that do not hash to the expected CID.
var ErrMismatch = errors.New("cidutil: content does not match cid")

// Sum returns the CIDv1 (raw + sha2-256) of encoded.
func Sum(encoded []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(encoded, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}

// String is Sum rendered in its default multibase form. It returns "" only
// if hashing fails, which sha2-256 with the default length does not.
func String(encoded []byte) string {
	id, err := Sum(encoded)
	if err != nil {
		return ""
	}
	return id.String()
}

// Verify checks that encoded hashes to id.
func Verify(id cid.Cid, encoded []byte) error {
	if !id.Defined() {
		return ErrMismatch
	}
	got, err := Sum(encoded)
	if err != nil {
		return err
	}
	if !got.Equals(id) {
		return ErrMismatch
	}
	return nil
}
