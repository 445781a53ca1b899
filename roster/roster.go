// Package roster maintains the ordered member slots of a group.
//
// A slot's index is the member's stable position in the group. Removing a
// member blanks its slot instead of deleting it, so the indices of everyone
// after it do not move. Blank slots at the end are reclaimed only when the
// owner calls TruncateToLastNonblank, typically once per commit.
//
// A Roster performs no locking. The owning group state must serialise slot
// writes and compaction.
package roster

import (
	"xdao.co/mlsroster/credential"
)

// Roster is an ordered sequence of optional credentials. The zero value is an
// empty roster ready to use.
type Roster struct {
	slots []*credential.Credential
}

// New returns a roster holding slots in order; nil entries and empty
// credentials are blank slots.
func New(slots ...*credential.Credential) *Roster {
	r := &Roster{slots: make([]*credential.Credential, len(slots))}
	for i, c := range slots {
		r.slots[i] = occupant(c)
	}
	return r
}

func occupant(c *credential.Credential) *credential.Credential {
	if c == nil || c.IsZero() {
		return nil
	}
	cp := *c
	return &cp
}

// Len returns the number of slots, blanks included.
func (r *Roster) Len() int { return len(r.slots) }

// At returns the credential in slot i. ok is false for a blank slot or an
// index outside the roster.
func (r *Roster) At(i int) (c credential.Credential, ok bool) {
	if i < 0 || i >= len(r.slots) || r.slots[i] == nil {
		return credential.Credential{}, false
	}
	return *r.slots[i], true
}

// Set assigns c to slot i, growing the roster with blank slots when i is past
// the end. Setting an empty credential blanks the slot, growing the roster the
// same way. Set panics if i is negative.
func (r *Roster) Set(i int, c credential.Credential) {
	if i < 0 {
		panic("roster: negative slot index")
	}
	for len(r.slots) <= i {
		r.slots = append(r.slots, nil)
	}
	r.slots[i] = occupant(&c)
}

// Add places c in the lowest blank slot, or appends it when there is none,
// and returns the slot index. An empty credential is not a member: Add leaves
// the roster unchanged and returns -1.
func (r *Roster) Add(c credential.Credential) int {
	if c.IsZero() {
		return -1
	}
	for i, s := range r.slots {
		if s == nil {
			r.Set(i, c)
			return i
		}
	}
	r.Set(len(r.slots), c)
	return len(r.slots) - 1
}

// Blank clears slot i and reports whether it was occupied. The roster length
// never changes.
func (r *Roster) Blank(i int) bool {
	if i < 0 || i >= len(r.slots) || r.slots[i] == nil {
		return false
	}
	r.slots[i] = nil
	return true
}

// Occupied returns the number of non-blank slots.
func (r *Roster) Occupied() int {
	n := 0
	for _, s := range r.slots {
		if s != nil {
			n++
		}
	}
	return n
}

// IndexOf returns the lowest slot holding a Basic credential with identity id.
// X509 slots never match.
func (r *Roster) IndexOf(id credential.Identity) (int, bool) {
	for i, s := range r.slots {
		if s == nil {
			continue
		}
		got, err := s.Identity()
		if err != nil {
			continue
		}
		if got.Equal(id) {
			return i, true
		}
	}
	return 0, false
}

// Slots returns a copy of the slot sequence; nil entries are blank.
func (r *Roster) Slots() []*credential.Credential {
	out := make([]*credential.Credential, len(r.slots))
	for i, s := range r.slots {
		out[i] = occupant(s)
	}
	return out
}

func (r *Roster) Clone() *Roster { return New(r.slots...) }

// Equal reports whether both rosters have the same length and equal slots. A
// nil roster equals only another nil roster.
func (r *Roster) Equal(other *Roster) bool {
	if r == nil || other == nil {
		return r == other
	}
	if len(r.slots) != len(other.slots) {
		return false
	}
	for i, s := range r.slots {
		o := other.slots[i]
		if (s == nil) != (o == nil) {
			return false
		}
		if s != nil && !s.Equal(*o) {
			return false
		}
	}
	return true
}

// TruncateToLastNonblank drops the trailing run of blank slots so the roster
// ends at its last occupied slot. An all-blank roster becomes empty. Occupied
// slots keep their index and contents.
func (r *Roster) TruncateToLastNonblank() {
	n := len(r.slots)
	for n > 0 && r.slots[n-1] == nil {
		n--
	}
	r.slots = r.slots[:n]
}
