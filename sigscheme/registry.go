package sigscheme

import (
	"fmt"
	"sort"
	"sync"
)

var (
	mu     sync.RWMutex
	byID   = map[ID]Scheme{}
	byName = map[string]Scheme{}
)

// Register adds s to the registry. IDs and names are unique; a registered
// scheme is never removed.
func Register(s Scheme) error {
	if s == nil {
		return fmt.Errorf("sigscheme: nil scheme")
	}
	if s.Name() == "" {
		return fmt.Errorf("sigscheme: scheme 0x%04x has no name", uint16(s.ID()))
	}

	mu.Lock()
	defer mu.Unlock()
	if _, exists := byID[s.ID()]; exists {
		return fmt.Errorf("%w: id 0x%04x", ErrDuplicate, uint16(s.ID()))
	}
	if _, exists := byName[s.Name()]; exists {
		return fmt.Errorf("%w: name %q", ErrDuplicate, s.Name())
	}
	byID[s.ID()] = s
	byName[s.Name()] = s
	return nil
}

// MustRegister is like Register but panics on error.
func MustRegister(s Scheme) {
	if err := Register(s); err != nil {
		panic(err)
	}
}

// Lookup returns the scheme registered under id.
func Lookup(id ID) (Scheme, error) {
	mu.RLock()
	s, ok := byID[id]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: 0x%04x", ErrUnknownScheme, uint16(id))
	}
	return s, nil
}

// LookupName returns the scheme registered under name.
func LookupName(name string) (Scheme, error) {
	mu.RLock()
	s, ok := byName[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
	}
	return s, nil
}

// List returns all registered schemes, sorted by ID.
func List() []Scheme {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Scheme, 0, len(byID))
	for _, s := range byID {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// IDs returns the registered scheme identifiers, sorted.
func IDs() []ID {
	schemes := List()
	ids := make([]ID, 0, len(schemes))
	for _, s := range schemes {
		ids = append(ids, s.ID())
	}
	return ids
}
