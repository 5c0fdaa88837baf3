package docsign

import (
	"bytes"
	"sort"
)

// AddressSet is a set of identities. Membership is decided by byte-exact
// comparison of the fixed size address value.
//
// The zero value is an empty set that is safe to read from. Use
// NewAddressSet to create a set that can be written to.
type AddressSet struct {
	m map[Address]struct{}
}

// NewAddressSet returns a set containing all given addresses. Duplicates
// are collapsed.
func NewAddressSet(addrs ...Address) AddressSet {
	s := AddressSet{m: make(map[Address]struct{}, len(addrs))}
	for _, a := range addrs {
		s.m[a] = struct{}{}
	}
	return s
}

// Has returns true if given address is a member of this set.
func (s AddressSet) Has(a Address) bool {
	_, ok := s.m[a]
	return ok
}

// Add inserts given address. It returns false if the address was already
// present.
func (s *AddressSet) Add(a Address) bool {
	if s.m == nil {
		s.m = make(map[Address]struct{})
	}
	if _, ok := s.m[a]; ok {
		return false
	}
	s.m[a] = struct{}{}
	return true
}

// Len returns the number of addresses in this set.
func (s AddressSet) Len() int {
	return len(s.m)
}

// Sorted returns all addresses in ascending byte order.
func (s AddressSet) Sorted() []Address {
	out := make([]Address, 0, len(s.m))
	for a := range s.m {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i][:], out[j][:]) < 0
	})
	return out
}
