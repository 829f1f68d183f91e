package libdep

import (
	"math/bits"
	"sort"
)

// stringSet is an unordered set of names. Every accessor that exposes its
// contents returns them sorted, so callers never observe map order.
type stringSet map[string]bool

func (s stringSet) add(v string) { s[v] = true }

func (s stringSet) sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func (s stringSet) clone() stringSet {
	c := make(stringSet, len(s))
	for v := range s {
		c[v] = true
	}
	return c
}

// setMap maps a name to a set of names.
type setMap map[string]stringSet

func (m setMap) add(k, v string) {
	s, ok := m[k]
	if !ok {
		s = stringSet{}
		m[k] = s
	}
	s.add(v)
}

// get returns the sorted members of m[k], or nil.
func (m setMap) get(k string) []string {
	s, ok := m[k]
	if !ok {
		return nil
	}
	return s.sorted()
}

func (m setMap) keys() []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// bitset is a fixed-size set of dense module indices.
type bitset []uint64

func newBitset(n int) bitset { return make(bitset, (n+63)/64) }

func (b bitset) set(i int)      { b[i/64] |= 1 << uint(i%64) }
func (b bitset) has(i int) bool { return b[i/64]&(1<<uint(i%64)) != 0 }

// union adds every member of o to b and reports whether b grew.
func (b bitset) union(o bitset) bool {
	grew := false
	for i, w := range o {
		if n := b[i] | w; n != b[i] {
			b[i] = n
			grew = true
		}
	}
	return grew
}

func (b bitset) count() int {
	n := 0
	for _, w := range b {
		n += bits.OnesCount64(w)
	}
	return n
}
