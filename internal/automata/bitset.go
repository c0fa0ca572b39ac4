package automata

import (
	"encoding/binary"
	"math/bits"
)

// bitset is a fixed-capacity set of small non-negative integers.
// The capacity is chosen once, at construction, from the position
// count of the marked tree: after marking, the state space size is
// known, so active-state sets never grow.
type bitset []uint64

func newBitset(capacity int) bitset {
	return make(bitset, (capacity+63)/64)
}

func (b bitset) set(i int)      { b[i/64] |= 1 << (i % 64) }
func (b bitset) has(i int) bool { return b[i/64]&(1<<(i%64)) != 0 }

// or folds o into b. Both must have the same capacity.
func (b bitset) or(o bitset) {
	for i, w := range o {
		b[i] |= w
	}
}

func (b bitset) empty() bool {
	for _, w := range b {
		if w != 0 {
			return false
		}
	}
	return true
}

func (b bitset) intersects(o bitset) bool {
	for i, w := range b {
		if w&o[i] != 0 {
			return true
		}
	}
	return false
}

func (b bitset) count() int {
	n := 0
	for _, w := range b {
		n += bits.OnesCount64(w)
	}
	return n
}

// forEach calls f for each member in ascending order.
func (b bitset) forEach(f func(int)) {
	for i, w := range b {
		for w != 0 {
			bit := bits.TrailingZeros64(w)
			f(i*64 + bit)
			w &^= 1 << bit
		}
	}
}

// key returns the raw words as a string, usable as a deterministic
// map key when interning signatures and subsets.
func (b bitset) key() string {
	buf := make([]byte, len(b)*8)
	for i, w := range b {
		binary.LittleEndian.PutUint64(buf[i*8:], w)
	}
	return string(buf)
}
