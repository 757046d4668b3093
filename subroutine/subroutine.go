// Package subroutine tracks JSR/RET subroutine membership during analysis:
// which local slots a subroutine touches, and which JSR nodes may have
// called it.
package subroutine

import (
	"math/bits"

	"clasm/bytecode"
)

// bitset is a fixed-word local-slot membership set. maxLocals is typically
// small (a handful of words), so a packed []uint64 with math/bits
// popcount/scan is a better fit than a []bool per slot or a big.Int.
type bitset []uint64

func newBitset(numBits int) bitset {
	return make(bitset, (numBits+63)/64)
}

func (b bitset) set(i int) {
	if i < 0 || i/64 >= len(b) {
		return
	}
	b[i/64] |= 1 << uint(i%64)
}

func (b bitset) get(i int) bool {
	if i < 0 || i/64 >= len(b) {
		return false
	}
	return b[i/64]&(1<<uint(i%64)) != 0
}

func (b bitset) clone() bitset {
	return append(bitset(nil), b...)
}

// orInto ORs other into b in place, reporting whether b changed.
func (b bitset) orInto(other bitset) bool {
	changed := false
	for i := range b {
		if i >= len(other) {
			break
		}
		merged := b[i] | other[i]
		if merged != b[i] {
			b[i] = merged
			changed = true
		}
	}
	return changed
}

// indices returns every set bit, in ascending order.
func (b bitset) indices() []int {
	var out []int
	for word, v := range b {
		for v != 0 {
			lsb := bits.TrailingZeros64(v)
			out = append(out, word*64+lsb)
			v &^= 1 << uint(lsb)
		}
	}
	return out
}

// Subroutine is one JSR target's bookkeeping: the sentinel "main"
// subroutine (Start == nil) covers code never reached via a JSR.
type Subroutine struct {
	// Start is the label the subroutine begins at, nil for the sentinel
	// main subroutine.
	Start *bytecode.Label

	localsUsed bitset

	// Callers is every JSR node that may invoke this subroutine, keyed by
	// node identity so repeated discovery of the same caller is a no-op.
	Callers map[*bytecode.JumpInsn]struct{}
}

// New returns an empty subroutine rooted at start (nil for the sentinel
// main subroutine), sized for numLocals local slots.
func New(start *bytecode.Label, numLocals int) *Subroutine {
	return &Subroutine{
		Start:      start,
		localsUsed: newBitset(numLocals),
		Callers:    make(map[*bytecode.JumpInsn]struct{}),
	}
}

// Clone returns an independent copy, as required wherever a subroutine is
// propagated to a successor instruction.
func (s *Subroutine) Clone() *Subroutine {
	c := &Subroutine{
		Start:      s.Start,
		localsUsed: s.localsUsed.clone(),
		Callers:    make(map[*bytecode.JumpInsn]struct{}, len(s.Callers)),
	}
	for n := range s.Callers {
		c.Callers[n] = struct{}{}
	}
	return c
}

// MarkLocalUsed records that slot i was read or written within this
// subroutine.
func (s *Subroutine) MarkLocalUsed(i int) {
	s.localsUsed.set(i)
}

// LocalUsed reports whether slot i was recorded as read or written within
// this subroutine.
func (s *Subroutine) LocalUsed(i int) bool {
	return s.localsUsed.get(i)
}

// LocalsUsedIndices returns every local slot index this subroutine's body
// touches, in ascending order — used by tests and diagnostics.
func (s *Subroutine) LocalsUsedIndices() []int {
	return s.localsUsed.indices()
}

// Merge folds other into s: locals_used is OR'd in unconditionally;
// callers only unions when other roots the same subroutine (same Start,
// compared by Label identity). Reports whether s changed.
func (s *Subroutine) Merge(other *Subroutine) bool {
	changed := s.localsUsed.orInto(other.localsUsed)
	if other.Start == s.Start {
		for n := range other.Callers {
			if _, ok := s.Callers[n]; !ok {
				s.Callers[n] = struct{}{}
				changed = true
			}
		}
	}
	return changed
}
