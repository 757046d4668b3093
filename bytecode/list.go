package bytecode

// InstructionList is a mutable, doubly linked sequence of instruction
// nodes. Unlike container/list, nodes here are typed (Insn, not an
// opaque Element payload) and the list maintains a lazily rebuilt index
// cache so IndexOf and Get are amortized O(1) across a run of reads
// between structural edits, degrading to O(n) only on the first read
// after a mutation, the same cache-invalidate-on-write strategy used for
// a bytecode chunk's line-number table.
type InstructionList struct {
	first, last Insn
	size        int

	cacheValid bool
	cache      []Insn
}

// NewInstructionList returns an empty list.
func NewInstructionList() *InstructionList {
	return &InstructionList{}
}

// Len returns the number of nodes (real instructions and pseudo-nodes) in
// the list.
func (l *InstructionList) Len() int { return l.size }

// First returns the first node, or nil if the list is empty.
func (l *InstructionList) First() Insn { return l.first }

// Last returns the last node, or nil if the list is empty.
func (l *InstructionList) Last() Insn { return l.last }

func (l *InstructionList) invalidateCache() {
	l.cacheValid = false
	l.cache = nil
}

func (l *InstructionList) rebuildCache() {
	if l.cacheValid {
		return
	}
	cache := make([]Insn, 0, l.size)
	for n := l.first; n != nil; n = Next(n) {
		n.setCachedIndex(len(cache))
		cache = append(cache, n)
	}
	l.cache = cache
	l.cacheValid = true
}

// Get returns the node at position i, or nil if i is out of range.
func (l *InstructionList) Get(i int) Insn {
	if i < 0 || i >= l.size {
		return nil
	}
	l.rebuildCache()
	return l.cache[i]
}

// IndexOf returns the position of n in the list, or -1 if n does not
// belong to this list.
func (l *InstructionList) IndexOf(n Insn) int {
	if n == nil || n.ownerList() != l {
		return -1
	}
	l.rebuildCache()
	return n.cachedIndex()
}

// Contains reports whether n currently belongs to this list.
func (l *InstructionList) Contains(n Insn) bool {
	return n != nil && n.ownerList() == l
}

// ToArray returns the list's nodes as a newly allocated slice, in order.
func (l *InstructionList) ToArray() []Insn {
	l.rebuildCache()
	out := make([]Insn, len(l.cache))
	copy(out, l.cache)
	return out
}

// Accept drives v with every node in the list, in order. Dispatch to the
// concrete variant is the caller's responsibility (a type switch over
// Kind() or a Go type switch); Accept itself only supplies iteration
// order.
func (l *InstructionList) Accept(v func(Insn)) {
	for n := l.first; n != nil; n = Next(n) {
		v(n)
	}
}

// adopt verifies n is unowned and claims it for l. It panics on a node
// already owned by a list: a node may belong to at most one instruction
// list at a time.
func (l *InstructionList) adopt(n Insn) {
	if n.ownerList() != nil {
		panic("bytecode: instruction already belongs to a list")
	}
	n.setOwner(l)
}

// PushBack appends n to the end of the list.
func (l *InstructionList) PushBack(n Insn) {
	l.adopt(n)
	if l.last == nil {
		l.first, l.last = n, n
		n.setLinks(nil, nil)
	} else {
		n.setLinks(l.last, nil)
		l.last.setLinks(Prev(l.last), n)
		l.last = n
	}
	l.size++
	l.invalidateCache()
}

// PushFront prepends n to the start of the list.
func (l *InstructionList) PushFront(n Insn) {
	l.adopt(n)
	if l.first == nil {
		l.first, l.last = n, n
		n.setLinks(nil, nil)
	} else {
		n.setLinks(nil, l.first)
		l.first.setLinks(n, Next(l.first))
		l.first = n
	}
	l.size++
	l.invalidateCache()
}

// InsertAfter inserts n immediately after at. at must already belong to
// this list.
func (l *InstructionList) InsertAfter(at, n Insn) {
	if at.ownerList() != l {
		panic("bytecode: InsertAfter anchor does not belong to this list")
	}
	l.adopt(n)
	after := Next(at)
	n.setLinks(at, after)
	at.setLinks(Prev(at), n)
	if after != nil {
		after.setLinks(n, Next(after))
	} else {
		l.last = n
	}
	l.size++
	l.invalidateCache()
}

// InsertBefore inserts n immediately before at. at must already belong to
// this list.
func (l *InstructionList) InsertBefore(at, n Insn) {
	if at.ownerList() != l {
		panic("bytecode: InsertBefore anchor does not belong to this list")
	}
	l.adopt(n)
	before := Prev(at)
	n.setLinks(before, at)
	at.setLinks(n, Next(at))
	if before != nil {
		before.setLinks(Prev(before), n)
	} else {
		l.first = n
	}
	l.size++
	l.invalidateCache()
}

// Set replaces old with n at the same position, transferring ownership:
// old is released (its owner becomes nil) and n takes its place in the
// chain.
func (l *InstructionList) Set(old, n Insn) {
	if old.ownerList() != l {
		panic("bytecode: Set target does not belong to this list")
	}
	l.adopt(n)
	prev, next := Prev(old), Next(old)
	n.setLinks(prev, next)
	if prev != nil {
		prev.setLinks(Prev(prev), n)
	} else {
		l.first = n
	}
	if next != nil {
		next.setLinks(n, Next(next))
	} else {
		l.last = n
	}
	old.setLinks(nil, nil)
	old.setOwner(nil)
	l.invalidateCache()
}

// Remove unlinks n from the list and releases its ownership, leaving n
// free to be inserted into another list.
func (l *InstructionList) Remove(n Insn) {
	if n.ownerList() != l {
		panic("bytecode: Remove target does not belong to this list")
	}
	prev, next := Prev(n), Next(n)
	if prev != nil {
		prev.setLinks(Prev(prev), next)
	} else {
		l.first = next
	}
	if next != nil {
		next.setLinks(prev, Next(next))
	} else {
		l.last = prev
	}
	n.setLinks(nil, nil)
	n.setOwner(nil)
	l.size--
	l.invalidateCache()
}

// Clear empties the list, releasing ownership of every node it held.
func (l *InstructionList) Clear() {
	for n := l.first; n != nil; {
		next := Next(n)
		n.setLinks(nil, nil)
		n.setOwner(nil)
		n = next
	}
	l.first, l.last = nil, nil
	l.size = 0
	l.invalidateCache()
}

// Append splices the entirety of other onto the end of l, transferring
// ownership of every node other holds to l and leaving other empty but
// independently usable afterward.
func (l *InstructionList) Append(other *InstructionList) {
	if other == nil || other.size == 0 {
		return
	}
	for n := other.first; n != nil; n = Next(n) {
		n.setOwner(l)
	}
	if l.last == nil {
		l.first = other.first
	} else {
		l.last.setLinks(Prev(l.last), other.first)
		other.first.setLinks(l.last, Next(other.first))
	}
	l.last = other.last
	l.size += other.size

	other.first, other.last = nil, nil
	other.size = 0
	other.invalidateCache()
	l.invalidateCache()
}

// InsertListAfter splices the entirety of other into l immediately after
// at, transferring ownership of every spliced node and leaving other
// empty. at must already belong to l.
func (l *InstructionList) InsertListAfter(at Insn, other *InstructionList) {
	if at.ownerList() != l {
		panic("bytecode: InsertListAfter anchor does not belong to this list")
	}
	if other == nil || other.size == 0 {
		return
	}
	for n := other.first; n != nil; n = Next(n) {
		n.setOwner(l)
	}
	after := Next(at)
	at.setLinks(Prev(at), other.first)
	other.first.setLinks(at, Next(other.first))
	other.last.setLinks(Prev(other.last), after)
	if after != nil {
		after.setLinks(other.last, Next(after))
	} else {
		l.last = other.last
	}
	l.size += other.size

	other.first, other.last = nil, nil
	other.size = 0
	other.invalidateCache()
	l.invalidateCache()
}

// ResetLabels invalidates the index cache so the next Get/IndexOf call
// recomputes every node's position from the chain rather than trusting
// positions captured before a structural edit. Labels themselves carry
// no resolved-index state of their own to reset; their offsets are
// derived fresh from each LabelInsn's chain position on every analysis
// pass.
func (l *InstructionList) ResetLabels() {
	l.invalidateCache()
}
