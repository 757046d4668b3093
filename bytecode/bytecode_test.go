package bytecode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clasm/bytecode"
)

func chainLen(l *bytecode.InstructionList) int {
	n := 0
	for i := l.First(); i != nil; i = bytecode.Next(i) {
		n++
	}
	return n
}

func TestPushBackOrderAndLinks(t *testing.T) {
	l := bytecode.NewInstructionList()
	a := bytecode.NewSimpleInsn(bytecode.NOP)
	b := bytecode.NewSimpleInsn(bytecode.IADD)
	c := bytecode.NewSimpleInsn(bytecode.RETURN)

	l.PushBack(a)
	l.PushBack(b)
	l.PushBack(c)

	require.Equal(t, 3, l.Len())
	assert.Equal(t, l.Len(), chainLen(l))
	assert.Same(t, a, l.First())
	assert.Same(t, c, l.Last())

	assert.Nil(t, bytecode.Prev(a))
	assert.Same(t, a, bytecode.Prev(b))
	assert.Same(t, b, bytecode.Prev(c))
	assert.Nil(t, bytecode.Next(c))

	assert.Equal(t, []bytecode.Insn{a, b, c}, l.ToArray())
	assert.Equal(t, 0, l.IndexOf(a))
	assert.Equal(t, 2, l.IndexOf(c))
	assert.True(t, l.Contains(b))
}

func TestPushFrontAndInsert(t *testing.T) {
	l := bytecode.NewInstructionList()
	mid := bytecode.NewSimpleInsn(bytecode.NOP)
	l.PushBack(mid)

	first := bytecode.NewSimpleInsn(bytecode.ICONST_0)
	l.PushFront(first)
	assert.Same(t, first, l.First())

	after := bytecode.NewSimpleInsn(bytecode.ICONST_1)
	l.InsertAfter(mid, after)
	assert.Same(t, after, l.Last())
	assert.Equal(t, 3, l.Len())

	before := bytecode.NewSimpleInsn(bytecode.ICONST_2)
	l.InsertBefore(mid, before)
	assert.Equal(t, 4, l.Len())
	assert.Equal(t, []bytecode.Insn{first, before, mid, after}, l.ToArray())
}

func TestSetReplacesAndReleasesOwnership(t *testing.T) {
	l := bytecode.NewInstructionList()
	a := bytecode.NewSimpleInsn(bytecode.NOP)
	b := bytecode.NewSimpleInsn(bytecode.POP)
	l.PushBack(a)
	l.PushBack(b)

	replacement := bytecode.NewSimpleInsn(bytecode.DUP)
	l.Set(a, replacement)

	assert.Equal(t, 2, l.Len())
	assert.Same(t, replacement, l.First())
	assert.False(t, l.Contains(a))
}

func TestRemoveUnlinksAndFreesNode(t *testing.T) {
	l := bytecode.NewInstructionList()
	a := bytecode.NewSimpleInsn(bytecode.NOP)
	b := bytecode.NewSimpleInsn(bytecode.POP)
	c := bytecode.NewSimpleInsn(bytecode.DUP)
	l.PushBack(a)
	l.PushBack(b)
	l.PushBack(c)

	l.Remove(b)
	assert.Equal(t, 2, l.Len())
	assert.False(t, l.Contains(b))
	assert.Equal(t, []bytecode.Insn{a, c}, l.ToArray())

	other := bytecode.NewInstructionList()
	other.PushBack(b)
	assert.True(t, other.Contains(b))
}

func TestClearReleasesAllNodes(t *testing.T) {
	l := bytecode.NewInstructionList()
	a := bytecode.NewSimpleInsn(bytecode.NOP)
	l.PushBack(a)
	l.Clear()

	assert.Equal(t, 0, l.Len())
	assert.Nil(t, l.First())
	assert.False(t, l.Contains(a))
}

// TestAppendSplicesAndTransfersOwnership checks that appending one list
// onto another reassigns every spliced node's owner in one pass and
// leaves the donor list empty and independently reusable.
func TestAppendSplicesAndTransfersOwnership(t *testing.T) {
	dst := bytecode.NewInstructionList()
	d1 := bytecode.NewSimpleInsn(bytecode.NOP)
	dst.PushBack(d1)

	src := bytecode.NewInstructionList()
	s1 := bytecode.NewSimpleInsn(bytecode.ICONST_0)
	s2 := bytecode.NewSimpleInsn(bytecode.ICONST_1)
	src.PushBack(s1)
	src.PushBack(s2)

	dst.Append(src)

	require.Equal(t, 3, dst.Len())
	assert.Equal(t, dst.Len(), chainLen(dst))
	assert.Equal(t, []bytecode.Insn{d1, s1, s2}, dst.ToArray())
	assert.True(t, dst.Contains(s1))
	assert.True(t, dst.Contains(s2))

	assert.Equal(t, 0, src.Len())
	assert.Nil(t, src.First())
	assert.Nil(t, src.Last())

	// src is independently usable after being drained.
	s3 := bytecode.NewSimpleInsn(bytecode.ICONST_2)
	src.PushBack(s3)
	assert.Equal(t, 1, src.Len())
	assert.True(t, src.Contains(s3))
}

func TestInsertListAfterSplicesInMiddle(t *testing.T) {
	dst := bytecode.NewInstructionList()
	a := bytecode.NewSimpleInsn(bytecode.NOP)
	c := bytecode.NewSimpleInsn(bytecode.RETURN)
	dst.PushBack(a)
	dst.PushBack(c)

	mid := bytecode.NewInstructionList()
	m1 := bytecode.NewSimpleInsn(bytecode.ICONST_0)
	m2 := bytecode.NewSimpleInsn(bytecode.ICONST_1)
	mid.PushBack(m1)
	mid.PushBack(m2)

	dst.InsertListAfter(a, mid)

	require.Equal(t, 4, dst.Len())
	assert.Equal(t, []bytecode.Insn{a, m1, m2, c}, dst.ToArray())
	assert.Equal(t, 0, mid.Len())
}

func TestAppendEmptyListIsNoop(t *testing.T) {
	dst := bytecode.NewInstructionList()
	a := bytecode.NewSimpleInsn(bytecode.NOP)
	dst.PushBack(a)

	dst.Append(bytecode.NewInstructionList())
	assert.Equal(t, 1, dst.Len())
}

func TestIndexCacheSurvivesInterleavedMutation(t *testing.T) {
	l := bytecode.NewInstructionList()
	var nodes []bytecode.Insn
	for i := 0; i < 5; i++ {
		n := bytecode.NewSimpleInsn(bytecode.NOP)
		l.PushBack(n)
		nodes = append(nodes, n)
	}
	for i, n := range nodes {
		assert.Equal(t, i, l.IndexOf(n))
	}

	l.Remove(nodes[2])
	assert.Equal(t, 3, l.IndexOf(nodes[4]))
	assert.Equal(t, -1, l.IndexOf(nodes[2]))

	inserted := bytecode.NewSimpleInsn(bytecode.DUP)
	l.InsertAfter(nodes[0], inserted)
	assert.Equal(t, 1, l.IndexOf(inserted))
	assert.Equal(t, 2, l.IndexOf(nodes[1]))
}

func TestGetOutOfRangeReturnsNil(t *testing.T) {
	l := bytecode.NewInstructionList()
	l.PushBack(bytecode.NewSimpleInsn(bytecode.NOP))
	assert.Nil(t, l.Get(-1))
	assert.Nil(t, l.Get(1))
	assert.NotNil(t, l.Get(0))
}

func TestPushBackOfAlreadyOwnedNodePanics(t *testing.T) {
	l1 := bytecode.NewInstructionList()
	l2 := bytecode.NewInstructionList()
	a := bytecode.NewSimpleInsn(bytecode.NOP)
	l1.PushBack(a)

	assert.Panics(t, func() { l2.PushBack(a) })
}

func TestLabelJumpAndVariantKinds(t *testing.T) {
	l := bytecode.NewInstructionList()
	target := bytecode.NewNamedLabel("L0")

	jmp := bytecode.NewJumpInsn(bytecode.GOTO, target)
	lbl := bytecode.NewLabelInsn(target)
	ret := bytecode.NewSimpleInsn(bytecode.RETURN)

	l.PushBack(jmp)
	l.PushBack(lbl)
	l.PushBack(ret)

	assert.Equal(t, bytecode.KindJump, jmp.Kind())
	assert.Equal(t, bytecode.KindLabel, lbl.Kind())
	assert.Same(t, target, jmp.Target)
	assert.Same(t, target, lbl.Label)
}

func TestAcceptVisitsInOrder(t *testing.T) {
	l := bytecode.NewInstructionList()
	l.PushBack(bytecode.NewSimpleInsn(bytecode.NOP))
	l.PushBack(bytecode.NewSimpleInsn(bytecode.IADD))
	l.PushBack(bytecode.NewSimpleInsn(bytecode.RETURN))

	var seen []bytecode.Opcode
	l.Accept(func(n bytecode.Insn) {
		if s, ok := n.(*bytecode.SimpleInsn); ok {
			seen = append(seen, s.Op)
		}
	})
	assert.Equal(t, []bytecode.Opcode{bytecode.NOP, bytecode.IADD, bytecode.RETURN}, seen)
}
