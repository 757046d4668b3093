package subroutine_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clasm/bytecode"
	"clasm/subroutine"
)

func TestMergeUnionsLocalsUsedAlways(t *testing.T) {
	startA := bytecode.NewLabel()
	startB := bytecode.NewLabel()

	a := subroutine.New(startA, 4)
	a.MarkLocalUsed(1)
	b := subroutine.New(startB, 4)
	b.MarkLocalUsed(2)

	changed := a.Merge(b)
	require.True(t, changed)
	if diff := cmp.Diff([]int{1, 2}, a.LocalsUsedIndices()); diff != "" {
		t.Errorf("LocalsUsedIndices() mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeUnionsCallersOnlyWhenSameStart(t *testing.T) {
	start := bytecode.NewLabel()
	otherStart := bytecode.NewLabel()

	caller1 := bytecode.NewJumpInsn(bytecode.JSR, start)
	caller2 := bytecode.NewJumpInsn(bytecode.JSR, start)

	a := subroutine.New(start, 2)
	a.Callers[caller1] = struct{}{}

	sameRoot := subroutine.New(start, 2)
	sameRoot.Callers[caller2] = struct{}{}

	changed := a.Merge(sameRoot)
	require.True(t, changed)
	_, ok1 := a.Callers[caller1]
	_, ok2 := a.Callers[caller2]
	assert.True(t, ok1)
	assert.True(t, ok2)

	differentRoot := subroutine.New(otherStart, 2)
	differentRoot.Callers[bytecode.NewJumpInsn(bytecode.JSR, otherStart)] = struct{}{}
	before := len(a.Callers)
	a.Merge(differentRoot)
	assert.Len(t, a.Callers, before)
}

func TestMergeReportsNoChangeWhenAlreadySuperset(t *testing.T) {
	start := bytecode.NewLabel()
	a := subroutine.New(start, 2)
	a.MarkLocalUsed(0)

	b := subroutine.New(start, 2)
	b.MarkLocalUsed(0)

	require.False(t, a.Merge(b))
}

func TestCloneIsIndependent(t *testing.T) {
	start := bytecode.NewLabel()
	a := subroutine.New(start, 2)
	a.MarkLocalUsed(0)

	c := a.Clone()
	c.MarkLocalUsed(1)

	assert.False(t, a.LocalUsed(1))
	assert.True(t, c.LocalUsed(1))
}
