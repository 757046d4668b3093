package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clasm/bytecode"
	"clasm/classfile"
	"clasm/interpreter"
)

func newMethod(access int, descriptor string, maxStack, maxLocals int) *classfile.MethodNode {
	m := classfile.NewMethodNode(access, "m", descriptor, "", nil)
	m.MaxStack, m.MaxLocals = maxStack, maxLocals
	return m
}

func TestAnalyzeSkipsAbstractMethod(t *testing.T) {
	m := newMethod(0x0400, "()V", 0, 0)
	a := New(interpreter.BasicInterpreter{})
	frames, err := a.Analyze("p/C", m)
	require.NoError(t, err)
	assert.Nil(t, frames)
}

// TestAnalyzeMarksDeadCodeUnreachable builds
// ICONST_0; IRETURN; ICONST_1; IRETURN, where the second pair is
// unreachable, and checks the analyzer leaves those frames nil.
func TestAnalyzeMarksDeadCodeUnreachable(t *testing.T) {
	m := newMethod(0x0008, "()I", 2, 1)
	m.Instructions.PushBack(bytecode.NewSimpleInsn(bytecode.ICONST_0))
	m.Instructions.PushBack(bytecode.NewSimpleInsn(bytecode.IRETURN))
	m.Instructions.PushBack(bytecode.NewSimpleInsn(bytecode.ICONST_1))
	m.Instructions.PushBack(bytecode.NewSimpleInsn(bytecode.IRETURN))

	a := New(interpreter.BasicInterpreter{})
	frames, err := a.Analyze("p/C", m)
	require.NoError(t, err)
	require.Len(t, frames, 4)
	assert.NotNil(t, frames[0])
	assert.NotNil(t, frames[1])
	assert.Nil(t, frames[2])
	assert.Nil(t, frames[3])
}

// TestAnalyzeTracksSubroutineLocalsUsed builds:
//
//	JSR L0; RETURN; L0: ASTORE 2; ICONST_0; ISTORE 1; RET 2
//
// The subroutine writes locals 1 and 2. RETURN is reached only through
// the RET, so every node must get a frame, and the frame after the JSR
// must hold the subroutine's values for the locals it used.
func TestAnalyzeTracksSubroutineLocalsUsed(t *testing.T) {
	m := newMethod(0x0008, "()V", 2, 3)
	l0 := bytecode.NewLabel()

	m.Instructions.PushBack(bytecode.NewJumpInsn(bytecode.JSR, l0))
	m.Instructions.PushBack(bytecode.NewSimpleInsn(bytecode.RETURN))
	m.Instructions.PushBack(bytecode.NewLabelInsn(l0))
	m.Instructions.PushBack(bytecode.NewVarInsn(bytecode.ASTORE, 2))
	m.Instructions.PushBack(bytecode.NewSimpleInsn(bytecode.ICONST_0))
	m.Instructions.PushBack(bytecode.NewVarInsn(bytecode.ISTORE, 1))
	m.Instructions.PushBack(bytecode.NewVarInsn(bytecode.RET, 2))

	a := New(interpreter.BasicInterpreter{})
	frames, err := a.Analyze("p/C", m)
	require.NoError(t, err)
	require.Len(t, frames, 7)
	for i, f := range frames {
		assert.NotNilf(t, f, "instruction %d should be reachable", i)
	}

	require.NotNil(t, frames[1])
	v1, err := frames[1].GetLocal(1)
	require.NoError(t, err)
	assert.Same(t, interpreter.Int, v1)
	v2, err := frames[1].GetLocal(2)
	require.NoError(t, err)
	assert.Same(t, interpreter.ReturnAddress, v2)
}

// TestAnalyzeInitialFrameKeepsReceiverAndParameterLocals guards against
// the receiver local getting clobbered while the initial frame is being
// built: SetLocal(0, receiver) followed by SetLocal(1, param) must leave
// both locals readable, not just the most recently written one.
func TestAnalyzeInitialFrameKeepsReceiverAndParameterLocals(t *testing.T) {
	m := newMethod(0x0001, "(I)V", 1, 2)
	m.Instructions.PushBack(bytecode.NewSimpleInsn(bytecode.RETURN))

	a := New(interpreter.BasicInterpreter{})
	frames, err := a.Analyze("p/C", m)
	require.NoError(t, err)
	require.Len(t, frames, 1)
	require.NotNil(t, frames[0])

	receiver, err := frames[0].GetLocal(0)
	require.NoError(t, err)
	assert.Same(t, interpreter.Reference, receiver)

	param, err := frames[0].GetLocal(1)
	require.NoError(t, err)
	assert.Same(t, interpreter.Int, param)
}

func TestAnalyzeEmptyCodeYieldsNilFrames(t *testing.T) {
	m := newMethod(0x0008, "()V", 0, 0)
	a := New(interpreter.BasicInterpreter{})
	frames, err := a.Analyze("p/C", m)
	require.NoError(t, err)
	assert.Nil(t, frames)
}
