package frame_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clasm/bytecode"
	clasmerrors "clasm/errors"
	"clasm/frame"
	"clasm/interpreter"
)

func TestNewFrameLocalsAreEmptyAndStackIsZero(t *testing.T) {
	f := frame.New(3, 4, interpreter.BasicInterpreter{})
	assert.Equal(t, 3, f.NumLocals())
	assert.Equal(t, 4, f.MaxStack())
	assert.Equal(t, 0, f.StackHeight())
}

func TestSetLocalSizeTwoReservesContinuation(t *testing.T) {
	f := frame.New(3, 2, interpreter.BasicInterpreter{})
	require.NoError(t, f.SetLocal(0, interpreter.Long))

	v, err := f.GetLocal(0)
	require.NoError(t, err)
	assert.Same(t, interpreter.Long, v)

	require.NoError(t, f.SetLocal(2, interpreter.Int))
	v2, err := f.GetLocal(2)
	require.NoError(t, err)
	assert.Same(t, interpreter.Int, v2)
}

func TestSetLocalOverwritingLowHalfInvalidatesHigh(t *testing.T) {
	f := frame.New(2, 1, interpreter.BasicInterpreter{})
	require.NoError(t, f.SetLocal(0, interpreter.Double))

	require.NoError(t, f.SetLocal(0, interpreter.Int))
	v1, err := f.GetLocal(1)
	require.NoError(t, err)
	assert.NotSame(t, interpreter.Double, v1)
}

func TestSetLocalOverwritingHighHalfInvalidatesLow(t *testing.T) {
	f := frame.New(2, 1, interpreter.BasicInterpreter{})
	require.NoError(t, f.SetLocal(0, interpreter.Long))

	require.NoError(t, f.SetLocal(1, interpreter.Int))
	v0, err := f.GetLocal(0)
	require.NoError(t, err)
	assert.NotSame(t, interpreter.Long, v0)
}

// TestSetLocalIntoEmptySlotLeavesPrecedingSlotIntact guards against
// conflating "never written" with the size-2 continuation sentinel:
// writing a single-word value into an untouched slot i>0 must not
// disturb whatever already lives at i-1.
func TestSetLocalIntoEmptySlotLeavesPrecedingSlotIntact(t *testing.T) {
	f := frame.New(3, 1, interpreter.BasicInterpreter{})
	require.NoError(t, f.SetLocal(0, interpreter.Int))

	require.NoError(t, f.SetLocal(1, interpreter.Reference))

	v0, err := f.GetLocal(0)
	require.NoError(t, err)
	assert.Same(t, interpreter.Int, v0)

	v1, err := f.GetLocal(1)
	require.NoError(t, err)
	assert.Same(t, interpreter.Reference, v1)
}

func TestGetSetLocalOutOfRange(t *testing.T) {
	f := frame.New(1, 1, interpreter.BasicInterpreter{})
	_, err := f.GetLocal(1)
	require.Error(t, err)
	assert.Equal(t, clasmerrors.IllegalStack, err.(*clasmerrors.ClasmError).Kind)

	err = f.SetLocal(-1, interpreter.Int)
	require.Error(t, err)
}

func TestPushPopSingleAndDoubleWordValues(t *testing.T) {
	f := frame.New(0, 3, interpreter.BasicInterpreter{})
	require.NoError(t, f.Push(interpreter.Int))
	assert.Equal(t, 1, f.StackHeight())

	require.NoError(t, f.Push(interpreter.Long))
	assert.Equal(t, 3, f.StackHeight())

	v, err := f.Pop()
	require.NoError(t, err)
	assert.Same(t, interpreter.Long, v)
	assert.Equal(t, 1, f.StackHeight())

	v, err = f.Pop()
	require.NoError(t, err)
	assert.Same(t, interpreter.Int, v)
	assert.Equal(t, 0, f.StackHeight())
}

func TestPushOverflowFails(t *testing.T) {
	f := frame.New(0, 1, interpreter.BasicInterpreter{})
	require.NoError(t, f.Push(interpreter.Int))
	err := f.Push(interpreter.Int)
	require.Error(t, err)
	assert.Equal(t, clasmerrors.IllegalStack, err.(*clasmerrors.ClasmError).Kind)
}

func TestPopUnderflowFails(t *testing.T) {
	f := frame.New(0, 1, interpreter.BasicInterpreter{})
	_, err := f.Pop()
	require.Error(t, err)
	assert.Equal(t, clasmerrors.IllegalStack, err.(*clasmerrors.ClasmError).Kind)
}

// TestICONST1LCONST1POPFails checks that pushing an INT then a LONG
// and popping with plain POP (rather than POP2) fails, since POP only
// discards a single-word value and the top of stack here is the filler
// continuation of the LONG.
func TestICONST1LCONST1POPFails(t *testing.T) {
	interp := interpreter.BasicInterpreter{}
	f := frame.New(0, 4, interp)

	require.NoError(t, f.Execute(bytecode.NewSimpleInsn(bytecode.ICONST_1), interp))
	require.NoError(t, f.Execute(bytecode.NewSimpleInsn(bytecode.LCONST_1), interp))

	err := f.Execute(bytecode.NewSimpleInsn(bytecode.POP), interp)
	require.Error(t, err)
	assert.Equal(t, clasmerrors.IllegalStack, err.(*clasmerrors.ClasmError).Kind)
}

func TestExecuteArithmeticWithBasicInterpreter(t *testing.T) {
	interp := interpreter.BasicInterpreter{}
	f := frame.New(0, 4, interp)

	require.NoError(t, f.Execute(bytecode.NewSimpleInsn(bytecode.ICONST_1), interp))
	require.NoError(t, f.Execute(bytecode.NewSimpleInsn(bytecode.ICONST_1), interp))
	require.NoError(t, f.Execute(bytecode.NewSimpleInsn(bytecode.IADD), interp))

	assert.Equal(t, 1, f.StackHeight())
	v, err := f.Pop()
	require.NoError(t, err)
	assert.Same(t, interpreter.Int, v)
}

func TestExecuteDup(t *testing.T) {
	interp := interpreter.BasicInterpreter{}
	f := frame.New(0, 4, interp)

	require.NoError(t, f.Execute(bytecode.NewSimpleInsn(bytecode.ICONST_1), interp))
	require.NoError(t, f.Execute(bytecode.NewSimpleInsn(bytecode.DUP), interp))
	assert.Equal(t, 2, f.StackHeight())
}

func TestCloneIsIndependent(t *testing.T) {
	f := frame.New(2, 2, interpreter.BasicInterpreter{})
	require.NoError(t, f.SetLocal(0, interpreter.Int))
	require.NoError(t, f.Push(interpreter.Int))

	c := f.Clone()
	require.NoError(t, c.SetLocal(0, interpreter.Long))

	v, err := f.GetLocal(0)
	require.NoError(t, err)
	assert.Same(t, interpreter.Int, v)
}

func TestInitRejectsMismatchedCapacities(t *testing.T) {
	a := frame.New(1, 1, interpreter.BasicInterpreter{})
	b := frame.New(2, 1, interpreter.BasicInterpreter{})
	err := a.Init(b)
	require.Error(t, err)
	assert.Equal(t, clasmerrors.IncompatibleFrames, err.(*clasmerrors.ClasmError).Kind)
}
